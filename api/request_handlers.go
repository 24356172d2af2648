package api

import (
	"encoding/json"

	cerr "github.com/gridshot/battleship-ai/internal/error"
	mb "github.com/gridshot/battleship-ai/models/battleship"
	mc "github.com/gridshot/battleship-ai/models/connection"
)

// Every incoming valid request has the generic message envelope
// structure. The payload is unmarshaled per signal code.
type Request struct {
	payload []byte
}

func NewRequest(payload ...[]byte) Request {
	var r Request
	if len(payload) != 0 {
		r.payload = payload[0]
	}
	return r
}

func (r Request) HandleCreateGame(gameManager mb.GameManager, sessionId string) (*mb.Game, *mb.BattleshipPlayer, mc.Message[mc.RespCreateGame]) {
	resp := mc.NewMessage[mc.RespCreateGame](mc.CodeCreateGame)

	var reqCreateGame mc.Message[mc.ReqCreateGame]
	if err := json.Unmarshal(r.payload, &reqCreateGame); err != nil {
		resp.AddError(err.Error(), "failed to create game")
		return nil, nil, resp
	}

	game, err := gameManager.CreateGame(reqCreateGame.Payload.GameDifficulty, reqCreateGame.Payload.GameMode)
	if err != nil {
		resp.AddError(err.Error(), "failed to create game")
		return nil, nil, resp
	}

	hostPlayer := game.CreateHostPlayer(sessionId)

	resp.AddPayload(mc.RespCreateGame{
		GameUuid: game.Uuid(),
		HostUuid: hostPlayer.Uuid(),
		GridSize: game.GridSize(),
	})
	return game, hostPlayer, resp
}

func (r Request) HandleJoinPlayer(gameManager mb.GameManager, sessionId string) (*mb.Game, *mb.BattleshipPlayer, mc.Message[mc.RespJoinGame]) {
	resp := mc.NewMessage[mc.RespJoinGame](mc.CodeJoinGame)

	var reqJoinGame mc.Message[mc.ReqJoinGame]
	if err := json.Unmarshal(r.payload, &reqJoinGame); err != nil {
		resp.AddError(err.Error(), "failed to join the game")
		return nil, nil, resp
	}

	game, err := gameManager.FetchGame(reqJoinGame.Payload.GameUuid)
	if err != nil {
		resp.AddError(err.Error(), "failed to join the game")
		return nil, nil, resp
	}

	if game.Mode() != mb.GameModeDuel || game.FetchPlayer(false) != nil {
		resp.AddError("game is not open to join", "failed to join the game")
		return nil, nil, resp
	}

	joinPlayer := game.CreateJoinPlayer(sessionId)

	resp.AddPayload(mc.RespJoinGame{
		GameUuid:   game.Uuid(),
		PlayerUuid: joinPlayer.Uuid(),
		GridSize:   game.GridSize(),
	})
	return game, joinPlayer, resp
}

// HandleReadyPlayer applies the requested fleet placement. The set
// must contain every default ship exactly once and every run must be
// legal; any rejection drops the partially placed fleet so the client
// resubmits the full set.
func (r Request) HandleReadyPlayer(game *mb.Game, player *mb.BattleshipPlayer) mc.Message[mc.NoPayload] {
	resp := mc.NewMessage[mc.NoPayload](mc.CodeReady)

	if game == nil || player == nil {
		resp.AddError("no game attached to this session", cerr.ConstErrPlacementFailed)
		return resp
	}

	var reqReady mc.Message[mc.ReqReadyPlayer]
	if err := json.Unmarshal(r.payload, &reqReady); err != nil {
		resp.AddError(err.Error(), cerr.ConstErrPlacementFailed)
		return resp
	}

	if err := placeFleet(player, reqReady.Payload.Placements); err != nil {
		player.ResetFleet()
		resp.AddError(err.Error(), cerr.ConstErrPlacementFailed)
		return resp
	}

	if err := player.SetReady(); err != nil {
		player.ResetFleet()
		resp.AddError(err.Error(), cerr.ConstErrPlacementFailed)
		return resp
	}

	return resp
}

func placeFleet(player *mb.BattleshipPlayer, placements []mc.ShipPlacement) error {
	player.ResetFleet()

	classes := make(map[string]int, len(mb.DefaultShipClasses()))
	for _, class := range mb.DefaultShipClasses() {
		classes[class.Name] = class.Length
	}

	for _, placement := range placements {
		length, prs := classes[placement.ShipName]
		if !prs {
			return cerr.ErrShipNotInFleet(placement.ShipName)
		}
		// each ship is placed once
		delete(classes, placement.ShipName)

		if err := player.PlaceShip(placement.ShipName, length, placement.Origin, placement.Orientation); err != nil {
			return err
		}
	}

	if len(classes) != 0 {
		return cerr.ErrFleetIncomplete(len(placements), len(mb.DefaultShipClasses()))
	}
	return nil
}

func (r Request) HandleAttack(game *mb.Game, player *mb.BattleshipPlayer) (mb.AttackOutcome, mc.Message[mc.RespAttack]) {
	resp := mc.NewMessage[mc.RespAttack](mc.CodeAttack)

	if game == nil || player == nil {
		resp.AddError("no game attached to this session", cerr.ConstErrAttackFailed)
		return mb.AttackOutcome{}, resp
	}

	var reqAttack mc.Message[mc.ReqAttack]
	if err := json.Unmarshal(r.payload, &reqAttack); err != nil {
		resp.AddError(err.Error(), cerr.ConstErrAttackFailed)
		return mb.AttackOutcome{}, resp
	}

	if reqAttack.Payload.PlayerUuid != player.Uuid() {
		resp.AddError(cerr.ErrPlayerNotExist(reqAttack.Payload.PlayerUuid).Error(), cerr.ConstErrAttackFailed)
		return mb.AttackOutcome{}, resp
	}

	outcome, err := game.Attack(player, mb.NewCoordinates(reqAttack.Payload.Row, reqAttack.Payload.Col))
	if err != nil {
		resp.AddError(err.Error(), cerr.ConstErrAttackFailed)
		return mb.AttackOutcome{}, resp
	}

	// attacker's turn ends with the shot
	resp.AddPayload(mc.NewRespAttack(outcome, false))
	return outcome, resp
}
