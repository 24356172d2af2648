package connection

import (
	mb "github.com/gridshot/battleship-ai/models/battleship"
)

type RespSessionId struct {
	SessionID string `json:"session_id"`
}

type RespCreateGame struct {
	GameUuid string `json:"game_uuid"`
	HostUuid string `json:"host_uuid"`
	GridSize int    `json:"grid_size"`
}

type RespJoinGame struct {
	GameUuid   string `json:"game_uuid"`
	PlayerUuid string `json:"player_uuid"`
	GridSize   int    `json:"grid_size"`
}

// RespAttack reports one resolved shot. The same shape notifies the
// defender, with IsTurn flipped, and carries the bot's shots back to
// the human in solo games.
type RespAttack struct {
	Row           int          `json:"row"`
	Col           int          `json:"col"`
	PositionState mb.CellState `json:"position_state"`
	SunkShipName  string       `json:"sunk_ship_name,omitempty"`
	IsTurn        bool         `json:"is_turn"`
}

func NewRespAttack(outcome mb.AttackOutcome, isTurn bool) RespAttack {
	return RespAttack{
		Row:           outcome.Target.Row,
		Col:           outcome.Target.Col,
		PositionState: outcome.State,
		SunkShipName:  outcome.SunkShipName,
		IsTurn:        isTurn,
	}
}

type RespEndGame struct {
	PlayerMatchStatus int `json:"player_match_status"`
}

type RespRematch struct {
	IsTurn bool `json:"is_turn"`
}

type RespErr struct {
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
	}
}
