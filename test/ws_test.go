package test

import (
	"testing"

	"github.com/gorilla/websocket"
	mb "github.com/gridshot/battleship-ai/models/battleship"
	mc "github.com/gridshot/battleship-ai/models/connection"
)

type Test[T, K any] struct {
	name string

	expectedCode uint8

	reqPayload  T
	respPayload K // Used to unmarshal the response

	conn *websocket.Conn
}

func TestInvalidCode(t *testing.T) {
	tests := []Test[mc.Message[mc.NoPayload], mc.Message[mc.NoPayload]]{
		{
			name:         "random invalid code host",
			expectedCode: mc.CodeInvalidSignal,
			reqPayload:   mc.NewMessage[mc.NoPayload](255),
			respPayload:  mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal),
			conn:         HostConn,
		},
		{
			name:         "random invalid code join",
			expectedCode: mc.CodeInvalidSignal,
			reqPayload:   mc.NewMessage[mc.NoPayload](200),
			respPayload:  mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal),
			conn:         JoinConn,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if err := test.conn.WriteJSON(test.reqPayload); err != nil {
				t.Fatal(err)
			}

			if err := test.conn.ReadJSON(&test.respPayload); err != nil {
				t.Fatal(err)
			}

			if test.respPayload.Code != test.expectedCode {
				t.Fatalf("expected status: %d\t got: %d", test.expectedCode, test.respPayload.Code)
			}
		})
	}
}

func TestCreateGame(t *testing.T) {
	tests := []Test[mc.Message[mc.ReqCreateGame], mc.Message[mc.RespCreateGame]]{
		{
			name:         "invalid difficulty",
			expectedCode: mc.CodeCreateGame,
			reqPayload: mc.Message[mc.ReqCreateGame]{Code: mc.CodeCreateGame, Payload: mc.ReqCreateGame{
				GameDifficulty: 77,
				GameMode:       mb.GameModeDuel,
			}},
			respPayload: mc.NewMessage[mc.RespCreateGame](mc.CodeCreateGame),
			conn:        HostConn,
		},
		{
			name:         "create duel game valid code",
			expectedCode: mc.CodeCreateGame,
			reqPayload: mc.Message[mc.ReqCreateGame]{Code: mc.CodeCreateGame, Payload: mc.ReqCreateGame{
				GameDifficulty: mb.GameDifficultyEasy,
				GameMode:       mb.GameModeDuel,
			}},
			respPayload: mc.NewMessage[mc.RespCreateGame](mc.CodeCreateGame),
			conn:        HostConn,
		},
	}

	for i, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if err := test.conn.WriteJSON(test.reqPayload); err != nil {
				t.Fatal(err)
			}

			if err := test.conn.ReadJSON(&test.respPayload); err != nil {
				t.Fatal(err)
			}

			if test.respPayload.Code != test.expectedCode {
				t.Fatalf("expected status: %d\t got: %d", test.expectedCode, test.respPayload.Code)
			}

			// the first case asks for an unknown difficulty
			if i == 0 {
				if test.respPayload.Error == nil {
					t.Fatal("expected error for invalid difficulty")
				}
				return
			}

			if test.respPayload.Error != nil {
				t.Fatalf("error: %s", test.respPayload.Error.ErrorDetails)
			}

			if test.respPayload.Payload.GridSize != mb.GridSizeEasy {
				t.Fatalf("expected grid size: %d\tgot: %d", mb.GridSizeEasy, test.respPayload.Payload.GridSize)
			}

			testGameUuid = test.respPayload.Payload.GameUuid
			testHostUuid = test.respPayload.Payload.HostUuid

			if _, err := testGameManager.FetchGame(testGameUuid); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestJoinPlayer(t *testing.T) {
	tests := []Test[mc.Message[mc.ReqJoinGame], mc.Message[mc.RespJoinGame]]{
		{
			name:         "valid game uuid",
			expectedCode: mc.CodeJoinGame,
			reqPayload:   mc.Message[mc.ReqJoinGame]{Code: mc.CodeJoinGame, Payload: mc.ReqJoinGame{GameUuid: testGameUuid}},
			respPayload:  mc.NewMessage[mc.RespJoinGame](mc.CodeJoinGame),
			conn:         JoinConn,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if err := test.conn.WriteJSON(test.reqPayload); err != nil {
				t.Fatal(err)
			}

			if err := test.conn.ReadJSON(&test.respPayload); err != nil {
				t.Fatal(err)
			}

			if test.respPayload.Error != nil {
				t.Fatalf("error: %s", test.respPayload.Error.ErrorDetails)
			}

			if testGameUuid != test.respPayload.Payload.GameUuid {
				t.Fatal("incoming game uuid did not match the req uuid after join")
			}
			testJoinUuid = test.respPayload.Payload.PlayerUuid

			// when the join player is added, a select grid code goes
			// to both players; read them to free up both conns
			var respSelectGridJoin mc.Message[mc.NoPayload]
			if err := JoinConn.ReadJSON(&respSelectGridJoin); err != nil {
				t.Fatal(err)
			}
			if respSelectGridJoin.Code != mc.CodeSelectGrid {
				t.Fatalf("expected select grid code\tgot: %d", respSelectGridJoin.Code)
			}

			var respSelectGridHost mc.Message[mc.NoPayload]
			if err := HostConn.ReadJSON(&respSelectGridHost); err != nil {
				t.Fatal(err)
			}
			if respSelectGridHost.Code != mc.CodeSelectGrid {
				t.Fatalf("expected select grid code\tgot: %d", respSelectGridHost.Code)
			}
		})
	}
}

func TestReadyPlayer(t *testing.T) {
	illegalPlacements := defaultPlacements()
	// shove the battleship past the right edge
	illegalPlacements[2].Origin = mb.NewCoordinates(4, 5)

	incompletePlacements := defaultPlacements()[:2]

	tests := []Test[mc.Message[mc.ReqReadyPlayer], mc.Message[mc.NoPayload]]{
		{
			name:         "illegal placement host",
			expectedCode: mc.CodeReady,
			reqPayload: mc.Message[mc.ReqReadyPlayer]{Code: mc.CodeReady, Payload: mc.ReqReadyPlayer{
				GameUuid:   testGameUuid,
				PlayerUuid: testHostUuid,
				Placements: illegalPlacements,
			}},
			respPayload: mc.NewMessage[mc.NoPayload](mc.CodeReady),
			conn:        HostConn,
		},
		{
			name:         "incomplete fleet host",
			expectedCode: mc.CodeReady,
			reqPayload: mc.Message[mc.ReqReadyPlayer]{Code: mc.CodeReady, Payload: mc.ReqReadyPlayer{
				GameUuid:   testGameUuid,
				PlayerUuid: testHostUuid,
				Placements: incompletePlacements,
			}},
			respPayload: mc.NewMessage[mc.NoPayload](mc.CodeReady),
			conn:        HostConn,
		},
		{
			name:         "valid fleet host",
			expectedCode: mc.CodeReady,
			reqPayload: mc.Message[mc.ReqReadyPlayer]{Code: mc.CodeReady, Payload: mc.ReqReadyPlayer{
				GameUuid:   testGameUuid,
				PlayerUuid: testHostUuid,
				Placements: defaultPlacements(),
			}},
			respPayload: mc.NewMessage[mc.NoPayload](mc.CodeReady),
			conn:        HostConn,
		},
		{
			name:         "valid fleet join",
			expectedCode: mc.CodeReady,
			reqPayload: mc.Message[mc.ReqReadyPlayer]{Code: mc.CodeReady, Payload: mc.ReqReadyPlayer{
				GameUuid:   testGameUuid,
				PlayerUuid: testJoinUuid,
				Placements: defaultPlacements(),
			}},
			respPayload: mc.NewMessage[mc.NoPayload](mc.CodeReady),
			conn:        JoinConn,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if err := test.conn.WriteJSON(test.reqPayload); err != nil {
				t.Fatal(err)
			}

			if err := test.conn.ReadJSON(&test.respPayload); err != nil {
				t.Fatal(err)
			}

			if test.respPayload.Code != test.expectedCode {
				t.Fatalf("expected status: %d\t got: %d", test.expectedCode, test.respPayload.Code)
			}

			switch test.name {
			case "illegal placement host", "incomplete fleet host":
				if test.respPayload.Error == nil {
					t.Fatal("expected placement rejection")
				}

			case "valid fleet host":
				if test.respPayload.Error != nil {
					t.Fatalf("error: %s", test.respPayload.Error.ErrorDetails)
				}

			case "valid fleet join":
				if test.respPayload.Error != nil {
					t.Fatalf("error: %s", test.respPayload.Error.ErrorDetails)
				}

				// both fleets are in; the game starts for both sides
				var respStartJoin mc.Message[mc.NoPayload]
				if err := JoinConn.ReadJSON(&respStartJoin); err != nil {
					t.Fatal(err)
				}
				if respStartJoin.Code != mc.CodeStartGame {
					t.Fatalf("expected start game code\tgot: %d", respStartJoin.Code)
				}

				var respStartHost mc.Message[mc.NoPayload]
				if err := HostConn.ReadJSON(&respStartHost); err != nil {
					t.Fatal(err)
				}
				if respStartHost.Code != mc.CodeStartGame {
					t.Fatalf("expected start game code\tgot: %d", respStartHost.Code)
				}
			}
		})
	}
}

func TestAttack(t *testing.T) {
	// the join side has no turn yet
	resp := writeAttack(t, JoinConn, testGameUuid, testJoinUuid, mb.NewCoordinates(5, 5))
	if resp.Error == nil {
		t.Fatal("expected rejection of out-of-turn attack")
	}

	// host opens with a miss into open water
	resp = writeAttack(t, HostConn, testGameUuid, testHostUuid, mb.NewCoordinates(7, 7))
	if resp.Error != nil {
		t.Fatalf("error: %s", resp.Error.ErrorDetails)
	}
	if resp.Payload.PositionState != mb.CellMiss {
		t.Fatalf("expected miss\tgot state: %d", resp.Payload.PositionState)
	}
	if resp.Payload.IsTurn {
		t.Fatal("expected attacker turn over after the shot")
	}
	notif := readAttackNotif(t, JoinConn)
	if !notif.Payload.IsTurn {
		t.Fatal("expected defender to receive the turn")
	}

	// host shoots again right away and is rejected
	resp = writeAttack(t, HostConn, testGameUuid, testHostUuid, mb.NewCoordinates(6, 6))
	if resp.Error == nil {
		t.Fatal("expected rejection of out-of-turn attack")
	}

	// join misses too
	resp = writeAttack(t, JoinConn, testGameUuid, testJoinUuid, mb.NewCoordinates(7, 7))
	if resp.Error != nil {
		t.Fatalf("error: %s", resp.Error.ErrorDetails)
	}
	if resp.Payload.PositionState != mb.CellMiss {
		t.Fatalf("expected miss\tgot state: %d", resp.Payload.PositionState)
	}
	readAttackNotif(t, HostConn)

	// host hits the join destroyer
	resp = writeAttack(t, HostConn, testGameUuid, testHostUuid, mb.NewCoordinates(0, 0))
	if resp.Error != nil {
		t.Fatalf("error: %s", resp.Error.ErrorDetails)
	}
	if resp.Payload.PositionState != mb.CellHit || resp.Payload.SunkShipName != "" {
		t.Fatalf("expected plain hit\tgot: %+v", resp.Payload)
	}
	readAttackNotif(t, JoinConn)

	// join repeats its own earlier shot and is rejected
	resp = writeAttack(t, JoinConn, testGameUuid, testJoinUuid, mb.NewCoordinates(7, 7))
	if resp.Error == nil {
		t.Fatal("expected rejection of repeated attack")
	}

	// join takes a fresh miss instead
	resp = writeAttack(t, JoinConn, testGameUuid, testJoinUuid, mb.NewCoordinates(7, 6))
	if resp.Error != nil {
		t.Fatalf("error: %s", resp.Error.ErrorDetails)
	}
	readAttackNotif(t, HostConn)

	// second destroyer cell goes down
	resp = writeAttack(t, HostConn, testGameUuid, testHostUuid, mb.NewCoordinates(0, 1))
	if resp.Error != nil {
		t.Fatalf("error: %s", resp.Error.ErrorDetails)
	}
	if resp.Payload.SunkShipName != mb.ShipNameDestroyer {
		t.Fatalf("expected sunk destroyer\tgot: %+v", resp.Payload)
	}
	notif = readAttackNotif(t, JoinConn)
	if notif.Payload.SunkShipName != mb.ShipNameDestroyer {
		t.Fatal("expected sink reported to the defender too")
	}
}

func TestAttackUntilEndGame(t *testing.T) {
	// the destroyer is already gone; the cruiser and battleship remain
	remainingTargets := defaultPlacementCells()[2:]
	joinWaterShots := []mb.Coordinates{
		mb.NewCoordinates(7, 0),
		mb.NewCoordinates(7, 1),
		mb.NewCoordinates(7, 2),
		mb.NewCoordinates(7, 3),
		mb.NewCoordinates(7, 4),
		mb.NewCoordinates(7, 5),
		mb.NewCoordinates(6, 0),
	}

	for i, target := range remainingTargets {
		// join answers first; the previous host shot handed it the turn
		resp := writeAttack(t, JoinConn, testGameUuid, testJoinUuid, joinWaterShots[i])
		if resp.Error != nil {
			t.Fatalf("error: %s", resp.Error.ErrorDetails)
		}
		readAttackNotif(t, HostConn)

		resp = writeAttack(t, HostConn, testGameUuid, testHostUuid, target)
		if resp.Error != nil {
			t.Fatalf("error: %s", resp.Error.ErrorDetails)
		}
		if resp.Payload.PositionState != mb.CellHit {
			t.Fatalf("expected hit at %+v\tgot state: %d", target, resp.Payload.PositionState)
		}
		readAttackNotif(t, JoinConn)

		if i == len(remainingTargets)-1 {
			if resp.Payload.SunkShipName != mb.ShipNameBattleship {
				t.Fatalf("expected battleship as final sink\tgot: %+v", resp.Payload)
			}

			var respEndHost mc.Message[mc.RespEndGame]
			if err := HostConn.ReadJSON(&respEndHost); err != nil {
				t.Fatal(err)
			}
			if respEndHost.Code != mc.CodeEndGame {
				t.Fatalf("expected end game code\tgot: %d", respEndHost.Code)
			}
			if respEndHost.Payload.PlayerMatchStatus != mb.PlayerMatchStatusWon {
				t.Fatalf("expected host won\tgot: %d", respEndHost.Payload.PlayerMatchStatus)
			}

			var respEndJoin mc.Message[mc.RespEndGame]
			if err := JoinConn.ReadJSON(&respEndJoin); err != nil {
				t.Fatal(err)
			}
			if respEndJoin.Payload.PlayerMatchStatus != mb.PlayerMatchStatusLost {
				t.Fatalf("expected join lost\tgot: %d", respEndJoin.Payload.PlayerMatchStatus)
			}
		}
	}

	game, err := testGameManager.FetchGame(testGameUuid)
	if err != nil {
		t.Fatal(err)
	}
	if !game.IsFinished() {
		t.Fatal("expected finished game")
	}
}

func TestRematch(t *testing.T) {
	// host proposes a rematch
	if err := HostConn.WriteJSON(mc.NewMessage[mc.NoPayload](mc.CodeRematchCall)); err != nil {
		t.Fatal(err)
	}
	var rematchCall mc.Message[mc.NoPayload]
	if err := JoinConn.ReadJSON(&rematchCall); err != nil {
		t.Fatal(err)
	}
	if rematchCall.Code != mc.CodeRematchCall {
		t.Fatalf("expected rematch call code\tgot: %d", rematchCall.Code)
	}

	// join accepts; both sides get a reset game, the join side opens
	if err := JoinConn.WriteJSON(mc.NewMessage[mc.NoPayload](mc.CodeRematchCallAccepted)); err != nil {
		t.Fatal(err)
	}

	var rematchHost mc.Message[mc.RespRematch]
	if err := HostConn.ReadJSON(&rematchHost); err != nil {
		t.Fatal(err)
	}
	if rematchHost.Code != mc.CodeRematch {
		t.Fatalf("expected rematch code\tgot: %d", rematchHost.Code)
	}
	if rematchHost.Payload.IsTurn {
		t.Fatal("expected host without the opening turn")
	}

	var rematchJoin mc.Message[mc.RespRematch]
	if err := JoinConn.ReadJSON(&rematchJoin); err != nil {
		t.Fatal(err)
	}
	if !rematchJoin.Payload.IsTurn {
		t.Fatal("expected join with the opening turn")
	}

	game, err := testGameManager.FetchGame(testGameUuid)
	if err != nil {
		t.Fatal(err)
	}
	if game.IsFinished() {
		t.Fatal("expected reset game")
	}
	if game.FetchPlayer(true).IsReady() || game.FetchPlayer(false).IsReady() {
		t.Fatal("expected both sides unready after reset")
	}
}
