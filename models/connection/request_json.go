package connection

import (
	mb "github.com/gridshot/battleship-ai/models/battleship"
)

type ReqCreateGame struct {
	GameDifficulty uint8 `json:"game_difficulty"`
	GameMode       uint8 `json:"game_mode"`
}

type ReqJoinGame struct {
	GameUuid string `json:"game_uuid"`
}

// ShipPlacement is one ship of the setup phase. The server validates
// it against the placement rules and rejects illegal ones so the
// client can retry.
type ShipPlacement struct {
	ShipName    string         `json:"ship_name"`
	Origin      mb.Coordinates `json:"origin"`
	Orientation mb.Orientation `json:"orientation"`
}

type ReqReadyPlayer struct {
	GameUuid   string          `json:"game_uuid"`
	PlayerUuid string          `json:"player_uuid"`
	Placements []ShipPlacement `json:"placements"`
}

type ReqAttack struct {
	GameUuid   string `json:"game_uuid"`
	PlayerUuid string `json:"player_uuid"`
	Row        int    `json:"row"`
	Col        int    `json:"col"`
}
