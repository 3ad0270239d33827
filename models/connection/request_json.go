package connection

import (
	"encoding/json"

	mb "github.com/saeidalz13/battleship-rules/models/battleship"
)

type ReqJoinGame struct {
	GameUuid string `json:"game_uuid"`
}

type ReqSetShips struct {
	GameUuid   string    `json:"game_uuid"`
	PlayerUuid string    `json:"player_uuid"`
	Cells      []mb.Cell `json:"cells"`
}

// X and Y are decoded as json.Number so fractional or missing
// coordinates are rejected before reaching the board.
type ReqShoot struct {
	GameUuid   string      `json:"game_uuid"`
	PlayerUuid string      `json:"player_uuid"`
	X          json.Number `json:"x"`
	Y          json.Number `json:"y"`
}
