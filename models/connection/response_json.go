package connection

import mb "github.com/saeidalz13/battleship-rules/models/battleship"

type RespSessionId struct {
	SessionID string `json:"session_id"`
}

type RespCreateGame struct {
	GameUuid string `json:"game_uuid"`
	HostUuid string `json:"host_uuid"`
}

type RespJoinGame struct {
	GameUuid   string `json:"game_uuid"`
	PlayerUuid string `json:"player_uuid"`
}

type RespSetShips struct {
	Ships []*mb.Ship `json:"ships"`
}

type RespShoot struct {
	X           int           `json:"x"`
	Y           int           `json:"y"`
	ShooterUuid string        `json:"shooter_uuid"`
	Result      mb.ShotResult `json:"result"`
	Sunk        bool          `json:"sunk"`
	Adjacent    []mb.Cell     `json:"adjacent"`
	Winner      string        `json:"winner,omitempty"`
	NextTurn    string        `json:"next_turn,omitempty"`
	Repeated    bool          `json:"repeated,omitempty"`
}

func NewRespShoot(shooterUuid string, shot mb.Cell, outcome mb.ShotOutcome, nextTurn string) RespShoot {
	return RespShoot{
		X:           shot.X,
		Y:           shot.Y,
		ShooterUuid: shooterUuid,
		Result:      outcome.Result,
		Sunk:        outcome.Sunk,
		Adjacent:    outcome.Adjacent,
		Winner:      outcome.Winner,
		NextTurn:    nextTurn,
		Repeated:    outcome.Repeated,
	}
}

type RespEndGame struct {
	PlayerMatchStatus int    `json:"player_match_status"`
	Winner            string `json:"winner"`
}

type RespErr struct {
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
	Kind         string `json:"kind,omitempty"`
}

func NewRespErr(errorDetails, message, kind string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
		Kind:         kind,
	}
}
