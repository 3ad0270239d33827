package connection

const (
	CodeSessionID uint8 = iota
	CodeCreateGame
	CodeJoinGame
	CodeSelectGrid
	CodeSetShips
	CodeStartGame
	CodeShoot
	CodeEndGame
	CodeInvalidSignal

	// if the req msg does not contain "code" field
	CodeSignalAbsent

	CodeOtherPlayerDisconnected
)

type Signal struct {
	Code uint8 `json:"code"`
}

func NewSignal(code uint8) Signal {
	return Signal{Code: code}
}
