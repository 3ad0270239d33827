package battleship

import "github.com/google/uuid"

const (
	PlayerMatchStatusLost      = -1
	PlayerMatchStatusUndefined = 0
	PlayerMatchStatusWon       = 1
)

type Player struct {
	uuid        string
	isHost      bool
	isTurn      bool
	matchStatus int
	sessionId   string
	board       *Board
}

func NewPlayer(isHost, isTurn bool, sessionId string) *Player {
	return &Player{
		uuid:        uuid.NewString()[:10],
		isHost:      isHost,
		isTurn:      isTurn,
		matchStatus: PlayerMatchStatusUndefined,
		sessionId:   sessionId,
		board:       NewBoard(),
	}
}

func (p *Player) GetUuid() string {
	return p.uuid
}

func (p *Player) IsHost() bool {
	return p.isHost
}

func (p *Player) IsTurn() bool {
	return p.isTurn
}

func (p *Player) SessionId() string {
	return p.sessionId
}

func (p *Player) MatchStatus() int {
	return p.matchStatus
}

func (p *Player) Board() *Board {
	return p.board
}

func (p *Player) IsReady() bool {
	return p.board.IsSubmitted()
}

func (p *Player) IsMatchOver() bool {
	return p.matchStatus != PlayerMatchStatusUndefined
}
