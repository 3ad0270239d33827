package battleship

import (
	"sync"

	"github.com/google/uuid"
	cerr "github.com/saeidalz13/battleship-rules/internal/error"
)

type GameManager interface {
	CreateGame(hostSessionId string) (*Game, *Player)
	JoinGame(gameUuid, joinSessionId string) (*Game, *Player, error)
	FetchGame(gameUuid string) (*Game, error)
	FindGameAndPlayer(gameUuid, playerUuid string) (*Game, *Player, error)
	TerminateGame(gameUuid string)
}

type BattleshipGameManager struct {
	games       map[string]*Game
	layoutRules []LayoutRule
	mu          sync.RWMutex
}

var _ GameManager = (*BattleshipGameManager)(nil)

type GameManagerOption func(*BattleshipGameManager)

// WithLayoutRule makes every new game validate submitted layouts with rule.
func WithLayoutRule(rule LayoutRule) GameManagerOption {
	return func(bgm *BattleshipGameManager) {
		bgm.layoutRules = append(bgm.layoutRules, rule)
	}
}

func NewBattleshipGameManager(opts ...GameManagerOption) *BattleshipGameManager {
	bgm := &BattleshipGameManager{
		games: make(map[string]*Game, 10),
	}
	for _, opt := range opts {
		opt(bgm)
	}
	return bgm
}

func (bgm *BattleshipGameManager) CreateGame(hostSessionId string) (*Game, *Player) {
	bgm.mu.Lock()
	defer bgm.mu.Unlock()

	gameUuid := uuid.NewString()[:6]
	for _, prs := bgm.games[gameUuid]; prs; _, prs = bgm.games[gameUuid] {
		gameUuid = uuid.NewString()[:6]
	}

	game := newGame(gameUuid, bgm.layoutRules)
	hostPlayer := game.createHostPlayer(hostSessionId)
	bgm.games[gameUuid] = game

	return game, hostPlayer
}

func (bgm *BattleshipGameManager) JoinGame(gameUuid, joinSessionId string) (*Game, *Player, error) {
	game, err := bgm.FetchGame(gameUuid)
	if err != nil {
		return nil, nil, err
	}

	joinPlayer, err := game.createJoinPlayer(joinSessionId)
	if err != nil {
		return nil, nil, err
	}
	return game, joinPlayer, nil
}

func (bgm *BattleshipGameManager) FetchGame(gameUuid string) (*Game, error) {
	bgm.mu.RLock()
	game, prs := bgm.games[gameUuid]
	bgm.mu.RUnlock()
	if !prs {
		return nil, cerr.ErrGameNotExists(gameUuid)
	}

	return game, nil
}

// Convenient helper func to fetch both the game and player
func (bgm *BattleshipGameManager) FindGameAndPlayer(gameUuid, playerUuid string) (*Game, *Player, error) {
	game, err := bgm.FetchGame(gameUuid)
	if err != nil {
		return nil, nil, err
	}

	player, err := game.FindPlayer(playerUuid)
	if err != nil {
		return nil, nil, err
	}

	return game, player, nil
}

func (bgm *BattleshipGameManager) TerminateGame(gameUuid string) {
	bgm.mu.Lock()
	delete(bgm.games, gameUuid)
	bgm.mu.Unlock()
}
