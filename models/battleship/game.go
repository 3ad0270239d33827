package battleship

import (
	"sync"

	cerr "github.com/saeidalz13/battleship-rules/internal/error"
)

type GamePhase uint8

const (
	GamePhaseWaiting GamePhase = iota
	GamePhasePlacing
	GamePhaseStarted
	GamePhaseFinished
)

func (gp GamePhase) String() string {
	switch gp {
	case GamePhaseWaiting:
		return "waiting"
	case GamePhasePlacing:
		return "placing"
	case GamePhaseStarted:
		return "started"
	case GamePhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Game holds both boards of one match. All exported methods are safe
// for concurrent use; shots are resolved one at a time.
type Game struct {
	mu          sync.Mutex
	uuid        string
	phase       GamePhase
	hostPlayer  *Player
	joinPlayer  *Player
	players     map[string]*Player
	winner      string
	layoutRules []LayoutRule
}

func newGame(gameUuid string, layoutRules []LayoutRule) *Game {
	return &Game{
		uuid:        gameUuid,
		phase:       GamePhaseWaiting,
		players:     make(map[string]*Player, 2),
		layoutRules: layoutRules,
	}
}

func (g *Game) Uuid() string {
	return g.uuid
}

func (g *Game) Phase() GamePhase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase
}

// Winner is empty until the game is finished.
func (g *Game) Winner() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.winner
}

func (g *Game) createHostPlayer(sessionId string) *Player {
	g.mu.Lock()
	defer g.mu.Unlock()

	hostPlayer := NewPlayer(true, true, sessionId)
	g.hostPlayer = hostPlayer
	g.players[hostPlayer.uuid] = hostPlayer
	return hostPlayer
}

func (g *Game) createJoinPlayer(sessionId string) (*Player, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.joinPlayer != nil {
		return nil, cerr.ErrGameFull(g.uuid)
	}

	joinPlayer := NewPlayer(false, false, sessionId)
	g.joinPlayer = joinPlayer
	g.players[joinPlayer.uuid] = joinPlayer
	g.phase = GamePhasePlacing
	return joinPlayer, nil
}

// FetchPlayer returns the host or the join player; the latter may be nil.
func (g *Game) FetchPlayer(isHost bool) *Player {
	g.mu.Lock()
	defer g.mu.Unlock()

	if isHost {
		return g.hostPlayer
	}
	return g.joinPlayer
}

func (g *Game) FindPlayer(playerUuid string) (*Player, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.findPlayer(playerUuid)
}

func (g *Game) findPlayer(playerUuid string) (*Player, error) {
	player, prs := g.players[playerUuid]
	if !prs {
		return nil, cerr.ErrPlayerNotExist(playerUuid)
	}
	return player, nil
}

func (g *Game) GetOtherPlayer(p *Player) *Player {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.otherPlayer(p)
}

func (g *Game) otherPlayer(p *Player) *Player {
	if p.isHost {
		return g.joinPlayer
	}
	return g.hostPlayer
}

func (g *Game) IsReadyToStart() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase == GamePhaseStarted
}

// NextTurn returns the uuid of the player expected to shoot next.
func (g *Game) NextTurn() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, p := range g.players {
		if p.isTurn {
			return p.uuid
		}
	}
	return ""
}

// SubmitLayout groups cells into ships and freezes the player's board.
// started is true for the submission that completes both layouts.
func (g *Game) SubmitLayout(playerUuid string, cells []Cell) (ships []*Ship, started bool, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	player, err := g.findPlayer(playerUuid)
	if err != nil {
		return nil, false, err
	}
	if g.phase == GamePhaseStarted || g.phase == GamePhaseFinished {
		return nil, false, cerr.ErrGameAlreadyStarted(g.uuid)
	}
	if len(cells) == 0 {
		return nil, false, cerr.ErrEmptyLayout()
	}

	ships, err = player.board.Submit(cells, g.layoutRules...)
	if err != nil {
		return nil, false, err
	}

	if g.hostPlayer.IsReady() && g.joinPlayer != nil && g.joinPlayer.IsReady() {
		g.phase = GamePhaseStarted
		return ships, true, nil
	}
	return ships, false, nil
}

// Shoot resolves a shot from playerUuid against the opponent's board.
// The shooter keeps the turn on a hit and hands it over on a miss.
func (g *Game) Shoot(playerUuid string, x, y int) (ShotOutcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	attacker, err := g.findPlayer(playerUuid)
	if err != nil {
		return ShotOutcome{}, err
	}

	shot := NewCell(x, y)
	if err := shot.Validate(); err != nil {
		return ShotOutcome{}, err
	}

	switch g.phase {
	case GamePhaseFinished:
		return ShotOutcome{}, cerr.ErrGameFinished(g.uuid)
	case GamePhaseStarted:
	default:
		return ShotOutcome{}, cerr.ErrGameNotStarted(g.uuid)
	}

	if !attacker.isTurn {
		return ShotOutcome{}, cerr.ErrNotTurnForAttacker(attacker.uuid)
	}

	defender := g.otherPlayer(attacker)
	outcome, err := Resolve(defender.board, shot, attacker.uuid)
	if err != nil {
		return ShotOutcome{}, err
	}

	if outcome.Winner != "" {
		g.finish(attacker, defender)
		return outcome, nil
	}

	if !outcome.Repeated && outcome.Result == ShotResultMiss {
		attacker.isTurn = false
		defender.isTurn = true
	}
	return outcome, nil
}

func (g *Game) finish(winner, loser *Player) {
	g.phase = GamePhaseFinished
	g.winner = winner.uuid
	winner.matchStatus = PlayerMatchStatusWon
	loser.matchStatus = PlayerMatchStatusLost
	winner.isTurn = false
	loser.isTurn = false
}
