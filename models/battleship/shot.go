package battleship

import (
	"sort"

	cerr "github.com/saeidalz13/battleship-rules/internal/error"
)

type ShotResult string

const (
	ShotResultHit  ShotResult = "hit"
	ShotResultMiss ShotResult = "miss"
)

type ShotOutcome struct {
	Result ShotResult `json:"result"`
	Sunk   bool       `json:"sunk"`

	// Cells newly marked as miss around a ship sunk by this shot
	Adjacent []Cell `json:"adjacent"`
	Winner   string `json:"winner,omitempty"`

	// Set when the cell had already been resolved and nothing changed
	Repeated bool `json:"repeated,omitempty"`
}

// Resolve fires shot at board on behalf of shooterUuid. The board is
// left untouched if an error is returned.
func Resolve(board *Board, shot Cell, shooterUuid string) (ShotOutcome, error) {
	if err := shot.Validate(); err != nil {
		return ShotOutcome{}, err
	}
	if !board.submitted {
		return ShotOutcome{}, cerr.ErrBoardNotSubmitted()
	}

	var outcome ShotOutcome

	switch board.grid.At(shot) {
	case CellStateHit, CellStateMiss:
		prev, fired := board.shots[shot]
		if !fired {
			// revealed by a sink ring, never fired at
			prev = ShotOutcome{Result: board.grid.At(shot).shotResult(), Adjacent: []Cell{}}
		}
		outcome = prev
		outcome.Repeated = true

	case CellStateShip:
		ship := board.shipAt[shot]
		board.grid.Set(shot, CellStateHit)
		ship.GotHit()

		outcome = ShotOutcome{Result: ShotResultHit, Adjacent: []Cell{}}
		if ship.IsSunk() {
			outcome.Sunk = true
			outcome.Adjacent = board.revealRing(ship)
		}
		board.shots[shot] = outcome

	default:
		board.grid.Set(shot, CellStateMiss)
		outcome = ShotOutcome{Result: ShotResultMiss, Adjacent: []Cell{}}
		board.shots[shot] = outcome
	}

	outcome.Winner = ""
	if board.AllSunk() {
		outcome.Winner = shooterUuid
	}

	return outcome, nil
}

// revealRing marks every in-bounds orthogonal neighbour of ship that is
// still empty as miss and returns those cells ordered by x then y.
func (b *Board) revealRing(ship *Ship) []Cell {
	revealed := make([]Cell, 0, 2*ship.Length()+2)

	for _, c := range ship.Cells {
		for _, n := range c.Neighbours() {
			if !n.InBounds() {
				continue
			}
			if b.grid.At(n) != CellStateEmpty {
				continue
			}
			b.grid.Set(n, CellStateMiss)
			revealed = append(revealed, n)
		}
	}

	sort.Slice(revealed, func(i, j int) bool {
		if revealed[i].X != revealed[j].X {
			return revealed[i].X < revealed[j].X
		}
		return revealed[i].Y < revealed[j].Y
	})
	return revealed
}

func (s CellState) shotResult() ShotResult {
	if s == CellStateHit {
		return ShotResultHit
	}
	return ShotResultMiss
}
