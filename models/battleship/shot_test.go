package battleship

import (
	"errors"
	"testing"

	cerr "github.com/saeidalz13/battleship-rules/internal/error"
)

const testShooter = "shooter123"

func mustSubmittedBoard(t *testing.T, cells ...Cell) *Board {
	t.Helper()

	board := NewBoard()
	if _, err := board.Submit(cells); err != nil {
		t.Fatal(err)
	}
	return board
}

func cellSet(cells []Cell) map[Cell]bool {
	set := make(map[Cell]bool, len(cells))
	for _, c := range cells {
		set[c] = true
	}
	return set
}

func TestResolveHitAndMiss(t *testing.T) {
	tests := []struct {
		name           string
		shot           Cell
		expectedResult ShotResult
		expectedState  CellState
	}{
		{name: "shoot ship cell", shot: NewCell(2, 2), expectedResult: ShotResultHit, expectedState: CellStateHit},
		{name: "shoot empty cell", shot: NewCell(7, 7), expectedResult: ShotResultMiss, expectedState: CellStateMiss},
		{name: "shoot corner", shot: NewCell(9, 9), expectedResult: ShotResultMiss, expectedState: CellStateMiss},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			board := mustSubmittedBoard(t, NewCell(2, 2), NewCell(3, 2), NewCell(4, 2))

			outcome, err := Resolve(board, test.shot, testShooter)
			if err != nil {
				t.Fatal(err)
			}
			if outcome.Result != test.expectedResult {
				t.Fatalf("expected result: %s\tgot: %s", test.expectedResult, outcome.Result)
			}
			if outcome.Sunk {
				t.Fatal("no ship should be sunk")
			}
			if outcome.Winner != "" {
				t.Fatalf("expected no winner, got: %s", outcome.Winner)
			}
			if got := board.State(test.shot); got != test.expectedState {
				t.Fatalf("expected cell state: %s\tgot: %s", test.expectedState, got)
			}
		})
	}
}

func TestResolveSinkRevealsRing(t *testing.T) {
	shipCells := []Cell{NewCell(2, 2), NewCell(3, 2), NewCell(4, 2)}
	board := mustSubmittedBoard(t, append(shipCells, NewCell(8, 8))...)

	expected := []struct {
		result ShotResult
		sunk   bool
	}{
		{ShotResultHit, false},
		{ShotResultHit, false},
		{ShotResultHit, true},
	}

	var last ShotOutcome
	for i, shot := range shipCells {
		outcome, err := Resolve(board, shot, testShooter)
		if err != nil {
			t.Fatal(err)
		}
		if outcome.Result != expected[i].result || outcome.Sunk != expected[i].sunk {
			t.Fatalf("shot %d expected: %s/%t\tgot: %s/%t", i, expected[i].result, expected[i].sunk, outcome.Result, outcome.Sunk)
		}
		if !outcome.Sunk && len(outcome.Adjacent) != 0 {
			t.Fatalf("shot %d revealed cells without sinking: %v", i, outcome.Adjacent)
		}
		last = outcome
	}

	ring := []Cell{
		NewCell(1, 2), NewCell(5, 2),
		NewCell(2, 1), NewCell(2, 3),
		NewCell(3, 1), NewCell(3, 3),
		NewCell(4, 1), NewCell(4, 3),
	}
	if len(last.Adjacent) != len(ring) {
		t.Fatalf("expected %d revealed cells, got: %v", len(ring), last.Adjacent)
	}
	got := cellSet(last.Adjacent)
	for _, c := range ring {
		if !got[c] {
			t.Fatalf("expected %+v in revealed ring %v", c, last.Adjacent)
		}
		if board.State(c) != CellStateMiss {
			t.Fatalf("expected %+v marked miss, got: %s", c, board.State(c))
		}
	}

	// diagonal corners are not part of the ring
	if board.State(NewCell(1, 1)) != CellStateEmpty {
		t.Fatal("diagonal neighbour must stay empty")
	}

	if last.Winner != "" {
		t.Fatal("second ship is afloat, no winner expected")
	}
}

func TestResolveRingSkipsAlreadyMissedAndOffGrid(t *testing.T) {
	board := mustSubmittedBoard(t, NewCell(0, 0), NewCell(1, 0), NewCell(9, 9))

	if _, err := Resolve(board, NewCell(0, 1), testShooter); err != nil {
		t.Fatal(err)
	}
	if _, err := Resolve(board, NewCell(0, 0), testShooter); err != nil {
		t.Fatal(err)
	}
	outcome, err := Resolve(board, NewCell(1, 0), testShooter)
	if err != nil {
		t.Fatal(err)
	}

	if !outcome.Sunk {
		t.Fatal("expected ship to be sunk")
	}
	want := []Cell{NewCell(1, 1), NewCell(2, 0)}
	if len(outcome.Adjacent) != len(want) {
		t.Fatalf("expected revealed: %v\tgot: %v", want, outcome.Adjacent)
	}
	for i := range want {
		if outcome.Adjacent[i] != want[i] {
			t.Fatalf("expected revealed: %v\tgot: %v", want, outcome.Adjacent)
		}
	}
}

func TestResolveWinner(t *testing.T) {
	board := mustSubmittedBoard(t, NewCell(0, 0), NewCell(5, 5))

	outcome, err := Resolve(board, NewCell(0, 0), testShooter)
	if err != nil {
		t.Fatal(err)
	}
	if outcome.Winner != "" {
		t.Fatalf("expected no winner before last ship sinks, got: %s", outcome.Winner)
	}

	outcome, err = Resolve(board, NewCell(5, 5), testShooter)
	if err != nil {
		t.Fatal(err)
	}
	if !outcome.Sunk || outcome.Winner != testShooter {
		t.Fatalf("expected sinking shot to report winner, got: %+v", outcome)
	}

	outcome, err = Resolve(board, NewCell(9, 0), testShooter)
	if err != nil {
		t.Fatal(err)
	}
	if outcome.Winner != testShooter {
		t.Fatalf("expected later shots to keep reporting winner, got: %+v", outcome)
	}
}

func TestResolveOutOfBounds(t *testing.T) {
	tests := []struct {
		name string
		shot Cell
	}{
		{name: "x too large", shot: NewCell(10, 0)},
		{name: "negative x", shot: NewCell(-1, 5)},
		{name: "y too large", shot: NewCell(0, 10)},
		{name: "negative y", shot: NewCell(3, -4)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			board := mustSubmittedBoard(t, NewCell(0, 0), NewCell(0, 1))
			before := board.Grid()

			_, err := Resolve(board, test.shot, testShooter)
			if !errors.Is(err, cerr.ErrOutOfBounds) {
				t.Fatalf("expected out of bounds error, got: %v", err)
			}
			if !errors.Is(err, cerr.ErrValidation) {
				t.Fatalf("expected validation error, got: %v", err)
			}
			if board.Grid() != before {
				t.Fatal("board must not change on rejected shot")
			}
		})
	}
}

func TestResolveBoardNotSubmitted(t *testing.T) {
	board := NewBoard()
	if err := board.Toggle(NewCell(1, 1)); err != nil {
		t.Fatal(err)
	}

	_, err := Resolve(board, NewCell(1, 1), testShooter)
	if !errors.Is(err, cerr.ErrState) {
		t.Fatalf("expected state error, got: %v", err)
	}
	if board.State(NewCell(1, 1)) != CellStateShip {
		t.Fatal("board must not change on rejected shot")
	}
}

func TestResolveRepeatedShotDoesNotDoubleCount(t *testing.T) {
	board := mustSubmittedBoard(t, NewCell(2, 2), NewCell(3, 2), NewCell(7, 7))
	ship := board.Ships()[0]

	first, err := Resolve(board, NewCell(2, 2), testShooter)
	if err != nil {
		t.Fatal(err)
	}
	again, err := Resolve(board, NewCell(2, 2), testShooter)
	if err != nil {
		t.Fatal(err)
	}
	if ship.Health() != 1 {
		t.Fatalf("expected health 1 after repeated shot, got: %d", ship.Health())
	}
	if !again.Repeated || again.Result != first.Result || again.Sunk {
		t.Fatalf("expected repeated copy of first outcome, got: %+v", again)
	}

	sinking, err := Resolve(board, NewCell(3, 2), testShooter)
	if err != nil {
		t.Fatal(err)
	}
	if !sinking.Sunk || len(sinking.Adjacent) == 0 {
		t.Fatalf("expected sink with ring, got: %+v", sinking)
	}
	gridAfterSink := board.Grid()

	repeat, err := Resolve(board, NewCell(3, 2), testShooter)
	if err != nil {
		t.Fatal(err)
	}
	if !repeat.Repeated {
		t.Fatal("expected repeated flag")
	}
	if ship.Health() != 0 || board.SunkenShips() != 1 {
		t.Fatalf("expected one sunk ship with no health, got health: %d\tsunk: %d", ship.Health(), board.SunkenShips())
	}
	if board.Grid() != gridAfterSink {
		t.Fatal("repeated shot must not reveal anything new")
	}

	ringCell := sinking.Adjacent[0]
	ringShot, err := Resolve(board, ringCell, testShooter)
	if err != nil {
		t.Fatal(err)
	}
	if ringShot.Result != ShotResultMiss || !ringShot.Repeated {
		t.Fatalf("expected repeated miss on revealed ring cell, got: %+v", ringShot)
	}
}
