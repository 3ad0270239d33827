package battleship

import (
	"maps"

	cerr "github.com/saeidalz13/battleship-rules/internal/error"
)

// FleetRule constrains a layout to an exact number of ships per length,
// optionally requiring every ship to lie on a single row or column.
type FleetRule struct {
	Ships    map[int]int `yaml:"ships"`
	Straight bool        `yaml:"straight"`
}

var _ LayoutRule = FleetRule{}

// ClassicFleet is one four-cell ship, two three-cell ships, three
// two-cell ships and four single-cell ships.
func ClassicFleet() FleetRule {
	return FleetRule{
		Ships:    map[int]int{4: 1, 3: 2, 2: 3, 1: 4},
		Straight: true,
	}
}

func (fr FleetRule) Validate(ships []*Ship) error {
	if fr.Straight {
		for _, ship := range ships {
			if !ship.IsStraight() {
				return cerr.ErrShipNotStraight(ship.Id)
			}
		}
	}

	if len(fr.Ships) == 0 {
		return nil
	}

	expected := maps.Clone(fr.Ships)
	maps.DeleteFunc(expected, func(_ int, count int) bool { return count == 0 })

	got := make(map[int]int, len(expected))
	for _, ship := range ships {
		got[ship.Length()]++
	}
	if !maps.Equal(got, expected) {
		return cerr.ErrInvalidFleet(expected, got)
	}
	return nil
}

// IsStraight reports whether all cells share a row or a column.
func (sh *Ship) IsStraight() bool {
	if len(sh.Cells) == 0 {
		return true
	}

	sameRow, sameCol := true, true
	first := sh.Cells[0]
	for _, c := range sh.Cells[1:] {
		if c.Y != first.Y {
			sameRow = false
		}
		if c.X != first.X {
			sameCol = false
		}
	}
	return sameRow || sameCol
}
