package battleship

import cerr "github.com/saeidalz13/battleship-rules/internal/error"

// LayoutRule is checked against the grouped ships before a layout is
// frozen.
type LayoutRule interface {
	Validate(ships []*Ship) error
}

// Board is one player's 10x10 defence grid. It is mutable by its owner
// until Submit, and afterwards only by Resolve.
type Board struct {
	grid      Grid
	ships     []*Ship
	shipAt    map[Cell]*Ship
	shots     map[Cell]ShotOutcome
	submitted bool
}

func NewBoard() *Board {
	return &Board{
		shipAt: make(map[Cell]*Ship),
		shots:  make(map[Cell]ShotOutcome),
	}
}

func (b *Board) IsSubmitted() bool {
	return b.submitted
}

func (b *Board) State(c Cell) CellState {
	return b.grid.At(c)
}

// Grid returns a copy of the cell states.
func (b *Board) Grid() Grid {
	return b.grid
}

func (b *Board) Ships() []*Ship {
	return b.ships
}

// Toggle flips a cell between empty and ship while placing.
func (b *Board) Toggle(c Cell) error {
	if b.submitted {
		return cerr.ErrBoardNotPlacing()
	}
	if err := c.Validate(); err != nil {
		return err
	}

	if b.grid.At(c) == CellStateShip {
		b.grid.Set(c, CellStateEmpty)
	} else {
		b.grid.Set(c, CellStateShip)
	}
	return nil
}

// ShipCells lists the cells currently marked as ship, row by row.
func (b *Board) ShipCells() []Cell {
	cells := make([]Cell, 0)
	for y := 0; y < GridSize; y++ {
		for x := 0; x < GridSize; x++ {
			if b.grid[y][x] == CellStateShip {
				cells = append(cells, NewCell(x, y))
			}
		}
	}
	return cells
}

// Submit replaces the placement with cells, groups them into ships and
// freezes the board. Nothing is written unless every check passes.
func (b *Board) Submit(cells []Cell, rules ...LayoutRule) ([]*Ship, error) {
	if b.submitted {
		return nil, cerr.ErrBoardNotPlacing()
	}

	seen := make(map[Cell]bool, len(cells))
	for _, c := range cells {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if seen[c] {
			return nil, cerr.ErrDuplicateShipCell(c.X, c.Y)
		}
		seen[c] = true
	}

	ships := GroupShips(cells)
	for _, rule := range rules {
		if rule == nil {
			continue
		}
		if err := rule.Validate(ships); err != nil {
			return nil, err
		}
	}

	b.grid = Grid{}
	for _, ship := range ships {
		for _, c := range ship.Cells {
			b.grid.Set(c, CellStateShip)
			b.shipAt[c] = ship
		}
	}
	b.ships = ships
	b.submitted = true

	return ships, nil
}

// SubmitPlaced freezes whatever was placed with Toggle.
func (b *Board) SubmitPlaced(rules ...LayoutRule) ([]*Ship, error) {
	return b.Submit(b.ShipCells(), rules...)
}

func (b *Board) SunkenShips() int {
	count := 0
	for _, ship := range b.ships {
		if ship.IsSunk() {
			count++
		}
	}
	return count
}

// AllSunk reports whether every ship has no health left. A board
// without ships is vacuously defeated.
func (b *Board) AllSunk() bool {
	for _, ship := range b.ships {
		if ship.Health() > 0 {
			return false
		}
	}
	return true
}
