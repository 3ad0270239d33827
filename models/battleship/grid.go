package battleship

import cerr "github.com/saeidalz13/battleship-rules/internal/error"

const (
	GridSize        int = 10
	ValidLowerBound int = 0
	ValidUpperBound int = GridSize - 1
)

type CellState uint8

const (
	CellStateEmpty CellState = iota
	CellStateShip
	CellStateHit
	CellStateMiss
)

func (s CellState) String() string {
	switch s {
	case CellStateEmpty:
		return "empty"
	case CellStateShip:
		return "ship"
	case CellStateHit:
		return "hit"
	case CellStateMiss:
		return "miss"
	default:
		return "unknown"
	}
}

// Cell is a grid coordinate. X is the column and Y is the row.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func NewCell(x, y int) Cell {
	return Cell{X: x, Y: y}
}

func (c Cell) InBounds() bool {
	return c.X >= ValidLowerBound && c.X <= ValidUpperBound && c.Y >= ValidLowerBound && c.Y <= ValidUpperBound
}

func (c Cell) Validate() error {
	if !c.InBounds() {
		return cerr.ErrXorYOutOfGridBound(c.X, c.Y)
	}
	return nil
}

// Neighbours returns the orthogonal neighbours of c, including ones
// outside the grid. Callers filter by membership or bounds.
func (c Cell) Neighbours() [4]Cell {
	return [4]Cell{
		{X: c.X + 1, Y: c.Y},
		{X: c.X - 1, Y: c.Y},
		{X: c.X, Y: c.Y + 1},
		{X: c.X, Y: c.Y - 1},
	}
}

// Grid is indexed as grid[y][x].
type Grid [GridSize][GridSize]CellState

func (g *Grid) At(c Cell) CellState {
	return g[c.Y][c.X]
}

func (g *Grid) Set(c Cell, state CellState) {
	g[c.Y][c.X] = state
}
