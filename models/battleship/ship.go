package battleship

type Ship struct {
	Id     int    `json:"id"`
	Cells  []Cell `json:"cells"`
	health int
	sunk   bool
}

func NewShip(id int, cells []Cell) *Ship {
	return &Ship{
		Id:     id,
		Cells:  cells,
		health: len(cells),
	}
}

func (sh *Ship) Length() int {
	return len(sh.Cells)
}

// Health is the number of cells of the ship not hit yet.
func (sh *Ship) Health() int {
	return sh.health
}

func (sh *Ship) IsSunk() bool {
	return sh.sunk
}

func (sh *Ship) GotHit() {
	if sh.health == 0 {
		return
	}
	sh.health--
	if sh.health == 0 {
		sh.sunk = true
	}
}

// GroupShips partitions cells into ships. Two cells end up in the same
// ship only if they are joined by a path of 4-adjacent cells from the
// input; diagonal contact never merges. Duplicated input cells are
// counted once.
func GroupShips(cells []Cell) []*Ship {
	members := make(map[Cell]bool, len(cells))
	for _, c := range cells {
		members[c] = true
	}

	visited := make(map[Cell]bool, len(members))
	ships := make([]*Ship, 0)

	for _, start := range cells {
		if visited[start] {
			continue
		}
		visited[start] = true

		group := make([]Cell, 0, 4)
		queue := []Cell{start}
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			group = append(group, current)

			for _, n := range current.Neighbours() {
				if members[n] && !visited[n] {
					visited[n] = true
					queue = append(queue, n)
				}
			}
		}

		ships = append(ships, NewShip(len(ships)+1, group))
	}

	return ships
}
