package engine

import (
	"fmt"

	"github.com/hammamikhairi/ottocraft/internal/domain"
)

// GridSize is the width and height of a crafting grid.
const GridSize = 3

// Grid is a 3x3 crafting grid in row-major order. Nil, AIR and
// zero-amount slots are empty.
type Grid [GridSize * GridSize]*domain.Item

// GridFromMatrix builds a grid from a host crafting matrix. A 4-slot
// matrix is a 2x2 inventory grid and lands in the top-left corner.
func GridFromMatrix(matrix []*domain.Item) (Grid, error) {
	var g Grid
	switch len(matrix) {
	case 9:
		copy(g[:], matrix)
	case 4:
		g[0], g[1] = matrix[0], matrix[1]
		g[3], g[4] = matrix[2], matrix[3]
	default:
		return g, fmt.Errorf("%w: %d slots, want 4 or 9", domain.ErrInvalidGrid, len(matrix))
	}
	return g, nil
}

// At returns the item at row r, column c.
func (g Grid) At(r, c int) *domain.Item {
	return g[r*GridSize+c]
}

// Set places an item at row r, column c.
func (g *Grid) Set(r, c int, item *domain.Item) {
	g[r*GridSize+c] = item
}

// Items returns the non-empty items in row-major order.
func (g Grid) Items() []*domain.Item {
	var out []*domain.Item
	for _, it := range g {
		if !it.IsEmpty() {
			out = append(out, it)
		}
	}
	return out
}

// Empty reports whether no slot holds an item.
func (g Grid) Empty() bool {
	return len(g.Items()) == 0
}

// SmithingInput holds the three smithing table slots.
type SmithingInput struct {
	Template *domain.Item
	Base     *domain.Item
	Addition *domain.Item
}

func (s SmithingInput) slots() [3]*domain.Item {
	return [3]*domain.Item{s.Template, s.Base, s.Addition}
}
