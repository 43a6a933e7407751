package engine

import (
	"slices"

	"github.com/hammamikhairi/ottocraft/internal/domain"
	"github.com/hammamikhairi/ottocraft/internal/recipe"
)

// MatchShaped reports whether grid satisfies a shaped definition. The
// pattern is anchored at the top-left cell and padded with blanks to
// 3x3: blank cells must be empty, sign cells must hold an item accepted
// by the ingredient bound to that sign.
func MatchShaped(def *recipe.Definition, grid Grid) bool {
	if def.Kind() != domain.KindShapedCrafting {
		return false
	}
	p := def.Pattern()
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			item := grid.At(r, c)
			cell := p.Cell(r, c)
			if cell == recipe.Blank {
				if !item.IsEmpty() {
					return false
				}
				continue
			}
			ing, ok := def.IngredientBySign(cell)
			if !ok || !ing.Matches(item) {
				return false
			}
		}
	}
	return true
}

// MatchShapeless reports whether the grid's items can be paired one to
// one with a shapeless definition's ingredients. Each ingredient, in
// declaration order, takes the first remaining item it accepts. The
// assignment is greedy: overlapping ingredients listed in an unlucky
// order can reject a grid that a full bipartite matching would accept.
func MatchShapeless(def *recipe.Definition, grid Grid) bool {
	if def.Kind() != domain.KindShapelessCrafting {
		return false
	}
	pool := grid.Items()
	if len(pool) != def.IngredientCount() {
		return false
	}
	for _, ing := range def.Ingredients() {
		i := slices.IndexFunc(pool, ing.Matches)
		if i < 0 {
			return false
		}
		pool = slices.Delete(pool, i, i+1)
	}
	return len(pool) == 0
}

// MatchSingle reports whether source satisfies a single-ingredient
// definition (cooking kinds and stonecutting).
func MatchSingle(def *recipe.Definition, source *domain.Item) bool {
	if def.Kind().MaxIngredients() != 1 || def.IngredientCount() != 1 {
		return false
	}
	return def.Ingredient(0).Matches(source)
}

// MatchSmithing reports whether each smithing slot satisfies the
// ingredient at the same position.
func MatchSmithing(def *recipe.Definition, input SmithingInput) bool {
	if def.Kind() != domain.KindSmithingTransform || def.IngredientCount() != 3 {
		return false
	}
	for i, item := range input.slots() {
		if !def.Ingredient(i).Matches(item) {
			return false
		}
	}
	return true
}
