package domain

import (
	"fmt"
	"strings"
)

// Kind enumerates the supported transformation kinds.
type Kind int

const (
	// KindNone is the zero Kind: no type has been chosen yet.
	KindNone Kind = iota
	KindShapedCrafting
	KindShapelessCrafting
	KindBlasting
	KindCampfireCooking
	KindSmoking
	KindStonecutting
	KindSmelting
	KindSmithingTransform
)

// Kinds lists every kind in declaration order.
var Kinds = []Kind{
	KindShapedCrafting,
	KindShapelessCrafting,
	KindBlasting,
	KindCampfireCooking,
	KindSmoking,
	KindStonecutting,
	KindSmelting,
	KindSmithingTransform,
}

// String returns the configuration name of the kind.
func (k Kind) String() string {
	switch k {
	case KindShapedCrafting:
		return "crafting_shaped"
	case KindShapelessCrafting:
		return "crafting_shapeless"
	case KindBlasting:
		return "blasting"
	case KindCampfireCooking:
		return "campfire_cooking"
	case KindSmoking:
		return "smoking"
	case KindStonecutting:
		return "stone_cutting"
	case KindSmelting:
		return "smelting"
	case KindSmithingTransform:
		return "smithing_transform"
	default:
		return "unknown"
	}
}

// ParseKind converts a configuration name to a Kind. Matching is
// case-insensitive.
func ParseKind(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, k := range Kinds {
		if k.String() == n {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k >= KindShapedCrafting && k <= KindSmithingTransform
}

// MaxIngredients returns how many ingredients a recipe of this kind may have.
func (k Kind) MaxIngredients() int {
	switch k {
	case KindShapedCrafting, KindShapelessCrafting:
		return 9
	case KindSmithingTransform:
		return 3
	case KindBlasting, KindCampfireCooking, KindSmoking, KindStonecutting, KindSmelting:
		return 1
	default:
		return 0
	}
}

// CookingRequired reports whether the kind needs a cooking duration.
func (k Kind) CookingRequired() bool {
	switch k {
	case KindBlasting, KindCampfireCooking, KindSmoking, KindSmelting:
		return true
	default:
		return false
	}
}

// Crafting reports whether the kind is evaluated on a crafting grid.
func (k Kind) Crafting() bool {
	return k == KindShapedCrafting || k == KindShapelessCrafting
}

// Interactive reports whether a player is present when the recipe is
// evaluated. Only interactive kinds receive an Actor during result
// resolution.
func (k Kind) Interactive() bool {
	return k.Crafting() || k == KindSmithingTransform
}

// Standard category names recognised by the host.
var (
	CraftingCategories = []string{"building", "redstone", "equipment", "misc"}
	CookingCategories  = []string{"food", "blocks", "misc"}
	SmithingCategories = []string{"building", "redstone", "equipment", "misc", "food", "blocks"}
)

// Categories returns the category names a kind accepts. Stonecutting
// accepts none.
func (k Kind) Categories() []string {
	switch {
	case k.Crafting():
		return CraftingCategories
	case k.CookingRequired():
		return CookingCategories
	case k == KindSmithingTransform:
		return SmithingCategories
	default:
		return nil
	}
}
