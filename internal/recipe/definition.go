// Package recipe defines validated recipe definitions and the builder and
// validator that produce them.
//
// A Definition is immutable once built. Every path that creates one, the
// fluent Builder and the declarative loader alike, goes through
// Validator.Validate so the same invariants hold regardless of origin.
package recipe

import (
	"slices"

	"github.com/hammamikhairi/ottocraft/internal/domain"
	"github.com/hammamikhairi/ottocraft/internal/ingredient"
)

// ID uniquely identifies a recipe among all registered recipes.
type ID struct {
	Kind domain.Kind
	Name string
}

// String returns "<kind>_<name>".
func (id ID) String() string {
	return id.Kind.String() + "_" + id.Name
}

// Key returns the host key "<namespace>:<kind>_<name>".
func (id ID) Key(namespace string) string {
	return namespace + ":" + id.String()
}

// Definition is one validated recipe.
type Definition struct {
	id          ID
	group       string
	category    string
	ingredients []ingredient.Ingredient
	pattern     Pattern
	result      Result
	amount      int
	cookingTime int
	experience  float64
	priority    int
}

// Read-only accessors. Pattern returns a copy; Key prefixes the id with a
// namespace as the registry does.
func (d *Definition) ID() ID               { return d.id }
func (d *Definition) Kind() domain.Kind    { return d.id.Kind }
func (d *Definition) Name() string         { return d.id.Name }
func (d *Definition) Group() string        { return d.group }
func (d *Definition) Category() string     { return d.category }
func (d *Definition) Result() Result       { return d.result }
func (d *Definition) Amount() int          { return d.amount }
func (d *Definition) Priority() int        { return d.priority }
func (d *Definition) Key(ns string) string { return d.id.Key(ns) }
func (d *Definition) Pattern() Pattern     { return slices.Clone(d.pattern) }
func (d *Definition) IngredientCount() int { return len(d.ingredients) }
func (d *Definition) CookingTime() int     { return d.cookingTime }
func (d *Definition) Experience() float64  { return d.experience }
func (d *Definition) String() string       { return d.id.String() }

// Ingredients returns a copy of the ingredient list.
func (d *Definition) Ingredients() []ingredient.Ingredient {
	return slices.Clone(d.ingredients)
}

// Ingredient returns the i-th ingredient in declaration order.
func (d *Definition) Ingredient(i int) ingredient.Ingredient {
	return d.ingredients[i]
}

// IngredientBySign returns the ingredient bound to a pattern sign.
func (d *Definition) IngredientBySign(sign rune) (ingredient.Ingredient, bool) {
	for _, ing := range d.ingredients {
		if ing.Sign() == sign {
			return ing, true
		}
	}
	return nil, false
}

// Draft returns the definition's fields as an editable draft. Validating
// the draft again yields an equal definition.
func (d *Definition) Draft() Draft {
	return Draft{
		Kind:        d.id.Kind,
		Name:        d.id.Name,
		Group:       d.group,
		Category:    d.category,
		Ingredients: slices.Clone(d.ingredients),
		Pattern:     slices.Clone(d.pattern),
		Result:      d.result,
		Amount:      d.amount,
		CookingTime: d.cookingTime,
		Experience:  d.experience,
		Priority:    d.priority,
	}
}

// Equal reports whether two definitions declare the same recipe.
// Ingredients compare by string form, sign and strictness.
func (d *Definition) Equal(o *Definition) bool {
	if d == nil || o == nil {
		return d == o
	}
	if d.id != o.id || d.group != o.group || d.category != o.category ||
		d.result != o.result || d.amount != o.amount || d.cookingTime != o.cookingTime ||
		d.experience != o.experience || d.priority != o.priority ||
		!slices.Equal(d.pattern, o.pattern) || len(d.ingredients) != len(o.ingredients) {
		return false
	}
	for i, a := range d.ingredients {
		b := o.ingredients[i]
		if a.String() != b.String() || a.Sign() != b.Sign() || a.Strict() != b.Strict() {
			return false
		}
	}
	return true
}
