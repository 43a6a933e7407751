package recipe

import (
	"fmt"
	"math"
	"slices"

	"github.com/hammamikhairi/ottocraft/internal/domain"
	"github.com/hammamikhairi/ottocraft/internal/ingredient"
)

// Builder constructs a definition step by step. The type must be set
// first; every other setter called before SetType fails. The first
// failing call is remembered and returned by Err and Build, and later
// calls are ignored.
//
//	def, err := recipe.NewBuilder(validator, parser).
//		SetType(domain.KindShapedCrafting).
//		SetName("magic_dirt").
//		SetPattern("DDD", "DID", "DDD").
//		AddMaterial("DIRT", 'D').
//		AddMaterial("DIAMOND", 'I').
//		SetResult("DIAMOND").
//		Build()
type Builder struct {
	validator *Validator
	parser    *ingredient.Parser
	draft     Draft
	err       error
}

// NewBuilder creates a builder. parser is used by the Add* conveniences
// that take names instead of ingredients.
func NewBuilder(validator *Validator, parser *ingredient.Parser) *Builder {
	return &Builder{validator: validator, parser: parser}
}

func (b *Builder) fail(field string, err error) *Builder {
	if b.err == nil {
		b.err = &InvariantError{Recipe: b.draft.label(), Field: field, Err: err}
	}
	return b
}

// ready reports whether a setter may run.
func (b *Builder) ready(field string) bool {
	if b.err != nil {
		return false
	}
	if b.draft.Kind == domain.KindNone {
		b.fail(field, domain.ErrTypeNotSet)
		return false
	}
	return true
}

// Err returns the first error recorded by the builder.
func (b *Builder) Err() error { return b.err }

// SetType sets the recipe kind. Changing the kind later is allowed;
// Build checks the final combination.
func (b *Builder) SetType(kind domain.Kind) *Builder {
	if b.err != nil {
		return b
	}
	if !kind.Valid() {
		return b.fail(FieldType, fmt.Errorf("%w: %d", domain.ErrUnknownKind, int(kind)))
	}
	b.draft.Kind = kind
	return b
}

// SetTypeName sets the kind from its configuration name.
func (b *Builder) SetTypeName(name string) *Builder {
	if b.err != nil {
		return b
	}
	kind, err := domain.ParseKind(name)
	if err != nil {
		return b.fail(FieldType, err)
	}
	return b.SetType(kind)
}

// SetName sets the recipe name.
func (b *Builder) SetName(name string) *Builder {
	if !b.ready(FieldName) {
		return b
	}
	if !namePattern.MatchString(name) {
		return b.fail(FieldName, fmt.Errorf("%w: %q", domain.ErrInvalidName, name))
	}
	b.draft.Name = name
	return b
}

// SetGroup sets the recipe book group.
func (b *Builder) SetGroup(group string) *Builder {
	if !b.ready(FieldGroup) {
		return b
	}
	b.draft.Group = group
	return b
}

// SetCategory sets the recipe book category. Stonecutting recipes reject
// any category.
func (b *Builder) SetCategory(category string) *Builder {
	if !b.ready(FieldCategory) {
		return b
	}
	c, err := checkCategory(b.draft.Kind, category)
	if err != nil {
		return b.fail(FieldCategory, err)
	}
	b.draft.Category = c
	return b
}

// SetPattern sets the shape of a shaped recipe. It must be called before
// any ingredient is added.
func (b *Builder) SetPattern(rows ...string) *Builder {
	if !b.ready(FieldPattern) {
		return b
	}
	if b.draft.Kind != domain.KindShapedCrafting {
		return b.fail(FieldPattern, fmt.Errorf("%w: %s", domain.ErrPatternNotAllowed, b.draft.Kind))
	}
	if len(b.draft.Ingredients) > 0 {
		return b.fail(FieldPattern, fmt.Errorf("%w: set the pattern before adding ingredients", domain.ErrInvalidPattern))
	}
	p := Pattern(slices.Clone(rows))
	if err := p.Validate(); err != nil {
		return b.fail(FieldPattern, err)
	}
	b.draft.Pattern = p
	return b
}

// AddIngredient appends an ingredient. For shaped recipes the pattern
// must already be set and must contain the ingredient's sign.
func (b *Builder) AddIngredient(ing ingredient.Ingredient) *Builder {
	if !b.ready(FieldIngredients) {
		return b
	}
	if ing == nil {
		return b.fail(FieldIngredients, fmt.Errorf("%w: nil ingredient", domain.ErrMissingField))
	}
	kind := b.draft.Kind
	if limit := kind.MaxIngredients(); len(b.draft.Ingredients) >= limit {
		return b.fail(FieldIngredients, fmt.Errorf("%w: %s allows %d", domain.ErrTooManyIngredients, kind, limit))
	}
	if kind == domain.KindShapedCrafting {
		if len(b.draft.Pattern) == 0 {
			return b.fail(FieldIngredients, domain.ErrPatternRequired)
		}
		s := ing.Sign()
		if s == ingredient.NoSign {
			return b.fail(FieldIngredients, fmt.Errorf("%w: %s", domain.ErrSignRequired, ing))
		}
		if !slices.Contains(b.draft.Pattern.Signs(), s) {
			return b.fail(FieldIngredients, fmt.Errorf("%w: %q", domain.ErrUnusedSign, s))
		}
		if slices.Contains(ingredient.Signs(b.draft.Ingredients), s) {
			return b.fail(FieldIngredients, fmt.Errorf("%w: %q", domain.ErrDuplicateSign, s))
		}
	} else if ing.Sign() != ingredient.NoSign {
		return b.fail(FieldIngredients, fmt.Errorf("%w: sign %q on %s", domain.ErrPatternNotAllowed, ing.Sign(), kind))
	}
	b.draft.Ingredients = append(b.draft.Ingredients, ing)
	return b
}

// AddIngredientString parses s with the ingredient grammar and adds it.
func (b *Builder) AddIngredientString(s string, sign rune, strict bool) *Builder {
	if !b.ready(FieldIngredients) {
		return b
	}
	ing, err := b.parser.Parse(s, sign, strict)
	if err != nil {
		return b.fail(FieldIngredients, err)
	}
	return b.AddIngredient(ing)
}

// AddMaterial adds a material ingredient.
func (b *Builder) AddMaterial(name string, sign rune) *Builder {
	if !b.ready(FieldIngredients) {
		return b
	}
	ing, err := b.parser.Material(name, sign)
	if err != nil {
		return b.fail(FieldIngredients, err)
	}
	return b.AddIngredient(ing)
}

// AddItem adds a loose item ingredient built from item.
func (b *Builder) AddItem(item *domain.Item, sign rune) *Builder {
	return b.addItem(item, sign, false)
}

// AddStrictItem adds a strict item ingredient built from item.
func (b *Builder) AddStrictItem(item *domain.Item, sign rune) *Builder {
	return b.addItem(item, sign, true)
}

func (b *Builder) addItem(item *domain.Item, sign rune, strict bool) *Builder {
	if !b.ready(FieldIngredients) {
		return b
	}
	ing, err := b.parser.FromItem(item, sign, strict)
	if err != nil {
		return b.fail(FieldIngredients, err)
	}
	return b.AddIngredient(ing)
}

// AddTag adds a tag ingredient.
func (b *Builder) AddTag(name string, sign rune) *Builder {
	return b.AddIngredientString("tag:"+name, sign, false)
}

// SetResult sets the result from a result string.
func (b *Builder) SetResult(s string) *Builder {
	if !b.ready(FieldResult) {
		return b
	}
	res, err := ParseResult(s)
	if err != nil {
		return b.fail(FieldResult, err)
	}
	b.draft.Result = res
	return b
}

// SetResultItem sets a concrete item as the result. Items carrying
// metadata are stored in serialized form.
func (b *Builder) SetResultItem(item *domain.Item) *Builder {
	if !b.ready(FieldResult) {
		return b
	}
	if item.IsEmpty() {
		return b.fail(FieldResult, fmt.Errorf("%w: empty item", domain.ErrInvalidItem))
	}
	if !item.HasMeta() {
		b.draft.Result = Result{Source: ResultMaterial, Value: string(item.Type)}
		return b.SetAmount(item.Amount)
	}
	res, err := b.validator.Resolver().Encode(item)
	if err != nil {
		return b.fail(FieldResult, err)
	}
	b.draft.Result = res
	return b.SetAmount(item.Amount)
}

// SetAmount sets the result stack size.
func (b *Builder) SetAmount(n int) *Builder {
	if !b.ready(FieldAmount) {
		return b
	}
	if n <= 0 {
		return b.fail(FieldAmount, fmt.Errorf("%w: %d", domain.ErrInvalidAmount, n))
	}
	b.draft.Amount = n
	return b
}

// SetCookingTime sets the cooking duration in ticks. Cooking kinds only.
func (b *Builder) SetCookingTime(ticks int) *Builder {
	if !b.ready(FieldCookingTime) {
		return b
	}
	if !b.draft.Kind.CookingRequired() {
		return b.fail(FieldCookingTime, fmt.Errorf("%w: %s", domain.ErrNotCooking, b.draft.Kind))
	}
	if ticks <= 0 {
		return b.fail(FieldCookingTime, fmt.Errorf("%w: got %d", domain.ErrCookingTime, ticks))
	}
	b.draft.CookingTime = ticks
	return b
}

// SetExperience sets the experience granted per item. Cooking kinds only.
func (b *Builder) SetExperience(xp float64) *Builder {
	if !b.ready(FieldExperience) {
		return b
	}
	if !b.draft.Kind.CookingRequired() {
		return b.fail(FieldExperience, fmt.Errorf("%w: %s", domain.ErrNotCooking, b.draft.Kind))
	}
	if xp < 0 || math.IsNaN(xp) || math.IsInf(xp, 0) {
		return b.fail(FieldExperience, fmt.Errorf("%w: got %g", domain.ErrInvalidExperience, xp))
	}
	b.draft.Experience = xp
	return b
}

// SetPriority sets the registration priority.
func (b *Builder) SetPriority(p int) *Builder {
	if !b.ready(FieldPriority) {
		return b
	}
	b.draft.Priority = p
	return b
}

// Build validates the accumulated fields and returns the definition.
func (b *Builder) Build() (*Definition, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.validator.Validate(b.draft)
}
