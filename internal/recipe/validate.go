package recipe

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"slices"
	"strings"

	"github.com/hammamikhairi/ottocraft/internal/domain"
	"github.com/hammamikhairi/ottocraft/internal/ingredient"
)

// Field names used in InvariantError and by the declarative loader.
const (
	FieldType        = "type"
	FieldName        = "name"
	FieldGroup       = "group"
	FieldCategory    = "category"
	FieldPattern     = "pattern"
	FieldIngredients = "ingredients"
	FieldResult      = "result"
	FieldAmount      = "amount"
	FieldCookingTime = "cooking-time"
	FieldExperience  = "experience"
	FieldPriority    = "priority"
)

var namePattern = regexp.MustCompile(`^[a-z0-9._/-]+$`)

// InvariantError reports a recipe that violates a definition rule.
type InvariantError struct {
	Recipe string // "<kind>_<name>" or whatever is known so far
	Field  string
	Err    error
}

func (e *InvariantError) Error() string {
	if e.Recipe == "" {
		return fmt.Sprintf("recipe: %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("recipe %s: %s: %v", e.Recipe, e.Field, e.Err)
}

func (e *InvariantError) Unwrap() error { return e.Err }

// Draft holds the raw fields of a recipe before validation. A zero Amount
// means the default of 1.
type Draft struct {
	Kind        domain.Kind
	Name        string
	Group       string
	Category    string
	Ingredients []ingredient.Ingredient
	Pattern     Pattern
	Result      Result
	Amount      int
	CookingTime int
	Experience  float64
	Priority    int
}

func (d *Draft) label() string {
	switch {
	case d.Kind == domain.KindNone:
		return d.Name
	case d.Name == "":
		return d.Kind.String()
	default:
		return ID{Kind: d.Kind, Name: d.Name}.String()
	}
}

// Validator checks drafts and turns them into definitions.
type Validator struct {
	resolver *Resolver
}

// NewValidator creates a validator whose result checks use resolver.
func NewValidator(resolver *Resolver) *Validator {
	return &Validator{resolver: resolver}
}

// Resolver returns the validator's result resolver.
func (v *Validator) Resolver() *Resolver { return v.resolver }

// Validate checks every rule for the draft's kind and returns the
// immutable definition. The first violation is returned as an
// *InvariantError.
func (v *Validator) Validate(d Draft) (*Definition, error) {
	fail := func(field string, err error) (*Definition, error) {
		return nil, &InvariantError{Recipe: d.label(), Field: field, Err: err}
	}

	if d.Kind == domain.KindNone {
		return fail(FieldType, domain.ErrTypeNotSet)
	}
	if !d.Kind.Valid() {
		return fail(FieldType, fmt.Errorf("%w: %d", domain.ErrUnknownKind, int(d.Kind)))
	}
	if !namePattern.MatchString(d.Name) {
		return fail(FieldName, fmt.Errorf("%w: %q", domain.ErrInvalidName, d.Name))
	}

	category, err := checkCategory(d.Kind, d.Category)
	if err != nil {
		return fail(FieldCategory, err)
	}
	if err := checkIngredients(d.Kind, d.Ingredients); err != nil {
		return fail(FieldIngredients, err)
	}
	if err := checkPattern(d.Kind, d.Pattern, d.Ingredients); err != nil {
		return fail(FieldPattern, err)
	}
	if field, err := checkCooking(d.Kind, d.CookingTime, d.Experience); err != nil {
		return fail(field, err)
	}

	amount := d.Amount
	if amount == 0 {
		amount = 1
	}
	if amount < 0 {
		return fail(FieldAmount, fmt.Errorf("%w: %d", domain.ErrInvalidAmount, d.Amount))
	}
	if d.Result.IsZero() {
		return fail(FieldResult, domain.ErrMissingField)
	}
	if err := v.resolver.Check(d.Result); err != nil {
		return fail(FieldResult, err)
	}

	return &Definition{
		id:          ID{Kind: d.Kind, Name: d.Name},
		group:       d.Group,
		category:    category,
		ingredients: slices.Clone(d.Ingredients),
		pattern:     slices.Clone(d.Pattern),
		result:      d.Result,
		amount:      amount,
		cookingTime: d.CookingTime,
		experience:  d.Experience,
		priority:    d.Priority,
	}, nil
}

// checkCategory returns the normalized category.
func checkCategory(kind domain.Kind, category string) (string, error) {
	c := strings.ToLower(strings.TrimSpace(category))
	if c == "" {
		return "", nil
	}
	allowed := kind.Categories()
	if len(allowed) == 0 {
		return "", fmt.Errorf("%w: %s", domain.ErrCategoryNotAllowed, kind)
	}
	if !slices.Contains(allowed, c) {
		return "", fmt.Errorf("%w: %q not one of %s", domain.ErrInvalidCategory, category, strings.Join(allowed, ", "))
	}
	return c, nil
}

func checkIngredients(kind domain.Kind, ings []ingredient.Ingredient) error {
	if len(ings) == 0 {
		return domain.ErrNoIngredients
	}
	if limit := kind.MaxIngredients(); len(ings) > limit {
		return fmt.Errorf("%w: %d given, %s allows %d", domain.ErrTooManyIngredients, len(ings), kind, limit)
	}
	if kind == domain.KindSmithingTransform && len(ings) != 3 {
		return fmt.Errorf("%w: smithing needs template, base and addition, got %d", domain.ErrMissingField, len(ings))
	}
	for i, ing := range ings {
		if ing == nil {
			return fmt.Errorf("%w: ingredient %d is nil", domain.ErrMissingField, i+1)
		}
	}
	return nil
}

func checkPattern(kind domain.Kind, p Pattern, ings []ingredient.Ingredient) error {
	if kind != domain.KindShapedCrafting {
		if len(p) > 0 {
			return fmt.Errorf("%w: %s", domain.ErrPatternNotAllowed, kind)
		}
		for _, ing := range ings {
			if ing.Sign() != ingredient.NoSign {
				return fmt.Errorf("%w: sign %q on %s", domain.ErrPatternNotAllowed, ing.Sign(), kind)
			}
		}
		return nil
	}
	if err := p.Validate(); err != nil {
		return err
	}

	var errs []error
	seen := make(map[rune]bool, len(ings))
	for _, ing := range ings {
		s := ing.Sign()
		switch {
		case s == ingredient.NoSign:
			errs = append(errs, fmt.Errorf("%w: %s", domain.ErrSignRequired, ing))
		case s == Blank:
			errs = append(errs, fmt.Errorf("%w: a blank sign is reserved for empty cells", domain.ErrInvalidPattern))
		case seen[s]:
			errs = append(errs, fmt.Errorf("%w: %q", domain.ErrDuplicateSign, s))
		default:
			seen[s] = true
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	used := p.Signs()
	for _, s := range used {
		if !seen[s] {
			return fmt.Errorf("%w: %q", domain.ErrUnknownSign, s)
		}
	}
	for _, s := range ingredient.Signs(ings) {
		if !slices.Contains(used, s) {
			return fmt.Errorf("%w: %q", domain.ErrUnusedSign, s)
		}
	}
	return nil
}

// checkCooking returns the offending field on failure.
func checkCooking(kind domain.Kind, cookingTime int, experience float64) (string, error) {
	if !kind.CookingRequired() {
		if cookingTime != 0 {
			return FieldCookingTime, fmt.Errorf("%w: %s", domain.ErrNotCooking, kind)
		}
		if experience != 0 {
			return FieldExperience, fmt.Errorf("%w: %s", domain.ErrNotCooking, kind)
		}
		return "", nil
	}
	if cookingTime <= 0 {
		return FieldCookingTime, fmt.Errorf("%w: got %d", domain.ErrCookingTime, cookingTime)
	}
	if experience < 0 || math.IsNaN(experience) || math.IsInf(experience, 0) {
		return FieldExperience, fmt.Errorf("%w: got %g", domain.ErrInvalidExperience, experience)
	}
	return "", nil
}
