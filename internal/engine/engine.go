// Package engine evaluates live crafting, cooking and smithing inputs
// against recipe definitions.
package engine

import (
	"errors"
	"fmt"

	"github.com/hammamikhairi/ottocraft/internal/domain"
	"github.com/hammamikhairi/ottocraft/internal/logger"
	"github.com/hammamikhairi/ottocraft/internal/recipe"
)

// Option configures the engine.
type Option func(*Engine)

// WithNamespace sets the namespace used to name recipes in match errors
// and logs.
func WithNamespace(ns string) Option {
	return func(e *Engine) {
		e.namespace = ns
	}
}

// Engine matches inputs and resolves results. The matching itself is
// pure; the engine adds result resolution, logging and error reporting.
type Engine struct {
	resolver  *recipe.Resolver
	log       *logger.Logger
	namespace string
}

// New creates an engine resolving results through resolver.
func New(resolver *recipe.Resolver, log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		resolver: resolver,
		log:      log,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Decision is the outcome of evaluating one input against one recipe.
type Decision struct {
	Recipe  *recipe.Definition
	Matched bool
	// Result is the resolved output stack when Matched is true.
	Result *domain.Item
	// Experience and CookingTime are copied from cooking recipes.
	Experience  float64
	CookingTime int
	// Err is a *MatchError when the input could not be evaluated or the
	// input matched but the result could not be resolved. Matched is
	// false whenever Err is set.
	Err error
}

// MatchError is an evaluation failure attributed to one recipe.
type MatchError struct {
	Recipe string
	Err    error
}

func (e *MatchError) Error() string {
	return fmt.Sprintf("recipe %s: %v", e.Recipe, e.Err)
}

func (e *MatchError) Unwrap() error { return e.Err }

// Craft evaluates a crafting grid against a shaped or shapeless recipe.
func (e *Engine) Craft(def *recipe.Definition, grid Grid, actor *domain.Actor) Decision {
	var ok bool
	switch def.Kind() {
	case domain.KindShapedCrafting:
		ok = MatchShaped(def, grid)
	case domain.KindShapelessCrafting:
		ok = MatchShapeless(def, grid)
	default:
		return e.mismatch(def, "crafting grid")
	}
	return e.decide(def, ok, actor)
}

// Cook evaluates one source item against a cooking or stonecutting
// recipe. No actor is involved.
func (e *Engine) Cook(def *recipe.Definition, source *domain.Item) Decision {
	if def.Kind().MaxIngredients() != 1 {
		return e.mismatch(def, "single source item")
	}
	d := e.decide(def, MatchSingle(def, source), nil)
	if d.Matched {
		d.Experience = def.Experience()
		d.CookingTime = def.CookingTime()
	}
	return d
}

// Smith evaluates the three smithing slots against a smithing recipe.
func (e *Engine) Smith(def *recipe.Definition, input SmithingInput, actor *domain.Actor) Decision {
	if def.Kind() != domain.KindSmithingTransform {
		return e.mismatch(def, "smithing input")
	}
	return e.decide(def, MatchSmithing(def, input), actor)
}

// FindCraft returns the decision for the first crafting definition whose
// ingredients accept grid, in the order given. Non-crafting definitions
// are skipped. The second return value is false when no recipe accepts
// the grid.
func (e *Engine) FindCraft(defs []*recipe.Definition, grid Grid, actor *domain.Actor) (Decision, bool) {
	for _, def := range defs {
		if !def.Kind().Crafting() {
			continue
		}
		if d := e.Craft(def, grid, actor); d.Matched || d.Err != nil {
			return d, true
		}
	}
	return Decision{}, false
}

// FindCook is FindCraft for single-ingredient kinds. kind restricts the
// search to one station, e.g. domain.KindSmoking for a smoker.
func (e *Engine) FindCook(defs []*recipe.Definition, kind domain.Kind, source *domain.Item) (Decision, bool) {
	for _, def := range defs {
		if def.Kind() != kind {
			continue
		}
		if d := e.Cook(def, source); d.Matched || d.Err != nil {
			return d, true
		}
	}
	return Decision{}, false
}

// FindSmith is FindCraft for smithing tables.
func (e *Engine) FindSmith(defs []*recipe.Definition, input SmithingInput, actor *domain.Actor) (Decision, bool) {
	for _, def := range defs {
		if def.Kind() != domain.KindSmithingTransform {
			continue
		}
		if d := e.Smith(def, input, actor); d.Matched || d.Err != nil {
			return d, true
		}
	}
	return Decision{}, false
}

func (e *Engine) decide(def *recipe.Definition, ok bool, actor *domain.Actor) Decision {
	d := Decision{Recipe: def}
	if !ok {
		e.log.Debug("%s: input does not match", e.name(def))
		return d
	}
	if !def.Kind().Interactive() {
		actor = nil
	}
	item, err := e.resolver.Resolve(def.Result(), def.Amount(), actor)
	if err != nil {
		e.log.Warn("%s: matched but result failed: %v", e.name(def), err)
		d.Err = &MatchError{Recipe: e.name(def), Err: err}
		return d
	}
	d.Matched = true
	d.Result = item
	e.log.Debug("%s: matched, result %d x %s", e.name(def), item.Amount, item.Type)
	return d
}

func (e *Engine) mismatch(def *recipe.Definition, input string) Decision {
	err := fmt.Errorf("%w: %s given a %s", domain.ErrKindMismatch, def.Kind(), input)
	return Decision{Recipe: def, Err: &MatchError{Recipe: e.name(def), Err: err}}
}

func (e *Engine) name(def *recipe.Definition) string {
	if e.namespace == "" {
		return def.ID().String()
	}
	return def.Key(e.namespace)
}

// IsMatchError reports whether err is an evaluation failure rather than a
// plain mismatch.
func IsMatchError(err error) bool {
	var me *MatchError
	return errors.As(err, &me)
}
