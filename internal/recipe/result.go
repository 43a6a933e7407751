package recipe

import (
	"fmt"
	"strings"

	"github.com/hammamikhairi/ottocraft/internal/domain"
)

// ResultSource says where a result item comes from.
type ResultSource int

const (
	ResultMaterial ResultSource = iota
	ResultItem
	ResultSerialized
	ResultProvider
)

func (s ResultSource) String() string {
	switch s {
	case ResultMaterial:
		return "material"
	case ResultItem:
		return "item"
	case ResultSerialized:
		return "base64"
	case ResultProvider:
		return "provider"
	default:
		return "unknown"
	}
}

// Result is the symbolic description of a recipe's output. It is resolved
// to a concrete item by a Resolver.
type Result struct {
	Source ResultSource
	// Provider is the provider name for ResultProvider results.
	Provider string
	Value    string
}

// ParseResult parses a result string. The grammar is the ingredient
// grammar without tags. Names are not checked against any catalog here.
func ParseResult(s string) (Result, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Result{}, fmt.Errorf("result: %w", domain.ErrMissingField)
	}
	prefix, value, ok := strings.Cut(s, ":")
	if !ok {
		return Result{Source: ResultMaterial, Value: string(domain.NormalizeMaterial(s))}, nil
	}
	if value == "" {
		return Result{}, fmt.Errorf("result %q: %w: empty value", s, domain.ErrMissingField)
	}
	switch p := strings.ToLower(prefix); p {
	case "material":
		return Result{Source: ResultMaterial, Value: string(domain.NormalizeMaterial(value))}, nil
	case "item":
		return Result{Source: ResultItem, Value: string(domain.NormalizeMaterial(value))}, nil
	case "base64":
		return Result{Source: ResultSerialized, Value: value}, nil
	case "tag":
		return Result{}, fmt.Errorf("result %q: %w: a tag is not an item", s, domain.ErrUnresolvedResult)
	default:
		return Result{Source: ResultProvider, Provider: p, Value: value}, nil
	}
}

// String returns the result in parseable form. Material results render
// as the bare material name.
func (r Result) String() string {
	switch r.Source {
	case ResultMaterial:
		return r.Value
	case ResultItem:
		return "item:" + r.Value
	case ResultSerialized:
		return "base64:" + r.Value
	case ResultProvider:
		return r.Provider + ":" + r.Value
	default:
		return ""
	}
}

// IsZero reports whether no result was declared.
func (r Result) IsZero() bool { return r == (Result{}) }

// Dynamic reports whether resolving the result depends on a provider and
// may therefore fail after the recipe was registered.
func (r Result) Dynamic() bool { return r.Source == ResultProvider }

// Resolver turns result descriptors into concrete items using the host's
// item catalog and the enabled providers.
type Resolver struct {
	catalog   domain.ItemCatalog
	providers domain.ProviderSource
}

// NewResolver creates a resolver. providers may be nil.
func NewResolver(catalog domain.ItemCatalog, providers domain.ProviderSource) *Resolver {
	return &Resolver{catalog: catalog, providers: providers}
}

// Catalog returns the catalog the resolver reads from.
func (r *Resolver) Catalog() domain.ItemCatalog { return r.catalog }

// Providers returns the provider source, possibly nil.
func (r *Resolver) Providers() domain.ProviderSource { return r.providers }

// Resolve builds the result item with the given stack size. actor is nil
// for non-interactive recipe kinds.
func (r *Resolver) Resolve(res Result, amount int, actor *domain.Actor) (*domain.Item, error) {
	var item *domain.Item
	switch res.Source {
	case ResultMaterial, ResultItem:
		m, err := r.catalog.Material(res.Value)
		if err != nil {
			return nil, fmt.Errorf("result %s: %w", res, err)
		}
		item = domain.NewItem(m, amount)
	case ResultSerialized:
		decoded, err := r.catalog.DecodeItem(res.Value)
		if err != nil {
			return nil, fmt.Errorf("result %s: %w", res, err)
		}
		item = decoded
	case ResultProvider:
		p, err := r.provider(res)
		if err != nil {
			return nil, err
		}
		resolved, err := p.Resolve(res.Value, actor)
		if err != nil {
			return nil, fmt.Errorf("result %s: %w", res, err)
		}
		if resolved.IsEmpty() {
			return nil, fmt.Errorf("result %s: %w: provider returned no item", res, domain.ErrUnresolvedResult)
		}
		item = resolved.Clone()
	default:
		return nil, fmt.Errorf("result %q: %w", res.Value, domain.ErrUnresolvedResult)
	}
	if amount > 0 {
		item.Amount = amount
	}
	return item, nil
}

// Check verifies a result without needing an actor. Static results are
// resolved; provider results only need an enabled provider that accepts
// the value.
func (r *Resolver) Check(res Result) error {
	if !res.Dynamic() {
		_, err := r.Resolve(res, 1, nil)
		return err
	}
	p, err := r.provider(res)
	if err != nil {
		return err
	}
	if err := p.Validate(res.Value); err != nil {
		return fmt.Errorf("result %s: %w: %v", res, domain.ErrUnresolvedResult, err)
	}
	return nil
}

// Encode serializes item into a base64 result descriptor.
func (r *Resolver) Encode(item *domain.Item) (Result, error) {
	data, err := r.catalog.EncodeItem(item)
	if err != nil {
		return Result{}, fmt.Errorf("result item: %w", err)
	}
	return Result{Source: ResultSerialized, Value: data}, nil
}

func (r *Resolver) provider(res Result) (domain.Provider, error) {
	if r.providers != nil {
		if p, ok := r.providers.Enabled(res.Provider); ok {
			return p, nil
		}
	}
	return nil, fmt.Errorf("result %s: %w: %s", res, domain.ErrUnknownProvider, res.Provider)
}
