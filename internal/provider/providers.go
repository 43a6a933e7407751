package provider

import (
	"fmt"

	"github.com/hammamikhairi/ottocraft/internal/domain"
)

// Compile-time interface checks.
var (
	_ domain.Provider = (*Funcs)(nil)
	_ domain.Provider = (*Keyed)(nil)
)

// Funcs adapts plain functions to domain.Provider. Nil functions fall
// back to permissive defaults: Validate accepts, Matches rejects and
// Resolve fails.
type Funcs struct {
	ProviderName string
	ValidateFunc func(data string) error
	MatchFunc    func(data string, item *domain.Item) bool
	ResolveFunc  func(data string, actor *domain.Actor) (*domain.Item, error)
}

// Name returns the provider name.
func (f *Funcs) Name() string { return f.ProviderName }

// Validate calls ValidateFunc.
func (f *Funcs) Validate(data string) error {
	if f.ValidateFunc == nil {
		return nil
	}
	return f.ValidateFunc(data)
}

// Matches calls MatchFunc.
func (f *Funcs) Matches(data string, item *domain.Item) bool {
	if f.MatchFunc == nil || item.IsEmpty() {
		return false
	}
	return f.MatchFunc(data, item)
}

// Resolve calls ResolveFunc.
func (f *Funcs) Resolve(data string, actor *domain.Actor) (*domain.Item, error) {
	if f.ResolveFunc == nil {
		return nil, fmt.Errorf("provider %s: %w: %s", f.ProviderName, domain.ErrUnresolvedResult, data)
	}
	return f.ResolveFunc(data, actor)
}

// Keyed is a provider for custom items that carry their id in custom
// data. An item matches id when its type equals the registered
// template's type and its custom data at IDKey equals id.
type Keyed struct {
	name  string
	idKey string
	items map[string]*domain.Item
}

// NewKeyed creates a keyed provider. Each template gets idKey=id written
// into its custom data so resolved items match their own ingredient.
func NewKeyed(name, idKey string, items map[string]*domain.Item) *Keyed {
	k := &Keyed{name: name, idKey: idKey, items: make(map[string]*domain.Item, len(items))}
	for id, tmpl := range items {
		c := tmpl.Clone()
		if c.Meta == nil {
			c.Meta = &domain.ItemMeta{}
		}
		data := make(map[string]string, len(c.Meta.Data)+1)
		for dk, dv := range c.Meta.Data {
			data[dk] = dv
		}
		data[idKey] = id
		c.Meta.Data = data
		k.items[id] = c
	}
	return k
}

// Name returns the provider name.
func (k *Keyed) Name() string { return k.name }

// Validate fails for ids that are not registered.
func (k *Keyed) Validate(data string) error {
	if _, ok := k.items[data]; !ok {
		return fmt.Errorf("%s item %q: %w", k.name, data, domain.ErrNotFound)
	}
	return nil
}

// Matches checks the candidate's type and id key.
func (k *Keyed) Matches(data string, item *domain.Item) bool {
	tmpl, ok := k.items[data]
	if !ok || item.IsEmpty() || item.Type != tmpl.Type {
		return false
	}
	id, ok := item.Value(k.idKey)
	return ok && id == data
}

// Resolve returns a copy of the registered template. The actor is not
// consulted.
func (k *Keyed) Resolve(data string, _ *domain.Actor) (*domain.Item, error) {
	tmpl, ok := k.items[data]
	if !ok {
		return nil, fmt.Errorf("%s item %q: %w", k.name, data, domain.ErrUnresolvedResult)
	}
	return tmpl.Clone(), nil
}
