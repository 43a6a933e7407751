// Package provider keeps the table of external item providers. A
// provider is registered once at startup and then enabled or disabled by
// the host as its backing content source comes and goes; only enabled
// providers take part in ingredient parsing and result resolution.
package provider

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hammamikhairi/ottocraft/internal/domain"
	"github.com/hammamikhairi/ottocraft/internal/logger"
)

// Compile-time interface check.
var _ domain.ProviderSource = (*Registry)(nil)

// Reserved prefixes of the ingredient-string grammar. Providers cannot
// use these names.
var reserved = []string{"material", "item", "base64", "tag"}

type entry struct {
	provider domain.Provider
	enabled  bool
}

// Registry maps provider names to providers. Names are case-insensitive.
// Not safe for concurrent use; the host serializes access.
type Registry struct {
	providers map[string]*entry
	log       *logger.Logger
}

// NewRegistry creates an empty provider registry.
func NewRegistry(log *logger.Logger) *Registry {
	return &Registry{
		providers: make(map[string]*entry),
		log:       log,
	}
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register adds a provider in the enabled state.
func (r *Registry) Register(p domain.Provider) error {
	k := key(p.Name())
	if k == "" {
		return fmt.Errorf("provider name is empty")
	}
	if slices.Contains(reserved, k) {
		return fmt.Errorf("provider name %q is reserved", p.Name())
	}
	if _, ok := r.providers[k]; ok {
		return fmt.Errorf("provider %q: %w", p.Name(), domain.ErrAlreadyExists)
	}
	r.providers[k] = &entry{provider: p, enabled: true}
	r.log.Info("provider registered: %s", k)
	return nil
}

// Enable marks a registered provider as available.
func (r *Registry) Enable(name string) error {
	return r.setEnabled(name, true)
}

// Disable hides a provider from parsing and resolution without
// unregistering it.
func (r *Registry) Disable(name string) error {
	return r.setEnabled(name, false)
}

func (r *Registry) setEnabled(name string, enabled bool) error {
	e, ok := r.providers[key(name)]
	if !ok {
		return fmt.Errorf("provider %q: %w", name, domain.ErrNotFound)
	}
	if e.enabled != enabled {
		e.enabled = enabled
		r.log.Info("provider %s enabled=%v", key(name), enabled)
	}
	return nil
}

// Enabled returns the named provider if it is registered and enabled.
func (r *Registry) Enabled(name string) (domain.Provider, bool) {
	e, ok := r.providers[key(name)]
	if !ok || !e.enabled {
		return nil, false
	}
	return e.provider, true
}

// Names returns the names of enabled providers in sorted order.
func (r *Registry) Names() []string {
	var out []string
	for k, e := range r.providers {
		if e.enabled {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return out
}
