// Package registry holds the registered recipe definitions of one
// namespace and mirrors them into the host through a Sink.
package registry

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/hammamikhairi/ottocraft/internal/domain"
	"github.com/hammamikhairi/ottocraft/internal/logger"
	"github.com/hammamikhairi/ottocraft/internal/recipe"
)

// Sink receives definitions as they are registered and unregistered,
// typically the host's own recipe manager.
type Sink interface {
	Install(key string, def *recipe.Definition) error
	Uninstall(key string)
}

// DuplicateKeyError is returned by Add when the key is taken.
type DuplicateKeyError struct {
	Key string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("recipe %s: %v", e.Key, domain.ErrAlreadyExists)
}

func (e *DuplicateKeyError) Unwrap() error { return domain.ErrAlreadyExists }

// Option configures a Registry.
type Option func(*Registry)

// WithSink mirrors every registration into s.
func WithSink(s Sink) Option {
	return func(r *Registry) {
		r.sink = s
	}
}

// Registry maps recipe keys to definitions. Safe for concurrent use;
// Replace swaps the whole set under one lock so readers never see a mix
// of old and new definitions.
type Registry struct {
	mu        sync.RWMutex
	namespace string
	defs      map[string]*recipe.Definition
	sink      Sink
	log       *logger.Logger
}

// New creates an empty registry for namespace.
func New(namespace string, log *logger.Logger, opts ...Option) *Registry {
	r := &Registry{
		namespace: namespace,
		defs:      make(map[string]*recipe.Definition),
		log:       log,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Namespace returns the key namespace.
func (r *Registry) Namespace() string { return r.namespace }

// Key returns the full key of id in this registry's namespace.
func (r *Registry) Key(id recipe.ID) string { return id.Key(r.namespace) }

// Add registers def. An existing definition with the same id is never
// replaced; Add returns a *DuplicateKeyError instead.
func (r *Registry) Add(def *recipe.Definition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.add(def)
}

func (r *Registry) add(def *recipe.Definition) error {
	key := r.Key(def.ID())
	if _, ok := r.defs[key]; ok {
		r.log.Debug("duplicate recipe key %s", key)
		return &DuplicateKeyError{Key: key}
	}
	if r.sink != nil {
		if err := r.sink.Install(key, def); err != nil {
			return fmt.Errorf("installing %s: %w", key, err)
		}
	}
	r.defs[key] = def
	r.log.Info("registered %s (priority %d)", key, def.Priority())
	return nil
}

// Remove unregisters the definition with id.
func (r *Registry) Remove(id recipe.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := r.Key(id)
	if _, ok := r.defs[key]; !ok {
		return fmt.Errorf("recipe %s: %w", key, domain.ErrNotFound)
	}
	r.remove(key)
	return nil
}

func (r *Registry) remove(key string) {
	if r.sink != nil {
		r.sink.Uninstall(key)
	}
	delete(r.defs, key)
	r.log.Info("unregistered %s", key)
}

// Lookup returns the definition registered under id.
func (r *Registry) Lookup(id recipe.ID) (*recipe.Definition, bool) {
	return r.LookupKey(r.Key(id))
}

// LookupKey returns the definition registered under a full key. A key
// without a namespace is looked up in this registry's namespace.
func (r *Registry) LookupKey(key string) (*recipe.Definition, bool) {
	if !strings.Contains(key, ":") {
		key = r.namespace + ":" + key
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[key]
	return def, ok
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.defs)
}

// List returns all definitions by descending priority. Equal priorities
// are ordered by key.
func (r *Registry) List() []*recipe.Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sorted(nil)
}

// ListKind is List restricted to the given kinds.
func (r *Registry) ListKind(kinds ...domain.Kind) []*recipe.Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sorted(func(d *recipe.Definition) bool {
		return slices.Contains(kinds, d.Kind())
	})
}

func (r *Registry) sorted(keep func(*recipe.Definition) bool) []*recipe.Definition {
	out := make([]*recipe.Definition, 0, len(r.defs))
	for _, d := range r.defs {
		if keep == nil || keep(d) {
			out = append(out, d)
		}
	}
	SortByPriority(out)
	return out
}

// SortByPriority sorts defs in place by descending priority, then by id.
func SortByPriority(defs []*recipe.Definition) {
	slices.SortStableFunc(defs, func(a, b *recipe.Definition) int {
		if a.Priority() != b.Priority() {
			return b.Priority() - a.Priority()
		}
		return strings.Compare(a.ID().String(), b.ID().String())
	})
}

// Publish installs every definition into the sink again, in List order.
// Hosts call it after resetting their own recipe state.
func (r *Registry) Publish() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.sink == nil {
		return nil
	}
	var errs []error
	for _, def := range r.sorted(nil) {
		key := r.Key(def.ID())
		if err := r.sink.Install(key, def); err != nil {
			errs = append(errs, fmt.Errorf("installing %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

// Clear unregisters every definition.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clear()
}

func (r *Registry) clear() {
	for _, key := range slices.Sorted(maps.Keys(r.defs)) {
		r.remove(key)
	}
}

// Replace swaps the registered set for defs: every current definition is
// unregistered before any new one is added, highest priority first. If
// defs contains the same id twice nothing changes and the
// *DuplicateKeyError is returned. Install failures of individual
// definitions are collected and returned; the remaining definitions are
// still registered.
func (r *Registry) Replace(defs []*recipe.Definition) error {
	seen := make(map[recipe.ID]bool, len(defs))
	for _, d := range defs {
		if seen[d.ID()] {
			return &DuplicateKeyError{Key: r.Key(d.ID())}
		}
		seen[d.ID()] = true
	}

	ordered := slices.Clone(defs)
	SortByPriority(ordered)

	r.mu.Lock()
	defer r.mu.Unlock()

	before := len(r.defs)
	r.clear()
	var errs []error
	for _, d := range ordered {
		if err := r.add(d); err != nil {
			errs = append(errs, err)
		}
	}
	r.log.Info("replaced %d recipes with %d", before, len(r.defs))
	return errors.Join(errs...)
}
