// Package catalog provides an in-memory item catalog: a fixed set of
// known materials, a declared table of material tags, and the opaque
// item codec used by "base64:" ingredient and result strings.
package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hammamikhairi/ottocraft/internal/domain"
	"github.com/hammamikhairi/ottocraft/internal/logger"
)

// Compile-time interface check.
var _ domain.ItemCatalog = (*Static)(nil)

// StaticTag is a tag with a fixed member list.
type StaticTag struct {
	name    string
	members map[domain.Material]struct{}
}

// Name returns the tag name.
func (t *StaticTag) Name() string { return t.name }

// Contains reports whether m is tagged.
func (t *StaticTag) Contains(m domain.Material) bool {
	_, ok := t.members[m]
	return ok
}

// Members returns the tagged materials in sorted order.
func (t *StaticTag) Members() []domain.Material {
	out := make([]domain.Material, 0, len(t.members))
	for m := range t.members {
		out = append(out, m)
	}
	slices.Sort(out)
	return out
}

// Option configures a Static catalog.
type Option func(*Static)

// WithMaterials adds materials to the catalog.
func WithMaterials(names ...string) Option {
	return func(s *Static) {
		for _, n := range names {
			s.materials[domain.NormalizeMaterial(n)] = struct{}{}
		}
	}
}

// WithTag declares a tag. Members are added to the material set as well.
// Declaring the same tag twice merges the member lists.
func WithTag(name string, members ...string) Option {
	return func(s *Static) {
		key := strings.ToLower(name)
		tag, ok := s.tags[key]
		if !ok {
			tag = &StaticTag{name: key, members: make(map[domain.Material]struct{})}
			s.tags[key] = tag
		}
		for _, n := range members {
			m := domain.NormalizeMaterial(n)
			tag.members[m] = struct{}{}
			s.materials[m] = struct{}{}
		}
	}
}

// Static is a catalog backed by fixed tables. Not safe for mutation after
// construction; all lookups are read-only.
type Static struct {
	materials map[domain.Material]struct{}
	tags      map[string]*StaticTag
	log       *logger.Logger
}

// New creates a catalog from the given options only.
func New(log *logger.Logger, opts ...Option) *Static {
	s := &Static{
		materials: make(map[domain.Material]struct{}),
		tags:      make(map[string]*StaticTag),
		log:       log,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log.Debug("catalog ready: %d materials, %d tags", len(s.materials), len(s.tags))
	return s
}

// NewDefault creates a catalog preloaded with the built-in vanilla tables,
// followed by any extra options.
func NewDefault(log *logger.Logger, opts ...Option) *Static {
	all := append(defaultOptions(), opts...)
	return New(log, all...)
}

// Material resolves a material name. Names are case-insensitive.
func (s *Static) Material(name string) (domain.Material, error) {
	m := domain.NormalizeMaterial(name)
	if _, ok := s.materials[m]; !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownMaterial, name)
	}
	return m, nil
}

// Tag resolves a tag name. Names are case-insensitive.
func (s *Static) Tag(name string) (domain.Tag, error) {
	tag, ok := s.tags[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownTag, name)
	}
	return tag, nil
}

// Tags returns all declared tag names in sorted order.
func (s *Static) Tags() []string {
	out := make([]string, 0, len(s.tags))
	for name := range s.tags {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// EncodeItem serializes an item. The material must be known.
func (s *Static) EncodeItem(item *domain.Item) (string, error) {
	if item != nil {
		if _, err := s.Material(string(item.Type)); err != nil {
			return "", err
		}
	}
	return EncodeItem(item)
}

// DecodeItem deserializes an item and checks its material.
func (s *Static) DecodeItem(data string) (*domain.Item, error) {
	item, err := DecodeItem(data)
	if err != nil {
		return nil, err
	}
	if _, err := s.Material(string(item.Type)); err != nil {
		return nil, fmt.Errorf("decoded item: %w", err)
	}
	return item, nil
}
