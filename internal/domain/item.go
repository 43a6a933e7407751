// Package domain defines the core types and interfaces for recipe
// definitions and matching. All other packages depend on domain; domain
// depends on nothing.
package domain

import (
	"maps"
	"slices"
	"strings"
)

// Material identifies an item type in the host's catalog, e.g. "DIRT".
// Materials are stored upper-case.
type Material string

// Air is the material of an empty slot.
const Air Material = "AIR"

// NormalizeMaterial returns the canonical spelling of a material name.
func NormalizeMaterial(name string) Material {
	return Material(strings.ToUpper(strings.TrimSpace(name)))
}

// String returns the material name.
func (m Material) String() string { return string(m) }

// Item is a concrete stack of items as seen in a crafting or cooking slot.
type Item struct {
	Type   Material
	Amount int
	Meta   *ItemMeta // nil when the item carries no metadata
}

// ItemMeta is the optional metadata attached to an item.
type ItemMeta struct {
	DisplayName string
	Lore        []string
	// CustomModelData is 0 when unset.
	CustomModelData int
	// Data is the item's custom key/value data.
	Data map[string]string
}

// Actor identifies the player performing an interactive craft.
type Actor struct {
	ID   string
	Name string
}

// NewItem returns a metadata-free stack of the given material.
func NewItem(m Material, amount int) *Item {
	return &Item{Type: m, Amount: amount}
}

// IsEmpty reports whether the slot holding i should be treated as empty.
func (i *Item) IsEmpty() bool {
	return i == nil || i.Type == "" || i.Type == Air || i.Amount <= 0
}

// HasMeta reports whether the item carries any non-zero metadata.
func (i *Item) HasMeta() bool {
	return i != nil && !i.Meta.IsZero()
}

// Value returns the custom data stored under key.
func (i *Item) Value(key string) (string, bool) {
	if i == nil || i.Meta == nil {
		return "", false
	}
	v, ok := i.Meta.Data[key]
	return v, ok
}

// Clone returns a deep copy of the item.
func (i *Item) Clone() *Item {
	if i == nil {
		return nil
	}
	out := &Item{Type: i.Type, Amount: i.Amount}
	if i.Meta != nil {
		out.Meta = i.Meta.Clone()
	}
	return out
}

// Equal reports whether two items are identical in type, amount and
// metadata. A nil Meta and a zero Meta are considered equal.
func (i *Item) Equal(o *Item) bool {
	if i == nil || o == nil {
		return i == o
	}
	return i.Type == o.Type && i.Amount == o.Amount && i.Meta.Equal(o.Meta)
}

// IsZero reports whether the metadata carries nothing.
func (m *ItemMeta) IsZero() bool {
	return m == nil || (m.DisplayName == "" && len(m.Lore) == 0 && m.CustomModelData == 0 && len(m.Data) == 0)
}

// Clone returns a deep copy of the metadata.
func (m *ItemMeta) Clone() *ItemMeta {
	if m == nil {
		return nil
	}
	return &ItemMeta{
		DisplayName:     m.DisplayName,
		Lore:            slices.Clone(m.Lore),
		CustomModelData: m.CustomModelData,
		Data:            maps.Clone(m.Data),
	}
}

// Equal compares two metadata values field by field.
func (m *ItemMeta) Equal(o *ItemMeta) bool {
	if m.IsZero() || o.IsZero() {
		return m.IsZero() && o.IsZero()
	}
	return m.DisplayName == o.DisplayName &&
		slices.Equal(m.Lore, o.Lore) &&
		m.CustomModelData == o.CustomModelData &&
		maps.Equal(m.Data, o.Data)
}
