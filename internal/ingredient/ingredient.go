// Package ingredient implements the ingredient kinds a recipe can ask for
// and the parser for ingredient strings such as "tag:planks".
//
// Every ingredient answers one question: does this concrete item satisfy
// me? Ingredients never change after construction and may be shared by
// many recipes.
package ingredient

import (
	"fmt"
	"slices"

	"github.com/hammamikhairi/ottocraft/internal/domain"
)

// Ingredient is a predicate over candidate items. Sign is the pattern
// character binding it to shaped-recipe cells; 0 means no sign.
type Ingredient interface {
	Matches(item *domain.Item) bool
	Sign() rune
	// Strict reports whether the ingredient compares items by full equality.
	Strict() bool
	// String returns the ingredient in parseable string form.
	String() string
}

// NoSign is the sign of ingredients not bound to a pattern.
const NoSign rune = 0

// Compile-time interface checks.
var (
	_ Ingredient = (*Material)(nil)
	_ Ingredient = (*Item)(nil)
	_ Ingredient = (*StrictItem)(nil)
	_ Ingredient = (*Tag)(nil)
	_ Ingredient = (*External)(nil)
)

// Material matches any item of one material regardless of amount or
// metadata.
type Material struct {
	material domain.Material
	sign     rune
}

// NewMaterial creates a material ingredient.
func NewMaterial(m domain.Material, sign rune) *Material {
	return &Material{material: m, sign: sign}
}

// Matches reports whether item is of the ingredient's material.
func (i *Material) Matches(item *domain.Item) bool {
	return !item.IsEmpty() && item.Type == i.material
}

// Sign, Strict and String implement Ingredient. Material returns the
// matched material.
func (i *Material) Sign() rune                { return i.sign }
func (i *Material) Strict() bool              { return false }
func (i *Material) String() string            { return "material:" + string(i.material) }
func (i *Material) Material() domain.Material { return i.material }

// Item matches candidates at least as specific as a template item: same
// type, at least the template amount, and metadata that covers the
// template's custom data keys, lore and custom model data.
type Item struct {
	template *domain.Item
	encoded  string
	sign     rune
}

// NewItem creates a loose item ingredient. encoded is the catalog's
// serialized form of template, or "" when the template is a bare
// single material.
func NewItem(template *domain.Item, encoded string, sign rune) *Item {
	return &Item{template: template.Clone(), encoded: encoded, sign: sign}
}

// Matches applies the loose comparison.
func (i *Item) Matches(item *domain.Item) bool {
	if item.IsEmpty() {
		return false
	}
	t := i.template
	if item.Type != t.Type || item.Amount < t.Amount {
		return false
	}
	if !t.HasMeta() {
		return true
	}
	return coversMeta(item.Meta, t.Meta)
}

// coversMeta reports whether candidate carries everything the template
// asks for. Display name is not compared.
func coversMeta(candidate, template *domain.ItemMeta) bool {
	if candidate == nil {
		candidate = &domain.ItemMeta{}
	}
	for k := range template.Data {
		if _, ok := candidate.Data[k]; !ok {
			return false
		}
	}
	if len(template.Lore) > 0 && !slices.Equal(candidate.Lore, template.Lore) {
		return false
	}
	if template.CustomModelData != 0 && candidate.CustomModelData != template.CustomModelData {
		return false
	}
	return true
}

// Sign and Strict implement Ingredient.
func (i *Item) Sign() rune   { return i.sign }
func (i *Item) Strict() bool { return false }

// String returns "item:<material>" for bare templates and
// "base64:<data>" otherwise.
func (i *Item) String() string { return itemString(i.template, i.encoded) }

// Template returns a copy of the template item.
func (i *Item) Template() *domain.Item { return i.template.Clone() }

func itemString(t *domain.Item, encoded string) string {
	if encoded == "" {
		return "item:" + string(t.Type)
	}
	return "base64:" + encoded
}

// StrictItem matches only candidates equal to the template in type,
// amount and complete metadata.
type StrictItem struct {
	template *domain.Item
	encoded  string
	sign     rune
}

// NewStrictItem creates a strict item ingredient. See NewItem for encoded.
func NewStrictItem(template *domain.Item, encoded string, sign rune) *StrictItem {
	return &StrictItem{template: template.Clone(), encoded: encoded, sign: sign}
}

// Matches applies full equality.
func (i *StrictItem) Matches(item *domain.Item) bool {
	return !item.IsEmpty() && item.Equal(i.template)
}

// Sign and Strict implement Ingredient. String uses the same form as Item.
func (i *StrictItem) Sign() rune     { return i.sign }
func (i *StrictItem) Strict() bool   { return true }
func (i *StrictItem) String() string { return itemString(i.template, i.encoded) }

// Template returns a copy of the template item.
func (i *StrictItem) Template() *domain.Item { return i.template.Clone() }

// Tag matches any item whose material belongs to a tag.
type Tag struct {
	tag  domain.Tag
	sign rune
}

// NewTag creates a tag ingredient.
func NewTag(tag domain.Tag, sign rune) *Tag {
	return &Tag{tag: tag, sign: sign}
}

// Matches reports whether the item's material is tagged.
func (i *Tag) Matches(item *domain.Item) bool {
	return !item.IsEmpty() && i.tag.Contains(item.Type)
}

// Sign and Strict implement Ingredient. String returns "tag:<name>".
func (i *Tag) Sign() rune     { return i.sign }
func (i *Tag) Strict() bool   { return false }
func (i *Tag) String() string { return "tag:" + i.tag.Name() }

// External delegates matching to a provider.
type External struct {
	provider domain.Provider
	data     string
	sign     rune
}

// NewExternal creates a provider-backed ingredient. The provider must
// accept data.
func NewExternal(p domain.Provider, data string, sign rune) (*External, error) {
	if err := p.Validate(data); err != nil {
		return nil, fmt.Errorf("provider %s: %w", p.Name(), err)
	}
	return &External{provider: p, data: data, sign: sign}, nil
}

// Matches asks the provider.
func (i *External) Matches(item *domain.Item) bool {
	return !item.IsEmpty() && i.provider.Matches(i.data, item)
}

// Sign and Strict implement Ingredient. String returns "<provider>:<data>".
func (i *External) Sign() rune     { return i.sign }
func (i *External) Strict() bool   { return false }
func (i *External) String() string { return i.provider.Name() + ":" + i.data }

// Signs returns the distinct non-zero signs of ings in first-seen order.
func Signs(ings []Ingredient) []rune {
	seen := make(map[rune]struct{}, len(ings))
	var out []rune
	for _, ing := range ings {
		s := ing.Sign()
		if s == NoSign {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Describe renders a short human-readable summary used in logs.
func Describe(ing Ingredient) string {
	if ing.Sign() == NoSign {
		return ing.String()
	}
	return fmt.Sprintf("%c=%s", ing.Sign(), ing.String())
}
