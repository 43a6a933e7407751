package ingredient

import (
	"fmt"
	"strings"

	"github.com/hammamikhairi/ottocraft/internal/domain"
)

// Prefixes understood by the parser. Any other prefix names a provider.
const (
	PrefixMaterial = "material"
	PrefixItem     = "item"
	PrefixBase64   = "base64"
	PrefixTag      = "tag"
)

// Parser turns ingredient strings into ingredients:
//
//	DIRT                 material (bare)
//	material:DIRT        material
//	item:PAPER           loose item (strict if requested)
//	base64:<data>        serialized item, loose or strict
//	tag:planks           tag membership
//	<provider>:<id>      enabled external provider
type Parser struct {
	catalog   domain.ItemCatalog
	providers domain.ProviderSource
}

// NewParser creates a parser. providers may be nil when no external
// providers exist.
func NewParser(catalog domain.ItemCatalog, providers domain.ProviderSource) *Parser {
	return &Parser{catalog: catalog, providers: providers}
}

// Parse parses s. strict only affects item: and base64: ingredients.
func (p *Parser) Parse(s string, sign rune, strict bool) (Ingredient, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("ingredient: %w: empty string", domain.ErrMissingField)
	}

	prefix, value, ok := strings.Cut(s, ":")
	if !ok {
		return p.material(s, sign)
	}

	switch strings.ToLower(prefix) {
	case PrefixMaterial:
		return p.material(value, sign)
	case PrefixTag:
		tag, err := p.catalog.Tag(value)
		if err != nil {
			return nil, fmt.Errorf("ingredient %q: %w", s, err)
		}
		return NewTag(tag, sign), nil
	case PrefixItem:
		m, err := p.catalog.Material(value)
		if err != nil {
			return nil, fmt.Errorf("ingredient %q: %w", s, err)
		}
		return p.item(domain.NewItem(m, 1), "", sign, strict), nil
	case PrefixBase64:
		item, err := p.catalog.DecodeItem(value)
		if err != nil {
			return nil, fmt.Errorf("ingredient %q: %w", s, err)
		}
		return p.item(item, value, sign, strict), nil
	}

	prov, ok := p.enabled(prefix)
	if !ok {
		return nil, fmt.Errorf("ingredient %q: %w: %s", s, domain.ErrUnknownProvider, prefix)
	}
	ext, err := NewExternal(prov, value, sign)
	if err != nil {
		return nil, fmt.Errorf("ingredient %q: %w", s, err)
	}
	return ext, nil
}

// FromItem builds an item ingredient from a concrete item, serializing it
// through the catalog when it is more than a single bare material.
func (p *Parser) FromItem(item *domain.Item, sign rune, strict bool) (Ingredient, error) {
	if item.IsEmpty() {
		return nil, fmt.Errorf("ingredient: %w: empty item", domain.ErrInvalidItem)
	}
	if _, err := p.catalog.Material(string(item.Type)); err != nil {
		return nil, fmt.Errorf("ingredient: %w", err)
	}
	encoded := ""
	if item.HasMeta() || item.Amount != 1 {
		var err error
		if encoded, err = p.catalog.EncodeItem(item); err != nil {
			return nil, fmt.Errorf("ingredient: %w", err)
		}
	}
	return p.item(item, encoded, sign, strict), nil
}

// Material builds a material ingredient after checking the catalog.
func (p *Parser) Material(name string, sign rune) (Ingredient, error) {
	return p.material(name, sign)
}

func (p *Parser) material(name string, sign rune) (Ingredient, error) {
	m, err := p.catalog.Material(name)
	if err != nil {
		return nil, fmt.Errorf("ingredient: %w", err)
	}
	return NewMaterial(m, sign), nil
}

func (p *Parser) item(item *domain.Item, encoded string, sign rune, strict bool) Ingredient {
	if strict {
		return NewStrictItem(item, encoded, sign)
	}
	return NewItem(item, encoded, sign)
}

func (p *Parser) enabled(name string) (domain.Provider, bool) {
	if p.providers == nil {
		return nil, false
	}
	return p.providers.Enabled(name)
}
