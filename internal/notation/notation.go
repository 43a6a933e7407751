// Package notation parses the compact text form of crafting grids and
// items used on the command line:
//
//	dirt dirt dirt / dirt diamond dirt / dirt dirt dirt
//	coal _ _ / stick
//	4xbeef
//	gems:ruby
//
// Rows are separated by " / " or ";", cells by spaces or commas. "_", "-",
// "." and "air" are empty cells. A cell may carry an "<n>x" stack size.
package notation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/hammamikhairi/ottocraft/internal/domain"
	"github.com/hammamikhairi/ottocraft/internal/engine"
	"github.com/hammamikhairi/ottocraft/internal/logger"
)

// Parser reads items through the host catalog and enabled providers.
type Parser struct {
	catalog   domain.ItemCatalog
	providers domain.ProviderSource
	log       *logger.Logger
	rules     []cellRule
}

type cellKind int

const (
	cellEmpty cellKind = iota
	cellSerialized
	cellProvider
	cellMaterial
)

type cellRule struct {
	regex *regexp.Regexp
	kind  cellKind
}

var (
	stackRe = regexp.MustCompile(`(?i)^(\d+)[x*](.+)$`)
	rowSep  = regexp.MustCompile(`\s+/\s+|\s*;\s*`)
	cellSep = regexp.MustCompile(`[\s,]+`)
)

// NewParser creates a notation parser. providers may be nil.
func NewParser(catalog domain.ItemCatalog, providers domain.ProviderSource, log *logger.Logger) *Parser {
	return &Parser{
		catalog:   catalog,
		providers: providers,
		log:       log,
		rules: []cellRule{
			{regexp.MustCompile(`(?i)^(_|-|\.|air|empty)$`), cellEmpty},
			{regexp.MustCompile(`(?i)^base64:.+$`), cellSerialized},
			{regexp.MustCompile(`^[A-Za-z0-9_.-]+:.+$`), cellProvider},
			{regexp.MustCompile(`^[A-Za-z0-9_]+$`), cellMaterial},
		},
	}
}

// ParseItem parses one cell. Empty cells return nil.
func (p *Parser) ParseItem(token string) (*domain.Item, error) {
	token = strings.TrimSpace(token)
	amount := 1
	if m := stackRe.FindStringSubmatch(token); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%q: %w", token, domain.ErrInvalidAmount)
		}
		amount, token = n, m[2]
	}

	for _, rule := range p.rules {
		if !rule.regex.MatchString(token) {
			continue
		}
		item, err := p.build(rule.kind, token)
		if err != nil || item == nil {
			return nil, err
		}
		if amount != 1 || item.Amount <= 0 {
			item.Amount = amount
		}
		p.log.Debug("cell %q -> %d x %s", token, item.Amount, item.Type)
		return item, nil
	}
	return nil, fmt.Errorf("%w: cannot read %q", domain.ErrInvalidItem, token)
}

func (p *Parser) build(kind cellKind, token string) (*domain.Item, error) {
	switch kind {
	case cellEmpty:
		return nil, nil
	case cellSerialized:
		return p.catalog.DecodeItem(token[len("base64:"):])
	case cellProvider:
		name, data, _ := strings.Cut(token, ":")
		if strings.EqualFold(name, "material") || strings.EqualFold(name, "item") {
			return p.build(cellMaterial, data)
		}
		if p.providers == nil {
			return nil, fmt.Errorf("%q: %w: %s", token, domain.ErrUnknownProvider, name)
		}
		prov, ok := p.providers.Enabled(name)
		if !ok {
			return nil, fmt.Errorf("%q: %w: %s", token, domain.ErrUnknownProvider, name)
		}
		return prov.Resolve(data, nil)
	default:
		m, err := p.catalog.Material(token)
		if err != nil {
			return nil, err
		}
		return domain.NewItem(m, 1), nil
	}
}

// ParseGrid parses a grid of up to 3 rows of up to 3 cells. Missing
// cells are empty, so a 2x2 layout fills the top-left corner.
func (p *Parser) ParseGrid(s string) (engine.Grid, error) {
	var g engine.Grid
	s = strings.TrimSpace(s)
	if s == "" {
		return g, fmt.Errorf("%w: empty", domain.ErrInvalidGrid)
	}
	rows := rowSep.Split(s, -1)
	if len(rows) > engine.GridSize {
		return g, fmt.Errorf("%w: %d rows", domain.ErrInvalidGrid, len(rows))
	}
	for r, row := range rows {
		cells := cellSep.Split(strings.TrimSpace(row), -1)
		if len(cells) > engine.GridSize {
			return g, fmt.Errorf("%w: row %d has %d cells", domain.ErrInvalidGrid, r+1, len(cells))
		}
		for c, cell := range cells {
			if cell == "" {
				continue
			}
			item, err := p.ParseItem(cell)
			if err != nil {
				return g, fmt.Errorf("row %d cell %d: %w", r+1, c+1, err)
			}
			g.Set(r, c, item)
		}
	}
	return g, nil
}

// ParseSmithing parses the three smithing slots.
func (p *Parser) ParseSmithing(template, base, addition string) (engine.SmithingInput, error) {
	var in engine.SmithingInput
	var err error
	if in.Template, err = p.ParseItem(template); err != nil {
		return in, fmt.Errorf("template: %w", err)
	}
	if in.Base, err = p.ParseItem(base); err != nil {
		return in, fmt.Errorf("base: %w", err)
	}
	if in.Addition, err = p.ParseItem(addition); err != nil {
		return in, fmt.Errorf("addition: %w", err)
	}
	return in, nil
}
