package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/ottocraft/internal/domain"
	"github.com/hammamikhairi/ottocraft/internal/ingredient"
	"github.com/hammamikhairi/ottocraft/internal/recipe"
)

// Document is the declarative form of one recipe, one per file.
type Document struct {
	Type        string               `yaml:"type" json:"type" jsonschema:"required,enum=crafting_shaped,enum=crafting_shapeless,enum=blasting,enum=campfire_cooking,enum=smoking,enum=stone_cutting,enum=smelting,enum=smithing_transform"`
	Category    string               `yaml:"category,omitempty" json:"category,omitempty" jsonschema:"description=Recipe book category"`
	Group       string               `yaml:"group,omitempty" json:"group,omitempty" jsonschema:"description=Recipe book group"`
	Pattern     []string             `yaml:"pattern,omitempty" json:"pattern,omitempty" jsonschema:"maxItems=3,description=Shape rows for crafting_shaped only"`
	Ingredients []IngredientDocument `yaml:"ingredients" json:"ingredients" jsonschema:"required,minItems=1,maxItems=9"`
	Result      ResultDocument       `yaml:"result" json:"result" jsonschema:"required"`
	CookingTime int                  `yaml:"cooking-time,omitempty" json:"cooking-time,omitempty" jsonschema:"minimum=1,description=Cooking duration in ticks"`
	Experience  float64              `yaml:"experience,omitempty" json:"experience,omitempty" jsonschema:"minimum=0"`
	Priority    int                  `yaml:"priority,omitempty" json:"priority,omitempty" jsonschema:"description=Higher priorities register first"`
}

// IngredientDocument is one entry of a recipe's ingredient list.
type IngredientDocument struct {
	Item   string `yaml:"item" json:"item" jsonschema:"required,description=Ingredient string such as DIRT or tag:planks"`
	Sign   string `yaml:"sign,omitempty" json:"sign,omitempty" jsonschema:"maxLength=1"`
	Strict bool   `yaml:"strict,omitempty" json:"strict,omitempty"`
}

// ResultDocument is a recipe's output.
type ResultDocument struct {
	Item   string `yaml:"item" json:"item" jsonschema:"required"`
	Amount *int   `yaml:"amount,omitempty" json:"amount,omitempty" jsonschema:"minimum=1"`
}

// ConfigError reports malformed declarative input.
type ConfigError struct {
	Source string // file path or other origin
	Recipe string
	Field  string
	Err    error
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString(e.Source)
	if e.Recipe != "" {
		fmt.Fprintf(&b, ": recipe %s", e.Recipe)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, ": %s", e.Field)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Decoder turns documents into definitions.
type Decoder struct {
	validator *recipe.Validator
	parser    *ingredient.Parser
	strict    bool
}

// NewDecoder creates a decoder. With strictKeys, unknown document keys
// are errors.
func NewDecoder(validator *recipe.Validator, parser *ingredient.Parser, strictKeys bool) *Decoder {
	return &Decoder{validator: validator, parser: parser, strict: strictKeys}
}

// Decode parses one YAML document named name. Every failure is a
// *ConfigError with Source set to source.
func (d *Decoder) Decode(source, name string, data []byte) (*recipe.Definition, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(d.strict)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			err = fmt.Errorf("%w: empty document", domain.ErrMissingField)
		}
		return nil, &ConfigError{Source: source, Recipe: name, Err: err}
	}
	return d.Build(source, name, doc)
}

// Build converts an already decoded document.
func (d *Decoder) Build(source, name string, doc Document) (*recipe.Definition, error) {
	fail := func(field string, err error) (*recipe.Definition, error) {
		return nil, &ConfigError{Source: source, Recipe: name, Field: field, Err: err}
	}

	if strings.TrimSpace(doc.Type) == "" {
		return fail(recipe.FieldType, domain.ErrTypeNotSet)
	}
	kind, err := domain.ParseKind(doc.Type)
	if err != nil {
		return fail(recipe.FieldType, err)
	}

	draft := recipe.Draft{
		Kind:        kind,
		Name:        name,
		Group:       doc.Group,
		Category:    doc.Category,
		Pattern:     recipe.Pattern(doc.Pattern),
		CookingTime: doc.CookingTime,
		Experience:  doc.Experience,
		Priority:    doc.Priority,
	}

	for i, ingDoc := range doc.Ingredients {
		field := fmt.Sprintf("%s[%d]", recipe.FieldIngredients, i)
		sign, err := parseSign(ingDoc.Sign)
		if err != nil {
			return fail(field+".sign", err)
		}
		ing, err := d.parser.Parse(ingDoc.Item, sign, ingDoc.Strict)
		if err != nil {
			return fail(field+".item", err)
		}
		draft.Ingredients = append(draft.Ingredients, ing)
	}

	if strings.TrimSpace(doc.Result.Item) == "" {
		return fail("result.item", domain.ErrMissingField)
	}
	if draft.Result, err = recipe.ParseResult(doc.Result.Item); err != nil {
		return fail("result.item", err)
	}
	if doc.Result.Amount != nil {
		if *doc.Result.Amount <= 0 {
			return fail("result.amount", fmt.Errorf("%w: %d", domain.ErrInvalidAmount, *doc.Result.Amount))
		}
		draft.Amount = *doc.Result.Amount
	}

	def, err := d.validator.Validate(draft)
	if err != nil {
		var inv *recipe.InvariantError
		if errors.As(err, &inv) {
			return nil, &ConfigError{Source: source, Recipe: inv.Recipe, Field: inv.Field, Err: inv.Err}
		}
		return fail("", err)
	}
	return def, nil
}

func parseSign(s string) (rune, error) {
	switch utf8.RuneCountInString(s) {
	case 0:
		return ingredient.NoSign, nil
	case 1:
		r, _ := utf8.DecodeRuneInString(s)
		return r, nil
	default:
		return 0, fmt.Errorf("%w: sign %q must be one character", domain.ErrInvalidPattern, s)
	}
}

// ToDocument converts a definition to its declarative form.
func ToDocument(def *recipe.Definition) Document {
	doc := Document{
		Type:        def.Kind().String(),
		Category:    def.Category(),
		Group:       def.Group(),
		Pattern:     def.Pattern(),
		Result:      ResultDocument{Item: def.Result().String()},
		CookingTime: def.CookingTime(),
		Experience:  def.Experience(),
		Priority:    def.Priority(),
	}
	if def.Amount() != 1 {
		amount := def.Amount()
		doc.Result.Amount = &amount
	}
	for _, ing := range def.Ingredients() {
		d := IngredientDocument{Item: ing.String(), Strict: ing.Strict()}
		if ing.Sign() != ingredient.NoSign {
			d.Sign = string(ing.Sign())
		}
		doc.Ingredients = append(doc.Ingredients, d)
	}
	return doc
}

// Encode writes a definition as a YAML document. Decoding the output
// under the definition's name yields an equal definition.
func Encode(def *recipe.Definition) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(ToDocument(def)); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", def.ID(), err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", def.ID(), err)
	}
	return buf.Bytes(), nil
}
