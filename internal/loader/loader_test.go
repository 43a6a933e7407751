package loader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/hammamikhairi/ottocraft/internal/catalog"
	"github.com/hammamikhairi/ottocraft/internal/domain"
	"github.com/hammamikhairi/ottocraft/internal/ingredient"
	"github.com/hammamikhairi/ottocraft/internal/logger"
	"github.com/hammamikhairi/ottocraft/internal/provider"
	"github.com/hammamikhairi/ottocraft/internal/recipe"
	"github.com/hammamikhairi/ottocraft/internal/registry"
)

const magicDirt = `type: crafting_shaped
category: building
pattern:
  - DDD
  - DID
  - DDD
ingredients:
  - item: DIRT
    sign: D
  - item: material:DIAMOND
    sign: I
result:
  item: DIAMOND
  amount: 2
priority: 5
`

const steak = `type: SMELTING
ingredients:
  - item: BEEF
result:
  item: COOKED_BEEF
cooking-time: 200
experience: 0.35
`

type fixture struct {
	decoder  *Decoder
	registry *registry.Registry
	log      *logger.Logger
}

func setup(t *testing.T) *fixture {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	cat := catalog.NewDefault(log)
	providers := provider.NewRegistry(log)
	err := providers.Register(provider.NewKeyed("gems", "gems:id", map[string]*domain.Item{
		"ruby": domain.NewItem("EMERALD", 1),
	}))
	if err != nil {
		t.Fatalf("register provider: %v", err)
	}
	validator := recipe.NewValidator(recipe.NewResolver(cat, providers))
	return &fixture{
		decoder:  NewDecoder(validator, ingredient.NewParser(cat, providers), true),
		registry: registry.New("test", log),
		log:      log,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestDecode(t *testing.T) {
	f := setup(t)
	def, err := f.decoder.Decode("magic_dirt.yml", "magic_dirt", []byte(magicDirt))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if def.Kind() != domain.KindShapedCrafting || def.Name() != "magic_dirt" {
		t.Fatalf("unexpected id %s", def.ID())
	}
	if def.Amount() != 2 || def.Priority() != 5 || def.Category() != "building" {
		t.Fatalf("unexpected fields: amount=%d priority=%d category=%s", def.Amount(), def.Priority(), def.Category())
	}
	if ing, ok := def.IngredientBySign('I'); !ok || ing.String() != "material:DIAMOND" {
		t.Fatalf("expected diamond for I, got %v", ing)
	}

	cooked, err := f.decoder.Decode("steak.yml", "steak", []byte(steak))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cooked.CookingTime() != 200 || cooked.Experience() != 0.35 || cooked.Amount() != 1 {
		t.Fatalf("unexpected cooking fields %d %g %d", cooked.CookingTime(), cooked.Experience(), cooked.Amount())
	}
}

func TestDecodeErrors(t *testing.T) {
	f := setup(t)

	tests := []struct {
		name    string
		input   string
		field   string
		wantErr error
	}{
		{"empty", "", "", domain.ErrMissingField},
		{"missing type", "ingredients: [{item: DIRT}]\nresult: {item: DIRT}\n", "type", domain.ErrTypeNotSet},
		{"unknown type", "type: brewing\n", "type", domain.ErrUnknownKind},
		{"missing result", "type: crafting_shapeless\ningredients: [{item: DIRT}]\n", "result.item", domain.ErrMissingField},
		{"zero amount", "type: crafting_shapeless\ningredients: [{item: DIRT}]\nresult: {item: DIRT, amount: 0}\n", "result.amount", domain.ErrInvalidAmount},
		{"unknown material", "type: crafting_shapeless\ningredients: [{item: UNOBTAINIUM}]\nresult: {item: DIRT}\n", "ingredients[0].item", domain.ErrUnknownMaterial},
		{"unknown tag", "type: crafting_shapeless\ningredients: [{item: 'tag:nope'}]\nresult: {item: DIRT}\n", "ingredients[0].item", domain.ErrUnknownTag},
		{"unknown provider", "type: crafting_shapeless\ningredients: [{item: 'oraxen:x'}]\nresult: {item: DIRT}\n", "ingredients[0].item", domain.ErrUnknownProvider},
		{"long sign", "type: crafting_shaped\npattern: [DD]\ningredients: [{item: DIRT, sign: DD}]\nresult: {item: DIRT}\n", "ingredients[0].sign", domain.ErrInvalidPattern},
		{"ragged pattern", "type: crafting_shaped\npattern: [DD, D]\ningredients: [{item: DIRT, sign: D}]\nresult: {item: DIRT}\n", "pattern", domain.ErrInvalidPattern},
		{"shaped without pattern", "type: crafting_shaped\ningredients: [{item: DIRT, sign: D}]\nresult: {item: DIRT}\n", "pattern", domain.ErrPatternRequired},
		{"zero cooking time", "type: smelting\ningredients: [{item: BEEF}]\nresult: {item: COOKED_BEEF}\ncooking-time: 0\n", "cooking-time", domain.ErrCookingTime},
		{"NaN experience", "type: smelting\ningredients: [{item: BEEF}]\nresult: {item: COOKED_BEEF}\ncooking-time: 100\nexperience: .nan\n", "experience", domain.ErrInvalidExperience},
		{"infinite experience", "type: smelting\ningredients: [{item: BEEF}]\nresult: {item: COOKED_BEEF}\ncooking-time: 100\nexperience: .inf\n", "experience", domain.ErrInvalidExperience},
		{"sign on shapeless", "type: crafting_shapeless\ningredients: [{item: DIRT, sign: D}]\nresult: {item: DIRT}\n", "pattern", domain.ErrPatternNotAllowed},
		{"stonecutting category", "type: stone_cutting\ncategory: misc\ningredients: [{item: STONE}]\nresult: {item: STONE_SLAB}\n", "category", domain.ErrCategoryNotAllowed},
		{"unknown result provider", "type: crafting_shapeless\ningredients: [{item: DIRT}]\nresult: {item: 'oraxen:x'}\n", "result", domain.ErrUnknownProvider},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := f.decoder.Decode("bad.yml", "bad", []byte(tt.input))
			if def != nil {
				t.Fatal("expected no definition")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("expected *ConfigError, got %T", err)
			}
			if ce.Source != "bad.yml" || ce.Field != tt.field {
				t.Fatalf("expected bad.yml/%s, got %s/%s", tt.field, ce.Source, ce.Field)
			}
		})
	}
}

func TestDecodeUnknownKeys(t *testing.T) {
	f := setup(t)
	input := steak + "colour: red\n"
	if _, err := f.decoder.Decode("steak.yml", "steak", []byte(input)); err == nil {
		t.Fatal("strict decoder should reject unknown keys")
	}

	lenient := NewDecoder(f.decoder.validator, f.decoder.parser, false)
	if _, err := lenient.Decode("steak.yml", "steak", []byte(input)); err != nil {
		t.Fatalf("lenient decoder should accept unknown keys: %v", err)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	f := setup(t)
	inputs := map[string]string{
		"magic_dirt": magicDirt,
		"steak":      steak,
		"edge": `type: smithing_transform
ingredients:
  - item: NETHERITE_UPGRADE_SMITHING_TEMPLATE
  - item: item:DIAMOND_SWORD
    strict: true
  - item: tag:coals
result:
  item: gems:ruby
`,
		"spaced": `type: crafting_shaped
group: sticks
pattern:
  - " P"
  - "P "
ingredients:
  - item: tag:planks
    sign: P
result:
  item: item:STICK
  amount: 3
`,
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			def, err := f.decoder.Decode(name+".yml", name, []byte(input))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			data, err := Encode(def)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			again, err := f.decoder.Decode(name+".yml", name, data)
			if err != nil {
				t.Fatalf("decode encoded:\n%s\n%v", data, err)
			}
			if !def.Equal(again) {
				t.Fatalf("round trip changed the definition:\n%s", data)
			}
		})
	}
}

func TestLoadFolder(t *testing.T) {
	f := setup(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "magic_dirt.yml"), magicDirt)
	writeFile(t, filepath.Join(dir, "food", "Steak.yaml"), steak)
	writeFile(t, filepath.Join(dir, "broken.yml"), "type: smelting\ningredients: [{item: BEEF}]\nresult: {item: COOKED_BEEF}\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "not a recipe")

	l := New(f.registry, f.decoder, f.log, WithFolders(dir))
	err := l.Load()

	var ce *ConfigError
	if !errors.As(err, &ce) || !strings.HasSuffix(ce.Source, "broken.yml") {
		t.Fatalf("expected ConfigError for broken.yml, got %v", err)
	}
	if f.registry.Len() != 2 {
		t.Fatalf("expected 2 recipes, got %d", f.registry.Len())
	}
	if _, ok := f.registry.Lookup(recipe.ID{Kind: domain.KindSmelting, Name: "steak"}); !ok {
		t.Fatal("expected steak from the nested folder, named after its file")
	}
	if list := f.registry.List(); list[0].Name() != "magic_dirt" {
		t.Fatalf("expected highest priority first, got %s", list[0])
	}
}

func TestLoadDuplicateAcrossFiles(t *testing.T) {
	f := setup(t)
	a, b := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(a, "steak.yml"), steak)
	writeFile(t, filepath.Join(b, "steak.yml"), steak)

	l := New(f.registry, f.decoder, f.log, WithFolders(a, b))
	err := l.Load()
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
	if f.registry.Len() != 1 {
		t.Fatalf("expected the first steak only, got %d", f.registry.Len())
	}
}

func TestAddFileSkipsBadPaths(t *testing.T) {
	f := setup(t)
	dir := t.TempDir()
	good := filepath.Join(dir, "steak.yml")
	writeFile(t, good, steak)
	writeFile(t, filepath.Join(dir, "readme.md"), "# recipes")

	l := New(f.registry, f.decoder, f.log,
		WithFiles(good, filepath.Join(dir, "missing.yml"), filepath.Join(dir, "readme.md"), dir))
	if err := l.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if f.registry.Len() != 1 {
		t.Fatalf("expected 1 recipe, got %d", f.registry.Len())
	}
}

func TestDefaultsExtraction(t *testing.T) {
	f := setup(t)
	dir := filepath.Join(t.TempDir(), "recipes")
	defaults := fstest.MapFS{
		"magic_dirt.yml":  {Data: []byte(magicDirt)},
		"food/steak.yml":  {Data: []byte(steak)},
		"food/README.txt": {Data: []byte("ignored")},
	}

	l := New(f.registry, f.decoder, f.log, WithFolders(dir), WithDefaults(defaults))
	if err := l.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if f.registry.Len() != 2 {
		t.Fatalf("expected 2 recipes, got %d", f.registry.Len())
	}
	if _, err := os.Stat(filepath.Join(dir, "food", "steak.yml")); err != nil {
		t.Fatalf("expected extracted default: %v", err)
	}

	// An existing folder is left alone.
	if err := os.Remove(filepath.Join(dir, "magic_dirt.yml")); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := l.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if f.registry.Len() != 1 {
		t.Fatalf("expected 1 recipe after reload, got %d", f.registry.Len())
	}
}

func TestReload(t *testing.T) {
	f := setup(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "steak.yml")
	writeFile(t, path, steak)

	l := New(f.registry, f.decoder, f.log, WithFolders(dir))
	if err := l.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}

	writeFile(t, path, strings.Replace(steak, "cooking-time: 200", "cooking-time: 50", 1))
	writeFile(t, filepath.Join(dir, "magic_dirt.yml"), magicDirt)
	if err := l.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}

	def, ok := f.registry.Lookup(recipe.ID{Kind: domain.KindSmelting, Name: "steak"})
	if !ok || def.CookingTime() != 50 {
		t.Fatalf("expected reloaded steak with cooking time 50, got %v", def)
	}
	if f.registry.Len() != 2 {
		t.Fatalf("expected 2 recipes, got %d", f.registry.Len())
	}
}

func TestSchema(t *testing.T) {
	data, err := SchemaJSON()
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	for _, want := range []string{`"cooking-time"`, `"crafting_shaped"`, `"ingredients"`, `"Recipe"`} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("schema missing %s", want)
		}
	}
}

func TestRecipeName(t *testing.T) {
	tests := map[string]string{
		"recipes/magic_dirt.yml":  "magic_dirt",
		"recipes/food/Steak.yaml": "steak",
		"plain":                   "plain",
	}
	for in, want := range tests {
		if got := RecipeName(in); got != want {
			t.Fatalf("%s: expected %s, got %s", in, want, got)
		}
	}
}
