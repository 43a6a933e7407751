package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hammamikhairi/ottocraft/internal/config"
	"github.com/hammamikhairi/ottocraft/internal/domain"
	"github.com/hammamikhairi/ottocraft/internal/loader"
	"github.com/hammamikhairi/ottocraft/internal/logger"
)

type buffer struct {
	lines []string
}

func (b *buffer) Println(a ...any) { b.lines = append(b.lines, fmt.Sprint(a...)) }

func (b *buffer) String() string { return strings.Join(b.lines, "\n") }

func (b *buffer) reset() { b.lines = nil }

func setupApp(t *testing.T, disabled ...string) (*app, *buffer, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "recipes")
	out := &buffer{}
	cfg := config.Config{
		Namespace:         "test",
		RecipeDirs:        []string{dir},
		DisabledProviders: disabled,
		WatchInterval:     time.Second,
		StrictKeys:        true,
	}
	a, err := newApp(cfg, logger.New(logger.LevelOff, nil), out)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return a, out, dir
}

func TestDefaultsLoad(t *testing.T) {
	a, _, dir := setupApp(t)
	if err := a.load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if n := a.registry.Len(); n != 9 {
		t.Fatalf("expected 9 default recipes, got %d", n)
	}
	if _, err := os.Stat(filepath.Join(dir, "cooking", "iron_ingot.yml")); err != nil {
		t.Fatalf("defaults should be extracted: %v", err)
	}
	if a.status().Reloaded.IsZero() {
		t.Fatal("load should record a reload time")
	}
}

func TestDefaultsWithProviderDisabled(t *testing.T) {
	a, _, _ := setupApp(t, "gems")
	err := a.load()
	var cfgErr *loader.ConfigError
	if !errors.As(err, &cfgErr) || !errors.Is(err, domain.ErrUnknownProvider) {
		t.Fatalf("expected ConfigError for the ruby recipe, got %v", err)
	}
	if n := a.registry.Len(); n != 8 {
		t.Fatalf("expected the other 8 recipes registered, got %d", n)
	}
}

func TestCheck(t *testing.T) {
	a, out, _ := setupApp(t)
	if err := a.load(); err != nil {
		t.Fatalf("load: %v", err)
	}

	tests := []struct {
		name string
		args string
		want string
	}{
		{"shaped search", "dirt dirt dirt / dirt diamond dirt / dirt dirt dirt", "test:crafting_shaped_magic_dirt → 2 x DIAMOND"},
		{"tagged shaped", "charcoal / stick", "4 x TORCH"},
		{"shapeless tag", "_ birch_log", "4 x OAK_PLANKS"},
		{"provider result", "emerald redstone redstone", "1 x EMERALD*"},
		{"named recipe rejects", "magic_dirt coal / stick", "does not accept"},
		{"no match", "stone stone", "no recipe accepts"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out.reset()
			if err := a.check(strings.Fields(tt.args)); err != nil {
				t.Fatalf("check: %v", err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Fatalf("expected output to contain %q, got:\n%s", tt.want, out)
			}
		})
	}

	if err := a.check(nil); !errors.Is(err, errUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if err := a.check([]string{"unobtainium"}); !errors.Is(err, domain.ErrUnknownMaterial) {
		t.Fatalf("expected ErrUnknownMaterial, got %v", err)
	}
}

func TestCheckProviderDisabledAfterLoad(t *testing.T) {
	a, out, _ := setupApp(t)
	if err := a.load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := a.setProvider("gems", false); err != nil {
		t.Fatalf("disable: %v", err)
	}
	out.reset()
	if err := a.check(strings.Fields("emerald redstone redstone")); err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(out.String(), "recipe test:crafting_shapeless_ruby") {
		t.Fatalf("expected a match error for the ruby recipe, got:\n%s", out)
	}
}

func TestCook(t *testing.T) {
	a, out, _ := setupApp(t)
	if err := a.load(); err != nil {
		t.Fatalf("load: %v", err)
	}

	tests := []struct {
		name string
		args string
		want string
	}{
		{"default furnace", "raw_iron", "1 x IRON_INGOT  (200 ticks, 0.70 xp)"},
		{"smoker", "smoking beef", "1 x COOKED_BEEF"},
		{"campfire", "campfire_cooking kelp", "1 x DRIED_KELP"},
		{"stonecutter", "stone_cutting stone", "1 x STONE_BRICKS"},
		{"named recipe", "steak beef", "1 x COOKED_BEEF"},
		{"wrong station", "smoking raw_iron", "no recipe accepts"},
		{"furnace has no steak", "beef", "no recipe accepts"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out.reset()
			if err := a.cook(strings.Fields(tt.args)); err != nil {
				t.Fatalf("cook: %v", err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Fatalf("expected output to contain %q, got:\n%s", tt.want, out)
			}
		})
	}

	if err := a.cook([]string{"crafting_shaped", "dirt"}); err == nil {
		t.Fatal("expected error for a multi-slot station")
	}
	if err := a.cook(nil); !errors.Is(err, errUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestSmith(t *testing.T) {
	a, out, _ := setupApp(t)
	if err := a.load(); err != nil {
		t.Fatalf("load: %v", err)
	}

	if err := a.smith(strings.Fields("netherite_upgrade_smithing_template diamond_sword netherite_ingot")); err != nil {
		t.Fatalf("smith: %v", err)
	}
	if !strings.Contains(out.String(), "1 x NETHERITE_SWORD") {
		t.Fatalf("expected netherite sword, got:\n%s", out)
	}

	out.reset()
	if err := a.smith(strings.Fields("netherite_sword netherite_upgrade_smithing_template diamond_pickaxe netherite_ingot")); err != nil {
		t.Fatalf("smith: %v", err)
	}
	if !strings.Contains(out.String(), "does not accept") {
		t.Fatalf("expected mismatch, got:\n%s", out)
	}

	if err := a.smith([]string{"a", "b"}); !errors.Is(err, errUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestListShowExport(t *testing.T) {
	a, out, _ := setupApp(t)
	if err := a.load(); err != nil {
		t.Fatalf("load: %v", err)
	}

	if err := a.list(""); err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out.lines) != 1 || strings.Count(out.String(), "\n") != 8 {
		t.Fatalf("expected 9 listed lines, got:\n%s", out)
	}
	if !strings.Contains(out.lines[0], "  1  ") || !strings.Contains(strings.Split(out.String(), "\n")[0], "ruby") {
		t.Fatalf("highest priority recipe should be listed first, got:\n%s", out)
	}

	out.reset()
	if err := a.show("1"); err != nil {
		t.Fatalf("show by number: %v", err)
	}
	if !strings.Contains(out.String(), "test:crafting_shapeless_ruby") {
		t.Fatalf("expected ruby recipe, got:\n%s", out)
	}

	out.reset()
	if err := a.list("smelting"); err != nil {
		t.Fatalf("list kind: %v", err)
	}
	if strings.Count(out.String(), "\n") != 0 || !strings.Contains(out.String(), "iron_ingot") {
		t.Fatalf("expected only the smelting recipe, got:\n%s", out)
	}
	if err := a.list("baking"); !errors.Is(err, domain.ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}

	for _, ref := range []string{"test:smelting_iron_ingot", "smelting_iron_ingot", "iron_ingot"} {
		out.reset()
		if err := a.show(ref); err != nil {
			t.Fatalf("show %s: %v", ref, err)
		}
		if !strings.Contains(out.String(), "200 ticks") {
			t.Fatalf("show %s: unexpected output:\n%s", ref, out)
		}
	}
	if err := a.show("nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := a.show("42"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for an out of range number, got %v", err)
	}

	out.reset()
	if err := a.export("magic_dirt"); err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(out.String(), "type: crafting_shaped") || !strings.Contains(out.String(), "- DID") {
		t.Fatalf("unexpected export:\n%s", out)
	}
}

func TestReloadPicksUpNewFile(t *testing.T) {
	a, _, dir := setupApp(t)
	if err := a.load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	gravel := "type: smelting\ningredients:\n  - item: GRAVEL\nresult:\n  item: FLINT\ncooking-time: 100\n"
	if err := os.WriteFile(filepath.Join(dir, "flint.yml"), []byte(gravel), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := a.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if _, ok := a.registry.LookupKey("test:smelting_flint"); !ok {
		t.Fatal("new recipe should be registered after reload")
	}
	if n := a.registry.Len(); n != 10 {
		t.Fatalf("expected 10 recipes, got %d", n)
	}
}

func TestSchema(t *testing.T) {
	a, out, _ := setupApp(t)
	if err := a.schema(); err != nil {
		t.Fatalf("schema: %v", err)
	}
	if !strings.Contains(out.String(), `"cooking-time"`) {
		t.Fatalf("schema should describe cooking-time, got:\n%s", out)
	}
}
