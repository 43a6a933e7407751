package display

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/hammamikhairi/ottocraft/internal/catalog"
	"github.com/hammamikhairi/ottocraft/internal/domain"
	"github.com/hammamikhairi/ottocraft/internal/engine"
	"github.com/hammamikhairi/ottocraft/internal/ingredient"
	"github.com/hammamikhairi/ottocraft/internal/logger"
	"github.com/hammamikhairi/ottocraft/internal/recipe"
)

func newBuilder(t *testing.T) *recipe.Builder {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	cat := catalog.NewDefault(log)
	resolver := recipe.NewResolver(cat, nil)
	return recipe.NewBuilder(recipe.NewValidator(resolver), ingredient.NewParser(cat, nil))
}

func TestTitle(t *testing.T) {
	tests := map[string]string{
		"campfire_cooking": "Campfire Cooking",
		"building":         "Building",
		"stone_cutting":    "Stone Cutting",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			if got := Title(in); got != want {
				t.Fatalf("expected %q, got %q", want, got)
			}
		})
	}
	if got := KindLabel(domain.KindShapedCrafting); got != "Crafting Shaped" {
		t.Fatalf("expected Crafting Shaped, got %q", got)
	}
}

func TestRenderDefinition(t *testing.T) {
	def, err := newBuilder(t).
		SetType(domain.KindShapedCrafting).
		SetName("magic_dirt").
		SetCategory("building").
		SetPattern("DDD", "DID", "DDD").
		AddMaterial("DIRT", 'D').
		AddMaterial("DIAMOND", 'I').
		SetResult("DIAMOND").
		SetAmount(4).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	out := RenderDefinition(def, "test:crafting_shaped_magic_dirt")
	for _, want := range []string{
		"Crafting Shaped",
		"test:crafting_shaped_magic_dirt",
		"Building",
		"DID",
		"D=material:DIRT",
		"I=material:DIAMOND",
		"4 x DIAMOND",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "cooking") {
		t.Fatalf("crafting recipe should not show cooking line:\n%s", out)
	}
}

func TestRenderDefinitionCooking(t *testing.T) {
	def, err := newBuilder(t).
		SetType(domain.KindSmelting).
		SetName("iron").
		AddMaterial("RAW_IRON", ingredient.NoSign).
		SetResult("IRON_INGOT").
		SetCookingTime(200).
		SetExperience(0.7).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	out := RenderDefinition(def, "iron")
	if !strings.Contains(out, "200 ticks, 0.70 xp") {
		t.Fatalf("expected cooking line, got:\n%s", out)
	}
}

func TestRenderList(t *testing.T) {
	if out := RenderList(nil, nil); !strings.Contains(out, "no recipes") {
		t.Fatalf("expected empty message, got %q", out)
	}

	def, err := newBuilder(t).
		SetType(domain.KindShapelessCrafting).
		SetName("planks").
		AddMaterial("OAK_LOG", ingredient.NoSign).
		SetResult("OAK_PLANKS").
		SetAmount(4).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	out := RenderList([]*recipe.Definition{def}, func(d *recipe.Definition) string { return d.Key("ns") })
	if !strings.Contains(out, "ns:crafting_shapeless_planks") || !strings.Contains(out, "4 x OAK_PLANKS") {
		t.Fatalf("unexpected list output: %q", out)
	}
}

func TestRenderGrid(t *testing.T) {
	var g engine.Grid
	g.Set(0, 0, domain.NewItem("COAL", 1))
	g.Set(1, 0, domain.NewItem("STICK", 2))

	out := RenderGrid(g)
	if !strings.Contains(out, "COAL") || !strings.Contains(out, "2xSTICK") || !strings.Contains(out, "·") {
		t.Fatalf("unexpected grid output:\n%s", out)
	}
	if n := strings.Count(out, "\n"); n < 4 {
		t.Fatalf("expected boxed three rows, got %d lines:\n%s", n+1, out)
	}
}

func TestRenderDecision(t *testing.T) {
	matched := engine.Decision{Matched: true, Result: domain.NewItem("IRON_INGOT", 1), CookingTime: 200, Experience: 0.7}
	if out := RenderDecision(matched, "k"); !strings.Contains(out, "1 x IRON_INGOT") || !strings.Contains(out, "200 ticks") {
		t.Fatalf("unexpected matched output: %q", out)
	}

	if out := RenderDecision(engine.Decision{}, "k"); !strings.Contains(out, "does not accept") {
		t.Fatalf("unexpected mismatch output: %q", out)
	}

	failed := engine.Decision{Err: &engine.MatchError{Recipe: "k", Err: domain.ErrUnresolvedResult}}
	if out := RenderDecision(failed, "k"); !strings.Contains(out, "recipe k") {
		t.Fatalf("unexpected error output: %q", out)
	}
}

func TestRenderError(t *testing.T) {
	err := errors.Join(errors.New("first"), errors.New("second"))
	out := RenderError(err)
	if strings.Count(out, "✘") != 2 {
		t.Fatalf("expected one line per error, got %q", out)
	}
}

func TestNotifier(t *testing.T) {
	var lines []string
	n := NewNotifier(logger.New(logger.LevelOff, nil), func(format string, a ...any) {
		lines = append(lines, fmt.Sprintf(format, a...))
	})

	if err := n.Notify(context.Background(), "reloaded"); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if err := n.NotifyUrgent(context.Background(), "broken"); err != nil {
		t.Fatalf("notify urgent: %v", err)
	}
	if len(lines) != 2 || !strings.Contains(lines[0], "reloaded") || !strings.Contains(lines[1], "broken") {
		t.Fatalf("unexpected notifications: %q", lines)
	}
}

func TestRenderBar(t *testing.T) {
	bar := renderBar(Status{
		Namespace: "ottocraft",
		Recipes:   12,
		Providers: []string{"gems"},
		Reloaded:  time.Now().Add(-90 * time.Second),
	}, 120)
	for _, want := range []string{"ottocraft", "recipes: 12", "gems", "1m30s ago"} {
		if !strings.Contains(bar, want) {
			t.Fatalf("expected bar to contain %q, got %q", want, bar)
		}
	}
}

func TestFmtAgo(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{-time.Second, "0s ago"},
		{45 * time.Second, "45s ago"},
		{125 * time.Second, "2m05s ago"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := fmtAgo(tt.d); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
