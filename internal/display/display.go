// Package display renders recipe definitions, crafting grids and match
// decisions for the terminal, and provides the interactive shell UI.
//
// Rendering functions return strings so callers decide where output goes:
// stdout for one-shot commands, [UI.Println] inside the shell.
package display

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/hammamikhairi/ottocraft/internal/domain"
	"github.com/hammamikhairi/ottocraft/internal/engine"
	"github.com/hammamikhairi/ottocraft/internal/ingredient"
	"github.com/hammamikhairi/ottocraft/internal/recipe"
)

// ── Styles ───────────────────────────────────────────────────────

var (
	barBg = lipgloss.NewStyle().
		Background(lipgloss.Color("#27272a")).
		Foreground(lipgloss.Color("#a1a1aa"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa"))

	sepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#52525b"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	// BannerStyle is the muted slate used for the startup banner.
	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd"))

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0")).
			Bold(true)

	primaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	secondaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	matchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#86efac"))

	urgentOutputStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#fca5a5"))

	userInputEchoStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#a1a1aa"))

	cellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8")).
			Align(lipgloss.Center)

	gridBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#52525b")).
		Padding(0, 1)
)

// ── Helpers ──────────────────────────────────────────────────────

// Width returns the current terminal column count, or 80 when stdout is
// not a terminal.
func Width() int {
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return 80
}

// Rule returns a horizontal separator sized to the terminal, capped at 72
// columns.
func Rule() string {
	return sepStyle.Render(strings.Repeat("─", min(Width(), 72)))
}

// Title turns a configuration name such as "campfire_cooking" into a
// label such as "Campfire Cooking".
func Title(name string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(name, "_", " "))
}

// KindLabel is Title for a kind.
func KindLabel(k domain.Kind) string { return Title(k.String()) }

// ── Definitions ──────────────────────────────────────────────────

// RenderDefinition renders every field of a definition. key is the
// registry key shown in the header.
func RenderDefinition(def *recipe.Definition, key string) string {
	var b strings.Builder
	b.WriteString(kindStyle.Render(KindLabel(def.Kind())) + "  " + primaryStyle.Render(key) + "\n")

	field := func(name, value string) {
		b.WriteString("  " + labelStyle.Render(fmt.Sprintf("%-12s", name)) + primaryStyle.Render(value) + "\n")
	}
	if def.Group() != "" {
		field("group", def.Group())
	}
	if def.Category() != "" {
		field("category", Title(def.Category()))
	}
	if def.Priority() != 0 {
		field("priority", fmt.Sprint(def.Priority()))
	}
	if p := def.Pattern(); len(p) > 0 {
		field("pattern", "")
		for _, row := range p {
			b.WriteString("    " + cellStyle.Render(strings.ReplaceAll(row, " ", "·")) + "\n")
		}
	}
	field("ingredients", "")
	for _, ing := range def.Ingredients() {
		b.WriteString("    " + primaryStyle.Render(describeIngredient(ing)) + "\n")
	}
	field("result", fmt.Sprintf("%d x %s", def.Amount(), def.Result()))
	if def.Kind().CookingRequired() {
		field("cooking", fmt.Sprintf("%d ticks, %.2f xp", def.CookingTime(), def.Experience()))
	}
	return strings.TrimRight(b.String(), "\n")
}

func describeIngredient(ing ingredient.Ingredient) string {
	s := ingredient.Describe(ing)
	if ing.Strict() {
		s += secondaryStyle.Render(" (strict)")
	}
	return s
}

// RenderList renders one line per definition: kind, key and result.
// keyFn maps a definition to its registry key.
func RenderList(defs []*recipe.Definition, keyFn func(*recipe.Definition) string) string {
	if len(defs) == 0 {
		return secondaryStyle.Render("no recipes registered")
	}
	width := Width()
	var b strings.Builder
	for _, def := range defs {
		line := fmt.Sprintf("%-20s %s", KindLabel(def.Kind()), keyFn(def))
		result := fmt.Sprintf(" → %d x %s", def.Amount(), def.Result())
		if len(line)+len(result) > width && width > len(result)+3 {
			line = line[:width-len(result)-3] + "..."
		}
		b.WriteString(primaryStyle.Render(line) + secondaryStyle.Render(result) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// ── Grids ────────────────────────────────────────────────────────

// RenderGrid renders a 3x3 grid in a box. Empty slots show as "·".
func RenderGrid(g engine.Grid) string {
	cells := make([]string, len(g))
	w := 1
	for i, it := range g {
		cells[i] = itemLabel(it)
		w = max(w, lipgloss.Width(cells[i]))
	}
	rows := make([]string, engine.GridSize)
	for r := range engine.GridSize {
		parts := make([]string, engine.GridSize)
		for c := range engine.GridSize {
			parts[c] = cellStyle.Width(w).Render(cells[r*engine.GridSize+c])
		}
		rows[r] = strings.Join(parts, sepStyle.Render(" │ "))
	}
	return gridBox.Render(strings.Join(rows, "\n"))
}

// RenderSmithing renders the three smithing slots on one line.
func RenderSmithing(in engine.SmithingInput) string {
	return gridBox.Render(strings.Join([]string{
		itemLabel(in.Template), itemLabel(in.Base), itemLabel(in.Addition),
	}, sepStyle.Render(" + ")))
}

func itemLabel(it *domain.Item) string {
	if it.IsEmpty() {
		return "·"
	}
	s := string(it.Type)
	if it.Amount != 1 {
		s = fmt.Sprintf("%dx%s", it.Amount, s)
	}
	if it.HasMeta() {
		s += "*"
	}
	return s
}

// ── Decisions ────────────────────────────────────────────────────

// RenderDecision renders a match outcome. key names the recipe.
func RenderDecision(d engine.Decision, key string) string {
	switch {
	case d.Err != nil:
		return urgentOutputStyle.Render("✘ " + d.Err.Error())
	case !d.Matched:
		return secondaryStyle.Render("· " + key + " does not accept this input")
	}
	result := fmt.Sprintf(" → %d x %s", d.Result.Amount, d.Result.Type)
	if d.Result.HasMeta() {
		result += "*"
	}
	line := matchStyle.Render("✔ "+key) + primaryStyle.Render(result)
	if d.CookingTime > 0 {
		line += secondaryStyle.Render(fmt.Sprintf("  (%d ticks, %.2f xp)", d.CookingTime, d.Experience))
	}
	return line
}

// RenderNoMatch is shown when a search finds no recipe.
func RenderNoMatch(what string) string {
	return secondaryStyle.Render("· no recipe accepts " + what)
}

// RenderError renders an error, one line per joined error.
func RenderError(err error) string {
	lines := strings.Split(err.Error(), "\n")
	for i, l := range lines {
		lines[i] = urgentOutputStyle.Render("✘ " + l)
	}
	return strings.Join(lines, "\n")
}

// RenderInfo renders a plain informational line.
func RenderInfo(text string) string { return infoStyle.Render(text) }
