package main

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/hammamikhairi/ottocraft/internal/catalog"
	"github.com/hammamikhairi/ottocraft/internal/config"
	"github.com/hammamikhairi/ottocraft/internal/display"
	"github.com/hammamikhairi/ottocraft/internal/domain"
	"github.com/hammamikhairi/ottocraft/internal/engine"
	"github.com/hammamikhairi/ottocraft/internal/ingredient"
	"github.com/hammamikhairi/ottocraft/internal/loader"
	"github.com/hammamikhairi/ottocraft/internal/logger"
	"github.com/hammamikhairi/ottocraft/internal/notation"
	"github.com/hammamikhairi/ottocraft/internal/provider"
	"github.com/hammamikhairi/ottocraft/internal/recipe"
	"github.com/hammamikhairi/ottocraft/internal/registry"
)

// Compile-time interface check.
var _ registry.Sink = logSink{}

var errUsage = errors.New("usage")

// printer is where command output goes: stdout for one-shot commands,
// the shell UI otherwise.
type printer interface {
	Println(a ...any)
}

type stdout struct{}

func (stdout) Println(a ...any) { fmt.Println(a...) }

// cliActor is the actor passed to interactive recipes evaluated from the
// command line.
var cliActor = &domain.Actor{ID: "cli", Name: "console"}

type app struct {
	cfg       config.Config
	log       *logger.Logger
	providers *provider.Registry
	registry  *registry.Registry
	loader    *loader.Loader
	engine    *engine.Engine
	notation  *notation.Parser
	out       printer

	// listed is the last listing shown, for selection by number.
	listed   []*recipe.Definition
	reloaded atomic.Int64
}

// newApp wires every component from cfg.
func newApp(cfg config.Config, log *logger.Logger, out printer) (*app, error) {
	cat := catalog.NewDefault(log.Named("catalog"))

	providers := provider.NewRegistry(log.Named("provider"))
	for _, p := range demoProviders() {
		if err := providers.Register(p); err != nil {
			return nil, fmt.Errorf("registering provider: %w", err)
		}
	}
	for _, name := range cfg.DisabledProviders {
		if err := providers.Disable(name); err != nil {
			log.Warn("cannot disable provider %s: %v", name, err)
		}
	}

	resolver := recipe.NewResolver(cat, providers)
	validator := recipe.NewValidator(resolver)
	parser := ingredient.NewParser(cat, providers)

	reg := registry.New(cfg.Namespace, log.Named("registry"),
		registry.WithSink(logSink{log: log.Named("host")}),
	)
	decoder := loader.NewDecoder(validator, parser, cfg.StrictKeys)
	ld := loader.New(reg, decoder, log.Named("loader"),
		loader.WithDefaults(defaultRecipes()),
		loader.WithFolders(cfg.RecipeDirs...),
		loader.WithFiles(cfg.RecipeFiles...),
	)

	return &app{
		cfg:       cfg,
		log:       log,
		providers: providers,
		registry:  reg,
		loader:    ld,
		engine:    engine.New(resolver, log.Named("engine"), engine.WithNamespace(cfg.Namespace)),
		notation:  notation.NewParser(cat, providers, log.Named("notation")),
		out:       out,
	}, nil
}

// load registers every recipe file. Broken files are reported and the
// rest stay registered.
func (a *app) load() error {
	err := a.loader.Load()
	a.reloaded.Store(time.Now().UnixNano())
	return err
}

// Files and Reload make the app a reload.Source that records reload
// times for the status bar.
func (a *app) Files() ([]string, error) { return a.loader.Files() }

func (a *app) Reload() error {
	err := a.loader.Reload()
	a.reloaded.Store(time.Now().UnixNano())
	return err
}

func (a *app) status() display.Status {
	s := display.Status{
		Namespace: a.registry.Namespace(),
		Recipes:   a.registry.Len(),
		Providers: a.providers.Names(),
	}
	if ns := a.reloaded.Load(); ns != 0 {
		s.Reloaded = time.Unix(0, ns)
	}
	return s
}

func (a *app) key(def *recipe.Definition) string { return a.registry.Key(def.ID()) }

// resolve finds a definition by registry key, by "kind_name" id, by bare
// name when it is unique, or by number in the last listing.
func (a *app) resolve(ref string) (*recipe.Definition, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(a.listed) {
			return nil, fmt.Errorf("no entry %d in the last listing: %w", n, domain.ErrNotFound)
		}
		return a.listed[n-1], nil
	}
	if def, ok := a.registry.LookupKey(ref); ok {
		return def, nil
	}
	var found []*recipe.Definition
	for _, def := range a.registry.List() {
		if def.Name() == strings.ToLower(ref) {
			found = append(found, def)
		}
	}
	switch len(found) {
	case 0:
		return nil, fmt.Errorf("recipe %s: %w", ref, domain.ErrNotFound)
	case 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("recipe name %s is ambiguous; use a full key", ref)
	}
}

func (a *app) list(filter string) error {
	defs := a.registry.List()
	if filter != "" {
		kind, err := domain.ParseKind(filter)
		if err != nil {
			return err
		}
		defs = a.registry.ListKind(kind)
	}
	a.listed = defs
	if len(defs) == 0 {
		a.out.Println(display.RenderList(nil, a.key))
		return nil
	}
	var b strings.Builder
	for i, line := range strings.Split(display.RenderList(defs, a.key), "\n") {
		fmt.Fprintf(&b, "%3d  %s\n", i+1, line)
	}
	a.out.Println(strings.TrimRight(b.String(), "\n"))
	return nil
}

func (a *app) show(ref string) error {
	if ref == "" {
		return fmt.Errorf("%w: show <key|name|number>", errUsage)
	}
	def, err := a.resolve(ref)
	if err != nil {
		return err
	}
	a.out.Println(display.RenderDefinition(def, a.key(def)))
	return nil
}

func (a *app) export(ref string) error {
	if ref == "" {
		return fmt.Errorf("%w: export <key|name|number>", errUsage)
	}
	def, err := a.resolve(ref)
	if err != nil {
		return err
	}
	data, err := loader.Encode(def)
	if err != nil {
		return err
	}
	a.out.Println(strings.TrimRight(string(data), "\n"))
	return nil
}

// check evaluates a crafting grid. When the first field names a crafting
// recipe only that recipe is tried; otherwise every crafting recipe is,
// highest priority first.
func (a *app) check(fields []string) error {
	if len(fields) == 0 {
		return fmt.Errorf("%w: check [recipe] <grid>", errUsage)
	}
	var target *recipe.Definition
	if len(fields) > 1 {
		if def, err := a.resolve(fields[0]); err == nil && def.Kind().Crafting() {
			target, fields = def, fields[1:]
		}
	}

	grid, err := a.notation.ParseGrid(strings.Join(fields, " "))
	if err != nil {
		return err
	}
	a.out.Println(display.RenderGrid(grid))

	if target != nil {
		a.decision(a.engine.Craft(target, grid, cliActor))
		return nil
	}
	d, ok := a.engine.FindCraft(a.registry.ListKind(domain.KindShapedCrafting, domain.KindShapelessCrafting), grid, cliActor)
	if !ok {
		a.out.Println(display.RenderNoMatch("this grid"))
		return nil
	}
	a.decision(d)
	return nil
}

// cook evaluates one source item. The optional first field is a station
// kind such as "smoking" or a single-ingredient recipe; the default
// station is the furnace.
func (a *app) cook(fields []string) error {
	kind := domain.KindSmelting
	var target *recipe.Definition
	switch len(fields) {
	case 1:
	case 2:
		if k, err := domain.ParseKind(fields[0]); err == nil {
			if k.MaxIngredients() != 1 {
				return fmt.Errorf("%s does not take a single source item", k)
			}
			kind = k
		} else {
			def, err := a.resolve(fields[0])
			if err != nil {
				return err
			}
			target = def
		}
		fields = fields[1:]
	default:
		return fmt.Errorf("%w: cook [station|recipe] <item>", errUsage)
	}

	source, err := a.notation.ParseItem(fields[0])
	if err != nil {
		return err
	}
	if target != nil {
		a.decision(a.engine.Cook(target, source))
		return nil
	}
	d, ok := a.engine.FindCook(a.registry.ListKind(kind), kind, source)
	if !ok {
		a.out.Println(display.RenderNoMatch(fmt.Sprintf("%s at the %s station", fields[0], display.KindLabel(kind))))
		return nil
	}
	a.decision(d)
	return nil
}

// smith evaluates the three smithing slots, optionally against one
// named recipe.
func (a *app) smith(fields []string) error {
	var target *recipe.Definition
	switch len(fields) {
	case 3:
	case 4:
		def, err := a.resolve(fields[0])
		if err != nil {
			return err
		}
		target, fields = def, fields[1:]
	default:
		return fmt.Errorf("%w: smith [recipe] <template> <base> <addition>", errUsage)
	}

	input, err := a.notation.ParseSmithing(fields[0], fields[1], fields[2])
	if err != nil {
		return err
	}
	a.out.Println(display.RenderSmithing(input))

	if target != nil {
		a.decision(a.engine.Smith(target, input, cliActor))
		return nil
	}
	d, ok := a.engine.FindSmith(a.registry.ListKind(domain.KindSmithingTransform), input, cliActor)
	if !ok {
		a.out.Println(display.RenderNoMatch("these smithing slots"))
		return nil
	}
	a.decision(d)
	return nil
}

func (a *app) decision(d engine.Decision) {
	a.out.Println(display.RenderDecision(d, a.key(d.Recipe)))
}

func (a *app) listProviders() {
	enabled := a.providers.Names()
	if len(enabled) == 0 {
		a.out.Println(display.RenderInfo("no providers enabled"))
		return
	}
	slices.Sort(enabled)
	a.out.Println(display.RenderInfo("enabled providers: " + strings.Join(enabled, ", ")))
}

func (a *app) setProvider(name string, enabled bool) error {
	if name == "" {
		return fmt.Errorf("%w: enable|disable <provider>", errUsage)
	}
	toggle, state := a.providers.Disable, "disabled"
	if enabled {
		toggle, state = a.providers.Enable, "enabled"
	}
	if err := toggle(name); err != nil {
		return err
	}
	a.out.Println(display.RenderInfo(fmt.Sprintf("provider %s %s; reload to re-read recipes that use it", name, state)))
	return nil
}

func (a *app) showStatus() {
	s := a.status()
	a.out.Println(display.RenderInfo(fmt.Sprintf("namespace %s, %d recipes, folders %s",
		s.Namespace, s.Recipes, strings.Join(a.loader.Folders(), ", "))))
}

func (a *app) schema() error {
	data, err := loader.SchemaJSON()
	if err != nil {
		return err
	}
	a.out.Println(string(data))
	return nil
}
