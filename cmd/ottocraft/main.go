// ottocraft loads declarative crafting recipes and evaluates crafting
// grids, cooking inputs and smithing slots against them.
//
// Usage:
//
//	ottocraft [-verbose] [-quiet] [-recipes dirs] [-namespace ns] <command> [args]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/hammamikhairi/ottocraft/internal/config"
	"github.com/hammamikhairi/ottocraft/internal/display"
	"github.com/hammamikhairi/ottocraft/internal/logger"
	"github.com/hammamikhairi/ottocraft/internal/reload"
)

const shellLogFile = ".ottocraft/ottocraft.log"

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	verbose := flag.Bool("verbose", cfg.Debug, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	recipes := flag.String("recipes", "", "comma-separated recipe folders (overrides OTTOCRAFT_RECIPE_DIRS)")
	namespace := flag.String("namespace", cfg.Namespace, "namespace of registered recipe keys")
	logFile := flag.String("log-file", "", "file to write logs to (default stderr, "+shellLogFile+" for the shell)")
	flag.Usage = usage
	flag.Parse()

	cfg.Namespace = *namespace
	if *recipes != "" {
		cfg.RecipeDirs = strings.Split(*recipes, ",")
	}

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	// The shell owns the terminal, so its logs go to a file.
	path := *logFile
	if path == "" && args[0] == "shell" {
		path = shellLogFile
	}
	var logOut io.Writer = os.Stderr
	var logCloser io.Closer
	if path != "" && path != "stderr" {
		if dir := filepath.Dir(path); dir != "." {
			_ = os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", path, err)
		} else {
			logOut, logCloser = f, f
		}
	}
	log := logger.New(logger.ParseLevel(*verbose, *quiet), logOut)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, cfg, log, args)
	stop()
	if logCloser != nil {
		logCloser.Close()
	}
	os.Exit(code)
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintln(out, "usage: ottocraft [flags] <command> [args]")
	fmt.Fprintln(out, `
commands:
  list [kind]                          list registered recipes, highest priority first
  show <key|name>                      show one recipe
  check [recipe] <grid>                evaluate a crafting grid, e.g. "coal / stick"
  cook [station|recipe] <item>         evaluate a single-slot station (default smelting)
  smith [recipe] <template> <base> <addition>
                                       evaluate the smithing table
  export <key|name>                    print a recipe as YAML
  providers                            list enabled item providers
  validate                             load every recipe file and report errors
  schema                               print the JSON schema of recipe files
  watch                                reload recipe files when they change
  shell                                interactive prompt

flags:`)
	flag.PrintDefaults()
}

// run executes one command and returns the process exit code.
func run(ctx context.Context, cfg config.Config, log *logger.Logger, args []string) int {
	a, err := newApp(cfg, log, stdout{})
	if err != nil {
		fmt.Fprintln(os.Stderr, display.RenderError(err))
		return 1
	}

	name, rest := args[0], args[1:]
	if name == "schema" {
		return exit(a.schema())
	}

	loadErr := a.load()
	if name == "validate" {
		if loadErr != nil {
			fmt.Fprintln(os.Stderr, display.RenderError(loadErr))
			return 1
		}
		fmt.Println(display.RenderInfo(fmt.Sprintf("%d recipes valid", a.registry.Len())))
		return 0
	}
	if loadErr != nil {
		fmt.Fprintln(os.Stderr, display.RenderError(loadErr))
	}

	switch name {
	case "list":
		return exit(a.list(strings.Join(rest, " ")))
	case "show":
		return exit(a.show(strings.Join(rest, " ")))
	case "export":
		return exit(a.export(strings.Join(rest, " ")))
	case "check":
		return exit(a.check(fields(rest)))
	case "cook":
		return exit(a.cook(fields(rest)))
	case "smith":
		return exit(a.smith(fields(rest)))
	case "providers":
		a.listProviders()
		return 0
	case "watch":
		return watch(ctx, a)
	case "shell":
		return runShell(ctx, a)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", name)
		usage()
		return 2
	}
}

// fields re-splits arguments so a quoted grid and separate cells parse
// the same way.
func fields(args []string) []string {
	return strings.Fields(strings.Join(args, " "))
}

func exit(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		fmt.Fprintln(os.Stderr, err)
		return 2
	default:
		fmt.Fprintln(os.Stderr, display.RenderError(err))
		return 1
	}
}

func watch(ctx context.Context, a *app) int {
	w := reload.NewWatcher(a, a.log.Named("watcher"),
		reload.WithWatchInterval(a.cfg.WatchInterval),
		reload.WithNotifier(display.NewNotifier(a.log, nil)),
		reload.WithCounter(a.registry),
	)
	fmt.Println(display.RenderInfo(fmt.Sprintf("watching %s, %d recipes registered (ctrl-c to stop)",
		strings.Join(a.loader.Folders(), ", "), a.registry.Len())))
	w.Run(ctx)
	return 0
}

func runShell(ctx context.Context, a *app) int {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sh := newShell(a)
	fmt.Println(display.RenderBanner())

	go func() {
		sh.ui.WaitReady()
		sh.run(ctx)
		sh.ui.Quit()
	}()

	// Bubble Tea owns the terminal until quit.
	if err := sh.ui.Run(); err != nil {
		a.log.Error("display: %v", err)
		return 1
	}
	return 0
}
