package main

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/hammamikhairi/ottocraft/internal/command"
	"github.com/hammamikhairi/ottocraft/internal/display"
	"github.com/hammamikhairi/ottocraft/internal/reload"
)

// shell runs the interactive prompt. Commands and file watching share
// one goroutine so the registries are never touched concurrently; the
// UI goroutine only reads the published status snapshot.
type shell struct {
	app     *app
	ui      *display.UI
	parser  *command.Parser
	watcher *reload.Watcher
	status  atomic.Pointer[display.Status]
}

func newShell(a *app) *shell {
	s := &shell{app: a, parser: command.NewParser(a.log.Named("command"))}
	s.publish()
	s.ui = display.NewUI(func() display.Status { return *s.status.Load() })
	a.out = s.ui
	s.watcher = reload.NewWatcher(a, a.log.Named("watcher"),
		reload.WithWatchInterval(a.cfg.WatchInterval),
		reload.WithNotifier(display.NewNotifier(a.log, s.ui.Printf)),
		reload.WithCounter(a.registry),
	)
	return s
}

func (s *shell) publish() {
	st := s.app.status()
	s.status.Store(&st)
}

// run reads commands until the input closes, ctx ends or the user quits.
func (s *shell) run(ctx context.Context) {
	s.ui.PrintInfo("type 'help' for commands, 'quit' to exit")
	s.watcher.Prime()

	ticker := time.NewTicker(s.app.cfg.WatchInterval)
	defer ticker.Stop()

	inputCh := s.ui.InputChan()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.watcher.Check(ctx); err != nil {
				s.app.log.Debug("watch: %v", err)
			}
		case input, ok := <-inputCh:
			if !ok {
				return
			}
			cmd := s.parser.Parse(input)
			if cmd.Type == command.Quit {
				return
			}
			if err := s.dispatch(cmd); err != nil {
				s.ui.Println(display.RenderError(err))
			}
		}
		s.publish()
	}
}

func (s *shell) dispatch(cmd command.Command) error {
	a := s.app
	switch cmd.Type {
	case command.List:
		return a.list(cmd.Args)
	case command.Show:
		return a.show(cmd.Args)
	case command.Check:
		return a.check(cmd.Fields())
	case command.Cook:
		return a.cook(cmd.Fields())
	case command.Smith:
		return a.smith(cmd.Fields())
	case command.Export:
		return a.export(cmd.Args)
	case command.Reload:
		err := a.Reload()
		s.watcher.Prime()
		s.ui.PrintInfo(fmt.Sprintf("%d recipes registered", a.registry.Len()))
		return err
	case command.Providers:
		a.listProviders()
	case command.Enable:
		return a.setProvider(cmd.Args, true)
	case command.Disable:
		return a.setProvider(cmd.Args, false)
	case command.Status:
		a.showStatus()
	case command.Help:
		s.help()
	default:
		if cmd.Args == "" {
			return nil
		}
		return errors.New("unknown command " + cmd.Args + "; try 'help'")
	}
	return nil
}

func (s *shell) help() {
	s.ui.PrintInfo("Commands:")
	s.ui.PrintHint("list [kind]                         List recipes, optionally of one kind")
	s.ui.PrintHint("show <key|name|n>                   Show a recipe (n from the last list)")
	s.ui.PrintHint("check [recipe] <grid>               Evaluate a crafting grid, rows split by ' / '")
	s.ui.PrintHint("cook [station|recipe] <item>        Evaluate a single-slot station")
	s.ui.PrintHint("smith [recipe] <tmpl> <base> <add>  Evaluate the smithing table")
	s.ui.PrintHint("export <key|name|n>                 Print a recipe as YAML")
	s.ui.PrintHint("reload                              Reload recipe files now")
	s.ui.PrintHint("providers, enable <p>, disable <p>  Manage item providers")
	s.ui.PrintHint("status                              Show namespace and folders")
	s.ui.PrintHint("quit                                Exit")
}
