// Package command parses interactive shell input into commands.
package command

import (
	"regexp"
	"strings"

	"github.com/hammamikhairi/ottocraft/internal/logger"
)

// Type classifies a shell command.
type Type int

const (
	Unknown Type = iota
	List
	Show
	Check
	Cook
	Smith
	Export
	Reload
	Providers
	Enable
	Disable
	Status
	Help
	Quit
)

// String returns the canonical command word.
func (t Type) String() string {
	switch t {
	case List:
		return "list"
	case Show:
		return "show"
	case Check:
		return "check"
	case Cook:
		return "cook"
	case Smith:
		return "smith"
	case Export:
		return "export"
	case Reload:
		return "reload"
	case Providers:
		return "providers"
	case Enable:
		return "enable"
	case Disable:
		return "disable"
	case Status:
		return "status"
	case Help:
		return "help"
	case Quit:
		return "quit"
	default:
		return "unknown"
	}
}

// Command is one parsed line. Args is the remainder after the command
// word, trimmed; for Unknown it is the whole input.
type Command struct {
	Type Type
	Args string
}

// Fields splits Args on white space.
func (c Command) Fields() []string { return strings.Fields(c.Args) }

// Parser matches input against command words and their aliases.
type Parser struct {
	log   *logger.Logger
	rules []rule
}

type rule struct {
	regex *regexp.Regexp
	typ   Type
	// args reports whether the command takes arguments.
	args bool
}

// NewParser creates a shell command parser.
func NewParser(log *logger.Logger) *Parser {
	return &Parser{
		log: log,
		rules: []rule{
			{word(`list|ls|recipes`), List, true},
			{word(`show|info|describe`), Show, true},
			{word(`check|craft|grid`), Check, true},
			{word(`cook|smelt|furnace`), Cook, true},
			{word(`smith|upgrade`), Smith, true},
			{word(`export|yaml|dump`), Export, true},
			{word(`reload|r`), Reload, false},
			{word(`providers|plugins`), Providers, false},
			{word(`enable`), Enable, true},
			{word(`disable`), Disable, true},
			{word(`status|where`), Status, false},
			{word(`help|h|\?`), Help, false},
			{word(`quit|exit|q`), Quit, false},
		},
	}
}

// word matches one of the alternatives as the first word of the input.
func word(alts string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^(?:` + alts + `)(?:\s+(.*))?$`)
}

// Parse converts a line of input into a command. A bare number selects
// an entry of the last listing and parses as Show.
func (p *Parser) Parse(input string) Command {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Command{Type: Unknown}
	}

	p.log.Debug("parsing input: %q", trimmed)

	if len(trimmed) <= 3 && isDigits(trimmed) {
		return Command{Type: Show, Args: trimmed}
	}

	for _, r := range p.rules {
		m := r.regex.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		args := strings.TrimSpace(m[1])
		if !r.args && args != "" {
			continue
		}
		p.log.Debug("matched command: %s", r.typ)
		return Command{Type: r.typ, Args: args}
	}

	p.log.Debug("no match, returning unknown command")
	return Command{Type: Unknown, Args: trimmed}
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}
