package display

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Status is the snapshot shown in the shell's status bar.
type Status struct {
	Namespace string
	Recipes   int
	Providers []string
	// Reloaded is the time of the last successful reload, zero if none.
	Reloaded time.Time
}

// StatusFunc reports the current status. It is called once per second
// from the UI goroutine and must be safe for concurrent use.
type StatusFunc func() Status

// ── UI ───────────────────────────────────────────────────────────

// UI is the interactive shell: a status bar and an input prompt at the
// bottom of the terminal, with all output printed above them.
//
// Call [NewUI] then [UI.Run] (blocking). Other goroutines may call
// [UI.Println], [UI.Printf] and read [UI.InputChan] once [UI.WaitReady]
// returns.
type UI struct {
	program *tea.Program
	status  StatusFunc
	inputCh chan string
	readyCh chan struct{}
	quitCh  chan struct{}
	done    atomic.Bool
}

// NewUI creates the shell UI. status may be nil.
func NewUI(status StatusFunc) *UI {
	if status == nil {
		status = func() Status { return Status{} }
	}
	return &UI{
		status:  status,
		inputCh: make(chan string, 16),
		readyCh: make(chan struct{}),
		quitCh:  make(chan struct{}),
	}
}

// Println prints a line above the prompt. Before Run starts or after it
// returns, output goes straight to stdout.
func (u *UI) Println(a ...any) {
	if u.program != nil && !u.done.Load() {
		u.program.Println(a...)
	} else {
		fmt.Println(a...)
	}
}

// Printf prints formatted text above the prompt on its own line.
func (u *UI) Printf(format string, a ...any) {
	if u.program != nil && !u.done.Load() {
		u.program.Printf(format, a...)
	} else {
		fmt.Printf(format+"\n", a...)
	}
}

// InputChan returns completed input lines.
func (u *UI) InputChan() <-chan string { return u.inputCh }

// PrintInfo prints an informational line.
func (u *UI) PrintInfo(text string) { u.Println(infoStyle.Render("  " + text)) }

// PrintHint prints a dimmed line.
func (u *UI) PrintHint(text string) { u.Println(secondaryStyle.Render("  " + text)) }

// PrintUrgent prints an error line.
func (u *UI) PrintUrgent(text string) { u.Println(urgentOutputStyle.Render("  " + text)) }

// PrintUserInput echoes a typed command into the scrollback.
func (u *UI) PrintUserInput(text string) {
	u.Println(promptStyle.Render("ottocraft") + secondaryStyle.Render("> ") + userInputEchoStyle.Render(text))
}

// WaitReady blocks until the event loop is running.
func (u *UI) WaitReady() { <-u.readyCh }

// Quit stops the event loop.
func (u *UI) Quit() {
	if u.program != nil {
		u.program.Quit()
	}
}

// QuitChan is closed when Run returns.
func (u *UI) QuitChan() <-chan struct{} { return u.quitCh }

// Run starts the event loop and blocks until quit.
func (u *UI) Run() error {
	ti := textinput.New()
	// Plain-text prompt: styled prompts break the input's width math.
	ti.Prompt = prompt
	ti.PromptStyle = promptStyle
	ti.TextStyle = userInputEchoStyle
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8"))
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	m := model{
		status:  u.status,
		current: u.status(),
		input:   ti,
		inputCh: u.inputCh,
		readyCh: u.readyCh,
		echoFn:  u.PrintUserInput,
	}

	u.program = tea.NewProgram(m)
	_, err := u.program.Run()
	u.done.Store(true)
	close(u.quitCh)
	return err
}

// ── Bubble Tea model ─────────────────────────────────────────────

const prompt = "ottocraft> "

type model struct {
	status  StatusFunc
	current Status
	input   textinput.Model
	inputCh chan<- string
	readyCh chan struct{}
	echoFn  func(string)
	width   int
}

type tickMsg time.Time

func (m model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tickCmd(),
		signalReady(m.readyCh),
		tea.SetWindowTitle("ottocraft"),
	)
}

func signalReady(ch chan struct{}) tea.Cmd {
	return func() tea.Msg {
		close(ch)
		return nil
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			return m, tea.Quit
		case tea.KeyEnter:
			v := m.input.Value()
			m.input.Reset()
			if strings.TrimSpace(v) == "" {
				return m, nil
			}
			m.inputCh <- v
			// Echo from a Cmd so Println does not run inside Update.
			echoFn := m.echoFn
			return m, func() tea.Msg {
				echoFn(v)
				return nil
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > len(prompt) {
			m.input.Width = msg.Width - len(prompt)
		}
		return m, nil

	case tickMsg:
		m.current = m.status()
		return m, tickCmd()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(renderBar(m.current, m.width))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	return b.String()
}

func renderBar(s Status, width int) string {
	parts := []string{
		labelStyle.Render("namespace: ") + primaryStyle.Render(s.Namespace),
		labelStyle.Render("recipes: ") + primaryStyle.Render(fmt.Sprint(s.Recipes)),
	}
	if len(s.Providers) > 0 {
		parts = append(parts, labelStyle.Render("providers: ")+primaryStyle.Render(strings.Join(s.Providers, ",")))
	}
	if !s.Reloaded.IsZero() {
		parts = append(parts, labelStyle.Render("reloaded ")+secondaryStyle.Render(fmtAgo(time.Since(s.Reloaded))))
	}

	content := " " + strings.Join(parts, sepStyle.Render("  │  ")) + " "
	if width <= 0 {
		width = 80
	}
	return barBg.Width(width).Render(content)
}

// ── Helpers ──────────────────────────────────────────────────────

func fmtAgo(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	if m == 0 {
		return fmt.Sprintf("%ds ago", s)
	}
	return fmt.Sprintf("%dm%02ds ago", m, s)
}
