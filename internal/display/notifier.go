package display

import (
	"context"
	"fmt"

	"github.com/hammamikhairi/ottocraft/internal/domain"
	"github.com/hammamikhairi/ottocraft/internal/logger"
)

// Compile-time interface check.
var _ domain.Notifier = (*Notifier)(nil)

// PrintFunc prints one formatted line. It matches both fmt.Printf with a
// trailing newline and UI.Printf.
type PrintFunc func(format string, a ...any)

// Notifier writes styled notifications to the terminal.
type Notifier struct {
	log     *logger.Logger
	printFn PrintFunc
}

// NewNotifier creates a terminal notifier. If printFn is nil, output goes
// to stdout.
func NewNotifier(log *logger.Logger, printFn PrintFunc) *Notifier {
	if printFn == nil {
		printFn = func(format string, a ...any) {
			fmt.Printf(format+"\n", a...)
		}
	}
	return &Notifier{log: log, printFn: printFn}
}

// Notify prints a normal notification.
func (n *Notifier) Notify(_ context.Context, message string) error {
	n.log.Debug("notify: %s", message)
	n.printFn("%s", infoStyle.Render(message))
	return nil
}

// NotifyUrgent prints an urgent notification in red.
func (n *Notifier) NotifyUrgent(_ context.Context, message string) error {
	n.log.Debug("notify-urgent: %s", message)
	n.printFn("%s", urgentOutputStyle.Render(message))
	return nil
}
