package command

import (
	"context"
	"fmt"
	"os"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
)

// Compile-time interface check.
var _ domain.Notifier = (*CLINotifier)(nil)

// Sink is the part of the terminal UI notifications are written to.
// display.UI satisfies it.
type Sink interface {
	PrintChat(text string)
	PrintUrgent(text string)
}

// stdoutSink is used when no UI is running (scripted subcommands).
type stdoutSink struct{}

func (stdoutSink) PrintChat(text string)   { fmt.Fprintln(os.Stdout, text) }
func (stdoutSink) PrintUrgent(text string) { fmt.Fprintln(os.Stderr, text) }

// CLINotifier reports command outcomes to the user: confirmations as chat
// lines, persistence warnings as urgent lines.
type CLINotifier struct {
	log *logger.Logger
	out Sink
}

// NewCLINotifier creates a notifier writing to out, or to stdout/stderr
// when out is nil.
func NewCLINotifier(log *logger.Logger, out Sink) *CLINotifier {
	if out == nil {
		out = stdoutSink{}
	}
	return &CLINotifier{log: log, out: out}
}

// Notify shows a confirmation. Nothing is shown once ctx is done.
func (n *CLINotifier) Notify(ctx context.Context, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n.log.Debug("notice: %s", message)
	n.out.PrintChat(message)
	return nil
}

// NotifyUrgent shows a warning the user must not miss. It is printed even
// after cancellation, since it usually reports unsaved changes.
func (n *CLINotifier) NotifyUrgent(ctx context.Context, message string) error {
	n.log.Warn("urgent: %s", message)
	n.out.PrintUrgent(message)
	return ctx.Err()
}
