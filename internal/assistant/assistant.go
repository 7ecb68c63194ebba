// Package assistant turns command lines into address book operations and styled replies.
package assistant

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/addressbook/internal/book"
	"github.com/smileynet/addressbook/internal/contact"
)

var (
	// ErrArgs indicates a command received the wrong number of arguments.
	ErrArgs = errors.New("assistant: invalid number of arguments")

	// ErrNotFound indicates a command named a contact the book does not hold.
	ErrNotFound = errors.New("assistant: contact not found")
)

// Reply is the outcome of one command line.
type Reply struct {
	Text string // Styled text to show; empty for blank input.
	Exit bool   // The user asked to end the session.
}

// Assistant executes commands against a Book it does not own.
type Assistant struct {
	book   *book.Book
	styles Styles
	now    func() time.Time
	logger *slog.Logger
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithClock sets the source of "today" for birthday lookups.
func WithClock(now func() time.Time) Option {
	return func(a *Assistant) { a.now = now }
}

// WithRenderer styles replies for the given renderer's output.
func WithRenderer(r *lipgloss.Renderer) Option {
	return func(a *Assistant) { a.styles = NewStyles(r) }
}

// WithLogger sets the logger for command diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(a *Assistant) { a.logger = l }
}

// New creates an Assistant operating on b.
func New(b *book.Book, opts ...Option) *Assistant {
	a := &Assistant{
		book:   b,
		styles: NewStyles(NewRenderer(os.Stdout, ColorAuto)),
		now:    time.Now,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Styles returns the styles replies are rendered with.
func (a *Assistant) Styles() Styles {
	return a.styles
}

// ParseInput splits a command line on whitespace and lowercases the command.
// A blank line yields an empty command.
func ParseInput(line string) (string, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}

// Execute runs one command line. It never fails: errors become reply text.
func (a *Assistant) Execute(line string) Reply {
	name, args := ParseInput(line)
	if name == "" {
		return Reply{}
	}

	cmd, ok := lookup(name)
	if !ok {
		return Reply{Text: a.styles.Error.Render("Invalid command.")}
	}
	if cmd.exit {
		return Reply{Text: a.styles.Error.Render("Good bye!"), Exit: true}
	}
	if cmd.arity >= 0 && len(args) != cmd.arity {
		return Reply{Text: a.renderError(ErrArgs)}
	}

	run := cmd.run
	if run == nil {
		run = (*Assistant).help
	}
	text, err := run(a, args)
	if err != nil {
		a.logger.Debug("command failed", "command", name, "err", err)
		return Reply{Text: a.renderError(err)}
	}
	return Reply{Text: text}
}

func (a *Assistant) renderError(err error) string {
	var ve *contact.ValidationError
	switch {
	case errors.Is(err, ErrArgs):
		return a.styles.Error.Render("Invalid number of arguments.")
	case errors.Is(err, ErrNotFound):
		return a.styles.Error.Render("Contact not found.")
	case errors.As(err, &ve):
		return a.styles.Error.Render("Error: " + ve.Reason)
	default:
		return a.styles.Error.Render(fmt.Sprintf("Unexpected error: %v", err))
	}
}

// record finds name or returns ErrNotFound.
func (a *Assistant) record(name string) (*contact.Record, error) {
	r, ok := a.book.Find(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return r, nil
}
