// Package session runs the interactive command loop around an assistant.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/smileynet/addressbook/internal/assistant"
)

// Greeting is printed when a session starts.
const Greeting = "Welcome to the assistant bot!"

// PromptText precedes every command line.
const PromptText = "Enter a command: "

// Executor runs one command line and returns the reply.
type Executor interface {
	Execute(line string) assistant.Reply
}

// Session reads commands until the user exits, input ends, or ctx is cancelled.
type Session interface {
	Run(ctx context.Context) error
}

// Options configures session creation.
type Options struct {
	In         io.Reader        // Command source (default: os.Stdin).
	Out        io.Writer        // Reply destination (default: os.Stdout).
	ForcePlain bool             // Force the line loop even on a terminal.
	Styles     assistant.Styles // Styles for the greeting and prompt.
}

// New returns a TUI session when both In and Out are terminals, or a plain
// line session otherwise. ForcePlain overrides terminal detection.
func New(exec Executor, opts Options) Session {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	plain := &PlainSession{exec: exec, in: opts.In, out: opts.Out, styles: opts.Styles}
	if opts.ForcePlain || !isTTY(opts.In) || !isTTY(opts.Out) {
		return plain
	}
	return &TUISession{exec: exec, in: opts.In, out: opts.Out, styles: opts.Styles, fallback: plain}
}

// isTTY reports whether v is an *os.File connected to a terminal.
func isTTY(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PlainSession prompts and reads one line at a time.
type PlainSession struct {
	exec   Executor
	in     io.Reader
	out    io.Writer
	styles assistant.Styles
}

// Run loops until an exit reply, end of input, or cancellation.
// End of input ends the session like an exit command, without error.
func (s *PlainSession) Run(ctx context.Context) error {
	_, _ = fmt.Fprintln(s.out, s.styles.Accent.Render(Greeting))

	lines := make(chan string)
	readErr := make(chan error, 1)
	stop := make(chan struct{})
	defer close(stop)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-stop:
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		_, _ = fmt.Fprint(s.out, s.styles.Prompt.Render(PromptText))

		select {
		case <-ctx.Done():
			_, _ = fmt.Fprintln(s.out)
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				_, _ = fmt.Fprintln(s.out)
				if err := <-readErr; err != nil {
					return fmt.Errorf("session: reading input: %w", err)
				}
				return nil
			}
			reply := s.exec.Execute(line)
			if reply.Text != "" {
				_, _ = fmt.Fprintln(s.out, reply.Text)
			}
			if reply.Exit {
				return nil
			}
		}
	}
}

// TUISession runs the command loop as a Bubble Tea program.
// Falls back to PlainSession if the program fails to start.
type TUISession struct {
	exec     Executor
	in       io.Reader
	out      io.Writer
	styles   assistant.Styles
	fallback Session
}

// Run starts the Bubble Tea program and blocks until it quits.
func (s *TUISession) Run(ctx context.Context) error {
	model := NewModel(s.exec, WithStyles(s.styles), WithSuggestions(assistant.Names()))
	p := tea.NewProgram(model,
		tea.WithInput(s.in),
		tea.WithOutput(s.out),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		// Nothing was read yet, so the plain loop can take over cleanly.
		if m, ok := final.(Model); !ok || !m.started {
			return s.fallback.Run(ctx)
		}
		return fmt.Errorf("session: %w", err)
	}
	return nil
}
