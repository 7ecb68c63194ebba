package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"

	"github.com/smileynet/addressbook/internal/assistant"
	"github.com/smileynet/addressbook/internal/book"
	"github.com/smileynet/addressbook/internal/config"
	"github.com/smileynet/addressbook/internal/logger"
	"github.com/smileynet/addressbook/internal/session"
	"github.com/smileynet/addressbook/internal/storage"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Globals are flags shared by every command.
type Globals struct {
	Config string `help:"Extra config file, layered over user and project config." type:"path" placeholder:"PATH"`
	File   string `help:"Address book data file (overrides config)." short:"f" type:"path" placeholder:"PATH"`
	Color  string `help:"Color output: auto, always or never (overrides config)."`
}

// CLI is the top-level command structure for addressbook.
type CLI struct {
	Globals

	Version   kong.VersionFlag `help:"Show version." short:"V"`
	Repl      ReplCmd          `cmd:"" default:"withargs" help:"Start the interactive assistant (default)."`
	Birthdays BirthdaysCmd     `cmd:"" help:"Print contacts with birthdays in the next seven days."`
}

// errSave marks a failure to persist the address book on exit.
var errSave = errors.New("saving address book")

// loadConfig loads layered config from user, project, and flag paths with env and flag overrides.
func loadConfig(g *Globals) (*config.Config, error) {
	paths := []string{
		os.ExpandEnv("$HOME/.config/addressbook/config.yaml"),
		".addressbook.yaml",
	}
	if g.Config != "" {
		paths = append(paths, g.Config)
	}
	cfg, err := config.LoadLayered(paths...)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if g.File != "" {
		cfg.Storage.Path = g.File
	}
	if g.Color != "" {
		cfg.Display.Color = g.Color
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// bookLoader abstracts storage.FileStore loading for testing.
type bookLoader interface {
	Load(opts ...book.Option) (*book.Book, bool, error)
}

// bookSaver abstracts storage.FileStore saving for testing.
type bookSaver interface {
	Save(b *book.Book) error
}

// loadBook reads the address book, falling back to an empty one on any failure.
func loadBook(w io.Writer, store bookLoader, log *slog.Logger) *book.Book {
	b, found, err := store.Load(book.WithLogger(log))
	if err != nil {
		_, _ = fmt.Fprintf(w, "warning: error loading address book: %v (starting empty)\n", err)
		log.Warn("could not load address book", "err", err)
		return book.New(book.WithLogger(log))
	}
	if found {
		log.Info("loaded address book", "contacts", b.Len())
	}
	return b
}

// ReplCmd runs the interactive assistant and saves the book when it ends.
type ReplCmd struct {
	NoTUI bool `help:"Force plain line input even if stdin and stdout are terminals." default:"false"`
}

// Run executes the repl command.
func (r *ReplCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return fmt.Errorf("repl: %w", err)
	}

	log, closer := logger.New(cfg.Log)
	defer func() { _ = closer.Close() }()

	store := storage.NewFileStore(cfg.Storage.Path)
	b := loadBook(os.Stdout, store, log)

	a := assistant.New(b,
		assistant.WithRenderer(assistant.NewRenderer(os.Stdout, cfg.Display.Color)),
		assistant.WithLogger(log),
	)
	sess := session.New(a, session.Options{
		In:         os.Stdin,
		Out:        os.Stdout,
		ForcePlain: r.NoTUI || !cfg.Display.TUI,
		Styles:     a.Styles(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return r.run(ctx, sess, store, b, log)
}

// run drives the session and persists the book afterwards, enabling testable wiring.
// The book is saved however the session ends, including on interrupt.
func (r *ReplCmd) run(ctx context.Context, sess session.Session, store bookSaver, b *book.Book, log *slog.Logger) error {
	runErr := sess.Run(ctx)

	if err := store.Save(b); err != nil {
		return fmt.Errorf("repl: %w: %w", errSave, err)
	}
	log.Info("saved address book", "contacts", b.Len())

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return fmt.Errorf("repl: %w", runErr)
	}
	return nil
}

// BirthdaysCmd prints upcoming birthdays without starting the assistant.
type BirthdaysCmd struct {
	Date string `help:"Reference date as YYYY-MM-DD (default: today)." placeholder:"DATE"`
}

// Run executes the birthdays command.
func (c *BirthdaysCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return fmt.Errorf("birthdays: %w", err)
	}

	ref, err := c.reference(time.Now)
	if err != nil {
		return fmt.Errorf("birthdays: %w", err)
	}

	log, closer := logger.New(cfg.Log)
	defer func() { _ = closer.Close() }()

	b := loadBook(os.Stderr, storage.NewFileStore(cfg.Storage.Path), log)
	return c.run(os.Stdout, b, ref, cfg.Display.Color)
}

// reference returns the parsed --date, or today.
func (c *BirthdaysCmd) reference(now func() time.Time) (time.Time, error) {
	if c.Date == "" {
		return now(), nil
	}
	ref, err := time.Parse(time.DateOnly, c.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q (want YYYY-MM-DD)", c.Date)
	}
	return ref, nil
}

// run prints the lookahead for ref, enabling testable wiring.
func (c *BirthdaysCmd) run(w io.Writer, b *book.Book, ref time.Time, color string) error {
	a := assistant.New(b,
		assistant.WithRenderer(assistant.NewRenderer(w, color)),
		assistant.WithClock(func() time.Time { return ref }),
	)
	_, err := fmt.Fprintln(w, a.Execute("birthdays").Text)
	return err
}

const (
	exitSuccess = 0
	exitSave    = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	if errors.Is(err, errSave) {
		return exitSave
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("addressbook"),
		kong.Description("A personal contact book with birthday reminders."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run(&cli.Globals)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
