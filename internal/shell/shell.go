package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/text/cases"

	"github.com/nao1215/flashdeck/internal/controller"
	"github.com/nao1215/flashdeck/internal/dom"
	"github.com/nao1215/flashdeck/internal/log"
	"github.com/nao1215/flashdeck/internal/render"
)

// DefaultPrompt is shown before each command line.
const DefaultPrompt = "flashdeck> "

var (
	// ErrUnknownCommand is returned for a command name the shell does not know.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrUsage is returned when a command has missing or extra arguments.
	ErrUsage = errors.New("usage")

	// ErrNotAvailable is returned when the control a command needs is not
	// on the page in the current session state.
	ErrNotAvailable = errors.New("not available")

	// errQuit ends Run.
	errQuit = errors.New("quit")
)

// Page is the controller surface the shell drives.
// *controller.Controller implements it.
type Page interface {
	Input(ctx context.Context, id, value string) error
	Submit(ctx context.Context, form string) error
	Click(ctx context.Context, target string) error
	WaitIdle(ctx context.Context) error
	Snapshot(ctx context.Context) (controller.Snapshot, error)
}

// Options configures a Shell.
type Options struct {
	// Input is read line by line by Run.
	Input io.Reader

	// Output receives the prompt and command messages.
	Output io.Writer

	// Password reads passwords left off the command line.
	// When nil, or when it fails, the password is left empty.
	Password PasswordFunc

	// Prompt overrides DefaultPrompt. An empty prompt is not shown.
	Prompt *string

	Logger *slog.Logger
}

// Shell turns command lines into page interactions.
type Shell struct {
	page     Page
	alerts   *Alerts
	writer   render.Writer
	in       io.Reader
	out      io.Writer
	password PasswordFunc
	prompt   string
	fold     cases.Caser
	logger   *slog.Logger

	// lastHTML is the page markup last written, used to skip unchanged pages.
	lastHTML string
}

// New creates a Shell over page. alerts must be the Alerter the page's
// controller was created with; w writes the page and the alerts.
func New(page Page, alerts *Alerts, w render.Writer, opts Options) *Shell {
	s := &Shell{
		page:     page,
		alerts:   alerts,
		writer:   w,
		in:       opts.Input,
		out:      opts.Output,
		password: opts.Password,
		prompt:   DefaultPrompt,
		fold:     cases.Fold(),
		logger:   opts.Logger,
	}
	if s.out == nil {
		s.out = io.Discard
	}
	if opts.Prompt != nil {
		s.prompt = *opts.Prompt
	}
	if s.logger == nil {
		s.logger = log.Discard()
	}
	return s
}

// Run reads commands until end of input, quit, or ctx is cancelled.
// Command errors are printed and reading continues; Run only returns an
// error when the page or the output fails.
func (s *Shell) Run(ctx context.Context) error {
	if s.in == nil {
		return errors.New("shell has no input")
	}
	if err := s.Show(ctx); err != nil {
		return err
	}

	scanner := bufio.NewScanner(s.in)
	for {
		if s.prompt != "" {
			fmt.Fprint(s.out, s.prompt)
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read command: %w", err)
			}
			return nil
		}

		err := s.Exec(ctx, scanner.Text())
		switch {
		case err == nil:
		case errors.Is(err, errQuit):
			return nil
		case ctx.Err() != nil:
			return nil
		case fatal(err):
			return err
		default:
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
}

// fatal reports whether err ends the shell.
func fatal(err error) bool {
	return errors.Is(err, controller.ErrStopped) || errors.Is(err, errWrite)
}

// errWrite marks failures to write output.
var errWrite = errors.New("failed to write output")

// Exec runs one command line. Empty lines do nothing.
func (s *Shell) Exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name := s.fold.String(fields[0])
	args := fields[1:]

	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("%w %q, type help for a list", ErrUnknownCommand, fields[0])
	}
	if len(args) < cmd.minArgs || (cmd.maxArgs >= 0 && len(args) > cmd.maxArgs) {
		return fmt.Errorf("%w: %s", ErrUsage, cmd.usage)
	}

	s.logger.Debug("command", "name", name, "args", len(args))
	return cmd.run(ctx, s, args)
}

// Signup fills and submits the signup form.
func (s *Shell) Signup(ctx context.Context, username, password string) error {
	return s.submitCredentials(ctx, dom.IDSignupForm, dom.IDSignupUsername, dom.IDSignupPassword, username, password)
}

// Login fills and submits the login form.
func (s *Shell) Login(ctx context.Context, username, password string) error {
	return s.submitCredentials(ctx, dom.IDLoginForm, dom.IDLoginUsername, dom.IDLoginPassword, username, password)
}

// Logout clicks the logout control.
func (s *Shell) Logout(ctx context.Context) error {
	if err := s.page.Click(ctx, dom.IDLogoutButton); err != nil {
		return s.unavailable(err, "logout", "not logged in")
	}
	return s.settle(ctx)
}

// Generate fills and submits the flashcard form.
func (s *Shell) Generate(ctx context.Context, topic string) error {
	if err := s.page.Input(ctx, dom.IDTopic, topic); err != nil {
		return err
	}
	if err := s.page.Submit(ctx, dom.IDFlashcardForm); err != nil {
		return s.unavailable(err, "generate", "log in first")
	}
	return s.settle(ctx)
}

// Save clicks the save control of the generated flashcards.
func (s *Shell) Save(ctx context.Context) error {
	if err := s.page.Click(ctx, dom.ClassSaveButton); err != nil {
		return s.unavailable(err, "save", "generate flashcards first")
	}
	return s.settle(ctx)
}

// Show writes the page whether or not it changed.
func (s *Shell) Show(ctx context.Context) error {
	s.lastHTML = ""
	return s.settle(ctx)
}

// Snapshot returns the current page.
func (s *Shell) Snapshot(ctx context.Context) (controller.Snapshot, error) {
	return s.page.Snapshot(ctx)
}

// Status writes the session state.
func (s *Shell) Status(ctx context.Context) error {
	snap, err := s.page.Snapshot(ctx)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.out, "Session: %s\n", snap.Session); err != nil {
		return fmt.Errorf("%w: %w", errWrite, err)
	}
	return nil
}

func (s *Shell) submitCredentials(ctx context.Context, form, userID, passID, username, password string) error {
	snap, err := s.page.Snapshot(ctx)
	if err != nil {
		return err
	}
	action := strings.TrimSuffix(form, "-form")
	if !snap.Visible(form) {
		return fmt.Errorf("%w: %s while logged in, log out first", ErrNotAvailable, action)
	}

	if password == "" && s.password != nil {
		pw, err := s.password("Password: ")
		if err != nil {
			s.logger.Debug("password prompt skipped", "error", err)
		}
		password = pw
	}

	if err := s.page.Input(ctx, userID, username); err != nil {
		return err
	}
	if err := s.page.Input(ctx, passID, password); err != nil {
		return err
	}
	if err := s.page.Submit(ctx, form); err != nil {
		return s.unavailable(err, action, "log out first")
	}
	return s.settle(ctx)
}

// unavailable turns a rejected interaction into ErrNotAvailable.
func (s *Shell) unavailable(err error, action, hint string) error {
	if errors.Is(err, controller.ErrHidden) || errors.Is(err, dom.ErrElementNotFound) {
		return fmt.Errorf("%w: %s, %s", ErrNotAvailable, action, hint)
	}
	return err
}

// settle waits for the page to go idle, then writes pending alerts and the
// page if it changed since it was last written.
func (s *Shell) settle(ctx context.Context) error {
	if err := s.page.WaitIdle(ctx); err != nil {
		return err
	}

	if s.alerts != nil {
		for _, msg := range s.alerts.Drain() {
			if _, err := s.writer.WriteAlert(msg); err != nil {
				return fmt.Errorf("%w: %w", errWrite, err)
			}
		}
	}

	snap, err := s.page.Snapshot(ctx)
	if err != nil {
		return err
	}
	if snap.HTML == s.lastHTML {
		return nil
	}
	if _, err := s.writer.Write(snap); err != nil {
		return fmt.Errorf("%w: %w", errWrite, err)
	}
	s.lastHTML = snap.HTML
	return nil
}
