package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// NewShellCmd creates the shell command.
func NewShellCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Run an interactive session",
		Long: `Shell keeps one session open and reads commands from standard input.

The login state lasts until the shell exits. Commands:
  signup <username> [password]
  login <username> [password]
  logout
  generate <topic...>
  save
  show
  status
  help
  quit

A password left off the line is read from the terminal without echo.

Examples:
  flashdeck shell
  flashdeck shell -s https://cards.example.com -f markdown`,
		Args: cobra.NoArgs,
		RunE: runShellCmd,
	}
	addSessionFlags(cmd)
	return cmd
}

// runShellCmd executes the shell command.
func runShellCmd(cmd *cobra.Command, _ []string) error {
	return withSession(cmd, commandIO(cmd), func(ctx context.Context, s *session) error {
		return s.Run(ctx)
	})
}

// withSession builds the configuration, opens a session, runs fn, and
// closes the session. Interrupts cancel ctx.
func withSession(cmd *cobra.Command, sio sessionIO, fn func(ctx context.Context, s *session) error) (err error) {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := openSession(ctx, cfg, sio)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return fn(ctx, s)
}
