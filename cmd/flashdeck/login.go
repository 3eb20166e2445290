package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
)

// errLoginFailed is returned when the server did not accept a login.
var errLoginFailed = errors.New("login failed")

// NewLoginCmd creates the login command.
func NewLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Log in and list saved flashcards",
		Long: `Login submits the login form and prints the saved flashcards the server
returns for the account.

Examples:
  flashdeck login alice
  flashdeck login alice -p secret -f json`,
		Args: cobra.ExactArgs(1),
		RunE: runLoginCmd,
	}
	cmd.Flags().StringP("password", "p", "",
		"Password (prompted without echo when omitted)")
	addSessionFlags(cmd)
	return cmd
}

// runLoginCmd executes the login command.
func runLoginCmd(cmd *cobra.Command, args []string) error {
	password, err := cmd.Flags().GetString("password")
	if err != nil {
		return err
	}
	return withSession(cmd, oneShotIO(cmd), func(ctx context.Context, s *session) error {
		return login(ctx, s, args[0], password)
	})
}

// login logs in and fails unless the session ends up logged in.
func login(ctx context.Context, s *session, username, password string) error {
	if err := s.Login(ctx, username, password); err != nil {
		return err
	}
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}
	if !snap.Session.IsLoggedIn() {
		return errLoginFailed
	}
	return nil
}
