package main

import (
	"context"

	"github.com/spf13/cobra"
)

// NewSignupCmd creates the signup command.
func NewSignupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signup <username>",
		Short: "Create an account on the server",
		Long: `Signup submits the signup form once and prints the server's answer.

Signing up does not log in; run login afterwards.

Examples:
  flashdeck signup alice
  flashdeck signup alice -p secret`,
		Args: cobra.ExactArgs(1),
		RunE: runSignupCmd,
	}
	cmd.Flags().StringP("password", "p", "",
		"Password (prompted without echo when omitted)")
	addSessionFlags(cmd)
	return cmd
}

// runSignupCmd executes the signup command.
func runSignupCmd(cmd *cobra.Command, args []string) error {
	password, err := cmd.Flags().GetString("password")
	if err != nil {
		return err
	}
	return withSession(cmd, oneShotIO(cmd), func(ctx context.Context, s *session) error {
		return s.Signup(ctx, args[0], password)
	})
}

// oneShotIO is commandIO without a prompt.
func oneShotIO(cmd *cobra.Command) sessionIO {
	sio := commandIO(cmd)
	noPrompt := ""
	sio.prompt = &noPrompt
	return sio
}
