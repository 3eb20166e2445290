package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/flashdeck/internal/config"
)

// NewRootCmd creates the root command for flashdeck.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flashdeck",
		Short: "Terminal client for a flashcard generator server",
		Long: `flashdeck signs up, logs in, generates flashcards for a topic, and saves
them on a flashcard generator server.

The login state lives only as long as one flashdeck process. Use the shell
command to run several actions in the same session.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .flashdeck in current or home directory)")
	cmd.PersistentFlags().StringP("server", "s", config.DefaultServerURL,
		"Base URL of the flashcard server")
	cmd.PersistentFlags().StringP("format", "f", string(config.FormatText),
		"Output format: text, markdown, html or json")

	cmd.AddCommand(NewShellCmd())
	cmd.AddCommand(NewSignupCmd())
	cmd.AddCommand(NewLoginCmd())
	cmd.AddCommand(NewGenerateCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
