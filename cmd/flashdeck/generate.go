package main

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/flashdeck/internal/controller"
)

// errGenerateFailed is returned when the flashcards could not be generated.
var errGenerateFailed = errors.New("generate failed")

// NewGenerateCmd creates the generate command.
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <topic...>",
		Short: "Log in and generate flashcards for a topic",
		Long: `Generate logs in, submits the flashcard form for the topic, and prints the
flashcards. With --save the generated flashcards are saved to the account.

Examples:
  flashdeck generate -u alice photosynthesis
  flashdeck generate -u alice -p secret --save "french revolution"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runGenerateCmd,
	}
	cmd.Flags().StringP("username", "u", "", "Account to log in with")
	cmd.Flags().StringP("password", "p", "",
		"Password (prompted without echo when omitted)")
	cmd.Flags().Bool("save", false, "Save the generated flashcards")
	addSessionFlags(cmd)
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

// runGenerateCmd executes the generate command.
func runGenerateCmd(cmd *cobra.Command, args []string) error {
	username, err := cmd.Flags().GetString("username")
	if err != nil {
		return err
	}
	password, err := cmd.Flags().GetString("password")
	if err != nil {
		return err
	}
	save, err := cmd.Flags().GetBool("save")
	if err != nil {
		return err
	}
	topic := strings.Join(args, " ")

	return withSession(cmd, oneShotIO(cmd), func(ctx context.Context, s *session) error {
		if err := login(ctx, s, username, password); err != nil {
			return err
		}
		if err := s.Generate(ctx, topic); err != nil {
			return err
		}

		snap, err := s.Snapshot(ctx)
		if err != nil {
			return err
		}
		if snap.CardsState != controller.ViewReady {
			return errGenerateFailed
		}
		if save {
			return s.Save(ctx)
		}
		return nil
	})
}
