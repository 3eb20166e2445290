package shell

import (
	"context"
	"fmt"
	"strings"
)

// command is one shell command.
type command struct {
	usage   string
	summary string
	minArgs int
	// maxArgs is -1 for no limit.
	maxArgs int
	run     func(ctx context.Context, s *Shell, args []string) error
}

// commands is keyed by case-folded name.
var commands map[string]command

// commandOrder lists commands for help.
var commandOrder = []string{"signup", "login", "logout", "generate", "save", "show", "status", "help", "quit"}

func init() {
	commands = map[string]command{
		"signup": {
			usage:   "signup <username> [password]",
			summary: "Create an account",
			minArgs: 1,
			maxArgs: 2,
			run: func(ctx context.Context, s *Shell, args []string) error {
				return s.Signup(ctx, args[0], optional(args, 1))
			},
		},
		"login": {
			usage:   "login <username> [password]",
			summary: "Log in and load saved flashcards",
			minArgs: 1,
			maxArgs: 2,
			run: func(ctx context.Context, s *Shell, args []string) error {
				return s.Login(ctx, args[0], optional(args, 1))
			},
		},
		"logout": {
			usage:   "logout",
			summary: "Log out",
			run: func(ctx context.Context, s *Shell, _ []string) error {
				return s.Logout(ctx)
			},
		},
		"generate": {
			usage:   "generate <topic...>",
			summary: "Generate flashcards for a topic",
			minArgs: 1,
			maxArgs: -1,
			run: func(ctx context.Context, s *Shell, args []string) error {
				return s.Generate(ctx, strings.Join(args, " "))
			},
		},
		"save": {
			usage:   "save",
			summary: "Save the generated flashcards",
			run: func(ctx context.Context, s *Shell, _ []string) error {
				return s.Save(ctx)
			},
		},
		"show": {
			usage:   "show",
			summary: "Print the page",
			run: func(ctx context.Context, s *Shell, _ []string) error {
				return s.Show(ctx)
			},
		},
		"status": {
			usage:   "status",
			summary: "Print the session state",
			run: func(ctx context.Context, s *Shell, _ []string) error {
				return s.Status(ctx)
			},
		},
		"help": {
			usage:   "help",
			summary: "List commands",
			run: func(_ context.Context, s *Shell, _ []string) error {
				return s.help()
			},
		},
		"quit": {
			usage:   "quit",
			summary: "Leave the shell",
			run:     quit,
		},
		"exit": {
			usage:   "exit",
			summary: "Leave the shell",
			run:     quit,
		},
	}
}

func quit(context.Context, *Shell, []string) error {
	return errQuit
}

// optional returns args[i], or "" if it is not there.
func optional(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func (s *Shell) help() error {
	var sb strings.Builder
	sb.WriteString("Commands:\n")
	for _, name := range commandOrder {
		cmd := commands[name]
		fmt.Fprintf(&sb, "  %-30s %s\n", cmd.usage, cmd.summary)
	}
	sb.WriteString("  exit is an alias of quit\n")
	if _, err := fmt.Fprint(s.out, sb.String()); err != nil {
		return fmt.Errorf("%w: %w", errWrite, err)
	}
	return nil
}
