package shell

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ErrNoTerminal is returned by a PasswordFunc that cannot prompt.
var ErrNoTerminal = errors.New("password prompt requires a terminal")

// PasswordFunc reads a password after showing prompt.
type PasswordFunc func(prompt string) (string, error)

// TerminalPassword returns a PasswordFunc that reads from the terminal on
// fd without echo, writing the prompt to w. It returns ErrNoTerminal when
// fd is not a terminal.
func TerminalPassword(fd int, w io.Writer) PasswordFunc {
	return func(prompt string) (string, error) {
		if !term.IsTerminal(fd) {
			return "", ErrNoTerminal
		}
		fmt.Fprint(w, prompt)
		pw, err := term.ReadPassword(fd)
		fmt.Fprintln(w)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(pw), nil
	}
}

// StdinPassword prompts on the process's terminal.
func StdinPassword() PasswordFunc {
	return TerminalPassword(int(os.Stdin.Fd()), os.Stderr)
}
