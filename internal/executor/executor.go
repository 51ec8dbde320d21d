// Package executor runs external commands and handles user confirmation.
// Confirm and Exec use injectable readers and writers for testability.
package executor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Exit code reported when a command cannot be found, as a shell would.
const exitNotFound = 127

// Runner runs one command to completion.
type Runner interface {
	Run(ctx context.Context, dir string, argv []string) error
}

// ExitError is returned when a command finishes with a non-zero status or
// cannot be started because it does not exist.
type ExitError struct {
	Argv []string
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Code == exitNotFound && e.Err != nil {
		return fmt.Sprintf("%s: command not found", e.Argv[0])
	}
	return fmt.Sprintf("%s: exit status %d", e.Argv[0], e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode returns the process exit code carried by err: 0 for nil, the
// command's status for an *ExitError, and 1 for anything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

// Exec runs commands with os/exec. Nil streams inherit the current
// process's stdin, stdout and stderr.
type Exec struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run starts argv in dir and blocks until it exits.
func (e Exec) Run(ctx context.Context, dir string, argv []string) error {
	if len(argv) == 0 {
		return errors.New("empty command")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Stdin = e.Stdin
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	cmd.Stdout = e.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = e.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	runErr := cmd.Run()
	if runErr == nil {
		return nil
	}
	if ctx.Err() != nil {
		return fmt.Errorf("running %s: %w", argv[0], ctx.Err())
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		code := exitErr.ExitCode()
		if code < 0 {
			// killed by a signal
			code = 1
		}
		return &ExitError{Argv: argv, Code: code}
	}
	if errors.Is(runErr, exec.ErrNotFound) {
		return &ExitError{Argv: argv, Code: exitNotFound, Err: runErr}
	}
	return fmt.Errorf("executing %s: %w", argv[0], runErr)
}

// Confirm prompts the user for yes/no confirmation.
// defaultYes controls what happens when the user presses Enter without input.
func Confirm(prompt string, defaultYes bool, in io.Reader, out io.Writer) bool {
	hint := "[Y/n]"
	if !defaultYes {
		hint = "[y/N]"
	}
	_, _ = fmt.Fprintf(out, "%s %s: ", prompt, hint)

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return false
	}

	switch strings.TrimSpace(strings.ToLower(scanner.Text())) {
	case "":
		return defaultYes
	case "y", "yes":
		return true
	default:
		return false
	}
}
