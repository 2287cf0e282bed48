package procexec

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Command is one external tool invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
	// Env is appended to the current process environment.
	Env []string

	Stdout io.Writer
	Stderr io.Writer
}

func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Runner executes commands and blocks until they exit.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// ExitError reports a command that started but exited non-zero.
type ExitError struct {
	Command string
	Code    int
	Err     error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s: exit status %d", e.Command, e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode extracts the exit code of a failed command; ok is false when err
// is not an exit failure (e.g. the binary could not be started).
func ExitCode(err error) (code int, ok bool) {
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code, true
	}
	return 0, false
}

// OSRunner runs commands with os/exec.
type OSRunner struct{}

var _ Runner = OSRunner{}

func (OSRunner) Run(ctx context.Context, c Command) error {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	err := cmd.Run()
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return &ExitError{Command: c.Name, Code: ee.ExitCode(), Err: err}
	}
	return err
}
