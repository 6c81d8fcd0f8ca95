package launcher

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"os/exec"
)

// Command is a fully described child process.
type Command struct {
	Path string
	Args []string
	// Env is the complete child environment; it is never merged with the
	// parent's at spawn time.
	Env []string
	// Nil streams are inherited from the parent.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Runner spawns a Command and blocks until it exits.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run starts the child and waits for it. Errors are those of exec.Cmd.Run:
// *exec.Error or *fs.PathError when the program cannot be started,
// *exec.ExitError when it ran and failed.
func (ExecRunner) Run(ctx context.Context, c Command) error {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Env = c.Env
	cmd.Stdin = orReader(c.Stdin, os.Stdin)
	cmd.Stdout = orWriter(c.Stdout, os.Stdout)
	cmd.Stderr = orWriter(c.Stderr, os.Stderr)
	return cmd.Run()
}

func orReader(r io.Reader, def io.Reader) io.Reader {
	if r == nil {
		return def
	}
	return r
}

func orWriter(w io.Writer, def io.Writer) io.Writer {
	if w == nil {
		return def
	}
	return w
}

// exitCoder is implemented by *exec.ExitError: the program ran and exited.
type exitCoder interface {
	ExitCode() int
}

// IsNotFound reports whether err means the program itself could not be
// found, as opposed to found but failing (permission denied, nonzero exit).
func IsNotFound(err error) bool {
	if err == nil || Exited(err) {
		return false
	}
	return errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist)
}

// Exited reports whether err comes from a child that started and exited
// with a failure status.
func Exited(err error) bool {
	var ec exitCoder
	return errors.As(err, &ec)
}

// ExitCode extracts the child's exit status from err. It returns 0 for nil
// and 1 when no status is available.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ec exitCoder
	if errors.As(err, &ec) {
		if code := ec.ExitCode(); code > 0 {
			return code
		}
	}
	return 1
}
