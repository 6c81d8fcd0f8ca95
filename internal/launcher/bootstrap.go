// Package launcher finds the MCP launcher binary and starts the payload
// script, falling back to running it with a Python interpreter.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"igdm/internal/credentials"
	"igdm/internal/logging"
)

var (
	// ErrAllStrategiesFailed means every strategy reported "not found".
	ErrAllStrategiesFailed = errors.New("launcher: all attempts to start the server failed")
	// ErrScriptMissing means the payload script does not exist.
	ErrScriptMissing = errors.New("launcher: payload script not found")
)

// Outcome is the result of a launch.
type Outcome struct {
	StatusCode int
	Err        error
	// Strategy names the strategy that produced the outcome.
	Strategy string
}

// Bootstrapper launches the payload through an ordered list of strategies.
type Bootstrapper struct {
	Runner       Runner
	Locator      *Locator
	LauncherName string
	Interpreters []string
	// BaseEnv supplies the inherited environment; nil means os.Environ.
	BaseEnv func() []string
}

// Environment returns the child environment: the base environment with the
// credential variables set when creds is complete. The parent process
// environment is left untouched.
func (b *Bootstrapper) Environment(creds credentials.Set) []string {
	base := os.Environ
	if b.BaseEnv != nil {
		base = b.BaseEnv
	}
	overrides := creds.EnvMap()

	env := make([]string, 0, len(base())+len(overrides))
	for _, kv := range base() {
		name, _, _ := strings.Cut(kv, "=")
		if _, replaced := overrides[name]; replaced {
			continue
		}
		env = append(env, kv)
	}
	return append(env, creds.Env()...)
}

// Strategies returns the launch ladder: the launcher binary, then each
// interpreter in order.
func (b *Bootstrapper) Strategies(ref Reference) []Strategy {
	out := []Strategy{LauncherStrategy{Binary: ref}}
	for _, interp := range b.Interpreters {
		out = append(out, InterpreterStrategy{Interpreter: interp})
	}
	return out
}

// Start locates the launcher and runs the full ladder.
func (b *Bootstrapper) Start(ctx context.Context, creds credentials.Set, script string) Outcome {
	ref := b.Locator.Locate(b.LauncherName)
	return b.Launch(ctx, ref, creds, script)
}

// Launch runs the ladder for an already located binary.
func (b *Bootstrapper) Launch(ctx context.Context, ref Reference, creds credentials.Set, script string) Outcome {
	return b.Run(ctx, b.Strategies(ref), creds, script)
}

// Run tries each strategy in order. Only a "not found" failure moves on to
// the next strategy; any other result, including a nonzero exit, is final.
func (b *Bootstrapper) Run(ctx context.Context, strategies []Strategy, creds credentials.Set, script string) Outcome {
	if _, err := os.Stat(script); err != nil {
		return Outcome{StatusCode: 1, Err: fmt.Errorf("%w: %s", ErrScriptMissing, script)}
	}

	env := b.Environment(creds)
	var lastErr error
	for i, s := range strategies {
		if i > 0 {
			logging.Status("Trying with %s...", s.Name())
		}
		path, args := s.Command(script, creds)
		logging.Debug("launching", "strategy", s.Name(), "args", len(args))

		err := b.Runner.Run(ctx, Command{Path: path, Args: args, Env: env})
		if err == nil {
			return Outcome{StatusCode: 0, Strategy: s.Name()}
		}
		if !IsNotFound(err) {
			return Outcome{StatusCode: ExitCode(err), Err: err, Strategy: s.Name()}
		}

		logging.Failure("%s error: %v", s.Name(), err)
		if _, ok := s.(LauncherStrategy); ok && i+1 < len(strategies) {
			logging.Status("Attempting to run server directly with Python...")
		}
		lastErr = err
	}

	logging.Failure("All attempts to start the server failed")
	if lastErr == nil {
		return Outcome{StatusCode: 1, Err: ErrAllStrategiesFailed}
	}
	return Outcome{StatusCode: 1, Err: fmt.Errorf("%w: %w", ErrAllStrategiesFailed, lastErr)}
}
