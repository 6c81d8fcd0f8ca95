package launcher

import (
	"igdm/internal/credentials"
)

// Strategy is one way of starting the payload. The set of strategies is
// closed: LauncherStrategy and InterpreterStrategy.
type Strategy interface {
	Name() string
	// Command returns the program and arguments for script.
	Command(script string, creds credentials.Set) (string, []string)
	isStrategy()
}

// LauncherStrategy hands the script to the launcher binary:
// <binary> install <script> [-e NAME=VALUE ...].
type LauncherStrategy struct {
	Binary Reference
}

func (s LauncherStrategy) Name() string { return s.Binary.ResolvedPath }

func (s LauncherStrategy) Command(script string, creds credentials.Set) (string, []string) {
	args := []string{"install", script}
	// The launcher also receives credentials as -e flags; it does not
	// forward its own environment to the server it registers.
	for _, kv := range creds.Env() {
		args = append(args, "-e", kv)
	}
	return s.Binary.ResolvedPath, args
}

func (LauncherStrategy) isStrategy() {}

// InterpreterStrategy runs the script directly: <interpreter> <script>.
type InterpreterStrategy struct {
	Interpreter string
}

func (s InterpreterStrategy) Name() string { return s.Interpreter }

func (s InterpreterStrategy) Command(script string, _ credentials.Set) (string, []string) {
	return s.Interpreter, []string{script}
}

func (InterpreterStrategy) isStrategy() {}
