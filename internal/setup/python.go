package setup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"igdm/internal/config"
	"igdm/internal/fileutil"
	"igdm/internal/launcher"
	"igdm/internal/logging"
)

var (
	ErrPythonNotFound      = errors.New("setup: python not found, please install Python 3.x")
	ErrRequirementsMissing = errors.New("setup: requirements file not found")
	ErrPipFailed           = errors.New("setup: failed to install Python dependencies")
)

// PythonEnv prepares the Python side of the server: interpreter check,
// launcher package and the payload's requirements.
type PythonEnv struct {
	Runner       launcher.Runner
	Interpreters []string
	PipCommands  []string
	Package      string
	// Output receives pip's own output. Nil means the log writer, keeping
	// stdout clean.
	Output io.Writer
}

// NewPythonEnv builds a PythonEnv from the launcher settings.
func NewPythonEnv(runner launcher.Runner, cfg config.LauncherConfig) *PythonEnv {
	return &PythonEnv{
		Runner:       runner,
		Interpreters: cfg.Interpreters,
		PipCommands:  cfg.PipCommands,
		Package:      cfg.Package,
	}
}

// DetectPython runs "<interp> --version" for each interpreter and returns the
// first that succeeds together with its reported version.
func (p *PythonEnv) DetectPython(ctx context.Context) (string, string, error) {
	for _, interp := range p.Interpreters {
		var out bytes.Buffer
		err := p.Runner.Run(ctx, launcher.Command{
			Path:   interp,
			Args:   []string{"--version"},
			Env:    os.Environ(),
			Stdin:  strings.NewReader(""),
			Stdout: &out,
			Stderr: &out,
		})
		if err != nil {
			logging.Debug("python check failed", "interpreter", interp, "error", err)
			continue
		}
		version := strings.TrimSpace(out.String())
		logging.Success("Python detected: %s", version)
		return interp, version, nil
	}
	logging.Failure("Python not found. Please install Python 3.x")
	return "", "", ErrPythonNotFound
}

// InstallLauncher installs the launcher package for the current user.
func (p *PythonEnv) InstallLauncher(ctx context.Context) error {
	logging.Status("Ensuring %s is installed...", p.Package)
	return p.pip(ctx, "install", "--user", p.Package)
}

// InstallRequirements installs the payload's requirements file.
func (p *PythonEnv) InstallRequirements(ctx context.Context, path string) error {
	if !fileutil.Exists(path) {
		logging.Failure("%s not found", path)
		return fmt.Errorf("%w: %s", ErrRequirementsMissing, path)
	}
	logging.Status("Installing Python dependencies...")
	if err := p.pip(ctx, "install", "-r", path); err != nil {
		logging.Failure("Failed to install Python dependencies")
		return err
	}
	logging.Success("Python dependencies installed successfully")
	return nil
}

// Run performs the whole setup. A failed launcher install is reported but
// does not stop the requirements install.
func (p *PythonEnv) Run(ctx context.Context, requirements string) error {
	logging.Status("Setting up Instagram DM MCP server...")
	if _, _, err := p.DetectPython(ctx); err != nil {
		return err
	}
	if err := p.InstallLauncher(ctx); err != nil {
		logging.Warning("Failed to install %s: %v", p.Package, err)
	}
	if err := p.InstallRequirements(ctx, requirements); err != nil {
		return err
	}
	logging.Success("Instagram DM MCP server setup completed successfully!")
	return nil
}

// pip tries each pip command in order. Unlike the launch ladder, any failure
// moves on to the next command.
func (p *PythonEnv) pip(ctx context.Context, args ...string) error {
	out := p.Output
	if out == nil {
		out = logging.Writer()
	}

	var errs []error
	for _, pip := range p.PipCommands {
		err := p.Runner.Run(ctx, launcher.Command{
			Path:   pip,
			Args:   args,
			Env:    os.Environ(),
			Stdout: out,
			Stderr: out,
		})
		if err == nil {
			return nil
		}
		logging.Debug("pip attempt failed", "pip", pip, "error", err)
		errs = append(errs, fmt.Errorf("%s: %w", pip, err))
	}
	return fmt.Errorf("%w: %w", ErrPipFailed, errors.Join(errs...))
}
