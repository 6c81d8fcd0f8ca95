package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"igdm/internal/config"
	"igdm/internal/credentials"
	"igdm/internal/launcher"
	"igdm/internal/logging"
	"igdm/internal/setup"
)

type globalFlags struct {
	settings string
	logLevel string
}

// credentialFlags are shared by start and install.
type credentialFlags struct {
	sessionID string
	csrfToken string
	dsUserID  string
	fromFile  string
	script    string
}

func (f *credentialFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.sessionID, "session-id", "s", "", "Instagram session ID")
	fs.StringVarP(&f.csrfToken, "csrf-token", "c", "", "Instagram CSRF token")
	fs.StringVarP(&f.dsUserID, "ds-user-id", "d", "", "Instagram DS user ID")
	fs.StringVar(&f.fromFile, "from-file", "", "load credentials from a JSON cookies file")
	fs.StringVar(&f.script, "script", "", "path to the MCP server script (default: server.py next to the executable)")
}

func (f *credentialFlags) set() credentials.Set {
	return credentials.Set{
		SessionID: f.sessionID,
		CSRFToken: f.csrfToken,
		DSUserID:  f.dsUserID,
	}
}

// app is the per-invocation state shared by the commands.
type app struct {
	cfg     *config.Config
	deps    deps
	workDir string
	exeDir  string
	homeDir string
}

func newApp(g *globalFlags, d deps) (*app, error) {
	cfg, err := config.Load(g.settings)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	cfg.Version = version

	level := cfg.Logging.Level
	if g.logLevel != "" {
		level = g.logLevel
	}
	logging.Configure(logging.ParseLevel(level), d.stderr)

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	exeDir, err := config.ExecutableDir()
	if err != nil {
		return nil, err
	}
	// A missing home directory only removes the ~/.local candidate.
	homeDir, _ := os.UserHomeDir()

	logging.Info("settings loaded", "work_dir", workDir, "exe_dir", exeDir, "version", version)

	return &app{cfg: cfg, deps: d, workDir: workDir, exeDir: exeDir, homeDir: homeDir}, nil
}

// scriptPath returns the payload script: the --script flag relative to the
// working directory, else the settings value relative to the executable.
func (a *app) scriptPath(flag string) string {
	if flag != "" {
		return config.ResolvePath(flag, a.workDir)
	}
	return config.ResolvePath(a.cfg.Payload.Script, a.exeDir)
}

func (a *app) resolver() *credentials.Resolver {
	return credentials.NewResolver(a.workDir, setup.NewWizard(a.deps.stdin, a.deps.stderr))
}

func (a *app) credentialOptions(f *credentialFlags) credentials.Options {
	return credentials.Options{
		Flags:       f.set(),
		FromFile:    f.fromFile,
		DefaultFile: a.cfg.Credentials.DefaultFile,
		Interactive: a.deps.interactive(),
	}
}

func (a *app) locator() *launcher.Locator {
	extra := make([]string, 0, len(a.cfg.Launcher.ExtraPaths))
	for _, p := range a.cfg.Launcher.ExtraPaths {
		extra = append(extra, config.ResolvePath(p, a.workDir))
	}
	return &launcher.Locator{
		ExeDir:  a.exeDir,
		WorkDir: a.workDir,
		HomeDir: a.homeDir,
		Extra:   extra,
	}
}

func (a *app) bootstrapper() *launcher.Bootstrapper {
	return &launcher.Bootstrapper{
		Runner:       a.deps.runner,
		Locator:      a.locator(),
		LauncherName: a.cfg.Launcher.Name,
		Interpreters: a.cfg.Launcher.Interpreters,
	}
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
