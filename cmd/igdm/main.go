package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"igdm/internal/launcher"
	"igdm/internal/logging"
)

var version = "0.1.0"

func main() {
	os.Exit(run(context.Background(), os.Args[1:], defaultDeps()))
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, d deps) int {
	rootCmd := newRootCmd(d)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var exitErr *exitCodeError
	if errors.As(err, &exitErr) {
		if !exitErr.reported {
			logging.Failure("%v", exitErr.err)
		}
		return exitErr.code
	}
	logging.Failure("%v", err)
	return 1
}

// exitCodeError carries a specific process exit status out of a command.
type exitCodeError struct {
	code int
	err  error
	// reported means the failure was already shown to the user.
	reported bool
}

func (e *exitCodeError) Error() string { return e.err.Error() }
func (e *exitCodeError) Unwrap() error { return e.err }

// deps are the process-level collaborators, replaced in tests.
type deps struct {
	stdin  io.Reader
	stderr io.Writer
	runner launcher.Runner
	// interactive reports whether prompting is allowed.
	interactive func() bool
	// executable is the command registered in the assistant config.
	executable func() (string, error)
}

func defaultDeps() deps {
	return deps{
		stdin:       os.Stdin,
		stderr:      os.Stderr,
		runner:      launcher.ExecRunner{},
		interactive: stdinIsTerminal,
		executable:  os.Executable,
	}
}

func newRootCmd(d deps) *cobra.Command {
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "igdm",
		Short: "Instagram DM MCP server launcher",
		Long: `igdm starts the Instagram Direct Messages MCP server and registers it
with the Claude Desktop assistant. Credentials are taken from the environment,
command-line flags, a cookies file, or an interactive prompt, in that order.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(d.stderr)
	rootCmd.SetErr(d.stderr)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&g.settings, "settings", "", "settings file (default is $HOME/.config/igdm/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(newStartCmd(g, d))
	rootCmd.AddCommand(newInstallCmd(g, d))
	rootCmd.AddCommand(newSetupCmd(g, d))

	// Version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.ErrOrStderr(), "igdm version %s\n", version)
		},
	})

	return rootCmd
}
