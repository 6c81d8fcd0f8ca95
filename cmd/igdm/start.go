package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"igdm/internal/credentials"
	"igdm/internal/launcher"
	"igdm/internal/logging"
	"igdm/internal/security"
)

func newStartCmd(g *globalFlags, d deps) *cobra.Command {
	flags := &credentialFlags{}

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the Instagram DM MCP server",
		Long: `Start the MCP server on this process's stdin/stdout. All diagnostics go to
stderr so the protocol stream stays clean.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(g, d)
			if err != nil {
				return err
			}

			opts := a.credentialOptions(flags)
			opts.SourceErrorsFatal = true
			opts.OfferSave = true

			creds, source, err := a.resolver().Resolve(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if source == credentials.SourceNone {
				logging.Warning("Starting without Instagram credentials")
			} else {
				redactor := security.NewSecretRedactor(creds.Secrets()...)
				logging.Debug("credentials resolved", "source", source.String(), "env", redactor.RedactMap(creds.EnvMap()))
			}

			script := a.scriptPath(flags.script)
			logging.Status("Starting Instagram DM MCP server...")

			out := a.bootstrapper().Start(cmd.Context(), creds, script)
			return outcomeError(out)
		},
	}

	flags.register(cmd.Flags())
	return cmd
}

// outcomeError converts a launch outcome into the command's error. A child
// that ran and failed keeps its status code.
func outcomeError(out launcher.Outcome) error {
	if out.Err == nil && out.StatusCode == 0 {
		return nil
	}
	if out.Err == nil || launcher.Exited(out.Err) {
		logging.Failure("Server exited with code %d", out.StatusCode)
		logging.Debug("server failure", "strategy", out.Strategy, "error", out.Err)
		return &exitCodeError{
			code:     out.StatusCode,
			err:      fmt.Errorf("server exited with code %d", out.StatusCode),
			reported: true,
		}
	}
	return &exitCodeError{code: 1, err: fmt.Errorf("failed to start server: %w", out.Err)}
}
