package main

import (
	"github.com/spf13/cobra"

	"igdm/internal/config"
	"igdm/internal/logging"
	"igdm/internal/setup"
)

func newSetupCmd(g *globalFlags, d deps) *cobra.Command {
	var (
		requirements string
		saveSettings bool
	)

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Install the Python dependencies of the server",
		Long: `Check for a Python 3 interpreter, install the fastmcp launcher for the
current user, then install the server's requirements file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(g, d)
			if err != nil {
				return err
			}

			req := config.ResolvePath(a.cfg.Payload.Requirements, a.exeDir)
			if requirements != "" {
				req = config.ResolvePath(requirements, a.workDir)
			}

			env := setup.NewPythonEnv(d.runner, a.cfg.Launcher)
			if err := env.Run(cmd.Context(), req); err != nil {
				return err
			}

			if saveSettings {
				path := g.settings
				if path == "" {
					path = config.GetConfigPath()
				}
				if err := a.cfg.Save(path); err != nil {
					return err
				}
				logging.Success("Settings saved to %s", path)
			}

			logging.Status("Run `igdm start` to start the server")
			return nil
		},
	}

	cmd.Flags().StringVar(&requirements, "requirements", "", "requirements file (default: requirements.txt next to the executable)")
	cmd.Flags().BoolVar(&saveSettings, "save-settings", false, "write the effective settings to the settings file")
	return cmd
}
