package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"igdm/internal/assistant"
	"igdm/internal/config"
	"igdm/internal/credentials"
	"igdm/internal/fileutil"
	"igdm/internal/launcher"
	"igdm/internal/logging"
)

func newInstallCmd(g *globalFlags, d deps) *cobra.Command {
	flags := &credentialFlags{}
	var (
		configPath   string
		dryRun       bool
		skipRegister bool
	)

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install the Instagram DM MCP server in Claude Desktop",
		Long: `Register the server in the Claude Desktop configuration under the
InstagramDM key, then register the script with the launcher binary.
Other servers and settings in the configuration file are preserved.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(g, d)
			if err != nil {
				return err
			}
			logging.Status("Installing Instagram DM MCP server in Claude Desktop...")

			script := a.scriptPath(flags.script)
			if !fileutil.Exists(script) {
				return fmt.Errorf("server script not found at %s", script)
			}

			opts := a.credentialOptions(flags)
			opts.UseDefaultFile = true
			creds, source, err := a.resolver().Resolve(cmd.Context(), opts)
			if err != nil {
				return err
			}

			entry, err := a.serverEntry(flags, script, creds)
			if err != nil {
				return err
			}
			path, err := a.assistantConfigPath(configPath)
			if err != nil {
				return err
			}
			name := a.cfg.Assistant.ServerName

			if dryRun {
				diff, err := assistant.Preview(path, name, entry)
				if err != nil {
					return fmt.Errorf("failed to preview %s: %w", path, err)
				}
				if diff == "" {
					logging.Status("%s is already up to date", path)
					return nil
				}
				fmt.Fprint(logging.Writer(), diff)
				return nil
			}

			if err := assistant.UpsertServerEntry(path, name, entry); err != nil {
				logging.Warning("You may need to add the Instagram DM MCP server manually in Claude Desktop settings.")
				return fmt.Errorf("error updating Claude config file: %w", err)
			}
			logging.Success("Instagram DM MCP server registered in %s", path)
			if source == credentials.SourceNone {
				logging.Warning("No Instagram credentials were found. Please add them manually in Claude Desktop settings.")
			} else {
				logging.Success("Instagram credentials added to Claude Desktop config file.")
			}

			if !skipRegister {
				a.registerWithLauncher(cmd.Context(), creds, script)
			}

			logging.Success("Instagram DM MCP server successfully installed in Claude Desktop!")
			logging.Status("You can now enable it in Claude Desktop settings.")
			return nil
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVar(&configPath, "config-path", "", "Claude Desktop config file (default is the platform location)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show the config change without writing it")
	cmd.Flags().BoolVar(&skipRegister, "skip-register", false, "do not run the launcher's install command")
	return cmd
}

// serverEntry builds the assistant registration. The assistant runs this
// executable's start command; a --script override is carried along.
func (a *app) serverEntry(flags *credentialFlags, script string, creds credentials.Set) (assistant.Entry, error) {
	command := a.cfg.Assistant.Command
	if command == "" {
		exe, err := a.deps.executable()
		if err != nil {
			return assistant.Entry{}, fmt.Errorf("failed to locate executable: %w", err)
		}
		command = exe
	}

	args := append([]string(nil), a.cfg.Assistant.Args...)
	if flags.script != "" {
		args = append(args, "--script", script)
	}

	env := creds.EnvMap()
	if env == nil {
		env = map[string]string{}
	}
	return assistant.Entry{Command: command, Args: args, Env: env}, nil
}

// assistantConfigPath picks --config-path, then settings, then the platform
// default.
func (a *app) assistantConfigPath(flag string) (string, error) {
	if flag != "" {
		return config.ResolvePath(flag, a.workDir), nil
	}
	if a.cfg.Assistant.ConfigPath != "" {
		return config.ExpandPath(a.cfg.Assistant.ConfigPath), nil
	}
	return assistant.ConfigPath()
}

// registerWithLauncher runs only the launcher strategy. The assistant entry
// is already written, so failures here are warnings.
func (a *app) registerWithLauncher(ctx context.Context, creds credentials.Set, script string) {
	b := a.bootstrapper()
	ref := b.Locator.Locate(a.cfg.Launcher.Name)
	logging.Status("Registering %s with %s...", script, a.cfg.Launcher.Name)

	out := b.Run(ctx, []launcher.Strategy{launcher.LauncherStrategy{Binary: ref}}, creds, script)
	switch {
	case out.Err == nil:
		logging.Success("Registered with %s", a.cfg.Launcher.Name)
	case launcher.IsNotFound(out.Err):
		logging.Warning("%s not found; skipped launcher registration. Run `igdm setup` to install it.", a.cfg.Launcher.Name)
	default:
		logging.Warning("%s install failed: %v", a.cfg.Launcher.Name, out.Err)
	}
}
