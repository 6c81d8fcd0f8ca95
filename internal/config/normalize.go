package config

import (
	"fmt"
	"slices"
	"strings"
)

var logLevels = []string{"debug", "info", "warn", "warning", "error"}

// NormalizeConfig fills fields a settings file left empty with their
// defaults and rejects values nothing downstream can use.
func NormalizeConfig(cfg *Config) error {
	def := DefaultConfig()

	if cfg.Payload.Script == "" {
		cfg.Payload.Script = def.Payload.Script
	}
	if cfg.Payload.Requirements == "" {
		cfg.Payload.Requirements = def.Payload.Requirements
	}
	if cfg.Launcher.Name == "" {
		cfg.Launcher.Name = def.Launcher.Name
	}
	if cfg.Launcher.Package == "" {
		cfg.Launcher.Package = def.Launcher.Package
	}
	// An explicitly empty list disables the interpreter fallback.
	if cfg.Launcher.Interpreters == nil {
		cfg.Launcher.Interpreters = def.Launcher.Interpreters
	}
	if len(cfg.Launcher.PipCommands) == 0 {
		cfg.Launcher.PipCommands = def.Launcher.PipCommands
	}
	if cfg.Assistant.ServerName == "" {
		cfg.Assistant.ServerName = def.Assistant.ServerName
	}
	if cfg.Assistant.Args == nil {
		cfg.Assistant.Args = def.Assistant.Args
	}
	if cfg.Credentials.DefaultFile == "" {
		cfg.Credentials.DefaultFile = def.Credentials.DefaultFile
	}

	cfg.Logging.Level = strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}
	if !slices.Contains(logLevels, cfg.Logging.Level) {
		return fmt.Errorf("unknown log level: %s (available: %s)",
			cfg.Logging.Level,
			strings.Join(logLevels, ", "))
	}

	return nil
}
