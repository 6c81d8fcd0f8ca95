package config

// Config represents the launcher settings.
type Config struct {
	Payload     PayloadConfig     `yaml:"payload"`
	Launcher    LauncherConfig    `yaml:"launcher"`
	Assistant   AssistantConfig   `yaml:"assistant"`
	Credentials CredentialsConfig `yaml:"credentials"`
	Logging     LoggingConfig     `yaml:"logging"`

	// Runtime version information
	Version string `yaml:"-"`
}

// PayloadConfig locates the Python MCP server.
type PayloadConfig struct {
	Script       string `yaml:"script"`       // server.py; relative paths resolve against the executable's directory
	Requirements string `yaml:"requirements"` // requirements.txt used by `setup`
}

// LauncherConfig controls binary discovery and the interpreter fallback.
type LauncherConfig struct {
	Name         string   `yaml:"name"`         // launcher command, fastmcp by default
	ExtraPaths   []string `yaml:"extra_paths"`  // searched before the built-in candidates; globs allowed
	Interpreters []string `yaml:"interpreters"` // tried in order when the launcher is missing
	PipCommands  []string `yaml:"pip_commands"` // tried in order by `setup`
	Package      string   `yaml:"package"`      // pip requirement installed by `setup`
}

// AssistantConfig describes the desktop assistant registration.
type AssistantConfig struct {
	ConfigPath string   `yaml:"config_path"` // empty = platform default
	ServerName string   `yaml:"server_name"`
	Command    string   `yaml:"command"` // empty = this executable
	Args       []string `yaml:"args"`
}

// CredentialsConfig holds credential file settings.
type CredentialsConfig struct {
	DefaultFile string `yaml:"default_file"` // looked up in the working directory
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Payload: PayloadConfig{
			Script:       DefaultScriptName,
			Requirements: DefaultRequirementsName,
		},
		Launcher: LauncherConfig{
			Name:         DefaultLauncherName,
			Interpreters: []string{"python3", "python"},
			PipCommands:  []string{"pip3", "pip"},
			Package:      DefaultLauncherPackage,
		},
		Assistant: AssistantConfig{
			ServerName: DefaultServerName,
			Args:       []string{"start"},
		},
		Credentials: CredentialsConfig{
			DefaultFile: DefaultCredentialsFile,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}
