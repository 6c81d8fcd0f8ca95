package config

import (
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvSettingsPath, "")
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvScript, "")
	t.Setenv(EnvAssistantPath, "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoadFromFileWithEnvExpansion(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("IGDM_TEST_ROOT", "/opt/igdm")
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvScript, "")
	t.Setenv(EnvAssistantPath, "")

	path := filepath.Join(dir, "config.yaml")
	content := `payload:
  script: ${IGDM_TEST_ROOT}/server.py
launcher:
  extra_paths:
    - /custom/bin/fastmcp
assistant:
  server_name: InstagramDMTest
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Payload.Script != "/opt/igdm/server.py" {
		t.Errorf("Payload.Script = %q", cfg.Payload.Script)
	}
	if !reflect.DeepEqual(cfg.Launcher.ExtraPaths, []string{"/custom/bin/fastmcp"}) {
		t.Errorf("Launcher.ExtraPaths = %v", cfg.Launcher.ExtraPaths)
	}
	if cfg.Assistant.ServerName != "InstagramDMTest" {
		t.Errorf("Assistant.ServerName = %q", cfg.Assistant.ServerName)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
	// Untouched sections keep their defaults.
	if cfg.Launcher.Name != DefaultLauncherName {
		t.Errorf("Launcher.Name = %q", cfg.Launcher.Name)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("payload: [unterminated"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvSettingsPath, "")
	t.Setenv(EnvLogLevel, "info")
	t.Setenv(EnvScript, "/srv/server.py")
	t.Setenv(EnvAssistantPath, "/tmp/claude.json")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Logging.Level != "info" || cfg.Payload.Script != "/srv/server.py" || cfg.Assistant.ConfigPath != "/tmp/claude.json" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "igdm", "config.yaml")
	cfg := DefaultConfig()
	cfg.Launcher.ExtraPaths = []string{"/a/fastmcp"}

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvScript, "")
	t.Setenv(EnvAssistantPath, "")
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(loaded, cfg) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestSaveReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("logging:\n  level: debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "config.yaml" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory holds %v, want only config.yaml", names)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode().Perm() != 0o600 {
			t.Errorf("perm = %v, want 0600", info.Mode().Perm())
		}
	}
}

func TestResolvePath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	base := filepath.FromSlash("/opt/igdm")
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"server.py", filepath.Join(base, "server.py")},
		{"~/server.py", filepath.Join(home, "server.py")},
	}
	for _, tt := range tests {
		if got := ResolvePath(tt.in, base); got != tt.want {
			t.Errorf("ResolvePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
