// Package assistant edits the desktop assistant's JSON configuration to
// register MCP servers.
package assistant

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"igdm/internal/fileutil"
)

// ErrConfigParse is returned when the existing configuration cannot be
// decoded. Nothing is written in that case.
var ErrConfigParse = errors.New("assistant: config is not valid JSON")

const serversKey = "mcpServers"

// Entry is one server registration.
type Entry struct {
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env"`
}

// UpsertServerEntry sets mcpServers[name] to entry in the file at path,
// creating the file and its directory if needed. Other servers and other
// top-level keys keep their order and content. There is no locking:
// concurrent writers race.
func UpsertServerEntry(path, name string, entry Entry) error {
	_, updated, err := render(path, name, entry)
	if err != nil {
		return err
	}
	// The entry carries credentials in plain text.
	if err := fileutil.AtomicWrite(path, updated, fileutil.PrivateFile); err != nil {
		return fmt.Errorf("failed to write assistant config: %w", err)
	}
	return nil
}

// render returns the current file content and the content after the upsert.
func render(path, name string, entry Entry) ([]byte, []byte, error) {
	doc, current, err := readDocument(path)
	if err != nil {
		return nil, nil, err
	}

	servers := object{}
	if raw, ok := doc.get(serversKey); ok {
		if servers, err = decodeObject(raw); err != nil {
			return nil, nil, fmt.Errorf("%w: %s: %q is not an object", ErrConfigParse, path, serversKey)
		}
	}

	encoded, err := fileutil.EncodeJSON(normalize(entry), "")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode server entry: %w", err)
	}
	servers = servers.set(name, encoded)

	rawServers, err := servers.compact()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode %s: %w", serversKey, err)
	}
	doc = doc.set(serversKey, rawServers)

	compact, err := doc.compact()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode assistant config: %w", err)
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "  "); err != nil {
		return nil, nil, fmt.Errorf("failed to encode assistant config: %w", err)
	}
	out.WriteByte('\n')
	return current, out.Bytes(), nil
}

// readDocument loads path. A missing or empty file is an empty document.
func readDocument(path string) (object, []byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return object{}, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read assistant config: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return object{}, data, nil
	}

	doc, err := decodeObject(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %w", ErrConfigParse, path, err)
	}
	return doc, data, nil
}

// normalize makes sure args and env encode as [] and {} rather than null.
func normalize(e Entry) Entry {
	if e.Args == nil {
		e.Args = []string{}
	}
	if e.Env == nil {
		e.Env = map[string]string{}
	}
	return e
}

// ConfigPath returns the platform default location of the assistant config.
func ConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return configPathFor(runtime.GOOS, os.Getenv, home), nil
}

func configPathFor(goos string, getenv func(string) string, home string) string {
	const file = "claude_desktop_config.json"
	switch goos {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Claude", file)
	case "windows":
		if appData := getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "Claude", file)
		}
		return filepath.Join(home, "AppData", "Roaming", "Claude", file)
	default:
		if xdg := getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "Claude", file)
		}
		return filepath.Join(home, ".config", "Claude", file)
	}
}
