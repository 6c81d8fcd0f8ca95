// Package credentials resolves the Instagram session triple handed to the
// payload process.
package credentials

import (
	"errors"

	"igdm/internal/config"
)

// ErrSourceFile wraps any failure to read or parse a credentials file.
var ErrSourceFile = errors.New("credentials file")

// Set is the credential triple. Values are opaque and never validated beyond
// presence.
type Set struct {
	SessionID string
	CSRFToken string
	DSUserID  string
}

// Complete reports whether all three fields are non-empty.
func (s Set) Complete() bool {
	return s.SessionID != "" && s.CSRFToken != "" && s.DSUserID != ""
}

// EnvMap returns the payload environment variables, or nil when the set is
// incomplete. A partial set is never exported.
func (s Set) EnvMap() map[string]string {
	if !s.Complete() {
		return nil
	}
	return map[string]string{
		config.EnvSessionID: s.SessionID,
		config.EnvCSRFToken: s.CSRFToken,
		config.EnvDSUserID:  s.DSUserID,
	}
}

// Env returns the payload environment as NAME=VALUE pairs in a fixed order,
// or nil when the set is incomplete.
func (s Set) Env() []string {
	if !s.Complete() {
		return nil
	}
	return []string{
		config.EnvSessionID + "=" + s.SessionID,
		config.EnvCSRFToken + "=" + s.CSRFToken,
		config.EnvDSUserID + "=" + s.DSUserID,
	}
}

// Secrets lists the values that must not appear in diagnostics.
func (s Set) Secrets() []string {
	return []string{s.SessionID, s.CSRFToken}
}

// Source identifies where a Set came from.
type Source int

const (
	SourceNone Source = iota
	SourceEnvironment
	SourceFlags
	SourceFile
	SourcePrompt
)

func (s Source) String() string {
	switch s {
	case SourceEnvironment:
		return "environment"
	case SourceFlags:
		return "flags"
	case SourceFile:
		return "file"
	case SourcePrompt:
		return "prompt"
	default:
		return "none"
	}
}
