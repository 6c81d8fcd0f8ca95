package credentials

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"igdm/internal/config"
	"igdm/internal/logging"
)

type fakePrompter struct {
	set      Set
	err      error
	save     bool
	prompts  int
	confirms int
}

func (f *fakePrompter) PromptCredentials(context.Context) (Set, error) {
	f.prompts++
	return f.set, f.err
}

func (f *fakePrompter) Confirm(context.Context, string, bool) (bool, error) {
	f.confirms++
	return f.save, nil
}

func envFrom(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func quietLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logging.Configure(logging.LevelError, &buf)
	t.Cleanup(func() { logging.Configure(logging.LevelWarn, nil) })
	return &buf
}

var fullEnv = map[string]string{
	config.EnvSessionID: "env-session",
	config.EnvCSRFToken: "env-csrf",
	config.EnvDSUserID:  "env-user",
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestEnvironmentBeatsFlags(t *testing.T) {
	quietLogs(t)
	prompter := &fakePrompter{set: Set{"p", "p", "p"}}
	r := &Resolver{Getenv: envFrom(fullEnv), WorkDir: t.TempDir(), Prompter: prompter}

	set, source, err := r.Resolve(context.Background(), Options{
		Flags:       Set{SessionID: "b", CSRFToken: "c2", DSUserID: "c3"},
		Interactive: true,
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if source != SourceEnvironment {
		t.Errorf("source = %v, want environment", source)
	}
	if set.SessionID != "env-session" {
		t.Errorf("SessionID = %q, want env value", set.SessionID)
	}
	if prompter.prompts != 0 {
		t.Errorf("prompter consulted %d times after a complete source", prompter.prompts)
	}
}

func TestPrecedence(t *testing.T) {
	quietLogs(t)
	dir := t.TempDir()
	filePath := writeFile(t, dir, "creds.json", `{"sessionid":"f1","csrftoken":"f2","ds_user_id":"f3"}`)

	tests := []struct {
		name       string
		env        map[string]string
		opts       Options
		wantSource Source
		wantSet    Set
		wantPrompt int
	}{
		{
			name:       "flags when env incomplete",
			env:        map[string]string{config.EnvSessionID: "only-session"},
			opts:       Options{Flags: Set{"a", "b", "c"}, FromFile: filePath, Interactive: true},
			wantSource: SourceFlags,
			wantSet:    Set{"a", "b", "c"},
		},
		{
			name:       "file when flags incomplete",
			opts:       Options{Flags: Set{SessionID: "a"}, FromFile: filePath, Interactive: true},
			wantSource: SourceFile,
			wantSet:    Set{"f1", "f2", "f3"},
		},
		{
			name:       "prompt when nothing else",
			opts:       Options{Interactive: true},
			wantSource: SourcePrompt,
			wantSet:    Set{"p1", "p2", "p3"},
			wantPrompt: 1,
		},
		{
			name:       "none when prompting disabled",
			opts:       Options{Flags: Set{CSRFToken: "x"}},
			wantSource: SourceNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompter := &fakePrompter{set: Set{"p1", "p2", "p3"}}
			r := &Resolver{Getenv: envFrom(tt.env), WorkDir: dir, Prompter: prompter}

			set, source, err := r.Resolve(context.Background(), tt.opts)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if source != tt.wantSource {
				t.Errorf("source = %v, want %v", source, tt.wantSource)
			}
			if set != tt.wantSet {
				t.Errorf("set = %+v, want %+v", set, tt.wantSet)
			}
			if prompter.prompts != tt.wantPrompt {
				t.Errorf("prompts = %d, want %d", prompter.prompts, tt.wantPrompt)
			}
		})
	}
}

func TestIncompleteSourcesNeverWin(t *testing.T) {
	quietLogs(t)
	dir := t.TempDir()
	partial := writeFile(t, dir, "partial.json", `{"sessionId":"only"}`)

	r := &Resolver{
		Getenv:  envFrom(map[string]string{config.EnvSessionID: "s", config.EnvCSRFToken: "c"}),
		WorkDir: dir,
	}
	set, source, err := r.Resolve(context.Background(), Options{
		Flags:    Set{DSUserID: "d"},
		FromFile: partial,
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if source != SourceNone || set != (Set{}) {
		t.Errorf("got %+v from %v, want empty set from none", set, source)
	}
	if set.Env() != nil {
		t.Errorf("Env() of an unresolved set = %v, want nil", set.Env())
	}
}

func TestBrokenFileFatalOnStart(t *testing.T) {
	quietLogs(t)
	dir := t.TempDir()
	broken := writeFile(t, dir, "broken.json", `{"sessionid":`)
	prompter := &fakePrompter{set: Set{"p1", "p2", "p3"}}
	r := &Resolver{Getenv: envFrom(nil), WorkDir: dir, Prompter: prompter}

	_, _, err := r.Resolve(context.Background(), Options{FromFile: broken, SourceErrorsFatal: true, Interactive: true})
	if !errors.Is(err, ErrSourceFile) {
		t.Fatalf("err = %v, want ErrSourceFile", err)
	}
	if prompter.prompts != 0 {
		t.Error("prompted after a fatal file error")
	}
}

func TestBrokenFileRecoverableOnInstall(t *testing.T) {
	logs := quietLogs(t)
	dir := t.TempDir()
	writeFile(t, dir, config.DefaultCredentialsFile, `not json`)
	prompter := &fakePrompter{set: Set{"p1", "p2", "p3"}}
	r := &Resolver{Getenv: envFrom(nil), WorkDir: dir, Prompter: prompter}

	set, source, err := r.Resolve(context.Background(), Options{
		UseDefaultFile: true,
		DefaultFile:    config.DefaultCredentialsFile,
		Interactive:    true,
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if source != SourcePrompt || set != (Set{"p1", "p2", "p3"}) {
		t.Errorf("got %+v from %v, want prompted set", set, source)
	}
	if !bytes.Contains(logs.Bytes(), []byte("Error loading credentials from file")) {
		t.Errorf("expected a warning on the diagnostic stream, got %q", logs.String())
	}
}

func TestDefaultFileIgnoredUnlessRequested(t *testing.T) {
	quietLogs(t)
	dir := t.TempDir()
	writeFile(t, dir, config.DefaultCredentialsFile, `{"sessionid":"a","csrftoken":"b","ds_user_id":"c"}`)
	r := &Resolver{Getenv: envFrom(nil), WorkDir: dir}

	_, source, err := r.Resolve(context.Background(), Options{DefaultFile: config.DefaultCredentialsFile})
	if err != nil {
		t.Fatal(err)
	}
	if source != SourceNone {
		t.Errorf("source = %v, want none", source)
	}

	_, source, err = r.Resolve(context.Background(), Options{DefaultFile: config.DefaultCredentialsFile, UseDefaultFile: true})
	if err != nil {
		t.Fatal(err)
	}
	if source != SourceFile {
		t.Errorf("source = %v, want file", source)
	}
}

func TestPromptedCredentialsSaved(t *testing.T) {
	quietLogs(t)
	dir := t.TempDir()
	prompter := &fakePrompter{set: Set{"s1", "c1", "u1"}, save: true}
	r := &Resolver{Getenv: envFrom(nil), WorkDir: dir, Prompter: prompter}

	_, _, err := r.Resolve(context.Background(), Options{
		Interactive: true,
		OfferSave:   true,
		DefaultFile: config.DefaultCredentialsFile,
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if prompter.confirms != 1 {
		t.Errorf("confirms = %d, want 1", prompter.confirms)
	}

	saved, err := LoadFile(filepath.Join(dir, config.DefaultCredentialsFile))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if saved != (Set{"s1", "c1", "u1"}) {
		t.Errorf("saved = %+v", saved)
	}
}

func TestPromptErrorPropagates(t *testing.T) {
	quietLogs(t)
	boom := errors.New("stdin closed")
	r := &Resolver{Getenv: envFrom(nil), WorkDir: t.TempDir(), Prompter: &fakePrompter{err: boom}}

	_, _, err := r.Resolve(context.Background(), Options{Interactive: true, SourceErrorsFatal: true})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestPromptErrorRecoverableOnInstall(t *testing.T) {
	logs := quietLogs(t)
	boom := errors.New("stdin closed")
	r := &Resolver{Getenv: envFrom(nil), WorkDir: t.TempDir(), Prompter: &fakePrompter{err: boom}}

	set, source, err := r.Resolve(context.Background(), Options{Interactive: true})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if source != SourceNone || set != (Set{}) {
		t.Errorf("got %+v from %v, want an empty set", set, source)
	}
	if !bytes.Contains(logs.Bytes(), []byte("Error getting credentials: stdin closed")) {
		t.Errorf("expected the prompt failure on the diagnostic stream, got %q", logs.String())
	}
}

func TestPromptCancelAlwaysAborts(t *testing.T) {
	quietLogs(t)
	r := &Resolver{Getenv: envFrom(nil), WorkDir: t.TempDir(), Prompter: &fakePrompter{err: context.Canceled}}

	_, _, err := r.Resolve(context.Background(), Options{Interactive: true})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
