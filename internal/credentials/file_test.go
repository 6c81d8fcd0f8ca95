package credentials

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"igdm/internal/config"
)

func TestLoadFileNamingConventionsEquivalent(t *testing.T) {
	dir := t.TempDir()
	cookie := writeFile(t, dir, "cookie.json", `{"sessionid":"S","csrftoken":"C","ds_user_id":"U"}`)
	camel := writeFile(t, dir, "camel.json", `{"sessionId":"S","csrfToken":"C","dsUserId":"U"}`)

	a, err := LoadFile(cookie)
	if err != nil {
		t.Fatalf("cookie: %v", err)
	}
	b, err := LoadFile(camel)
	if err != nil {
		t.Fatalf("camel: %v", err)
	}
	if a != b || a != (Set{"S", "C", "U"}) {
		t.Errorf("cookie=%+v camel=%+v", a, b)
	}
}

func TestLoadFileCookieNamesWin(t *testing.T) {
	path := writeFile(t, t.TempDir(), "both.json", `{"sessionId":"camel","sessionid":"cookie","csrfToken":"c","ds_user_id":"u"}`)

	set, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if set.SessionID != "cookie" {
		t.Errorf("SessionID = %q, want cookie", set.SessionID)
	}
}

func TestLoadFileToleratesCommentsAndNumbers(t *testing.T) {
	content := `{
  // exported from the browser
  "sessionid": "S",
  "csrftoken": "C",
  "ds_user_id": 4242424242,
}`
	path := writeFile(t, t.TempDir(), "c.json", content)

	set, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if set != (Set{"S", "C", "4242424242"}) {
		t.Errorf("set = %+v", set)
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		path string
	}{
		{"missing", filepath.Join(dir, "nope.json")},
		{"malformed", writeFile(t, dir, "bad.json", `{"sessionid": }`)},
		{"wrong type", writeFile(t, dir, "obj.json", `{"sessionid": {"nested": true}}`)},
		{"not an object", writeFile(t, dir, "arr.json", `["a","b"]`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(tt.path)
			if !errors.Is(err, ErrSourceFile) {
				t.Errorf("err = %v, want ErrSourceFile", err)
			}
		})
	}
}

func TestSaveFileUsesCookieNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.DefaultCredentialsFile)
	if err := SaveFile(path, Set{"S", "C", "U"}); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"sessionid"`, `"csrftoken"`, `"ds_user_id"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("saved file missing %s: %s", key, data)
		}
	}
}

func TestSetEnv(t *testing.T) {
	full := Set{"S", "C", "U"}
	want := []string{
		config.EnvSessionID + "=S",
		config.EnvCSRFToken + "=C",
		config.EnvDSUserID + "=U",
	}
	got := full.Env()
	if len(got) != len(want) {
		t.Fatalf("Env() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Env()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if (Set{SessionID: "S"}).EnvMap() != nil {
		t.Error("partial set exported environment")
	}
}
