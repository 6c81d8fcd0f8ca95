package assistant

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"igdm/internal/security"
)

// Preview returns a unified-style diff between the current config and the
// config UpsertServerEntry would write. Credential values in either version
// are masked. An empty string means the file would not change.
func Preview(path, name string, entry Entry) (string, error) {
	current, updated, err := render(path, name, entry)
	if err != nil {
		return "", err
	}
	if string(current) == string(updated) {
		return "", nil
	}

	secrets := make([]string, 0, len(entry.Env))
	for _, v := range entry.Env {
		secrets = append(secrets, v)
	}
	redactor := security.NewSecretRedactor(secrets...)

	return lineDiff(path, redactor.Redact(string(current)), redactor.Redact(string(updated))), nil
}

// lineDiff renders a line-level diff of two texts.
func lineDiff(path, oldText, newText string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	var result strings.Builder
	result.WriteString(fmt.Sprintf("--- %s\n", path))
	result.WriteString(fmt.Sprintf("+++ %s\n", path))

	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		text := strings.TrimSuffix(d.Text, "\n")
		if text == "" && d.Text == "" {
			continue
		}
		for _, line := range strings.Split(text, "\n") {
			result.WriteString(prefix + line + "\n")
		}
	}
	return result.String()
}
