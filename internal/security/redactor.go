package security

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

const redacted = "[REDACTED]"

// SecretRedactor masks known secret values and cookie-style assignments in text.
type SecretRedactor struct {
	secrets  []string
	patterns []*regexp.Regexp
}

// NewSecretRedactor creates a redactor that masks the given literal values
// in addition to Instagram cookie assignments.
func NewSecretRedactor(secrets ...string) *SecretRedactor {
	r := &SecretRedactor{
		patterns: []*regexp.Regexp{
			// sessionid=..., csrftoken: "...", INSTAGRAM_SESSION_ID=...
			regexp.MustCompile(`(?i)(sessionid|csrftoken|session_id|csrf_token)(["']?\s*[:=]\s*["']?)([^"'\s;,&\[…]{8,})`),
		},
	}
	for _, s := range secrets {
		r.AddSecret(s)
	}
	return r
}

// AddSecret registers a literal value to mask. Empty and very short values
// are ignored; masking them would shred unrelated text.
func (r *SecretRedactor) AddSecret(value string) {
	if len(value) < 4 {
		return
	}
	r.secrets = append(r.secrets, value)
	// Longest first so a secret containing another is masked whole.
	sort.SliceStable(r.secrets, func(i, j int) bool {
		return len(r.secrets[i]) > len(r.secrets[j])
	})
}

// Redact masks all known secrets in text.
func (r *SecretRedactor) Redact(text string) string {
	if text == "" {
		return ""
	}
	result := text
	for _, s := range r.secrets {
		result = strings.ReplaceAll(result, s, Mask(s))
	}
	for _, pattern := range r.patterns {
		result = pattern.ReplaceAllString(result, "${1}${2}"+redacted)
	}
	return result
}

// RedactMap returns a copy of m with every value masked.
func (r *SecretRedactor) RedactMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = Mask(v)
	}
	return out
}

// Mask keeps a short prefix of value so users can tell credentials apart.
func Mask(value string) string {
	if value == "" {
		return ""
	}
	if len(value) <= 8 {
		return redacted
	}
	return fmt.Sprintf("%s…[%d chars]", value[:4], len(value))
}
