package credentials

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"igdm/internal/fileutil"
)

// cookieFile is the on-disk layout written by SaveFile.
type cookieFile struct {
	SessionID string `json:"sessionid"`
	CSRFToken string `json:"csrftoken"`
	DSUserID  string `json:"ds_user_id"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// LoadFile reads a credentials file. Comments and trailing commas are
// tolerated. Cookie-style names win over camelCase when both are present.
// All failures wrap ErrSourceFile.
func LoadFile(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, fmt.Errorf("%w: read %s: %w", ErrSourceFile, path, err)
	}

	// encoding/json matches keys case-insensitively, which would let
	// "sessionId" fill the cookie field; decode into a map to keep names exact.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(jsonc.ToJSON(data), &raw); err != nil {
		return Set{}, fmt.Errorf("%w: parse %s: %w", ErrSourceFile, path, err)
	}

	var sessionCookie, sessionCamel, csrfCookie, csrfCamel, userCookie, userCamel string
	fields := map[string]*string{
		"sessionid":  &sessionCookie,
		"sessionId":  &sessionCamel,
		"csrftoken":  &csrfCookie,
		"csrfToken":  &csrfCamel,
		"ds_user_id": &userCookie,
		"dsUserId":   &userCamel,
	}
	for key, dst := range fields {
		value, ok := raw[key]
		if !ok {
			continue
		}
		if err := decodeScalar(value, dst); err != nil {
			return Set{}, fmt.Errorf("%w: field %q in %s: %w", ErrSourceFile, key, path, err)
		}
	}

	return Set{
		SessionID: firstNonEmpty(sessionCookie, sessionCamel),
		CSRFToken: firstNonEmpty(csrfCookie, csrfCamel),
		DSUserID:  firstNonEmpty(userCookie, userCamel),
	}, nil
}

// decodeScalar accepts strings and numbers; ds_user_id is often exported as
// a bare number by cookie tools.
func decodeScalar(raw json.RawMessage, dst *string) error {
	if string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err == nil {
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return fmt.Errorf("expected string or number")
	}
	*dst = n.String()
	return nil
}

// SaveFile writes s using cookie-style names with owner-only permissions.
func SaveFile(path string, s Set) error {
	return fileutil.WriteJSON(path, cookieFile{
		SessionID: s.SessionID,
		CSRFToken: s.CSRFToken,
		DSUserID:  s.DSUserID,
	}, fileutil.PrivateFile)
}
