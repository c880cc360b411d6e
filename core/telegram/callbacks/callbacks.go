// Package callbacks decodes inline button payloads.
package callbacks

import (
	"strings"

	tele "gopkg.in/telebot.v4"
)

// Parse splits callback data into key and payload. It understands telebot's
// "\f<unique>|<payload>" encoding as well as plain data such as "company_card".
func Parse(cb *tele.Callback) (key, payload string) {
	if cb == nil {
		return "", ""
	}
	if cb.Unique != "" {
		return cb.Unique, cb.Data
	}
	raw := strings.TrimPrefix(cb.Data, "\f")
	key, payload, _ = strings.Cut(raw, "|")
	return strings.TrimSpace(key), payload
}

// Key returns the callback key of the current update.
func Key(c tele.Context) string {
	key, _ := Parse(c.Callback())
	return key
}

// TrimKey returns the rest of key after prefix, if key has it.
func TrimKey(key, prefix string) (string, bool) {
	if !strings.HasPrefix(key, prefix) {
		return "", false
	}
	rest := key[len(prefix):]
	return rest, rest != ""
}
