// Package format renders user supplied values into Telegram message markup.
package format

import (
	"html"
	"strings"
)

// HTML escapes s for Telegram's HTML parse mode.
func HTML(s string) string {
	return html.EscapeString(s)
}

// Handle renders a Telegram username as @name, or def when empty.
func Handle(username, def string) string {
	username = strings.TrimPrefix(strings.TrimSpace(username), "@")
	if username == "" {
		return def
	}
	return "@" + HTML(username)
}
