// Package state keeps per-user conversation sessions for Telegram bots.
// It knows nothing about the session payload; bots pick their own type.
package state
