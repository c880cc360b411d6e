package state

import "context"

// Store holds at most one session per user.
type Store[T any] interface {
	// Get returns the user's session and whether one exists.
	Get(ctx context.Context, userID int64) (T, bool, error)
	// Set replaces the user's session.
	Set(ctx context.Context, userID int64, session T) error
	// Clear drops the user's session. Clearing a missing session is not an error.
	Clear(ctx context.Context, userID int64) error
}
