package state

import (
	"context"
	"log/slog"
	"sync"

	"github.com/cnbridge/leadbot/core/logger"
)

// Memory is an in-process Store. Sessions are lost on restart.
type Memory[T any] struct {
	mu       sync.RWMutex
	sessions map[int64]T
}

// NewMemory returns an empty in-memory store.
func NewMemory[T any]() *Memory[T] {
	return &Memory[T]{sessions: make(map[int64]T)}
}

func (m *Memory[T]) Get(_ context.Context, userID int64) (T, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[userID]
	return s, ok, nil
}

func (m *Memory[T]) Set(ctx context.Context, userID int64, session T) error {
	m.mu.Lock()
	m.sessions[userID] = session
	m.mu.Unlock()
	if logger.ShouldSampleDebug() {
		logger.Debug(ctx, "tg.state", "session.set", slog.Int64("user_id", userID))
	}
	return nil
}

func (m *Memory[T]) Clear(ctx context.Context, userID int64) error {
	m.mu.Lock()
	_, had := m.sessions[userID]
	delete(m.sessions, userID)
	m.mu.Unlock()
	if had {
		logger.Debug(ctx, "tg.state", "session.clear", slog.Int64("user_id", userID))
	}
	return nil
}

// Len reports the number of live sessions.
func (m *Memory[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
