// Package storage persists users, leads and broadcast statistics with sqlx.
// Queries use '?' placeholders and are rebound for the connected driver.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/cnbridge/leadbot/internal/domain"
)

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.New("storage: not found")

// Store is the sqlx backed user store.
type Store struct {
	db  *sqlx.DB
	now func() time.Time
}

// New wraps an open connection. The schema must already be migrated.
func New(db *sqlx.DB) *Store {
	return &Store{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// UpsertUser inserts u unless a user with the same id exists.
func (s *Store) UpsertUser(ctx context.Context, u domain.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.now()
	}
	q := s.db.Rebind(`INSERT INTO users (id, username, first_name, last_name, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING`)
	if _, err := s.db.ExecContext(ctx, q, u.ID, u.Username, u.FirstName, u.LastName, u.CreatedAt); err != nil {
		return fmt.Errorf("upsert user %d: %w", u.ID, err)
	}
	return nil
}

// UpdateContact stores phone and marks the contact as shared.
func (s *Store) UpdateContact(ctx context.Context, userID int64, phone string) error {
	q := s.db.Rebind(`UPDATE users SET phone = ?, contact_shared = TRUE WHERE id = ?`)
	res, err := s.db.ExecContext(ctx, q, phone, userID)
	if err != nil {
		return fmt.Errorf("update contact %d: %w", userID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("update contact %d: %w", userID, ErrNotFound)
	}
	return nil
}

// GetUser reads one user profile.
func (s *Store) GetUser(ctx context.Context, userID int64) (domain.User, error) {
	var u domain.User
	q := s.db.Rebind(`SELECT id, username, first_name, last_name, phone, contact_shared, created_at
		FROM users WHERE id = ?`)
	if err := s.db.GetContext(ctx, &u, q, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, fmt.Errorf("get user %d: %w", userID, ErrNotFound)
		}
		return domain.User{}, fmt.Errorf("get user %d: %w", userID, err)
	}
	return u, nil
}

// AppendLead inserts lead and returns its id.
func (s *Store) AppendLead(ctx context.Context, lead domain.Lead) (int64, error) {
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = s.now()
	}
	q := s.db.Rebind(`INSERT INTO leads
		(user_id, service, cargo_name, cargo_volume, cargo_weight, delivery_method, customer_name, phone, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)
	var id int64
	err := s.db.QueryRowxContext(ctx, q,
		lead.UserID, lead.Service, lead.CargoName, lead.CargoVolume, lead.CargoWeight,
		lead.DeliveryMethod, lead.CustomerName, lead.Phone, lead.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("append lead for %d: %w", lead.UserID, err)
	}
	return id, nil
}

// ListLeads returns the user's leads, oldest first.
func (s *Store) ListLeads(ctx context.Context, userID int64) ([]domain.Lead, error) {
	var leads []domain.Lead
	q := s.db.Rebind(`SELECT id, user_id, service, cargo_name, cargo_volume, cargo_weight,
		delivery_method, customer_name, phone, created_at
		FROM leads WHERE user_id = ? ORDER BY id`)
	if err := s.db.SelectContext(ctx, &leads, q, userID); err != nil {
		return nil, fmt.Errorf("list leads for %d: %w", userID, err)
	}
	return leads, nil
}

// ListUserIDs returns every known user id in ascending order.
func (s *Store) ListUserIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	if err := s.db.SelectContext(ctx, &ids, `SELECT id FROM users ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list user ids: %w", err)
	}
	return ids, nil
}

// CountUsers returns the number of stored users.
func (s *Store) CountUsers(ctx context.Context) (int, error) {
	return s.count(ctx, "users")
}

// CountLeads returns the number of stored leads.
func (s *Store) CountLeads(ctx context.Context) (int, error) {
	return s.count(ctx, "leads")
}

func (s *Store) count(ctx context.Context, table string) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM "+table); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

// SaveBroadcastStat stores the outcome of one broadcast run.
func (s *Store) SaveBroadcastStat(ctx context.Context, st domain.BroadcastStat) error {
	q := s.db.Rebind(`INSERT INTO broadcast_stats
		(id, kind, total, sent, unreachable, failed, skipped, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, q,
		st.ID, st.Kind, st.Total, st.Sent, st.Unreachable, st.Failed, st.Skipped,
		st.StartedAt.UTC(), st.FinishedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("save broadcast stat %s: %w", st.ID, err)
	}
	return nil
}

// RecentBroadcastStats returns up to limit runs, newest first.
func (s *Store) RecentBroadcastStats(ctx context.Context, limit int) ([]domain.BroadcastStat, error) {
	if limit <= 0 {
		limit = 5
	}
	var stats []domain.BroadcastStat
	q := s.db.Rebind(`SELECT id, kind, total, sent, unreachable, failed, skipped, started_at, finished_at
		FROM broadcast_stats ORDER BY started_at DESC LIMIT ?`)
	if err := s.db.SelectContext(ctx, &stats, q, limit); err != nil {
		return nil, fmt.Errorf("recent broadcast stats: %w", err)
	}
	return stats, nil
}
