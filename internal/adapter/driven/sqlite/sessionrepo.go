package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mglsites/vipgate/internal/domain/model"
	"github.com/mglsites/vipgate/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.SessionStore = (*SessionRepo)(nil)

// SessionRepo is the SQLite implementation of the SessionStore port.
// Timestamps are stored as Unix milliseconds.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a new SessionRepo.
func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Create stores a new session row.
func (r *SessionRepo) Create(ctx context.Context, sess model.Session) error {
	const query = `INSERT INTO sessions (id, username, category, created_at, vip_entered_at) VALUES (?, ?, ?, ?, ?)`

	var vipEntered sql.NullInt64
	if sess.VIPEnteredAt != nil {
		vipEntered = sql.NullInt64{Int64: sess.VIPEnteredAt.UnixMilli(), Valid: true}
	}

	_, err := r.db.Writer.ExecContext(ctx, query,
		sess.ID, sess.Username, string(sess.Category), sess.CreatedAt.UnixMilli(), vipEntered)
	if err != nil {
		return fmt.Errorf("create session %q: %w", sess.ID, err)
	}
	return nil
}

// Get returns the session with the given ID, or (nil, nil) when absent.
func (r *SessionRepo) Get(ctx context.Context, id string) (*model.Session, error) {
	const query = `SELECT id, username, category, created_at, vip_entered_at FROM sessions WHERE id = ?`

	var (
		sess       model.Session
		category   string
		createdAt  int64
		vipEntered sql.NullInt64
	)
	err := r.db.Reader.QueryRowContext(ctx, query, id).Scan(
		&sess.ID, &sess.Username, &category, &createdAt, &vipEntered)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session %q: %w", id, err)
	}

	sess.Category = model.Category(category)
	sess.CreatedAt = time.UnixMilli(createdAt).UTC()
	if vipEntered.Valid {
		t := time.UnixMilli(vipEntered.Int64).UTC()
		sess.VIPEnteredAt = &t
	}
	return &sess, nil
}

// SetVIPEntry records the first-entry timestamp into the VIP section.
func (r *SessionRepo) SetVIPEntry(ctx context.Context, id string, enteredAt time.Time) error {
	const query = `UPDATE sessions SET vip_entered_at = ? WHERE id = ?`
	_, err := r.db.Writer.ExecContext(ctx, query, enteredAt.UnixMilli(), id)
	if err != nil {
		return fmt.Errorf("set vip entry for session %q: %w", id, err)
	}
	return nil
}

// Delete removes the session row. Deleting an absent session is not an error.
func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM sessions WHERE id = ?`
	_, err := r.db.Writer.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete session %q: %w", id, err)
	}
	return nil
}

// DeleteOlderThan prunes sessions created before cutoff.
func (r *SessionRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	const query = `DELETE FROM sessions WHERE created_at < ?`
	res, err := r.db.Writer.ExecContext(ctx, query, cutoff.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("prune sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune sessions rows affected: %w", err)
	}
	return n, nil
}
