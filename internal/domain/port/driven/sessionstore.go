package driven

import (
	"context"
	"time"

	"github.com/mglsites/vipgate/internal/domain/model"
)

// SessionStore defines the driven port for server-side session persistence.
type SessionStore interface {
	// Create stores a new session row.
	Create(ctx context.Context, sess model.Session) error

	// Get returns the session with the given ID, or (nil, nil) when absent.
	Get(ctx context.Context, id string) (*model.Session, error)

	// SetVIPEntry records the first-entry timestamp into the VIP section.
	// It is set once per session; callers only invoke it when unset.
	SetVIPEntry(ctx context.Context, id string, enteredAt time.Time) error

	// Delete removes the session row. Deleting an absent session is not an error.
	Delete(ctx context.Context, id string) error

	// DeleteOlderThan prunes sessions created before cutoff and returns how
	// many rows were removed.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
