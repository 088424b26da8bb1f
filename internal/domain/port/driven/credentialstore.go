package driven

import (
	"context"
	"time"

	"github.com/mglsites/vipgate/internal/domain/model"
)

// Removed is a credential purged from the store by an expiry sweep, paired
// with the category it was issued for. The login path uses it to distinguish
// "your credential just expired" from a plain bad-password failure.
type Removed struct {
	Category   model.Category
	Credential model.Credential
}

// CredentialStore defines the driven port for credential persistence. The
// store owns both the in-memory mapping and its file mirror; every mutation
// rewrites the backing file wholesale.
type CredentialStore interface {
	// All returns a snapshot of the full category -> credentials mapping.
	// Mutating the returned map does not affect the store.
	All(ctx context.Context) (map[model.Category][]model.Credential, error)

	// Append adds a credential under the given category and persists.
	Append(ctx context.Context, cat model.Category, cred model.Credential) error

	// Find returns the credential with the given username in the category's
	// bucket, or (nil, nil) when absent.
	Find(ctx context.Context, cat model.Category, username string) (*model.Credential, error)

	// SweepExpired removes every credential expired at now, back-fills a fresh
	// CreatedAt on legacy records that lack one, and persists only when
	// something changed. It returns the removed credentials.
	SweepExpired(ctx context.Context, now time.Time) ([]Removed, error)
}
