// Package credfile implements the CredentialStore port on top of a single
// flat JSON file. The whole mapping lives in memory and every mutation
// rewrites the file wholesale, pretty-printed.
package credfile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/mglsites/vipgate/internal/domain/model"
	"github.com/mglsites/vipgate/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.CredentialStore = (*Store)(nil)

// record is the on-disk shape of one credential. createdAt is Unix
// milliseconds; legacy files may omit it entirely.
type record struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	CreatedAt int64  `json:"createdAt,omitempty"`
}

// Store is the file-backed credential store. A single mutex serializes all
// read-modify-write-persist sequences, so concurrent issuances cannot lose
// each other's append.
type Store struct {
	path   string
	logger *slog.Logger

	mu    sync.Mutex
	creds map[model.Category][]model.Credential
}

// Open loads the credential file at path into memory. A missing file starts
// the store empty; an unreadable or corrupt file is logged and likewise starts
// empty rather than refusing to boot. Per-category entries are normalized:
// a bare object becomes a one-element list, the legacy packvip bucket merges
// into pack, and malformed entries are dropped with a warning.
func Open(path string, logger *slog.Logger) (*Store, error) {
	s := &Store{
		path:   path,
		logger: logger,
		creds:  make(map[model.Category][]model.Credential),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		logger.Info("credential file not found, starting empty", "path", path)
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read credential file %s: %w", path, err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		logger.Warn("credential file is not valid JSON, starting empty", "path", path, "error", err)
		return s, nil
	}

	for key, entry := range raw {
		cat, known := model.ParseCategory(key)
		if !known {
			logger.Warn("unknown category in credential file, keeping as-is", "category", key)
		}
		s.creds[cat] = append(s.creds[cat], parseEntry(key, entry, logger)...)
	}

	return s, nil
}

// parseEntry decodes one category value, accepting either a list of records
// or a single bare record (normalized to a one-element list).
func parseEntry(key string, entry json.RawMessage, logger *slog.Logger) []model.Credential {
	var recs []record
	if err := json.Unmarshal(entry, &recs); err == nil {
		out := make([]model.Credential, 0, len(recs))
		for _, r := range recs {
			if r.Username == "" || r.Password == "" {
				logger.Warn("dropping malformed credential entry", "category", key)
				continue
			}
			out = append(out, toCredential(r))
		}
		return out
	}

	var rec record
	if err := json.Unmarshal(entry, &rec); err == nil && rec.Username != "" && rec.Password != "" {
		return []model.Credential{toCredential(rec)}
	}

	logger.Warn("unexpected credential entry shape, defaulting to empty list", "category", key)
	return nil
}

func toCredential(r record) model.Credential {
	c := model.Credential{Username: r.Username, Password: r.Password}
	if r.CreatedAt != 0 {
		c.CreatedAt = time.UnixMilli(r.CreatedAt).UTC()
	}
	return c
}

func toRecord(c model.Credential) record {
	r := record{Username: c.Username, Password: c.Password}
	if !c.CreatedAt.IsZero() {
		r.CreatedAt = c.CreatedAt.UnixMilli()
	}
	return r
}

// All returns a deep copy of the category -> credentials mapping.
func (s *Store) All(_ context.Context) (map[model.Category][]model.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[model.Category][]model.Credential, len(s.creds))
	for cat, creds := range s.creds {
		out[cat] = append([]model.Credential(nil), creds...)
	}
	return out, nil
}

// Append adds a credential under the given category and rewrites the file.
func (s *Store) Append(_ context.Context, cat model.Category, cred model.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.creds[cat] = append(s.creds[cat], cred)
	if err := s.save(); err != nil {
		return fmt.Errorf("append credential: %w", err)
	}
	return nil
}

// Find returns the credential with the given username in the category's
// bucket, or (nil, nil) when absent.
func (s *Store) Find(_ context.Context, cat model.Category, username string) (*model.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, cred := range s.creds[cat] {
		if cred.Username == username {
			c := cred
			return &c, nil
		}
	}
	return nil, nil
}

// SweepExpired removes credentials expired at now and back-fills a fresh
// CreatedAt on legacy records missing one. The file is rewritten only when
// something changed, so a second sweep with no new expirations is a no-op.
func (s *Store) SweepExpired(_ context.Context, now time.Time) ([]driven.Removed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []driven.Removed
	dirty := false

	for cat, creds := range s.creds {
		kept := creds[:0]
		for _, cred := range creds {
			if cred.CreatedAt.IsZero() {
				s.logger.Warn("credential missing createdAt, back-filling",
					"category", cat, "username", cred.Username)
				cred.CreatedAt = now
				dirty = true
			}
			if cred.Expired(now) {
				s.logger.Info("removing expired credential",
					"category", cat, "username", cred.Username)
				removed = append(removed, driven.Removed{Category: cat, Credential: cred})
				dirty = true
				continue
			}
			kept = append(kept, cred)
		}
		s.creds[cat] = kept
	}

	if dirty {
		if err := s.save(); err != nil {
			return removed, fmt.Errorf("sweep expired credentials: %w", err)
		}
	}
	return removed, nil
}

// save rewrites the full mapping to disk, pretty-printed. Callers hold s.mu.
func (s *Store) save() error {
	out := make(map[model.Category][]record, len(s.creds))
	for cat, creds := range s.creds {
		recs := make([]record, 0, len(creds))
		for _, c := range creds {
			recs = append(recs, toRecord(c))
		}
		out[cat] = recs
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}
