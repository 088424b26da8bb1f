package application

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/mglsites/vipgate/internal/domain/model"
	"github.com/mglsites/vipgate/internal/domain/port/driven"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeCredStore is an in-memory CredentialStore with real sweep semantics, so
// scenario tests exercise the same purge-on-login behavior as the file store.
type fakeCredStore struct {
	creds     map[model.Category][]model.Credential
	appendErr error
}

func newFakeCredStore() *fakeCredStore {
	return &fakeCredStore{creds: make(map[model.Category][]model.Credential)}
}

func (f *fakeCredStore) All(_ context.Context) (map[model.Category][]model.Credential, error) {
	out := make(map[model.Category][]model.Credential, len(f.creds))
	for cat, creds := range f.creds {
		out[cat] = append([]model.Credential(nil), creds...)
	}
	return out, nil
}

func (f *fakeCredStore) Append(_ context.Context, cat model.Category, cred model.Credential) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.creds[cat] = append(f.creds[cat], cred)
	return nil
}

func (f *fakeCredStore) Find(_ context.Context, cat model.Category, username string) (*model.Credential, error) {
	for _, cred := range f.creds[cat] {
		if cred.Username == username {
			c := cred
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeCredStore) SweepExpired(_ context.Context, now time.Time) ([]driven.Removed, error) {
	var removed []driven.Removed
	for cat, creds := range f.creds {
		kept := creds[:0]
		for _, cred := range creds {
			if cred.CreatedAt.IsZero() {
				cred.CreatedAt = now
			}
			if cred.Expired(now) {
				removed = append(removed, driven.Removed{Category: cat, Credential: cred})
				continue
			}
			kept = append(kept, cred)
		}
		f.creds[cat] = kept
	}
	return removed, nil
}

// fakeSessionStore is an in-memory SessionStore.
type fakeSessionStore struct {
	sessions  map[string]model.Session
	createErr error
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]model.Session)}
}

func (f *fakeSessionStore) Create(_ context.Context, sess model.Session) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.sessions[sess.ID] = sess
	return nil
}

func (f *fakeSessionStore) Get(_ context.Context, id string) (*model.Session, error) {
	sess, ok := f.sessions[id]
	if !ok {
		return nil, nil
	}
	return &sess, nil
}

func (f *fakeSessionStore) SetVIPEntry(_ context.Context, id string, enteredAt time.Time) error {
	sess, ok := f.sessions[id]
	if ok {
		sess.VIPEnteredAt = &enteredAt
		f.sessions[id] = sess
	}
	return nil
}

func (f *fakeSessionStore) Delete(_ context.Context, id string) error {
	delete(f.sessions, id)
	return nil
}

func (f *fakeSessionStore) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	var n int64
	for id, sess := range f.sessions {
		if sess.CreatedAt.Before(cutoff) {
			delete(f.sessions, id)
			n++
		}
	}
	return n, nil
}

// fakeAdminNotifier records sent messages.
type fakeAdminNotifier struct {
	sent []string
	err  error
}

func (f *fakeAdminNotifier) Send(_ context.Context, text string) error {
	f.sent = append(f.sent, text)
	return f.err
}

// fakeUserNotifier records sent mail.
type fakeUserNotifier struct {
	to      []string
	subject []string
	body    []string
	err     error
}

func (f *fakeUserNotifier) Send(_ context.Context, to, subject, body string) error {
	f.to = append(f.to, to)
	f.subject = append(f.subject, subject)
	f.body = append(f.body, body)
	return f.err
}
