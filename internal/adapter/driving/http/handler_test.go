package httphandler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mglsites/vipgate/internal/application"
	"github.com/mglsites/vipgate/internal/domain/model"
	"github.com/mglsites/vipgate/internal/domain/port/driven"
)

// fakeCredStore is an in-memory CredentialStore for handler tests.
type fakeCredStore struct {
	creds map[model.Category][]model.Credential
}

var _ driven.CredentialStore = (*fakeCredStore)(nil)

func newFakeCredStore() *fakeCredStore {
	return &fakeCredStore{creds: make(map[model.Category][]model.Credential)}
}

func (f *fakeCredStore) All(_ context.Context) (map[model.Category][]model.Credential, error) {
	out := make(map[model.Category][]model.Credential, len(f.creds))
	for cat, list := range f.creds {
		out[cat] = append([]model.Credential(nil), list...)
	}
	return out, nil
}

func (f *fakeCredStore) Append(_ context.Context, cat model.Category, cred model.Credential) error {
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
	for cat, list := range f.creds {
		kept := list[:0]
		for _, cred := range list {
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

// fakeSessionStore is an in-memory SessionStore for handler tests.
type fakeSessionStore struct {
	sessions map[string]model.Session
}

var _ driven.SessionStore = (*fakeSessionStore)(nil)

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]model.Session)}
}

func (f *fakeSessionStore) Create(_ context.Context, sess model.Session) error {
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
	sess := f.sessions[id]
	sess.VIPEnteredAt = &enteredAt
	f.sessions[id] = sess
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

type noopAdminNotifier struct{}

func (noopAdminNotifier) Send(context.Context, string) error { return nil }

type noopUserNotifier struct{}

func (noopUserNotifier) Send(context.Context, string, string, string) error { return nil }

func setupHandler(t *testing.T) (*fakeCredStore, *fakeSessionStore, *http.ServeMux) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	creds := newFakeCredStore()
	sessions := newFakeSessionStore()

	issueSvc := application.NewIssueService(creds, noopAdminNotifier{}, noopUserNotifier{}, logger)
	authSvc := application.NewAuthService(creds, sessions, logger)
	h := NewHandler(issueSvc, authSvc, false, logger)

	mux := http.NewServeMux()
	RegisterAPIRoutes(mux, h)
	return creds, sessions, mux
}

func postJSON(mux *http.ServeMux, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookieName {
			return c
		}
	}
	return nil
}

func TestLogin_Success(t *testing.T) {
	creds, sessions, mux := setupHandler(t)
	require.NoError(t, creds.Append(context.Background(), model.CategoryCasino, model.Credential{
		Username:  "MGLCasino11111",
		Password:  "csab123",
		CreatedAt: time.Now().UTC(),
	}))

	rec := postJSON(mux, "/api/login", `{"username":"MGLCasino11111","password":"csab123"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"redirect":"/casino-page.html"}`, rec.Body.String())

	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie, "expected session cookie")
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, int(model.SessionTTL.Seconds()), cookie.MaxAge)

	sess, err := sessions.Get(context.Background(), cookie.Value)
	require.NoError(t, err)
	require.NotNil(t, sess, "session row should exist")
	assert.Equal(t, model.CategoryCasino, sess.Category)
	assert.Nil(t, sess.VIPEnteredAt)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	_, _, mux := setupHandler(t)

	rec := postJSON(mux, "/api/login", `{"username":"nobody","password":"wrong"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Incorrect username or password."}`, rec.Body.String())
	assert.Nil(t, sessionCookie(t, rec))
}

func TestLogin_ExpiredCredential(t *testing.T) {
	creds, _, mux := setupHandler(t)
	require.NoError(t, creds.Append(context.Background(), model.CategoryBet, model.Credential{
		Username:  "MGLBet22222",
		Password:  "btcd456",
		CreatedAt: time.Now().UTC().Add(-13 * time.Hour),
	}))

	rec := postJSON(mux, "/api/login", `{"username":"MGLBet22222","password":"btcd456"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Credential expired. Please generate a new one."}`, rec.Body.String())
	assert.Nil(t, sessionCookie(t, rec))

	// The record was purged by the sweep; a retry is a plain invalid login.
	rec = postJSON(mux, "/api/login", `{"username":"MGLBet22222","password":"btcd456"}`)
	assert.Contains(t, rec.Body.String(), "Incorrect username or password.")
}

func TestLogin_MalformedBody(t *testing.T) {
	_, _, mux := setupHandler(t)

	rec := postJSON(mux, "/api/login", `{not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestConfirmPayment_Success(t *testing.T) {
	creds, _, mux := setupHandler(t)

	rec := postJSON(mux, "/confirm-payment", `{"name":"Ana","phone":"555","product":"CASINOBOT Premium"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Payment confirmed")

	all, err := creds.All(context.Background())
	require.NoError(t, err)
	assert.Len(t, all[model.CategoryCasino], 1)
}

func TestConfirmPayment_MissingFields(t *testing.T) {
	_, _, mux := setupHandler(t)

	rec := postJSON(mux, "/confirm-payment", `{"name":"Ana"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestRegisterFree_Success(t *testing.T) {
	creds, _, mux := setupHandler(t)

	rec := postJSON(mux, "/register-free", `{"name":"Bo","email":"bo@example.com","groupName":"signals"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Registration complete")

	all, err := creds.All(context.Background())
	require.NoError(t, err)
	assert.Len(t, all[model.CategoryTemp], 1)
}

func TestRegisterFree_MissingFields(t *testing.T) {
	_, _, mux := setupHandler(t)

	rec := postJSON(mux, "/register-free", `{"email":"bo@example.com"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth(t *testing.T) {
	_, _, mux := setupHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
