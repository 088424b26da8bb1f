package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mglsites/vipgate/internal/domain/model"
	"github.com/mglsites/vipgate/internal/domain/port/driven"
)

// LoginResult carries the established session and its landing page.
type LoginResult struct {
	Session  model.Session
	Redirect string
}

// AuthService implements the login operation, the per-request authentication
// gate and the VIP section timer. Credential validity and section dwell are
// separate methods so each is independently testable.
type AuthService struct {
	creds    driven.CredentialStore
	sessions driven.SessionStore
	logger   *slog.Logger

	// now is swapped out in tests to drive the expiry clocks.
	now func() time.Time
}

// NewAuthService creates an AuthService.
func NewAuthService(creds driven.CredentialStore, sessions driven.SessionStore, logger *slog.Logger) *AuthService {
	return &AuthService{
		creds:    creds,
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
	}
}

// Login scans every category for the submitted pair. Expired records found
// during the scan are purged and persisted immediately, as a side effect of
// this read path. Outcome priority: a live match wins; otherwise a match
// against a just-purged record reports ErrExpiredCredential; otherwise
// ErrInvalidCredential. On success a fresh session is established with no VIP
// timer, replacing whatever timer a previous login may have carried.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	now := s.now()

	removed, err := s.creds.SweepExpired(ctx, now)
	if err != nil {
		// Persistence failures are logged, not retried; the in-memory state
		// is already updated and the login proceeds against it.
		s.logger.Error("failed to persist expiry sweep during login", "error", err)
	}

	all, err := s.creds.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load credentials: %w", err)
	}

	for cat, creds := range all {
		for _, cred := range creds {
			if cred.Username != username || cred.Password != password {
				continue
			}

			sess := model.Session{
				ID:        uuid.NewString(),
				Username:  username,
				Category:  cat,
				CreatedAt: now,
			}
			if err := s.sessions.Create(ctx, sess); err != nil {
				return nil, fmt.Errorf("create session: %w", err)
			}

			redirect, known := redirectFor(cat)
			if !known {
				s.logger.Warn("category has no dedicated landing page, using generic dashboard",
					"category", cat)
			}

			s.logger.Info("login succeeded", "username", username, "category", cat, "redirect", redirect)
			return &LoginResult{Session: sess, Redirect: redirect}, nil
		}
	}

	for _, r := range removed {
		if r.Credential.Username == username && r.Credential.Password == password {
			s.logger.Info("login attempt with expired credential", "username", username, "category", r.Category)
			return nil, ErrExpiredCredential
		}
	}

	s.logger.Info("login failed", "username", username)
	return nil, ErrInvalidCredential
}

// ValidateSession is the authentication gate: it checks that the session's
// credential still exists in its category bucket and has not expired. A stale
// session is destroyed here and ErrSessionStale returned; the caller clears
// the cookie and redirects.
func (s *AuthService) ValidateSession(ctx context.Context, sess *model.Session) error {
	cred, err := s.creds.Find(ctx, sess.Category, sess.Username)
	if err != nil {
		return fmt.Errorf("look up session credential: %w", err)
	}

	if cred == nil || cred.Expired(s.now()) {
		s.logger.Info("session invalidated, credential missing or expired",
			"username", sess.Username, "category", sess.Category)
		if err := s.sessions.Delete(ctx, sess.ID); err != nil {
			s.logger.Error("failed to destroy stale session", "session_id", sess.ID, "error", err)
		}
		return ErrSessionStale
	}

	return nil
}

// EnterVIPSection enforces the section dwell timer. The first call for a
// session records the entry timestamp and allows; later calls compare against
// the hard deadline. A timed-out session is destroyed and ErrSectionTimeout
// returned. sess is updated in place when the timer starts.
func (s *AuthService) EnterVIPSection(ctx context.Context, sess *model.Session) error {
	now := s.now()

	if sess.VIPEnteredAt == nil {
		if err := s.sessions.SetVIPEntry(ctx, sess.ID, now); err != nil {
			return fmt.Errorf("record vip entry: %w", err)
		}
		sess.VIPEnteredAt = &now
		s.logger.Info("vip section timer started", "username", sess.Username, "session_id", sess.ID)
		return nil
	}

	if sess.DwellExceeded(now) {
		s.logger.Info("vip section time expired", "username", sess.Username, "session_id", sess.ID)
		if err := s.sessions.Delete(ctx, sess.ID); err != nil {
			s.logger.Error("failed to destroy timed-out session", "session_id", sess.ID, "error", err)
		}
		return ErrSectionTimeout
	}

	return nil
}

// Logout destroys the session.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

// Session resolves a session by ID, or (nil, nil) when absent.
func (s *AuthService) Session(ctx context.Context, sessionID string) (*model.Session, error) {
	return s.sessions.Get(ctx, sessionID)
}
