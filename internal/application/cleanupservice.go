package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/mglsites/vipgate/internal/domain/model"
	"github.com/mglsites/vipgate/internal/domain/port/driven"
)

// CleanupService periodically purges expired credentials and stale session
// rows. It shares the credential store with request handling; the store's own
// locking serializes the competing writes.
type CleanupService struct {
	creds    driven.CredentialStore
	sessions driven.SessionStore
	interval time.Duration
	logger   *slog.Logger

	now func() time.Time
}

// NewCleanupService creates a CleanupService with the given sweep interval.
func NewCleanupService(creds driven.CredentialStore, sessions driven.SessionStore, interval time.Duration, logger *slog.Logger) *CleanupService {
	return &CleanupService{
		creds:    creds,
		sessions: sessions,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// Start runs one sweep immediately, then on every tick until ctx is canceled.
func (s *CleanupService) Start(ctx context.Context) {
	s.RunOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("cleanup service stopped")
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single cleanup pass.
func (s *CleanupService) RunOnce(ctx context.Context) {
	now := s.now()
	s.logger.Info("running periodic credential cleanup")

	removed, err := s.creds.SweepExpired(ctx, now)
	if err != nil {
		s.logger.Error("credential sweep failed to persist", "error", err)
	}
	if len(removed) > 0 {
		s.logger.Info("expired credentials removed", "count", len(removed))
	}

	pruned, err := s.sessions.DeleteOlderThan(ctx, now.Add(-model.SessionTTL))
	if err != nil {
		s.logger.Error("session prune failed", "error", err)
	} else if pruned > 0 {
		s.logger.Info("stale sessions pruned", "count", pruned)
	}
}
