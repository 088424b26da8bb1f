package model

import "time"

const (
	// VIPSectionTTL is the hard deadline for a session inside the VIP page
	// group, measured from first entry. It is not an idle timeout: activity
	// does not refresh it.
	VIPSectionTTL = 5 * time.Minute

	// SessionTTL bounds the lifetime of a session row and its cookie. It is
	// deliberately longer than CredentialTTL; the authentication gate, not the
	// cookie, is what invalidates a session whose credential expired.
	SessionTTL = 24 * time.Hour
)

// Session is the per-login server-side state. Its lifetime is independent of
// the credential that created it: the referenced credential may expire or be
// purged while the session row still exists.
type Session struct {
	ID           string
	Username     string
	Category     Category
	CreatedAt    time.Time
	VIPEnteredAt *time.Time
}

// DwellExceeded reports whether the session's VIP dwell window has passed at
// the given instant. A session that never entered the VIP section has no
// deadline yet.
func (s Session) DwellExceeded(now time.Time) bool {
	if s.VIPEnteredAt == nil {
		return false
	}
	return now.Sub(*s.VIPEnteredAt) > VIPSectionTTL
}
