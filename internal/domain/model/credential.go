package model

import "time"

// CredentialTTL is how long an issued credential stays valid, measured from
// CreatedAt. A credential aged exactly CredentialTTL is still valid; expiry
// uses a strict greater-than comparison.
const CredentialTTL = 12 * time.Hour

// Credential is a generated username/password pair gating one protected
// section. Passwords are low-entropy generated strings, not hashed secrets.
type Credential struct {
	Username  string
	Password  string
	CreatedAt time.Time
}

// Expired reports whether the credential has aged past CredentialTTL at the
// given instant. Legacy records with a zero CreatedAt never report expired
// here; the cleanup sweep back-fills their timestamp instead.
func (c Credential) Expired(now time.Time) bool {
	if c.CreatedAt.IsZero() {
		return false
	}
	return now.Sub(c.CreatedAt) > CredentialTTL
}
