package httphandler

import (
	"net/http"

	"github.com/mglsites/vipgate/internal/domain/model"
)

// SessionCookieName is the session cookie shared by the API and page routes.
const SessionCookieName = "vipgate_session"

// SetSessionCookie attaches the session cookie to the response. HttpOnly and
// SameSite=Lax always; Secure when the deployment terminates TLS. The cookie
// outlives the credential window on purpose: the authentication gate, not the
// cookie, invalidates sessions whose credential expired.
func SetSessionCookie(w http.ResponseWriter, sessionID string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(model.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
	})
}

// ClearSessionCookie expires the session cookie on the client.
func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
	})
}

// SessionIDFromRequest extracts the session ID cookie, if present.
func SessionIDFromRequest(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}
