package web

import (
	"context"
	"errors"
	"net/http"

	httphandler "github.com/mglsites/vipgate/internal/adapter/driving/http"
	"github.com/mglsites/vipgate/internal/application"
	"github.com/mglsites/vipgate/internal/domain/model"
)

// sessionKey is the context key under which requireAuth stores the session.
type sessionKey struct{}

// sessionFromContext returns the session placed in the context by requireAuth.
func sessionFromContext(ctx context.Context) *model.Session {
	sess, _ := ctx.Value(sessionKey{}).(*model.Session)
	return sess
}

// requireAuth is the authentication gate. It resolves the session cookie,
// validates the backing credential and either passes the request through with
// the session in context, or destroys the session, clears the cookie and
// redirects to login with a reason code.
func (h *Handler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := httphandler.SessionIDFromRequest(r)
		if !ok {
			http.Redirect(w, r, "/login.html?message=not_logged_in", http.StatusFound)
			return
		}

		sess, err := h.authSvc.Session(r.Context(), id)
		if err != nil {
			h.logger.Error("failed to load session", "error", err)
			h.ServerError(w)
			return
		}
		if sess == nil {
			httphandler.ClearSessionCookie(w, h.secureCookies)
			http.Redirect(w, r, "/login.html?message=not_logged_in", http.StatusFound)
			return
		}

		if err := h.authSvc.ValidateSession(r.Context(), sess); err != nil {
			if errors.Is(err, application.ErrSessionStale) {
				httphandler.ClearSessionCookie(w, h.secureCookies)
				http.Redirect(w, r, "/login.html?message=session_invalidated", http.StatusFound)
				return
			}
			h.logger.Error("session validation failed", "error", err)
			h.ServerError(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, sess)))
	})
}

// vipSection enforces the section dwell timer on the VIP page group. Runs
// after requireAuth. A timed-out session is destroyed, its cookie cleared,
// and the user redirected to login with the section-timeout reason code.
func (h *Handler) vipSection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFromContext(r.Context())
		if sess == nil {
			// requireAuth did not run; treat as unauthenticated.
			http.Redirect(w, r, "/login.html?message=not_logged_in", http.StatusFound)
			return
		}

		if err := h.authSvc.EnterVIPSection(r.Context(), sess); err != nil {
			if errors.Is(err, application.ErrSectionTimeout) {
				httphandler.ClearSessionCookie(w, h.secureCookies)
				http.Redirect(w, r, "/login.html?message=vip_session_expired", http.StatusFound)
				return
			}
			h.logger.Error("vip section check failed", "error", err)
			h.ServerError(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}
