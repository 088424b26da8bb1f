// Package web is the page-serving driving adapter: public pages, the
// paywalled section behind the authentication gate, and the logout route.
package web

import (
	"io/fs"
	"log/slog"
	"net/http"

	httphandler "github.com/mglsites/vipgate/internal/adapter/driving/http"
	"github.com/mglsites/vipgate/internal/application"
)

// Handler serves the embedded pages and owns the gate middleware.
type Handler struct {
	authSvc       *application.AuthService
	secureCookies bool
	logger        *slog.Logger
}

// NewHandler creates a Handler.
func NewHandler(authSvc *application.AuthService, secureCookies bool, logger *slog.Logger) *Handler {
	return &Handler{
		authSvc:       authSvc,
		secureCookies: secureCookies,
		logger:        logger,
	}
}

// publicPage serves a page from the embedded public filesystem.
func (h *Handler) publicPage(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.servePage(w, PublicFS, "public/"+name, http.StatusOK)
	}
}

// protectedPage serves a page from the embedded protected filesystem. The
// gate middleware has already run by the time this executes.
func (h *Handler) protectedPage(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.servePage(w, ProtectedFS, "protected/"+name, http.StatusOK)
	}
}

// Logout destroys the session, clears the cookie and redirects to login.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if id, ok := httphandler.SessionIDFromRequest(r); ok {
		if err := h.authSvc.Logout(r.Context(), id); err != nil {
			h.logger.Error("logout failed to destroy session", "error", err)
		}
	}
	httphandler.ClearSessionCookie(w, h.secureCookies)
	http.Redirect(w, r, "/login.html?message=logout_successful", http.StatusFound)
}

// NotFound serves the embedded 404 page for unmatched routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.logger.Info("route not found", "path", r.URL.Path)
	h.servePage(w, PublicFS, "public/404.html", http.StatusNotFound)
}

// ServerError serves the embedded 500 page.
func (h *Handler) ServerError(w http.ResponseWriter) {
	data, err := fs.ReadFile(PublicFS, "public/500.html")
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write(data)
}

// servePage writes an embedded HTML file with the given status code.
func (h *Handler) servePage(w http.ResponseWriter, fsys fs.FS, path string, status int) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		h.logger.Error("failed to read embedded page", "path", path, "error", err)
		h.ServerError(w)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
