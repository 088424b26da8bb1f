package web

import (
	"io/fs"
	"net/http"
)

// RegisterRoutes registers all page routes on the provided mux. Protected
// pages run behind the authentication gate; the VIP page group additionally
// runs behind the section timer. The generic dashboard is gate-only.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Client-side scripts (embedded via go:embed).
	staticFS, _ := fs.Sub(PublicFS, "public/static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticFS)))

	// Public pages.
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login.html", http.StatusFound)
	})
	mux.HandleFunc("GET /login.html", h.publicPage("login.html"))
	mux.HandleFunc("GET /payment.html", h.publicPage("payment.html"))
	mux.HandleFunc("GET /confirmed.html", h.publicPage("confirmed.html"))
	mux.HandleFunc("GET /cancel.html", h.publicPage("cancel.html"))

	// Paywalled pages.
	mux.Handle("GET /packvip-page.html", h.requireAuth(h.vipSection(h.protectedPage("packvip-page.html"))))
	mux.Handle("GET /casino-page.html", h.requireAuth(h.vipSection(h.protectedPage("casino-page.html"))))
	mux.Handle("GET /bet-page.html", h.requireAuth(h.vipSection(h.protectedPage("bet-page.html"))))
	mux.Handle("GET /generic-dashboard.html", h.requireAuth(h.protectedPage("generic-dashboard.html")))

	mux.HandleFunc("GET /logout", h.Logout)

	// Everything else gets the 404 page.
	mux.HandleFunc("/", h.NotFound)
}
