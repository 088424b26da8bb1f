// Package httphandler is the JSON API driving adapter: login, the
// payment-confirmation and free-registration triggers, and the health check.
package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/mglsites/vipgate/internal/application"
)

const (
	msgInvalidCredentials = "Incorrect username or password."
	msgExpiredCredential  = "Credential expired. Please generate a new one."
	msgPaymentConfirmed   = "Payment confirmed, credentials generated (valid for 12 hours) and sent!"
	msgFreeRegistered     = "Registration complete, credentials sent to your email (valid for 12 hours)!"
)

// Handler is the HTTP driving adapter for the JSON API.
type Handler struct {
	issueSvc      *application.IssueService
	authSvc       *application.AuthService
	secureCookies bool
	logger        *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(issueSvc *application.IssueService, authSvc *application.AuthService, secureCookies bool, logger *slog.Logger) *Handler {
	return &Handler{
		issueSvc:      issueSvc,
		authSvc:       authSvc,
		secureCookies: secureCookies,
		logger:        logger,
	}
}

// RegisterAPIRoutes registers all JSON API routes on the provided mux.
func RegisterAPIRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("POST /api/login", h.Login)
	mux.HandleFunc("POST /confirm-payment", h.ConfirmPayment)
	mux.HandleFunc("POST /register-free", h.RegisterFree)
	mux.HandleFunc("GET /api/v1/health", h.Health)
}

// Login authenticates the submitted pair, establishes the session and sets
// the session cookie. Failed attempts return 200 with success=false; the
// expired outcome carries a distinct message so the page can prompt for a new
// credential instead of a password retry.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.authSvc.Login(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, application.ErrExpiredCredential):
		writeJSON(w, http.StatusOK, LoginResponse{Success: false, Message: msgExpiredCredential})
	case errors.Is(err, application.ErrInvalidCredential):
		writeJSON(w, http.StatusOK, LoginResponse{Success: false, Message: msgInvalidCredentials})
	case err != nil:
		h.logger.Error("login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	default:
		SetSessionCookie(w, res.Session.ID, h.secureCookies)
		writeJSON(w, http.StatusOK, LoginResponse{Success: true, Redirect: res.Redirect})
	}
}

// ConfirmPayment handles the payment-confirmation trigger.
func (h *Handler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var req ConfirmPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	_, err := h.issueSvc.ConfirmPayment(r.Context(), req.Name, req.Phone, req.Product)
	if errors.Is(err, application.ErrMissingFields) {
		writeJSON(w, http.StatusBadRequest, FlowResponse{Success: false, Message: "Name, phone and product are required."})
		return
	}
	if err != nil {
		h.logger.Error("payment confirmation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, FlowResponse{Success: true, Message: msgPaymentConfirmed})
}

// RegisterFree handles the free-tier registration trigger.
func (h *Handler) RegisterFree(w http.ResponseWriter, r *http.Request) {
	var req RegisterFreeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	_, err := h.issueSvc.RegisterFree(r.Context(), req.Name, req.Email, req.GroupName)
	if errors.Is(err, application.ErrMissingFields) {
		writeJSON(w, http.StatusBadRequest, FlowResponse{Success: false, Message: "Name, email and group name are required."})
		return
	}
	if err != nil {
		h.logger.Error("free registration failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, FlowResponse{Success: true, Message: msgFreeRegistered})
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}
