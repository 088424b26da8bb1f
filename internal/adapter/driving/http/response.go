package httphandler

import (
	"encoding/json"
	"net/http"
)

// writeJSON marshals v to JSON and writes it with the given status code.
// If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// LoginRequest is the JSON body of the login endpoint.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the login outcome. Redirect is set on success, Message on
// failure (with a distinct text for expired credentials).
type LoginResponse struct {
	Success  bool   `json:"success"`
	Redirect string `json:"redirect,omitempty"`
	Message  string `json:"message,omitempty"`
}

// ConfirmPaymentRequest is the JSON body of the payment-confirmation trigger.
type ConfirmPaymentRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Product string `json:"product"`
}

// RegisterFreeRequest is the JSON body of the free-tier registration trigger.
type RegisterFreeRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	GroupName string `json:"groupName"`
}

// FlowResponse is the outcome of the credential-issuing flows.
type FlowResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}
