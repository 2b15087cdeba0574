// Package http provides the HTTP handlers of the development stub
// server, which impersonates the legacy SOAP login backend.
package http

import (
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/avolkov/PodKeeper/internal/soap"
)

// AuthHandler serves the SOAP login endpoint against a fixed set of
// accepted credentials.
type AuthHandler struct {
	// Username and Password are the only accepted credential pair.
	Username string
	Password string
	// Log records handled logins.
	Log *zap.Logger
}

// Login handles POST login envelopes. A well-formed request always
// gets a well-formed response envelope; only the LoginResult value
// reflects whether the credentials matched.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	creds, err := soap.ParseLoginRequest(string(body))
	if err != nil {
		http.Error(w, "malformed envelope", http.StatusBadRequest)
		return
	}

	result := creds.Username == h.Username && creds.Password == h.Password
	h.Log.Info("login request",
		zap.String("user", creds.Username),
		zap.Bool("result", result),
		zap.String("request_id", r.Header.Get("X-Request-ID")),
	)

	w.Header().Set("Content-Type", soap.ContentType)
	_, _ = io.WriteString(w, soap.RenderLoginResponse(result))
}
