// Package auth implements the login flow against the legacy SOAP
// backend: transport-error classification, the persisted session flag
// and the retrying authentication service.
package auth

import (
	"fmt"

	"github.com/avolkov/PodKeeper/internal/models"
)

// TransportError describes a failed HTTP exchange. A StatusCode of
// zero means the request never reached the server.
type TransportError struct {
	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int
	// Timeout reports whether the transport deadline was exceeded.
	Timeout bool
	// Err is the underlying transport error, if any.
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	switch {
	case e.Timeout:
		return fmt.Sprintf("transport timeout: %v", e.Err)
	case e.StatusCode == 0:
		return fmt.Sprintf("no connection: %v", e.Err)
	default:
		return fmt.Sprintf("server returned status %d", e.StatusCode)
	}
}

// Unwrap exposes the underlying transport error.
func (e *TransportError) Unwrap() error { return e.Err }

// Retryable reports whether the failure is transient: a timeout, no
// connection at all, or a 5xx response. Client errors (4xx) are
// permanent rejections.
func (e *TransportError) Retryable() bool {
	return e.Timeout || e.StatusCode == 0 || e.StatusCode >= 500
}

// Kind maps the failure onto the typed-error taxonomy.
func (e *TransportError) Kind() models.ErrorKind {
	switch {
	case e.Timeout:
		return models.KindTimeout
	case e.StatusCode == 0:
		return models.KindNetwork
	case e.StatusCode >= 500:
		return models.KindServer
	default:
		return models.KindUnknown
	}
}
