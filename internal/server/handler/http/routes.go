package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/avolkov/PodKeeper/internal/middleware"
)

// NewRouter constructs the stub server's router.
//
// Routes:
//
//	POST /auth/login.asmx → authHandler.Login
//
// Middleware chain (applied in order):
//  1. AllowContentType("text/xml") — rejects non-XML requests
//  2. WithRequestLogging(logger)  — logs incoming requests
func NewRouter(authHandler *AuthHandler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with an XML content type
	r.Use(chiMiddleware.AllowContentType("text/xml"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Post("/auth/login.asmx", authHandler.Login)

	return r
}
