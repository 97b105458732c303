package routes

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"accounts-service/internal/config"
	"accounts-service/internal/handlers"
	"accounts-service/internal/middleware"
)

// SetupRoutes configures all application routes
func SetupRoutes(
	mux *http.ServeMux,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	jwtCfg *config.JWTConfig,
	log *zap.Logger,
) {
	authenticated := func(next http.HandlerFunc) http.HandlerFunc {
		return middleware.Authenticate(next, jwtCfg, log)
	}

	// Service routes
	mux.HandleFunc("GET /{$}", healthHandler.Root)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /api", healthHandler.APIRoot)

	// Authentication routes
	mux.HandleFunc("POST /api/auth/sign-up", authHandler.Register)
	mux.HandleFunc("POST /api/auth/sign-in", authHandler.Login)
	mux.HandleFunc("POST /api/auth/sign-out", authHandler.Logout)

	// User routes (all require authentication)
	mux.HandleFunc("GET /api/users", authenticated(userHandler.List))
	mux.HandleFunc("GET /api/users/{id}", authenticated(userHandler.GetByID))
	mux.HandleFunc("PUT /api/users/{id}", authenticated(userHandler.Update))
	mux.HandleFunc("DELETE /api/users/{id}", authenticated(userHandler.Delete))

	// API documentation
	mux.Handle("GET /swagger/", httpSwagger.Handler())
}
