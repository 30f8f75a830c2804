package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/yaolab/liuyao-api/internal/api"
	apiMiddleware "github.com/yaolab/liuyao-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Casting and share endpoints are public; reading archive
// endpoints require authentication.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Trace IDs tie request logs together; the trace middleware also puts
	// the annotated logger on the request context.
	r.Use(apiMiddleware.TraceMiddleware)

	// Create API handlers using the application's services
	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordVerifier,
		app.config.Auth,
	)
	castingHandler := api.NewCastingHandler(app.castingService, app.logger)
	readingHandler := api.NewReadingHandler(app.readingService, app.logger)
	userHandler := api.NewUserHandler(app.userService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Casting endpoints (public, no account needed to cast)
		r.Post("/castings", castingHandler.Cast)
		r.Get("/share/{code}", castingHandler.GetShared)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Account management endpoints
			r.Put("/auth/password", userHandler.ChangePassword)
			r.Delete("/auth/account", userHandler.DeleteAccount)

			// Reading archive endpoints
			r.Post("/readings", readingHandler.CreateReading)
			r.Get("/readings", readingHandler.ListReadings)
			r.Get("/readings/{id}", readingHandler.GetReading)
			r.Delete("/readings/{id}", readingHandler.DeleteReading)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
