package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/calref/user-api/internal/api"
	apimiddleware "github.com/calref/user-api/internal/api/middleware"
	"github.com/calref/user-api/internal/api/shared"
)

// setupRouter builds the application router: middleware chain, the users
// resource under the configured API prefix, and the root/health
// endpoints.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Ordered outermost-in: CORS decides whether the request proceeds at
	// all, the request ID must exist before anything logs, Recovery sits
	// outside RequestLogging so the logger can record a panic and
	// re-raise it, and security headers are set closest to the handlers.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))
	r.Use(chimiddleware.StripSlashes)
	r.Use(apimiddleware.RequestID)
	r.Use(apimiddleware.Recovery)
	r.Use(apimiddleware.RequestLogging(app.logger))
	r.Use(apimiddleware.SecurityHeaders(app.config.App.Debug))

	// Unmatched paths and methods still answer with the envelope.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound,
			"Not Found", shared.HTTPErrorCode(http.StatusNotFound))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusMethodNotAllowed,
			"Method Not Allowed", shared.HTTPErrorCode(http.StatusMethodNotAllowed))
	})

	userHandler := api.NewUserHandler(app.userService)

	r.Route(app.config.App.APIPrefix+"/users", func(r chi.Router) {
		r.Get("/", userHandler.List)
		r.Post("/", userHandler.Create)
		r.Get("/{userID}", userHandler.Get)
		r.Put("/{userID}", userHandler.Update)
		r.Delete("/{userID}", userHandler.Delete)
	})

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		shared.RespondWithJSON(w, req, http.StatusOK, api.WelcomeResponse{
			Message: "Welcome to " + app.config.App.Name,
			Version: app.config.App.Version,
		})
	})

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		shared.RespondWithJSON(w, req, http.StatusOK, api.HealthResponse{
			Status:  "healthy",
			Service: app.config.App.Name,
		})
	})

	return r
}
