package main

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/crucial707/movies-api/internal/auth"
	"github.com/crucial707/movies-api/internal/config"
	"github.com/crucial707/movies-api/internal/handlers"
	"github.com/crucial707/movies-api/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// stores bundles the persistence the router composes. Ping may be nil.
type stores struct {
	Users  handlers.UserStore
	Movies handlers.MovieStore
	Audit  handlers.AuditStore
	Ping   func(ctx context.Context) error
}

// newRouter wires handlers and middleware. The issuer is built from cfg once and shared
// read-only by every request.
func newRouter(s stores, cfg config.Config, logger *slog.Logger) http.Handler {
	issuer := auth.NewIssuer([]byte(cfg.SecretKey), cfg.TokenTTL)

	authHandler := &handlers.AuthHandler{Users: s.Users, Issuer: issuer, Logger: logger}
	movieHandler := &handlers.MovieHandler{Movies: s.Movies, Audit: s.Audit, Logger: logger}
	auditHandler := &handlers.AuditHandler{Repo: s.Audit, Logger: logger}
	healthHandler := &handlers.HealthHandler{Ping: s.Ping, Logger: logger}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLog(logger))
	r.Use(middleware.Prometheus)
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.SecurityHeaders(cfg.TLSEnabled()))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.MaxBytes(int64(cfg.MaxBodyBytes)))

	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/signup", authHandler.Signup)
	r.Post("/signin", authHandler.Signin)

	r.Get("/movies", movieHandler.GetMovies)

	// Every movie write needs a valid token.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireToken(issuer))
		r.Post("/movies", movieHandler.CreateMovie)
		r.Put("/movies", movieHandler.UpdateMovie)
		r.Delete("/movies", movieHandler.DeleteMovie)
		r.Get("/audit", auditHandler.ListAudit)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handlers.JSONError(w, "not found", http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handlers.JSONError(w, "method not allowed", http.StatusMethodNotAllowed)
	})

	return r
}
