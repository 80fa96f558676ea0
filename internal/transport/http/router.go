package http

import (
	"net/http"

	"github.com/ec5/ec5-api/internal/application/entry"
	"github.com/ec5/ec5-api/internal/application/geocode"
	"github.com/ec5/ec5-api/internal/application/project"
	"github.com/ec5/ec5-api/internal/application/session"
	"github.com/ec5/ec5-api/internal/config"
	"github.com/ec5/ec5-api/internal/domain"
	"github.com/ec5/ec5-api/internal/transport/http/handler"
	appmiddleware "github.com/ec5/ec5-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	if cfg.TrustProxy {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	resp := appmiddleware.NewErrorResponder(appmiddleware.IsAPIRequest, deps.Flash, cfg.LoginPath, cfg.HomePath, deps.Log)
	authMw := appmiddleware.Auth(deps.Tokens, resp)

	// 5 requests/second, burst of 10, on credential endpoints.
	loginRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10, resp)
	geocodeRL := appmiddleware.NewRateLimiter(rate.Limit(cfg.Geocoder.Rate), cfg.Geocoder.Burst, resp)

	entrySvc := entry.NewService(deps.Entries, domain.EntryKindTop, deps.Log)
	branchSvc := entry.NewService(deps.BranchEntries, domain.EntryKindBranch, deps.Log)
	projectSvc := project.NewService(deps.Projects, deps.Mailer, deps.Log, cfg.AppURL)
	sessionSvc := session.NewService(deps.Users, deps.Tokens, deps.Google)
	geocodeSvc := geocode.NewService(deps.GeocodeCache, deps.Geocoder, cfg.Geocoder.CacheTTL, deps.Log)

	healthH := handler.NewHealthHandler()
	homeH := handler.NewHomeHandler(deps.Flash, deps.Tokens, deps.Log)
	sessionH := handler.NewSessionHandler(sessionSvc, deps.Flash, resp, deps.Log, handler.SessionConfig{
		LoginPath:      cfg.LoginPath,
		HomePath:       cfg.HomePath,
		SecureCookies:  !cfg.IsDevelopment(),
		GoogleClientID: cfg.GoogleClientID,
	})
	entryH := handler.NewEntryHandler(entrySvc, branchSvc, projectSvc, deps.Media, resp, deps.Log)
	projectH := handler.NewProjectHandler(projectSvc, resp, deps.Log)
	geocodeH := handler.NewGeocoderHandler(geocodeSvc, deps.Log)

	// ── Browser routes ───────────────────────────────────────────────────────
	r.Get(cfg.HomePath, homeH.Show)
	r.Get(cfg.LoginPath, sessionH.LoginPage)
	r.With(loginRL.Limit).Post(cfg.LoginPath, sessionH.Login)
	r.With(loginRL.Limit).Post(cfg.LoginPath+"/google", sessionH.Google)
	r.Post("/logout", sessionH.Logout)

	r.Route("/api", func(r chi.Router) {
		// ── Public API routes ────────────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.With(loginRL.Limit).Post("/login", sessionH.Login)
		r.With(loginRL.Limit).Post("/login/google", sessionH.Google)
		r.Post("/logout", sessionH.Logout)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Post("/internal/projects/import", projectH.Import)
			r.Delete("/internal/projects/{project_id}/entries", entryH.DeleteEntries)
			r.Delete("/internal/projects/{project_id}/branch-entries", entryH.DeleteBranchEntries)
			r.With(geocodeRL.Limit).Get("/internal/geocoder", geocodeH.Lookup)
		})
	})

	return r
}
