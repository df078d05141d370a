package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"pokedex-service/internal/http/handlers"
	"pokedex-service/internal/http/middleware"
	"pokedex-service/internal/http/requestutil"
	"pokedex-service/internal/metrics"
)

const corsMaxAge = 300

// RouterConfig collects what NewRouter mounts.
type RouterConfig struct {
	Handler     *handlers.Handler
	Admin       *handlers.AdminHandler
	CORSOrigins []string
	Logger      *slog.Logger
	Metrics     *metrics.Recorder
}

// NewRouter registers HTTP routes on a chi router behind recovery, CORS and request logging.
// The admin route is mounted only when an AdminHandler is supplied.
func NewRouter(cfg RouterConfig) nethttp.Handler {
	h := cfg.Handler
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", requestutil.HeaderRequestID},
		ExposedHeaders:   []string{requestutil.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           corsMaxAge,
	}))
	r.Use(func(next nethttp.Handler) nethttp.Handler {
		return middleware.LoggingMiddleware(cfg.Logger, cfg.Metrics, next)
	})
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)

	r.Route("/api", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", h.CatalogView)
			r.Get("/options", h.CatalogOptions)
			r.Post("/filter", h.ApplyFilter)
			r.Post("/search", h.Search)
			r.Post("/more", h.LoadMore)
			r.Post("/reset", h.Reset)
		})
		r.Get("/pokemon/{id}", h.PokemonDetails)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
			r.Post("/logout", h.Logout)
			r.Get("/me", h.Me)
			r.Get("/trainers", h.Trainers)
		})
		r.Route("/team", func(r chi.Router) {
			r.Get("/", h.Team)
			r.Post("/toggle", h.ToggleTeam)
			r.Delete("/{id}", h.RemoveFromTeam)
		})
		r.Route("/compare", func(r chi.Router) {
			r.Get("/", h.CompareState)
			r.Delete("/", h.CompareClear)
			r.Post("/mode", h.CompareMode)
			r.Post("/select", h.CompareSelect)
		})
		r.Route("/chat", func(r chi.Router) {
			r.Get("/", h.ChatTranscript)
			r.Post("/", h.ChatSend)
			r.Delete("/", h.ChatReset)
		})
	})

	if cfg.Admin != nil {
		r.Post("/admin/index/refresh", cfg.Admin.RefreshIndex)
	}
	return r
}
