package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"movieCatalog/internal/auth"
	"movieCatalog/models"
	"movieCatalog/repository"
)

// Pinger reports storage liveness.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler bundles dependencies and implements the REST routes.
type Handler struct {
	Movies    repository.MovieRepositoryI
	Directors repository.DirectorRepositoryI
	Users     repository.UserRepositoryI
	Signer    *auth.Signer
	// Revoked enables POST /auth/logout when non-nil.
	Revoked auth.Revocations
	DB      Pinger
	// AllowAdminRegistration routes POST /auth/register-admin. Not for production.
	AllowAdminRegistration bool

	started time.Time
}

// RouterOptions configures the middleware chain.
type RouterOptions struct {
	Logger      zerolog.Logger
	CORSOrigins []string
}

// NewRouter wires every route and its guards.
func NewRouter(h *Handler, opts RouterOptions) http.Handler {
	if h.started.IsZero() {
		h.started = time.Now()
	}
	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	requireAuth := auth.RequireAuth(h.Signer, h.Revoked)
	requireAdmin := auth.RequireRole(models.RoleAdmin)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(AccessLog(opts.Logger))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/", h.Home)
	r.Get("/home", h.Home)
	r.Get("/status", h.Status)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/register", h.Register)
		if h.AllowAdminRegistration {
			r.Post("/register-admin", h.RegisterAdmin)
		}
		if h.Revoked != nil {
			r.With(requireAuth).Post("/logout", h.Logout)
		}
	})
	r.With(requireAuth).Get("/me", h.Me)

	r.Route("/movies", func(r chi.Router) {
		r.Get("/", h.ListMovies)
		r.Get("/{id}", h.GetMovie)
		r.Get("/title/{title}", h.GetMovieByTitle)
		r.Get("/director/{director}", h.ListMoviesByDirector)
		r.With(requireAuth).Post("/", h.CreateMovie)
		r.Group(func(r chi.Router) {
			r.Use(requireAuth, requireAdmin)
			r.Put("/{id}", h.UpdateMovie)
			r.Delete("/{id}", h.DeleteMovie)
		})
	})

	r.Route("/directors", func(r chi.Router) {
		r.Get("/", h.ListDirectors)
		r.Get("/{id}", h.GetDirector)
		r.With(requireAuth).Post("/", h.CreateDirector)
		r.Group(func(r chi.Router) {
			r.Use(requireAuth, requireAdmin)
			r.Put("/{id}", h.UpdateDirector)
			r.Delete("/{id}", h.DeleteDirector)
		})
	})

	r.Get("/users", h.ListUsers)

	return r
}
