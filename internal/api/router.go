package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/teamnote/teamnote/internal/api/handler"
	"github.com/teamnote/teamnote/internal/api/middleware"
	"github.com/teamnote/teamnote/internal/auth"
	"github.com/teamnote/teamnote/internal/note"
	"github.com/teamnote/teamnote/internal/team"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	AuthService *auth.Service
	UserRepo    auth.UserRepository
	TeamService *team.Service
	TeamRepo    team.Repository
	NoteService *note.Service
	DBPinger    handler.DBPinger
	Version     string
	RateLimit   int
}

// NewRouter creates and configures a Chi router with all middleware and routes.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(chimiddleware.Logger)
	if deps.RateLimit > 0 {
		r.Use(httprate.LimitByIP(deps.RateLimit, time.Minute))
	}

	healthHandler := handler.NewHealthHandler(deps.DBPinger, deps.Version)
	r.Get("/health", healthHandler.ServeHTTP)

	userHandler := handler.NewUserHandler(deps.AuthService, deps.UserRepo)
	r.Post("/auth/register", userHandler.Register)
	r.Post("/auth/login", userHandler.Login)

	requireAuth := middleware.Auth(deps.AuthService)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Get("/users/me", userHandler.Me)

		teamHandler := handler.NewTeamHandler(deps.TeamService, deps.UserRepo)
		r.Route("/teams", func(r chi.Router) {
			r.Post("/", teamHandler.Create)
			r.Get("/", teamHandler.List)
			r.Post("/join", teamHandler.Join)
			r.Get("/{id}", teamHandler.GetByID)
			r.Put("/{id}", teamHandler.Update)
			r.Patch("/{id}", teamHandler.Update)
			r.Delete("/{id}", teamHandler.Delete)
			r.Post("/{id}/leave", teamHandler.Leave)
		})

		noteHandler := handler.NewNoteHandler(deps.NoteService, deps.TeamRepo, deps.UserRepo)
		r.Route("/notes", func(r chi.Router) {
			r.Post("/", noteHandler.Create)
			r.Get("/", noteHandler.List)
			r.Get("/{id}", noteHandler.GetByID)
			r.Put("/{id}", noteHandler.Update)
			r.Patch("/{id}", noteHandler.Update)
			r.Delete("/{id}", noteHandler.Delete)
		})
	})

	return r
}
