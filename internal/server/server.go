package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/claude/spotme/internal/chat"
	"github.com/claude/spotme/internal/models"
	"github.com/go-chi/chi/v5"
)

// Store is the workout-history seam the read endpoints need. *storage.DB
// satisfies it; handler tests use a stub.
type Store interface {
	FetchRecentWorkouts(ctx context.Context, days int) ([]models.Workout, error)
	FetchAllWorkouts(ctx context.Context) ([]models.Workout, error)
	FetchPersonalRecords(ctx context.Context, name string) ([]models.Exercise, error)
	FetchLastExercise(ctx context.Context, name string) (*models.Exercise, error)
}

// Server holds dependencies for HTTP handlers. It is the seam between the
// conversation coordinator and whatever renders the chat.
type Server struct {
	mgr    *chat.Manager
	store  Store
	log    *slog.Logger
	router chi.Router
}

// New creates a Server with all routes configured.
func New(mgr *chat.Manager, store Store, log *slog.Logger) *Server {
	s := &Server{
		mgr:    mgr,
		store:  store,
		log:    log,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/sessions", s.handleListSessions)
		r.Post("/sessions", s.handleCreateSession)
		r.Delete("/sessions/{id}", s.handleDeleteSession)
		r.Get("/sessions/{id}/messages", s.handleListMessages)
		r.Post("/sessions/{id}/messages", s.handleSendMessage)
		r.Get("/sessions/{id}/events", s.handleSessionEvents)

		r.Get("/workouts", s.handleQueryWorkouts)
		r.Get("/records", s.handlePersonalRecords)
		r.Get("/exercises/last", s.handleLastExercise)
	})
}
