package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/claude/liftlog/internal/builder"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/stats"
	"github.com/claude/liftlog/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Store is the persistence layer behind the API. *storage.DB satisfies it.
type Store interface {
	CreateWorkout(ctx context.Context, userID int, p models.WorkoutPayload) (*models.Workout, error)
	UpdateWorkout(ctx context.Context, userID int, id uuid.UUID, p models.WorkoutPayload) (*models.Workout, error)
	DeleteWorkout(ctx context.Context, userID int, id uuid.UUID) error
	GetWorkout(ctx context.Context, userID int, id uuid.UUID) (*models.Workout, error)
	ListWorkouts(ctx context.Context, userID int) ([]models.Workout, error)
	ExerciseNames(ctx context.Context, userID int) ([]string, error)
	VolumeByPeriod(ctx context.Context, userID int, start, end time.Time, bucket string) ([]storage.PeriodVolume, error)
	UserResolver
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store   Store
	catalog builder.Catalog
	policy  stats.Policy
	log     *slog.Logger
	apiKey  string
	whois   WhoIser
	mcp     http.Handler
	router  chi.Router
}

// New creates a new Server with all routes configured.
func New(store Store, policy stats.Policy, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		store:   store,
		catalog: builder.DefaultCatalog,
		policy:  policy,
		log:     log,
		apiKey:  apiKey,
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

// SetTailscale switches caller identity from the dev user to tailnet WhoIs.
func (s *Server) SetTailscale(wc WhoIser) {
	s.whois = wc
}

// SetMCP mounts an MCP transport handler at /api/v1/mcp.
func (s *Server) SetMCP(h http.Handler) {
	s.mcp = h
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Use(s.identity)

		r.Get("/me", s.handleMe)

		r.Get("/workouts", s.handleListWorkouts)
		r.Post("/workouts", s.handleCreateWorkout)
		r.Get("/workouts/export.xlsx", s.handleExport)
		r.Get("/workouts/{id}", s.handleGetWorkout)
		r.Put("/workouts/{id}", s.handleUpdateWorkout)
		r.Delete("/workouts/{id}", s.handleDeleteWorkout)
		r.Get("/workouts/{id}/summary", s.handleWorkoutSummary)

		r.Get("/exercises", s.handleExerciseNames)
		r.Get("/exercises/suggestions", s.handleSuggestions)

		r.Get("/progress", s.handleProgress)

		r.Handle("/mcp", http.HandlerFunc(s.handleMCP))
	})
}

// identity picks Tailscale identity once a WhoIs client is configured and
// the dev identity otherwise.
func (s *Server) identity(next http.Handler) http.Handler {
	dev := DevIdentity(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.whois == nil {
			dev.ServeHTTP(w, r)
			return
		}
		TailscaleIdentity(s.whois, s.store, s.log)(next).ServeHTTP(w, r)
	})
}
