package server

import (
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/meltforce/gymcontrol/internal/router"
	"github.com/meltforce/gymcontrol/internal/storage"
	"github.com/meltforce/gymcontrol/internal/view"
)

// Server holds dependencies for HTTP handlers. It exposes the JSON API under
// /api/v1 and renders every other GET through the view router, which is the
// HTTP binding of the route table.
type Server struct {
	db     *storage.DB
	viewer *router.Router
	log    *slog.Logger
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, viewer *router.Router, log *slog.Logger) *Server {
	s := &Server{
		db:     db,
		viewer: viewer,
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
	s.router.Use(RequestID)
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/workouts", s.handleListWorkouts)
		r.Post("/workouts", s.handleCreateWorkout)
		r.Post("/workouts/plan", s.handleSavePlan)
		r.Get("/workouts/{id}", s.handleGetWorkout)
		r.Patch("/workouts/{id}", s.handleUpdateWorkout)
		r.Delete("/workouts/{id}", s.handleDeleteWorkout)
		r.Put("/workouts/{id}/plan", s.handleSavePlan)
		r.Get("/workouts/{id}/exercises", s.handleListWorkoutExercises)
		r.Post("/workouts/{id}/sessions", s.handleSaveSession)
		r.Get("/sessions", s.handleListSessions)
		r.Get("/sessions/{id}", s.handleGetSession)
		r.Get("/stats", s.handleStats)
	})

	// Everything else renders through the view router. Unknown paths fall
	// back to the home view rather than a 404 page.
	s.router.NotFound(s.handleView)
}

// MountMCP attaches the MCP transport handler.
func (s *Server) MountMCP(h http.Handler) {
	s.router.Mount("/mcp", h)
}

// SetStatic mounts the embedded asset filesystem under /static/.
func (s *Server) SetStatic(staticFS fs.FS) {
	s.router.Handle("/static/*", http.FileServerFS(staticFS))
}

// handleView maps the request path to a route name and the query string to
// its params, then serves the rendered page. This is the path-based analog of
// the "#name?params" fragment scheme.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}

	name := strings.Trim(r.URL.Path, "/")
	if name == "" {
		name = router.DefaultRoute
	}

	node, err := s.viewer.Resolve(r.Context(), name, r.URL.Query())
	if err != nil {
		s.log.Error("view render failed", "route", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(`<!doctype html><html><head><meta charset="utf-8">` +
		`<meta name="viewport" content="width=device-width, initial-scale=1">` +
		`<title>GymControl</title>` +
		`<link rel="stylesheet" href="/static/app.css"></head><body>`))
	if err := view.Render(w, view.Shell(node)); err != nil {
		s.log.Error("view write failed", "route", name, "error", err)
		return
	}
	_, _ = w.Write([]byte(`</body></html>`))
}
