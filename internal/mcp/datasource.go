package mcp

import (
	"context"

	"github.com/meltforce/gymcontrol/internal/models"
	"github.com/meltforce/gymcontrol/internal/storage"
)

// DataSource abstracts the record store for MCP tools. Only read operations
// are exposed here: sessions are append-only and workouts are edited through
// the app, so the assistant surface stays read-only.
type DataSource interface {
	ListWorkouts(ctx context.Context) ([]models.Workout, error)
	GetWorkout(ctx context.Context, id int64) (*models.Workout, error)
	ListWorkoutExercises(ctx context.Context, workoutID int64) ([]models.Exercise, error)
	ListSessions(ctx context.Context) ([]models.Session, error)
	ListWorkoutSessions(ctx context.Context, workoutID int64) ([]models.Session, error)
	GetSession(ctx context.Context, id int64) (*models.Session, error)
	ListSessionExercises(ctx context.Context, sessionID int64) ([]models.SessionExercise, error)
	GetStats(ctx context.Context) (*storage.DataStats, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
