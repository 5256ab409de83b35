package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/meltforce/gymcontrol/internal/models"
)

// newTestDB opens a fresh database in a temp dir with migrations applied.
// Each test gets its own file, so auto-assigned ids start at 1.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "gymcontrol.db"))
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Migrate(); err != nil {
		t.Fatalf("migrating test db: %v", err)
	}
	return db
}

func mustCreateWorkout(t *testing.T, db *DB, name string) int64 {
	t.Helper()
	id, err := db.CreateWorkout(context.Background(), name)
	if err != nil {
		t.Fatalf("creating workout %q: %v", name, err)
	}
	return id
}

func mustCreateExercise(t *testing.T, db *DB, workoutID int64, name string, reps int, load float64) int64 {
	t.Helper()
	id, err := db.CreateExercise(context.Background(), models.Exercise{
		WorkoutID:  workoutID,
		Name:       name,
		TargetReps: reps,
		TargetLoad: load,
	})
	if err != nil {
		t.Fatalf("creating exercise %q: %v", name, err)
	}
	return id
}
