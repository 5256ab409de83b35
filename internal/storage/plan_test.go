package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/meltforce/gymcontrol/internal/models"
)

// TestPlanValidationFailFast verifies validation errors abort before any
// write reaches the database.
func TestPlanValidationFailFast(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	_, err := db.SaveWorkoutPlan(ctx, nil, "   ", []models.ExerciseDraft{{Name: "Supino"}})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("blank name error = %v, want ErrValidation", err)
	}
	if !errors.Is(err, ErrWorkoutNameRequired) {
		t.Errorf("blank name error = %v, want ErrWorkoutNameRequired", err)
	}

	_, err = db.SaveWorkoutPlan(ctx, nil, "Treino A", []models.ExerciseDraft{{Name: "  "}, {Name: ""}})
	if !errors.Is(err, ErrNoExercises) {
		t.Errorf("no-exercises error = %v, want ErrNoExercises", err)
	}

	workouts, err := db.ListWorkouts(ctx)
	if err != nil {
		t.Fatalf("listing workouts: %v", err)
	}
	if len(workouts) != 0 {
		t.Errorf("validation failure wrote %d workouts, want 0", len(workouts))
	}
}

// TestPlanCreate verifies a nil workout id creates the workout and its rows,
// dropping blank draft rows like the form does.
func TestPlanCreate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	id, err := db.SaveWorkoutPlan(ctx, nil, "Treino A", []models.ExerciseDraft{
		{Name: "Supino", TargetReps: 10, TargetLoad: 40},
		{Name: ""},
		{Name: "Agachamento", TargetReps: 8, TargetLoad: 60, Note: "pause at the bottom"},
	})
	if err != nil {
		t.Fatalf("saving plan: %v", err)
	}

	w, err := db.GetWorkout(ctx, id)
	if err != nil || w == nil {
		t.Fatalf("workout after plan save = %v, %v", w, err)
	}
	if w.Name != "Treino A" {
		t.Errorf("name = %q, want %q", w.Name, "Treino A")
	}

	exercises, err := db.ListWorkoutExercises(ctx, id)
	if err != nil {
		t.Fatalf("listing exercises: %v", err)
	}
	if len(exercises) != 2 {
		t.Fatalf("len(exercises) = %d, want 2 (blank row dropped)", len(exercises))
	}
	if exercises[1].Note != "pause at the bottom" {
		t.Errorf("note = %q, want the draft note", exercises[1].Note)
	}
}

// TestPlanPruneAndUpsert edits an existing workout: one row kept and
// modified, one removed, one added.
func TestPlanPruneAndUpsert(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	workoutID := mustCreateWorkout(t, db, "Treino A")
	keepID := mustCreateExercise(t, db, workoutID, "Supino", 10, 40)
	dropID := mustCreateExercise(t, db, workoutID, "Rosca", 12, 15)

	id, err := db.SaveWorkoutPlan(ctx, &workoutID, "Treino A+", []models.ExerciseDraft{
		{ID: &keepID, Name: "Supino reto", TargetReps: 12, TargetLoad: 42.5},
		{Name: "Remada", TargetReps: 10, TargetLoad: 50},
	})
	if err != nil {
		t.Fatalf("saving plan: %v", err)
	}
	if id != workoutID {
		t.Errorf("returned id = %d, want %d", id, workoutID)
	}

	w, err := db.GetWorkout(ctx, workoutID)
	if err != nil || w == nil {
		t.Fatalf("workout = %v, %v", w, err)
	}
	if w.Name != "Treino A+" {
		t.Errorf("name = %q, want %q", w.Name, "Treino A+")
	}

	exercises, err := db.ListWorkoutExercises(ctx, workoutID)
	if err != nil {
		t.Fatalf("listing exercises: %v", err)
	}
	if len(exercises) != 2 {
		t.Fatalf("len(exercises) = %d, want 2", len(exercises))
	}
	if exercises[0].ID != keepID || exercises[0].Name != "Supino reto" || exercises[0].TargetReps != 12 {
		t.Errorf("kept exercise = %+v, want updated Supino reto", exercises[0])
	}
	if exercises[1].Name != "Remada" {
		t.Errorf("new exercise = %+v, want Remada", exercises[1])
	}
	for _, ex := range exercises {
		if ex.ID == dropID {
			t.Errorf("exercise %d should have been pruned", dropID)
		}
	}
}
