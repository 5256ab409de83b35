package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/meltforce/gymcontrol/internal/models"
)

// CreateExercise inserts an exercise and returns its id. The workout
// reference is checked by the schema: a missing workout fails the insert.
func (db *DB) CreateExercise(ctx context.Context, ex models.Exercise) (int64, error) {
	res, err := db.sql.ExecContext(ctx,
		`INSERT INTO exercises (workout_id, name, target_reps, target_load, note)
		 VALUES (?, ?, ?, ?, ?)`,
		ex.WorkoutID, ex.Name, ex.TargetReps, ex.TargetLoad, ex.Note)
	if err != nil {
		return 0, fmt.Errorf("inserting exercise: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading exercise id: %w", err)
	}
	return id, nil
}

// UpdateExercise merges the patch into an existing exercise. Updating a
// missing id is a silent no-op.
func (db *DB) UpdateExercise(ctx context.Context, id int64, patch models.ExercisePatch) error {
	var sets []string
	var args []any
	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.TargetReps != nil {
		sets = append(sets, "target_reps = ?")
		args = append(args, *patch.TargetReps)
	}
	if patch.TargetLoad != nil {
		sets = append(sets, "target_load = ?")
		args = append(args, *patch.TargetLoad)
	}
	if patch.Note != nil {
		sets = append(sets, "note = ?")
		args = append(args, *patch.Note)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)

	query := `UPDATE exercises SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	if _, err := db.sql.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("updating exercise: %w", err)
	}
	return nil
}

// DeleteExercise removes a single exercise, as when the user drops a row
// while editing a workout. Deleting an absent id succeeds silently.
func (db *DB) DeleteExercise(ctx context.Context, id int64) error {
	if _, err := db.sql.ExecContext(ctx,
		`DELETE FROM exercises WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting exercise: %w", err)
	}
	return nil
}

// ListWorkoutExercises returns a workout's exercises in insertion order.
func (db *DB) ListWorkoutExercises(ctx context.Context, workoutID int64) ([]models.Exercise, error) {
	rows, err := db.sql.QueryContext(ctx,
		`SELECT id, workout_id, name, target_reps, target_load, note
		 FROM exercises WHERE workout_id = ? ORDER BY id ASC`, workoutID)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var result []models.Exercise
	for rows.Next() {
		var ex models.Exercise
		if err := rows.Scan(&ex.ID, &ex.WorkoutID, &ex.Name, &ex.TargetReps, &ex.TargetLoad, &ex.Note); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		result = append(result, ex)
	}
	return result, rows.Err()
}
