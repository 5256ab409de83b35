package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/meltforce/gymcontrol/internal/models"
)

// SaveWorkoutPlan persists the workout editing form in one transaction:
// create-or-rename the workout, delete exercises the user removed, update the
// rows that carry an id, and insert the rest. Returns the workout id.
//
// Validation runs before the transaction opens, so a validation failure
// writes nothing. Draft rows without a name are dropped the way the form
// ignores blank rows; if nothing is left the plan is rejected.
func (db *DB) SaveWorkoutPlan(ctx context.Context, workoutID *int64, name string, drafts []models.ExerciseDraft) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, ErrWorkoutNameRequired
	}
	kept := make([]models.ExerciseDraft, 0, len(drafts))
	for _, d := range drafts {
		d.Name = strings.TrimSpace(d.Name)
		if d.Name != "" {
			kept = append(kept, d)
		}
	}
	if len(kept) == 0 {
		return 0, ErrNoExercises
	}

	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning plan save: %w", err)
	}
	defer tx.Rollback()

	var id int64
	if workoutID == nil {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO workouts (name, created_at) VALUES (?, ?)`,
			name, time.Now().UTC())
		if err != nil {
			return 0, fmt.Errorf("inserting workout: %w", err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return 0, fmt.Errorf("reading workout id: %w", err)
		}
	} else {
		id = *workoutID
		if _, err := tx.ExecContext(ctx,
			`UPDATE workouts SET name = ? WHERE id = ?`, name, id); err != nil {
			return 0, fmt.Errorf("renaming workout: %w", err)
		}
	}

	// Prune exercises whose id no longer appears among the kept drafts.
	keptIDs := make(map[int64]bool, len(kept))
	for _, d := range kept {
		if d.ID != nil {
			keptIDs[*d.ID] = true
		}
	}
	rows, err := tx.QueryContext(ctx,
		`SELECT id FROM exercises WHERE workout_id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("querying existing exercises: %w", err)
	}
	var prune []int64
	for rows.Next() {
		var exID int64
		if err := rows.Scan(&exID); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scanning exercise id: %w", err)
		}
		if !keptIDs[exID] {
			prune = append(prune, exID)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}
	for _, exID := range prune {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM exercises WHERE id = ?`, exID); err != nil {
			return 0, fmt.Errorf("pruning exercise: %w", err)
		}
	}

	for _, d := range kept {
		if d.ID != nil {
			_, err = tx.ExecContext(ctx,
				`UPDATE exercises SET name = ?, target_reps = ?, target_load = ?, note = ? WHERE id = ?`,
				d.Name, d.TargetReps, d.TargetLoad, d.Note, *d.ID)
		} else {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO exercises (workout_id, name, target_reps, target_load, note) VALUES (?, ?, ?, ?, ?)`,
				id, d.Name, d.TargetReps, d.TargetLoad, d.Note)
		}
		if err != nil {
			return 0, fmt.Errorf("saving exercise: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing plan save: %w", err)
	}
	return id, nil
}
