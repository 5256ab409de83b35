package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/meltforce/gymcontrol/internal/models"
)

// CreateWorkout inserts a workout stamped with the current time and returns
// its id.
func (db *DB) CreateWorkout(ctx context.Context, name string) (int64, error) {
	res, err := db.sql.ExecContext(ctx,
		`INSERT INTO workouts (name, created_at) VALUES (?, ?)`,
		name, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("inserting workout: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading workout id: %w", err)
	}
	return id, nil
}

// GetWorkout retrieves a single workout. Absence is not an error: a missing
// id returns (nil, nil).
func (db *DB) GetWorkout(ctx context.Context, id int64) (*models.Workout, error) {
	var w models.Workout
	err := db.sql.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM workouts WHERE id = ?`, id).
		Scan(&w.ID, &w.Name, &w.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying workout: %w", err)
	}
	return &w, nil
}

// UpdateWorkout merges the patch into an existing workout. Updating a missing
// id is a silent no-op and never creates a record.
func (db *DB) UpdateWorkout(ctx context.Context, id int64, patch models.WorkoutPatch) error {
	if patch.Name == nil {
		return nil
	}
	_, err := db.sql.ExecContext(ctx,
		`UPDATE workouts SET name = ? WHERE id = ?`, *patch.Name, id)
	if err != nil {
		return fmt.Errorf("updating workout: %w", err)
	}
	return nil
}

// ListWorkouts returns all workouts, most recently created first.
func (db *DB) ListWorkouts(ctx context.Context) ([]models.Workout, error) {
	rows, err := db.sql.QueryContext(ctx,
		`SELECT id, name, created_at FROM workouts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	defer rows.Close()

	var result []models.Workout
	for rows.Next() {
		var w models.Workout
		if err := rows.Scan(&w.ID, &w.Name, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		result = append(result, w)
	}
	return result, rows.Err()
}

// DeleteWorkout removes a workout and everything hanging off it: its
// exercises, its sessions, and those sessions' exercise records. The whole
// cascade runs in one transaction, so a failed step leaves no orphans.
// Deleting an absent id succeeds silently.
func (db *DB) DeleteWorkout(ctx context.Context, id int64) error {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning cascade: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM exercises WHERE workout_id = ?`, id); err != nil {
		return fmt.Errorf("deleting exercises: %w", err)
	}

	// Session ids must be collected before the sessions themselves go away.
	rows, err := tx.QueryContext(ctx,
		`SELECT id FROM sessions WHERE workout_id = ?`, id)
	if err != nil {
		return fmt.Errorf("querying session ids: %w", err)
	}
	var sessionIDs []int64
	for rows.Next() {
		var sid int64
		if err := rows.Scan(&sid); err != nil {
			rows.Close()
			return fmt.Errorf("scanning session id: %w", err)
		}
		sessionIDs = append(sessionIDs, sid)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	if len(sessionIDs) > 0 {
		placeholders := make([]string, len(sessionIDs))
		args := make([]any, len(sessionIDs))
		for i, sid := range sessionIDs {
			placeholders[i] = "?"
			args[i] = sid
		}
		query := `DELETE FROM session_exercises WHERE session_id IN (` +
			strings.Join(placeholders, ",") + `)`
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("deleting session exercises: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM sessions WHERE workout_id = ?`, id); err != nil {
		return fmt.Errorf("deleting sessions: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM workouts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting workout: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing cascade: %w", err)
	}
	return nil
}
