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

// SaveSession finalizes one performance of a workout: it inserts the session
// row stamped with the current time plus one snapshot record per item, all in
// a single transaction, and returns the new session id. Item names are stored
// as-is so the record stays readable after the source exercise changes or
// disappears.
func (db *DB) SaveSession(ctx context.Context, workoutID int64, items []models.SessionItem) (int64, error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning session save: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO sessions (workout_id, performed_at) VALUES (?, ?)`,
		workoutID, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("inserting session: %w", err)
	}
	sessionID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading session id: %w", err)
	}

	if len(items) > 0 {
		query := `INSERT INTO session_exercises (session_id, exercise_id, name, actual_reps, actual_load) VALUES `
		args := make([]any, 0, len(items)*5)
		valueStrings := make([]string, 0, len(items))
		for _, it := range items {
			valueStrings = append(valueStrings, "(?,?,?,?,?)")
			args = append(args, sessionID, it.ExerciseID, it.Name, it.ActualReps, it.ActualLoad)
		}
		query += strings.Join(valueStrings, ",")
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return 0, fmt.Errorf("inserting session exercises: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing session save: %w", err)
	}
	return sessionID, nil
}

// GetSession retrieves a single session, or (nil, nil) when absent.
func (db *DB) GetSession(ctx context.Context, id int64) (*models.Session, error) {
	var s models.Session
	err := db.sql.QueryRowContext(ctx,
		`SELECT id, workout_id, performed_at FROM sessions WHERE id = ?`, id).
		Scan(&s.ID, &s.WorkoutID, &s.PerformedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}
	return &s, nil
}

// ListSessions returns all sessions, most recent first.
func (db *DB) ListSessions(ctx context.Context) ([]models.Session, error) {
	return db.querySessions(ctx,
		`SELECT id, workout_id, performed_at FROM sessions ORDER BY performed_at DESC, id DESC`)
}

// ListWorkoutSessions returns one workout's sessions, most recent first.
func (db *DB) ListWorkoutSessions(ctx context.Context, workoutID int64) ([]models.Session, error) {
	return db.querySessions(ctx,
		`SELECT id, workout_id, performed_at FROM sessions WHERE workout_id = ? ORDER BY performed_at DESC, id DESC`,
		workoutID)
}

func (db *DB) querySessions(ctx context.Context, query string, args ...any) ([]models.Session, error) {
	rows, err := db.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var result []models.Session
	for rows.Next() {
		var s models.Session
		if err := rows.Scan(&s.ID, &s.WorkoutID, &s.PerformedAt); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// ListSessionExercises returns a session's snapshot records in insertion
// order. ExerciseID may reference a long-gone exercise; callers must treat it
// as a hint, not a lookup key that resolves.
func (db *DB) ListSessionExercises(ctx context.Context, sessionID int64) ([]models.SessionExercise, error) {
	rows, err := db.sql.QueryContext(ctx,
		`SELECT id, session_id, exercise_id, name, actual_reps, actual_load
		 FROM session_exercises WHERE session_id = ? ORDER BY id ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying session exercises: %w", err)
	}
	defer rows.Close()

	var result []models.SessionExercise
	for rows.Next() {
		var se models.SessionExercise
		if err := rows.Scan(&se.ID, &se.SessionID, &se.ExerciseID, &se.Name, &se.ActualReps, &se.ActualLoad); err != nil {
			return nil, fmt.Errorf("scanning session exercise: %w", err)
		}
		result = append(result, se)
	}
	return result, rows.Err()
}
