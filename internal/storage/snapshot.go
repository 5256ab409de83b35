package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/meltforce/gymcontrol/internal/models"
)

// SnapshotVersion is the format version written by ExportSnapshot.
const SnapshotVersion = 1

// Snapshot is a full dump of the four collections, ids included, suitable
// for backup files.
type Snapshot struct {
	Version          int                      `json:"version"`
	ExportedAt       time.Time                `json:"exported_at"`
	Workouts         []models.Workout         `json:"workouts"`
	Exercises        []models.Exercise        `json:"exercises"`
	Sessions         []models.Session         `json:"sessions"`
	SessionExercises []models.SessionExercise `json:"session_exercises"`
}

// ExportSnapshot dumps every record. Rows are ordered by id so exports of
// the same data are byte-stable.
func (db *DB) ExportSnapshot(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{Version: SnapshotVersion, ExportedAt: time.Now().UTC()}

	rows, err := db.sql.QueryContext(ctx,
		"SELECT id, name, created_at FROM workouts ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("exporting workouts: %w", err)
	}
	for rows.Next() {
		var w models.Workout
		if err := rows.Scan(&w.ID, &w.Name, &w.CreatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		snap.Workouts = append(snap.Workouts, w)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	rows, err = db.sql.QueryContext(ctx,
		"SELECT id, workout_id, name, target_reps, target_load, note FROM exercises ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("exporting exercises: %w", err)
	}
	for rows.Next() {
		var e models.Exercise
		if err := rows.Scan(&e.ID, &e.WorkoutID, &e.Name, &e.TargetReps, &e.TargetLoad, &e.Note); err != nil {
			rows.Close()
			return nil, err
		}
		snap.Exercises = append(snap.Exercises, e)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	rows, err = db.sql.QueryContext(ctx,
		"SELECT id, workout_id, performed_at FROM sessions ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("exporting sessions: %w", err)
	}
	for rows.Next() {
		var s models.Session
		if err := rows.Scan(&s.ID, &s.WorkoutID, &s.PerformedAt); err != nil {
			rows.Close()
			return nil, err
		}
		snap.Sessions = append(snap.Sessions, s)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	rows, err = db.sql.QueryContext(ctx,
		"SELECT id, session_id, exercise_id, name, actual_reps, actual_load FROM session_exercises ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("exporting session exercises: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var se models.SessionExercise
		if err := rows.Scan(&se.ID, &se.SessionID, &se.ExerciseID, &se.Name, &se.ActualReps, &se.ActualLoad); err != nil {
			return nil, err
		}
		snap.SessionExercises = append(snap.SessionExercises, se)
	}
	return snap, rows.Err()
}

// ImportSnapshot restores a snapshot into an empty store, preserving ids.
// It refuses to run against a store that already holds records: a restore
// target should be a fresh database file.
func (db *DB) ImportSnapshot(ctx context.Context, snap *Snapshot) error {
	if snap.Version != SnapshotVersion {
		return fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}

	var existing int64
	err := db.sql.QueryRowContext(ctx,
		"SELECT (SELECT COUNT(*) FROM workouts) + (SELECT COUNT(*) FROM sessions)",
	).Scan(&existing)
	if err != nil {
		return err
	}
	if existing > 0 {
		return fmt.Errorf("store is not empty: restore into a fresh database")
	}

	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, w := range snap.Workouts {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO workouts (id, name, created_at) VALUES (?, ?, ?)",
			w.ID, w.Name, w.CreatedAt); err != nil {
			return fmt.Errorf("restoring workout %d: %w", w.ID, err)
		}
	}
	for _, e := range snap.Exercises {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO exercises (id, workout_id, name, target_reps, target_load, note) VALUES (?, ?, ?, ?, ?, ?)",
			e.ID, e.WorkoutID, e.Name, e.TargetReps, e.TargetLoad, e.Note); err != nil {
			return fmt.Errorf("restoring exercise %d: %w", e.ID, err)
		}
	}
	for _, s := range snap.Sessions {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO sessions (id, workout_id, performed_at) VALUES (?, ?, ?)",
			s.ID, s.WorkoutID, s.PerformedAt); err != nil {
			return fmt.Errorf("restoring session %d: %w", s.ID, err)
		}
	}
	for _, se := range snap.SessionExercises {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO session_exercises (id, session_id, exercise_id, name, actual_reps, actual_load) VALUES (?, ?, ?, ?, ?, ?)",
			se.ID, se.SessionID, se.ExerciseID, se.Name, se.ActualReps, se.ActualLoad); err != nil {
			return fmt.Errorf("restoring session exercise %d: %w", se.ID, err)
		}
	}

	return tx.Commit()
}
