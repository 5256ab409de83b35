package storage

import (
	"context"
	"fmt"
	"time"
)

// DataStats holds aggregate statistics about all stored data.
type DataStats struct {
	TotalWorkouts         int64              `json:"total_workouts"`
	TotalExercises        int64              `json:"total_exercises"`
	TotalSessions         int64              `json:"total_sessions"`
	TotalSessionExercises int64              `json:"total_session_exercises"`
	FirstSession          *time.Time         `json:"first_session"`
	LastSession           *time.Time         `json:"last_session"`
	SessionsByWorkout     []WorkoutStatEntry `json:"sessions_by_workout"`
}

// WorkoutStatEntry holds the session count for a single workout.
type WorkoutStatEntry struct {
	WorkoutID int64  `json:"workout_id"`
	Name      string `json:"name"`
	Sessions  int64  `json:"sessions"`
}

// GetStats returns aggregate statistics over all four collections.
func (db *DB) GetStats(ctx context.Context) (*DataStats, error) {
	stats := &DataStats{}

	counts := []struct {
		query string
		dest  *int64
	}{
		{"SELECT COUNT(*) FROM workouts", &stats.TotalWorkouts},
		{"SELECT COUNT(*) FROM exercises", &stats.TotalExercises},
		{"SELECT COUNT(*) FROM sessions", &stats.TotalSessions},
		{"SELECT COUNT(*) FROM session_exercises", &stats.TotalSessionExercises},
	}
	for _, c := range counts {
		if err := db.sql.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("counting rows: %w", err)
		}
	}

	if stats.TotalSessions > 0 {
		var first, last time.Time
		err := db.sql.QueryRowContext(ctx,
			"SELECT performed_at FROM sessions ORDER BY performed_at ASC, id ASC LIMIT 1",
		).Scan(&first)
		if err != nil {
			return nil, fmt.Errorf("first session: %w", err)
		}
		err = db.sql.QueryRowContext(ctx,
			"SELECT performed_at FROM sessions ORDER BY performed_at DESC, id DESC LIMIT 1",
		).Scan(&last)
		if err != nil {
			return nil, fmt.Errorf("last session: %w", err)
		}
		stats.FirstSession, stats.LastSession = &first, &last
	}

	rows, err := db.sql.QueryContext(ctx, `
		SELECT w.id, w.name, COUNT(s.id)
		FROM workouts w
		LEFT JOIN sessions s ON s.workout_id = w.id
		GROUP BY w.id, w.name
		ORDER BY COUNT(s.id) DESC, w.id ASC`)
	if err != nil {
		return nil, fmt.Errorf("sessions by workout: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e WorkoutStatEntry
		if err := rows.Scan(&e.WorkoutID, &e.Name, &e.Sessions); err != nil {
			return nil, fmt.Errorf("scanning workout stat: %w", err)
		}
		stats.SessionsByWorkout = append(stats.SessionsByWorkout, e)
	}
	return stats, rows.Err()
}
