package models

import "time"

// Workout is a named template of exercises the user repeats across sessions.
// It is the root record: deleting it cascades to its exercises, sessions,
// and session exercises.
type Workout struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Exercise is one movement within a workout, with the stored target numbers.
type Exercise struct {
	ID         int64   `json:"id"`
	WorkoutID  int64   `json:"workout_id"`
	Name       string  `json:"name"`
	TargetReps int     `json:"target_reps"`
	TargetLoad float64 `json:"target_load"`
	Note       string  `json:"note"`
}

// Session is one completed performance of a workout. Sessions are append-only:
// once saved they are never mutated, only removed by the workout cascade.
type Session struct {
	ID          int64     `json:"id"`
	WorkoutID   int64     `json:"workout_id"`
	PerformedAt time.Time `json:"performed_at"`
}

// SessionExercise is the recorded actual reps/load for one exercise within one
// session, snapshotted at save time. ExerciseID is a soft reference: the
// source exercise may have been renamed or deleted since, so readers must not
// assume it resolves. Name is the snapshot taken when the session was saved.
type SessionExercise struct {
	ID         int64   `json:"id"`
	SessionID  int64   `json:"session_id"`
	ExerciseID *int64  `json:"exercise_id"`
	Name       string  `json:"name"`
	ActualReps int     `json:"actual_reps"`
	ActualLoad float64 `json:"actual_load"`
}

// SessionItem is the input for one performed exercise at session
// finalization time.
type SessionItem struct {
	ExerciseID *int64  `json:"exercise_id"`
	Name       string  `json:"name"`
	ActualReps int     `json:"actual_reps"`
	ActualLoad float64 `json:"actual_load"`
}

// ExerciseDraft is one row of the workout editing form. A nil ID means the
// row is new; a set ID updates the existing exercise and marks it as kept.
type ExerciseDraft struct {
	ID         *int64  `json:"id"`
	Name       string  `json:"name"`
	TargetReps int     `json:"target_reps"`
	TargetLoad float64 `json:"target_load"`
	Note       string  `json:"note"`
}

// WorkoutPatch holds the updatable workout fields. Nil fields are left as-is.
type WorkoutPatch struct {
	Name *string `json:"name"`
}

// ExercisePatch holds the updatable exercise fields. Nil fields are left as-is.
type ExercisePatch struct {
	Name       *string  `json:"name"`
	TargetReps *int     `json:"target_reps"`
	TargetLoad *float64 `json:"target_load"`
	Note       *string  `json:"note"`
}
