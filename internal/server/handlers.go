package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/meltforce/gymcontrol/internal/models"
	"github.com/meltforce/gymcontrol/internal/storage"
)

func (s *Server) handleListWorkouts(w http.ResponseWriter, r *http.Request) {
	workouts, err := s.db.ListWorkouts(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, workouts)
}

func (s *Server) handleCreateWorkout(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if strings.TrimSpace(body.Name) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": storage.ErrWorkoutNameRequired.Error()})
		return
	}

	id, err := s.db.CreateWorkout(r.Context(), strings.TrimSpace(body.Name))
	if err != nil {
		s.log.Error("workout create failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	workout, err := s.db.GetWorkout(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if workout == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout not found"})
		return
	}

	exercises, err := s.db.ListWorkoutExercises(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"workout":   workout,
		"exercises": exercises,
	})
}

func (s *Server) handleUpdateWorkout(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var patch models.WorkoutPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": storage.ErrWorkoutNameRequired.Error()})
		return
	}

	if err := s.db.UpdateWorkout(r.Context(), id, patch); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.db.DeleteWorkout(r.Context(), id); err != nil {
		s.log.Error("workout cascade failed", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSavePlan serves both POST /workouts/plan (new workout) and
// PUT /workouts/{id}/plan (existing one).
func (s *Server) handleSavePlan(w http.ResponseWriter, r *http.Request) {
	var workoutID *int64
	if idStr := chi.URLParam(r, "id"); idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid workout ID"})
			return
		}
		workoutID = &id
	}

	var body struct {
		Name      string                 `json:"name"`
		Exercises []models.ExerciseDraft `json:"exercises"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	id, err := s.db.SaveWorkoutPlan(r.Context(), workoutID, body.Name, body.Exercises)
	if err != nil {
		if errors.Is(err, storage.ErrValidation) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		s.log.Error("plan save failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"id": id})
}

// handleSaveSession finalizes a session. When update_targets is set, the
// actuals are copied back onto each item's source exercise afterwards; the
// session itself is already durable at that point, so feedback failures are
// logged and do not fail the request.
func (s *Server) handleSaveSession(w http.ResponseWriter, r *http.Request) {
	workoutID, ok := pathID(w, r)
	if !ok {
		return
	}

	var body struct {
		Items         []models.SessionItem `json:"items"`
		UpdateTargets bool                 `json:"update_targets"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	sessionID, err := s.db.SaveSession(r.Context(), workoutID, body.Items)
	if err != nil {
		s.log.Error("session save failed", "workout_id", workoutID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if body.UpdateTargets {
		for _, it := range body.Items {
			if it.ExerciseID == nil {
				continue
			}
			reps, load := it.ActualReps, it.ActualLoad
			patch := models.ExercisePatch{TargetReps: &reps, TargetLoad: &load}
			if err := s.db.UpdateExercise(r.Context(), *it.ExerciseID, patch); err != nil {
				s.log.Warn("target feedback failed", "exercise_id", *it.ExerciseID, "error", err)
			}
		}
	}

	writeJSON(w, http.StatusCreated, map[string]int64{"id": sessionID})
}

// handleListSessions lists all sessions, or only one workout's with the
// optional workout_id query parameter.
func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	var sessions []models.Session
	var err error
	if idStr := r.URL.Query().Get("workout_id"); idStr != "" {
		workoutID, parseErr := strconv.ParseInt(idStr, 10, 64)
		if parseErr != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid workout_id"})
			return
		}
		sessions, err = s.db.ListWorkoutSessions(r.Context(), workoutID)
	} else {
		sessions, err = s.db.ListSessions(r.Context())
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	session, err := s.db.GetSession(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if session == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return
	}

	items, err := s.db.ListSessionExercises(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"session":   session,
		"exercises": items,
	})
}

func (s *Server) handleListWorkoutExercises(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	exercises, err := s.db.ListWorkoutExercises(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, exercises)
}

// pathID parses the {id} URL parameter, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid ID"})
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
