package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/claude/gymtracker/internal/models"
	"github.com/claude/gymtracker/internal/tracker"
	"github.com/go-chi/chi/v5"
)

type addExerciseRequest struct {
	Name        string `json:"name"`
	IsAssisted  bool   `json:"is_assisted"`
	Description string `json:"description"`
}

// logSetRequest takes weight and reps as JSON numbers or numeric strings,
// since the form sends whatever the user typed.
type logSetRequest struct {
	Weight json.Number `json:"weight"`
	Unit   string      `json:"unit"`
	Reps   json.Number `json:"reps"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	exercises, err := s.svc.Exercises(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exercises)
}

func (s *Server) handleAddExercise(w http.ResponseWriter, r *http.Request) {
	var req addExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	result, err := s.svc.AddExercise(r.Context(), req.Name, req.IsAssisted, req.Description)
	if err != nil {
		s.writeError(w, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
		if s.metrics != nil {
			s.metrics.CounterExercisesAdded.Inc()
		}
	}
	writeJSON(w, status, result)
}

func (s *Server) handleGetExercise(w http.ResponseWriter, r *http.Request) {
	id, ok := exerciseID(w, r)
	if !ok {
		return
	}
	ex, err := s.svc.Exercise(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ex)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := exerciseID(w, r)
	if !ok {
		return
	}
	history, err := s.svc.History(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

func (s *Server) handleBestSet(w http.ResponseWriter, r *http.Request) {
	id, ok := exerciseID(w, r)
	if !ok {
		return
	}
	best, err := s.svc.BestSet(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, best)
}

func (s *Server) handleLogSet(w http.ResponseWriter, r *http.Request) {
	id, ok := exerciseID(w, r)
	if !ok {
		return
	}

	var req logSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	in, err := models.ParseSetInput(req.Weight.String(), req.Unit, req.Reps.String())
	if err != nil {
		s.writeError(w, err)
		return
	}

	logged, err := s.svc.LogSet(r.Context(), id, in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if s.metrics != nil {
		s.metrics.CounterSetsLogged.WithLabelValues(string(logged.Set.Unit)).Inc()
		if logged.PersonalRecord {
			s.metrics.CounterPersonalRecords.Inc()
		}
	}
	writeJSON(w, http.StatusCreated, logged)
}

// writeError maps domain errors onto HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrMalformedInput):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, models.ErrUnknownExercise):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "exercise not found"})
	case errors.Is(err, tracker.ErrNoSets):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no sets logged for this exercise"})
	default:
		s.log.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

func exerciseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid exercise ID"})
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
