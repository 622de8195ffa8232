package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/claude/liftlog/internal/export"
	"github.com/claude/liftlog/internal/mcp"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/stats"
	"github.com/claude/liftlog/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const maxBodyBytes = 1 << 20

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userInfoFromContext(r))
}

func (s *Server) handleListWorkouts(w http.ResponseWriter, r *http.Request) {
	workouts, err := s.store.ListWorkouts(r.Context(), userIDFromContext(r))
	if err != nil {
		s.internalError(w, "listing workouts", err)
		return
	}
	writeJSON(w, http.StatusOK, workouts)
}

func (s *Server) handleCreateWorkout(w http.ResponseWriter, r *http.Request) {
	p, ok := decodePayload(w, r)
	if !ok {
		return
	}
	created, err := s.store.CreateWorkout(r.Context(), userIDFromContext(r), p)
	if err != nil {
		s.storeError(w, "creating workout", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	id, ok := workoutID(w, r)
	if !ok {
		return
	}
	workout, err := s.store.GetWorkout(r.Context(), userIDFromContext(r), id)
	if err != nil {
		s.storeError(w, "getting workout", err)
		return
	}
	writeJSON(w, http.StatusOK, workout)
}

func (s *Server) handleUpdateWorkout(w http.ResponseWriter, r *http.Request) {
	id, ok := workoutID(w, r)
	if !ok {
		return
	}
	p, ok := decodePayload(w, r)
	if !ok {
		return
	}
	updated, err := s.store.UpdateWorkout(r.Context(), userIDFromContext(r), id, p)
	if err != nil {
		s.storeError(w, "updating workout", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	id, ok := workoutID(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteWorkout(r.Context(), userIDFromContext(r), id); err != nil {
		s.storeError(w, "deleting workout", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Workout deleted successfully"})
}

func (s *Server) handleWorkoutSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := workoutID(w, r)
	if !ok {
		return
	}
	workout, err := s.store.GetWorkout(r.Context(), userIDFromContext(r), id)
	if err != nil {
		s.storeError(w, "getting workout", err)
		return
	}
	writeJSON(w, http.StatusOK, stats.Summarize(*workout, s.policy))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	workouts, err := s.store.ListWorkouts(r.Context(), userIDFromContext(r))
	if err != nil {
		s.internalError(w, "listing workouts", err)
		return
	}
	f, err := export.Workbook(workouts, s.policy)
	if err != nil {
		s.internalError(w, "building workbook", err)
		return
	}
	defer f.Close()

	filename := "liftlog-" + time.Now().Format("2006-01-02") + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := f.Write(w); err != nil {
		s.log.Error("writing workbook", "error", err)
	}
}

func (s *Server) handleExerciseNames(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.ExerciseNames(r.Context(), userIDFromContext(r))
	if err != nil {
		s.internalError(w, "listing exercise names", err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, names)
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.ExerciseNames(r.Context(), userIDFromContext(r))
	if err != nil {
		s.internalError(w, "listing exercise names", err)
		return
	}
	suggestions := slices.Collect(s.catalog.With(names...).Suggestions(r.URL.Query().Get("q")))
	if suggestions == nil {
		suggestions = []string{}
	}
	writeJSON(w, http.StatusOK, suggestions)
}

// handleProgress returns training volume per week or month.
func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseTimeRange(r, 90)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid time range: "+err.Error())
		return
	}
	bucket := r.URL.Query().Get("bucket")
	switch bucket {
	case "week", "month":
	case "":
		bucket = "week"
	default:
		writeError(w, http.StatusBadRequest, "bucket must be week or month")
		return
	}

	periods, err := s.store.VolumeByPeriod(r.Context(), userIDFromContext(r), start, end, bucket)
	if err != nil {
		s.internalError(w, "querying progress", err)
		return
	}
	writeJSON(w, http.StatusOK, periods)
}

func (s *Server) handleMCP(w http.ResponseWriter, r *http.Request) {
	if s.mcp == nil {
		writeError(w, http.StatusNotFound, "MCP endpoint not enabled")
		return
	}
	ctx := mcp.WithUserID(r.Context(), userIDFromContext(r))
	s.mcp.ServeHTTP(w, r.WithContext(ctx))
}

func decodePayload(w http.ResponseWriter, r *http.Request) (models.WorkoutPayload, bool) {
	var p models.WorkoutPayload
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return p, false
	}
	p = trimPayload(p)
	if err := validatePayload(p); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return p, false
	}
	return p, true
}

func workoutID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid workout ID")
		return uuid.Nil, false
	}
	return id, true
}

func (s *Server) storeError(w http.ResponseWriter, action string, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Workout not found")
		return
	}
	if errors.Is(err, storage.ErrDuplicateExercise) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	s.internalError(w, action, err)
}

func (s *Server) internalError(w http.ResponseWriter, action string, err error) {
	s.log.Error(action, "error", err)
	writeError(w, http.StatusInternalServerError, action+" failed")
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// parseTimeRange reads start and end as RFC 3339 or YYYY-MM-DD. Without a
// start the range covers the last defaultDays days; a date-only end includes
// that whole day.
func parseTimeRange(r *http.Request, defaultDays int) (start, end time.Time, err error) {
	end = time.Now()
	if v := r.URL.Query().Get("end"); v != "" {
		if end, err = time.Parse(time.RFC3339, v); err != nil {
			if end, err = time.Parse(time.DateOnly, v); err != nil {
				return time.Time{}, time.Time{}, err
			}
			end = end.AddDate(0, 0, 1)
		}
	}

	v := r.URL.Query().Get("start")
	if v == "" {
		return end.AddDate(0, 0, -defaultDays), end, nil
	}
	if start, err = time.Parse(time.RFC3339, v); err != nil {
		if start, err = time.Parse(time.DateOnly, v); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("start must be before end")
	}
	return start, end, nil
}
