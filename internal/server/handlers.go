package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/julianstephens/weekendly/internal/constants"
	"github.com/julianstephens/weekendly/internal/holidays"
	"github.com/julianstephens/weekendly/internal/models"
	"github.com/julianstephens/weekendly/internal/scheduler"
)

type scheduleRequest struct {
	ActivityID string           `json:"activityId,omitempty"`
	Activity   *models.Activity `json:"activity,omitempty"`
	TimeSlot   string           `json:"timeSlot"`
	Day        string           `json:"day"`
}

type moveRequest struct {
	TimeSlot string `json:"timeSlot"`
	Day      string `json:"day"`
}

type completeRequest struct {
	Completed *bool `json:"completed,omitempty"`
}

type reorderRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type scheduleResponse struct {
	Activities []models.ScheduledActivity `json:"activities"`
	Summary    scheduler.Summary          `json:"summary"`
}

// health GET /health
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": constants.Version})
}

// listActivities GET /api/activities[?source=<adapter>]
func (s *Server) listActivities(w http.ResponseWriter, r *http.Request) {
	filters, err := parseFilters(r.URL.Query())
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	if name := r.URL.Query().Get("source"); name != "" {
		resp, ok := s.deps.Manager.GetActivities(r.Context(), name, filters)
		if !ok {
			writeNotFound(w, fmt.Sprintf("unknown source %q", name))
			return
		}
		writeJSON(w, http.StatusOK, resp)
		return
	}

	writeJSON(w, http.StatusOK, s.deps.Manager.GetMixedActivities(r.Context(), filters))
}

// recommendations GET /api/recommendations
func (s *Server) recommendations(w http.ResponseWriter, r *http.Request) {
	filters, err := parseFilters(r.URL.Query())
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.deps.Manager.GetSmartRecommendations(r.Context(), filters))
}

// weekend GET /api/weekend[?date=YYYY-MM-DD]
func (s *Server) weekend(w http.ResponseWriter, r *http.Request) {
	from := s.deps.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		t, err := time.ParseInLocation(constants.DateFormat, raw, time.Local)
		if err != nil {
			writeBadRequest(w, fmt.Sprintf("invalid date %q, expected %s", raw, constants.DateFormat))
			return
		}
		from = t
	}

	if s.deps.Holidays == nil {
		sat := holidays.NextSaturday(from)
		writeJSON(w, http.StatusOK, models.OK(holidays.Weekend{Saturday: sat, Days: models.PrimaryDays}, constants.SourceFallback))
		return
	}
	writeJSON(w, http.StatusOK, s.deps.Holidays.WeekendDays(r.Context(), from))
}

// listSchedule GET /api/schedule[?day=]
func (s *Server) listSchedule(w http.ResponseWriter, r *http.Request) {
	resp := scheduleResponse{Summary: s.deps.Engine.Summary()}

	if raw := r.URL.Query().Get("day"); raw != "" {
		day, ok := models.ParseDay(raw)
		if !ok {
			writeBadRequest(w, fmt.Sprintf("unknown day %q", raw))
			return
		}
		resp.Activities = s.deps.Engine.Agenda(day)
	} else {
		resp.Activities = s.deps.Engine.All()
	}

	writeJSON(w, http.StatusOK, resp)
}

// addActivity POST /api/schedule
func (s *Server) addActivity(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON")
		return
	}

	var activity models.Activity
	switch {
	case req.Activity != nil:
		if err := req.Activity.Validate(); err != nil {
			writeBadRequest(w, err.Error())
			return
		}
		activity = *req.Activity
	case req.ActivityID != "":
		a, ok := s.deps.Catalog.Get(req.ActivityID)
		if !ok {
			writeNotFound(w, fmt.Sprintf("activity %q not found", req.ActivityID))
			return
		}
		activity = a
	default:
		writeBadRequest(w, "activityId or activity is required")
		return
	}

	slot, day, ok := parsePlacement(w, req.TimeSlot, req.Day)
	if !ok {
		return
	}

	rec, err := s.deps.Engine.Schedule(activity, slot, day)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// moveActivity PATCH /api/schedule/{id}
func (s *Server) moveActivity(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON")
		return
	}
	slot, day, ok := parsePlacement(w, req.TimeSlot, req.Day)
	if !ok {
		return
	}

	if err := s.deps.Engine.Move(id, slot, day); err != nil {
		writeEngineError(w, err)
		return
	}
	rec, _ := s.deps.Engine.Get(id)
	writeJSON(w, http.StatusOK, rec)
}

// completeActivity POST /api/schedule/{id}/complete
// An empty body toggles; {"completed": bool} sets the flag.
func (s *Server) completeActivity(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req completeRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeBadRequest(w, "Invalid JSON")
			return
		}
	}

	rec, err := s.deps.Engine.SetCompleted(id, req.Completed)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// removeActivity DELETE /api/schedule/{id}
// Removing an unknown id succeeds.
func (s *Server) removeActivity(w http.ResponseWriter, r *http.Request) {
	if _, err := s.deps.Engine.Remove(mux.Vars(r)["id"]); err != nil {
		writeInternalError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// clearSchedule DELETE /api/schedule
func (s *Server) clearSchedule(w http.ResponseWriter, r *http.Request) {
	s.deps.Engine.ClearAllActivities()
	w.WriteHeader(http.StatusNoContent)
}

// reorder POST /api/schedule/{day}/reorder
func (s *Server) reorder(w http.ResponseWriter, r *http.Request) {
	day, ok := models.ParseDay(mux.Vars(r)["day"])
	if !ok {
		writeBadRequest(w, fmt.Sprintf("unknown day %q", mux.Vars(r)["day"]))
		return
	}

	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON")
		return
	}

	if !s.deps.Engine.ReorderActivities(day, req.From, req.To) {
		writeBadRequest(w, fmt.Sprintf("cannot move position %d to %d on %s", req.From, req.To, day))
		return
	}
	writeJSON(w, http.StatusOK, scheduleResponse{
		Activities: s.deps.Engine.Agenda(day),
		Summary:    s.deps.Engine.Summary(),
	})
}

func parsePlacement(w http.ResponseWriter, rawSlot, rawDay string) (models.TimeSlot, models.Day, bool) {
	slot, ok := models.ParseTimeSlot(rawSlot)
	if !ok {
		writeBadRequest(w, fmt.Sprintf("unknown time slot %q", rawSlot))
		return "", "", false
	}
	day, ok := models.ParseDay(rawDay)
	if !ok {
		writeBadRequest(w, fmt.Sprintf("unknown day %q", rawDay))
		return "", "", false
	}
	return slot, day, true
}

func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, scheduler.ErrSlotOccupied):
		writeError(w, http.StatusConflict, constants.SlotConflictMessage)
	case errors.Is(err, scheduler.ErrNotFound):
		writeNotFound(w, err.Error())
	case errors.Is(err, scheduler.ErrInvalidPlacement):
		writeBadRequest(w, err.Error())
	default:
		writeInternalError(w, err)
	}
}
