package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/topi314/church-tools/internal/xquery"
	"github.com/topi314/church-tools/server"
	"github.com/topi314/church-tools/server/attendance"
	"github.com/topi314/church-tools/server/community"
	"github.com/topi314/church-tools/server/database"
	"github.com/topi314/church-tools/server/messages"
)

type attendanceResponse struct {
	EventID    string                     `json:"eventId"`
	People     []community.Person         `json:"people"`
	Pending    []attendance.PendingChange `json:"pending"`
	Confirming bool                       `json:"confirming"`
}

func newAttendanceResponse(r *attendance.Reconciler, people []community.Person) attendanceResponse {
	pending := r.Pending()
	if pending == nil {
		pending = []attendance.PendingChange{}
	}
	return attendanceResponse{
		EventID:    r.EventID(),
		People:     people,
		Pending:    pending,
		Confirming: r.Confirming(),
	}
}

// OpenAttendance opens the attendance screen of an event and loads a fresh roster.
func (h *handler) OpenAttendance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := deviceID(r)
	eventID := r.PathValue("event_id")

	reconciler := h.Screens.OpenAttendance(id, eventID, h.Client(id))
	people, err := reconciler.Load(ctx)
	if err != nil {
		writeError(ctx, w, messages.OpLoad, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, newAttendanceResponse(reconciler, people))
}

func (h *handler) attendanceScreen(w http.ResponseWriter, r *http.Request) (*attendance.Reconciler, bool) {
	reconciler, ok := h.Screens.Attendance(deviceID(r), r.PathValue("event_id"))
	if !ok {
		writeJSON(r.Context(), w, http.StatusNotFound, errorResponse{
			Message: "A lista de presença não está aberta.",
		})
		return nil, false
	}
	return reconciler, true
}

func (h *handler) GetAttendance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	reconciler, ok := h.attendanceScreen(w, r)
	if !ok {
		return
	}

	search := xquery.ParseString(query, "search", "")
	personType := community.PersonType(xquery.ParseString(query, "type", string(attendance.PersonTypeAll)))

	writeJSON(ctx, w, http.StatusOK, newAttendanceResponse(reconciler, reconciler.Filter(search, personType)))
}

func (h *handler) ToggleAttendance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	reconciler, ok := h.attendanceScreen(w, r)
	if !ok {
		return
	}

	person, err := reconciler.Toggle(r.PathValue("person_id"))
	if err != nil {
		writeError(ctx, w, messages.OpConfirm, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, map[string]any{
		"person":  person,
		"pending": reconciler.Pending(),
	})
}

func (h *handler) ConfirmAttendance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := deviceID(r)

	reconciler, ok := h.attendanceScreen(w, r)
	if !ok {
		return
	}

	flush, err := reconciler.Confirm(ctx)
	if err != nil {
		writeError(ctx, w, messages.OpConfirm, err)
		return
	}

	if !flush.Empty() {
		if err = h.DB.InsertAttendanceFlush(ctx, database.AttendanceFlush{
			DeviceID: id,
			EventID:  flush.EventID,
			Marked:   flush.Marked,
			Unmarked: flush.Unmarked,
		}); err != nil {
			slog.ErrorContext(ctx, "Failed to record attendance flush", slog.Any("err", err))
		}
		go h.notifyFlush(context.WithoutCancel(ctx), id, flush)
	}

	writeJSON(ctx, w, http.StatusOK, flush)
}

func (h *handler) notifyFlush(ctx context.Context, id string, flush attendance.Flush) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	eventName := flush.EventID
	if event, err := h.Client(id).GetEvent(ctx, flush.EventID); err == nil {
		eventName = event.Name
	}
	h.SendNotification(ctx, server.FlushNotification(eventName, flush, time.Now()))
}

// CloseAttendance closes the screen. In-flight loads and confirms are canceled.
func (h *handler) CloseAttendance(w http.ResponseWriter, r *http.Request) {
	h.Screens.CloseAttendance(deviceID(r), r.PathValue("event_id"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) AttendanceFlushes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit := xquery.ParseInt(r.URL.Query(), "limit", 20, 1, 100)

	flushes, err := h.DB.GetAttendanceFlushes(ctx, r.PathValue("event_id"), limit)
	if err != nil {
		writeError(ctx, w, messages.OpLoad, err)
		return
	}
	if flushes == nil {
		flushes = []database.AttendanceFlush{}
	}

	writeJSON(ctx, w, http.StatusOK, flushes)
}
