package web

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/topi314/church-tools/internal/xquery"
	"github.com/topi314/church-tools/server/attendance"
	"github.com/topi314/church-tools/server/checkin"
	"github.com/topi314/church-tools/server/community"
	"github.com/topi314/church-tools/server/messages"
)

func (h *handler) Events(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	events, err := h.Client(deviceID(r)).ListEvents(ctx)
	if err != nil {
		writeError(ctx, w, messages.OpLoad, err)
		return
	}
	if events == nil {
		events = []community.Event{}
	}

	writeJSON(ctx, w, http.StatusOK, events)
}

func (h *handler) People(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	search := xquery.ParseString(query, "search", "")
	personType := community.PersonType(xquery.ParseString(query, "type", string(attendance.PersonTypeAll)))

	people, err := h.Client(deviceID(r)).ListPeople(ctx)
	if err != nil {
		writeError(ctx, w, messages.OpLoad, err)
		return
	}

	attendance.SortByName(people)
	writeJSON(ctx, w, http.StatusOK, attendance.Filter(people, search, personType))
}

// EventQRCode renders the code members scan to check into an event.
func (h *handler) EventQRCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	eventID := r.PathValue("event_id")

	if _, ok := checkin.ParseCode(eventID); !ok {
		h.NotFound(w, r)
		return
	}

	width := xquery.ParseInt(r.URL.Query(), "width", checkin.DefaultQRCodeWidth, 1, 64)

	buf := new(bytes.Buffer)
	if err := checkin.WriteQRCode(buf, eventID, uint8(width)); err != nil {
		slog.ErrorContext(ctx, "Failed to render check-in qrcode", slog.String("event_id", eventID), slog.Any("err", err))
		writeError(ctx, w, messages.OpLoad, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = buf.WriteTo(w)
}
