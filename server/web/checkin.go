package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/topi314/church-tools/internal/xquery"
	"github.com/topi314/church-tools/server"
	"github.com/topi314/church-tools/server/checkin"
	"github.com/topi314/church-tools/server/database"
	"github.com/topi314/church-tools/server/messages"
)

type scanRequest struct {
	Code string `json:"code"`
}

type checkinResponse struct {
	State   checkin.State    `json:"state"`
	Session *checkin.Session `json:"session"`
}

func (h *handler) GetCheckin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	scanner, ok := h.Screens.LookupScanner(deviceID(r))
	if !ok {
		writeJSON(ctx, w, http.StatusOK, checkinResponse{State: checkin.StateIdle})
		return
	}

	session, state := scanner.Current()
	writeJSON(ctx, w, http.StatusOK, checkinResponse{
		State:   state,
		Session: session,
	})
}

// ScanCheckin resolves a scanned code. Failed lookups still answer with the dialog to show,
// under the status of the failure. An expired session closes the dialog.
func (h *handler) ScanCheckin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := deviceID(r)

	var rq scanRequest
	if err := decodeJSON(r, &rq); err != nil {
		writeBadRequest(ctx, w, "Requisição inválida.")
		return
	}

	scanner := h.Screens.Scanner(id, h.Client(id))
	session, err := scanner.Scan(ctx, rq.Code)
	if errors.Is(err, checkin.ErrScanIgnored) {
		current, state := scanner.Current()
		writeJSON(ctx, w, http.StatusConflict, checkinResponse{
			State:   state,
			Session: current,
		})
		return
	}
	if err != nil && session == nil {
		writeError(ctx, w, messages.OpCheckin, err)
		return
	}

	status := http.StatusOK
	if err != nil {
		msg := messages.For(messages.OpCheckin, err)
		if msg.Status == http.StatusUnauthorized {
			scanner.Close()
			writeError(ctx, w, messages.OpCheckin, err)
			return
		}
		slog.InfoContext(ctx, "Check-in scan did not resolve to an event", slog.String("outcome", string(session.Outcome)), slog.Any("err", err))
		status = msg.Status
		if status == http.StatusInternalServerError {
			status = http.StatusBadGateway
		}
	}

	writeJSON(ctx, w, status, checkinResponse{
		State:   checkin.StateResolved,
		Session: session,
	})
}

func (h *handler) ConfirmCheckin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := deviceID(r)

	scanner, ok := h.Screens.LookupScanner(id)
	if !ok {
		writeError(ctx, w, messages.OpCheckin, checkin.ErrNothingToConfirm)
		return
	}

	session, err := scanner.Confirm(ctx)
	if err != nil {
		if session != nil {
			slog.ErrorContext(ctx, "Check-in failed", slog.String("event_id", session.EventID), slog.Any("err", err))
			status := messages.For(messages.OpCheckin, err).Status
			if status == http.StatusInternalServerError {
				status = http.StatusBadGateway
			}
			writeJSON(ctx, w, status, checkinResponse{
				State:   checkin.StateResolved,
				Session: session,
			})
			return
		}
		writeError(ctx, w, messages.OpCheckin, err)
		return
	}

	if err = h.DB.InsertCheckin(ctx, database.Checkin{
		DeviceID:  id,
		EventID:   session.EventID,
		EventName: session.EventName,
	}); err != nil {
		slog.ErrorContext(ctx, "Failed to record check-in", slog.Any("err", err))
	}
	go h.SendNotification(context.WithoutCancel(ctx), server.CheckinNotification(session.EventName, time.Now()))

	writeJSON(ctx, w, http.StatusOK, checkinResponse{
		State:   checkin.StateResolved,
		Session: session,
	})
}

// CloseCheckin hides the dialog. A running scan or check-in is canceled.
func (h *handler) CloseCheckin(w http.ResponseWriter, r *http.Request) {
	if scanner, ok := h.Screens.LookupScanner(deviceID(r)); ok {
		scanner.Close()
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) Checkins(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit := xquery.ParseInt(r.URL.Query(), "limit", 20, 1, 100)

	checkins, err := h.DB.GetCheckins(ctx, deviceID(r), limit)
	if err != nil {
		writeError(ctx, w, messages.OpLoad, err)
		return
	}
	if checkins == nil {
		checkins = []database.Checkin{}
	}

	writeJSON(ctx, w, http.StatusOK, checkins)
}
