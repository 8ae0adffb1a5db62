package web

import (
	"net/http"

	"github.com/topi314/church-tools/internal/middlewares"
	"github.com/topi314/church-tools/server"
)

type handler struct {
	*server.Server
}

func Routes(srv *server.Server) http.Handler {
	h := &handler{
		Server: srv,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/login", h.Login)
	mux.HandleFunc("POST /api/logout", h.Logout)
	mux.HandleFunc("GET  /api/me", h.Me)

	mux.HandleFunc("GET /api/events", h.Events)
	mux.Handle("GET /api/events/{event_id}/qrcode", middlewares.Cache(http.HandlerFunc(h.EventQRCode)))
	mux.HandleFunc("GET /api/people", h.People)
	mux.Handle("GET /api/photos/{photo...}", middlewares.PrivateCache(http.HandlerFunc(h.Photo)))

	mux.HandleFunc("POST   /api/attendance/{event_id}", h.OpenAttendance)
	mux.HandleFunc("GET    /api/attendance/{event_id}", h.GetAttendance)
	mux.HandleFunc("DELETE /api/attendance/{event_id}", h.CloseAttendance)
	mux.HandleFunc("POST   /api/attendance/{event_id}/toggle/{person_id}", h.ToggleAttendance)
	mux.HandleFunc("POST   /api/attendance/{event_id}/confirm", h.ConfirmAttendance)
	mux.HandleFunc("GET    /api/attendance/{event_id}/flushes", h.AttendanceFlushes)

	mux.HandleFunc("GET  /api/checkin", h.GetCheckin)
	mux.HandleFunc("POST /api/checkin/scan", h.ScanCheckin)
	mux.HandleFunc("POST /api/checkin/confirm", h.ConfirmCheckin)
	mux.HandleFunc("POST /api/checkin/close", h.CloseCheckin)
	mux.HandleFunc("GET  /api/checkins", h.Checkins)

	mux.HandleFunc("GET /api/ministries", h.Ministries)
	mux.HandleFunc("GET /api/ministries/tabs", h.MinistryTabs)
	mux.HandleFunc("GET /api/ministries/{ministry_id}/cells", h.MinistryCells)

	mux.HandleFunc("/", h.NotFound)

	return requestID(device(srv.Cfg.Server.SecureCookies, mux))
}

func (h *handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusNotFound, errorResponse{
		Message: "Página não encontrada.",
	})
}
