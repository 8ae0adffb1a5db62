package web

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/topi314/church-tools/server/messages"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var rq loginRequest
	if err := decodeJSON(r, &rq); err != nil {
		writeBadRequest(ctx, w, "Requisição inválida.")
		return
	}

	rq.Email = strings.TrimSpace(rq.Email)
	if rq.Email == "" || rq.Password == "" {
		writeBadRequest(ctx, w, "Informe e-mail e senha.")
		return
	}

	user, err := h.Client(deviceID(r)).Login(ctx, rq.Email, rq.Password)
	if err != nil {
		writeError(ctx, w, messages.OpLoad, err)
		return
	}

	slog.InfoContext(ctx, "User logged in", slog.String("user_id", user.ID))
	writeJSON(ctx, w, http.StatusOK, user)
}

func (h *handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := deviceID(r)

	h.Screens.CloseScanner(id)
	if err := h.Client(id).Logout(ctx); err != nil {
		writeError(ctx, w, messages.OpLoad, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := h.Client(deviceID(r)).GetMe(ctx)
	if err != nil {
		writeError(ctx, w, messages.OpLoad, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, user)
}
