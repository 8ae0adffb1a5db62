package web

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/topi314/church-tools/server/messages"
)

// Photo proxies a person photo, since the backend only serves them with the session token.
func (h *handler) Photo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	photo, err := h.Client(deviceID(r)).OpenPhoto(ctx, r.PathValue("photo"))
	if err != nil {
		writeError(ctx, w, messages.OpLoad, err)
		return
	}
	defer photo.Body.Close()

	header := w.Header()
	if photo.ContentType != "" {
		header.Set("Content-Type", photo.ContentType)
	}
	if photo.ContentLength > 0 {
		header.Set("Content-Length", strconv.FormatInt(photo.ContentLength, 10))
	}

	if _, err = io.Copy(w, photo.Body); err != nil {
		slog.ErrorContext(ctx, "Failed to write photo to response", slog.Any("err", err))
	}
}
