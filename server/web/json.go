package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/topi314/church-tools/server/messages"
)

const maxBodySize = 1 << 20

type errorResponse struct {
	Message string `json:"message"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(ctx, "Failed to encode response", slog.Any("err", err))
	}
}

// writeError logs err and answers with the message the user should see for it.
func writeError(ctx context.Context, w http.ResponseWriter, op messages.Op, err error) {
	msg := messages.For(op, err)
	if msg.Status >= http.StatusInternalServerError {
		slog.ErrorContext(ctx, "Request failed", slog.Any("err", err))
	} else {
		slog.InfoContext(ctx, "Request rejected", slog.Int("status", msg.Status), slog.Any("err", err))
	}

	writeJSON(ctx, w, msg.Status, errorResponse{
		Message: msg.Message,
	})
}

func writeBadRequest(ctx context.Context, w http.ResponseWriter, message string) {
	writeJSON(ctx, w, http.StatusBadRequest, errorResponse{
		Message: message,
	})
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty request body")
		}
		return fmt.Errorf("failed to decode request body: %w", err)
	}
	return nil
}
