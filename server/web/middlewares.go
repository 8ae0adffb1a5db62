package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/topi314/church-tools/internal/xslog"
)

const (
	deviceCookie    = "device"
	requestIDHeader = "X-Request-ID"
)

type deviceKey struct{}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		ctx := xslog.WithAttrs(r.Context(), slog.String("request_id", id))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// device identifies the calling device by a cookie holding a uuid and issues one on first contact.
// The session token of the device is stored server side under that id.
func device(secure bool, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var deviceID string
		if cookie, err := r.Cookie(deviceCookie); err == nil {
			if id, err := uuid.Parse(cookie.Value); err == nil {
				deviceID = id.String()
			}
		}

		if deviceID == "" {
			deviceID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     deviceCookie,
				Value:    deviceID,
				Path:     "/",
				Expires:  time.Now().AddDate(1, 0, 0),
				HttpOnly: true,
				Secure:   secure,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), deviceKey{}, deviceID)
		ctx = xslog.WithAttrs(ctx, slog.String("device_id", deviceID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func deviceID(r *http.Request) string {
	id, _ := r.Context().Value(deviceKey{}).(string)
	return id
}
