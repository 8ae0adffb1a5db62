package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/topi314/church-tools/server/checkin"
	"github.com/topi314/church-tools/server/community"
	"github.com/topi314/church-tools/server/messages"
)

func TestDevice(t *testing.T) {
	var got string
	h := device(false, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = deviceID(r)
	}))

	t.Run("issues a cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/me", nil))

		if _, err := uuid.Parse(got); err != nil {
			t.Fatalf("device id %q is not a uuid", got)
		}

		cookies := rec.Result().Cookies()
		if len(cookies) != 1 || cookies[0].Name != deviceCookie || cookies[0].Value != got {
			t.Fatalf("unexpected cookies %v", cookies)
		}
		if !cookies[0].HttpOnly {
			t.Fatal("expected an http only cookie")
		}
	})

	t.Run("keeps an existing cookie", func(t *testing.T) {
		id := uuid.NewString()
		rq := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		rq.AddCookie(&http.Cookie{Name: deviceCookie, Value: id})

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, rq)

		if got != id {
			t.Fatalf("got %q, want %q", got, id)
		}
		if len(rec.Result().Cookies()) != 0 {
			t.Fatal("expected no new cookie")
		}
	})

	t.Run("replaces an invalid cookie", func(t *testing.T) {
		rq := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		rq.AddCookie(&http.Cookie{Name: deviceCookie, Value: "../../etc"})

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, rq)

		if got == "../../etc" {
			t.Fatal("expected the invalid device id to be replaced")
		}
		if len(rec.Result().Cookies()) != 1 {
			t.Fatal("expected a new cookie")
		}
	})
}

func TestRequestID(t *testing.T) {
	h := requestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if _, err := uuid.Parse(rec.Header().Get(requestIDHeader)); err != nil {
		t.Fatalf("expected a generated request id, got %q", rec.Header().Get(requestIDHeader))
	}

	id := uuid.NewString()
	rq := httptest.NewRequest(http.MethodGet, "/", nil)
	rq.Header.Set(requestIDHeader, id)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, rq)
	if got := rec.Header().Get(requestIDHeader); got != id {
		t.Fatalf("got %q, want %q", got, id)
	}
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "session expired", err: community.ErrSessionExpired, wantStatus: http.StatusUnauthorized},
		{name: "invalid code", err: checkin.ErrInvalidCode, wantStatus: http.StatusUnprocessableEntity},
		{name: "event not found", err: community.ErrEventNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(context.Background(), rec, messages.OpCheckin, tt.err)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status: got %d, want %d", rec.Code, tt.wantStatus)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Fatalf("content type: got %q", ct)
			}

			var body errorResponse
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body.Message != messages.For(messages.OpCheckin, tt.err).Message {
				t.Fatalf("message: got %q", body.Message)
			}
		})
	}
}
