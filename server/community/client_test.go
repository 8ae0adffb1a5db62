package community

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/topi314/church-tools/server/auth"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, store auth.Store) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewFactory(Config{BaseURL: srv.URL + "/"}, srv.Client()).Client(store)
}

func TestClientAuthorization(t *testing.T) {
	t.Run("bearer token from store", func(t *testing.T) {
		var got string
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Get("Authorization")
			_, _ = w.Write([]byte(`{"id":"1","name":"Ana","isMaster":true}`))
		}, auth.NewMemoryStore("secret"))

		user, err := client.GetMe(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "Bearer secret" {
			t.Fatalf("authorization header: got %q, want %q", got, "Bearer secret")
		}
		if !user.IsMaster {
			t.Fatal("expected master user")
		}
	})

	t.Run("token is read per request", func(t *testing.T) {
		var got []string
		store := auth.NewMemoryStore("first")
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			got = append(got, r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{}`))
		}, store)

		if _, err := client.GetMe(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_ = store.Set(context.Background(), "second")
		if _, err := client.GetMe(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if want := []string{"Bearer first", "Bearer second"}; !slices.Equal(got, want) {
			t.Fatalf("got %v, want %v", got, want)
		}
	})

	t.Run("no token", func(t *testing.T) {
		called := false
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			called = true
		}, auth.NewMemoryStore(""))

		if _, err := client.GetMe(context.Background()); !errors.Is(err, ErrSessionExpired) {
			t.Fatalf("got %v, want %v", err, ErrSessionExpired)
		}
		if called {
			t.Fatal("expected no request without a token")
		}
	})

	t.Run("401 clears the store", func(t *testing.T) {
		store := auth.NewMemoryStore("expired")
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}, store)

		if _, err := client.ListEvents(context.Background()); !errors.Is(err, ErrSessionExpired) {
			t.Fatalf("got %v, want %v", err, ErrSessionExpired)
		}
		if _, err := store.Get(context.Background()); !errors.Is(err, auth.ErrNoToken) {
			t.Fatalf("expected cleared store, got %v", err)
		}
	})
}

func TestClientRoster(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{name: "attendees object", body: `{"attendees":[{"id":"1","name":"Ana","type":"member","present":true}]}`, want: []string{"1"}},
		{name: "bare array", body: `[{"id":"1","name":"Ana"},{"id":"2","name":"Bruno"}]`, want: []string{"1", "2"}},
		{name: "empty object", body: `{}`, want: []string{}},
		{name: "null", body: `null`, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var path string
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				path = r.URL.Path
				_, _ = w.Write([]byte(tt.body))
			}, auth.NewMemoryStore("token"))

			people, err := client.GetEventAttendance(context.Background(), "event-1")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if path != "/attendance/event/event-1" {
				t.Fatalf("path: got %q", path)
			}

			ids := make([]string, 0, len(people))
			for _, p := range people {
				ids = append(ids, p.ID)
			}
			if !slices.Equal(ids, tt.want) {
				t.Fatalf("got %v, want %v", ids, tt.want)
			}
		})
	}

	t.Run("community path", func(t *testing.T) {
		var path string
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			path = r.URL.Path
			_, _ = w.Write([]byte(`[]`))
		}, auth.NewMemoryStore("token"))

		if _, err := client.GetEventPeople(context.Background(), "event-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if path != "/community/events/event-1/people" {
			t.Fatalf("path: got %q", path)
		}
	})
}

func TestClientMarkAndToggle(t *testing.T) {
	type request struct {
		Path string
		Body map[string]any
	}
	var requests []request

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method: got %s, want POST", r.Method)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		requests = append(requests, request{Path: r.URL.Path, Body: body})
	}, auth.NewMemoryStore("token"))

	if err := client.MarkMultiple(context.Background(), "event-1", []string{"a", "c"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := client.ToggleAttendance(context.Background(), "event-1", "b"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(requests) != 2 {
		t.Fatalf("got %d requests, want 2", len(requests))
	}

	mark := requests[0]
	if mark.Path != "/attendance/mark-multiple" || mark.Body["event_id"] != "event-1" {
		t.Fatalf("unexpected mark request %+v", mark)
	}
	ids, _ := mark.Body["person_ids"].([]any)
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "c" {
		t.Fatalf("person_ids: got %v", mark.Body["person_ids"])
	}

	toggle := requests[1]
	if toggle.Path != "/attendance/toggle" || toggle.Body["event_id"] != "event-1" || toggle.Body["person_id"] != "b" {
		t.Fatalf("unexpected toggle request %+v", toggle)
	}
}

func TestClientEvents(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /community/events/known", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"known","name":"Culto","status":"scheduled","eventDate":"2026-10-18T19:00:00Z"}`))
	})
	mux.HandleFunc("GET /community/events/known/check-status", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"alreadyChecked":true}`))
	})
	mux.HandleFunc("POST /community/events/broken/checkin", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	client := newTestClient(t, mux.ServeHTTP, auth.NewMemoryStore("token"))

	event, err := client.GetEvent(context.Background(), "known")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.Name != "Culto" || event.Status != EventStatusScheduled || event.EventDate.Hour() != 19 {
		t.Fatalf("unexpected event %+v", event)
	}

	status, err := client.GetCheckStatus(context.Background(), "known")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !status.AlreadyChecked {
		t.Fatal("expected already checked")
	}

	if _, err = client.GetEvent(context.Background(), "missing"); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("got %v, want %v", err, ErrEventNotFound)
	}
	if !errors.Is(ErrEventNotFound, ErrNotFound) {
		t.Fatal("ErrEventNotFound must wrap ErrNotFound")
	}

	err = client.CheckIn(context.Background(), "broken")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("got %v, want *StatusError", err)
	}
	if statusErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status code: got %d", statusErr.StatusCode)
	}
}

func TestClientLogin(t *testing.T) {
	t.Run("stores the token", func(t *testing.T) {
		store := auth.NewMemoryStore("")
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "" {
				t.Errorf("login must not send an authorization header")
			}
			var body loginReq
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body.Email != "ana@igreja.org" || body.Password != "senha" {
				t.Errorf("unexpected credentials %+v", body)
			}
			_, _ = w.Write([]byte(`{"token":"fresh","user":{"id":"1","name":"Ana"}}`))
		}, store)

		user, err := client.Login(context.Background(), "ana@igreja.org", "senha")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.Name != "Ana" {
			t.Fatalf("unexpected user %+v", user)
		}
		if token, _ := store.Get(context.Background()); token != "fresh" {
			t.Fatalf("stored token: got %q, want %q", token, "fresh")
		}
	})

	t.Run("invalid credentials", func(t *testing.T) {
		store := auth.NewMemoryStore("")
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}, store)

		if _, err := client.Login(context.Background(), "ana@igreja.org", "errada"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("got %v, want %v", err, ErrInvalidCredentials)
		}
	})

	t.Run("logout", func(t *testing.T) {
		store := auth.NewMemoryStore("token")
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {}, store)

		if err := client.Logout(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := store.Get(context.Background()); !errors.Is(err, auth.ErrNoToken) {
			t.Fatalf("expected cleared store, got %v", err)
		}
	})
}
