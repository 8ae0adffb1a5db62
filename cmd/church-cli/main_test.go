package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/urfave/cli/v2"
)

const testEventID = "11111111-1111-1111-1111-111111111111"

type fakeAPI struct {
	mu       sync.Mutex
	marked   []string
	toggled  []string
	checkins int
}

func (f *fakeAPI) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"token":"token","user":{"id":"1","name":"Ana"}}`))
	})
	mux.HandleFunc("GET /sca/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"id":"1","name":"Ana","isMaster":false}`))
	})
	mux.HandleFunc("GET /attendance/event/{event_id}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"attendees":[
			{"id":"b","name":"Bruno","type":"member","present":true},
			{"id":"a","name":"Ana","type":"visitor","present":false},
			{"id":"c","name":"Anderson","type":"member","present":false}
		]}`))
	})
	mux.HandleFunc("POST /attendance/mark-multiple", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			PersonIDs []string `json:"person_ids"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		f.marked = append(f.marked, body.PersonIDs...)
		f.mu.Unlock()
	})
	mux.HandleFunc("POST /attendance/toggle", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			PersonID string `json:"person_id"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		f.toggled = append(f.toggled, body.PersonID)
		f.mu.Unlock()
	})
	mux.HandleFunc("GET /community/events/{event_id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("event_id") != testEventID {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"id":"` + testEventID + `","name":"Culto de Domingo","status":"scheduled"}`))
	})
	mux.HandleFunc("GET /community/events/{event_id}/check-status", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"alreadyChecked":false}`))
	})
	mux.HandleFunc("POST /community/events/{event_id}/checkin", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.checkins++
		f.mu.Unlock()
	})
	return mux
}

type testEnv struct {
	api         *fakeAPI
	url         string
	sessionFile string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	api := &fakeAPI{}
	srv := httptest.NewServer(api.handler(t))
	t.Cleanup(srv.Close)

	return &testEnv{
		api:         api,
		url:         srv.URL,
		sessionFile: filepath.Join(t.TempDir(), "session.json"),
	}
}

func (e *testEnv) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	out := new(bytes.Buffer)
	app := newApp()
	app.Writer = out
	app.Reader = strings.NewReader(stdin)
	app.ExitErrHandler = func(*cli.Context, error) {}

	err := app.Run(append([]string{"church-cli", "--api-url", e.url, "--session-file", e.sessionFile}, args...))
	return out.String(), err
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "ana@igreja.org\nsenha\n", "login")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Bem-vindo(a), Ana!") {
		t.Fatalf("unexpected output %q", out)
	}
	if _, err = os.Stat(env.sessionFile); err != nil {
		t.Fatalf("expected a session file: %v", err)
	}

	if _, err = env.run(t, "", "logout"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err = os.Stat(env.sessionFile); !os.IsNotExist(err) {
		t.Fatalf("expected the session file to be removed, got %v", err)
	}
}

func TestAttendance(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.run(t, "", "login", "--email", "ana@igreja.org", "--password", "senha"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("lists the sorted roster", func(t *testing.T) {
		out, err := env.run(t, "", "attendance", "--search", "an", testEventID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := "[ ] Ana (visitor, a)\n[ ] Anderson (member, c)\n"
		if out != want {
			t.Fatalf("got %q, want %q", out, want)
		}
	})

	t.Run("confirms toggles", func(t *testing.T) {
		out, err := env.run(t, "", "attendance", "--toggle", "a", "--toggle", "b", "--toggle", "c", "--confirm", testEventID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "2 marcada(s), 1 desmarcada(s)") {
			t.Fatalf("unexpected output %q", out)
		}

		if strings.Join(env.api.marked, ",") != "a,c" {
			t.Fatalf("marked: got %v, want [a c]", env.api.marked)
		}
		if strings.Join(env.api.toggled, ",") != "b" {
			t.Fatalf("toggled: got %v, want [b]", env.api.toggled)
		}
	})
}

func TestCheckin(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.run(t, "", "login", "--email", "ana@igreja.org", "--password", "senha"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := env.run(t, "", "checkin", "--yes", `{"eventId":"`+testEventID+`"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Culto de Domingo") || !strings.Contains(out, "Check-in realizado com sucesso!") {
		t.Fatalf("unexpected output %q", out)
	}
	if env.api.checkins != 1 {
		t.Fatalf("got %d check-ins, want 1", env.api.checkins)
	}

	t.Run("declined", func(t *testing.T) {
		if _, err = env.run(t, "n\n", "checkin", testEventID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if env.api.checkins != 1 {
			t.Fatalf("got %d check-ins, want 1", env.api.checkins)
		}
	})

	t.Run("invalid code", func(t *testing.T) {
		_, err = env.run(t, "", "checkin", "not-a-code")
		var exitErr cli.ExitCoder
		if !errorsAs(err, &exitErr) || exitErr.ExitCode() != 5 {
			t.Fatalf("got %v, want exit code 5", err)
		}
	})
}

func TestTabs(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "", "tabs", "--master", "celula")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "+ cells\n") || !strings.Contains(out, "- songs\n") {
		t.Fatalf("unexpected output %q", out)
	}

	_, err = env.run(t, "", "tabs", "celula")
	var exitErr cli.ExitCoder
	if !errorsAs(err, &exitErr) || exitErr.ExitCode() != 3 {
		t.Fatalf("without a session: got %v, want exit code 3", err)
	}
}

func TestQR(t *testing.T) {
	env := newTestEnv(t)
	out := filepath.Join(t.TempDir(), "code.png")

	if _, err := env.run(t, "", "qr", "--out", out, "--width", "4", testEventID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("failed to read qr code: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Fatal("expected a PNG file")
	}
}

func errorsAs(err error, target *cli.ExitCoder) bool {
	return errors.As(err, target)
}
