package server

import (
	"context"
	"testing"
	"time"

	"github.com/topi314/church-tools/server/attendance"
	"github.com/topi314/church-tools/server/checkin"
	"github.com/topi314/church-tools/server/community"
)

type nopBackend struct{}

func (nopBackend) GetEventAttendance(context.Context, string) ([]community.Person, error) {
	return []community.Person{{ID: "1", Name: "Ana"}}, nil
}

func (nopBackend) GetEventPeople(context.Context, string) ([]community.Person, error) {
	return nil, nil
}

func (nopBackend) MarkMultiple(context.Context, string, []string) error {
	return nil
}

func (nopBackend) ToggleAttendance(context.Context, string, string) error {
	return nil
}

func (nopBackend) GetEvent(_ context.Context, eventID string) (*community.Event, error) {
	return &community.Event{ID: eventID, Name: "Culto"}, nil
}

func (nopBackend) GetCheckStatus(context.Context, string) (*community.CheckStatus, error) {
	return &community.CheckStatus{}, nil
}

func (nopBackend) CheckIn(context.Context, string) error {
	return nil
}

func TestScreensAttendance(t *testing.T) {
	screens := NewScreens(attendance.Config{}, checkin.Config{}, time.Minute)

	first := screens.OpenAttendance("device", "event-1", nopBackend{})
	if _, err := first.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r, ok := screens.Attendance("device", "event-1"); !ok || r != first {
		t.Fatal("expected the open screen")
	}
	if _, ok := screens.Attendance("device", "event-2"); ok {
		t.Fatal("expected no screen for another event")
	}
	if _, ok := screens.Attendance("other", "event-1"); ok {
		t.Fatal("expected no screen for another device")
	}

	second := screens.OpenAttendance("device", "event-2", nopBackend{})
	if _, err := first.Load(context.Background()); err != attendance.ErrClosed {
		t.Fatalf("previous screen: got %v, want %v", err, attendance.ErrClosed)
	}
	if r, ok := screens.Attendance("device", "event-2"); !ok || r != second {
		t.Fatal("expected the new screen")
	}

	if screens.CloseAttendance("device", "event-1") {
		t.Fatal("closed a screen of another event")
	}
	if !screens.CloseAttendance("device", "event-2") {
		t.Fatal("expected the screen to be closed")
	}
	if _, ok := screens.Attendance("device", "event-2"); ok {
		t.Fatal("expected no screen after close")
	}
}

func TestScreensScanner(t *testing.T) {
	screens := NewScreens(attendance.Config{}, checkin.Config{}, time.Minute)

	if _, ok := screens.LookupScanner("device"); ok {
		t.Fatal("expected no scanner before first use")
	}

	scanner := screens.Scanner("device", nopBackend{})
	if screens.Scanner("device", nopBackend{}) != scanner {
		t.Fatal("expected the same scanner for the same device")
	}
	if screens.Scanner("other", nopBackend{}) == scanner {
		t.Fatal("expected a scanner per device")
	}

	if !screens.CloseScanner("device") {
		t.Fatal("expected the scanner to be closed")
	}
	if _, state := scanner.Current(); state != checkin.StateClosed {
		t.Fatalf("got state %s, want %s", state, checkin.StateClosed)
	}
}

func TestScreensCloseIdle(t *testing.T) {
	now := time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)
	screens := NewScreens(attendance.Config{}, checkin.Config{}, 30*time.Minute)
	screens.now = func() time.Time {
		return now
	}

	screens.OpenAttendance("idle", "event-1", nopBackend{})
	screens.Scanner("idle", nopBackend{})

	now = now.Add(20 * time.Minute)
	screens.OpenAttendance("active", "event-1", nopBackend{})

	now = now.Add(20 * time.Minute)
	if closed := screens.CloseIdle(); closed != 2 {
		t.Fatalf("got %d closed screens, want 2", closed)
	}

	if _, ok := screens.Attendance("idle", "event-1"); ok {
		t.Fatal("expected the idle screen to be closed")
	}
	if _, ok := screens.LookupScanner("idle"); ok {
		t.Fatal("expected the idle scanner to be closed")
	}
	if _, ok := screens.Attendance("active", "event-1"); !ok {
		t.Fatal("expected the active screen to stay open")
	}
}
