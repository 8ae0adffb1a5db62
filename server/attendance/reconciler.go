package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/topi314/church-tools/internal/tsync"
	"github.com/topi314/church-tools/internal/xerrors"
	"github.com/topi314/church-tools/server/community"
)

var (
	ErrPersonNotFound    = errors.New("person not found")
	ErrConfirmInProgress = errors.New("confirm already in progress")
	ErrClosed            = errors.New("attendance screen closed")
)

// Backend is the part of the community API the reconciler needs.
type Backend interface {
	GetEventAttendance(ctx context.Context, eventID string) ([]community.Person, error)
	GetEventPeople(ctx context.Context, eventID string) ([]community.Person, error)
	MarkMultiple(ctx context.Context, eventID string, personIDs []string) error
	ToggleAttendance(ctx context.Context, eventID string, personID string) error
}

// PendingChange is a presence change not yet sent to the backend.
type PendingChange struct {
	PersonID string `json:"personId"`
	Present  bool   `json:"present"`
}

// Flush is what a confirm sends: one batched mark call and one toggle call per unmarked person.
type Flush struct {
	EventID  string   `json:"eventId"`
	Marked   []string `json:"marked"`
	Unmarked []string `json:"unmarked"`
}

func (f Flush) Empty() bool {
	return len(f.Marked) == 0 && len(f.Unmarked) == 0
}

// Partition splits pending changes into people to mark present and people to unmark.
// Order of pending is kept in both lists.
func Partition(eventID string, pending []PendingChange) Flush {
	flush := Flush{
		EventID:  eventID,
		Marked:   []string{},
		Unmarked: []string{},
	}
	for _, change := range pending {
		if change.Present {
			flush.Marked = append(flush.Marked, change.PersonID)
		} else {
			flush.Unmarked = append(flush.Unmarked, change.PersonID)
		}
	}
	return flush
}

// New creates the reconciler of one attendance screen for eventID.
func New(cfg Config, backend Backend, eventID string) *Reconciler {
	closed, closeFn := context.WithCancel(context.Background())
	return &Reconciler{
		cfg:     cfg,
		backend: backend,
		eventID: eventID,
		closed:  closed,
		close:   closeFn,
	}
}

// Reconciler holds the roster of an event and the pending presence changes against the
// last loaded server state.
//
// The roster's Present flag and the pending list are updated together in Toggle, so they
// never disagree. A person has at most one pending entry.
type Reconciler struct {
	cfg     Config
	backend Backend
	eventID string

	closed context.Context
	close  context.CancelFunc

	mu         sync.Mutex
	roster     []community.Person
	pending    []PendingChange
	confirming bool
}

func (r *Reconciler) EventID() string {
	return r.eventID
}

// Load fetches the roster, sorts it by name and drops all pending changes.
// On error the roster is left empty.
func (r *Reconciler) Load(ctx context.Context) ([]community.Person, error) {
	r.mu.Lock()
	if r.confirming {
		r.mu.Unlock()
		return nil, ErrConfirmInProgress
	}
	r.mu.Unlock()

	if r.closed.Err() != nil {
		return nil, ErrClosed
	}

	ctx, cancel := r.operationContext(ctx)
	defer cancel()

	people, err := r.loadRoster(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.pending = nil
	if r.closed.Err() != nil {
		r.roster = nil
		return nil, ErrClosed
	}
	if err != nil {
		r.roster = nil
		return nil, fmt.Errorf("failed to load roster of event %s: %w", r.eventID, err)
	}

	SortByName(people)
	r.roster = people

	slog.DebugContext(ctx, "Loaded attendance roster", slog.String("event_id", r.eventID), slog.Int("people", len(people)))
	return slices.Clone(r.roster), nil
}

func (r *Reconciler) loadRoster(ctx context.Context) ([]community.Person, error) {
	if r.cfg.RosterSource == RosterSourceCommunity {
		return r.backend.GetEventPeople(ctx, r.eventID)
	}
	return r.backend.GetEventAttendance(ctx, r.eventID)
}

// Toggle flips the presence of personID. A second toggle of the same person removes its
// pending change again, since the person is back at the loaded state.
func (r *Reconciler) Toggle(personID string) (community.Person, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.confirming {
		return community.Person{}, ErrConfirmInProgress
	}

	i := slices.IndexFunc(r.roster, func(p community.Person) bool {
		return p.ID == personID
	})
	if i == -1 {
		return community.Person{}, ErrPersonNotFound
	}

	r.roster[i].Present = !r.roster[i].Present

	if j := slices.IndexFunc(r.pending, func(c PendingChange) bool {
		return c.PersonID == personID
	}); j != -1 {
		r.pending = slices.Delete(r.pending, j, j+1)
	} else {
		r.pending = append(r.pending, PendingChange{
			PersonID: personID,
			Present:  r.roster[i].Present,
		})
	}

	return r.roster[i], nil
}

// Confirm sends the pending changes. People marked present go out in one
// mark-multiple call, unmarked people go out as one toggle call each.
// Nothing is sent when there are no pending changes.
//
// Any failed call fails the whole confirm and keeps all pending changes.
func (r *Reconciler) Confirm(ctx context.Context) (Flush, error) {
	if r.closed.Err() != nil {
		return Flush{}, ErrClosed
	}

	r.mu.Lock()
	if r.confirming {
		r.mu.Unlock()
		return Flush{}, ErrConfirmInProgress
	}
	if len(r.pending) == 0 {
		r.mu.Unlock()
		return Flush{EventID: r.eventID}, nil
	}
	flush := Partition(r.eventID, r.pending)
	r.confirming = true
	r.mu.Unlock()

	ctx, cancel := r.operationContext(ctx)
	defer cancel()

	err := r.flush(ctx, flush)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.confirming = false

	if err != nil {
		if r.closed.Err() != nil {
			return flush, ErrClosed
		}
		for _, callErr := range xerrors.Unwrap(err) {
			slog.WarnContext(ctx, "Attendance call failed", slog.String("event_id", r.eventID), slog.Any("err", callErr))
		}
		return flush, err
	}

	r.pending = nil
	slog.InfoContext(ctx, "Confirmed attendance",
		slog.String("event_id", r.eventID),
		slog.Int("marked", len(flush.Marked)),
		slog.Int("unmarked", len(flush.Unmarked)),
	)
	return flush, nil
}

func (r *Reconciler) flush(ctx context.Context, flush Flush) error {
	if len(flush.Marked) > 0 {
		if err := r.backend.MarkMultiple(ctx, r.eventID, flush.Marked); err != nil {
			return fmt.Errorf("failed to mark %d people present: %w", len(flush.Marked), err)
		}
	}

	if len(flush.Unmarked) == 0 {
		return nil
	}

	eg, egCtx := tsync.ErrorGroupWithContext(ctx)
	eg.SetLimit(max(r.cfg.UnmarkConcurrency, 1))
	eg.FailFast()
	for _, personID := range flush.Unmarked {
		eg.Go(func() error {
			if err := r.backend.ToggleAttendance(egCtx, r.eventID, personID); err != nil {
				return fmt.Errorf("failed to unmark person %s: %w", personID, err)
			}
			return nil
		})
	}

	return eg.Wait()
}

// Roster returns a copy of the full roster.
func (r *Reconciler) Roster() []community.Person {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Clone(r.roster)
}

// Pending returns a copy of the pending changes in toggle order.
func (r *Reconciler) Pending() []PendingChange {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Clone(r.pending)
}

// Filter is a view over the roster. It never changes the roster or the pending changes.
func (r *Reconciler) Filter(search string, personType community.PersonType) []community.Person {
	return Filter(r.Roster(), search, personType)
}

// Confirming reports whether a confirm is in flight.
func (r *Reconciler) Confirming() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.confirming
}

// Close cancels in-flight loads and confirms. Their results are dropped.
func (r *Reconciler) Close() {
	r.close()
}

func (r *Reconciler) operationContext(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(r.closed, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}
