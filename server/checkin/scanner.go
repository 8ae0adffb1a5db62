package checkin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/topi314/church-tools/internal/xtime"
	"github.com/topi314/church-tools/server/community"
)

const DefaultAutoCloseDelay = 2 * time.Second

var (
	ErrScanIgnored       = errors.New("scan ignored while another scan is shown")
	ErrInvalidCode       = errors.New("invalid check-in code")
	ErrEventCanceled     = errors.New("event canceled")
	ErrNothingToConfirm  = errors.New("no event to check into")
	ErrConfirmInProgress = errors.New("check-in already in progress")
	ErrClosed            = errors.New("check-in dialog closed")
)

type Config struct {
	AutoCloseDelay xtime.Duration `toml:"auto_close_delay"`
}

func (c Config) String() string {
	return fmt.Sprintf("\n AutoCloseDelay: %s", c.AutoCloseDelay)
}

// Backend is the part of the community API the scanner needs.
type Backend interface {
	GetEvent(ctx context.Context, eventID string) (*community.Event, error)
	GetCheckStatus(ctx context.Context, eventID string) (*community.CheckStatus, error)
	CheckIn(ctx context.Context, eventID string) error
}

type State int

const (
	StateIdle State = iota
	StateScanning
	StateResolved
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateScanning:
		return "scanning"
	case StateResolved:
		return "resolved"
	case StateClosed:
		return "closed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Outcome is the result shown in the dialog of a resolved scan.
type Outcome string

const (
	OutcomeEventFound     Outcome = "event_found"
	OutcomeAlreadyChecked Outcome = "already_checked"
	OutcomeCheckedIn      Outcome = "checked_in"
	OutcomeEventNotFound  Outcome = "event_not_found"
	OutcomeEventCanceled  Outcome = "event_canceled"
	OutcomeInvalidCode    Outcome = "invalid_code"
	OutcomeFailed         Outcome = "failed"
)

func (o Outcome) Message() string {
	switch o {
	case OutcomeEventFound:
		return "Evento encontrado. Confirme seu check-in."
	case OutcomeAlreadyChecked:
		return "Você já fez check-in neste evento."
	case OutcomeCheckedIn:
		return "Check-in realizado com sucesso!"
	case OutcomeEventNotFound:
		return "Evento não encontrado."
	case OutcomeEventCanceled:
		return "Este evento foi cancelado."
	case OutcomeInvalidCode:
		return "QR Code inválido. Verifique o código e tente novamente."
	case OutcomeFailed:
		return "Não foi possível realizar o check-in. Escaneie o código novamente."
	}
	return ""
}

// Session is the content of the check-in dialog.
type Session struct {
	EventID        string  `json:"eventId,omitempty"`
	EventName      string  `json:"eventName,omitempty"`
	AlreadyChecked bool    `json:"alreadyChecked"`
	StatusMessage  string  `json:"statusMessage,omitempty"`
	Outcome        Outcome `json:"outcome"`
}

func newSession(outcome Outcome) *Session {
	return &Session{
		Outcome:       outcome,
		StatusMessage: outcome.Message(),
	}
}

// AfterFunc schedules f after d and returns a function that cancels it.
type AfterFunc func(d time.Duration, f func()) (stop func() bool)

func timeAfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// NewScanner creates the scanner of one device.
func NewScanner(cfg Config, backend Backend) *Scanner {
	return &Scanner{
		cfg:       cfg,
		backend:   backend,
		afterFunc: timeAfterFunc,
	}
}

// Scanner resolves scanned codes into check-in dialogs: Idle -> Scanning -> Resolved -> Closed.
// While a scan is running or its dialog is shown further scans are ignored, so repeated camera
// frames of the same code resolve once.
type Scanner struct {
	cfg       Config
	backend   Backend
	afterFunc AfterFunc

	mu            sync.Mutex
	state         State
	session       *Session
	gen           uint64
	confirming    bool
	cancel        context.CancelFunc
	stopAutoClose func() bool
}

// WithAfterFunc replaces the timer used to auto close the dialog.
func (s *Scanner) WithAfterFunc(afterFunc AfterFunc) *Scanner {
	s.afterFunc = afterFunc
	return s
}

// Current returns the dialog and the state of the scanner. The session is nil unless resolved.
func (s *Scanner) Current() (*Session, State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil, s.state
	}
	session := *s.session
	return &session, s.state
}

// Scan parses raw and resolves the event it points to. The returned session describes the
// dialog to show, also when an error is returned.
func (s *Scanner) Scan(ctx context.Context, raw string) (*Session, error) {
	s.mu.Lock()
	if s.state == StateScanning || s.state == StateResolved {
		s.mu.Unlock()
		return nil, ErrScanIgnored
	}
	s.state = StateScanning
	s.session = nil
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	gen := s.gen
	s.mu.Unlock()
	defer cancel()

	eventID, ok := ParseCode(raw)
	if !ok {
		slog.InfoContext(ctx, "Scanned invalid check-in code", slog.Int("length", len(raw)))
		return s.resolve(gen, newSession(OutcomeInvalidCode), ErrInvalidCode)
	}

	event, alreadyChecked, err := Resolve(ctx, s.backend, eventID)
	if err != nil {
		session := newSession(OutcomeFailed)
		if errors.Is(err, community.ErrNotFound) {
			session = newSession(OutcomeEventNotFound)
		}
		session.EventID = eventID
		return s.resolve(gen, session, err)
	}

	var session *Session
	switch {
	case alreadyChecked:
		session = newSession(OutcomeAlreadyChecked)
	case event.Status == community.EventStatusCanceled:
		session = newSession(OutcomeEventCanceled)
		err = ErrEventCanceled
	default:
		session = newSession(OutcomeEventFound)
	}
	session.EventID = event.ID
	session.EventName = event.Name
	session.AlreadyChecked = alreadyChecked

	return s.resolve(gen, session, err)
}

func (s *Scanner) resolve(gen uint64, session *Session, err error) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return nil, ErrClosed
	}
	s.cancel = nil

	s.state = StateResolved
	s.session = session

	result := *session
	return &result, err
}

// Resolve looks up eventID and whether the current user already checked into it.
func Resolve(ctx context.Context, backend Backend, eventID string) (*community.Event, bool, error) {
	var (
		event  *community.Event
		status *community.CheckStatus
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		if event, err = backend.GetEvent(egCtx, eventID); err != nil {
			return fmt.Errorf("failed to get event: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		var err error
		if status, err = backend.GetCheckStatus(egCtx, eventID); err != nil {
			return fmt.Errorf("failed to get check-in status: %w", err)
		}
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, false, err
	}
	return event, status.AlreadyChecked, nil
}

// Confirm checks into the event of the open dialog. On success the dialog closes by itself
// after the configured delay. A failed check-in is not retried, the code has to be scanned again.
func (s *Scanner) Confirm(ctx context.Context) (*Session, error) {
	s.mu.Lock()
	if s.confirming {
		s.mu.Unlock()
		return nil, ErrConfirmInProgress
	}
	if s.state != StateResolved || s.session == nil || s.session.Outcome != OutcomeEventFound {
		s.mu.Unlock()
		return nil, ErrNothingToConfirm
	}
	s.confirming = true
	eventID := s.session.EventID
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	gen := s.gen
	s.mu.Unlock()
	defer cancel()

	err := s.backend.CheckIn(ctx, eventID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return nil, ErrClosed
	}
	s.confirming = false
	s.cancel = nil

	if err != nil {
		s.session.Outcome = OutcomeFailed
		s.session.StatusMessage = OutcomeFailed.Message()
		result := *s.session
		return &result, fmt.Errorf("failed to check into event %s: %w", eventID, err)
	}

	s.session.AlreadyChecked = true
	s.session.Outcome = OutcomeCheckedIn
	s.session.StatusMessage = OutcomeCheckedIn.Message()

	slog.InfoContext(ctx, "Checked into event", slog.String("event_id", eventID))

	s.stopAutoClose = s.afterFunc(s.cfg.AutoCloseDelay.OrDefault(DefaultAutoCloseDelay), func() {
		s.closeGen(gen)
	})

	result := *s.session
	return &result, nil
}

// Close hides the dialog, cancels a running scan or check-in and accepts new scans again.
func (s *Scanner) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.close()
}

func (s *Scanner) closeGen(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return
	}
	s.close()
}

func (s *Scanner) close() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.stopAutoClose != nil {
		s.stopAutoClose()
		s.stopAutoClose = nil
	}
	s.gen++
	s.confirming = false
	s.session = nil
	s.state = StateClosed
}
