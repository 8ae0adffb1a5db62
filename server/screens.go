package server

import (
	"sync"
	"time"

	"github.com/topi314/church-tools/server/attendance"
	"github.com/topi314/church-tools/server/checkin"
)

// NewScreens creates the registry of open attendance screens and check-in dialogs.
// Every device has at most one of each.
func NewScreens(attendanceCfg attendance.Config, checkinCfg checkin.Config, idleTimeout time.Duration) *Screens {
	return &Screens{
		attendanceCfg: attendanceCfg,
		checkinCfg:    checkinCfg,
		idleTimeout:   idleTimeout,
		now:           time.Now,
		attendance:    map[string]*attendanceScreen{},
		scanners:      map[string]*scannerScreen{},
	}
}

type Screens struct {
	attendanceCfg attendance.Config
	checkinCfg    checkin.Config
	idleTimeout   time.Duration
	now           func() time.Time

	mu         sync.Mutex
	attendance map[string]*attendanceScreen
	scanners   map[string]*scannerScreen
}

type attendanceScreen struct {
	reconciler *attendance.Reconciler
	lastUsed   time.Time
}

type scannerScreen struct {
	scanner  *checkin.Scanner
	lastUsed time.Time
}

// OpenAttendance opens a fresh attendance screen for eventID. A screen the device had open
// before is closed, which cancels its in-flight requests.
func (s *Screens) OpenAttendance(deviceID string, eventID string, backend attendance.Backend) *attendance.Reconciler {
	s.mu.Lock()
	defer s.mu.Unlock()

	if screen, ok := s.attendance[deviceID]; ok {
		screen.reconciler.Close()
	}

	r := attendance.New(s.attendanceCfg, backend, eventID)
	s.attendance[deviceID] = &attendanceScreen{
		reconciler: r,
		lastUsed:   s.now(),
	}
	return r
}

// Attendance returns the open attendance screen of deviceID if it shows eventID.
func (s *Screens) Attendance(deviceID string, eventID string) (*attendance.Reconciler, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	screen, ok := s.attendance[deviceID]
	if !ok || screen.reconciler.EventID() != eventID {
		return nil, false
	}
	screen.lastUsed = s.now()
	return screen.reconciler, true
}

func (s *Screens) CloseAttendance(deviceID string, eventID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	screen, ok := s.attendance[deviceID]
	if !ok || screen.reconciler.EventID() != eventID {
		return false
	}
	screen.reconciler.Close()
	delete(s.attendance, deviceID)
	return true
}

// Scanner returns the check-in scanner of deviceID, creating it on first use.
func (s *Screens) Scanner(deviceID string, backend checkin.Backend) *checkin.Scanner {
	s.mu.Lock()
	defer s.mu.Unlock()

	screen, ok := s.scanners[deviceID]
	if !ok {
		screen = &scannerScreen{
			scanner: checkin.NewScanner(s.checkinCfg, backend),
		}
		s.scanners[deviceID] = screen
	}
	screen.lastUsed = s.now()
	return screen.scanner
}

// LookupScanner returns the scanner of deviceID without creating one.
func (s *Screens) LookupScanner(deviceID string) (*checkin.Scanner, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	screen, ok := s.scanners[deviceID]
	if !ok {
		return nil, false
	}
	screen.lastUsed = s.now()
	return screen.scanner, true
}

func (s *Screens) CloseScanner(deviceID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	screen, ok := s.scanners[deviceID]
	if !ok {
		return false
	}
	screen.scanner.Close()
	delete(s.scanners, deviceID)
	return true
}

// CloseIdle closes every screen not used within the idle timeout and returns how many it closed.
func (s *Screens) CloseIdle() int {
	if s.idleTimeout <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	deadline := s.now().Add(-s.idleTimeout)
	var closed int
	for deviceID, screen := range s.attendance {
		if screen.lastUsed.Before(deadline) && !screen.reconciler.Confirming() {
			screen.reconciler.Close()
			delete(s.attendance, deviceID)
			closed++
		}
	}
	for deviceID, screen := range s.scanners {
		if screen.lastUsed.Before(deadline) {
			screen.scanner.Close()
			delete(s.scanners, deviceID)
			closed++
		}
	}
	return closed
}

func (s *Screens) CloseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for deviceID, screen := range s.attendance {
		screen.reconciler.Close()
		delete(s.attendance, deviceID)
	}
	for deviceID, screen := range s.scanners {
		screen.scanner.Close()
		delete(s.scanners, deviceID)
	}
}
