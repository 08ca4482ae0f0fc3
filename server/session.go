package server

import (
	"sync"

	"github.com/spance/adbpanel-go/devicectl/definitions"
)

// Session records which device serial is currently considered connected,
// along with the screen size cached at connect time. One instance is created
// at process start and handed to the server; the mutex covers the
// last-write-wins race between concurrent operators.
type Session struct {
	mu     sync.RWMutex
	serial string
	size   *definitions.ScreenSize
}

func NewSession() *Session {
	return &Session{}
}

// Connect overwrites the session unconditionally with the new serial.
func (s *Session) Connect(serial string, size *definitions.ScreenSize) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.serial = serial
	s.size = size
}

// Clear resets the session to the disconnected state.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.serial = ""
	s.size = nil
}

// Current returns the connected serial, empty when disconnected.
func (s *Session) Current() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.serial
}

// Size returns the screen size cached at connect time, nil when unknown.
func (s *Session) Size() *definitions.ScreenSize {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.size
}

func (s *Session) Connected() bool {
	return s.Current() != ""
}
