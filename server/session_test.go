package server

import (
	"sync"
	"testing"

	"github.com/spance/adbpanel-go/devicectl/definitions"
)

func TestSessionLifecycle(t *testing.T) {
	s := NewSession()
	if s.Connected() {
		t.Fatal("fresh session must be disconnected")
	}

	s.Connect("emulator-5554", &definitions.ScreenSize{Width: 1080, Height: 2340})
	if s.Current() != "emulator-5554" {
		t.Errorf("Current() = %q", s.Current())
	}
	if size := s.Size(); size == nil || size.Width != 1080 {
		t.Errorf("Size() = %+v", s.Size())
	}

	// Reconnect overwrites unconditionally.
	s.Connect("R58M123ABCD", nil)
	if s.Current() != "R58M123ABCD" || s.Size() != nil {
		t.Errorf("overwrite failed: %q %+v", s.Current(), s.Size())
	}

	s.Clear()
	if s.Connected() || s.Size() != nil {
		t.Error("Clear() should reset the session")
	}
}

func TestSessionConcurrentAccess(t *testing.T) {
	s := NewSession()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Connect("emulator-5554", nil)
		}()
		go func() {
			defer wg.Done()
			_ = s.Current()
			_ = s.Size()
		}()
	}
	wg.Wait()

	if s.Current() != "emulator-5554" {
		t.Errorf("Current() = %q", s.Current())
	}
}
