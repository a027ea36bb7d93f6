package theme

import (
	"sync"
	"testing"
)

func TestSignalSet(t *testing.T) {
	s := NewSignal(Dark)
	var got []Theme
	s.Subscribe(func(t Theme) { got = append(got, t) })

	if s.Set(Dark) {
		t.Error("Set to the current value reported a change")
	}
	if !s.Set(Light) {
		t.Error("Set(Light) reported no change")
	}
	if s.Get() != Light {
		t.Errorf("Get = %v, want light", s.Get())
	}
	if s.Toggle() != Dark {
		t.Error("Toggle from light did not return dark")
	}

	want := []Theme{Light, Dark}
	if len(got) != len(want) {
		t.Fatalf("notifications = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("notification %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSignalUnsubscribe(t *testing.T) {
	s := NewSignal(Light)
	calls := 0
	unsub := s.Subscribe(func(Theme) { calls++ })
	other := s.Subscribe(func(Theme) {})
	if s.Subscribers() != 2 {
		t.Fatalf("Subscribers = %d, want 2", s.Subscribers())
	}

	unsub()
	unsub()
	s.Toggle()
	if calls != 0 {
		t.Errorf("unsubscribed callback ran %d times", calls)
	}
	if s.Subscribers() != 1 {
		t.Errorf("Subscribers = %d, want 1", s.Subscribers())
	}
	other()
	if s.Subscribers() != 0 {
		t.Errorf("Subscribers = %d, want 0", s.Subscribers())
	}
}

func TestSignalOrder(t *testing.T) {
	s := NewSignal(Dark)
	var order []int
	for i := 0; i < 5; i++ {
		i := i
		s.Subscribe(func(Theme) { order = append(order, i) })
	}
	s.Toggle()
	for i, v := range order {
		if v != i {
			t.Fatalf("notification order = %v", order)
		}
	}
}

func TestSignalReentrant(t *testing.T) {
	s := NewSignal(Dark)
	s.Subscribe(func(Theme) {
		// reading from a callback must not deadlock
		_ = s.Get()
	})
	s.Toggle()
}

func TestSignalConcurrent(t *testing.T) {
	s := NewSignal(Dark)
	var mu sync.Mutex
	seen := 0
	s.Subscribe(func(Theme) {
		mu.Lock()
		seen++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.Toggle()
			}
		}()
	}
	wg.Wait()

	if seen != 800 {
		t.Errorf("notifications = %d, want 800", seen)
	}
	if s.Get() != Dark {
		t.Errorf("after an even number of toggles Get = %v, want dark", s.Get())
	}
}
