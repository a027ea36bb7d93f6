package theme

import "sync"

// Signal is the application-owned theme state. Consumers read it and
// subscribe to changes; only the owner calls Set or Toggle.
type Signal struct {
	mu    sync.Mutex
	value Theme
	subs  map[int]func(Theme)
	next  int
}

// NewSignal creates a signal holding initial
func NewSignal(initial Theme) *Signal {
	return &Signal{
		value: initial,
		subs:  make(map[int]func(Theme)),
	}
}

// Get returns the current theme
func (s *Signal) Get() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set changes the theme and notifies subscribers. Setting the current value
// again is a no-op and returns false.
func (s *Signal) Set(t Theme) bool {
	s.mu.Lock()
	if t == s.value {
		s.mu.Unlock()
		return false
	}
	s.value = t
	subs := s.snapshot()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(t)
	}
	return true
}

// Toggle flips between light and dark and returns the new value
func (s *Signal) Toggle() Theme {
	s.mu.Lock()
	t := s.value.Toggle()
	s.value = t
	subs := s.snapshot()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(t)
	}
	return t
}

// Subscribe registers fn for every future change. Callbacks run on the
// goroutine that changed the value, outside the signal's lock.
func (s *Signal) Subscribe(fn func(Theme)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// Subscribers returns the number of registered subscribers
func (s *Signal) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// snapshot copies the subscribers in registration order; caller holds mu
func (s *Signal) snapshot() []func(Theme) {
	out := make([]func(Theme), 0, len(s.subs))
	for id := 0; id < s.next; id++ {
		if fn, ok := s.subs[id]; ok {
			out = append(out, fn)
		}
	}
	return out
}
