package loop

import "sync"

// FrameID identifies a requested frame callback. Zero is never issued.
type FrameID uint64

// Scheduler queues callbacks for the next display refresh. Hosts call Run
// once per refresh; callbacks requested while Run is executing are deferred
// to the following Run.
type Scheduler struct {
	mu    sync.Mutex
	next  FrameID
	order []FrameID
	live  map[FrameID]func()
}

// NewScheduler creates an empty scheduler
func NewScheduler() *Scheduler {
	return &Scheduler{
		live: make(map[FrameID]func()),
	}
}

// RequestFrame queues cb for the next Run
func (s *Scheduler) RequestFrame(cb func()) FrameID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	id := s.next
	s.live[id] = cb
	s.order = append(s.order, id)
	return id
}

// CancelFrame drops a queued callback. Cancelling an id that already ran or
// was never issued is a no-op.
func (s *Scheduler) CancelFrame(id FrameID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.live, id)
}

// Pending returns the number of callbacks waiting for the next Run
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.live)
}

// Run executes the callbacks queued before the call, in request order, and
// returns how many ran.
func (s *Scheduler) Run() int {
	s.mu.Lock()
	batch := s.order
	s.order = nil
	s.mu.Unlock()

	ran := 0
	for _, id := range batch {
		s.mu.Lock()
		cb, ok := s.live[id]
		delete(s.live, id)
		s.mu.Unlock()

		if !ok {
			continue
		}
		cb()
		ran++
	}
	return ran
}
