package loop

import "sync"

// Listeners is a resize listener registry for Host implementations
type Listeners struct {
	mu   sync.Mutex
	next int
	fns  map[int]func(width, height int)
}

// Add registers fn and returns its remover. Removing twice is harmless.
func (l *Listeners) Add(fn func(width, height int)) (remove func()) {
	l.mu.Lock()
	if l.fns == nil {
		l.fns = make(map[int]func(width, height int))
	}
	id := l.next
	l.next++
	l.fns[id] = fn
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		delete(l.fns, id)
		l.mu.Unlock()
	}
}

// Notify calls every listener with the new size
func (l *Listeners) Notify(width, height int) {
	l.mu.Lock()
	fns := make([]func(int, int), 0, len(l.fns))
	for id := 0; id < l.next; id++ {
		if fn, ok := l.fns[id]; ok {
			fns = append(fns, fn)
		}
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn(width, height)
	}
}

// Len returns the number of registered listeners
func (l *Listeners) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.fns)
}
