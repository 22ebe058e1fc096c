package reservation

import (
	"context"
	"sync"
)

// DayLocker is a lock arena keyed by calendar date. Bookings for one date are
// serialized, other dates are not affected. Entries are dropped once nobody
// holds or waits for them.
type DayLocker struct {
	mu    sync.Mutex
	slots map[string]*daySlot
}

type daySlot struct {
	sem  chan struct{}
	refs int
}

func NewDayLocker() *DayLocker {
	return &DayLocker{slots: make(map[string]*daySlot)}
}

// Lock blocks until the date is free or ctx is done. The returned release
// func is safe to call more than once.
func (l *DayLocker) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	s, ok := l.slots[key]
	if !ok {
		s = &daySlot{sem: make(chan struct{}, 1)}
		l.slots[key] = s
	}
	s.refs++
	l.mu.Unlock()

	select {
	case s.sem <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-s.sem
				l.leave(key, s)
			})
		}, nil
	case <-ctx.Done():
		l.leave(key, s)
		return nil, ctx.Err()
	}
}

func (l *DayLocker) leave(key string, s *daySlot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s.refs--
	if s.refs == 0 {
		delete(l.slots, key)
	}
}

// Len returns the number of dates currently held or awaited.
func (l *DayLocker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.slots)
}
