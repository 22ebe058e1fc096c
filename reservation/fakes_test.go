package reservation

import (
	"context"
	"sync"
	"time"

	"github.com/yeremiapane/resto-backoffice/models"
)

type fakeHours map[time.Weekday]Hours

func (f fakeHours) Get(_ context.Context, wd time.Weekday) (Hours, bool, error) {
	h, ok := f[wd]
	return h, ok, nil
}

// fakeTables maps a party size to the count of tables seating it.
type fakeTables struct {
	byParty map[int]int
	err     error
}

func (f fakeTables) CountWithCapacityAtLeast(_ context.Context, party int) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.byParty[party], nil
}

type fakeStore struct {
	mu      sync.Mutex
	byDate  map[string][]models.Reservation
	nextID  uint
	saves   int
	delay   time.Duration
	findErr error
	finds   int
}

func newFakeStore(existing ...models.Reservation) *fakeStore {
	s := &fakeStore{byDate: make(map[string][]models.Reservation)}
	for _, r := range existing {
		s.nextID++
		r.ID = s.nextID
		s.byDate[r.Date] = append(s.byDate[r.Date], r)
	}
	return s
}

func (s *fakeStore) FindAllByDate(_ context.Context, date time.Time) ([]models.Reservation, error) {
	s.mu.Lock()
	s.finds++
	if s.findErr != nil {
		s.mu.Unlock()
		return nil, s.findErr
	}
	out := append([]models.Reservation(nil), s.byDate[models.DateKey(date)]...)
	delay := s.delay
	s.mu.Unlock()
	// widens the gap between check and act
	time.Sleep(delay)
	return out, nil
}

func (s *fakeStore) Save(_ context.Context, r *models.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.saves++
	r.ID = s.nextID
	s.byDate[r.Date] = append(s.byDate[r.Date], *r)
	return nil
}

func (s *fakeStore) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// txStore records WithinDay calls on top of fakeStore.
type txStore struct {
	*fakeStore
	days []string
}

func (t *txStore) WithinDay(_ context.Context, date time.Time, fn func(Store) error) error {
	t.days = append(t.days, models.DateKey(date))
	return fn(t.fakeStore)
}

func clock(s string) models.Clock {
	c, err := models.ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

func booked(date, start, end string, people int) models.Reservation {
	s, e := clock(start), clock(end)
	return models.Reservation{Date: date, StartTime: s, EndTime: e, Duration: e.Sub(s), PartySize: people}
}

// lockedStore is a Transactor whose date is held by another instance: it
// waits for ctx, or fails at once with err when set.
type lockedStore struct {
	*fakeStore
	err error
}

func (l *lockedStore) WithinDay(ctx context.Context, _ time.Time, _ func(Store) error) error {
	if l.err != nil {
		return l.err
	}
	<-ctx.Done()
	return ctx.Err()
}
