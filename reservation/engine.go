// Package reservation computes bookable start times from opening hours, the
// table inventory and the reservations already taken, and commits new
// reservations without overbooking.
//
// Occupancy is a pooled count: every reservation on a date takes one unit out
// of the tables able to seat the requested party, whatever its own size. A
// small party can therefore block a large table. That approximation is
// deliberate; no table assignment is attempted.
package reservation

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/resto-backoffice/models"
)

const (
	DefaultLockTimeout = 5 * time.Second
	defaultFanout      = 4
)

type Engine struct {
	hours  OpeningHours
	tables TableInventory
	store  Store
	locks  *DayLocker

	log         logrus.FieldLogger
	now         func() time.Time
	loc         *time.Location
	lockTimeout time.Duration
	fanout      int
}

type Option func(*Engine)

// WithClock replaces time.Now, used for the date-in-past check.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLocation sets the restaurant's time zone. Dates are interpreted in it.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) { e.loc = loc }
}

// WithLockTimeout bounds how long a booking waits for its date.
func WithLockTimeout(d time.Duration) Option {
	return func(e *Engine) { e.lockTimeout = d }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Engine) { e.log = l }
}

// WithLocker shares a lock arena between engines of the same process.
func WithLocker(l *DayLocker) Option {
	return func(e *Engine) { e.locks = l }
}

// WithFanout caps the dates evaluated concurrently by AvailableStartsForDays.
func WithFanout(n int) Option {
	return func(e *Engine) { e.fanout = n }
}

func NewEngine(hours OpeningHours, tables TableInventory, store Store, opts ...Option) *Engine {
	e := &Engine{
		hours:       hours,
		tables:      tables,
		store:       store,
		locks:       NewDayLocker(),
		log:         logrus.StandardLogger(),
		now:         time.Now,
		loc:         time.Local,
		lockTimeout: DefaultLockTimeout,
		fanout:      defaultFanout,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.fanout < 1 {
		e.fanout = 1
	}
	return e
}

// Location is the time zone dates are interpreted in.
func (e *Engine) Location() *time.Location {
	return e.loc
}

// AvailableStarts returns the valid start times on date, ascending. A closed
// day yields an empty list, not an error.
func (e *Engine) AvailableStarts(ctx context.Context, date time.Time, durationMinutes, granularityMinutes, partySize int) ([]models.Clock, error) {
	if err := validateQuery(durationMinutes, granularityMinutes, partySize); err != nil {
		return nil, err
	}
	day := e.day(date)

	hours, open, err := e.hours.Get(ctx, day.Weekday())
	if err != nil {
		return nil, err
	}
	if !open {
		return []models.Clock{}, nil
	}

	tableCount, err := e.tables.CountWithCapacityAtLeast(ctx, partySize)
	if err != nil {
		return nil, err
	}
	existing, err := e.store.FindAllByDate(ctx, day)
	if err != nil {
		return nil, err
	}
	return availableStarts(hours, tableCount, existing, durationMinutes, granularityMinutes), nil
}

func availableStarts(h Hours, tableCount int, existing []models.Reservation, duration, granularity int) []models.Clock {
	starts := []models.Clock{}
	for start := h.Opening; h.Closing.Sub(start) >= duration; start = start.Add(granularity) {
		if conflicts(existing, start, start.Add(duration)) < tableCount {
			starts = append(starts, start)
		}
	}
	return starts
}

// conflicts counts reservations overlapping [start, end], endpoints included.
func conflicts(existing []models.Reservation, start, end models.Clock) int {
	n := 0
	for i := range existing {
		if existing[i].Overlaps(start, end) {
			n++
		}
	}
	return n
}

func validateQuery(duration, granularity, partySize int) error {
	switch {
	case duration <= 0:
		return fmt.Errorf("%w: duration must be positive", ErrInvalidQuery)
	case duration > int(models.EndOfDay):
		return fmt.Errorf("%w: duration longer than a day", ErrInvalidQuery)
	case granularity <= 0:
		return fmt.Errorf("%w: granularity must be positive", ErrInvalidQuery)
	case granularity > int(models.EndOfDay):
		return fmt.Errorf("%w: granularity longer than a day", ErrInvalidQuery)
	case partySize <= 0:
		return fmt.Errorf("%w: party size must be positive", ErrInvalidQuery)
	}
	return nil
}

// day keeps the calendar date of t and moves it to midnight in the engine's zone.
func (e *Engine) day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, e.loc)
}

func (e *Engine) today() time.Time {
	return e.day(e.now().In(e.loc))
}
