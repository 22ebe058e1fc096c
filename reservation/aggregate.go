package reservation

import (
	"context"
	"time"

	"github.com/yeremiapane/resto-backoffice/models"
	"golang.org/x/sync/errgroup"
)

type AvailabilityQuery struct {
	Dates              []time.Time
	DurationMinutes    int
	GranularityMinutes int
	PartySize          int
}

type DayAvailability struct {
	Date   time.Time
	Starts []models.Clock
}

// AvailableStartsForDays runs AvailableStarts for every date of q, keeping
// input order and duplicates. Opening hours and the table count are looked up
// once per call.
func (e *Engine) AvailableStartsForDays(ctx context.Context, q AvailabilityQuery) ([]DayAvailability, error) {
	if err := validateQuery(q.DurationMinutes, q.GranularityMinutes, q.PartySize); err != nil {
		return nil, err
	}

	out := make([]DayAvailability, len(q.Dates))
	type weekdayHours struct {
		hours Hours
		open  bool
	}
	byWeekday := make(map[time.Weekday]weekdayHours, 7)
	anyOpen := false
	for i, d := range q.Dates {
		day := e.day(d)
		out[i] = DayAvailability{Date: day, Starts: []models.Clock{}}
		if _, seen := byWeekday[day.Weekday()]; seen {
			continue
		}
		h, open, err := e.hours.Get(ctx, day.Weekday())
		if err != nil {
			return nil, err
		}
		byWeekday[day.Weekday()] = weekdayHours{hours: h, open: open}
		anyOpen = anyOpen || open
	}
	if !anyOpen {
		return out, nil
	}

	tableCount, err := e.tables.CountWithCapacityAtLeast(ctx, q.PartySize)
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.fanout)
	for i := range out {
		wh := byWeekday[out[i].Date.Weekday()]
		if !wh.open {
			continue
		}
		i := i
		g.Go(func() error {
			existing, err := e.store.FindAllByDate(gctx, out[i].Date)
			if err != nil {
				return err
			}
			out[i].Starts = availableStarts(wh.hours, tableCount, existing, q.DurationMinutes, q.GranularityMinutes)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
