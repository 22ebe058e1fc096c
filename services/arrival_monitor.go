package services

import (
	"context"
	"sync"
	"time"

	"github.com/yeremiapane/resto-backoffice/models"
	"github.com/yeremiapane/resto-backoffice/utils"
)

// DayReader lists the reservations of a date.
type DayReader interface {
	FindAllByDate(ctx context.Context, date time.Time) ([]models.Reservation, error)
}

type Announcer interface {
	BroadcastGuestArriving(r models.Reservation)
}

// ArrivalMonitor announces each reservation once, when its start time falls
// within Window from now.
type ArrivalMonitor struct {
	Reservations DayReader
	Announcer    Announcer
	Interval     time.Duration
	Window       time.Duration
	Location     *time.Location
	Now          func() time.Time
	StopChan     chan struct{}

	mu        sync.Mutex
	day       string
	announced map[uint]struct{}
	stopOnce  sync.Once
}

func NewArrivalMonitor(reservations DayReader, announcer Announcer, window time.Duration, loc *time.Location) *ArrivalMonitor {
	return &ArrivalMonitor{
		Reservations: reservations,
		Announcer:    announcer,
		Interval:     1 * time.Minute,
		Window:       window,
		Location:     loc,
		Now:          time.Now,
		StopChan:     make(chan struct{}),
		announced:    make(map[uint]struct{}),
	}
}

func (am *ArrivalMonitor) Start() {
	go func() {
		ticker := time.NewTicker(am.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if _, err := am.CheckArrivals(context.Background()); err != nil {
					utils.ErrorLogger.Printf("Error checking arrivals: %v", err)
				}
			case <-am.StopChan:
				return
			}
		}
	}()
}

func (am *ArrivalMonitor) Stop() {
	am.stopOnce.Do(func() { close(am.StopChan) })
}

// CheckArrivals announces the reservations starting within the window and
// returns how many were announced.
func (am *ArrivalMonitor) CheckArrivals(ctx context.Context) (int, error) {
	now := am.Now().In(am.Location)
	key := models.DateKey(now)

	reservations, err := am.Reservations.FindAllByDate(ctx, now)
	if err != nil {
		return 0, err
	}

	am.mu.Lock()
	defer am.mu.Unlock()
	if am.day != key {
		am.day = key
		am.announced = make(map[uint]struct{})
	}

	from := models.ClockOf(now)
	until := from.Add(int(am.Window / time.Minute))
	n := 0
	for _, r := range reservations {
		if r.StartTime < from || r.StartTime > until {
			continue
		}
		if _, done := am.announced[r.ID]; done {
			continue
		}
		am.announced[r.ID] = struct{}{}
		am.Announcer.BroadcastGuestArriving(r)
		utils.InfoLogger.Printf("Guest arriving: reservation %d at %s for %d people", r.ID, r.StartTime, r.PartySize)
		n++
	}
	return n, nil
}
