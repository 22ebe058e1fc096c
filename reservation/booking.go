package reservation

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/resto-backoffice/models"
)

type BookingRequest struct {
	Date       time.Time
	Start      models.Clock
	End        models.Clock
	PartySize  int
	CustomerID *uint

	Name  string
	Phone string
	Notes string
}

// MakeReservation validates the request and commits it unless every table
// able to seat the party is already taken somewhere in [Start, End]. The
// check and the write run while the date is locked.
func (e *Engine) MakeReservation(ctx context.Context, req BookingRequest) (*models.Reservation, error) {
	day := e.day(req.Date)
	if day.Before(e.today()) {
		return nil, invalid(ReasonDateInPast)
	}
	if !req.Start.Valid() || !req.End.Valid() || req.Start >= req.End {
		return nil, invalid(ReasonMalformedInterval)
	}
	if req.PartySize <= 0 {
		return nil, invalid(ReasonInvalidPartySize)
	}

	key := models.DateKey(day)
	// one budget for the in-process lock and the store transaction
	lockCtx, cancel := context.WithTimeout(ctx, e.lockTimeout)
	defer cancel()
	release, err := e.locks.Lock(lockCtx, key)
	if err != nil {
		if timedOut(ctx, err) {
			e.log.WithField("date", key).Warn("booking lock not acquired in time")
			return nil, invalid(ReasonBookingTimedOut)
		}
		return nil, err
	}
	defer release()

	// read outside the store transaction, the inventory is not written by bookings
	tableCount, err := e.tables.CountWithCapacityAtLeast(ctx, req.PartySize)
	if err != nil {
		return nil, err
	}

	var booked *models.Reservation
	book := func(store Store) error {
		existing, err := store.FindAllByDate(lockCtx, day)
		if err != nil {
			return err
		}
		if n := conflicts(existing, req.Start, req.End); n >= tableCount {
			e.log.WithFields(logrus.Fields{
				"date":      key,
				"start":     req.Start.String(),
				"end":       req.End.String(),
				"people":    req.PartySize,
				"conflicts": n,
				"tables":    tableCount,
			}).Info("booking rejected: no table available")
			return invalid(ReasonNoTableAvailable)
		}

		r := &models.Reservation{
			Date:       key,
			StartTime:  req.Start,
			EndTime:    req.End,
			Duration:   req.End.Sub(req.Start),
			PartySize:  req.PartySize,
			CustomerID: req.CustomerID,
			Name:       req.Name,
			Phone:      req.Phone,
			Notes:      req.Notes,
		}
		if err := store.Save(lockCtx, r); err != nil {
			return err
		}
		booked = r
		return nil
	}

	if tx, ok := e.store.(Transactor); ok {
		err = tx.WithinDay(lockCtx, day, book)
		if timedOut(ctx, err) {
			e.log.WithField("date", key).WithError(err).Warn("booking day not locked in time")
			return nil, invalid(ReasonBookingTimedOut)
		}
	} else {
		err = book(e.store)
	}
	if err != nil {
		return nil, err
	}

	e.log.WithFields(logrus.Fields{
		"id":     booked.ID,
		"date":   key,
		"start":  booked.StartTime.String(),
		"end":    booked.EndTime.String(),
		"people": booked.PartySize,
	}).Info("reservation booked")
	return booked, nil
}

// timedOut reports whether err comes from the lock budget running out rather
// than from the caller giving up.
func timedOut(ctx context.Context, err error) bool {
	if err == nil || ctx.Err() != nil {
		return false
	}
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, ErrDayBusy)
}
