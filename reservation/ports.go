package reservation

import (
	"context"
	"time"

	"github.com/yeremiapane/resto-backoffice/models"
)

// Hours is the service window of one weekday.
type Hours struct {
	Opening models.Clock
	Closing models.Clock
}

// OpeningHours reports the service window of a weekday. ok is false when the
// restaurant is closed that day.
type OpeningHours interface {
	Get(ctx context.Context, weekday time.Weekday) (h Hours, ok bool, err error)
}

// TableInventory counts the tables that can seat a party.
type TableInventory interface {
	CountWithCapacityAtLeast(ctx context.Context, partySize int) (int, error)
}

// Store persists reservations. Save assigns the ID and confirmation code.
type Store interface {
	FindAllByDate(ctx context.Context, date time.Time) ([]models.Reservation, error)
	Save(ctx context.Context, r *models.Reservation) error
}

// Transactor is implemented by stores able to run the read-validate-write of
// a booking inside one transaction holding a lock on the date. Waiting for
// the lock must honour ctx; a lock-wait failure of the database wraps ErrDayBusy.
type Transactor interface {
	WithinDay(ctx context.Context, date time.Time, fn func(Store) error) error
}
