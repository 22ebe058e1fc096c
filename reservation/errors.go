package reservation

import "errors"

// Stable rejection reasons. Clients branch on these strings.
const (
	ReasonDateInPast        = "date in past"
	ReasonMalformedInterval = "malformed interval"
	ReasonInvalidPartySize  = "invalid party size"
	ReasonNoTableAvailable  = "no table available for this time"
	ReasonBookingTimedOut   = "booking timed out"
)

var (
	// ErrInvalidReservation matches every *InvalidReservationError.
	ErrInvalidReservation = errors.New("invalid reservation")
	// ErrInvalidQuery is returned for a non-positive duration, granularity or
	// party size, or a duration or granularity longer than a day.
	ErrInvalidQuery = errors.New("invalid availability query")
	// ErrDayBusy is wrapped by Transactor implementations when the date stayed
	// locked by another booker longer than the store was willing to wait.
	ErrDayBusy = errors.New("booking day locked by another transaction")
)

// InvalidReservationError is a booking that failed a business rule.
type InvalidReservationError struct {
	Reason string
}

func (e *InvalidReservationError) Error() string {
	return "invalid reservation: " + e.Reason
}

func (e *InvalidReservationError) Is(target error) bool {
	return target == ErrInvalidReservation
}

func invalid(reason string) error {
	return &InvalidReservationError{Reason: reason}
}

// RejectionReason extracts the reason of an InvalidReservationError.
func RejectionReason(err error) (string, bool) {
	var ire *InvalidReservationError
	if errors.As(err, &ire) {
		return ire.Reason, true
	}
	return "", false
}
