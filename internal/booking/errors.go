package booking

import "errors"

var (
	// ErrSlotUnavailable means the requested time failed the conflict
	// filter at submission time. Recoverable: the customer re-selects.
	ErrSlotUnavailable = errors.New("requested time slot is not available")

	// ErrNoticePeriod means the mutation was requested inside the
	// minimum-notice window.
	ErrNoticePeriod = errors.New("booking can no longer be changed this close to its start")

	// ErrBookingNotFound means the booking id did not resolve.
	ErrBookingNotFound = errors.New("booking not found")
)
