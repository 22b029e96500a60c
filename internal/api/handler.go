package api

import (
	"github.com/SherClockHolmes/webpush-go"

	"salon-booking-backend/internal/booking"
	"salon-booking-backend/internal/model"
	"salon-booking-backend/internal/notification"
	"salon-booking-backend/internal/store"
)

// Rejection reason codes surfaced to the UI so it can render the right
// message for each failure.
const (
	ReasonUnavailable     = "UNAVAILABLE"
	ReasonNoticePeriod    = "NOTICE_PERIOD_VIOLATION"
	ReasonStorageError    = "STORAGE_ERROR"
	ReasonBookingNotFound = "NOT_FOUND"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store       store.Store
	coordinator *booking.Coordinator
	notifier    *notification.WorkerPool
	webpush     *webpush.Options
}

// NewHandler creates a new API handler. notifier may be nil; booking
// changes are then simply not announced.
func NewHandler(s store.Store, c *booking.Coordinator, notifier *notification.WorkerPool, webpushOptions *webpush.Options) *Handler {
	return &Handler{
		store:       s,
		coordinator: c,
		notifier:    notifier,
		webpush:     webpushOptions,
	}
}

func (h *Handler) notify(kind notification.EventKind, b model.Booking) {
	if h.notifier == nil {
		return
	}
	h.notifier.Dispatch(notification.Event{Kind: kind, Booking: b})
}
