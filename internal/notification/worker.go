package notification

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"salon-booking-backend/internal/model"
)

// EventKind distinguishes the booking changes worth announcing.
type EventKind string

const (
	EventCreated     EventKind = "booking_created"
	EventRescheduled EventKind = "booking_rescheduled"
	EventCancelled   EventKind = "booking_cancelled"
)

// Event is one booking change to fan out to subscribed dashboards. The
// booking snapshot is carried in the event because a cancellation's row
// is already gone by the time a worker picks the job up.
type Event struct {
	Kind    EventKind
	Booking model.Booking
}

// Sender defines the interface for sending a web push notification.
type Sender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// webPushSender is the real implementation backed by the webpush library.
type webPushSender struct{}

func (s *webPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool fans booking events out to push subscriptions.
type WorkerPool struct {
	size    int
	jobs    chan Event
	db      *gorm.DB
	webpush *webpush.Options
	sender  Sender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, db *gorm.DB, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan Event, size),
		db:      db,
		webpush: webpushOptions,
		sender:  &webPushSender{},
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("notification worker %d started", id)
	for {
		select {
		case ev := <-wp.jobs:
			wp.deliver(ctx, ev)
		case <-ctx.Done():
			log.Printf("notification worker %d shutting down", id)
			return
		}
	}
}

// Dispatch queues an event for delivery. Never blocks the request path
// for long: the channel is buffered per worker.
func (wp *WorkerPool) Dispatch(ev Event) {
	wp.jobs <- ev
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan Event {
	return wp.jobs
}

// deliver fetches the subscriptions watching the booking's staff member
// and pushes the event to each of them.
func (wp *WorkerPool) deliver(ctx context.Context, ev Event) {
	var subscriptions []model.PushSubscription
	err := wp.db.WithContext(ctx).
		Joins("JOIN subscription_staff_mapping ssm ON ssm.push_subscription_endpoint = push_subscriptions.endpoint").
		Where("ssm.staff_id = ?", ev.Booking.StaffID).
		Find(&subscriptions).Error
	if err != nil {
		log.Printf("error fetching subscriptions for staff %d: %v", ev.Booking.StaffID, err)
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	payload, err := json.Marshal(map[string]any{
		"kind":          string(ev.Kind),
		"booking_id":    ev.Booking.ID,
		"customer_name": ev.Booking.CustomerName,
		"staff_id":      ev.Booking.StaffID,
		"starts_at":     ev.Booking.StartsAt,
		"title":         title(ev.Kind),
	})
	if err != nil {
		log.Printf("error marshalling notification payload: %v", err)
		return
	}

	log.Printf("sending %d notifications for booking %d (%s)", len(subscriptions), ev.Booking.ID, ev.Kind)
	for _, sub := range subscriptions {
		wp.push(ctx, sub, payload)
	}
}

func title(kind EventKind) string {
	switch kind {
	case EventCreated:
		return "New booking"
	case EventRescheduled:
		return "Booking rescheduled"
	case EventCancelled:
		return "Booking cancelled"
	}
	return "Booking update"
}

// push sends one web push message and prunes the subscription when the
// push service reports it gone.
func (wp *WorkerPool) push(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("error sending notification to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
		log.Printf("subscription %s expired, deleting", sub.Endpoint)
		if err := wp.db.WithContext(ctx).Select("Staff").Delete(&model.PushSubscription{Endpoint: sub.Endpoint}).Error; err != nil {
			log.Printf("error deleting expired subscription %s: %v", sub.Endpoint, err)
		}
		return
	}
	if resp.StatusCode >= 400 {
		log.Printf("push service returned %d for %s", resp.StatusCode, sub.Endpoint)
	}
}
