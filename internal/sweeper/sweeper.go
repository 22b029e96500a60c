// Package sweeper purges long-past bookings in the background so the
// bookings table stays small on installations that run for years.
package sweeper

import (
	"context"
	"log"
	"time"

	"salon-booking-backend/config"
	"salon-booking-backend/internal/store"
)

// Service runs the periodic purge.
type Service struct {
	store     store.Store
	interval  time.Duration
	retention time.Duration
}

// NewService creates a sweeper from config.
func NewService(cfg *config.SweeperConfig, s store.Store) *Service {
	return &Service{
		store:     s,
		interval:  time.Duration(cfg.IntervalMinutes) * time.Minute,
		retention: time.Duration(cfg.RetentionDays) * 24 * time.Hour,
	}
}

// Run loops until the context is cancelled.
func (s *Service) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Printf("sweeper started, interval %s, retention %s", s.interval, s.retention)
	for {
		select {
		case <-ticker.C:
			s.SweepOnce(ctx)
		case <-ctx.Done():
			log.Println("sweeper shutting down")
			return
		}
	}
}

// SweepOnce performs a single purge pass.
func (s *Service) SweepOnce(ctx context.Context) {
	cutoff := time.Now().Add(-s.retention)
	purged, err := s.store.DeleteBookingsEndedBefore(ctx, cutoff)
	if err != nil {
		log.Printf("sweep failed: %v", err)
		return
	}
	if purged > 0 {
		log.Printf("sweep removed %d bookings older than %s", purged, cutoff.Format(time.RFC3339))
	}
}
