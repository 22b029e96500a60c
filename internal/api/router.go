package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"salon-booking-backend/config"
	"salon-booking-backend/internal/booking"
	"salon-booking-backend/internal/mw"
	"salon-booking-backend/internal/notification"
	"salon-booking-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, coordinator *booking.Coordinator, notifier *notification.WorkerPool, webpushOptions *webpush.Options, cfg *config.ServerConfig) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, coordinator, notifier, webpushOptions)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// Public catalog; safe to cache.
		api.GET("/services", caching, handler.GetServices)
		api.GET("/staff", caching, handler.GetStaff)

		// Availability is computed fresh on every request.
		api.GET("/staff/:staff_id/availability", handler.GetAvailability)

		// Booking flow and self-service.
		api.POST("/bookings", handler.CreateBooking)
		api.GET("/bookings", handler.SearchBookings)
		api.PATCH("/bookings/:id", handler.RescheduleBooking)
		api.DELETE("/bookings/:id", handler.CancelBooking)

		// Staff dashboard push subscriptions.
		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)

		// Admin-managed catalog and working hours.
		admin := api.Group("/admin")
		{
			admin.POST("/services", handler.CreateService)
			admin.PUT("/services/:id", handler.UpdateService)
			admin.DELETE("/services/:id", handler.DeleteService)
			admin.POST("/staff", handler.CreateStaff)
			admin.DELETE("/staff/:id", handler.DeleteStaff)
			admin.GET("/staff/:id/availability-rules", handler.ListAvailabilityRules)
			admin.PUT("/staff/:id/availability-rules", handler.PutAvailabilityRule)
			admin.DELETE("/staff/:id/availability-rules/:weekday", handler.DeleteAvailabilityRule)
		}
	}

	return r
}
