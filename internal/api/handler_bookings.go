package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"salon-booking-backend/internal/booking"
	"salon-booking-backend/internal/model"
	"salon-booking-backend/internal/notification"
)

type createBookingRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerEmail string `json:"customer_email" binding:"required,email"`
	CustomerPhone string `json:"customer_phone"`
	StaffID       int64  `json:"staff_id" binding:"required"`
	ServiceID     int64  `json:"service_id" binding:"required"`
	Date          string `json:"date" binding:"required"`
	Time          string `json:"time" binding:"required"`
}

type rescheduleBookingRequest struct {
	StaffID   int64  `json:"staff_id"`
	ServiceID int64  `json:"service_id"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
}

// bookingResponse is the flattened structure for booking payloads.
type bookingResponse struct {
	ID            int64     `json:"id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	CustomerPhone string    `json:"customer_phone"`
	StaffID       int64     `json:"staff_id"`
	StaffName     string    `json:"staff_name"`
	ServiceID     int64     `json:"service_id"`
	ServiceName   string    `json:"service_name"`
	StartsAt      time.Time `json:"starts_at"`
	EndsAt        time.Time `json:"ends_at"`
}

func toBookingResponse(b *model.Booking) bookingResponse {
	return bookingResponse{
		ID:            b.ID,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
		StaffID:       b.StaffID,
		StaffName:     b.Staff.Name,
		ServiceID:     b.ServiceID,
		ServiceName:   b.Service.Name,
		StartsAt:      b.StartsAt,
		EndsAt:        b.EndsAt(),
	}
}

// CreateBooking handles POST /api/bookings.
func (h *Handler) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startsAt, err := h.parseStartsAt(req.Date, req.Time)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.coordinator.Create(c.Request.Context(), booking.CreateRequest{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		StaffID:       req.StaffID,
		ServiceID:     req.ServiceID,
		StartsAt:      startsAt,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.notify(notification.EventCreated, *b)
	c.JSON(http.StatusCreated, toBookingResponse(b))
}

// SearchBookings handles GET /api/bookings?email=...&date=..., the
// self-service lookup.
func (h *Handler) SearchBookings(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}
	date, err := time.ParseInLocation("2006-01-02", c.Query("date"), h.coordinator.Location())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'date', use YYYY-MM-DD"})
		return
	}

	bookings, err := h.coordinator.Lookup(c.Request.Context(), email, date)
	if err != nil {
		h.writeError(c, err)
		return
	}

	out := make([]bookingResponse, len(bookings))
	for i := range bookings {
		out[i] = toBookingResponse(&bookings[i])
	}
	c.JSON(http.StatusOK, out)
}

// RescheduleBooking handles PATCH /api/bookings/{id}.
func (h *Handler) RescheduleBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking ID"})
		return
	}

	var req rescheduleBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startsAt, err := h.parseStartsAt(req.Date, req.Time)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.coordinator.Reschedule(c.Request.Context(), id, booking.RescheduleRequest{
		StaffID:   req.StaffID,
		ServiceID: req.ServiceID,
		StartsAt:  startsAt,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.notify(notification.EventRescheduled, *b)
	c.JSON(http.StatusOK, toBookingResponse(b))
}

// CancelBooking handles DELETE /api/bookings/{id}.
func (h *Handler) CancelBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking ID"})
		return
	}

	b, err := h.coordinator.Cancel(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.notify(notification.EventCancelled, *b)
	c.Status(http.StatusNoContent)
}

func (h *Handler) parseStartsAt(date, tod string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", date+" "+tod, h.coordinator.Location())
}

// writeError maps coordinator failures onto HTTP statuses plus the
// machine-readable reason codes the UI keys its messaging on.
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, booking.ErrSlotUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "reason": ReasonUnavailable})
	case errors.Is(err, booking.ErrNoticePeriod):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error(), "reason": ReasonNoticePeriod})
	case errors.Is(err, booking.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "reason": ReasonBookingNotFound})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown staff or service"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "reason": ReasonStorageError})
	}
}
