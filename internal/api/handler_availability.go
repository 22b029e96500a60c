package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// availabilityResponse lists the bookable start times for one staff
// member on one date, as wall-clock labels the booking form renders
// directly.
type availabilityResponse struct {
	StaffID   int64    `json:"staff_id"`
	ServiceID int64    `json:"service_id"`
	Date      string   `json:"date"`
	Slots     []string `json:"slots"`
}

// GetAvailability handles GET /api/staff/{staff_id}/availability.
// Responses are never cached: a stale slot list is worse than the read
// cost at this scale.
func (h *Handler) GetAvailability(c *gin.Context) {
	staffID, err := strconv.ParseInt(c.Param("staff_id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid staff ID"})
		return
	}

	serviceID, err := strconv.ParseInt(c.Query("service_id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "service_id is required"})
		return
	}

	date, err := time.ParseInLocation("2006-01-02", c.Query("date"), h.coordinator.Location())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid 'date', use YYYY-MM-DD"})
		return
	}

	var excludeBookingID int64
	if raw := c.Query("exclude_booking_id"); raw != "" {
		excludeBookingID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid exclude_booking_id"})
			return
		}
	}

	slots, err := h.coordinator.Availability(c.Request.Context(), staffID, date, serviceID, excludeBookingID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	labels := make([]string, len(slots))
	for i, s := range slots {
		labels[i] = s.Format("15:04")
	}

	c.JSON(http.StatusOK, availabilityResponse{
		StaffID:   staffID,
		ServiceID: serviceID,
		Date:      c.Query("date"),
		Slots:     labels,
	})
}
