package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"salon-booking-backend/internal/model"
	"salon-booking-backend/internal/schedule"
)

// Admin handlers manage the catalog the engine reads: services, staff
// and per-weekday availability rules. The original system's admin
// dashboard issues these calls; they bypass the notice-period guard by
// design, which is why mutating a booking administratively is not
// routed through the coordinator here.

type serviceRequest struct {
	Name            string  `json:"name" binding:"required"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,gt=0"`
}

// CreateService handles POST /api/admin/services.
func (h *Handler) CreateService(c *gin.Context) {
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := model.Service{Name: req.Name, Price: req.Price, DurationMinutes: req.DurationMinutes}
	if err := h.store.CreateService(c.Request.Context(), &svc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "reason": ReasonStorageError})
		return
	}
	c.JSON(http.StatusCreated, svc)
}

// UpdateService handles PUT /api/admin/services/{id}.
func (h *Handler) UpdateService(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service ID"})
		return
	}

	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := model.Service{ID: id, Name: req.Name, Price: req.Price, DurationMinutes: req.DurationMinutes}
	if err := h.store.UpdateService(c.Request.Context(), &svc); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "reason": ReasonStorageError})
		return
	}
	c.JSON(http.StatusOK, svc)
}

// DeleteService handles DELETE /api/admin/services/{id}.
func (h *Handler) DeleteService(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service ID"})
		return
	}
	if err := h.store.DeleteService(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "reason": ReasonStorageError})
		return
	}
	c.Status(http.StatusNoContent)
}

type staffRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateStaff handles POST /api/admin/staff.
func (h *Handler) CreateStaff(c *gin.Context) {
	var req staffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	st := model.Staff{Name: req.Name}
	if err := h.store.CreateStaff(c.Request.Context(), &st); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "reason": ReasonStorageError})
		return
	}
	c.JSON(http.StatusCreated, st)
}

// DeleteStaff handles DELETE /api/admin/staff/{id}.
func (h *Handler) DeleteStaff(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid staff ID"})
		return
	}
	if err := h.store.DeleteStaff(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "reason": ReasonStorageError})
		return
	}
	c.Status(http.StatusNoContent)
}

type availabilityRuleRequest struct {
	Weekday   *int   `json:"weekday" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

// ListAvailabilityRules handles GET /api/admin/staff/{id}/availability-rules.
func (h *Handler) ListAvailabilityRules(c *gin.Context) {
	staffID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid staff ID"})
		return
	}
	rules, err := h.store.ListAvailabilityRules(c.Request.Context(), staffID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "reason": ReasonStorageError})
		return
	}
	c.JSON(http.StatusOK, rules)
}

// PutAvailabilityRule handles PUT /api/admin/staff/{id}/availability-rules,
// creating or replacing the single rule for a weekday.
func (h *Handler) PutAvailabilityRule(c *gin.Context) {
	staffID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid staff ID"})
		return
	}

	var req availabilityRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if *req.Weekday < 0 || *req.Weekday > 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "weekday must be 0 (Sunday) through 6 (Saturday)"})
		return
	}
	// Reject malformed windows before they can poison slot generation.
	if _, err := schedule.WindowOn(time.Now(), req.StartTime, req.EndTime); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rule := model.AvailabilityRule{
		StaffID:   staffID,
		Weekday:   time.Weekday(*req.Weekday),
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if err := h.store.UpsertAvailabilityRule(c.Request.Context(), &rule); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "reason": ReasonStorageError})
		return
	}
	c.JSON(http.StatusOK, rule)
}

// DeleteAvailabilityRule handles
// DELETE /api/admin/staff/{id}/availability-rules/{weekday}.
func (h *Handler) DeleteAvailabilityRule(c *gin.Context) {
	staffID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid staff ID"})
		return
	}
	weekday, err := strconv.Atoi(c.Param("weekday"))
	if err != nil || weekday < 0 || weekday > 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid weekday"})
		return
	}
	if err := h.store.DeleteAvailabilityRule(c.Request.Context(), staffID, time.Weekday(weekday)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "reason": ReasonStorageError})
		return
	}
	c.Status(http.StatusNoContent)
}
