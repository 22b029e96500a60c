package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetServices handles the public GET /api/services request.
func (h *Handler) GetServices(c *gin.Context) {
	services, err := h.store.ListServices(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve services", "reason": ReasonStorageError})
		return
	}
	c.JSON(http.StatusOK, services)
}

// GetStaff handles the public GET /api/staff request.
func (h *Handler) GetStaff(c *gin.Context) {
	staff, err := h.store.ListStaff(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve staff", "reason": ReasonStorageError})
		return
	}
	c.JSON(http.StatusOK, staff)
}
