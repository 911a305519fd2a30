package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetDoctors lists the curated doctor directory used by patient-facing
// pickers. Self-registered doctors do not appear here until added to the
// directory.
func (h *Handler) GetDoctors(c *gin.Context) {
	c.JSON(http.StatusOK, h.Doctors.All())
}
