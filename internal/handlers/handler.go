package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oculab/octascan-api/internal/analysis"
	"github.com/oculab/octascan-api/internal/models"
	"github.com/oculab/octascan-api/internal/services"
	"github.com/oculab/octascan-api/internal/store"
)

// Handler bundles every dependency the HTTP layer needs. All route handlers
// are methods on it.
type Handler struct {
	Auth     *services.AuthService
	Reports  *services.ReportService
	Messages *services.MessageService
	Export   *services.ExportService
	Notify   *services.NotificationService

	Doctors *store.Collection[models.Doctor]
	Users   *store.Collection[models.User]

	Classifier analysis.Classifier
	Fluid      analysis.FluidQuantifier
	Enhancer   analysis.Enhancer
}

func NewHandler(
	auth *services.AuthService,
	reports *services.ReportService,
	messages *services.MessageService,
	export *services.ExportService,
	notify *services.NotificationService,
	doctors *store.Collection[models.Doctor],
	users *store.Collection[models.User],
	classifier analysis.Classifier,
	fluid analysis.FluidQuantifier,
	enhancer analysis.Enhancer,
) *Handler {
	return &Handler{
		Auth:       auth,
		Reports:    reports,
		Messages:   messages,
		Export:     export,
		Notify:     notify,
		Doctors:    doctors,
		Users:      users,
		Classifier: classifier,
		Fluid:      fluid,
		Enhancer:   enhancer,
	}
}

// currentUser resolves the authenticated user set by the auth middleware.
func (h *Handler) currentUser(c *gin.Context) (models.User, bool) {
	userIDHex, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return models.User{}, false
	}
	user, ok := h.Auth.CurrentUser(userIDHex.(string))
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return models.User{}, false
	}
	return user, true
}

// serviceError maps a service sentinel to an HTTP response.
func serviceError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrDuplicateEmail):
		status = http.StatusConflict
	case errors.Is(err, services.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrReportNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrNotReportParty):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrDoctorDetails),
		errors.Is(err, services.ErrDoctorNotFound),
		errors.Is(err, services.ErrNotesRequired),
		errors.Is(err, services.ErrReportFinalized),
		errors.Is(err, services.ErrInvalidDiagnosis),
		errors.Is(err, services.ErrInvalidType),
		errors.Is(err, services.ErrEmptyMessage):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
