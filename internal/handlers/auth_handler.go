package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oculab/octascan-api/internal/services"
	"github.com/oculab/octascan-api/internal/utils"
)

type RegisterUserRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	Name            string `json:"name" binding:"required"`
	Role            string `json:"role" binding:"required"`
	Specialization  string `json:"specialization"`
	LicenseDocument string `json:"licenseDocument"`
}

// RegisterUser creates an account and auto-authenticates it.
func (h *Handler) RegisterUser(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Auth.Register(services.RegisterInput{
		Email:           req.Email,
		Password:        req.Password,
		Name:            req.Name,
		Role:            req.Role,
		Specialization:  req.Specialization,
		LicenseDocument: req.LicenseDocument,
	})
	if err != nil {
		serviceError(c, err)
		return
	}

	token, err := utils.GenerateJWT(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

// Login checks credentials and returns a token plus the stripped user.
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, err := h.Auth.Login(req.Email, req.Password)
	if err != nil {
		serviceError(c, err)
		return
	}

	token, err := utils.GenerateJWT(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// Logout clears the persisted session record.
func (h *Handler) Logout(c *gin.Context) {
	if err := h.Auth.Logout(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// GetCurrentUser returns the profile of the authenticated user.
func (h *Handler) GetCurrentUser(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, user)
}
