package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oculab/octascan-api/internal/models"
	"github.com/oculab/octascan-api/internal/services"
)

// GetContacts lists who the authenticated user can message.
func (h *Handler) GetContacts(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	contacts := h.Messages.Contacts(user)
	if contacts == nil {
		contacts = make([]services.Contact, 0)
	}

	c.JSON(http.StatusOK, contacts)
}

// GetConversation returns the thread with another user, oldest first, and
// marks incoming messages as read.
func (h *Handler) GetConversation(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	messages, err := h.Messages.Conversation(user.ID, c.Param("otherId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load conversation"})
		return
	}
	if messages == nil {
		messages = make([]models.Message, 0)
	}

	c.JSON(http.StatusOK, messages)
}

// SendMessage appends a message to a conversation.
func (h *Handler) SendMessage(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req struct {
		ReceiverID string `json:"receiverId" binding:"required"`
		Content    string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	msg, err := h.Messages.Send(user, req.ReceiverID, req.Content)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, msg)
}

// GetUnreadCount reports how many incoming messages are still unread.
func (h *Handler) GetUnreadCount(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": h.Messages.UnreadCount(user.ID)})
}
