package handler

import (
	"net/http"
	"strconv"

	"campushub/internal/service"

	"github.com/gin-gonic/gin"
)

type DirectMessageHandler struct {
	dms   *service.DirectMessageService
	users *service.UserService
}

func NewDirectMessageHandler(dms *service.DirectMessageService, users *service.UserService) *DirectMessageHandler {
	return &DirectMessageHandler{dms: dms, users: users}
}

// Inbox lists one row per counterparty: last message, unread count, newest
// conversation first.
func (h *DirectMessageHandler) Inbox(c *gin.Context) {
	summaries, err := h.dms.Inbox(c.Request.Context(), userIDFromCtx(c))
	if err != nil {
		respondErr(c, err)
		return
	}

	rows := make([]gin.H, len(summaries))
	for i, s := range summaries {
		rows[i] = gin.H{
			"user":         gin.H{"id": s.User.ID, "username": s.User.Username, "name": s.User.Name},
			"last_message": s.LastMessage,
			"unread_count": s.UnreadCount,
		}
	}
	c.JSON(http.StatusOK, gin.H{"conversations": rows})
}

// Search finds a counterparty to start a conversation with.
func (h *DirectMessageHandler) Search(c *gin.Context) {
	users, err := h.users.Search(c.Query("q"), userIDFromCtx(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// Conversation returns the whole thread with one user, oldest first. Opening
// it marks their unread messages to the viewer as read.
func (h *DirectMessageHandler) Conversation(c *gin.Context) {
	// "/messages/new" rides on the wildcard route; gin's tree rejects a
	// static sibling of ":id"
	if c.Param("id") == "new" {
		h.Search(c)
		return
	}

	otherID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || otherID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid user id"})
		return
	}

	view, err := h.dms.Conversation(userIDFromCtx(c), otherID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"with":     gin.H{"id": view.With.ID, "username": view.With.Username, "name": view.With.Name},
		"messages": view.Messages,
	})
}

// Send posts a message into the conversation with the path user.
func (h *DirectMessageHandler) Send(c *gin.Context) {
	otherID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || otherID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid user id"})
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	dm, err := h.dms.Send(userIDFromCtx(c), otherID, req.Content)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": dm.ID})
}
