package handler

import (
	"net/http"
	"strconv"

	"campushub/internal/service"

	"github.com/gin-gonic/gin"
)

// APIHandler is the read-only JSON surface for rooms, gated exactly like the
// pages: the premium category is filtered from the list and a gated single
// room is an explicit denial.
type APIHandler struct {
	rooms *service.RoomService
}

func NewAPIHandler(rooms *service.RoomService) *APIHandler {
	return &APIHandler{rooms: rooms}
}

func (h *APIHandler) Routes(c *gin.Context) {
	c.JSON(http.StatusOK, []string{
		"GET /api",
		"GET /api/rooms",
		"GET /api/rooms/:id",
	})
}

func (h *APIHandler) ListRooms(c *gin.Context) {
	list, err := h.rooms.ListRooms(userIDFromCtx(c), c.Query("q"), c.Query("topic"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, roomSummaries(list))
}

func (h *APIHandler) GetRoom(c *gin.Context) {
	roomID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || roomID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid room id"})
		return
	}

	detail, err := h.rooms.GetRoom(userIDFromCtx(c), roomID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"room":         detail.Room,
		"participants": detail.Participants,
		"score":        detail.Score,
	})
}
