package handler

import (
	"net/http"
	"strconv"

	"campushub/internal/service"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	votes *service.VoteService
}

func NewVoteHandler(votes *service.VoteService) *VoteHandler {
	return &VoteHandler{votes: votes}
}

// Vote toggles the caller's vote on a room: same direction again removes it,
// the opposite direction overwrites it.
func (h *VoteHandler) Vote(c *gin.Context) {
	roomID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || roomID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid room id"})
		return
	}

	direction := c.PostForm("direction")
	if direction == "" {
		direction = c.Query("direction")
	}

	userVote, score, err := h.votes.Vote(c.Request.Context(), userIDFromCtx(c), roomID, direction)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_vote": userVote, "score": score})
}
