package handler

import (
	"net/http"
	"strconv"

	"campushub/internal/service"

	"github.com/gin-gonic/gin"
)

type InviteHandler struct {
	invites *service.InviteService
}

type GenerateInvitesReq struct {
	Count  int    `json:"count"`
	SendTo string `json:"send_to"`
}

func NewInviteHandler(invites *service.InviteService) *InviteHandler {
	return &InviteHandler{invites: invites}
}

// Generate mints invitation codes; admin only. With send_to set, the code is
// mailed to the prospective alumnus.
func (h *InviteHandler) Generate(c *gin.Context) {
	var req GenerateInvitesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	codes, err := h.invites.Generate(userIDFromCtx(c), req.Count, req.SendTo)
	if err != nil {
		respondErr(c, err)
		return
	}

	out := make([]string, len(codes))
	for i, code := range codes {
		out[i] = code.Code
	}
	c.JSON(http.StatusOK, gin.H{"codes": out})
}

func (h *InviteHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("size"))

	codes, err := h.invites.List(userIDFromCtx(c), page, size)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"codes": codes})
}

func (h *InviteHandler) Deactivate(c *gin.Context) {
	var req struct {
		Code string `json:"code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	if err := h.invites.Deactivate(userIDFromCtx(c), req.Code); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "deactivated"})
}
