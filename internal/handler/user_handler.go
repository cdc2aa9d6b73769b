package handler

import (
	"errors"
	"net/http"
	"strconv"

	"campushub/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users   *service.UserService
	rooms   *service.RoomService
	mentors *service.MentorshipService
}

type RegisterReq struct {
	Username       string `json:"username"`
	Password       string `json:"password"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	InvitationCode string `json:"invitation_code"`
}

type UpdateUserReq struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Bio      string `json:"bio"`
	Avatar   string `json:"avatar"`
}

func NewUserHandler(users *service.UserService, rooms *service.RoomService, mentors *service.MentorshipService) *UserHandler {
	return &UserHandler{users: users, rooms: rooms, mentors: mentors}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	user, err := h.users.Register(req.Username, req.Password, req.Email, req.Name, req.InvitationCode)
	if err != nil {
		// invitation errors belong to their form field
		if errors.Is(err, service.ErrInviteRequired) || errors.Is(err, service.ErrInviteInvalid) {
			c.JSON(http.StatusBadRequest, gin.H{"field": "invitation_code", "msg": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          user.ID,
		"username":    user.Username,
		"affiliation": user.Affiliation,
	})
}

func (h *UserHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	pair, user, err := h.users.Login(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"AccessToken":  pair.AccessToken,
		"RefreshToken": pair.RefreshToken,
		"user_id":      user.ID,
	})
}

func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.users.Logout(userIDFromCtx(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *UserHandler) TokenRefresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	pair, err := h.users.Refresh(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"AccessToken": pair.AccessToken, "RefreshToken": pair.RefreshToken})
}

// Profile is the public profile page: the user, their rooms with scores,
// their recent comments, and their mentor profile when one exists. Gated
// content is filtered for the viewer, not the profile owner.
func (h *UserHandler) Profile(c *gin.Context) {
	viewerID := userIDFromCtx(c)
	profileID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || profileID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid user id"})
		return
	}

	user, err := h.users.FindByID(profileID)
	if err != nil {
		respondErr(c, err)
		return
	}
	rooms, err := h.rooms.ListRoomsByHost(viewerID, profileID)
	if err != nil {
		respondErr(c, err)
		return
	}
	comments, err := h.rooms.ActivityByUser(viewerID, profileID)
	if err != nil {
		respondErr(c, err)
		return
	}
	mentorProfile, err := h.mentors.Get(profileID)
	if err != nil {
		respondErr(c, err)
		return
	}

	resp := gin.H{
		"user":     user,
		"rooms":    roomSummaries(rooms),
		"comments": comments,
	}
	if mentorProfile != nil {
		resp["mentor_profile"] = gin.H{
			"is_available":   mentorProfile.IsAvailable,
			"is_seeking":     mentorProfile.IsSeeking,
			"mentor_topics":  mentorProfile.MentorTopicList(),
			"seeking_topics": mentorProfile.SeekingTopicList(),
			"experience":     mentorProfile.Experience,
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req UpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	user, err := h.users.UpdateProfile(userIDFromCtx(c), req.Name, req.Username, req.Email, req.Bio, req.Avatar)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// DemoSubscribe enables the demo paid flag; there is no payment step.
func (h *UserHandler) DemoSubscribe(c *gin.Context) {
	if err := h.users.SetPaid(userIDFromCtx(c), true); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "demo paid access enabled"})
}

func (h *UserHandler) DemoUnsubscribe(c *gin.Context) {
	if err := h.users.SetPaid(userIDFromCtx(c), false); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "demo paid access disabled"})
}
