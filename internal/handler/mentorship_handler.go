package handler

import (
	"net/http"

	"campushub/internal/model"
	"campushub/internal/service"

	"github.com/gin-gonic/gin"
)

type MentorshipHandler struct {
	mentors *service.MentorshipService
}

type MentorProfileReq struct {
	IsAvailable   bool   `json:"is_available"`
	IsSeeking     bool   `json:"is_seeking"`
	MentorTopics  string `json:"mentor_topics"`
	SeekingTopics string `json:"seeking_topics"`
	Experience    string `json:"experience"`
}

func NewMentorshipHandler(mentors *service.MentorshipService) *MentorshipHandler {
	return &MentorshipHandler{mentors: mentors}
}

func profileJSON(p *model.MentorProfile) gin.H {
	return gin.H{
		"user_id":        p.UserID,
		"is_available":   p.IsAvailable,
		"is_seeking":     p.IsSeeking,
		"mentor_topics":  p.MentorTopicList(),
		"seeking_topics": p.SeekingTopicList(),
		"experience":     p.Experience,
	}
}

// GetProfile returns the caller's own mentorship listing, if any.
func (h *MentorshipHandler) GetProfile(c *gin.Context) {
	profile, err := h.mentors.Get(userIDFromCtx(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	if profile == nil {
		c.JSON(http.StatusOK, gin.H{"profile": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profileJSON(profile)})
}

// UpdateProfile creates the profile on first edit and overwrites after.
func (h *MentorshipHandler) UpdateProfile(c *gin.Context) {
	var req MentorProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	profile, err := h.mentors.Upsert(userIDFromCtx(c),
		req.IsAvailable, req.IsSeeking, req.MentorTopics, req.SeekingTopics, req.Experience)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profileJSON(profile)})
}

func (h *MentorshipHandler) DeleteProfile(c *gin.Context) {
	if err := h.mentors.Delete(userIDFromCtx(c)); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "deleted"})
}

// Directory lists mentors and seekers independently.
func (h *MentorshipHandler) Directory(c *gin.Context) {
	dir, err := h.mentors.Directory()
	if err != nil {
		respondErr(c, err)
		return
	}

	mentors := make([]gin.H, len(dir.Mentors))
	for i := range dir.Mentors {
		mentors[i] = profileJSON(&dir.Mentors[i])
	}
	seekers := make([]gin.H, len(dir.Seekers))
	for i := range dir.Seekers {
		seekers[i] = profileJSON(&dir.Seekers[i])
	}
	c.JSON(http.StatusOK, gin.H{"mentors": mentors, "seekers": seekers})
}
