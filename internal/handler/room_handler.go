package handler

import (
	"net/http"
	"os"
	"strconv"

	"campushub/internal/model"
	"campushub/internal/pkg"
	"campushub/internal/service"

	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	rooms  *service.RoomService
	msgs   *service.MessageService
	policy pkg.UploadPolicy
}

func NewRoomHandler(rooms *service.RoomService, msgs *service.MessageService, policy pkg.UploadPolicy) *RoomHandler {
	return &RoomHandler{rooms: rooms, msgs: msgs, policy: policy}
}

func roomSummaries(list []service.RoomSummary) []gin.H {
	out := make([]gin.H, len(list))
	for i, rs := range list {
		out[i] = gin.H{
			"room":  rs.Room,
			"score": rs.Score,
		}
	}
	return out
}

// Home is the filterable room listing: q for free text, topic for a category
// slug.
func (h *RoomHandler) Home(c *gin.Context) {
	list, err := h.rooms.ListRooms(userIDFromCtx(c), c.Query("q"), c.Query("topic"))
	if err != nil {
		respondErr(c, err)
		return
	}

	topics, err := h.rooms.Topics(userIDFromCtx(c))
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rooms":      roomSummaries(list),
		"topics":     topics,
		"room_count": len(list),
	})
}

func (h *RoomHandler) GetRoom(c *gin.Context) {
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
		"messages":     detail.Messages,
		"participants": detail.Participants,
		"score":        detail.Score,
		"user_vote":    detail.UserVote,
	})
}

// PostComment appends a comment; an attachment rides along only in study
// material categories and is validated before anything is written.
func (h *RoomHandler) PostComment(c *gin.Context) {
	roomID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || roomID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid room id"})
		return
	}

	body := c.PostForm("body")
	attachment, err := h.saveOptionalAttachment(c, "comment_attachments", func() (*model.Topic, error) {
		room, err := h.msgs.RoomForComment(roomID)
		if err != nil {
			return nil, err
		}
		return room.Topic, nil
	})
	if err != nil {
		respondErr(c, err)
		return
	}

	msg, err := h.msgs.AddComment(userIDFromCtx(c), roomID, body, attachment)
	if err != nil {
		h.discardAttachment(attachment)
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": msg.ID})
}

func (h *RoomHandler) CreateRoom(c *gin.Context) {
	topicID, _ := strconv.ParseUint(c.PostForm("topic"), 10, 64)
	topic, err := h.rooms.TopicForWrite(userIDFromCtx(c), topicID)
	if err != nil {
		respondErr(c, err)
		return
	}

	attachment, err := h.saveOptionalAttachment(c, "attachments", func() (*model.Topic, error) {
		return topic, nil
	})
	if err != nil {
		respondErr(c, err)
		return
	}

	room, err := h.rooms.CreateRoom(userIDFromCtx(c), topic,
		c.PostForm("name"), c.PostForm("description"), attachment)
	if err != nil {
		h.discardAttachment(attachment)
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": room.ID, "name": room.Name})
}

func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	roomID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || roomID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid room id"})
		return
	}

	topicID, _ := strconv.ParseUint(c.PostForm("topic"), 10, 64)
	topic, err := h.rooms.TopicForWrite(userIDFromCtx(c), topicID)
	if err != nil {
		respondErr(c, err)
		return
	}

	attachment, err := h.saveOptionalAttachment(c, "attachments", func() (*model.Topic, error) {
		return topic, nil
	})
	if err != nil {
		respondErr(c, err)
		return
	}

	room, err := h.rooms.UpdateRoom(userIDFromCtx(c), roomID, topic,
		c.PostForm("name"), c.PostForm("description"), attachment)
	if err != nil {
		h.discardAttachment(attachment)
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": room.ID, "name": room.Name})
}

func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	roomID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || roomID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid room id"})
		return
	}
	if err := h.rooms.DeleteRoom(userIDFromCtx(c), roomID); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "deleted"})
}

func (h *RoomHandler) DeleteMessage(c *gin.Context) {
	msgID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || msgID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid message id"})
		return
	}
	if err := h.msgs.DeleteComment(userIDFromCtx(c), msgID); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "deleted"})
}

func (h *RoomHandler) Topics(c *gin.Context) {
	topics, err := h.rooms.Topics(userIDFromCtx(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"topics": topics})
}

func (h *RoomHandler) Activity(c *gin.Context) {
	msgs, err := h.rooms.Activity(userIDFromCtx(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

// saveOptionalAttachment validates and stores an uploaded document, after
// checking the target category allows attachments at all. Type is checked
// before size; both before any write. No file means no error.
func (h *RoomHandler) saveOptionalAttachment(c *gin.Context, subdir string, topicFn func() (*model.Topic, error)) (string, error) {
	fh, err := c.FormFile("attachment")
	if err != nil {
		return "", nil // no attachment submitted
	}
	topic, err := topicFn()
	if err != nil {
		return "", err
	}
	if topic == nil || !topic.IsStudyMaterial() {
		return "", service.ErrAttachmentCategory
	}
	if err := h.policy.Validate(fh); err != nil {
		return "", err
	}
	return h.policy.Save(c, fh, subdir)
}

// discardAttachment removes a stored upload whose owning write was rejected;
// a failed submission must leave no file behind.
func (h *RoomHandler) discardAttachment(path string) {
	if path != "" {
		_ = os.Remove(path)
	}
}
