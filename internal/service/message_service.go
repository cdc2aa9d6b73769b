package service

import (
	"errors"
	"strings"

	"campushub/internal/access"
	"campushub/internal/model"
	"campushub/internal/repository/mysql"

	"gorm.io/gorm"
)

var (
	ErrMessageNotFound = errors.New("comment not found")
	ErrBodyRequired    = errors.New("comment body is required")
)

type MessageService struct {
	msgs  *mysql.MessageRepository
	rooms *mysql.RoomRepository
	users *mysql.UserRepository
}

func NewMessageService(db *gorm.DB) *MessageService {
	return &MessageService{
		msgs:  &mysql.MessageRepository{DB: db},
		rooms: &mysql.RoomRepository{DB: db},
		users: &mysql.UserRepository{DB: db},
	}
}

// AddComment appends to a room and auto-enrolls the author as a participant.
// Commenting in the gated category requires the paid flag.
func (s *MessageService) AddComment(userID, roomID uint64, body, attachment string) (*model.Message, error) {
	if strings.TrimSpace(body) == "" {
		return nil, ErrBodyRequired
	}
	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	room, err := s.rooms.FindByID(roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if !access.CanAccessRoom(user, room) {
		return nil, ErrPremiumRequired
	}

	msg := &model.Message{
		UserID:     userID,
		RoomID:     roomID,
		Body:       body,
		Attachment: attachment,
	}
	if err := s.msgs.Create(msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// RoomForComment resolves the target room so the handler can gate attachments
// on its category before anything is written.
func (s *MessageService) RoomForComment(roomID uint64) (*model.Room, error) {
	room, err := s.rooms.FindByID(roomID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRoomNotFound
	}
	return room, err
}

// DeleteComment removes a comment; only its author may do so.
func (s *MessageService) DeleteComment(userID, messageID uint64) error {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return err
	}
	msg, err := s.msgs.FindByID(messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMessageNotFound
		}
		return err
	}
	if !access.IsMessageAuthor(user, msg) {
		return ErrNotAuthorized
	}
	return s.msgs.Delete(messageID)
}
