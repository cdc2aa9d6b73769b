package service

import (
	"context"
	"errors"
	"strings"

	"campushub/internal/model"
	"campushub/internal/repository/mysql"

	"gorm.io/gorm"
)

var (
	ErrSelfMessage     = errors.New("cannot message yourself")
	ErrContentEmpty    = errors.New("message content is required")
	ErrCounterpartGone = errors.New("recipient not found")
)

type DirectMessageService struct {
	repo  *mysql.DirectMessageRepository
	users *mysql.UserRepository
}

// NewDirectMessageService wires the repository; notify controls whether sent
// messages also produce notification outbox events.
func NewDirectMessageService(db *gorm.DB, notify bool) *DirectMessageService {
	return &DirectMessageService{
		repo:  &mysql.DirectMessageRepository{DB: db, Outbox: notify},
		users: &mysql.UserRepository{DB: db},
	}
}

// ConversationView is the thread page: the counterparty plus every message of
// the unordered pair, oldest first.
type ConversationView struct {
	With     model.User
	Messages []model.DirectMessage
}

func (s *DirectMessageService) Send(senderID, receiverID uint64, content string) (*model.DirectMessage, error) {
	if senderID == receiverID {
		return nil, ErrSelfMessage
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrContentEmpty
	}
	if _, err := s.users.FindByID(receiverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCounterpartGone
		}
		return nil, err
	}
	dm := &model.DirectMessage{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}
	if err := s.repo.Create(dm); err != nil {
		return nil, err
	}
	return dm, nil
}

func (s *DirectMessageService) Inbox(ctx context.Context, userID uint64) ([]mysql.ConversationSummary, error) {
	return s.repo.Inbox(ctx, userID)
}

// Conversation opens the thread with one counterparty. Reading it marks their
// unread messages read as a side effect, before the fetch, so the returned
// thread reflects the viewer's state.
func (s *DirectMessageService) Conversation(viewerID, otherID uint64) (*ConversationView, error) {
	other, err := s.users.FindByID(otherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCounterpartGone
		}
		return nil, err
	}
	if err := s.repo.MarkRead(viewerID, otherID); err != nil {
		return nil, err
	}
	msgs, err := s.repo.Conversation(viewerID, otherID)
	if err != nil {
		return nil, err
	}
	return &ConversationView{With: *other, Messages: msgs}, nil
}

func (s *DirectMessageService) UnreadTotal(userID uint64) (int64, error) {
	return s.repo.UnreadTotal(userID)
}
