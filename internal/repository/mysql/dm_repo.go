package mysql

import (
	"context"
	"encoding/json"
	"time"

	"campushub/internal/model"

	"gorm.io/gorm"
)

type DirectMessageRepository struct {
	DB *gorm.DB

	// Outbox enables the notification event write. Off when no broker is
	// configured, so pending rows cannot pile up with no relayer to drain
	// them.
	Outbox bool
}

// ConversationSummary is one inbox row: the counterparty, the latest message
// either way, and how many of their messages the viewer has not read yet.
type ConversationSummary struct {
	User        model.User
	LastMessage model.DirectMessage
	UnreadCount int64
}

// Create stores the message and, when the outbox is enabled, a notification
// event row in the same transaction so the relayer never sees an event
// without its message.
func (r *DirectMessageRepository) Create(dm *model.DirectMessage) error {
	if !r.Outbox {
		return r.DB.Create(dm).Error
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(dm).Error; err != nil {
			return err
		}
		payload, _ := json.Marshal(map[string]any{
			"event_time": time.Now().UTC().Format(time.RFC3339Nano),
			"message_id": dm.ID,
			"sender":     dm.SenderID,
			"receiver":   dm.ReceiverID,
		})
		return tx.Create(&model.NotificationOutbox{
			EventType: "dm_sent",
			SenderID:  dm.SenderID,
			TargetID:  dm.ReceiverID,
			Payload:   string(payload),
		}).Error
	})
}

// Conversation returns every message between the pair, oldest first.
func (r *DirectMessageRepository) Conversation(userA, userB uint64) ([]model.DirectMessage, error) {
	var list []model.DirectMessage
	err := r.DB.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Order("created_at ASC, id ASC").
		Find(&list).Error
	return list, err
}

// MarkRead flips is_read on the counterparty's unread messages to the viewer,
// and only those.
func (r *DirectMessageRepository) MarkRead(viewerID, counterpartyID uint64) error {
	return r.DB.Model(&model.DirectMessage{}).
		Where("receiver_id = ? AND sender_id = ? AND is_read = ?", viewerID, counterpartyID, false).
		Update("is_read", true).Error
}

// Inbox folds the user's sent and received messages into one summary per
// counterparty, newest conversation first. Counterparties only exist through
// messages, so the empty-conversation case cannot arise here.
func (r *DirectMessageRepository) Inbox(ctx context.Context, userID uint64) ([]ConversationSummary, error) {
	var msgs []model.DirectMessage
	err := r.DB.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC, id DESC").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}

	order := make([]uint64, 0)
	latest := make(map[uint64]model.DirectMessage)
	unread := make(map[uint64]int64)
	for _, m := range msgs {
		other := m.SenderID
		if other == userID {
			other = m.ReceiverID
		}
		if _, seen := latest[other]; !seen {
			latest[other] = m
			order = append(order, other)
		}
		if m.ReceiverID == userID && !m.IsRead {
			unread[other]++
		}
	}
	if len(order) == 0 {
		return nil, nil
	}

	var users []model.User
	if err := r.DB.WithContext(ctx).Where("id IN ?", order).Find(&users).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint64]model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	summaries := make([]ConversationSummary, 0, len(order))
	for _, id := range order {
		u, ok := byID[id]
		if !ok {
			continue
		}
		summaries = append(summaries, ConversationSummary{
			User:        u,
			LastMessage: latest[id],
			UnreadCount: unread[id],
		})
	}
	return summaries, nil
}

// UnreadTotal backs the navbar badge.
func (r *DirectMessageRepository) UnreadTotal(userID uint64) (int64, error) {
	var n int64
	err := r.DB.Model(&model.DirectMessage{}).
		Where("receiver_id = ? AND is_read = ?", userID, false).
		Count(&n).Error
	return n, err
}
