package mysql

import (
	"campushub/internal/model"

	"gorm.io/gorm"
)

type MessageRepository struct {
	DB *gorm.DB
}

// Create writes the comment and enrolls the author as a participant in the
// same transaction.
func (r *MessageRepository) Create(msg *model.Message) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}
		roomRepo := &RoomRepository{DB: tx}
		return roomRepo.AddParticipant(tx, msg.RoomID, msg.UserID)
	})
}

func (r *MessageRepository) FindByID(id uint64) (*model.Message, error) {
	var msg model.Message
	err := r.DB.Preload("Room").Preload("Room.Topic").First(&msg, id).Error
	return &msg, err
}

func (r *MessageRepository) Delete(id uint64) error {
	return r.DB.Delete(&model.Message{}, id).Error
}

func (r *MessageRepository) ListByRoom(roomID uint64) ([]model.Message, error) {
	var list []model.Message
	err := r.DB.Preload("User").
		Where("room_id = ?", roomID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

// ListRecent is the activity feed. The gated category is excluded for
// non-paid viewers.
func (r *MessageRepository) ListRecent(userID uint64, includePremium bool, limit int) ([]model.Message, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	q := r.DB.Model(&model.Message{}).
		Joins("JOIN rooms ON rooms.id = messages.room_id").
		Joins("LEFT JOIN topics ON topics.id = rooms.topic_id")
	if userID != 0 {
		q = q.Where("messages.user_id = ?", userID)
	}
	if !includePremium {
		q = q.Where("topics.slug IS NULL OR topics.slug <> ?", model.PremiumTopicSlug)
	}
	var list []model.Message
	err := q.Preload("User").Preload("Room").
		Order("messages.created_at DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}
