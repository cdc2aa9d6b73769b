package mysql

import (
	"campushub/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoomRepository struct {
	DB *gorm.DB
}

// RoomListOpts narrows the room listing. IncludePremium is false for
// non-paid viewers; the gated category is filtered out at the query.
type RoomListOpts struct {
	Query          string
	TopicSlug      string
	HostID         uint64
	IncludePremium bool
	Limit          int
}

func (r *RoomRepository) Create(room *model.Room) error {
	return r.DB.Create(room).Error
}

func (r *RoomRepository) FindByID(id uint64) (*model.Room, error) {
	var room model.Room
	err := r.DB.Preload("Topic").Preload("Host").First(&room, id).Error
	return &room, err
}

func (r *RoomRepository) Update(room *model.Room) error {
	return r.DB.Model(room).Select("name", "topic_id", "description", "attachment").
		Updates(map[string]any{
			"name":        room.Name,
			"topic_id":    room.TopicID,
			"description": room.Description,
			"attachment":  room.Attachment,
		}).Error
}

// Delete removes the room and everything hanging off it in one transaction.
func (r *RoomRepository) Delete(id uint64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ?", id).Delete(&model.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("room_id = ?", id).Delete(&model.PostVote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("room_id = ?", id).Delete(&model.RoomParticipant{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Room{}, id).Error
	})
}

func (r *RoomRepository) List(opts RoomListOpts) ([]model.Room, error) {
	if opts.Limit <= 0 || opts.Limit > 100 {
		opts.Limit = 50
	}
	q := r.DB.Model(&model.Room{}).
		Joins("LEFT JOIN topics ON topics.id = rooms.topic_id")

	if !opts.IncludePremium {
		q = q.Where("topics.slug IS NULL OR topics.slug <> ?", model.PremiumTopicSlug)
	}
	if opts.TopicSlug != "" {
		q = q.Where("topics.slug = ?", opts.TopicSlug)
	}
	if opts.HostID != 0 {
		q = q.Where("rooms.host_id = ?", opts.HostID)
	}
	if opts.Query != "" {
		pattern := "%" + opts.Query + "%"
		q = q.Where("rooms.name LIKE ? OR rooms.description LIKE ? OR topics.name LIKE ?",
			pattern, pattern, pattern)
	}

	var list []model.Room
	err := q.Preload("Topic").Preload("Host").
		Order("rooms.created_at DESC").
		Limit(opts.Limit).
		Find(&list).Error
	return list, err
}

// AddParticipant enrolls a user idempotently; re-adding is a no-op.
func (r *RoomRepository) AddParticipant(tx *gorm.DB, roomID, userID uint64) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "room_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(&model.RoomParticipant{RoomID: roomID, UserID: userID}).Error
}

func (r *RoomRepository) ListParticipants(roomID uint64) ([]model.User, error) {
	var list []model.User
	err := r.DB.Model(&model.User{}).
		Joins("JOIN room_participants ON room_participants.user_id = users.id").
		Where("room_participants.room_id = ?", roomID).
		Find(&list).Error
	return list, err
}
