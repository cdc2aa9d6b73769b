package model

import "time"

// Room is a categorized post. Host and topic are nullable: deleting either
// nulls the reference but keeps the room.
type Room struct {
	ID          uint64  `gorm:"primaryKey"`
	HostID      *uint64 `gorm:"index"`
	TopicID     *uint64 `gorm:"index"`
	Name        string  `gorm:"size:200;not null"`
	Description string  `gorm:"type:text"`
	Attachment  string  `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Host  *User  `gorm:"constraint:OnDelete:SET NULL"`
	Topic *Topic `gorm:"constraint:OnDelete:SET NULL"`
}

// RoomParticipant records room membership. Commenting auto-enrolls;
// re-adding an existing participant is a no-op.
type RoomParticipant struct {
	ID        uint64 `gorm:"primaryKey"`
	RoomID    uint64 `gorm:"not null;index;uniqueIndex:uk_room_user"`
	UserID    uint64 `gorm:"not null;index;uniqueIndex:uk_room_user"`
	CreatedAt time.Time
}

func (RoomParticipant) TableName() string { return "room_participants" }
