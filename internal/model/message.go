package model

import "time"

// Message is a comment on a room. Cascades with the room and the author.
type Message struct {
	ID         uint64 `gorm:"primaryKey"`
	UserID     uint64 `gorm:"not null;index"`
	RoomID     uint64 `gorm:"not null;index"`
	Body       string `gorm:"type:text;not null"`
	Attachment string `gorm:"size:255"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	User *User `gorm:"constraint:OnDelete:CASCADE"`
	Room *Room `gorm:"constraint:OnDelete:CASCADE"`
}
