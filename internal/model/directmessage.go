package model

import "time"

// DirectMessage is immutable once created except for the is_read flip.
type DirectMessage struct {
	ID         uint64 `gorm:"primaryKey"`
	SenderID   uint64 `gorm:"not null;index"`
	ReceiverID uint64 `gorm:"not null;index"`
	Content    string `gorm:"type:text;not null"`
	IsRead     bool   `gorm:"not null;default:false"`
	CreatedAt  time.Time

	Sender   *User `gorm:"constraint:OnDelete:CASCADE"`
	Receiver *User `gorm:"constraint:OnDelete:CASCADE"`
}

func (DirectMessage) TableName() string { return "direct_messages" }

// NotificationOutbox buffers direct-message events for the kafka relayer.
// Written in the same transaction as the message itself.
type NotificationOutbox struct {
	ID        uint64 `gorm:"primaryKey"`
	EventType string `gorm:"size:32;not null"` // dm_sent
	SenderID  uint64 `gorm:"not null"`
	TargetID  uint64 `gorm:"not null"`
	Payload   string `gorm:"type:text;not null"`
	Status    int8   `gorm:"not null;default:0"` // 0=pending,1=sent,2=failed
	Retry     int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (NotificationOutbox) TableName() string { return "notification_outbox" }
