package model

import "time"

// InvitationCode is a single-use token permitting alumni registration.
// used_at flips null -> set exactly once, inside the registration transaction.
type InvitationCode struct {
	ID        uint64 `gorm:"primaryKey"`
	Code      string `gorm:"uniqueIndex;size:64;not null"`
	IsActive  bool   `gorm:"not null;default:true"`
	CreatedBy *uint64
	UsedBy    *uint64
	UsedAt    *time.Time
	CreatedAt time.Time
}

func (InvitationCode) TableName() string { return "invitation_codes" }
