package model

import "time"

const (
	VoteUp   = 1
	VoteDown = -1
)

// PostVote holds at most one row per (user, room); the unique index is the
// source of truth under concurrent toggles.
type PostVote struct {
	ID        uint64 `gorm:"primaryKey"`
	UserID    uint64 `gorm:"not null;index;uniqueIndex:uk_user_room"`
	RoomID    uint64 `gorm:"not null;index;uniqueIndex:uk_user_room"`
	Value     int    `gorm:"not null"`
	CreatedAt time.Time
}

func (PostVote) TableName() string { return "post_votes" }
