package model

import (
	"strings"
	"time"
)

// MentorProfile is a one-per-user opt-in directory listing. Topic lists are
// stored as comma-separated text and parsed on read.
type MentorProfile struct {
	ID            uint64 `gorm:"primaryKey"`
	UserID        uint64 `gorm:"not null;uniqueIndex"`
	IsAvailable   bool   `gorm:"not null;default:false"`
	IsSeeking     bool   `gorm:"not null;default:false"`
	MentorTopics  string `gorm:"type:text"`
	SeekingTopics string `gorm:"type:text"`
	Experience    string `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	User *User `gorm:"constraint:OnDelete:CASCADE"`
}

func (MentorProfile) TableName() string { return "mentor_profiles" }

func (p *MentorProfile) MentorTopicList() []string {
	return splitTopics(p.MentorTopics)
}

func (p *MentorProfile) SeekingTopicList() []string {
	return splitTopics(p.SeekingTopics)
}

func splitTopics(raw string) []string {
	var out []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
