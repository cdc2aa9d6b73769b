package model

import "time"

const (
	AffiliationStudent = "STUDENT"
	AffiliationAlumni  = "ALUMNI"
)

type User struct {
	ID          uint64 `gorm:"primaryKey"`
	Username    string `gorm:"uniqueIndex;size:32;not null"`
	Password    string `gorm:"size:255;not null" json:"-"`
	Email       string `gorm:"uniqueIndex;size:64;not null"`
	Name        string `gorm:"size:200"`
	Bio         string `gorm:"type:text"`
	Avatar      string `gorm:"size:255;default:'avatar.svg'"`
	Affiliation string `gorm:"size:20;not null;default:'STUDENT'"`
	IsPaid      bool   `gorm:"not null;default:false"`
	Role        int    `gorm:"default:0"` // 0=member, 1=admin
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
