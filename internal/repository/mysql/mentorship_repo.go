package mysql

import (
	"campushub/internal/model"

	"gorm.io/gorm"
)

type MentorshipRepository struct {
	DB *gorm.DB
}

func (r *MentorshipRepository) FindByUser(userID uint64) (*model.MentorProfile, error) {
	var profile model.MentorProfile
	err := r.DB.Where("user_id = ?", userID).First(&profile).Error
	return &profile, err
}

// GetOrCreate backs the lazy profile: the row appears on first edit.
func (r *MentorshipRepository) GetOrCreate(userID uint64) (*model.MentorProfile, error) {
	var profile model.MentorProfile
	err := r.DB.Where(model.MentorProfile{UserID: userID}).
		FirstOrCreate(&profile).Error
	return &profile, err
}

func (r *MentorshipRepository) Save(profile *model.MentorProfile) error {
	return r.DB.Model(profile).Select(
		"is_available", "is_seeking", "mentor_topics", "seeking_topics", "experience",
	).Updates(map[string]any{
		"is_available":   profile.IsAvailable,
		"is_seeking":     profile.IsSeeking,
		"mentor_topics":  profile.MentorTopics,
		"seeking_topics": profile.SeekingTopics,
		"experience":     profile.Experience,
	}).Error
}

// DeleteByUser is idempotent; deleting a missing profile is not an error.
func (r *MentorshipRepository) DeleteByUser(userID uint64) error {
	return r.DB.Where("user_id = ?", userID).Delete(&model.MentorProfile{}).Error
}

func (r *MentorshipRepository) ListMentors() ([]model.MentorProfile, error) {
	var list []model.MentorProfile
	err := r.DB.Preload("User").
		Where("is_available = ?", true).
		Order("updated_at DESC").
		Find(&list).Error
	return list, err
}

func (r *MentorshipRepository) ListSeekers() ([]model.MentorProfile, error) {
	var list []model.MentorProfile
	err := r.DB.Preload("User").
		Where("is_seeking = ?", true).
		Order("updated_at DESC").
		Find(&list).Error
	return list, err
}
