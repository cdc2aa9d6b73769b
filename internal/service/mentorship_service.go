package service

import (
	"errors"

	"campushub/internal/model"
	"campushub/internal/repository/mysql"

	"gorm.io/gorm"
)

type MentorshipService struct {
	repo *mysql.MentorshipRepository
}

func NewMentorshipService(db *gorm.DB) *MentorshipService {
	return &MentorshipService{repo: &mysql.MentorshipRepository{DB: db}}
}

// Directory lists mentors and seekers independently; a profile with both
// flags set appears in both lists.
type Directory struct {
	Mentors []model.MentorProfile
	Seekers []model.MentorProfile
}

// Get returns the user's profile, or nil when they have none yet.
func (s *MentorshipService) Get(userID uint64) (*model.MentorProfile, error) {
	profile, err := s.repo.FindByUser(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// Upsert creates the profile lazily on first edit and overwrites it after.
func (s *MentorshipService) Upsert(userID uint64, available, seeking bool, mentorTopics, seekingTopics, experience string) (*model.MentorProfile, error) {
	profile, err := s.repo.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}
	profile.IsAvailable = available
	profile.IsSeeking = seeking
	profile.MentorTopics = mentorTopics
	profile.SeekingTopics = seekingTopics
	profile.Experience = experience
	if err := s.repo.Save(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Delete removes the listing entirely; the user disappears from the
// directory until they edit again.
func (s *MentorshipService) Delete(userID uint64) error {
	return s.repo.DeleteByUser(userID)
}

func (s *MentorshipService) Directory() (*Directory, error) {
	mentors, err := s.repo.ListMentors()
	if err != nil {
		return nil, err
	}
	seekers, err := s.repo.ListSeekers()
	if err != nil {
		return nil, err
	}
	return &Directory{Mentors: mentors, Seekers: seekers}, nil
}
