package mysql

import (
	"campushub/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TopicRepository struct {
	DB *gorm.DB
}

func (r *TopicRepository) FindByID(id uint64) (*model.Topic, error) {
	var topic model.Topic
	err := r.DB.First(&topic, id).Error
	return &topic, err
}

func (r *TopicRepository) FindBySlug(slug string) (*model.Topic, error) {
	var topic model.Topic
	err := r.DB.Where("slug = ?", slug).First(&topic).Error
	return &topic, err
}

func (r *TopicRepository) List() ([]model.Topic, error) {
	var list []model.Topic
	err := r.DB.Order("name ASC").Find(&list).Error
	return list, err
}

// Seed inserts the curated category set, skipping slugs that already exist.
func (r *TopicRepository) Seed(topics []model.Topic) error {
	if len(topics) == 0 {
		return nil
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoNothing: true,
	}).Create(&topics).Error
}
