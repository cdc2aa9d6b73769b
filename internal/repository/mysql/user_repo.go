package mysql

import (
	"campushub/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint64) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("username = ?", username).First(&user).Error
	return &user, err
}

// UpdateProfile writes the self-editable fields only.
func (r *UserRepository) UpdateProfile(user *model.User) error {
	return r.DB.Model(user).Select("name", "username", "email", "bio", "avatar").
		Updates(map[string]any{
			"name":     user.Name,
			"username": user.Username,
			"email":    user.Email,
			"bio":      user.Bio,
			"avatar":   user.Avatar,
		}).Error
}

func (r *UserRepository) SetPaid(userID uint64, paid bool) error {
	return r.DB.Model(&model.User{}).Where("id = ?", userID).
		Update("is_paid", paid).Error
}

// Search matches username, name or email for counterparty lookup.
func (r *UserRepository) Search(q string, excludeID uint64, limit int) ([]model.User, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	var list []model.User
	pattern := "%" + q + "%"
	err := r.DB.
		Where("id <> ?", excludeID).
		Where("username LIKE ? OR name LIKE ? OR email LIKE ?", pattern, pattern, pattern).
		Order("username ASC").
		Limit(limit).
		Find(&list).Error
	return list, err
}
