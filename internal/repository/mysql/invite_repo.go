package mysql

import (
	"time"

	"campushub/internal/model"

	"gorm.io/gorm"
)

type InviteRepository struct {
	DB *gorm.DB
}

func (r *InviteRepository) Create(code *model.InvitationCode) error {
	return r.DB.Create(code).Error
}

// FindRedeemable returns the code only if it is active and unused.
func (r *InviteRepository) FindRedeemable(code string) (*model.InvitationCode, error) {
	var invite model.InvitationCode
	err := r.DB.Where("code = ? AND is_active = ? AND used_at IS NULL", code, true).
		First(&invite).Error
	return &invite, err
}

// MarkUsed performs the null -> set transition on used_at conditionally; the
// WHERE clause, not a prior read, decides the race. Returns rows affected so
// the caller can fail the surrounding transaction on a double-spend.
func (r *InviteRepository) MarkUsed(tx *gorm.DB, code string, userID uint64) (int64, error) {
	now := time.Now()
	res := tx.Model(&model.InvitationCode{}).
		Where("code = ? AND is_active = ? AND used_at IS NULL", code, true).
		Updates(map[string]any{"used_at": now, "used_by": userID})
	return res.RowsAffected, res.Error
}

func (r *InviteRepository) List(offset, limit int) ([]model.InvitationCode, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var list []model.InvitationCode
	err := r.DB.Order("id DESC").Offset(offset).Limit(limit).Find(&list).Error
	return list, err
}

func (r *InviteRepository) Deactivate(code string) error {
	return r.DB.Model(&model.InvitationCode{}).
		Where("code = ?", code).
		Update("is_active", false).Error
}
