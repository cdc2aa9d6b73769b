package mysql

import (
	"context"
	"errors"

	"campushub/internal/model"

	"gorm.io/gorm"
)

type VoteRepository struct {
	DB *gorm.DB
}

// Toggle applies the vote semantics for one (user, room) pair: same direction
// removes the vote, the opposite direction overwrites it, no vote inserts one.
// The unique (user_id, room_id) index is the source of truth; a lost insert
// race re-derives the final state from the winning row instead of failing.
// Returns the resulting value, 0 meaning neutral.
func (r *VoteRepository) Toggle(ctx context.Context, userID, roomID uint64, value int) (int, error) {
	var final int
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var vote model.PostVote
		err := tx.Where("user_id = ? AND room_id = ?", userID, roomID).First(&vote).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			vote = model.PostVote{UserID: userID, RoomID: roomID, Value: value}
			if err := tx.Create(&vote).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					if err := tx.Where("user_id = ? AND room_id = ?", userID, roomID).
						First(&vote).Error; err != nil {
						return err
					}
					return applyExisting(tx, &vote, value, &final)
				}
				return err
			}
			final = value
			return nil
		}
		if err != nil {
			return err
		}
		return applyExisting(tx, &vote, value, &final)
	})
	return final, err
}

func applyExisting(tx *gorm.DB, vote *model.PostVote, value int, final *int) error {
	if vote.Value == value {
		*final = 0
		return tx.Delete(&model.PostVote{}, vote.ID).Error
	}
	*final = value
	return tx.Model(&model.PostVote{}).Where("id = ?", vote.ID).
		Update("value", value).Error
}

// Score is the aggregate for one room; zero when no votes exist, never null.
func (r *VoteRepository) Score(roomID uint64) (int64, error) {
	var score int64
	err := r.DB.Model(&model.PostVote{}).
		Where("room_id = ?", roomID).
		Select("COALESCE(SUM(value), 0)").
		Scan(&score).Error
	return score, err
}

// ScoreMap batches aggregates for a listing; rooms absent from the result
// have no votes and score zero.
func (r *VoteRepository) ScoreMap(roomIDs []uint64) (map[uint64]int64, error) {
	scores := make(map[uint64]int64, len(roomIDs))
	if len(roomIDs) == 0 {
		return scores, nil
	}
	type row struct {
		RoomID uint64
		Score  int64
	}
	var rows []row
	err := r.DB.Model(&model.PostVote{}).
		Select("room_id, SUM(value) AS score").
		Where("room_id IN ?", roomIDs).
		Group("room_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, rw := range rows {
		scores[rw.RoomID] = rw.Score
	}
	return scores, nil
}

// UserVote returns the caller's current vote for a room, 0 when absent.
func (r *VoteRepository) UserVote(userID, roomID uint64) (int, error) {
	var vote model.PostVote
	err := r.DB.Where("user_id = ? AND room_id = ?", userID, roomID).First(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return vote.Value, nil
}

func (r *VoteRepository) CountForRoom(roomID uint64) (int64, error) {
	var n int64
	err := r.DB.Model(&model.PostVote{}).Where("room_id = ?", roomID).Count(&n).Error
	return n, err
}
