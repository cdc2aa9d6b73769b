package service

import (
	"context"
	"errors"
	"time"

	"campushub/internal/access"
	"campushub/internal/model"
	"campushub/internal/repository/mysql"
	rediscache "campushub/internal/repository/redis"

	"gorm.io/gorm"
)

var ErrInvalidDirection = errors.New("direction must be up or down")

type VoteService struct {
	repo  *mysql.VoteRepository
	rooms *mysql.RoomRepository
	users *mysql.UserRepository

	// optional; nil means every read goes to the database
	cache *rediscache.ScoreCacheRepository
}

func NewVoteService(db *gorm.DB, cache *rediscache.ScoreCacheRepository) *VoteService {
	return &VoteService{
		repo:  &mysql.VoteRepository{DB: db},
		rooms: &mysql.RoomRepository{DB: db},
		users: &mysql.UserRepository{DB: db},
		cache: cache,
	}
}

// Vote applies the toggle: same direction removes, opposite overwrites.
// Returns the caller's resulting vote value and the room's new score.
func (s *VoteService) Vote(ctx context.Context, userID, roomID uint64, direction string) (int, int64, error) {
	var value int
	switch direction {
	case "up":
		value = model.VoteUp
	case "down":
		value = model.VoteDown
	default:
		return 0, 0, ErrInvalidDirection
	}

	user, err := s.users.FindByID(userID)
	if err != nil {
		return 0, 0, err
	}
	room, err := s.rooms.FindByID(roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, 0, ErrRoomNotFound
		}
		return 0, 0, err
	}
	if !access.CanAccessRoom(user, room) {
		return 0, 0, ErrPremiumRequired
	}

	final, err := s.repo.Toggle(ctx, userID, roomID, value)
	if err != nil {
		return 0, 0, err
	}
	if s.cache != nil {
		_ = s.cache.Delete(ctx, roomID, 200*time.Millisecond)
	}
	score, err := s.Score(ctx, roomID)
	if err != nil {
		return 0, 0, err
	}
	return final, score, nil
}

// Score reads the cached aggregate, falling back to the database sum and
// backfilling on a miss.
func (s *VoteService) Score(ctx context.Context, roomID uint64) (int64, error) {
	if s.cache != nil {
		if score, hit, err := s.cache.Get(ctx, roomID); err == nil && hit {
			return score, nil
		}
	}
	score, err := s.repo.Score(roomID)
	if err != nil {
		return 0, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, roomID, score)
	}
	return score, nil
}
