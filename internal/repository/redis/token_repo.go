package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrTokenNotFound    = errors.New("token not found")
	ErrRedisUnavailable = errors.New("redis unavailable")
	ErrExtendFailed     = errors.New("token extend failed")
	ErrTokenDeleted     = errors.New("token delete failed")
)

const (
	userTokenPrefix = "login:user:token"
	userTokenExpire = 30 * time.Minute
)

// TokenRepository holds the single active access token per user; logging in
// elsewhere replaces it.
type TokenRepository struct{}

func (r *TokenRepository) Add(userID uint64, token string) error {
	key := fmt.Sprintf("%s:%d", userTokenPrefix, userID)
	if err := Client.Set(context.Background(), key, token, userTokenExpire).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}

func (r *TokenRepository) Get(userID uint64) (string, error) {
	key := fmt.Sprintf("%s:%d", userTokenPrefix, userID)
	token, err := Client.Get(context.Background(), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", ErrRedisUnavailable
	}
	return token, nil
}

func (r *TokenRepository) Extend(userID uint64) error {
	key := fmt.Sprintf("%s:%d", userTokenPrefix, userID)
	if _, err := Client.Expire(context.Background(), key, userTokenExpire).Result(); err != nil {
		return ErrExtendFailed
	}
	return nil
}

func (r *TokenRepository) Delete(userID uint64) error {
	key := fmt.Sprintf("%s:%d", userTokenPrefix, userID)
	if err := Client.Del(context.Background(), key).Err(); err != nil {
		return ErrTokenDeleted
	}
	return nil
}
