package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	scoreTTL       = 24 * time.Hour
	scoreKeyPrefix = "vote:score:room"
)

// ScoreCacheRepository caches room vote aggregates. Writers delete the key
// after each vote mutation; readers backfill from the database sum.
type ScoreCacheRepository struct {
	ttl time.Duration
}

func NewScoreCacheRepository() *ScoreCacheRepository {
	return &ScoreCacheRepository{ttl: scoreTTL}
}

func (r *ScoreCacheRepository) key(roomID uint64) string {
	return fmt.Sprintf("%s:%d", scoreKeyPrefix, roomID)
}

// Get returns (score, hit, err).
func (r *ScoreCacheRepository) Get(ctx context.Context, roomID uint64) (int64, bool, error) {
	val, err := Client.Get(ctx, r.key(roomID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return val, true, nil
}

func (r *ScoreCacheRepository) Set(ctx context.Context, roomID uint64, score int64) error {
	return Client.Set(ctx, r.key(roomID), score, r.ttl).Err()
}

// Delete invalidates after a vote write; the optional delay schedules a
// second delete to close the concurrent-backfill window.
func (r *ScoreCacheRepository) Delete(ctx context.Context, roomID uint64, delay ...time.Duration) error {
	key := r.key(roomID)
	if err := Client.Del(ctx, key).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	if len(delay) > 0 && delay[0] > 0 {
		d := delay[0]
		go func() {
			t := time.NewTimer(d)
			defer t.Stop()
			<-t.C
			_ = Client.Del(context.Background(), key).Err()
		}()
	}
	return nil
}
