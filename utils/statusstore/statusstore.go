package statusstore

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/moodfeed/tslamood/config"
)

const (
	// Redis only has string type, there is no boolean or int, so we use "1" to represent true
	RedisTrue = "1"

	// Seen markers outlive any reasonable re-collection window.
	seenKeyTTL = 14 * 24 * time.Hour
)

// RedisStatusStore tracks cross-run collection state: when each source last
// ran, and which record ids have already been pushed downstream. It is
// optional; without Redis every run starts from a blank slate.
type RedisStatusStore struct {
	inner *redis.Client
}

func NewRedisStatusStore(cfg config.RedisConfig) (*RedisStatusStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}
	return &RedisStatusStore{inner: client}, nil
}

func lastRunKey(sourceId string) string {
	return fmt.Sprintf("lastrun__%s", sourceId)
}

func seenKey(sourceId, recordId string) string {
	return fmt.Sprintf("seen__%s__%s", sourceId, recordId)
}

// MarkRun records the moment a source finished a collection run.
func (s *RedisStatusStore) MarkRun(ctx context.Context, sourceId string, at time.Time) error {
	return s.inner.Set(ctx, lastRunKey(sourceId), at.UTC().Format(time.RFC3339), 0).Err()
}

// LastRun returns when the source last ran, or the zero time if it never has.
func (s *RedisStatusStore) LastRun(ctx context.Context, sourceId string) (time.Time, error) {
	val, err := s.inner.Get(ctx, lastRunKey(sourceId)).Result()
	if err == redis.Nil {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, val)
}

// MarkSeen flags a record id as already pushed for the source.
func (s *RedisStatusStore) MarkSeen(ctx context.Context, sourceId, recordId string) error {
	return s.inner.Set(ctx, seenKey(sourceId, recordId), RedisTrue, seenKeyTTL).Err()
}

// IsSeen reports whether the record id was pushed in a previous run.
func (s *RedisStatusStore) IsSeen(ctx context.Context, sourceId, recordId string) (bool, error) {
	val, err := s.inner.Get(ctx, seenKey(sourceId, recordId)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return val == RedisTrue, nil
}
