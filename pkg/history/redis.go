package history

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/snapkit/snapcard/pkg/errors"
)

// redisKey is the list holding JSON-encoded snaps, newest at the head.
const redisKey = "snapcard:history"

// RedisStore persists history in a Redis list. LPUSH keeps the newest entry
// at the head and LTRIM enforces the cap in the same round trip, so the
// list never grows past MaxEntries even under concurrent writers.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis at addr and verifies the connection.
func NewRedisStore(ctx context.Context, addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connect to redis at %s", addr)
	}
	return &RedisStore{client: client}, nil
}

// Add pushes the snap to the head of the list and trims to the cap.
func (r *RedisStore) Add(ctx context.Context, s Snap) error {
	if err := s.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(s)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "encode snap")
	}

	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, redisKey, data)
	pipe.LTrim(ctx, redisKey, 0, MaxEntries-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "store snap")
	}
	return nil
}

// List returns all entries, newest first.
func (r *RedisStore) List(ctx context.Context) ([]Snap, error) {
	items, err := r.client.LRange(ctx, redisKey, 0, MaxEntries-1).Result()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list history")
	}

	snaps := make([]Snap, 0, len(items))
	for _, item := range items {
		var s Snap
		if err := json.Unmarshal([]byte(item), &s); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStore, err, "parse history entry")
		}
		snaps = append(snaps, s)
	}
	return snaps, nil
}

// Get returns the entry with the given ID.
func (r *RedisStore) Get(ctx context.Context, id string) (Snap, error) {
	snaps, err := r.List(ctx)
	if err != nil {
		return Snap{}, err
	}
	for _, s := range snaps {
		if s.ID == id {
			return s, nil
		}
	}
	return Snap{}, notFound(id)
}

// Delete removes the entry with the given ID. Redis lists have no
// delete-by-predicate, so the matching element is removed by value.
func (r *RedisStore) Delete(ctx context.Context, id string) error {
	s, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	data, err := json.Marshal(s)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "encode snap")
	}
	if err := r.client.LRem(ctx, redisKey, 1, data).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "delete snap")
	}
	return nil
}

// Close closes the Redis connection.
func (r *RedisStore) Close() error {
	return r.client.Close()
}

var _ Store = (*RedisStore)(nil)
