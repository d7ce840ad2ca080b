package toast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps toasts in Redis so they survive process restarts and are
// visible across instances. Records are serialized as JSON in a hash keyed by
// toast ID, with a sorted set preserving insertion order. Action callbacks
// (Action.Fn) do not survive serialization; use Action.URL for actions that
// must round-trip through Redis.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithKeyPrefix namespaces all Redis keys so multiple scopes or applications
// can share one database. Default "toast".
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// NewRedisStore creates a Redis-backed toast store.
func NewRedisStore(client *redis.Client, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{
		client: client,
		prefix: "toast",
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *RedisStore) itemsKey() string { return s.prefix + ":items" }
func (s *RedisStore) orderKey() string { return s.prefix + ":order" }
func (s *RedisStore) seqKey() string   { return s.prefix + ":seq" }

func (s *RedisStore) Insert(ctx context.Context, t Toast) error {
	if t.ID == "" {
		return ErrEmptyID
	}

	raw, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to marshal toast: %w", err)
	}

	seq, err := s.client.Incr(ctx, s.seqKey()).Result()
	if err != nil {
		return fmt.Errorf("failed to allocate order sequence: %w", err)
	}

	// HSetNX makes the duplicate check atomic across processes
	stored, err := s.client.HSetNX(ctx, s.itemsKey(), t.ID, raw).Result()
	if err != nil {
		return fmt.Errorf("failed to store toast: %w", err)
	}
	if !stored {
		return ErrDuplicateID
	}

	if err := s.client.ZAdd(ctx, s.orderKey(), redis.Z{Score: float64(seq), Member: t.ID}).Err(); err != nil {
		return fmt.Errorf("failed to record toast order: %w", err)
	}

	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Toast, error) {
	raw, err := s.client.HGet(ctx, s.itemsKey(), id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrToastNotFound
		}
		return nil, fmt.Errorf("failed to load toast: %w", err)
	}

	var t Toast
	if err := json.Unmarshal([]byte(raw), &t); err != nil {
		return nil, fmt.Errorf("failed to unmarshal toast: %w", err)
	}

	return &t, nil
}

func (s *RedisStore) RemoveByID(ctx context.Context, id string) (*Toast, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrToastNotFound) {
			return nil, nil
		}
		return nil, err
	}

	pipe := s.client.TxPipeline()
	del := pipe.HDel(ctx, s.itemsKey(), id)
	pipe.ZRem(ctx, s.orderKey(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to remove toast: %w", err)
	}

	if del.Val() == 0 {
		// Lost a removal race after the read; treat as absent
		return nil, nil
	}

	return t, nil
}

func (s *RedisStore) RemoveAll(ctx context.Context) ([]string, error) {
	ids, err := s.client.ZRange(ctx, s.orderKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list toast order: %w", err)
	}

	if err := s.client.Del(ctx, s.itemsKey(), s.orderKey(), s.seqKey()).Err(); err != nil {
		return nil, fmt.Errorf("failed to clear toasts: %w", err)
	}

	return ids, nil
}

func (s *RedisStore) List(ctx context.Context) ([]Toast, error) {
	ids, err := s.client.ZRange(ctx, s.orderKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list toast order: %w", err)
	}
	if len(ids) == 0 {
		return []Toast{}, nil
	}

	raws, err := s.client.HMGet(ctx, s.itemsKey(), ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load toasts: %w", err)
	}

	out := make([]Toast, 0, len(raws))
	for _, raw := range raws {
		str, ok := raw.(string)
		if !ok {
			// Removed between the order read and the bulk load
			continue
		}

		var t Toast
		if err := json.Unmarshal([]byte(str), &t); err != nil {
			return nil, fmt.Errorf("failed to unmarshal toast: %w", err)
		}
		out = append(out, t)
	}

	return out, nil
}

func (s *RedisStore) Count(ctx context.Context) (int, error) {
	n, err := s.client.ZCard(ctx, s.orderKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count toasts: %w", err)
	}

	return int(n), nil
}

var _ Store = (*RedisStore)(nil)
