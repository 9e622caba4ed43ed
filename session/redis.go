package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/devmarvs/pagegate/redis"
)

// RedisOptions configures a Redis store.
type RedisOptions struct {
	Client *redis.Client
	Prefix string
	TTL    time.Duration
}

// RedisStore stores records in Redis, one key per fingerprint.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed store.
func NewRedisStore(options RedisOptions) (*RedisStore, error) {
	if options.Client == nil {
		return nil, errors.New("redis client is required")
	}
	prefix := options.Prefix
	if prefix == "" {
		prefix = "pagegate:sessions:"
	}
	return &RedisStore{
		client: options.Client,
		prefix: prefix,
		ttl:    options.TTL,
	}, nil
}

// Get returns the record stored at key, if any.
func (s *RedisStore) Get(ctx context.Context, key string) (Record, bool, error) {
	payload, err := s.client.Get(ctx, s.prefix+key)
	if errors.Is(err, redis.ErrNil) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, err
	}

	var record Record
	if err := json.Unmarshal(payload, &record); err != nil {
		return Record{}, false, err
	}
	return record, true, nil
}

// Set stores the record at key, refreshing its expiry.
func (s *RedisStore) Set(ctx context.Context, key string, record Record) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.prefix+key, payload, s.ttl)
}

// Delete removes the record at key.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key)
}
