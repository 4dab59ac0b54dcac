package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/quotient/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key the adapters write.
const DefaultPrefix = "quotient:conversion:"

// farFuture is the index score for entries without a TTL (2100-01-01).
const farFuture = 4102444800

// Store implements ports.ConversionStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for stored conversions.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for stored conversions.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: DefaultPrefix,
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

// Client exposes the underlying client so a Locker can share the connection pool.
func (s *Store) Client() *backend.Client {
	return s.client
}

func (s *Store) key(id string) string {
	return s.prefix + id
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the conversion to Redis and indexes it.
func (s *Store) Save(ctx context.Context, conv *domain.Conversion) error {
	data, err := json.Marshal(conv)
	if err != nil {
		return fmt.Errorf("failed to marshal conversion: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(conv.ID), data, s.ttl)

	// Score is the expiry time so List can prune lazily.
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = farFuture
	}
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: conv.ID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves the conversion from Redis.
func (s *Store) Load(ctx context.Context, id string) (*domain.Conversion, error) {
	val, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, domain.ErrConversionNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var conv domain.Conversion
	if err := json.Unmarshal(val, &conv); err != nil {
		return nil, fmt.Errorf("failed to unmarshal conversion: %w", err)
	}
	return &conv, nil
}

// Delete removes the conversion and its index entry.
func (s *Store) Delete(ctx context.Context, id string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(id))
	pipe.ZRem(ctx, s.indexKey(), id)

	_, err := pipe.Exec(ctx)
	return err
}

// List returns the IDs of live conversions, pruning expired index entries first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired conversions: %w", err)
	}

	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list conversions: %w", err)
	}
	return ids, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
