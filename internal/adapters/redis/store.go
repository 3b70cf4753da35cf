// Package redis implements ports.ProjectStore on Redis.
package redis

import (
	"context"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/transparentlyai/adkflow-sub012/pkg/graph"
	"github.com/transparentlyai/adkflow-sub012/pkg/manifest"
)

// Store implements ports.ProjectStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for projects.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for projects.
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
		prefix: "adkflow:project:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(projectID string) string {
	return s.prefix + projectID
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the manifest to Redis.
func (s *Store) Save(ctx context.Context, projectID string, project *manifest.Project) error {
	data, err := manifest.Encode(project)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()

	// 1. Save manifest with TTL (0 = no expiration).
	pipe.Set(ctx, s.key(projectID), data, s.ttl)

	// 2. Add to index (ZSET). Score = now + TTL; a fixed far-future score
	// stands in for "never expires".
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}

	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: projectID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}

	return nil
}

// Load retrieves the manifest from Redis.
func (s *Store) Load(ctx context.Context, projectID string) (*manifest.Project, error) {
	val, err := s.client.Get(ctx, s.key(projectID)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, graph.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	return manifest.Decode([]byte(val))
}

// Delete removes the project.
func (s *Store) Delete(ctx context.Context, projectID string) error {
	pipe := s.client.Pipeline()

	pipe.Del(ctx, s.key(projectID))
	pipe.ZRem(ctx, s.indexKey(), projectID)

	_, err := pipe.Exec(ctx)
	return err
}

// List returns stored project IDs, lazily pruning expired index entries.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())

	// ZREMRANGEBYSCORE removes entries whose TTL has passed. With no TTL
	// configured every score is far-future and nothing is pruned.
	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired projects: %w", err)
	}

	projects, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	return projects, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
