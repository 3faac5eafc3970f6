// Package counterstore keeps batch counter documents in Redis as JSON strings.
package counterstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"fulfillment/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces counter keys inside a shared Redis database.
const DefaultKeyPrefix = "fulfillment:batch:"

// Store implements CounterDocumentStore over a Redis client. Keys never expire.
type Store struct {
	rdb    redis.UniversalClient
	prefix string
}

// NewClient connects to Redis and verifies the connection with a PING.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", addr, err)
	}

	return rdb, nil
}

// New wraps rdb. An empty prefix selects DefaultKeyPrefix.
func New(rdb redis.UniversalClient, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Store{rdb: rdb, prefix: prefix}
}

func (s *Store) Get(ctx context.Context, key string) (ports.CounterDocument, bool, error) {
	raw, err := s.rdb.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.CounterDocument{}, false, nil
	}
	if err != nil {
		return ports.CounterDocument{}, false, err
	}

	var doc ports.CounterDocument
	if err = json.Unmarshal(raw, &doc); err != nil {
		return ports.CounterDocument{}, false, fmt.Errorf("decode counter %s: %w", key, err)
	}
	return doc, true, nil
}

// CreateIfAbsent uses SETNX, so concurrent first reads create the key exactly once.
func (s *Store) CreateIfAbsent(ctx context.Context, key string, doc ports.CounterDocument) (ports.CounterDocument, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return ports.CounterDocument{}, err
	}

	created, err := s.rdb.SetNX(ctx, s.prefix+key, raw, 0).Result()
	if err != nil {
		return ports.CounterDocument{}, err
	}
	if created {
		return doc, nil
	}

	stored, found, err := s.Get(ctx, key)
	if err != nil {
		return ports.CounterDocument{}, err
	}
	if !found {
		return ports.CounterDocument{}, fmt.Errorf("counter %s vanished after create", key)
	}
	return stored, nil
}

func (s *Store) Put(ctx context.Context, key string, doc ports.CounterDocument) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.prefix+key, raw, 0).Err()
}
