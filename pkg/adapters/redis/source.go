// Package redis serves flow parameters stored in Redis hashes.
//
// Shared parameters live in the hash "<prefix>params"; per-item overrides in
// "<prefix>item:<n>"; the batch size in "<prefix>items". Hash values are JSON
// documents; a value that is not valid JSON is returned as a plain string.
package redis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	backend "github.com/redis/go-redis/v9"
)

// Source implements ports.ParameterSource and ports.ItemCounter using Redis.
type Source struct {
	client *backend.Client
	prefix string
}

type Option func(*Source)

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Source) {
		s.prefix = prefix
	}
}

// New creates a new Redis source with options.
func New(address, password string, db int, opts ...Option) *Source {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis source from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Source {
	s := &Source{
		client: client,
		prefix: "wayfinder:",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Source) paramsKey() string {
	return s.prefix + "params"
}

func (s *Source) itemKey(itemIndex int) string {
	return s.prefix + "item:" + strconv.Itoa(itemIndex)
}

func (s *Source) countKey() string {
	return s.prefix + "items"
}

// Get implements ports.ParameterSource. The per-item hash wins over the
// shared one; a missing field yields def.
func (s *Source) Get(ctx context.Context, name string, itemIndex int, def any) (any, error) {
	raw, err := s.client.HGet(ctx, s.itemKey(itemIndex), name).Result()
	if errors.Is(err, backend.Nil) {
		raw, err = s.client.HGet(ctx, s.paramsKey(), name).Result()
	}
	if errors.Is(err, backend.Nil) {
		return def, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", name, err)
	}
	return decode(raw), nil
}

func decode(raw string) any {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil || dec.More() {
		return raw
	}
	return v
}

// Items implements ports.ItemCounter. A missing counter means one item.
func (s *Source) Items(ctx context.Context) (int, error) {
	n, err := s.client.Get(ctx, s.countKey()).Int()
	if errors.Is(err, backend.Nil) {
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get item count: %w", err)
	}
	if n < 1 {
		return 1, nil
	}
	return n, nil
}

// Put stores a shared parameter.
func (s *Source) Put(ctx context.Context, name string, value any) error {
	return s.put(ctx, s.paramsKey(), name, value)
}

// PutItem stores a parameter override for one item and grows the item count
// to cover it.
func (s *Source) PutItem(ctx context.Context, itemIndex int, name string, value any) error {
	if err := s.put(ctx, s.itemKey(itemIndex), name, value); err != nil {
		return err
	}
	n, err := s.client.Get(ctx, s.countKey()).Int()
	if err != nil && !errors.Is(err, backend.Nil) {
		return fmt.Errorf("redis get item count: %w", err)
	}
	if itemIndex+1 > n {
		if err := s.client.Set(ctx, s.countKey(), itemIndex+1, 0).Err(); err != nil {
			return fmt.Errorf("redis set item count: %w", err)
		}
	}
	return nil
}

func (s *Source) put(ctx context.Context, key, name string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal parameter %s: %w", name, err)
	}
	if err := s.client.HSet(ctx, key, name, data).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", name, err)
	}
	return nil
}

// Ping checks connectivity.
func (s *Source) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
