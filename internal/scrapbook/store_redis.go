// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package scrapbook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/scrapbook/internal/platform/constants"
)

// RedisListCache implements [ListCache] with a list key and a generation
// counter guarded by WATCH.
type RedisListCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisListCache creates a Redis-backed list cache with the given TTL.
func NewRedisListCache(client *redis.Client, ttl time.Duration) *RedisListCache {
	return &RedisListCache{client: client, ttl: ttl}
}

/*
Get returns the cached list.

Returns:
  - found: false on a cache miss (including an expired key)
  - error: connectivity or decoding failures
*/
func (cache *RedisListCache) Get(ctx context.Context) ([]*Item, bool, error) {
	payload, err := cache.client.Get(ctx, constants.RedisKeyItemList).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis_item_list_get_failed: %w", err)
	}

	var items []*Item
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, false, fmt.Errorf("redis_item_list_decode_failed: %w", err)
	}
	if items == nil {
		items = make([]*Item, 0)
	}
	return items, true, nil
}

// Generation returns the current mutation counter, zero before the first
// mutation.
func (cache *RedisListCache) Generation(ctx context.Context) (int64, error) {
	generation, err := cache.client.Get(ctx, constants.RedisKeyItemListGeneration).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redis_item_list_generation_failed: %w", err)
	}
	return generation, nil
}

/*
SetIfGeneration stores the list with the configured TTL inside a WATCH on
the generation key.

Returns:
  - stored: false when a mutation advanced the generation first
  - error: connectivity or encoding failures
*/
func (cache *RedisListCache) SetIfGeneration(ctx context.Context, generation int64, items []*Item) (bool, error) {
	payload, err := json.Marshal(items)
	if err != nil {
		return false, fmt.Errorf("redis_item_list_encode_failed: %w", err)
	}

	stale := false
	err = cache.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, constants.RedisKeyItemListGeneration).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			stale = true
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, constants.RedisKeyItemList, payload, cache.ttl)
			return nil
		})
		return err
	}, constants.RedisKeyItemListGeneration)

	switch {
	case errors.Is(err, redis.TxFailedErr):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("redis_item_list_set_failed: %w", err)
	}
	return !stale, nil
}

// Invalidate advances the generation and removes the cached list.
func (cache *RedisListCache) Invalidate(ctx context.Context) error {
	_, err := cache.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, constants.RedisKeyItemListGeneration)
		pipe.Del(ctx, constants.RedisKeyItemList)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis_item_list_invalidate_failed: %w", err)
	}
	return nil
}
