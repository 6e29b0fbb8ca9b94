// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package scrapbook

import (
	"context"
	"log/slog"
)

// ListCache holds the serialized item list between mutations.
//
// Every Invalidate advances the generation. SetIfGeneration stores a list only
// while the generation still equals the one observed before the list was read
// from the backend, so a list that raced a mutation is never cached.
type ListCache interface {
	Get(ctx context.Context) (items []*Item, found bool, err error)
	Generation(ctx context.Context) (int64, error)
	SetIfGeneration(ctx context.Context, generation int64, items []*Item) (stored bool, err error)
	Invalidate(ctx context.Context) error
}

// CachedRepository serves List from a [ListCache] and drops the cached list
// after every mutation.
//
// The cache is never a source of truth: read failures fall through to the
// wrapped repository and write failures are only logged.
type CachedRepository struct {
	Repository
	cache  ListCache
	logger *slog.Logger
}

// NewCachedRepository decorates next with cache.
func NewCachedRepository(next Repository, cache ListCache, logger *slog.Logger) *CachedRepository {
	return &CachedRepository{Repository: next, cache: cache, logger: logger}
}

func (repository *CachedRepository) List(ctx context.Context) ([]*Item, error) {
	items, found, err := repository.cache.Get(ctx)
	if err != nil {
		repository.logger.WarnContext(ctx, "scrapbook_cache_read_failed", slog.Any("error", err))
	} else if found {
		return items, nil
	}

	generation, genErr := repository.cache.Generation(ctx)

	items, err = repository.Repository.List(ctx)
	if err != nil {
		return nil, err
	}

	if genErr != nil {
		repository.logger.WarnContext(ctx, "scrapbook_cache_generation_failed", slog.Any("error", genErr))
		return items, nil
	}

	stored, err := repository.cache.SetIfGeneration(ctx, generation, items)
	switch {
	case err != nil:
		repository.logger.WarnContext(ctx, "scrapbook_cache_write_failed", slog.Any("error", err))
	case !stored:
		repository.logger.DebugContext(ctx, "scrapbook_cache_write_skipped", slog.Int64("generation", generation))
	}
	return items, nil
}

func (repository *CachedRepository) Create(ctx context.Context, item *Item) error {
	if err := repository.Repository.Create(ctx, item); err != nil {
		return err
	}
	repository.invalidate(ctx)
	return nil
}

func (repository *CachedRepository) Delete(ctx context.Context, id int64) error {
	if err := repository.Repository.Delete(ctx, id); err != nil {
		return err
	}
	repository.invalidate(ctx)
	return nil
}

func (repository *CachedRepository) invalidate(ctx context.Context) {
	if err := repository.cache.Invalidate(ctx); err != nil {
		repository.logger.WarnContext(ctx, "scrapbook_cache_invalidate_failed", slog.Any("error", err))
	}
}
