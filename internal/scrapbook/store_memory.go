// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package scrapbook

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepository keeps items in process memory.
//
// Readers get deep copies; ids come from a counter that is never rewound, so
// deleting the newest item does not free its id.
type MemoryRepository struct {
	mu     sync.RWMutex
	lastID int64
	items  []*Item
}

// NewMemoryRepository creates an empty in-memory store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (repository *MemoryRepository) List(_ context.Context) ([]*Item, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	items := make([]*Item, 0, len(repository.items))
	for _, item := range repository.items {
		items = append(items, item.Clone())
	}
	return items, nil
}

func (repository *MemoryRepository) Create(_ context.Context, item *Item) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.lastID++
	item.ID = repository.lastID
	repository.items = append(repository.items, item.Clone())
	return nil
}

func (repository *MemoryRepository) Delete(_ context.Context, id int64) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	// items is sorted by id because ids only grow.
	index := sort.Search(len(repository.items), func(i int) bool {
		return repository.items[i].ID >= id
	})
	if index < len(repository.items) && repository.items[index].ID == id {
		repository.items = append(repository.items[:index], repository.items[index+1:]...)
	}
	return nil
}

func (repository *MemoryRepository) Count(_ context.Context) (int, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()
	return len(repository.items), nil
}
