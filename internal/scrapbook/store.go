// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package scrapbook

import "context"

// Repository defines the data access contract shared by every backend.
//
// List returns items in ascending id order. Create assigns a fresh id that
// is strictly greater than every id the store has handed out before and
// writes it back into item. Delete succeeds whether or not id exists.
type Repository interface {
	List(ctx context.Context) ([]*Item, error)
	Create(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}
