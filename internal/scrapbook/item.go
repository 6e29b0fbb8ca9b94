// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package scrapbook implements the scrapbook item store and its HTTP API.

An item is an image URL with an optional caption and optional layout hints
(width, alignment, vertical offset). Items are listed in ascending id order,
created with store-assigned ids, and deleted idempotently.

Layers:

  - Repository: memory, PostgreSQL and SQLite backends plus a cache decorator.
  - Service: validation, default filling, change events.
  - Handler: the /api/scrapbook-items routes.
*/
package scrapbook

import "github.com/taibuivan/scrapbook/pkg/pointer"

// # Layout Hints

// Alignment is the horizontal placement hint of an item.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// Offset is the vertical nudge hint of an item.
type Offset string

const (
	OffsetNeg  Offset = "neg"
	OffsetPos  Offset = "pos"
	OffsetNone Offset = "none"
)

// Alignments lists every accepted alignment value.
func Alignments() []string {
	return []string{string(AlignLeft), string(AlignCenter), string(AlignRight)}
}

// Offsets lists every accepted offset value.
func Offsets() []string {
	return []string{string(OffsetNeg), string(OffsetPos), string(OffsetNone)}
}

// # Entities

// Item is a scrapbook entry. Nil hint fields are serialized as null.
type Item struct {
	ID        int64      `json:"id"`
	ImageURL  string     `json:"imageUrl"`
	Caption   *string    `json:"caption"`
	Width     *int       `json:"width"`
	Alignment *Alignment `json:"alignment"`
	Offset    *Offset    `json:"offset"`
}

// Clone returns a deep copy so callers can never mutate stored state.
func (item *Item) Clone() *Item {
	clone := &Item{ID: item.ID, ImageURL: item.ImageURL}
	if item.Caption != nil {
		clone.Caption = pointer.To(*item.Caption)
	}
	if item.Width != nil {
		clone.Width = pointer.To(*item.Width)
	}
	if item.Alignment != nil {
		clone.Alignment = pointer.To(*item.Alignment)
	}
	if item.Offset != nil {
		clone.Offset = pointer.To(*item.Offset)
	}
	return clone
}

// NewItem is the create input. Enum hints stay plain strings until validated.
type NewItem struct {
	ImageURL  string  `json:"imageUrl"  yaml:"imageUrl"`
	Caption   *string `json:"caption"   yaml:"caption"`
	Width     *int    `json:"width"     yaml:"width"`
	Alignment *string `json:"alignment" yaml:"alignment"`
	Offset    *string `json:"offset"    yaml:"offset"`
}

// Field names used in validation errors.
const (
	FieldImageURL  = "imageUrl"
	FieldCaption   = "caption"
	FieldWidth     = "width"
	FieldAlignment = "alignment"
	FieldOffset    = "offset"
)
