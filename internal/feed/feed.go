// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package feed turns an ordered item list into the repeated collage layout.

The feed is the item sequence rendered three times back to back. Every copy
is laid out identically, so a viewport sitting in the middle copy can be
moved by exactly one copy height without any visible change. That is what
lets the scroll controller fake an endless page.

Layout is a pure function of the item and its position within a copy:

  - Alignment: item hint, else left, center, right by index modulo 3.
  - Offset: item hint, else pos for even and neg for odd indexes.
  - Width: item hint, else [DefaultWidth], clamped for display only.
  - Placement: derived from (alignment, offset, column).
*/
package feed

import (
	"strconv"

	"github.com/taibuivan/scrapbook/internal/platform/constants"
	"github.com/taibuivan/scrapbook/internal/scrapbook"
	"github.com/taibuivan/scrapbook/pkg/pointer"
)

const (
	// Copies is how many times the sequence is repeated.
	Copies = 3

	// Columns is the desktop grid width; it also drives the stagger.
	Columns = 3

	// DefaultWidth is the layout width of an item without a width hint.
	DefaultWidth = constants.DefaultItemWidth

	// MinDisplayWidth is the smallest width an entry is ever drawn at.
	MinDisplayWidth = 120

	// MaxViewportRatio caps the display width relative to the viewport.
	MaxViewportRatio = 0.9
)

// Options tunes rendering for a client.
type Options struct {
	// ViewportWidth in CSS pixels. Zero disables display clamping.
	ViewportWidth int
}

// Entry is one rendered occurrence of an item.
type Entry struct {
	// Key is "<copy>-<itemId>", unique across the whole feed.
	Key    string `json:"key"`
	Copy   int    `json:"copy"`
	Index  int    `json:"index"`
	ItemID int64  `json:"itemId"`

	ImageURL string `json:"imageUrl"`
	Caption  string `json:"caption,omitempty"`

	Alignment    scrapbook.Alignment `json:"alignment"`
	Offset       scrapbook.Offset    `json:"offset"`
	Width        int                 `json:"width"`
	DisplayWidth int                 `json:"displayWidth"`
	Placement    Placement           `json:"placement"`
}

// Feed is the rendered, repeated sequence.
type Feed struct {
	// CopyLength is the number of entries in a single copy.
	CopyLength int     `json:"copyLength"`
	Entries    []Entry `json:"entries"`
}

// Render lays out items Copies times. An empty input renders an empty feed.
func Render(items []*scrapbook.Item, options Options) Feed {
	feed := Feed{
		CopyLength: len(items),
		Entries:    make([]Entry, 0, Copies*len(items)),
	}

	for copyIndex := range Copies {
		for index, item := range items {
			feed.Entries = append(feed.Entries, renderEntry(copyIndex, index, item, options))
		}
	}
	return feed
}

// Copy returns the entries of copy n, or nil when n is out of range.
func (feed Feed) Copy(n int) []Entry {
	if n < 0 || n >= Copies || feed.CopyLength == 0 {
		return nil
	}
	start := n * feed.CopyLength
	return feed.Entries[start : start+feed.CopyLength]
}

func renderEntry(copyIndex, index int, item *scrapbook.Item, options Options) Entry {
	alignment := ResolveAlignment(item.Alignment, index)
	offset := ResolveOffset(item.Offset, index)
	width := pointer.Fallback(item.Width, DefaultWidth)

	return Entry{
		Key:          EntryKey(copyIndex, item.ID),
		Copy:         copyIndex,
		Index:        index,
		ItemID:       item.ID,
		ImageURL:     item.ImageURL,
		Caption:      pointer.Val(item.Caption),
		Alignment:    alignment,
		Offset:       offset,
		Width:        width,
		DisplayWidth: DisplayWidth(width, options.ViewportWidth),
		Placement:    PlacementFor(alignment, offset, index%Columns),
	}
}

// EntryKey builds the composite key of an entry.
func EntryKey(copyIndex int, itemID int64) string {
	return strconv.Itoa(copyIndex) + "-" + strconv.FormatInt(itemID, 10)
}

// ResolveAlignment returns hint, or the positional alignment when nil.
func ResolveAlignment(hint *scrapbook.Alignment, index int) scrapbook.Alignment {
	if hint != nil {
		return *hint
	}
	switch index % 3 {
	case 0:
		return scrapbook.AlignLeft
	case 1:
		return scrapbook.AlignCenter
	default:
		return scrapbook.AlignRight
	}
}

// ResolveOffset returns hint, or the positional offset when nil.
func ResolveOffset(hint *scrapbook.Offset, index int) scrapbook.Offset {
	if hint != nil {
		return *hint
	}
	if index%2 == 0 {
		return scrapbook.OffsetPos
	}
	return scrapbook.OffsetNeg
}

// DisplayWidth clamps width into [MinDisplayWidth, viewport*MaxViewportRatio].
// Widths are never rejected here; out of range hints still render.
func DisplayWidth(width, viewportWidth int) int {
	if viewportWidth <= 0 {
		return max(width, MinDisplayWidth)
	}
	upper := max(int(float64(viewportWidth)*MaxViewportRatio), MinDisplayWidth)
	return min(max(width, MinDisplayWidth), upper)
}
