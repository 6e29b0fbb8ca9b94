// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package feed

import "github.com/taibuivan/scrapbook/internal/scrapbook"

// Stagger and translation amounts, in CSS pixels.
const (
	staggerMediumMiddle = 64
	staggerLargeMiddle  = 96
	staggerMediumRight  = 32
	staggerLargeRight   = 48

	mobileTranslate = 16

	// mobileInset is the side margin of an aligned entry on a narrow screen.
	mobileInset = "5%"
	autoMargin  = "auto"
)

// Placement positions an entry on screen.
//
// Desktop uses a three column grid where the middle and right columns drop
// by a fixed stagger. Narrow screens use one column where alignment becomes
// side margins and offset becomes a vertical nudge.
type Placement struct {
	Column int `json:"column"`

	StaggerMedium int `json:"staggerMedium"`
	StaggerLarge  int `json:"staggerLarge"`

	MobileMarginLeft  string `json:"mobileMarginLeft,omitempty"`
	MobileMarginRight string `json:"mobileMarginRight,omitempty"`
	MobileTranslateY  int    `json:"mobileTranslateY"`
}

// PlacementFor derives the placement of an entry in column.
func PlacementFor(alignment scrapbook.Alignment, offset scrapbook.Offset, column int) Placement {
	placement := Placement{Column: column}

	switch column {
	case 1:
		placement.StaggerMedium, placement.StaggerLarge = staggerMediumMiddle, staggerLargeMiddle
	case 2:
		placement.StaggerMedium, placement.StaggerLarge = staggerMediumRight, staggerLargeRight
	}

	switch alignment {
	case scrapbook.AlignLeft:
		placement.MobileMarginLeft = mobileInset
	case scrapbook.AlignRight:
		placement.MobileMarginLeft, placement.MobileMarginRight = autoMargin, mobileInset
	}

	switch offset {
	case scrapbook.OffsetPos:
		placement.MobileTranslateY = mobileTranslate
	case scrapbook.OffsetNeg:
		placement.MobileTranslateY = -mobileTranslate
	}

	return placement
}
