// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package scroll

// Viewport is the scrollable area holding the three copy feed.
//
// Heights are read live on every call; implementations must not cache them.
type Viewport interface {
	ScrollTop() float64
	SetScrollTop(offset float64)
	ScrollHeight() float64
	ClientHeight() float64
}

// MemoryViewport is a [Viewport] without a screen. Like a browser, it clamps
// the offset to the scrollable range.
type MemoryViewport struct {
	scrollTop    float64
	scrollHeight float64
	clientHeight float64
}

// NewMemoryViewport creates a viewport of clientHeight showing content of
// contentHeight.
func NewMemoryViewport(contentHeight, clientHeight float64) *MemoryViewport {
	return &MemoryViewport{
		scrollHeight: max(contentHeight, 0),
		clientHeight: max(clientHeight, 0),
	}
}

func (viewport *MemoryViewport) ScrollTop() float64    { return viewport.scrollTop }
func (viewport *MemoryViewport) ScrollHeight() float64 { return viewport.scrollHeight }
func (viewport *MemoryViewport) ClientHeight() float64 { return viewport.clientHeight }

// SetScrollTop moves to offset, clamped to [0, ScrollHeight-ClientHeight].
func (viewport *MemoryViewport) SetScrollTop(offset float64) {
	viewport.scrollTop = clamp(offset, 0, viewport.maxScrollTop())
}

// SetContentHeight replaces the content, as when images finish loading or
// the list changes.
func (viewport *MemoryViewport) SetContentHeight(height float64) {
	viewport.scrollHeight = max(height, 0)
	viewport.SetScrollTop(viewport.scrollTop)
}

// SetClientHeight resizes the visible area.
func (viewport *MemoryViewport) SetClientHeight(height float64) {
	viewport.clientHeight = max(height, 0)
	viewport.SetScrollTop(viewport.scrollTop)
}

func (viewport *MemoryViewport) maxScrollTop() float64 {
	return max(viewport.scrollHeight-viewport.clientHeight, 0)
}

func clamp(value, lower, upper float64) float64 {
	return min(max(value, lower), upper)
}
