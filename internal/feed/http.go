// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package feed

import (
	"context"
	"net/http"

	"github.com/taibuivan/scrapbook/internal/platform/respond"
	"github.com/taibuivan/scrapbook/internal/scrapbook"
	"github.com/taibuivan/scrapbook/pkg/convert"
)

// ItemLister supplies the ordered items to render.
type ItemLister interface {
	ListItems(ctx context.Context) ([]*scrapbook.Item, error)
}

// Handler serves GET /api/feed.
type Handler struct {
	items ItemLister
}

func NewHandler(items ItemLister) *Handler {
	return &Handler{items: items}
}

// GetFeed renders the current items. The optional viewportWidth query
// parameter enables display width clamping.
func (handler *Handler) GetFeed(writer http.ResponseWriter, request *http.Request) {
	items, err := handler.items.ListItems(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	options := Options{
		ViewportWidth: max(convert.ToIntD(request.URL.Query().Get("viewportWidth"), 0), 0),
	}
	respond.OK(writer, Render(items, options))
}
