// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package feed_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/scrapbook/internal/feed"
	"github.com/taibuivan/scrapbook/internal/scrapbook"
	"github.com/taibuivan/scrapbook/pkg/pointer"
)

type failingLister struct{}

func (failingLister) ListItems(context.Context) ([]*scrapbook.Item, error) {
	return nil, errors.New("store offline")
}

/*
TestHandler_GetFeed serves the rendered feed of the current items.
*/
func TestHandler_GetFeed(t *testing.T) {
	service := scrapbook.NewService(scrapbook.NewMemoryRepository(), nil, slog.New(slog.DiscardHandler))
	_, err := service.CreateItem(context.Background(), scrapbook.NewItem{
		ImageURL: "https://x/a.jpg",
		Width:    pointer.To(800),
	})
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/feed?viewportWidth=400", nil)
	feed.NewHandler(service).GetFeed(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var rendered feed.Feed
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&rendered))
	assert.Equal(t, 1, rendered.CopyLength)
	require.Len(t, rendered.Entries, 3)
	assert.Equal(t, 800, rendered.Entries[0].Width)
	assert.Equal(t, 360, rendered.Entries[0].DisplayWidth)
	assert.Equal(t, "2-1", rendered.Entries[2].Key)
}

/*
TestHandler_GetFeed_StoreFailure answers 500 when items cannot be listed.
*/
func TestHandler_GetFeed_StoreFailure(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/feed", nil)
	feed.NewHandler(failingLister{}).GetFeed(recorder, request)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}
