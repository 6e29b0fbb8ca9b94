// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package web serves the collage page: the rendered feed in three copies
// with the endless scroll wired in the browser.
package web

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/taibuivan/scrapbook/internal/feed"
	requestutil "github.com/taibuivan/scrapbook/internal/platform/request"
	"github.com/taibuivan/scrapbook/internal/platform/respond"
	"github.com/taibuivan/scrapbook/internal/platform/sec"
	"github.com/taibuivan/scrapbook/internal/scrapbook"
	"github.com/taibuivan/scrapbook/internal/scroll"
)

//go:embed templates/page.html
var templateFiles embed.FS

// Tagline is the fixed text over the collage.
const Tagline = "I make videos for the internet that get people excited about living in the real world."

// ItemLister supplies the ordered items to render.
type ItemLister interface {
	ListItems(ctx context.Context) ([]*scrapbook.Item, error)
}

// CapabilityResolver tells the page which controls a role may see.
type CapabilityResolver interface {
	CapabilitiesFor(role sec.Role) scrapbook.Capabilities
}

// ScrollSettings are the browser-side scroll parameters.
type ScrollSettings struct {
	MinBuffer   float64 `json:"minBuffer"`
	BufferRatio float64 `json:"bufferRatio"`
	CooldownMs  int64   `json:"cooldownMs"`
	AutoScroll  bool    `json:"autoScroll"`
	Speed       float64 `json:"speed"`
	PauseMs     int64   `json:"pauseMs"`
}

// DefaultScrollSettings mirrors the [scroll.Controller] defaults with
// auto-scroll on.
func DefaultScrollSettings() ScrollSettings {
	return ScrollSettings{
		MinBuffer:   scroll.DefaultMinBuffer,
		BufferRatio: scroll.DefaultBufferRatio,
		CooldownMs:  scroll.DefaultCooldown.Milliseconds(),
		AutoScroll:  true,
		Speed:       scroll.DefaultSpeed,
		PauseMs:     scroll.DefaultPauseDuration.Milliseconds(),
	}
}

type copyView struct {
	Index   int
	Entries []feed.Entry
}

type pageView struct {
	Title     string
	Tagline   string
	Copies    []copyView
	CanCreate bool
	CanDelete bool
	Scroll    ScrollSettings
}

// Handler renders GET /.
type Handler struct {
	items        ItemLister
	capabilities CapabilityResolver
	scroll       ScrollSettings
	page         *template.Template
}

// NewHandler parses the embedded page template.
func NewHandler(items ItemLister, capabilities CapabilityResolver, settings ScrollSettings) (*Handler, error) {
	page, err := template.ParseFS(templateFiles, "templates/page.html")
	if err != nil {
		return nil, fmt.Errorf("web: failed to parse page template: %w", err)
	}
	return &Handler{items: items, capabilities: capabilities, scroll: settings, page: page}, nil
}

// ServeHTTP renders the page. Delete controls appear only for callers that
// may delete.
func (handler *Handler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	items, err := handler.items.ListItems(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	rendered := feed.Render(items, feed.Options{})
	capabilities := handler.capabilities.CapabilitiesFor(requestutil.Role(request))

	view := pageView{
		Title:     "Scrapbook",
		Tagline:   Tagline,
		CanCreate: capabilities.CanCreate,
		CanDelete: capabilities.CanDelete,
		Scroll:    handler.scroll,
	}
	for n := range feed.Copies {
		view.Copies = append(view.Copies, copyView{Index: n, Entries: rendered.Copy(n)})
	}

	var buf bytes.Buffer
	if err := handler.page.Execute(&buf, view); err != nil {
		respond.Error(writer, request, fmt.Errorf("web: failed to render page: %w", err))
		return
	}

	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	writer.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(writer)
}
