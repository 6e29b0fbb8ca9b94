// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package scrapbook

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/scrapbook/internal/platform/middleware"
	requestutil "github.com/taibuivan/scrapbook/internal/platform/request"
	"github.com/taibuivan/scrapbook/internal/platform/respond"
	"github.com/taibuivan/scrapbook/internal/platform/sec"
)

// Handler serves the /api/scrapbook-items routes.
type Handler struct {
	service *Service
	policy  sec.Policy
}

func NewHandler(service *Service, policy sec.Policy) *Handler {
	return &Handler{service: service, policy: policy}
}

// RegisterRoutes mounts list, create and delete. Mutations are guarded by
// the capability policy.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listItems)

	router.With(middleware.RequireCapability(handler.policy, sec.CapCreateItem)).Post("/", handler.createItem)
	router.With(middleware.RequireCapability(handler.policy, sec.CapDeleteItem)).Delete("/{id}", handler.deleteItem)
}

// Routes returns a standalone router for mounting.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func (handler *Handler) listItems(writer http.ResponseWriter, request *http.Request) {
	items, err := handler.service.ListItems(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, items)
}

func (handler *Handler) createItem(writer http.ResponseWriter, request *http.Request) {
	var input NewItem
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.CreateItem(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, item)
}

func (handler *Handler) deleteItem(writer http.ResponseWriter, request *http.Request) {
	itemID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteItem(request.Context(), itemID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Capabilities

// Capabilities tells a page which curation controls it may show.
type Capabilities struct {
	Role      sec.Role `json:"role"`
	CanCreate bool     `json:"canCreate"`
	CanDelete bool     `json:"canDelete"`
}

// CapabilitiesFor resolves the capabilities of role under the handler policy.
func (handler *Handler) CapabilitiesFor(role sec.Role) Capabilities {
	return Capabilities{
		Role:      role,
		CanCreate: handler.policy.Allows(role, sec.CapCreateItem),
		CanDelete: handler.policy.Allows(role, sec.CapDeleteItem),
	}
}

// GetCapabilities handles GET /api/capabilities.
func (handler *Handler) GetCapabilities(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.CapabilitiesFor(requestutil.Role(request)))
}
