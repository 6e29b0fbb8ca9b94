// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/scrapbook/internal/platform/apperr"
	requestutil "github.com/taibuivan/scrapbook/internal/platform/request"
	"github.com/taibuivan/scrapbook/internal/platform/respond"
	"github.com/taibuivan/scrapbook/internal/platform/validate"
)

// Handler serves the admin token endpoint.
type Handler struct {
	service *Service
}

// NewHandler creates a Handler. A nil service means admin access is
// disabled and the endpoint answers 404.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the admin router.
//
// # Endpoints
//   - POST /token : Exchanges the passphrase for an admin token.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/token", handler.issueToken)
	return router
}

type tokenRequest struct {
	Passphrase string `json:"passphrase"`
}

/*
issueToken handles POST /api/admin/token.

Responses:
  - 200: {token, expiresAt}
  - 400: missing passphrase or malformed JSON
  - 401: wrong passphrase
  - 404: admin access disabled
*/
func (handler *Handler) issueToken(writer http.ResponseWriter, request *http.Request) {
	if handler.service == nil {
		respond.Error(writer, request, apperr.NotFound("Admin access"))
		return
	}

	var input tokenRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if err := validator.Required("passphrase", input.Passphrase).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, err := handler.service.IssueAdminToken(request.Context(), input.Passphrase)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, token)
}
