// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package scrapbook_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/scrapbook/internal/platform/middleware"
	"github.com/taibuivan/scrapbook/internal/platform/respond"
	"github.com/taibuivan/scrapbook/internal/platform/sec"
	"github.com/taibuivan/scrapbook/internal/scrapbook"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type testAPI struct {
	router  chi.Router
	service *scrapbook.Service
	tokens  *sec.TokenService
}

func newTestAPI(t *testing.T, policy sec.Policy) *testAPI {
	t.Helper()

	tokens, err := sec.NewTokenService(testSecret, "scrapbook.test")
	require.NoError(t, err)

	service, _ := newService(t)
	handler := scrapbook.NewHandler(service, policy)

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(tokens))
	router.Mount("/api/scrapbook-items", handler.Routes())
	router.Get("/api/capabilities", handler.GetCapabilities)

	return &testAPI{router: router, service: service, tokens: tokens}
}

func (api *testAPI) do(t *testing.T, method, target, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	request := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	api.router.ServeHTTP(recorder, request)
	return recorder
}

func (api *testAPI) token(t *testing.T, role sec.Role) string {
	t.Helper()
	token, err := api.tokens.GenerateToken("tester", role, time.Hour)
	require.NoError(t, err)
	return token
}

func decodeError(t *testing.T, recorder *httptest.ResponseRecorder) respond.ErrorEnvelope {
	t.Helper()
	var envelope respond.ErrorEnvelope
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&envelope))
	return envelope
}

/*
TestHTTP_ListItems returns a bare JSON array, empty for an empty store.
*/
func TestHTTP_ListItems(t *testing.T) {
	api := newTestAPI(t, sec.PolicyOpen)

	recorder := api.do(t, http.MethodGet, "/api/scrapbook-items", "", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `[]`, recorder.Body.String())

	mustCreate(t, api.service, "https://x/a.jpg")
	mustCreate(t, api.service, "https://x/b.jpg")

	recorder = api.do(t, http.MethodGet, "/api/scrapbook-items", "", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `[
		{"id":1,"imageUrl":"https://x/a.jpg","caption":null,"width":400,"alignment":"center","offset":"none"},
		{"id":2,"imageUrl":"https://x/b.jpg","caption":null,"width":400,"alignment":"center","offset":"none"}
	]`, recorder.Body.String())
}

/*
TestHTTP_CreateItem covers the create route's success and failure bodies.
*/
func TestHTTP_CreateItem(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantStatus  int
		wantMessage string
	}{
		{
			name:       "created",
			body:       `{"imageUrl":"https://x/a.jpg"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:        "missing_image_url",
			body:        `{"caption":"no image"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "imageUrl: This field is required",
		},
		{
			name:        "malformed_json",
			body:        `{"imageUrl":`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid JSON payload",
		},
		{
			name:        "image_url_not_string",
			body:        `{"imageUrl":123}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "imageUrl: Must be a string",
		},
		{
			name:        "width_not_number",
			body:        `{"imageUrl":"https://x/a.jpg","width":"wide"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "width: Must be an integer",
		},
		{
			name:        "width_fractional",
			body:        `{"imageUrl":"https://x/a.jpg","width":300.5}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "width: Must be an integer",
		},
		{
			name:        "width_out_of_range",
			body:        `{"imageUrl":"https://x/a.jpg","width":1200}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "width: Must be between 200 and 800",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t, sec.PolicyOpen)

			recorder := api.do(t, http.MethodPost, "/api/scrapbook-items", tt.body, "")
			require.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantStatus == http.StatusCreated {
				assert.JSONEq(t,
					`{"id":1,"imageUrl":"https://x/a.jpg","caption":null,"width":400,"alignment":"center","offset":"none"}`,
					recorder.Body.String())
				return
			}
			envelope := decodeError(t, recorder)
			assert.Equal(t, tt.wantMessage, envelope.Message)
			assert.Equal(t, "VALIDATION_ERROR", envelope.Code)
		})
	}
}

/*
TestHTTP_DeleteItem returns 204 for present and absent ids and 400 for a
non-integer id.
*/
func TestHTTP_DeleteItem(t *testing.T) {
	api := newTestAPI(t, sec.PolicyOpen)
	mustCreate(t, api.service, "https://x/a.jpg")

	recorder := api.do(t, http.MethodDelete, "/api/scrapbook-items/1", "", "")
	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Empty(t, recorder.Body.String())

	recorder = api.do(t, http.MethodDelete, "/api/scrapbook-items/999", "", "")
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = api.do(t, http.MethodDelete, "/api/scrapbook-items/abc", "", "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "id: Must be an integer", decodeError(t, recorder).Message)

	recorder = api.do(t, http.MethodGet, "/api/scrapbook-items", "", "")
	assert.JSONEq(t, `[]`, recorder.Body.String())
}

/*
TestHTTP_AdminPolicy guards mutations behind an admin token.
*/
func TestHTTP_AdminPolicy(t *testing.T) {
	api := newTestAPI(t, sec.PolicyAdmin)
	body := `{"imageUrl":"https://x/a.jpg"}`

	recorder := api.do(t, http.MethodPost, "/api/scrapbook-items", body, "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = api.do(t, http.MethodPost, "/api/scrapbook-items", body, api.token(t, sec.RoleViewer))
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = api.do(t, http.MethodPost, "/api/scrapbook-items", body, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = api.do(t, http.MethodPost, "/api/scrapbook-items", body, api.token(t, sec.RoleAdmin))
	assert.Equal(t, http.StatusCreated, recorder.Code)

	recorder = api.do(t, http.MethodDelete, "/api/scrapbook-items/1", "", "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = api.do(t, http.MethodDelete, "/api/scrapbook-items/1", "", api.token(t, sec.RoleAdmin))
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	// Reads stay public.
	recorder = api.do(t, http.MethodGet, "/api/scrapbook-items", "", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
}

/*
TestHTTP_Capabilities reports what the caller may do under each policy.
*/
func TestHTTP_Capabilities(t *testing.T) {
	tests := []struct {
		name   string
		policy sec.Policy
		role   sec.Role
		want   string
	}{
		{"open_anonymous", sec.PolicyOpen, "", `{"role":"viewer","canCreate":true,"canDelete":true}`},
		{"admin_anonymous", sec.PolicyAdmin, "", `{"role":"viewer","canCreate":false,"canDelete":false}`},
		{"admin_viewer", sec.PolicyAdmin, sec.RoleViewer, `{"role":"viewer","canCreate":false,"canDelete":false}`},
		{"admin_admin", sec.PolicyAdmin, sec.RoleAdmin, `{"role":"admin","canCreate":true,"canDelete":true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t, tt.policy)

			var token string
			if tt.role != "" {
				token = api.token(t, tt.role)
			}

			recorder := api.do(t, http.MethodGet, "/api/capabilities", "", token)
			require.Equal(t, http.StatusOK, recorder.Code)
			assert.JSONEq(t, tt.want, recorder.Body.String())
		})
	}
}
