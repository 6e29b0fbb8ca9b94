// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/scrapbook/internal/platform/constants"
	"github.com/taibuivan/scrapbook/internal/platform/ctxutil"
	"github.com/taibuivan/scrapbook/internal/platform/middleware"
	"github.com/taibuivan/scrapbook/internal/platform/sec"
)

var okHandler = http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
	writer.WriteHeader(http.StatusOK)
})

func serve(handler http.Handler, request *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

type fakeConfig struct {
	development bool
	origins     []string
}

func (c fakeConfig) IsDevelopment() bool      { return c.development }
func (c fakeConfig) AllowedOrigins() []string { return c.origins }

/*
TestRequestID keeps a client-supplied ID and generates one otherwise.
*/
func TestRequestID(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderXRequestID, "abc")
	recorder := serve(handler, request)
	assert.Equal(t, "abc", seen)
	assert.Equal(t, "abc", recorder.Header().Get(constants.HeaderXRequestID))

	recorder = serve(handler, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, recorder.Header().Get(constants.HeaderXRequestID))
}

/*
TestAuthenticate covers anonymous, malformed, invalid and valid credentials.
*/
func TestAuthenticate(t *testing.T) {
	tokens, err := sec.NewTokenService("0123456789abcdef0123456789abcdef", "scrapbook.test")
	require.NoError(t, err)

	valid, err := tokens.GenerateToken("admin", sec.RoleAdmin, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantRole   sec.Role
	}{
		{"anonymous", "", http.StatusOK, sec.RoleViewer},
		{"wrong_scheme", "Basic " + valid, http.StatusUnauthorized, ""},
		{"garbage_token", "Bearer nope", http.StatusUnauthorized, ""},
		{"valid_token", "Bearer " + valid, http.StatusOK, sec.RoleAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var role sec.Role
			handler := middleware.Authenticate(tokens)(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
				role = sec.RoleOf(ctxutil.GetClaims(request.Context()))
			}))

			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}

			recorder := serve(handler, request)
			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, tt.wantRole, role)
		})
	}
}

/*
TestAuthenticate_NoVerifier lets every request through anonymously.
*/
func TestAuthenticate_NoVerifier(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Authorization", "Bearer anything")

	assert.Equal(t, http.StatusOK, serve(middleware.Authenticate(nil)(okHandler), request).Code)
}

/*
TestRequireCapability distinguishes anonymous from authenticated denials.
*/
func TestRequireCapability(t *testing.T) {
	viewer := &sec.Claims{Role: string(sec.RoleViewer)}
	admin := &sec.Claims{Role: string(sec.RoleAdmin)}

	tests := []struct {
		name       string
		policy     sec.Policy
		claims     *sec.Claims
		wantStatus int
	}{
		{"open_anonymous", sec.PolicyOpen, nil, http.StatusOK},
		{"admin_anonymous", sec.PolicyAdmin, nil, http.StatusUnauthorized},
		{"admin_viewer", sec.PolicyAdmin, viewer, http.StatusForbidden},
		{"admin_admin", sec.PolicyAdmin, admin, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := middleware.RequireCapability(tt.policy, sec.CapDeleteItem)(okHandler)

			request := httptest.NewRequest(http.MethodDelete, "/1", nil)
			if tt.claims != nil {
				request = request.WithContext(ctxutil.WithClaims(request.Context(), tt.claims))
			}

			assert.Equal(t, tt.wantStatus, serve(handler, request).Code)
		})
	}
}

/*
TestPanicRecovery turns a panic into a 500 envelope.
*/
func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := serve(handler, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "INTERNAL_ERROR")
}

/*
TestCORS allows listed origins and answers preflights.
*/
func TestCORS(t *testing.T) {
	handler := middleware.CORS(fakeConfig{origins: []string{"https://scrap.example"}})(okHandler)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderOrigin, "https://scrap.example")
	recorder := serve(handler, request)
	assert.Equal(t, "https://scrap.example", recorder.Header().Get("Access-Control-Allow-Origin"))

	request = httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderOrigin, "https://evil.example")
	recorder = serve(handler, request)
	assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))

	request = httptest.NewRequest(http.MethodOptions, "/", nil)
	request.Header.Set(constants.HeaderOrigin, "https://scrap.example")
	assert.Equal(t, http.StatusNoContent, serve(handler, request).Code)
}

/*
TestRateLimit rejects requests beyond the burst.
*/
func TestRateLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := middleware.RateLimit(ctx, 0.001, 2)(okHandler)

	codes := make([]int, 0, 3)
	for range 3 {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set(constants.HeaderXRealIP, "10.0.0.1")
		codes = append(codes, serve(handler, request).Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
