// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"
	"strings"

	"github.com/taibuivan/scrapbook/internal/platform/apperr"
	"github.com/taibuivan/scrapbook/internal/platform/ctxutil"
	"github.com/taibuivan/scrapbook/internal/platform/respond"
	"github.com/taibuivan/scrapbook/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.Claims, error)
}

// Authenticate extracts and verifies the bearer token from the Authorization header.
//
// # Flow
//  1. No header, or no verifier configured: the request proceeds anonymously.
//  2. Malformed header or invalid token: 401.
//  3. Valid token: [*sec.Claims] are injected into the request context.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" || verifier == nil {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			scheme, tokenStr, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "bearer") || tokenStr == "" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyToken(tokenStr)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithClaims(request.Context(), claims)))
		})
	}
}

// RequireCapability blocks requests whose caller is not granted capability
// under policy.
//
// Must be registered AFTER [Authenticate]. Anonymous callers denied by the
// policy get 401 so a client knows a token would help; authenticated callers
// get 403.
func RequireCapability(policy sec.Policy, capability sec.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if policy.Allows(ctxutil.GetRole(request.Context()), capability) {
				next.ServeHTTP(writer, request)
				return
			}

			if ctxutil.GetClaims(request.Context()) == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}
			respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
		})
	}
}
