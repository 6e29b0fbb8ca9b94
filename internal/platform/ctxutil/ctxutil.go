// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil stores and reads the request-scoped values set by the
// middleware chain: correlation id, logger and caller identity.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/scrapbook/internal/platform/ctxkey"
	"github.com/taibuivan/scrapbook/internal/platform/sec"
)

// lookup returns the value under key when it has type T.
func lookup[T any](ctx context.Context, key ctxkey.Key) (T, bool) {
	value, ok := ctx.Value(key).(T)
	return value, ok
}

// # Request Tracing

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.RequestID, id)
}

// GetRequestID returns the correlation id, or "" outside a request.
func GetRequestID(ctx context.Context) string {
	id, _ := lookup[string](ctx, ctxkey.RequestID)
	return id
}

// # Structured Logging

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.Logger, logger)
}

// GetLogger returns the request logger, falling back to [slog.Default].
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := lookup[*slog.Logger](ctx, ctxkey.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// # Caller Identity

func WithClaims(ctx context.Context, claims *sec.Claims) context.Context {
	return context.WithValue(ctx, ctxkey.Claims, claims)
}

// GetClaims returns the verified token claims, nil for anonymous callers.
func GetClaims(ctx context.Context) *sec.Claims {
	claims, _ := lookup[*sec.Claims](ctx, ctxkey.Claims)
	return claims
}

// GetRole resolves the caller role; anonymous callers are viewers.
func GetRole(ctx context.Context) sec.Role {
	return sec.RoleOf(GetClaims(ctx))
}
