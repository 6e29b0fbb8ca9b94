// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey defines the typed context keys of a scrapbook request.
package ctxkey

// Key is unexported-by-convention: only ctxutil should construct values
// with these keys.
type Key int

const (
	// RequestID carries the X-Request-ID correlation value.
	RequestID Key = iota + 1

	// Logger carries the per-request [*log/slog.Logger].
	Logger

	// Claims carries the verified admin token claims.
	Claims
)
