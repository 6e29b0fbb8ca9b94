// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants holds the fixed values of the scrapbook server: timeouts,
limits, header names and item layout defaults.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: JWT issuers and admin token lifetimes.
  - Layout: Defaults applied to scrapbook items and the rendered feed.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "scrapbook"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// http.Server limits. Item payloads are tiny.
	DefaultReadTimeout       = 5 * time.Second
	DefaultWriteTimeout      = 10 * time.Second
	DefaultIdleTimeout       = 120 * time.Second
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout bounds every REST request and SQL statement.
	GlobalRequestTimeout = 15 * time.Second

	// ShutdownTimeout is the grace period for in-flight requests on SIGTERM.
	ShutdownTimeout = 20 * time.Second

	// StartupTimeout bounds connecting to the store and cache during boot.
	StartupTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// Per-IP token bucket. A page load costs a handful of requests.
	DefaultRateLimitRPS   = 20.0
	DefaultRateLimitBurst = 60

	// Idle limiter entries are swept every interval once older than the TTL.
	RateLimitCleanupInterval = time.Minute
	RateLimitClientTTL       = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "scrapbook.app"

	// DefaultAdminTokenTTL is the lifetime of an admin token when not configured.
	DefaultAdminTokenTTL = 12 * time.Hour
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # JSON Field Identifiers

const (
	FieldStatus = "status"
	FieldChecks = "checks"
)

// # Database Schemas

const (
	SchemaScrapbook = "scrapbook"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisKeyItemList = "scrapbook:items:list"

	// RedisKeyItemListGeneration is bumped by every mutation; a list read
	// is cached only while it is unchanged.
	RedisKeyItemListGeneration = "scrapbook:items:generation"
)

// # Item Defaults

const (
	// DefaultItemWidth is the layout width in pixels for items created without one.
	DefaultItemWidth = 400

	// MinItemWidth and MaxItemWidth bound the width accepted on create.
	MinItemWidth = 200
	MaxItemWidth = 800

	// MaxCaptionLength is the longest caption accepted on create, in characters.
	MaxCaptionLength = 500
)
