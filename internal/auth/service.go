// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package auth exchanges the admin passphrase for a short-lived admin token.
//
// # Architecture
//
// There are no user accounts. A single bcrypt passphrase hash comes from
// configuration, and a valid passphrase buys a signed JWT carrying the admin
// role. The token is what the capability policy checks on mutations.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/scrapbook/internal/platform/apperr"
	"github.com/taibuivan/scrapbook/internal/platform/sec"
)

// adminSubject is the JWT subject of every admin token.
const adminSubject = "admin"

// TokenIssuer signs admin tokens.
type TokenIssuer interface {
	GenerateToken(subject string, role sec.Role, timeToLive time.Duration) (string, error)
}

// AdminToken is an issued bearer token and its expiry.
type AdminToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Service implements the passphrase exchange.
type Service struct {
	issuer         TokenIssuer
	passphraseHash string
	timeToLive     time.Duration
	logger         *slog.Logger
	now            func() time.Time
}

// NewService creates a Service. An empty passphraseHash rejects every
// passphrase.
func NewService(issuer TokenIssuer, passphraseHash string, timeToLive time.Duration, logger *slog.Logger) *Service {
	return &Service{
		issuer:         issuer,
		passphraseHash: passphraseHash,
		timeToLive:     timeToLive,
		logger:         logger,
		now:            time.Now,
	}
}

// IssueAdminToken verifies passphrase and returns a signed admin token.
//
// # Returns
//   - [apperr.Unauthorized] when the passphrase does not match.
func (service *Service) IssueAdminToken(ctx context.Context, passphrase string) (*AdminToken, error) {

	// bcrypt compares in constant time.
	if !sec.CheckPassphrase(passphrase, service.passphraseHash) {
		service.logger.WarnContext(ctx, "admin_token_rejected")
		return nil, apperr.Unauthorized("Invalid passphrase")
	}

	expiresAt := service.now().Add(service.timeToLive)
	token, err := service.issuer.GenerateToken(adminSubject, sec.RoleAdmin, service.timeToLive)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "admin_token_issued", slog.Time("expires_at", expiresAt))
	return &AdminToken{Token: token, ExpiresAt: expiresAt}, nil
}
