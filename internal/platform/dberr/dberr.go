// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr classifies driver errors from both SQL backends (pgx and
// database/sql) into [apperr.AppError] values.
package dberr

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/scrapbook/internal/platform/apperr"
)

// ErrNotFound is returned for queries that expected a row.
var ErrNotFound = apperr.NotFound("Item")

// Wrap classifies err from operation. Cancellation passes through untouched
// so callers can tell a client that went away from a broken store.
func Wrap(err error, operation string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, pgx.ErrNoRows), errors.Is(err, sql.ErrNoRows):
		return ErrNotFound
	default:
		return apperr.StoreUnavailable(fmt.Errorf("%s: %w", operation, err))
	}
}
