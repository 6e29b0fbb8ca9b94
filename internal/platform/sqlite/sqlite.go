// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sqlite opens the embedded SQLite database backing the scrapbook
// item store when STORE_DRIVER=sqlite.
//
// The pure-Go modernc.org/sqlite driver is used so the binary builds without
// cgo.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"time"

	// Registers the "sqlite" database/sql driver.
	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

const (
	driverName = "sqlite"
	// busyTimeout makes a writer wait for a lock instead of failing fast.
	busyTimeout = 5 * time.Second
	pingTimeout = 2 * time.Second
)

// Open opens (creating if needed) the database at path and verifies it.
//
// SQLite serializes writers, so the handle is limited to one connection.
// That also keeps a [MemoryPath] database alive for the handle's lifetime.
func Open(ctx context.Context, path string, logger *slog.Logger) (*sql.DB, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open(driverName, dsn(path))
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open %s: %w", path, err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := Ping(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info("sqlite database opened", slog.String("path", path))
	return db, nil
}

// Ping verifies that the database answers.
func Ping(ctx context.Context, db *sql.DB) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("sqlite: ping failed: %w", err)
	}
	return nil
}

// dsn appends the connection pragmas to path.
func dsn(path string) string {
	pragmas := url.Values{}
	pragmas.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busyTimeout.Milliseconds()))
	pragmas.Add("_pragma", "foreign_keys(1)")
	if path != MemoryPath {
		pragmas.Add("_pragma", "journal_mode(WAL)")
	}
	return "file:" + path + "?" + pragmas.Encode()
}
