// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package scrapbook

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/taibuivan/scrapbook/internal/platform/database/schema"
	"github.com/taibuivan/scrapbook/internal/platform/dberr"
)

// SQLiteRepository stores items in the scrapbook_item table of a SQLite file.
//
// The table uses AUTOINCREMENT so ids of deleted rows are never handed out
// again.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (repository *SQLiteRepository) List(ctx context.Context) ([]*Item, error) {
	table := schema.ScrapbookItemSQLite
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC`, table.SelectList(), table.Table, table.ID)

	rows, err := repository.db.QueryContext(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_scrapbook_items")
	}
	defer rows.Close()

	items := make([]*Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_scrapbook_item")
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_scrapbook_items")
	}
	return items, nil
}

func (repository *SQLiteRepository) Create(ctx context.Context, item *Item) error {
	table := schema.ScrapbookItemSQLite
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES (?, ?, ?, ?, ?)
		RETURNING %s
	`,
		table.Table, table.ImageURL, table.Caption, table.Width, table.Alignment, table.Offset,
		table.ID,
	)

	err := repository.db.QueryRowContext(ctx, query, insertArgs(item)...).Scan(&item.ID)
	return dberr.Wrap(err, "create_scrapbook_item")
}

func (repository *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	table := schema.ScrapbookItemSQLite
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, table.Table, table.ID)

	_, err := repository.db.ExecContext(ctx, query, id)
	return dberr.Wrap(err, "delete_scrapbook_item")
}

func (repository *SQLiteRepository) Count(ctx context.Context) (int, error) {
	table := schema.ScrapbookItemSQLite
	query := fmt.Sprintf(`SELECT count(*) FROM %s`, table.Table)

	var total int
	err := repository.db.QueryRowContext(ctx, query).Scan(&total)
	return total, dberr.Wrap(err, "count_scrapbook_items")
}
