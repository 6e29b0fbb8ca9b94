// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package scrapbook

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/scrapbook/internal/platform/database/schema"
	"github.com/taibuivan/scrapbook/internal/platform/dberr"
)

// PostgresRepository stores items in scrapbook.item.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) List(ctx context.Context) ([]*Item, error) {
	table := schema.ScrapbookItem
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		ORDER BY %s ASC;
	`, table.SelectList(), table.Table, table.ID)

	rows, err := repository.db.Query(ctx, query)
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

func (repository *PostgresRepository) Create(ctx context.Context, item *Item) error {
	table := schema.ScrapbookItem
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s
	`,
		table.Table, table.ImageURL, table.Caption, table.Width, table.Alignment, table.Offset,
		table.ID,
	)

	err := repository.db.QueryRow(ctx, query, insertArgs(item)...).Scan(&item.ID)
	return dberr.Wrap(err, "create_scrapbook_item")
}

func (repository *PostgresRepository) Delete(ctx context.Context, id int64) error {
	table := schema.ScrapbookItem
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table.Table, table.ID)

	// Zero affected rows is fine: deleting a missing item is not an error.
	_, err := repository.db.Exec(ctx, query, id)
	return dberr.Wrap(err, "delete_scrapbook_item")
}

func (repository *PostgresRepository) Count(ctx context.Context) (int, error) {
	table := schema.ScrapbookItem
	query := fmt.Sprintf(`SELECT count(*) FROM %s`, table.Table)

	var total int
	err := repository.db.QueryRow(ctx, query).Scan(&total)
	return total, dberr.Wrap(err, "count_scrapbook_items")
}
