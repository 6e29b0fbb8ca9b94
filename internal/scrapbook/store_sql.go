// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package scrapbook

import "github.com/taibuivan/scrapbook/pkg/pointer"

// rowScanner is satisfied by pgx.Row, pgx.Rows, *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanItem reads one row in [schema.ScrapbookItemTable.Columns] order.
func scanItem(row rowScanner) (*Item, error) {
	var (
		item      Item
		width     *int32
		alignment *string
		offset    *string
	)

	if err := row.Scan(&item.ID, &item.ImageURL, &item.Caption, &width, &alignment, &offset); err != nil {
		return nil, err
	}

	if width != nil {
		item.Width = pointer.To(int(*width))
	}
	if alignment != nil {
		item.Alignment = pointer.To(Alignment(*alignment))
	}
	if offset != nil {
		item.Offset = pointer.To(Offset(*offset))
	}
	return &item, nil
}

// insertArgs returns the nullable insert values in column order.
func insertArgs(item *Item) []any {
	var (
		width     *int32
		alignment *string
		offset    *string
	)
	if item.Width != nil {
		width = pointer.To(int32(*item.Width))
	}
	if item.Alignment != nil {
		alignment = pointer.To(string(*item.Alignment))
	}
	if item.Offset != nil {
		offset = pointer.To(string(*item.Offset))
	}
	return []any{item.ImageURL, item.Caption, width, alignment, offset}
}
