// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema holds table and column identifiers shared by the SQL
// repositories, so queries never spell table names inline.
package schema

import "strings"

// ScrapbookItemTable represents the scrapbook item table.
type ScrapbookItemTable struct {
	Table     string
	ID        string
	ImageURL  string
	Caption   string
	Width     string
	Alignment string
	Offset    string
	CreatedAt string
}

// columns shared by both dialects; "offset" is a reserved word and stays quoted.
var scrapbookItemColumns = ScrapbookItemTable{
	ID:        "id",
	ImageURL:  "image_url",
	Caption:   "caption",
	Width:     "width",
	Alignment: "alignment",
	Offset:    `"offset"`,
	CreatedAt: "created_at",
}

// ScrapbookItem is the schema definition for scrapbook.item (PostgreSQL).
var ScrapbookItem = scrapbookItemColumns.in("scrapbook.item")

// ScrapbookItemSQLite is the schema definition for scrapbook_item (SQLite).
var ScrapbookItemSQLite = scrapbookItemColumns.in("scrapbook_item")

func (t ScrapbookItemTable) in(table string) ScrapbookItemTable {
	t.Table = table
	return t
}

// Columns returns the selectable item columns in scan order.
func (t ScrapbookItemTable) Columns() []string {
	return []string{t.ID, t.ImageURL, t.Caption, t.Width, t.Alignment, t.Offset}
}

// SelectList renders [ScrapbookItemTable.Columns] as a SELECT list.
func (t ScrapbookItemTable) SelectList() string {
	return strings.Join(t.Columns(), ", ")
}
