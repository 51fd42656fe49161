// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const createItem = `
INSERT INTO items (id, category_id, image_url, sort_order, is_active, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id, category_id, image_url, sort_order, is_active, created_at, updated_at
`

// CreateItemParams holds the fields for CreateItem.
type CreateItemParams struct {
	ID         string
	CategoryID string
	ImageURL   string
	SortOrder  int64
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CreateItem inserts an item and returns the stored row.
func (q *Queries) CreateItem(ctx context.Context, arg CreateItemParams) (Item, error) {
	row := q.db.QueryRowContext(ctx, createItem,
		arg.ID, arg.CategoryID, arg.ImageURL, arg.SortOrder, arg.IsActive, arg.CreatedAt, arg.UpdatedAt)
	var i Item
	err := row.Scan(&i.ID, &i.CategoryID, &i.ImageURL, &i.SortOrder, &i.IsActive, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const updateItem = `
UPDATE items
SET category_id = ?, image_url = ?, sort_order = ?, is_active = ?, updated_at = ?
WHERE id = ?
RETURNING id, category_id, image_url, sort_order, is_active, created_at, updated_at
`

// UpdateItemParams holds the fields for UpdateItem.
type UpdateItemParams struct {
	ID         string
	CategoryID string
	ImageURL   string
	SortOrder  int64
	IsActive   bool
	UpdatedAt  time.Time
}

// UpdateItem updates an item and returns the stored row.
func (q *Queries) UpdateItem(ctx context.Context, arg UpdateItemParams) (Item, error) {
	row := q.db.QueryRowContext(ctx, updateItem,
		arg.CategoryID, arg.ImageURL, arg.SortOrder, arg.IsActive, arg.UpdatedAt, arg.ID)
	var i Item
	err := row.Scan(&i.ID, &i.CategoryID, &i.ImageURL, &i.SortOrder, &i.IsActive, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const deleteItem = `DELETE FROM items WHERE id = ?`

// DeleteItem removes an item; translations and prices cascade.
func (q *Queries) DeleteItem(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deleteItem, id)
	return err
}

const getItem = `
SELECT id, category_id, image_url, sort_order, is_active, created_at, updated_at
FROM items WHERE id = ?
`

// GetItem fetches an item by ID.
func (q *Queries) GetItem(ctx context.Context, id string) (Item, error) {
	row := q.db.QueryRowContext(ctx, getItem, id)
	var i Item
	err := row.Scan(&i.ID, &i.CategoryID, &i.ImageURL, &i.SortOrder, &i.IsActive, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const listItems = `
SELECT id, category_id, image_url, sort_order, is_active, created_at, updated_at
FROM items
ORDER BY sort_order, created_at
`

// ListItems returns all items ordered by sort order.
func (q *Queries) ListItems(ctx context.Context) ([]Item, error) {
	return q.scanItems(ctx, listItems)
}

const listItemsByCategory = `
SELECT id, category_id, image_url, sort_order, is_active, created_at, updated_at
FROM items
WHERE category_id = ?
ORDER BY sort_order, created_at
`

// ListItemsByCategory returns all items in a category.
func (q *Queries) ListItemsByCategory(ctx context.Context, categoryID string) ([]Item, error) {
	return q.scanItems(ctx, listItemsByCategory, categoryID)
}

const listActiveItemsByCategory = `
SELECT id, category_id, image_url, sort_order, is_active, created_at, updated_at
FROM items
WHERE category_id = ? AND is_active = 1
ORDER BY sort_order, created_at
`

// ListActiveItemsByCategory returns active items in a category.
func (q *Queries) ListActiveItemsByCategory(ctx context.Context, categoryID string) ([]Item, error) {
	return q.scanItems(ctx, listActiveItemsByCategory, categoryID)
}

func (q *Queries) scanItems(ctx context.Context, query string, args ...any) ([]Item, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var i Item
		if err := rows.Scan(&i.ID, &i.CategoryID, &i.ImageURL, &i.SortOrder, &i.IsActive, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const countItems = `SELECT COUNT(*) FROM items`

// CountItems returns the total number of items.
func (q *Queries) CountItems(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countItems).Scan(&count)
	return count, err
}

const createItemTranslation = `
INSERT INTO item_i18n (item_id, locale, name, description)
VALUES (?, ?, ?, ?)
`

// CreateItemTranslationParams holds the fields for CreateItemTranslation.
type CreateItemTranslationParams struct {
	ItemID      string
	Locale      string
	Name        string
	Description string
}

// CreateItemTranslation inserts one per-locale name and description.
func (q *Queries) CreateItemTranslation(ctx context.Context, arg CreateItemTranslationParams) error {
	_, err := q.db.ExecContext(ctx, createItemTranslation, arg.ItemID, arg.Locale, arg.Name, arg.Description)
	return err
}

const deleteItemTranslations = `DELETE FROM item_i18n WHERE item_id = ?`

// DeleteItemTranslations removes all translations of an item.
func (q *Queries) DeleteItemTranslations(ctx context.Context, itemID string) error {
	_, err := q.db.ExecContext(ctx, deleteItemTranslations, itemID)
	return err
}

const listItemTranslations = `
SELECT id, item_id, locale, name, description
FROM item_i18n
WHERE item_id = ?
ORDER BY locale
`

// ListItemTranslations returns all translations of one item.
func (q *Queries) ListItemTranslations(ctx context.Context, itemID string) ([]ItemI18n, error) {
	return q.scanItemTranslations(ctx, listItemTranslations, itemID)
}

const listItemTranslationsByCategory = `
SELECT t.id, t.item_id, t.locale, t.name, t.description
FROM item_i18n t
JOIN items i ON i.id = t.item_id
WHERE i.category_id = ?
ORDER BY t.item_id, t.locale
`

// ListItemTranslationsByCategory returns translations for every item in
// a category, for callers that group them in memory.
func (q *Queries) ListItemTranslationsByCategory(ctx context.Context, categoryID string) ([]ItemI18n, error) {
	return q.scanItemTranslations(ctx, listItemTranslationsByCategory, categoryID)
}

func (q *Queries) scanItemTranslations(ctx context.Context, query string, args ...any) ([]ItemI18n, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ItemI18n
	for rows.Next() {
		var t ItemI18n
		if err := rows.Scan(&t.ID, &t.ItemID, &t.Locale, &t.Name, &t.Description); err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

const createItemPrice = `
INSERT INTO item_prices (id, item_id, size_name, price_cents, is_active, sort_order)
VALUES (?, ?, ?, ?, ?, ?)
`

// CreateItemPriceParams holds the fields for CreateItemPrice.
type CreateItemPriceParams struct {
	ID         string
	ItemID     string
	SizeName   string
	PriceCents int64
	IsActive   bool
	SortOrder  int64
}

// CreateItemPrice inserts one size variant for an item.
func (q *Queries) CreateItemPrice(ctx context.Context, arg CreateItemPriceParams) error {
	_, err := q.db.ExecContext(ctx, createItemPrice,
		arg.ID, arg.ItemID, arg.SizeName, arg.PriceCents, arg.IsActive, arg.SortOrder)
	return err
}

const deleteItemPrices = `DELETE FROM item_prices WHERE item_id = ?`

// DeleteItemPrices removes all price rows of an item.
func (q *Queries) DeleteItemPrices(ctx context.Context, itemID string) error {
	_, err := q.db.ExecContext(ctx, deleteItemPrices, itemID)
	return err
}

const listItemPrices = `
SELECT id, item_id, size_name, price_cents, is_active, sort_order
FROM item_prices
WHERE item_id = ?
ORDER BY sort_order, id
`

// ListItemPrices returns all price rows of one item.
func (q *Queries) ListItemPrices(ctx context.Context, itemID string) ([]ItemPrice, error) {
	return q.scanItemPrices(ctx, listItemPrices, itemID)
}

const listItemPricesByCategory = `
SELECT p.id, p.item_id, p.size_name, p.price_cents, p.is_active, p.sort_order
FROM item_prices p
JOIN items i ON i.id = p.item_id
WHERE i.category_id = ?
ORDER BY p.item_id, p.sort_order, p.id
`

// ListItemPricesByCategory returns price rows for every item in a category.
func (q *Queries) ListItemPricesByCategory(ctx context.Context, categoryID string) ([]ItemPrice, error) {
	return q.scanItemPrices(ctx, listItemPricesByCategory, categoryID)
}

func (q *Queries) scanItemPrices(ctx context.Context, query string, args ...any) ([]ItemPrice, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ItemPrice
	for rows.Next() {
		var p ItemPrice
		if err := rows.Scan(&p.ID, &p.ItemID, &p.SizeName, &p.PriceCents, &p.IsActive, &p.SortOrder); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}
