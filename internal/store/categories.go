// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const createCategory = `
INSERT INTO categories (id, slug, sort_order, is_active, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING id, slug, sort_order, is_active, created_at, updated_at
`

// CreateCategoryParams holds the fields for CreateCategory.
type CreateCategoryParams struct {
	ID        string
	Slug      string
	SortOrder int64
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateCategory inserts a category and returns the stored row.
func (q *Queries) CreateCategory(ctx context.Context, arg CreateCategoryParams) (Category, error) {
	row := q.db.QueryRowContext(ctx, createCategory,
		arg.ID, arg.Slug, arg.SortOrder, arg.IsActive, arg.CreatedAt, arg.UpdatedAt)
	var c Category
	err := row.Scan(&c.ID, &c.Slug, &c.SortOrder, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

const updateCategory = `
UPDATE categories
SET slug = ?, sort_order = ?, is_active = ?, updated_at = ?
WHERE id = ?
RETURNING id, slug, sort_order, is_active, created_at, updated_at
`

// UpdateCategoryParams holds the fields for UpdateCategory.
type UpdateCategoryParams struct {
	ID        string
	Slug      string
	SortOrder int64
	IsActive  bool
	UpdatedAt time.Time
}

// UpdateCategory updates a category and returns the stored row.
func (q *Queries) UpdateCategory(ctx context.Context, arg UpdateCategoryParams) (Category, error) {
	row := q.db.QueryRowContext(ctx, updateCategory,
		arg.Slug, arg.SortOrder, arg.IsActive, arg.UpdatedAt, arg.ID)
	var c Category
	err := row.Scan(&c.ID, &c.Slug, &c.SortOrder, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

const deleteCategory = `DELETE FROM categories WHERE id = ?`

// DeleteCategory removes a category. Translations, items, item
// translations, and prices follow through ON DELETE CASCADE.
func (q *Queries) DeleteCategory(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deleteCategory, id)
	return err
}

const getCategory = `
SELECT id, slug, sort_order, is_active, created_at, updated_at
FROM categories WHERE id = ?
`

// GetCategory fetches a category by ID.
func (q *Queries) GetCategory(ctx context.Context, id string) (Category, error) {
	row := q.db.QueryRowContext(ctx, getCategory, id)
	var c Category
	err := row.Scan(&c.ID, &c.Slug, &c.SortOrder, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

const getCategoryBySlug = `
SELECT id, slug, sort_order, is_active, created_at, updated_at
FROM categories WHERE slug = ?
`

// GetCategoryBySlug fetches a category by its URL slug.
func (q *Queries) GetCategoryBySlug(ctx context.Context, slug string) (Category, error) {
	row := q.db.QueryRowContext(ctx, getCategoryBySlug, slug)
	var c Category
	err := row.Scan(&c.ID, &c.Slug, &c.SortOrder, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

const listCategories = `
SELECT id, slug, sort_order, is_active, created_at, updated_at
FROM categories
ORDER BY sort_order, created_at
`

// ListCategories returns all categories ordered by sort order.
func (q *Queries) ListCategories(ctx context.Context) ([]Category, error) {
	return q.scanCategories(ctx, listCategories)
}

const listActiveCategories = `
SELECT id, slug, sort_order, is_active, created_at, updated_at
FROM categories
WHERE is_active = 1
ORDER BY sort_order, created_at
`

// ListActiveCategories returns active categories ordered by sort order.
func (q *Queries) ListActiveCategories(ctx context.Context) ([]Category, error) {
	return q.scanCategories(ctx, listActiveCategories)
}

func (q *Queries) scanCategories(ctx context.Context, query string, args ...any) ([]Category, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Slug, &c.SortOrder, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

const countCategories = `SELECT COUNT(*) FROM categories`

// CountCategories returns the total number of categories.
func (q *Queries) CountCategories(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countCategories).Scan(&count)
	return count, err
}

const createCategoryTranslation = `
INSERT INTO category_i18n (category_id, locale, name)
VALUES (?, ?, ?)
`

// CreateCategoryTranslationParams holds the fields for CreateCategoryTranslation.
type CreateCategoryTranslationParams struct {
	CategoryID string
	Locale     string
	Name       string
}

// CreateCategoryTranslation inserts one per-locale name for a category.
func (q *Queries) CreateCategoryTranslation(ctx context.Context, arg CreateCategoryTranslationParams) error {
	_, err := q.db.ExecContext(ctx, createCategoryTranslation, arg.CategoryID, arg.Locale, arg.Name)
	return err
}

const deleteCategoryTranslations = `DELETE FROM category_i18n WHERE category_id = ?`

// DeleteCategoryTranslations removes all translations of a category,
// the first half of a full-replace translation write.
func (q *Queries) DeleteCategoryTranslations(ctx context.Context, categoryID string) error {
	_, err := q.db.ExecContext(ctx, deleteCategoryTranslations, categoryID)
	return err
}

const listCategoryTranslations = `
SELECT id, category_id, locale, name
FROM category_i18n
WHERE category_id = ?
ORDER BY locale
`

// ListCategoryTranslations returns all translations of one category.
func (q *Queries) ListCategoryTranslations(ctx context.Context, categoryID string) ([]CategoryI18n, error) {
	return q.scanCategoryTranslations(ctx, listCategoryTranslations, categoryID)
}

const listAllCategoryTranslations = `
SELECT id, category_id, locale, name
FROM category_i18n
ORDER BY category_id, locale
`

// ListAllCategoryTranslations returns translations for every category,
// for callers that group them in memory.
func (q *Queries) ListAllCategoryTranslations(ctx context.Context) ([]CategoryI18n, error) {
	return q.scanCategoryTranslations(ctx, listAllCategoryTranslations)
}

func (q *Queries) scanCategoryTranslations(ctx context.Context, query string, args ...any) ([]CategoryI18n, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []CategoryI18n
	for rows.Next() {
		var t CategoryI18n
		if err := rows.Scan(&t.ID, &t.CategoryID, &t.Locale, &t.Name); err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}
