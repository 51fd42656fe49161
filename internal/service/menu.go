// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service composes store queries into menu and audit operations.
package service

import (
	"context"
	"database/sql"
	"fmt"
	"html"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/olegiv/menu-go/internal/menu"
	"github.com/olegiv/menu-go/internal/store"
)

// textPolicy strips all markup from user-entered translation text.
var textPolicy = bluemonday.StrictPolicy()

// sanitizeText removes any HTML from a text field. Sanitizing escapes
// entities, so the result is unescaped back to plain text.
func sanitizeText(s string) string {
	return html.UnescapeString(textPolicy.Sanitize(s))
}

// sanitizeTranslations returns a copy of translations with markup
// stripped from names and descriptions.
func sanitizeTranslations(translations []menu.Translation) []menu.Translation {
	out := make([]menu.Translation, len(translations))
	for i, t := range translations {
		out[i] = menu.Translation{
			Locale:      t.Locale,
			Name:        sanitizeText(t.Name),
			Description: sanitizeText(t.Description),
		}
	}
	return out
}

// MenuService handles menu reads and writes. Writes that touch
// translations or prices replace the full set inside a transaction.
type MenuService struct {
	db      *sql.DB
	queries *store.Queries
}

// NewMenuService creates a MenuService backed by db.
func NewMenuService(db *sql.DB) *MenuService {
	return &MenuService{db: db, queries: store.New(db)}
}

// CategoryInput carries the fields accepted by category writes.
type CategoryInput struct {
	Slug         string
	SortOrder    int64
	IsActive     bool
	Translations []menu.Translation
}

// ItemInput carries the fields accepted by item writes.
type ItemInput struct {
	CategoryID   string
	ImageURL     string
	SortOrder    int64
	IsActive     bool
	Translations []menu.Translation
	Prices       []menu.Price
}

// CategoryRecord is the admin-facing shape of a category with all of
// its translations.
type CategoryRecord struct {
	ID           string             `json:"id"`
	Slug         string             `json:"slug"`
	SortOrder    int64              `json:"sort_order"`
	IsActive     bool               `json:"is_active"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
	Translations []menu.Translation `json:"translations"`
}

// ItemRecord is the admin-facing shape of an item with all of its
// translations and price rows.
type ItemRecord struct {
	ID           string             `json:"id"`
	CategoryID   string             `json:"category_id"`
	ImageURL     string             `json:"image_url"`
	SortOrder    int64              `json:"sort_order"`
	IsActive     bool               `json:"is_active"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
	Translations []menu.Translation `json:"translations"`
	Prices       []menu.Price       `json:"prices"`
}

// CategoryDetail is the public shape of one category with its items.
type CategoryDetail struct {
	Category menu.CategoryView `json:"category"`
	Items    []menu.ItemView   `json:"items"`
}

// ListPublicCategories returns active categories as locale-resolved views.
func (s *MenuService) ListPublicCategories(ctx context.Context, locale string) ([]menu.CategoryView, error) {
	categories, err := s.queries.ListActiveCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	translations, err := s.queries.ListAllCategoryTranslations(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing category translations: %w", err)
	}
	byCategory := make(map[string][]menu.Translation)
	for _, t := range translations {
		byCategory[t.CategoryID] = append(byCategory[t.CategoryID], categoryTranslation(t))
	}

	views := make([]menu.CategoryView, 0, len(categories))
	for _, c := range categories {
		views = append(views, menu.NewCategoryView(categoryFields(c), byCategory[c.ID], locale))
	}
	return views, nil
}

// GetPublicCategory returns one active category by slug with its active
// items as locale-resolved list views. sql.ErrNoRows is returned
// unwrapped when the slug is unknown or the category is inactive.
func (s *MenuService) GetPublicCategory(ctx context.Context, slug, locale string) (CategoryDetail, error) {
	category, err := s.queries.GetCategoryBySlug(ctx, slug)
	if err != nil {
		return CategoryDetail{}, err
	}
	if !category.IsActive {
		return CategoryDetail{}, sql.ErrNoRows
	}

	categoryTranslations, err := s.queries.ListCategoryTranslations(ctx, category.ID)
	if err != nil {
		return CategoryDetail{}, fmt.Errorf("listing category translations: %w", err)
	}

	items, err := s.queries.ListActiveItemsByCategory(ctx, category.ID)
	if err != nil {
		return CategoryDetail{}, fmt.Errorf("listing items: %w", err)
	}

	itemTranslations, err := s.queries.ListItemTranslationsByCategory(ctx, category.ID)
	if err != nil {
		return CategoryDetail{}, fmt.Errorf("listing item translations: %w", err)
	}
	translationsByItem := make(map[string][]menu.Translation)
	for _, t := range itemTranslations {
		translationsByItem[t.ItemID] = append(translationsByItem[t.ItemID], itemTranslation(t))
	}

	prices, err := s.queries.ListItemPricesByCategory(ctx, category.ID)
	if err != nil {
		return CategoryDetail{}, fmt.Errorf("listing item prices: %w", err)
	}
	pricesByItem := make(map[string][]menu.Price)
	for _, p := range prices {
		pricesByItem[p.ItemID] = append(pricesByItem[p.ItemID], itemPrice(p))
	}

	detail := CategoryDetail{
		Category: menu.NewCategoryView(categoryFields(category), toTranslations(categoryTranslations), locale),
		Items:    make([]menu.ItemView, 0, len(items)),
	}
	for _, item := range items {
		detail.Items = append(detail.Items,
			menu.NewItemListView(itemFields(item), translationsByItem[item.ID], pricesByItem[item.ID], locale))
	}
	return detail, nil
}

// GetPublicItem returns one active item as a locale-resolved view with
// its active prices. sql.ErrNoRows is returned unwrapped when the item
// is unknown or inactive.
func (s *MenuService) GetPublicItem(ctx context.Context, id, locale string) (menu.ItemView, error) {
	item, err := s.queries.GetItem(ctx, id)
	if err != nil {
		return menu.ItemView{}, err
	}
	if !item.IsActive {
		return menu.ItemView{}, sql.ErrNoRows
	}

	translations, err := s.queries.ListItemTranslations(ctx, item.ID)
	if err != nil {
		return menu.ItemView{}, fmt.Errorf("listing item translations: %w", err)
	}
	prices, err := s.queries.ListItemPrices(ctx, item.ID)
	if err != nil {
		return menu.ItemView{}, fmt.Errorf("listing item prices: %w", err)
	}
	categoryTranslations, err := s.queries.ListCategoryTranslations(ctx, item.CategoryID)
	if err != nil {
		return menu.ItemView{}, fmt.Errorf("listing category translations: %w", err)
	}

	return menu.NewItemView(itemFields(item), toItemTranslations(translations),
		toPrices(prices), toTranslations(categoryTranslations), locale), nil
}

// ListCategories returns all categories with translations for the admin API.
func (s *MenuService) ListCategories(ctx context.Context) ([]CategoryRecord, error) {
	categories, err := s.queries.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	translations, err := s.queries.ListAllCategoryTranslations(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing category translations: %w", err)
	}
	byCategory := make(map[string][]menu.Translation)
	for _, t := range translations {
		byCategory[t.CategoryID] = append(byCategory[t.CategoryID], categoryTranslation(t))
	}

	records := make([]CategoryRecord, 0, len(categories))
	for _, c := range categories {
		records = append(records, categoryRecord(c, byCategory[c.ID]))
	}
	return records, nil
}

// GetCategory returns one category with translations for the admin API.
func (s *MenuService) GetCategory(ctx context.Context, id string) (CategoryRecord, error) {
	category, err := s.queries.GetCategory(ctx, id)
	if err != nil {
		return CategoryRecord{}, err
	}
	translations, err := s.queries.ListCategoryTranslations(ctx, id)
	if err != nil {
		return CategoryRecord{}, fmt.Errorf("listing category translations: %w", err)
	}
	return categoryRecord(category, toTranslations(translations)), nil
}

// CreateCategory inserts a category and its translations in one transaction.
func (s *MenuService) CreateCategory(ctx context.Context, input CategoryInput) (CategoryRecord, error) {
	input.Translations = sanitizeTranslations(input.Translations)

	var record CategoryRecord
	err := s.inTx(ctx, func(qtx *store.Queries) error {
		now := time.Now()
		category, err := qtx.CreateCategory(ctx, store.CreateCategoryParams{
			ID:        uuid.NewString(),
			Slug:      input.Slug,
			SortOrder: input.SortOrder,
			IsActive:  input.IsActive,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return fmt.Errorf("creating category: %w", err)
		}

		if err := insertCategoryTranslations(ctx, qtx, category.ID, input.Translations); err != nil {
			return err
		}

		record = categoryRecord(category, input.Translations)
		return nil
	})
	return record, err
}

// UpdateCategory updates a category and replaces its full translation
// set in one transaction. sql.ErrNoRows is returned unwrapped when the
// category does not exist.
func (s *MenuService) UpdateCategory(ctx context.Context, id string, input CategoryInput) (CategoryRecord, error) {
	input.Translations = sanitizeTranslations(input.Translations)

	var record CategoryRecord
	err := s.inTx(ctx, func(qtx *store.Queries) error {
		category, err := qtx.UpdateCategory(ctx, store.UpdateCategoryParams{
			ID:        id,
			Slug:      input.Slug,
			SortOrder: input.SortOrder,
			IsActive:  input.IsActive,
			UpdatedAt: time.Now(),
		})
		if err != nil {
			return err
		}

		if err := qtx.DeleteCategoryTranslations(ctx, id); err != nil {
			return fmt.Errorf("deleting category translations: %w", err)
		}
		if err := insertCategoryTranslations(ctx, qtx, id, input.Translations); err != nil {
			return err
		}

		record = categoryRecord(category, input.Translations)
		return nil
	})
	return record, err
}

// DeleteCategory removes a category; items, translations, and prices
// follow through ON DELETE CASCADE.
func (s *MenuService) DeleteCategory(ctx context.Context, id string) error {
	if _, err := s.queries.GetCategory(ctx, id); err != nil {
		return err
	}
	return s.queries.DeleteCategory(ctx, id)
}

// ListItems returns all items with translations and prices for the
// admin API, optionally filtered by category.
func (s *MenuService) ListItems(ctx context.Context, categoryID string) ([]ItemRecord, error) {
	var (
		items []store.Item
		err   error
	)
	if categoryID != "" {
		items, err = s.queries.ListItemsByCategory(ctx, categoryID)
	} else {
		items, err = s.queries.ListItems(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}

	records := make([]ItemRecord, 0, len(items))
	for _, item := range items {
		translations, err := s.queries.ListItemTranslations(ctx, item.ID)
		if err != nil {
			return nil, fmt.Errorf("listing item translations: %w", err)
		}
		prices, err := s.queries.ListItemPrices(ctx, item.ID)
		if err != nil {
			return nil, fmt.Errorf("listing item prices: %w", err)
		}
		records = append(records, itemRecord(item, toItemTranslations(translations), toPrices(prices)))
	}
	return records, nil
}

// GetItem returns one item with translations and prices for the admin API.
func (s *MenuService) GetItem(ctx context.Context, id string) (ItemRecord, error) {
	item, err := s.queries.GetItem(ctx, id)
	if err != nil {
		return ItemRecord{}, err
	}
	translations, err := s.queries.ListItemTranslations(ctx, id)
	if err != nil {
		return ItemRecord{}, fmt.Errorf("listing item translations: %w", err)
	}
	prices, err := s.queries.ListItemPrices(ctx, id)
	if err != nil {
		return ItemRecord{}, fmt.Errorf("listing item prices: %w", err)
	}
	return itemRecord(item, toItemTranslations(translations), toPrices(prices)), nil
}

// CreateItem inserts an item with its translations and prices in one
// transaction. The referenced category must exist.
func (s *MenuService) CreateItem(ctx context.Context, input ItemInput) (ItemRecord, error) {
	input.Translations = sanitizeTranslations(input.Translations)

	var record ItemRecord
	err := s.inTx(ctx, func(qtx *store.Queries) error {
		if _, err := qtx.GetCategory(ctx, input.CategoryID); err != nil {
			return err
		}

		now := time.Now()
		item, err := qtx.CreateItem(ctx, store.CreateItemParams{
			ID:         uuid.NewString(),
			CategoryID: input.CategoryID,
			ImageURL:   input.ImageURL,
			SortOrder:  input.SortOrder,
			IsActive:   input.IsActive,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
		if err != nil {
			return fmt.Errorf("creating item: %w", err)
		}

		if err := insertItemTranslations(ctx, qtx, item.ID, input.Translations); err != nil {
			return err
		}
		prices, err := insertItemPrices(ctx, qtx, item.ID, input.Prices)
		if err != nil {
			return err
		}

		record = itemRecord(item, input.Translations, prices)
		return nil
	})
	return record, err
}

// UpdateItem updates an item and replaces its full translation and
// price sets in one transaction. sql.ErrNoRows is returned unwrapped
// when the item does not exist.
func (s *MenuService) UpdateItem(ctx context.Context, id string, input ItemInput) (ItemRecord, error) {
	input.Translations = sanitizeTranslations(input.Translations)

	var record ItemRecord
	err := s.inTx(ctx, func(qtx *store.Queries) error {
		if _, err := qtx.GetCategory(ctx, input.CategoryID); err != nil {
			return err
		}

		item, err := qtx.UpdateItem(ctx, store.UpdateItemParams{
			ID:         id,
			CategoryID: input.CategoryID,
			ImageURL:   input.ImageURL,
			SortOrder:  input.SortOrder,
			IsActive:   input.IsActive,
			UpdatedAt:  time.Now(),
		})
		if err != nil {
			return err
		}

		if err := qtx.DeleteItemTranslations(ctx, id); err != nil {
			return fmt.Errorf("deleting item translations: %w", err)
		}
		if err := insertItemTranslations(ctx, qtx, id, input.Translations); err != nil {
			return err
		}
		if err := qtx.DeleteItemPrices(ctx, id); err != nil {
			return fmt.Errorf("deleting item prices: %w", err)
		}
		prices, err := insertItemPrices(ctx, qtx, id, input.Prices)
		if err != nil {
			return err
		}

		record = itemRecord(item, input.Translations, prices)
		return nil
	})
	return record, err
}

// DeleteItem removes an item and returns its last stored state so
// callers can release resources it referenced. Translations and prices
// cascade.
func (s *MenuService) DeleteItem(ctx context.Context, id string) (ItemRecord, error) {
	record, err := s.GetItem(ctx, id)
	if err != nil {
		return ItemRecord{}, err
	}
	return record, s.queries.DeleteItem(ctx, id)
}

// inTx runs fn against a transaction-bound Queries, rolling back on error.
func (s *MenuService) inTx(ctx context.Context, fn func(qtx *store.Queries) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(s.queries.WithTx(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func insertCategoryTranslations(ctx context.Context, qtx *store.Queries, categoryID string, translations []menu.Translation) error {
	for _, t := range translations {
		if err := qtx.CreateCategoryTranslation(ctx, store.CreateCategoryTranslationParams{
			CategoryID: categoryID,
			Locale:     t.Locale,
			Name:       t.Name,
		}); err != nil {
			return fmt.Errorf("creating category translation %s: %w", t.Locale, err)
		}
	}
	return nil
}

func insertItemTranslations(ctx context.Context, qtx *store.Queries, itemID string, translations []menu.Translation) error {
	for _, t := range translations {
		if err := qtx.CreateItemTranslation(ctx, store.CreateItemTranslationParams{
			ItemID:      itemID,
			Locale:      t.Locale,
			Name:        t.Name,
			Description: t.Description,
		}); err != nil {
			return fmt.Errorf("creating item translation %s: %w", t.Locale, err)
		}
	}
	return nil
}

// insertItemPrices assigns fresh IDs to the incoming price rows and
// returns them with IDs filled in.
func insertItemPrices(ctx context.Context, qtx *store.Queries, itemID string, prices []menu.Price) ([]menu.Price, error) {
	stored := make([]menu.Price, 0, len(prices))
	for _, p := range prices {
		p.ID = uuid.NewString()
		if err := qtx.CreateItemPrice(ctx, store.CreateItemPriceParams{
			ID:         p.ID,
			ItemID:     itemID,
			SizeName:   p.SizeName,
			PriceCents: p.PriceCents,
			IsActive:   p.IsActive,
			SortOrder:  p.SortOrder,
		}); err != nil {
			return nil, fmt.Errorf("creating item price %q: %w", p.SizeName, err)
		}
		stored = append(stored, p)
	}
	return stored, nil
}

func categoryFields(c store.Category) menu.CategoryFields {
	return menu.CategoryFields{
		ID:        c.ID,
		Slug:      c.Slug,
		SortOrder: c.SortOrder,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func itemFields(i store.Item) menu.ItemFields {
	return menu.ItemFields{
		ID:         i.ID,
		CategoryID: i.CategoryID,
		ImageURL:   i.ImageURL,
		SortOrder:  i.SortOrder,
		IsActive:   i.IsActive,
		CreatedAt:  i.CreatedAt,
		UpdatedAt:  i.UpdatedAt,
	}
}

func categoryRecord(c store.Category, translations []menu.Translation) CategoryRecord {
	if translations == nil {
		translations = []menu.Translation{}
	}
	return CategoryRecord{
		ID:           c.ID,
		Slug:         c.Slug,
		SortOrder:    c.SortOrder,
		IsActive:     c.IsActive,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
		Translations: translations,
	}
}

func itemRecord(i store.Item, translations []menu.Translation, prices []menu.Price) ItemRecord {
	if translations == nil {
		translations = []menu.Translation{}
	}
	if prices == nil {
		prices = []menu.Price{}
	}
	return ItemRecord{
		ID:           i.ID,
		CategoryID:   i.CategoryID,
		ImageURL:     i.ImageURL,
		SortOrder:    i.SortOrder,
		IsActive:     i.IsActive,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
		Translations: translations,
		Prices:       prices,
	}
}

func categoryTranslation(t store.CategoryI18n) menu.Translation {
	return menu.Translation{Locale: t.Locale, Name: t.Name}
}

func itemTranslation(t store.ItemI18n) menu.Translation {
	return menu.Translation{Locale: t.Locale, Name: t.Name, Description: t.Description}
}

func itemPrice(p store.ItemPrice) menu.Price {
	return menu.Price{
		ID:         p.ID,
		SizeName:   p.SizeName,
		PriceCents: p.PriceCents,
		IsActive:   p.IsActive,
		SortOrder:  p.SortOrder,
	}
}

func toTranslations(rows []store.CategoryI18n) []menu.Translation {
	out := make([]menu.Translation, 0, len(rows))
	for _, t := range rows {
		out = append(out, categoryTranslation(t))
	}
	return out
}

func toItemTranslations(rows []store.ItemI18n) []menu.Translation {
	out := make([]menu.Translation, 0, len(rows))
	for _, t := range rows {
		out = append(out, itemTranslation(t))
	}
	return out
}

func toPrices(rows []store.ItemPrice) []menu.Price {
	out := make([]menu.Price, 0, len(rows))
	for _, p := range rows {
		out = append(out, itemPrice(p))
	}
	return out
}
