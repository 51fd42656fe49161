// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package menu flattens relational menu rows into locale-resolved view
// models. All functions are pure: they operate on already-fetched rows,
// perform no I/O, and are safe for concurrent use.
package menu

import (
	"fmt"
	"sort"
	"time"
)

// Fallback labels substituted when no translation exists for the
// requested locale.
const (
	FallbackItemName     = "Untitled"
	FallbackCategoryName = "Unknown"
)

// Translation is one locale's text for a category or item.
type Translation struct {
	Locale      string `json:"locale"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Price is one size/price row of an item.
type Price struct {
	ID         string `json:"id,omitempty"`
	SizeName   string `json:"size_name"`
	PriceCents int64  `json:"price_cents"`
	IsActive   bool   `json:"is_active"`
	SortOrder  int64  `json:"sort_order"`
}

// ResolveName returns the name for the requested locale, or fallback when
// no translation matches. The first matching translation wins; duplicate
// (locale) rows are a storage-integrity concern, not handled here.
func ResolveName(translations []Translation, locale, fallback string) string {
	for _, t := range translations {
		if t.Locale == locale {
			return t.Name
		}
	}
	return fallback
}

// ResolveDescription returns the description for the requested locale, or
// the empty string when no translation matches. There is no fallback text
// for descriptions.
func ResolveDescription(translations []Translation, locale string) string {
	for _, t := range translations {
		if t.Locale == locale {
			return t.Description
		}
	}
	return ""
}

// FilterActivePrices keeps only prices whose active flag is set.
func FilterActivePrices(prices []Price) []Price {
	active := make([]Price, 0, len(prices))
	for _, p := range prices {
		if p.IsActive {
			active = append(active, p)
		}
	}
	return active
}

// ComputeMinPrice returns the minimum price in cents across the given
// prices, or 0 when the list is empty. Callers that must distinguish
// "free" from "no price data" should check the price list length.
func ComputeMinPrice(prices []Price) int64 {
	if len(prices) == 0 {
		return 0
	}
	min := prices[0].PriceCents
	for _, p := range prices[1:] {
		if p.PriceCents < min {
			min = p.PriceCents
		}
	}
	return min
}

// SortPrices returns a copy sorted ascending by sort order. The sort is
// stable: rows with equal sort order keep their input order.
func SortPrices(prices []Price) []Price {
	sorted := make([]Price, len(prices))
	copy(sorted, prices)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SortOrder < sorted[j].SortOrder
	})
	return sorted
}

// CategoryView is a flat, locale-resolved category record.
type CategoryView struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	SortOrder int64     `json:"sort_order"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ItemView is a flat, locale-resolved item record. Prices holds the
// active prices sorted by sort order; MinPriceCents is computed over the
// same set. An empty Prices with MinPriceCents 0 means no price data.
type ItemView struct {
	ID            string    `json:"id"`
	CategoryID    string    `json:"category_id"`
	CategoryName  string    `json:"category_name,omitempty"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	ImageURL      string    `json:"image_url,omitempty"`
	SortOrder     int64     `json:"sort_order"`
	IsActive      bool      `json:"is_active"`
	MinPriceCents int64     `json:"min_price_cents"`
	MinPriceText  string    `json:"min_price_text"`
	Prices        []Price   `json:"prices,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CategoryFields carries the entity columns a CategoryView needs.
type CategoryFields struct {
	ID        string
	Slug      string
	SortOrder int64
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ItemFields carries the entity columns an ItemView needs.
type ItemFields struct {
	ID         string
	CategoryID string
	ImageURL   string
	SortOrder  int64
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewCategoryView resolves a category for the requested locale. The
// category's own slug is the name fallback.
func NewCategoryView(category CategoryFields, translations []Translation, locale string) CategoryView {
	return CategoryView{
		ID:        category.ID,
		Slug:      category.Slug,
		Name:      ResolveName(translations, locale, category.Slug),
		SortOrder: category.SortOrder,
		IsActive:  category.IsActive,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}

// NewItemView builds the item detail view: active prices sorted by sort
// order, locale-resolved name, description, and category name, and the
// minimum active price.
func NewItemView(item ItemFields, translations []Translation, prices []Price, categoryTranslations []Translation, locale string) ItemView {
	active := SortPrices(FilterActivePrices(prices))
	minPrice := ComputeMinPrice(active)

	return ItemView{
		ID:            item.ID,
		CategoryID:    item.CategoryID,
		CategoryName:  ResolveName(categoryTranslations, locale, FallbackCategoryName),
		Name:          ResolveName(translations, locale, FallbackItemName),
		Description:   ResolveDescription(translations, locale),
		ImageURL:      item.ImageURL,
		SortOrder:     item.SortOrder,
		IsActive:      item.IsActive,
		MinPriceCents: minPrice,
		MinPriceText:  FormatPrice(minPrice),
		Prices:        active,
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
}

// NewItemListView builds the item list view: prices are used only to
// compute the minimum active price and are not retained individually.
func NewItemListView(item ItemFields, translations []Translation, prices []Price, locale string) ItemView {
	view := NewItemView(item, translations, prices, nil, locale)
	view.CategoryName = ""
	view.Prices = nil
	return view
}

// FormatPrice renders cents as Turkish Lira text, omitting decimals when
// the amount is whole (1500 cents is "15 TL", not "15.00 TL").
func FormatPrice(cents int64) string {
	lira := cents / 100
	rem := cents % 100
	if rem == 0 {
		return fmt.Sprintf("%d TL", lira)
	}
	return fmt.Sprintf("%d.%02d TL", lira, rem)
}
