// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// demoCategory describes one seeded menu section with its items.
type demoCategory struct {
	slug      string
	sortOrder int64
	names     map[string]string // locale -> name
	items     []demoItem
}

// demoItem carries the localized names and the single regular price of
// a seeded item.
type demoItem struct {
	names      map[string]string // locale -> name
	priceCents int64
}

// demoMenu is a café menu with Arabic, English, and Turkish
// translations, used to showcase the multilingual API.
var demoMenu = []demoCategory{
	{
		slug:      "desserts",
		sortOrder: 1,
		names:     map[string]string{"ar": "الحلويات", "en": "Desserts", "tr": "Tatlılar"},
		items: []demoItem{
			{names: map[string]string{"ar": "وافل شوكولاتة", "en": "Chocolate Waffle", "tr": "Çikolatalı Waffle"}, priceCents: 3500},
			{names: map[string]string{"ar": "وافل فراولة", "en": "Strawberry Waffle", "tr": "Çilekli Waffle"}, priceCents: 3500},
			{names: map[string]string{"ar": "وافل لوتس", "en": "Lotus Waffle", "tr": "Lotus Waffle"}, priceCents: 3500},
			{names: map[string]string{"ar": "كريب تشيز كيك", "en": "Cheesecake Crepe", "tr": "Cheesecake Krepi"}, priceCents: 3500},
			{names: map[string]string{"ar": "تشيز كيك تيراميسو", "en": "Tiramisu Cheesecake", "tr": "Tiramisu Cheesecake"}, priceCents: 3500},
		},
	},
	{
		slug:      "beverages",
		sortOrder: 2,
		names:     map[string]string{"ar": "المشروبات", "en": "Beverages", "tr": "İçecekler"},
		items: []demoItem{
			{names: map[string]string{"ar": "عصير برتقال", "en": "Orange Juice", "tr": "Portakal Suyu"}, priceCents: 1500},
			{names: map[string]string{"ar": "عصير تفاح", "en": "Apple Juice", "tr": "Elma Suyu"}, priceCents: 1500},
			{names: map[string]string{"ar": "ليموناضة", "en": "Lemonade", "tr": "Limonata"}, priceCents: 1500},
		},
	},
	{
		slug:      "smoothies",
		sortOrder: 3,
		names:     map[string]string{"ar": "السموذي والميلك شيك", "en": "Smoothies & Milk Shakes", "tr": "Smoothie & Milkshake"},
		items: []demoItem{
			{names: map[string]string{"ar": "موه فراولة", "en": "Strawberry Mocha", "tr": "Çilekli Mocha"}, priceCents: 2500},
			{names: map[string]string{"ar": "موه مانجو", "en": "Mango Mocha", "tr": "Mangolu Mocha"}, priceCents: 2500},
			{names: map[string]string{"ar": "ميلك شيك شوكولاتة", "en": "Chocolate Milkshake", "tr": "Çikolatalı Milkshake"}, priceCents: 2200},
			{names: map[string]string{"ar": "ميلك شيك أوريو", "en": "Oreo Milkshake", "tr": "Oreo Milkshake"}, priceCents: 2200},
		},
	},
}

// SeedDemo populates an empty database with the demo café menu. It is
// called after Seed() when MENU_DO_SEED=true and does nothing when any
// category already exists.
func SeedDemo(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	count, err := queries.CountCategories(ctx)
	if err != nil {
		return fmt.Errorf("counting categories: %w", err)
	}
	if count > 0 {
		slog.Info("menu content already exists, skipping demo seed")
		return nil
	}

	slog.Info("seeding demo menu")

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	qtx := queries.WithTx(tx)
	now := time.Now()

	for _, dc := range demoMenu {
		category, err := qtx.CreateCategory(ctx, CreateCategoryParams{
			ID:        uuid.NewString(),
			Slug:      dc.slug,
			SortOrder: dc.sortOrder,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return fmt.Errorf("creating category %q: %w", dc.slug, err)
		}

		for locale, name := range dc.names {
			if err := qtx.CreateCategoryTranslation(ctx, CreateCategoryTranslationParams{
				CategoryID: category.ID,
				Locale:     locale,
				Name:       name,
			}); err != nil {
				return fmt.Errorf("creating category translation %q/%s: %w", dc.slug, locale, err)
			}
		}

		for i, di := range dc.items {
			item, err := qtx.CreateItem(ctx, CreateItemParams{
				ID:         uuid.NewString(),
				CategoryID: category.ID,
				SortOrder:  int64(i),
				IsActive:   true,
				CreatedAt:  now,
				UpdatedAt:  now,
			})
			if err != nil {
				return fmt.Errorf("creating item in %q: %w", dc.slug, err)
			}

			for locale, name := range di.names {
				if err := qtx.CreateItemTranslation(ctx, CreateItemTranslationParams{
					ItemID: item.ID,
					Locale: locale,
					Name:   name,
				}); err != nil {
					return fmt.Errorf("creating item translation %s: %w", locale, err)
				}
			}

			if err := qtx.CreateItemPrice(ctx, CreateItemPriceParams{
				ID:         uuid.NewString(),
				ItemID:     item.ID,
				SizeName:   "Regular",
				PriceCents: di.priceCents,
				IsActive:   true,
				SortOrder:  0,
			}); err != nil {
				return fmt.Errorf("creating item price: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing demo seed: %w", err)
	}

	slog.Info("demo menu seeded successfully")
	return nil
}
