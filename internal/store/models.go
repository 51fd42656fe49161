// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"time"
)

// Category is a menu section identified by a URL slug.
type Category struct {
	ID        string
	Slug      string
	SortOrder int64
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CategoryI18n is a per-locale name for a category.
type CategoryI18n struct {
	ID         int64
	CategoryID string
	Locale     string
	Name       string
}

// Item is a dish or drink belonging to a category.
type Item struct {
	ID         string
	CategoryID string
	ImageURL   string
	SortOrder  int64
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ItemI18n is a per-locale name and description for an item.
type ItemI18n struct {
	ID          int64
	ItemID      string
	Locale      string
	Name        string
	Description string
}

// ItemPrice is one size variant of an item, priced in cents.
type ItemPrice struct {
	ID         string
	ItemID     string
	SizeName   string
	PriceCents int64
	IsActive   bool
	SortOrder  int64
}

// Profile is an account that can sign in to the admin API.
type Profile struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  sql.NullTime
}

// Event is an audit log entry.
type Event struct {
	ID        int64
	CreatedAt time.Time
	Level     string
	Category  string
	Message   string
	ProfileID sql.NullInt64
	IP        string
	Meta      string
}
