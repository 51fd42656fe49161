// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const profileColumns = `id, email, password_hash, name, role, created_at, updated_at, last_login_at`

const createProfile = `
INSERT INTO profiles (email, password_hash, name, role, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING ` + profileColumns

// CreateProfileParams holds the fields for CreateProfile.
type CreateProfileParams struct {
	Email        string
	PasswordHash string
	Name         string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateProfile inserts a profile and returns the stored row.
func (q *Queries) CreateProfile(ctx context.Context, arg CreateProfileParams) (Profile, error) {
	row := q.db.QueryRowContext(ctx, createProfile,
		arg.Email, arg.PasswordHash, arg.Name, arg.Role, arg.CreatedAt, arg.UpdatedAt)
	return scanProfile(row)
}

const getProfile = `
SELECT ` + profileColumns + ` FROM profiles WHERE id = ?`

// GetProfile fetches a profile by ID.
func (q *Queries) GetProfile(ctx context.Context, id int64) (Profile, error) {
	return scanProfile(q.db.QueryRowContext(ctx, getProfile, id))
}

const getProfileByEmail = `
SELECT ` + profileColumns + ` FROM profiles WHERE email = ?`

// GetProfileByEmail fetches a profile by email address.
func (q *Queries) GetProfileByEmail(ctx context.Context, email string) (Profile, error) {
	return scanProfile(q.db.QueryRowContext(ctx, getProfileByEmail, email))
}

const listProfiles = `
SELECT ` + profileColumns + ` FROM profiles ORDER BY created_at, id`

// ListProfiles returns all profiles in creation order.
func (q *Queries) ListProfiles(ctx context.Context) ([]Profile, error) {
	rows, err := q.db.QueryContext(ctx, listProfiles)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Profile
	for rows.Next() {
		var p Profile
		if err := rows.Scan(&p.ID, &p.Email, &p.PasswordHash, &p.Name, &p.Role,
			&p.CreatedAt, &p.UpdatedAt, &p.LastLoginAt); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

const updateProfileRole = `
UPDATE profiles SET role = ?, updated_at = ? WHERE id = ?
RETURNING ` + profileColumns

// UpdateProfileRoleParams holds the fields for UpdateProfileRole.
type UpdateProfileRoleParams struct {
	ID        int64
	Role      string
	UpdatedAt time.Time
}

// UpdateProfileRole changes a profile's role and returns the stored row.
func (q *Queries) UpdateProfileRole(ctx context.Context, arg UpdateProfileRoleParams) (Profile, error) {
	return scanProfile(q.db.QueryRowContext(ctx, updateProfileRole, arg.Role, arg.UpdatedAt, arg.ID))
}

const updateProfilePassword = `
UPDATE profiles SET password_hash = ?, updated_at = ? WHERE id = ?`

// UpdateProfilePasswordParams holds the fields for UpdateProfilePassword.
type UpdateProfilePasswordParams struct {
	ID           int64
	PasswordHash string
	UpdatedAt    time.Time
}

// UpdateProfilePassword replaces a profile's password hash. Used both
// for password changes and transparent rehashes after login.
func (q *Queries) UpdateProfilePassword(ctx context.Context, arg UpdateProfilePasswordParams) error {
	_, err := q.db.ExecContext(ctx, updateProfilePassword, arg.PasswordHash, arg.UpdatedAt, arg.ID)
	return err
}

const updateProfileLastLogin = `
UPDATE profiles SET last_login_at = ? WHERE id = ?`

// UpdateProfileLastLoginParams holds the fields for UpdateProfileLastLogin.
type UpdateProfileLastLoginParams struct {
	ID          int64
	LastLoginAt time.Time
}

// UpdateProfileLastLogin records a successful login time.
func (q *Queries) UpdateProfileLastLogin(ctx context.Context, arg UpdateProfileLastLoginParams) error {
	_, err := q.db.ExecContext(ctx, updateProfileLastLogin, arg.LastLoginAt, arg.ID)
	return err
}

const deleteProfile = `DELETE FROM profiles WHERE id = ?`

// DeleteProfile removes a profile.
func (q *Queries) DeleteProfile(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteProfile, id)
	return err
}

const countProfiles = `SELECT COUNT(*) FROM profiles`

// CountProfiles returns the total number of profiles.
func (q *Queries) CountProfiles(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countProfiles).Scan(&count)
	return count, err
}

// rowScanner is the subset of *sql.Row and *sql.Rows used by scanProfile.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (Profile, error) {
	var p Profile
	err := row.Scan(&p.ID, &p.Email, &p.PasswordHash, &p.Name, &p.Role,
		&p.CreatedAt, &p.UpdatedAt, &p.LastLoginAt)
	return p, err
}
