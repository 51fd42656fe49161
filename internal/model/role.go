// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Profile roles.
const (
	RoleCustomer = "customer"
	RoleStaff    = "staff"
	RoleAdmin    = "admin"
)

// ValidRoles returns all valid profile roles.
func ValidRoles() []string {
	return []string{RoleCustomer, RoleStaff, RoleAdmin}
}

// IsValidRole checks if a role is one of the valid profile roles.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles() {
		if r == role {
			return true
		}
	}
	return false
}

// RoleCanManageMenu reports whether a role grants access to the admin API.
func RoleCanManageMenu(role string) bool {
	return role == RoleStaff || role == RoleAdmin
}
