// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package rbac implements the static role-to-permission table consulted by
// every mutating API route. The table is built once at init and never mutated.
package rbac

import "github.com/Ahmad-Rizki21/ajnusa-site/internal/model"

// Permission is a named capability checked before an action.
type Permission string

// Blog permissions.
const (
	PermViewBlog   Permission = "VIEW_BLOG"
	PermCreateBlog Permission = "CREATE_BLOG"
	PermEditBlog   Permission = "EDIT_BLOG"
	PermDeleteBlog Permission = "DELETE_BLOG"
)

// User management permissions.
const (
	PermViewUsers   Permission = "VIEW_USERS"
	PermCreateUsers Permission = "CREATE_USERS"
	PermEditUsers   Permission = "EDIT_USERS"
	PermDeleteUsers Permission = "DELETE_USERS"
)

// Dashboard permissions.
const (
	PermViewDashboard Permission = "VIEW_DASHBOARD"
)

// rolePermissions maps each role to its allowed permissions.
var rolePermissions = map[string]map[Permission]bool{
	model.RoleAdmin: permSet(
		PermViewBlog, PermCreateBlog, PermEditBlog, PermDeleteBlog,
		PermViewUsers, PermCreateUsers, PermEditUsers, PermDeleteUsers,
		PermViewDashboard,
	),
	model.RoleEditor: permSet(
		PermViewBlog, PermCreateBlog, PermEditBlog, PermDeleteBlog,
		PermViewDashboard,
	),
	model.RoleReadOnly: permSet(
		PermViewBlog,
		PermViewDashboard,
	),
}

func permSet(perms ...Permission) map[Permission]bool {
	set := make(map[Permission]bool, len(perms))
	for _, p := range perms {
		set[p] = true
	}
	return set
}

// HasPermission reports whether the role may perform the action.
// Unknown roles and unknown permissions yield false, never an error.
func HasPermission(role string, permission Permission) bool {
	return rolePermissions[role][permission]
}

// HasAnyPermission reports whether the role holds at least one of the permissions.
func HasAnyPermission(role string, permissions ...Permission) bool {
	for _, p := range permissions {
		if HasPermission(role, p) {
			return true
		}
	}
	return false
}

// HasAllPermissions reports whether the role holds every one of the permissions.
func HasAllPermissions(role string, permissions ...Permission) bool {
	for _, p := range permissions {
		if !HasPermission(role, p) {
			return false
		}
	}
	return true
}

// RoleDisplayName returns a human-readable name for a role.
func RoleDisplayName(role string) string {
	switch role {
	case model.RoleAdmin:
		return "Admin"
	case model.RoleEditor:
		return "Editor"
	case model.RoleReadOnly:
		return "Read Only"
	}
	return role
}

// RoleDescription returns a short description of what a role may do.
func RoleDescription(role string) string {
	switch role {
	case model.RoleAdmin:
		return "Full access: manages users, roles, and all content"
	case model.RoleEditor:
		return "Manages content (blog posts and popups) but not users or roles"
	case model.RoleReadOnly:
		return "Views the dashboard and content only, no edit or delete rights"
	}
	return ""
}
