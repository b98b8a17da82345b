// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

// VisibilityStatus is the soft-delete marker shared by categories, tags
// and comments. Rows are never removed; a delete flips the status.
type VisibilityStatus string

const (
	StatusNormal VisibilityStatus = "normal"
	StatusDelete VisibilityStatus = "delete"
)

// PostStatus is the publishing state of a post. Posts carry an extra
// draft variant the other entities lack. Only normal posts are ever
// returned by a public-facing query.
type PostStatus string

const (
	PostStatusNormal PostStatus = "normal"
	PostStatusDraft  PostStatus = "draft"
	PostStatusDelete PostStatus = "delete"
)

// SidebarStatus controls whether a sidebar widget renders.
type SidebarStatus string

const (
	SidebarStatusShow SidebarStatus = "show"
	SidebarStatusHide SidebarStatus = "hide"
)
