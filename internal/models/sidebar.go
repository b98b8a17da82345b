// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// SidebarDisplayType selects how a sidebar widget is rendered.
type SidebarDisplayType string

const (
	SidebarDisplayHTML        SidebarDisplayType = "html"
	SidebarDisplayLatestPosts SidebarDisplayType = "latest_posts"
	SidebarDisplayComments    SidebarDisplayType = "comments"
)

// Sidebar is a configurable widget rendered on every public page.
// Only status=show instances render.
type Sidebar struct {
	ID          uuid.UUID          `json:"id"`
	Title       string             `json:"title"`
	Content     string             `json:"content"`
	Status      SidebarStatus      `json:"status"`
	DisplayType SidebarDisplayType `json:"display_type"`
	CreatedAt   time.Time          `json:"created_at"`
}
