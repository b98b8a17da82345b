// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Post is a blog article. The body is Markdown source; rendering happens
// at display time. Deletion is a status transition, never a row removal,
// so historical comments and tag links stay intact.
type Post struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Content     string     `json:"content"`
	Status      PostStatus `json:"status"`
	CategoryID  uuid.UUID  `json:"category_id"`
	OwnerID     uuid.UUID  `json:"owner_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Virtual fields populated by store methods.
	CategoryName string `json:"category_name,omitempty"`
	OwnerName    string `json:"owner_name,omitempty"`
	Tags         []Tag  `json:"tags,omitempty"`
}

// IsVisible returns true if the post appears on the public site.
func (p *Post) IsVisible() bool {
	return p.Status == PostStatusNormal
}

// EditPath returns the admin edit link for the post, shown as a derived
// read-only column on the admin list.
func (p *Post) EditPath() string {
	return "/admin/posts/" + p.ID.String()
}

// HasTag reports whether the post carries the given tag. Used by the
// admin form to preselect tags.
func (p *Post) HasTag(id uuid.UUID) bool {
	for _, t := range p.Tags {
		if t.ID == id {
			return true
		}
	}
	return false
}
