// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups posts. A category flagged IsNav appears in the top
// site navigation instead of the general category listing.
type Category struct {
	ID        uuid.UUID        `json:"id"`
	Name      string           `json:"name"`
	Status    VisibilityStatus `json:"status"`
	IsNav     bool             `json:"is_nav"`
	OwnerID   uuid.UUID        `json:"owner_id"`
	CreatedAt time.Time        `json:"created_at"`

	// Virtual field populated by store methods.
	PostCount int `json:"post_count"`
}

// NavGroups is the two-way split of the visible categories used by every
// listing and detail page: Navs feed the header navigation, Categories
// the sidebar category list.
type NavGroups struct {
	Navs       []Category
	Categories []Category
}

// PartitionNav splits categories into nav and non-nav groups in a single
// pass, preserving the input order within each group. Callers pass the
// normal-status set; the partition itself does not filter.
func PartitionNav(categories []Category) NavGroups {
	var g NavGroups
	for _, c := range categories {
		if c.IsNav {
			g.Navs = append(g.Navs, c)
		} else {
			g.Categories = append(g.Categories, c)
		}
	}
	return g
}
