// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package view builds the cross-cutting context attached to every public
// page: the shown sidebar widgets and the nav/category partition. It is
// computed once per request and shared by header and sidebar rendering.
package view

import (
	"fmt"

	"blogsys/internal/models"
	"blogsys/internal/store"
)

// SiteContext carries the per-request shared page furniture.
type SiteContext struct {
	Sidebars   []models.Sidebar
	Navs       []models.Category
	Categories []models.Category
}

// Builder assembles SiteContext values from the stores.
type Builder struct {
	categories *store.CategoryStore
	sidebars   *store.SidebarStore
}

// NewBuilder returns a Builder over the given stores.
func NewBuilder(categories *store.CategoryStore, sidebars *store.SidebarStore) *Builder {
	return &Builder{categories: categories, sidebars: sidebars}
}

// Build fetches the visible categories and shown sidebars and partitions
// the categories into nav and listing groups.
func (b *Builder) Build() (*SiteContext, error) {
	cats, err := b.categories.ListNormal()
	if err != nil {
		return nil, fmt.Errorf("site context categories: %w", err)
	}

	sidebars, err := b.sidebars.ListShown()
	if err != nil {
		return nil, fmt.Errorf("site context sidebars: %w", err)
	}

	groups := models.PartitionNav(cats)
	return &SiteContext{
		Sidebars:   sidebars,
		Navs:       groups.Navs,
		Categories: groups.Categories,
	}, nil
}
