// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"blogsys/internal/models"
)

// SidebarStore manages the configurable sidebar widgets.
type SidebarStore struct {
	db *sql.DB
}

// NewSidebarStore returns a new SidebarStore.
func NewSidebarStore(db *sql.DB) *SidebarStore {
	return &SidebarStore{db: db}
}

const sidebarColumns = `id, title, content, status, display_type, created_at`

func scanSidebar(scanner interface{ Scan(...any) error }) (*models.Sidebar, error) {
	var sb models.Sidebar
	err := scanner.Scan(&sb.ID, &sb.Title, &sb.Content, &sb.Status, &sb.DisplayType, &sb.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &sb, nil
}

// ListShown returns the widgets rendered on public pages.
func (s *SidebarStore) ListShown() ([]models.Sidebar, error) {
	rows, err := s.db.Query(`
		SELECT ` + sidebarColumns + ` FROM sidebars WHERE status = 'show' ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list shown sidebars: %w", err)
	}
	defer rows.Close()

	var items []models.Sidebar
	for rows.Next() {
		sb, err := scanSidebar(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sidebar: %w", err)
		}
		items = append(items, *sb)
	}
	return items, rows.Err()
}

// List returns every widget, shown or hidden, for the admin surface.
func (s *SidebarStore) List() ([]models.Sidebar, error) {
	rows, err := s.db.Query(`
		SELECT ` + sidebarColumns + ` FROM sidebars ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list sidebars: %w", err)
	}
	defer rows.Close()

	var items []models.Sidebar
	for rows.Next() {
		sb, err := scanSidebar(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sidebar: %w", err)
		}
		items = append(items, *sb)
	}
	return items, rows.Err()
}

// FindByID retrieves a widget for the admin edit form. Returns nil if not found.
func (s *SidebarStore) FindByID(id uuid.UUID) (*models.Sidebar, error) {
	sb, err := scanSidebar(s.db.QueryRow(
		`SELECT `+sidebarColumns+` FROM sidebars WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find sidebar: %w", err)
	}
	return sb, nil
}

// Create inserts a new widget.
func (s *SidebarStore) Create(sb *models.Sidebar) (*models.Sidebar, error) {
	created, err := scanSidebar(s.db.QueryRow(`
		INSERT INTO sidebars (title, content, status, display_type)
		VALUES ($1, $2, $3, $4)
		RETURNING `+sidebarColumns,
		sb.Title, sb.Content, sb.Status, sb.DisplayType))
	if err != nil {
		return nil, fmt.Errorf("create sidebar: %w", err)
	}
	return created, nil
}

// Update modifies a widget.
func (s *SidebarStore) Update(sb *models.Sidebar) error {
	res, err := s.db.Exec(`
		UPDATE sidebars SET title = $1, content = $2, status = $3, display_type = $4
		WHERE id = $5
	`, sb.Title, sb.Content, sb.Status, sb.DisplayType, sb.ID)
	if err != nil {
		return fmt.Errorf("update sidebar: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
