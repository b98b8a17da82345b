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

// TagStore manages tags in the database.
type TagStore struct {
	db *sql.DB
}

// NewTagStore returns a new TagStore.
func NewTagStore(db *sql.DB) *TagStore {
	return &TagStore{db: db}
}

const tagColumns = `id, name, status, owner_id, created_at`

func scanTag(scanner interface{ Scan(...any) error }) (*models.Tag, error) {
	var t models.Tag
	err := scanner.Scan(&t.ID, &t.Name, &t.Status, &t.OwnerID, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FindVisible retrieves a normal-status tag by id. Returns nil for
// missing or soft-deleted ids alike.
func (s *TagStore) FindVisible(id uuid.UUID) (*models.Tag, error) {
	t, err := scanTag(s.db.QueryRow(
		`SELECT `+tagColumns+` FROM tags WHERE id = $1 AND status = 'normal'`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find tag: %w", err)
	}
	return t, nil
}

// List returns all non-deleted tags for the admin surface and the post form.
func (s *TagStore) List() ([]models.Tag, error) {
	rows, err := s.db.Query(`
		SELECT ` + tagColumns + ` FROM tags WHERE status <> 'delete' ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var items []models.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		items = append(items, *t)
	}
	return items, rows.Err()
}

// ListByOwner returns the non-deleted tags owned by one user, for the
// unprivileged admin surface.
func (s *TagStore) ListByOwner(ownerID uuid.UUID) ([]models.Tag, error) {
	rows, err := s.db.Query(`
		SELECT `+tagColumns+` FROM tags
		WHERE status <> 'delete' AND owner_id = $1
		ORDER BY created_at ASC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list tags by owner: %w", err)
	}
	defer rows.Close()

	var items []models.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		items = append(items, *t)
	}
	return items, rows.Err()
}

// FindByID retrieves a non-deleted tag for the admin edit form.
func (s *TagStore) FindByID(id uuid.UUID) (*models.Tag, error) {
	t, err := scanTag(s.db.QueryRow(
		`SELECT `+tagColumns+` FROM tags WHERE id = $1 AND status <> 'delete'`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find tag: %w", err)
	}
	return t, nil
}

// Create inserts a new tag owned by the scope's actor.
func (s *TagStore) Create(scope Scope, t *models.Tag) (*models.Tag, error) {
	created, err := scanTag(s.db.QueryRow(`
		INSERT INTO tags (name, status, owner_id)
		VALUES ($1, $2, $3)
		RETURNING `+tagColumns,
		t.Name, t.Status, scope.OwnerID))
	if err != nil {
		return nil, fmt.Errorf("create tag: %w", err)
	}
	return created, nil
}

// Update modifies a tag, re-stamping the owner from the scope.
func (s *TagStore) Update(scope Scope, t *models.Tag) error {
	res, err := s.db.Exec(`
		UPDATE tags SET name = $1, status = $2, owner_id = $3
		WHERE id = $4 AND status <> 'delete'
	`, t.Name, t.Status, scope.OwnerID, t.ID)
	if err != nil {
		return fmt.Errorf("update tag: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SoftDelete marks a tag deleted; post links stay in place.
func (s *TagStore) SoftDelete(id uuid.UUID) error {
	res, err := s.db.Exec(`UPDATE tags SET status = 'delete' WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
