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

// CommentStore manages visitor comments. Comments attach to content by
// target path, not by foreign key, so the thread for a page is a value
// match on that path.
type CommentStore struct {
	db *sql.DB
}

// NewCommentStore returns a new CommentStore.
func NewCommentStore(db *sql.DB) *CommentStore {
	return &CommentStore{db: db}
}

const commentColumns = `id, target, nickname, email, website, content, status, created_at`

func scanComment(scanner interface{ Scan(...any) error }) (*models.Comment, error) {
	var c models.Comment
	err := scanner.Scan(
		&c.ID, &c.Target, &c.Nickname, &c.Email, &c.Website,
		&c.Content, &c.Status, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByTarget returns the visible comment thread for a content path,
// oldest first.
func (s *CommentStore) ListByTarget(target string) ([]models.Comment, error) {
	rows, err := s.db.Query(`
		SELECT `+commentColumns+`
		FROM comments
		WHERE target = $1 AND status = 'normal'
		ORDER BY created_at ASC
	`, target)
	if err != nil {
		return nil, fmt.Errorf("list comments by target: %w", err)
	}
	defer rows.Close()

	var items []models.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// List returns all non-deleted comments for the admin surface, newest first.
func (s *CommentStore) List() ([]models.Comment, error) {
	rows, err := s.db.Query(`
		SELECT ` + commentColumns + `
		FROM comments
		WHERE status <> 'delete'
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var items []models.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// Create persists a validated comment. New comments default to normal
// status and are immediately visible under their target path; there is
// no moderation queue.
func (s *CommentStore) Create(c *models.Comment) (*models.Comment, error) {
	created, err := scanComment(s.db.QueryRow(`
		INSERT INTO comments (target, nickname, email, website, content, status)
		VALUES ($1, $2, $3, $4, $5, 'normal')
		RETURNING `+commentColumns,
		c.Target, c.Nickname, c.Email, c.Website, c.Content))
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return created, nil
}

// SoftDelete hides a comment from its thread.
func (s *CommentStore) SoftDelete(id uuid.UUID) error {
	res, err := s.db.Exec(`UPDATE comments SET status = 'delete' WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
