// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"blogsys/internal/models"
)

// PostStore handles all post-related database operations. The public
// query methods share one base query — normal-status posts ordered by
// recency — and compose additional predicates onto it with AND.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

const postColumns = `p.id, p.title, p.description, p.content, p.status, p.category_id, p.owner_id,
	       p.created_at, p.updated_at, c.name, u.display_name`

const postFrom = `
	FROM posts p
	JOIN categories c ON c.id = p.category_id
	JOIN users u ON u.id = p.owner_id`

// visibleBase is the root of every public query. Derived intents append
// predicates; none of them may replace the status filter.
const visibleBase = `WHERE p.status = 'normal'`

func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	p := &models.Post{}
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Description, &p.Content, &p.Status,
		&p.CategoryID, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt,
		&p.CategoryName, &p.OwnerName,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// listVisible runs a public listing query. extra is ANDed onto the
// normal-status base; args are its parameters. Results are ordered by
// created_at descending and paginated; a page past the end yields an
// empty slice, never an error.
func (s *PostStore) listVisible(extra string, page, pageSize int, args ...any) ([]models.Post, int, error) {
	if page < 1 {
		page = 1
	}

	where := visibleBase
	if extra != "" {
		where += " AND " + extra
	}

	var total int
	countQ := `SELECT COUNT(*)` + postFrom + ` ` + where
	if err := s.db.QueryRow(countQ, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	n := len(args)
	listQ := fmt.Sprintf(`SELECT %s %s %s ORDER BY p.created_at DESC LIMIT $%d OFFSET $%d`,
		postColumns, postFrom, where, n+1, n+2)
	rows, err := s.db.Query(listQ, append(args, pageSize, (page-1)*pageSize)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, total, rows.Err()
}

// ListLatest returns the requested page of visible posts, newest first,
// plus the total count of visible posts. This is the base sequence every
// other public intent refines.
func (s *PostStore) ListLatest(page, pageSize int) ([]models.Post, int, error) {
	return s.listVisible("", page, pageSize)
}

// ListByCategory returns visible posts in the given category.
func (s *PostStore) ListByCategory(categoryID uuid.UUID, page, pageSize int) ([]models.Post, int, error) {
	return s.listVisible(`p.category_id = $1`, page, pageSize, categoryID)
}

// ListByTag returns visible posts carrying the given tag.
func (s *PostStore) ListByTag(tagID uuid.UUID, page, pageSize int) ([]models.Post, int, error) {
	return s.listVisible(
		`p.id IN (SELECT post_id FROM post_tags WHERE tag_id = $1)`,
		page, pageSize, tagID)
}

// ListByAuthor returns visible posts created by the given owner.
func (s *PostStore) ListByAuthor(ownerID uuid.UUID, page, pageSize int) ([]models.Post, int, error) {
	return s.listVisible(`p.owner_id = $1`, page, pageSize, ownerID)
}

// Search returns visible posts whose title or description contains the
// keyword, case-insensitively. An empty keyword is the identity
// transform: the result equals ListLatest, same set and order.
func (s *PostStore) Search(keyword string, page, pageSize int) ([]models.Post, int, error) {
	if keyword == "" {
		return s.ListLatest(page, pageSize)
	}
	pattern := "%" + escapeLike(keyword) + "%"
	return s.listVisible(
		`(p.title ILIKE $1 ESCAPE '\' OR p.description ILIKE $1 ESCAPE '\')`,
		page, pageSize, pattern)
}

// FindVisible retrieves a single visible post by id, with its tags
// attached. Returns nil if the id does not resolve to a normal-status
// post — drafts and deleted posts are indistinguishable from missing ids.
func (s *PostStore) FindVisible(id uuid.UUID) (*models.Post, error) {
	p, err := scanPost(s.db.QueryRow(
		`SELECT `+postColumns+postFrom+` `+visibleBase+` AND p.id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post: %w", err)
	}

	p.Tags, err = s.tagsFor(p.ID)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// tagsFor loads the normal-status tags attached to a post.
func (s *PostStore) tagsFor(postID uuid.UUID) ([]models.Tag, error) {
	rows, err := s.db.Query(`
		SELECT t.id, t.name, t.status, t.owner_id, t.created_at
		FROM tags t
		JOIN post_tags pt ON pt.tag_id = t.id
		WHERE pt.post_id = $1 AND t.status = 'normal'
		ORDER BY t.name
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("post tags: %w", err)
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Status, &t.OwnerID, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// --- Administrative queries (owner-scoped) ---

// ListOwned returns non-deleted posts visible to the scope: everything
// for a privileged actor, only the actor's own rows otherwise. An
// optional category filter narrows the list further.
func (s *PostStore) ListOwned(scope Scope, categoryID *uuid.UUID) ([]models.Post, error) {
	where := `WHERE p.status <> 'delete'`
	var args []any
	if categoryID != nil {
		args = append(args, *categoryID)
		where += fmt.Sprintf(` AND p.category_id = $%d`, len(args))
	}
	if clause := scope.ownerClause("p.owner_id", len(args)+1); clause != "" {
		where += clause
		args = append(args, scope.OwnerID)
	}

	rows, err := s.db.Query(
		`SELECT `+postColumns+postFrom+` `+where+` ORDER BY p.created_at DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("list owned posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

// FindOwned retrieves a non-deleted post for editing. A non-privileged
// scope cannot see another owner's rows; those come back nil exactly
// like a missing id.
func (s *PostStore) FindOwned(scope Scope, id uuid.UUID) (*models.Post, error) {
	where := `WHERE p.id = $1 AND p.status <> 'delete'`
	args := []any{id}
	if clause := scope.ownerClause("p.owner_id", 2); clause != "" {
		where += clause
		args = append(args, scope.OwnerID)
	}

	p, err := scanPost(s.db.QueryRow(`SELECT `+postColumns+postFrom+` `+where, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find owned post: %w", err)
	}

	p.Tags, err = s.tagsFor(p.ID)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Create inserts a new post. The owner is always the scope's actor —
// whatever owner the caller put on the struct is overridden here, inside
// the same statement as the rest of the write.
func (s *PostStore) Create(scope Scope, p *models.Post, tagIDs []uuid.UUID) (*models.Post, error) {
	p.OwnerID = scope.OwnerID

	created := &models.Post{}
	err := s.db.QueryRow(`
		INSERT INTO posts (title, description, content, status, category_id, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, title, description, content, status, category_id, owner_id, created_at, updated_at
	`, p.Title, p.Description, p.Content, p.Status, p.CategoryID, p.OwnerID).Scan(
		&created.ID, &created.Title, &created.Description, &created.Content, &created.Status,
		&created.CategoryID, &created.OwnerID, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	if err := s.replaceTags(created.ID, tagIDs); err != nil {
		return nil, err
	}
	return created, nil
}

// Update modifies an existing post through the same ownership filter as
// FindOwned. The owner column is re-stamped from the scope so a crafted
// form cannot move a post to another owner. Returns sql.ErrNoRows when
// the scoped query matches nothing.
func (s *PostStore) Update(scope Scope, p *models.Post, tagIDs []uuid.UUID) error {
	args := []any{p.Title, p.Description, p.Content, p.Status, p.CategoryID, scope.OwnerID, p.ID}
	q := `
		UPDATE posts SET
			title = $1, description = $2, content = $3, status = $4,
			category_id = $5, owner_id = $6, updated_at = NOW()
		WHERE id = $7 AND status <> 'delete'`
	if clause := scope.ownerClause("owner_id", 8); clause != "" {
		q += clause
		args = append(args, scope.OwnerID)
	}

	res, err := s.db.Exec(q, args...)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}

	return s.replaceTags(p.ID, tagIDs)
}

// SoftDelete marks a post deleted. The row stays put so historical
// comments and tag links keep resolving.
func (s *PostStore) SoftDelete(scope Scope, id uuid.UUID) error {
	args := []any{id}
	q := `UPDATE posts SET status = 'delete', updated_at = NOW() WHERE id = $1`
	if clause := scope.ownerClause("owner_id", 2); clause != "" {
		q += clause
		args = append(args, scope.OwnerID)
	}

	res, err := s.db.Exec(q, args...)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// replaceTags swaps a post's tag set in place.
func (s *PostStore) replaceTags(postID uuid.UUID, tagIDs []uuid.UUID) error {
	if _, err := s.db.Exec(`DELETE FROM post_tags WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("clear post tags: %w", err)
	}
	for _, tagID := range tagIDs {
		if _, err := s.db.Exec(`
			INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, postID, tagID); err != nil {
			return fmt.Errorf("attach tag: %w", err)
		}
	}
	return nil
}

// escapeLike neutralizes LIKE metacharacters so a keyword matches as a
// literal substring.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
