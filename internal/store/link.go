package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"blogsys/internal/models"
)

// LinkStore manages friend-site links.
type LinkStore struct {
	db *sql.DB
}

// NewLinkStore returns a new LinkStore.
func NewLinkStore(db *sql.DB) *LinkStore {
	return &LinkStore{db: db}
}

const linkColumns = `id, title, href, weight, created_at`

func scanLink(scanner interface{ Scan(...any) error }) (*models.Link, error) {
	var l models.Link
	err := scanner.Scan(&l.ID, &l.Title, &l.Href, &l.Weight, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// List returns all links, heaviest first.
func (s *LinkStore) List() ([]models.Link, error) {
	rows, err := s.db.Query(`
		SELECT ` + linkColumns + ` FROM links ORDER BY weight DESC, created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	defer rows.Close()

	var items []models.Link
	for rows.Next() {
		l, err := scanLink(rows)
		if err != nil {
			return nil, fmt.Errorf("scan link: %w", err)
		}
		items = append(items, *l)
	}
	return items, rows.Err()
}

// FindByID retrieves a link for the admin edit form. Returns nil if not found.
func (s *LinkStore) FindByID(id uuid.UUID) (*models.Link, error) {
	l, err := scanLink(s.db.QueryRow(
		`SELECT `+linkColumns+` FROM links WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find link: %w", err)
	}
	return l, nil
}

// Create inserts a new link.
func (s *LinkStore) Create(l *models.Link) (*models.Link, error) {
	created, err := scanLink(s.db.QueryRow(`
		INSERT INTO links (title, href, weight)
		VALUES ($1, $2, $3)
		RETURNING `+linkColumns,
		l.Title, l.Href, l.Weight))
	if err != nil {
		return nil, fmt.Errorf("create link: %w", err)
	}
	return created, nil
}

// Update modifies a link.
func (s *LinkStore) Update(l *models.Link) error {
	res, err := s.db.Exec(`
		UPDATE links SET title = $1, href = $2, weight = $3 WHERE id = $4
	`, l.Title, l.Href, l.Weight, l.ID)
	if err != nil {
		return fmt.Errorf("update link: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a link. Links carry no history, so removal is physical.
func (s *LinkStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM links WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete link: %w", err)
	}
	return nil
}
