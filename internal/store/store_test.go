// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"blogsys/internal/database"
	"blogsys/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "blogsys")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "blogsys")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := testDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	// Run migrations to ensure the schema is current.
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Downgrade goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testUser creates an owner with a unique email and registers cleanup of
// everything that owner touched (posts, tag links, categories, tags).
func testUser(t *testing.T, db *sql.DB, privileged bool) *models.User {
	t.Helper()

	s := NewUserStore(db)
	email := "test-" + uuid.NewString()[:8] + "@blogsys.test"
	u, err := s.Create(email, "pass", "Test Owner", privileged)
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}

	t.Cleanup(func() {
		db.Exec("DELETE FROM post_tags WHERE post_id IN (SELECT id FROM posts WHERE owner_id = $1)", u.ID)
		db.Exec("DELETE FROM posts WHERE owner_id = $1", u.ID)
		db.Exec("DELETE FROM tags WHERE owner_id = $1", u.ID)
		db.Exec("DELETE FROM categories WHERE owner_id = $1", u.ID)
		db.Exec("DELETE FROM users WHERE id = $1", u.ID)
	})
	return u
}

// testCategory creates a normal-status category owned by the given user.
func testCategory(t *testing.T, db *sql.DB, owner *models.User, name string, isNav bool) *models.Category {
	t.Helper()

	s := NewCategoryStore(db)
	c, err := s.Create(Scope{OwnerID: owner.ID}, &models.Category{
		Name:   name,
		Status: models.StatusNormal,
		IsNav:  isNav,
	})
	if err != nil {
		t.Fatalf("create test category: %v", err)
	}
	return c
}

// testPost creates a post with the given status in the given category.
func testPost(t *testing.T, db *sql.DB, owner *models.User, cat *models.Category, title string, status models.PostStatus) *models.Post {
	t.Helper()

	s := NewPostStore(db)
	p, err := s.Create(Scope{OwnerID: owner.ID}, &models.Post{
		Title:       title,
		Description: "about " + title,
		Content:     "body of " + title,
		Status:      status,
		CategoryID:  cat.ID,
	}, nil)
	if err != nil {
		t.Fatalf("create test post: %v", err)
	}
	return p
}

// cleanComments removes test comments by target. Call in t.Cleanup().
func cleanComments(t *testing.T, db *sql.DB, targets ...string) {
	t.Helper()
	for _, target := range targets {
		db.Exec("DELETE FROM comments WHERE target = $1", target)
	}
}

// containsPost reports whether the slice holds a post with the given id.
func containsPost(posts []models.Post, id uuid.UUID) bool {
	for _, p := range posts {
		if p.ID == id {
			return true
		}
	}
	return false
}
