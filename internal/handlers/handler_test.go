// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL or Valkey are
// unavailable.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"blogsys/internal/database"
	"blogsys/internal/middleware"
	"blogsys/internal/models"
	"blogsys/internal/render"
	"blogsys/internal/session"
	"blogsys/internal/store"
	"blogsys/internal/validation"
	"blogsys/internal/view"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "blogsys")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "blogsys")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, "session:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB            *sql.DB
	Valkey        *redis.Client
	Renderer      *render.Renderer
	Sessions      *session.Store
	PostStore     *store.PostStore
	CategoryStore *store.CategoryStore
	TagStore      *store.TagStore
	UserStore     *store.UserStore
	CommentStore  *store.CommentStore
	SidebarStore  *store.SidebarStore
	LinkStore     *store.LinkStore
	Admin         *Admin
	Auth          *Auth
	Public        *Public
}

// newTestEnv creates a complete test environment with all handler
// dependencies. The public handlers run with the default page size of 2.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	vk := testValkeyClient(t)

	renderer, err := render.New(true)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	sessions := session.NewStore(vk, false)
	postStore := store.NewPostStore(db)
	categoryStore := store.NewCategoryStore(db)
	tagStore := store.NewTagStore(db)
	userStore := store.NewUserStore(db)
	commentStore := store.NewCommentStore(db)
	sidebarStore := store.NewSidebarStore(db)
	linkStore := store.NewLinkStore(db)

	siteBuilder := view.NewBuilder(categoryStore, sidebarStore)
	validator := validation.New()

	admin := NewAdmin(renderer, sessions, postStore, categoryStore, tagStore,
		commentStore, sidebarStore, linkStore)
	auth := NewAuth(renderer, sessions, userStore)
	public := NewPublic(renderer, siteBuilder, postStore, categoryStore,
		tagStore, userStore, commentStore, linkStore, validator, 2)

	return &testEnv{
		DB:            db,
		Valkey:        vk,
		Renderer:      renderer,
		Sessions:      sessions,
		PostStore:     postStore,
		CategoryStore: categoryStore,
		TagStore:      tagStore,
		UserStore:     userStore,
		CommentStore:  commentStore,
		SidebarStore:  sidebarStore,
		LinkStore:     linkStore,
		Admin:         admin,
		Auth:          auth,
		Public:        public,
	}
}

// testSession creates a session.Data for testing.
func testSession(ownerID uuid.UUID, email string, privileged bool) *session.Data {
	return &session.Data{
		OwnerID:     ownerID,
		Email:       email,
		DisplayName: "Test User",
		Privileged:  privileged,
		TwoFADone:   true,
	}
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// withSession adds session data to a request's context.
func withSession(r *http.Request, sess *session.Data) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), middleware.SessionKey, sess))
}

// withChiURLParamAndSession combines both helpers.
func withChiURLParamAndSession(r *http.Request, key, value string, sess *session.Data) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, middleware.SessionKey, sess)
	return r.WithContext(ctx)
}

// scopeForOwner builds a non-privileged scope for one owner.
func scopeForOwner(ownerID uuid.UUID) store.Scope {
	return store.Scope{OwnerID: ownerID}
}

// newTestOwner creates an owner and registers cleanup of everything that
// owner touched.
func newTestOwner(t *testing.T, env *testEnv, privileged bool) *models.User {
	t.Helper()

	email := "handler-" + uuid.NewString()[:8] + "@blogsys.test"
	u, err := env.UserStore.Create(email, "pass", "Test User", privileged)
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}

	t.Cleanup(func() {
		env.DB.Exec("DELETE FROM post_tags WHERE post_id IN (SELECT id FROM posts WHERE owner_id = $1)", u.ID)
		env.DB.Exec("DELETE FROM posts WHERE owner_id = $1", u.ID)
		env.DB.Exec("DELETE FROM tags WHERE owner_id = $1", u.ID)
		env.DB.Exec("DELETE FROM categories WHERE owner_id = $1", u.ID)
		env.DB.Exec("DELETE FROM users WHERE id = $1", u.ID)
	})
	return u
}

// newTestPost creates a post in a fresh category owned by the given user.
func newTestPost(t *testing.T, env *testEnv, owner *models.User, title string, status models.PostStatus) *models.Post {
	t.Helper()

	scope := store.Scope{OwnerID: owner.ID}
	cat, err := env.CategoryStore.Create(scope, &models.Category{
		Name:   "cat-" + uuid.NewString()[:8],
		Status: models.StatusNormal,
	})
	if err != nil {
		t.Fatalf("create test category: %v", err)
	}

	p, err := env.PostStore.Create(scope, &models.Post{
		Title:       title,
		Description: "about " + title,
		Content:     "body of **" + title + "**",
		Status:      status,
		CategoryID:  cat.ID,
	}, nil)
	if err != nil {
		t.Fatalf("create test post: %v", err)
	}
	return p
}

// cleanComments removes comments for the given target.
func cleanComments(t *testing.T, db *sql.DB, target string) {
	t.Helper()
	db.Exec("DELETE FROM comments WHERE target = $1", target)
}
