// Package router sets up all HTTP routes and middleware chains for the
// blog. It organizes routes into public and admin groups with appropriate
// middleware stacks.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"blogsys/internal/handlers"
	"blogsys/internal/middleware"
	"blogsys/internal/session"
	"blogsys/web"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. commentLimiter throttles comment submission
// per client IP.
func New(sessionStore *session.Store, commentLimiter *middleware.RateLimiter, admin *handlers.Admin, auth *handlers.Auth, public *handlers.Public) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check — no auth, no CSRF.
	r.Get("/health", healthHandler)

	// Static assets (compiled CSS, vendored JS).
	staticFS, _ := fs.Sub(web.StaticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// Admin routes — require authentication and CSRF protection.
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.CSRF)

		// Auth pages — accessible without a session.
		r.Get("/login", auth.LoginPage)
		r.Post("/login", auth.LoginSubmit)
		r.Post("/logout", auth.Logout)

		// 2FA — requires auth but NOT completed 2FA.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/2fa/setup", auth.TwoFASetupPage)
			r.Post("/2fa/setup", auth.TwoFAVerifySubmit)
			r.Get("/2fa/verify", auth.TwoFAVerifyPage)
			r.Post("/2fa/verify", auth.TwoFAVerifySubmit)
		})

		// Authenticated + 2FA-verified admin area.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)

			r.Get("/", admin.Dashboard)

			r.Route("/posts", func(r chi.Router) {
				r.Get("/", admin.PostsList)
				r.Get("/new", admin.PostNew)
				r.Post("/new", admin.PostCreate)
				r.Get("/{id}", admin.PostEdit)
				r.Post("/{id}", admin.PostUpdate)
				r.Post("/{id}/delete", admin.PostDelete)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", admin.CategoriesList)
				r.Get("/new", admin.CategoryNew)
				r.Post("/new", admin.CategoryCreate)
				r.Get("/{id}", admin.CategoryEdit)
				r.Post("/{id}", admin.CategoryUpdate)
				r.Post("/{id}/delete", admin.CategoryDelete)
			})

			r.Route("/tags", func(r chi.Router) {
				r.Get("/", admin.TagsList)
				r.Get("/new", admin.TagNew)
				r.Post("/new", admin.TagCreate)
				r.Get("/{id}", admin.TagEdit)
				r.Post("/{id}", admin.TagUpdate)
				r.Post("/{id}/delete", admin.TagDelete)
			})

			r.Route("/comments", func(r chi.Router) {
				r.Get("/", admin.CommentsList)
				r.Post("/{id}/delete", admin.CommentDelete)
			})

			// Site-wide chrome is managed by privileged actors only.
			r.Route("/sidebars", func(r chi.Router) {
				r.Use(middleware.RequirePrivileged)
				r.Get("/", admin.SidebarsList)
				r.Get("/new", admin.SidebarNew)
				r.Post("/new", admin.SidebarCreate)
				r.Get("/{id}", admin.SidebarEdit)
				r.Post("/{id}", admin.SidebarUpdate)
			})

			r.Route("/links", func(r chi.Router) {
				r.Use(middleware.RequirePrivileged)
				r.Get("/", admin.LinksList)
				r.Get("/new", admin.LinkNew)
				r.Post("/new", admin.LinkCreate)
				r.Get("/{id}", admin.LinkEdit)
				r.Post("/{id}", admin.LinkUpdate)
				r.Post("/{id}/delete", admin.LinkDelete)
			})
		})
	})

	// Public routes.
	r.Get("/", public.Index)
	r.Get("/category/{id}", public.Category)
	r.Get("/tag/{id}", public.Tag)
	r.Get("/author/{id}", public.Author)
	r.Get("/search", public.Search)
	r.Get("/post/{id}", public.Detail)
	r.Get("/links", public.Links)
	r.With(commentLimiter.Middleware).Post("/comment", public.CommentSubmit)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
