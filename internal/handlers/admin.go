// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"blogsys/internal/middleware"
	"blogsys/internal/models"
	"blogsys/internal/render"
	"blogsys/internal/session"
	"blogsys/internal/store"
)

// Admin groups all admin panel HTTP handlers and their dependencies.
type Admin struct {
	renderer      *render.Renderer
	sessions      *session.Store
	postStore     *store.PostStore
	categoryStore *store.CategoryStore
	tagStore      *store.TagStore
	commentStore  *store.CommentStore
	sidebarStore  *store.SidebarStore
	linkStore     *store.LinkStore
}

// NewAdmin creates a new Admin handler group with the given dependencies.
func NewAdmin(renderer *render.Renderer, sessions *session.Store, postStore *store.PostStore, categoryStore *store.CategoryStore, tagStore *store.TagStore, commentStore *store.CommentStore, sidebarStore *store.SidebarStore, linkStore *store.LinkStore) *Admin {
	return &Admin{
		renderer:      renderer,
		sessions:      sessions,
		postStore:     postStore,
		categoryStore: categoryStore,
		tagStore:      tagStore,
		commentStore:  commentStore,
		sidebarStore:  sidebarStore,
		linkStore:     linkStore,
	}
}

// scopeFrom derives the data-access scope from the request's session.
// Every admin query goes through this scope; a non-privileged actor only
// ever sees their own rows.
func scopeFrom(r *http.Request) store.Scope {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		return store.Scope{}
	}
	return store.Scope{OwnerID: sess.OwnerID, Privileged: sess.Privileged}
}

// idParam parses the {id} URL parameter. The second return is false for
// anything that is not a UUID.
func idParam(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	return id, err == nil
}

// scopedCategories returns the category set the acting user may manage.
func (a *Admin) scopedCategories(scope store.Scope) ([]models.Category, error) {
	if scope.Privileged {
		return a.categoryStore.List()
	}
	return a.categoryStore.ListByOwner(scope.OwnerID)
}

// scopedTags returns the tag set the acting user may manage.
func (a *Admin) scopedTags(scope store.Scope) ([]models.Tag, error) {
	if scope.Privileged {
		return a.tagStore.List()
	}
	return a.tagStore.ListByOwner(scope.OwnerID)
}

// Dashboard renders the admin dashboard with per-scope counts.
func (a *Admin) Dashboard(w http.ResponseWriter, r *http.Request) {
	scope := scopeFrom(r)

	posts, _ := a.postStore.ListOwned(scope, nil)
	categories, _ := a.scopedCategories(scope)
	tags, _ := a.scopedTags(scope)
	comments, _ := a.commentStore.List()

	a.renderer.Page(w, r, "dashboard", &render.PageData{
		Title:   "Dashboard",
		Section: "dashboard",
		Data: map[string]any{
			"PostCount":     len(posts),
			"CategoryCount": len(categories),
			"TagCount":      len(tags),
			"CommentCount":  len(comments),
		},
	})
}

// --- Posts CRUD ---

// PostsList renders the posts management page with an optional category
// filter. The filter dropdown only offers the actor's own categories.
func (a *Admin) PostsList(w http.ResponseWriter, r *http.Request) {
	scope := scopeFrom(r)

	var categoryID *uuid.UUID
	filter := r.URL.Query().Get("category")
	if filter != "" {
		if id, err := uuid.Parse(filter); err == nil {
			categoryID = &id
		}
	}

	posts, err := a.postStore.ListOwned(scope, categoryID)
	if err != nil {
		slog.Error("list owned posts failed", "error", err)
	}
	categories, err := a.scopedCategories(scope)
	if err != nil {
		slog.Error("list categories failed", "error", err)
	}

	a.renderer.Page(w, r, "posts_list", &render.PageData{
		Title:   "Posts",
		Section: "posts",
		Data: map[string]any{
			"Posts":          posts,
			"Categories":     categories,
			"CategoryFilter": filter,
		},
	})
}

// postForm collects the shared data the post form needs.
func (a *Admin) postForm(scope store.Scope, post *models.Post, isEdit bool, formError string) map[string]any {
	categories, err := a.scopedCategories(scope)
	if err != nil {
		slog.Error("list categories failed", "error", err)
	}
	tags, err := a.scopedTags(scope)
	if err != nil {
		slog.Error("list tags failed", "error", err)
	}

	data := map[string]any{
		"Post":       post,
		"Categories": categories,
		"Tags":       tags,
		"IsEdit":     isEdit,
	}
	if formError != "" {
		data["Error"] = formError
	}
	return data
}

// parsePostForm builds a post and tag selection from form values.
func parsePostForm(r *http.Request) (*models.Post, []uuid.UUID) {
	post := &models.Post{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Description: strings.TrimSpace(r.FormValue("description")),
		Content:     r.FormValue("content"),
		Status:      models.PostStatus(r.FormValue("status")),
	}
	if post.Status != models.PostStatusDraft {
		post.Status = models.PostStatusNormal
	}
	if id, err := uuid.Parse(r.FormValue("category_id")); err == nil {
		post.CategoryID = id
	}

	var tagIDs []uuid.UUID
	for _, raw := range r.Form["tags"] {
		if id, err := uuid.Parse(raw); err == nil {
			tagIDs = append(tagIDs, id)
		}
	}
	return post, tagIDs
}

// PostNew renders the new post form.
func (a *Admin) PostNew(w http.ResponseWriter, r *http.Request) {
	a.renderer.Page(w, r, "post_form", &render.PageData{
		Title:   "New Post",
		Section: "posts",
		Data:    a.postForm(scopeFrom(r), &models.Post{}, false, ""),
	})
}

// PostCreate handles the new post form submission.
func (a *Admin) PostCreate(w http.ResponseWriter, r *http.Request) {
	scope := scopeFrom(r)
	post, tagIDs := parsePostForm(r)

	if msg := validatePost(post.Title, post.Description); msg != "" {
		a.renderer.Page(w, r, "post_form", &render.PageData{
			Title:   "New Post",
			Section: "posts",
			Data:    a.postForm(scope, post, false, msg),
		})
		return
	}

	if _, err := a.postStore.Create(scope, post, tagIDs); err != nil {
		slog.Error("create post failed", "error", err)
		a.renderer.Page(w, r, "post_form", &render.PageData{
			Title:   "New Post",
			Section: "posts",
			Data:    a.postForm(scope, post, false, "Could not save the post."),
		})
		return
	}

	http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
}

// PostEdit renders the edit post form. A non-privileged actor asking for
// someone else's post gets a 404, same as a missing id.
func (a *Admin) PostEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	scope := scopeFrom(r)

	post, err := a.postStore.FindOwned(scope, id)
	if err != nil {
		slog.Error("find owned post failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if post == nil {
		http.NotFound(w, r)
		return
	}

	a.renderer.Page(w, r, "post_form", &render.PageData{
		Title:   "Edit Post",
		Section: "posts",
		Data:    a.postForm(scope, post, true, ""),
	})
}

// PostUpdate handles the edit post form submission.
func (a *Admin) PostUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	scope := scopeFrom(r)

	post, tagIDs := parsePostForm(r)
	post.ID = id

	if msg := validatePost(post.Title, post.Description); msg != "" {
		a.renderer.Page(w, r, "post_form", &render.PageData{
			Title:   "Edit Post",
			Section: "posts",
			Data:    a.postForm(scope, post, true, msg),
		})
		return
	}

	err := a.postStore.Update(scope, post, tagIDs)
	if errors.Is(err, sql.ErrNoRows) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		slog.Error("update post failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
}

// PostDelete soft-deletes a post within the actor's scope.
func (a *Admin) PostDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	err := a.postStore.SoftDelete(scopeFrom(r), id)
	if errors.Is(err, sql.ErrNoRows) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		slog.Error("delete post failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
}

// --- Categories CRUD ---

// CategoriesList renders the categories management page with post counts.
func (a *Admin) CategoriesList(w http.ResponseWriter, r *http.Request) {
	categories, err := a.scopedCategories(scopeFrom(r))
	if err != nil {
		slog.Error("list categories failed", "error", err)
	}

	a.renderer.Page(w, r, "categories_list", &render.PageData{
		Title:   "Categories",
		Section: "categories",
		Data:    map[string]any{"Categories": categories},
	})
}

// findScopedCategory loads a category the actor may manage, or nil.
func (a *Admin) findScopedCategory(scope store.Scope, id uuid.UUID) (*models.Category, error) {
	c, err := a.categoryStore.FindByID(id)
	if err != nil || c == nil {
		return nil, err
	}
	if !scope.Privileged && c.OwnerID != scope.OwnerID {
		return nil, nil
	}
	return c, nil
}

// CategoryNew renders the new category form.
func (a *Admin) CategoryNew(w http.ResponseWriter, r *http.Request) {
	a.renderer.Page(w, r, "category_form", &render.PageData{
		Title:   "New Category",
		Section: "categories",
		Data:    map[string]any{"Category": &models.Category{}, "IsEdit": false},
	})
}

// CategoryCreate handles the new category form submission.
func (a *Admin) CategoryCreate(w http.ResponseWriter, r *http.Request) {
	c := &models.Category{
		Name:   strings.TrimSpace(r.FormValue("name")),
		Status: models.StatusNormal,
		IsNav:  r.FormValue("is_nav") != "",
	}

	if msg := validateName(c.Name, maxCategoryNameLen); msg != "" {
		a.renderer.Page(w, r, "category_form", &render.PageData{
			Title:   "New Category",
			Section: "categories",
			Data:    map[string]any{"Category": c, "IsEdit": false, "Error": msg},
		})
		return
	}

	if _, err := a.categoryStore.Create(scopeFrom(r), c); err != nil {
		slog.Error("create category failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
}

// CategoryEdit renders the edit category form.
func (a *Admin) CategoryEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	c, err := a.findScopedCategory(scopeFrom(r), id)
	if err != nil {
		slog.Error("find category failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if c == nil {
		http.NotFound(w, r)
		return
	}

	a.renderer.Page(w, r, "category_form", &render.PageData{
		Title:   "Edit Category",
		Section: "categories",
		Data:    map[string]any{"Category": c, "IsEdit": true},
	})
}

// CategoryUpdate handles the edit category form submission.
func (a *Admin) CategoryUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	scope := scopeFrom(r)

	existing, err := a.findScopedCategory(scope, id)
	if err != nil {
		slog.Error("find category failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if existing == nil {
		http.NotFound(w, r)
		return
	}

	existing.Name = strings.TrimSpace(r.FormValue("name"))
	existing.IsNav = r.FormValue("is_nav") != ""

	if msg := validateName(existing.Name, maxCategoryNameLen); msg != "" {
		a.renderer.Page(w, r, "category_form", &render.PageData{
			Title:   "Edit Category",
			Section: "categories",
			Data:    map[string]any{"Category": existing, "IsEdit": true, "Error": msg},
		})
		return
	}

	if err := a.categoryStore.Update(scope, existing); err != nil {
		slog.Error("update category failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
}

// CategoryDelete soft-deletes a category.
func (a *Admin) CategoryDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	c, err := a.findScopedCategory(scopeFrom(r), id)
	if err != nil {
		slog.Error("find category failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if c == nil {
		http.NotFound(w, r)
		return
	}

	if err := a.categoryStore.SoftDelete(id); err != nil {
		slog.Error("delete category failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
}

// --- Tags CRUD ---

// TagsList renders the tags management page.
func (a *Admin) TagsList(w http.ResponseWriter, r *http.Request) {
	tags, err := a.scopedTags(scopeFrom(r))
	if err != nil {
		slog.Error("list tags failed", "error", err)
	}

	a.renderer.Page(w, r, "tags_list", &render.PageData{
		Title:   "Tags",
		Section: "tags",
		Data:    map[string]any{"Tags": tags},
	})
}

// findScopedTag loads a tag the actor may manage, or nil.
func (a *Admin) findScopedTag(scope store.Scope, id uuid.UUID) (*models.Tag, error) {
	t, err := a.tagStore.FindByID(id)
	if err != nil || t == nil {
		return nil, err
	}
	if !scope.Privileged && t.OwnerID != scope.OwnerID {
		return nil, nil
	}
	return t, nil
}

// TagNew renders the new tag form.
func (a *Admin) TagNew(w http.ResponseWriter, r *http.Request) {
	a.renderer.Page(w, r, "tag_form", &render.PageData{
		Title:   "New Tag",
		Section: "tags",
		Data:    map[string]any{"Tag": &models.Tag{}, "IsEdit": false},
	})
}

// TagCreate handles the new tag form submission.
func (a *Admin) TagCreate(w http.ResponseWriter, r *http.Request) {
	t := &models.Tag{
		Name:   strings.TrimSpace(r.FormValue("name")),
		Status: models.StatusNormal,
	}

	if msg := validateName(t.Name, maxTagNameLen); msg != "" {
		a.renderer.Page(w, r, "tag_form", &render.PageData{
			Title:   "New Tag",
			Section: "tags",
			Data:    map[string]any{"Tag": t, "IsEdit": false, "Error": msg},
		})
		return
	}

	if _, err := a.tagStore.Create(scopeFrom(r), t); err != nil {
		slog.Error("create tag failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/tags", http.StatusSeeOther)
}

// TagEdit renders the edit tag form.
func (a *Admin) TagEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	t, err := a.findScopedTag(scopeFrom(r), id)
	if err != nil {
		slog.Error("find tag failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if t == nil {
		http.NotFound(w, r)
		return
	}

	a.renderer.Page(w, r, "tag_form", &render.PageData{
		Title:   "Edit Tag",
		Section: "tags",
		Data:    map[string]any{"Tag": t, "IsEdit": true},
	})
}

// TagUpdate handles the edit tag form submission.
func (a *Admin) TagUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	scope := scopeFrom(r)

	existing, err := a.findScopedTag(scope, id)
	if err != nil {
		slog.Error("find tag failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if existing == nil {
		http.NotFound(w, r)
		return
	}

	existing.Name = strings.TrimSpace(r.FormValue("name"))

	if msg := validateName(existing.Name, maxTagNameLen); msg != "" {
		a.renderer.Page(w, r, "tag_form", &render.PageData{
			Title:   "Edit Tag",
			Section: "tags",
			Data:    map[string]any{"Tag": existing, "IsEdit": true, "Error": msg},
		})
		return
	}

	if err := a.tagStore.Update(scope, existing); err != nil {
		slog.Error("update tag failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/tags", http.StatusSeeOther)
}

// TagDelete soft-deletes a tag.
func (a *Admin) TagDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	t, err := a.findScopedTag(scopeFrom(r), id)
	if err != nil {
		slog.Error("find tag failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if t == nil {
		http.NotFound(w, r)
		return
	}

	if err := a.tagStore.SoftDelete(id); err != nil {
		slog.Error("delete tag failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/tags", http.StatusSeeOther)
}

// --- Comments moderation ---

// CommentsList renders every comment, newest first.
func (a *Admin) CommentsList(w http.ResponseWriter, r *http.Request) {
	comments, err := a.commentStore.List()
	if err != nil {
		slog.Error("list comments failed", "error", err)
	}

	a.renderer.Page(w, r, "comments_list", &render.PageData{
		Title:   "Comments",
		Section: "comments",
		Data:    map[string]any{"Comments": comments},
	})
}

// CommentDelete soft-deletes a comment; it disappears from the public
// thread but the row stays.
func (a *Admin) CommentDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	err := a.commentStore.SoftDelete(id)
	if errors.Is(err, sql.ErrNoRows) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		slog.Error("delete comment failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/comments", http.StatusSeeOther)
}

// --- Sidebars CRUD ---

// SidebarsList renders the sidebar widgets management page.
func (a *Admin) SidebarsList(w http.ResponseWriter, r *http.Request) {
	sidebars, err := a.sidebarStore.List()
	if err != nil {
		slog.Error("list sidebars failed", "error", err)
	}

	a.renderer.Page(w, r, "sidebars_list", &render.PageData{
		Title:   "Sidebars",
		Section: "sidebars",
		Data:    map[string]any{"Sidebars": sidebars},
	})
}

// parseSidebarForm builds a sidebar from form values.
func parseSidebarForm(r *http.Request) *models.Sidebar {
	sb := &models.Sidebar{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Content:     r.FormValue("content"),
		Status:      models.SidebarStatus(r.FormValue("status")),
		DisplayType: models.SidebarDisplayType(r.FormValue("display_type")),
	}
	if sb.Status != models.SidebarStatusHide {
		sb.Status = models.SidebarStatusShow
	}
	switch sb.DisplayType {
	case models.SidebarDisplayLatestPosts, models.SidebarDisplayComments:
	default:
		sb.DisplayType = models.SidebarDisplayHTML
	}
	return sb
}

// SidebarNew renders the new sidebar form.
func (a *Admin) SidebarNew(w http.ResponseWriter, r *http.Request) {
	a.renderer.Page(w, r, "sidebar_form", &render.PageData{
		Title:   "New Sidebar",
		Section: "sidebars",
		Data:    map[string]any{"Sidebar": &models.Sidebar{}, "IsEdit": false},
	})
}

// SidebarCreate handles the new sidebar form submission.
func (a *Admin) SidebarCreate(w http.ResponseWriter, r *http.Request) {
	sb := parseSidebarForm(r)

	if msg := validateSidebar(sb.Title); msg != "" {
		a.renderer.Page(w, r, "sidebar_form", &render.PageData{
			Title:   "New Sidebar",
			Section: "sidebars",
			Data:    map[string]any{"Sidebar": sb, "IsEdit": false, "Error": msg},
		})
		return
	}

	if _, err := a.sidebarStore.Create(sb); err != nil {
		slog.Error("create sidebar failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/sidebars", http.StatusSeeOther)
}

// SidebarEdit renders the edit sidebar form.
func (a *Admin) SidebarEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	sb, err := a.sidebarStore.FindByID(id)
	if err != nil {
		slog.Error("find sidebar failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if sb == nil {
		http.NotFound(w, r)
		return
	}

	a.renderer.Page(w, r, "sidebar_form", &render.PageData{
		Title:   "Edit Sidebar",
		Section: "sidebars",
		Data:    map[string]any{"Sidebar": sb, "IsEdit": true},
	})
}

// SidebarUpdate handles the edit sidebar form submission.
func (a *Admin) SidebarUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	sb := parseSidebarForm(r)
	sb.ID = id

	if msg := validateSidebar(sb.Title); msg != "" {
		a.renderer.Page(w, r, "sidebar_form", &render.PageData{
			Title:   "Edit Sidebar",
			Section: "sidebars",
			Data:    map[string]any{"Sidebar": sb, "IsEdit": true, "Error": msg},
		})
		return
	}

	err := a.sidebarStore.Update(sb)
	if errors.Is(err, sql.ErrNoRows) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		slog.Error("update sidebar failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/sidebars", http.StatusSeeOther)
}

// --- Links CRUD ---

// LinksList renders the friend-links management page.
func (a *Admin) LinksList(w http.ResponseWriter, r *http.Request) {
	links, err := a.linkStore.List()
	if err != nil {
		slog.Error("list links failed", "error", err)
	}

	a.renderer.Page(w, r, "links_list", &render.PageData{
		Title:   "Links",
		Section: "links",
		Data:    map[string]any{"Links": links},
	})
}

// parseLinkForm builds a link from form values.
func parseLinkForm(r *http.Request) *models.Link {
	weight, _ := strconv.Atoi(r.FormValue("weight"))
	return &models.Link{
		Title:  strings.TrimSpace(r.FormValue("title")),
		Href:   strings.TrimSpace(r.FormValue("href")),
		Weight: weight,
	}
}

// LinkNew renders the new link form.
func (a *Admin) LinkNew(w http.ResponseWriter, r *http.Request) {
	a.renderer.Page(w, r, "link_form", &render.PageData{
		Title:   "New Link",
		Section: "links",
		Data:    map[string]any{"Link": &models.Link{}, "IsEdit": false},
	})
}

// LinkCreate handles the new link form submission.
func (a *Admin) LinkCreate(w http.ResponseWriter, r *http.Request) {
	l := parseLinkForm(r)

	if msg := validateLink(l.Title, l.Href); msg != "" {
		a.renderer.Page(w, r, "link_form", &render.PageData{
			Title:   "New Link",
			Section: "links",
			Data:    map[string]any{"Link": l, "IsEdit": false, "Error": msg},
		})
		return
	}

	if _, err := a.linkStore.Create(l); err != nil {
		slog.Error("create link failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/links", http.StatusSeeOther)
}

// LinkEdit renders the edit link form.
func (a *Admin) LinkEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	l, err := a.linkStore.FindByID(id)
	if err != nil {
		slog.Error("find link failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if l == nil {
		http.NotFound(w, r)
		return
	}

	a.renderer.Page(w, r, "link_form", &render.PageData{
		Title:   "Edit Link",
		Section: "links",
		Data:    map[string]any{"Link": l, "IsEdit": true},
	})
}

// LinkUpdate handles the edit link form submission.
func (a *Admin) LinkUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	l := parseLinkForm(r)
	l.ID = id

	if msg := validateLink(l.Title, l.Href); msg != "" {
		a.renderer.Page(w, r, "link_form", &render.PageData{
			Title:   "Edit Link",
			Section: "links",
			Data:    map[string]any{"Link": l, "IsEdit": true, "Error": msg},
		})
		return
	}

	err := a.linkStore.Update(l)
	if errors.Is(err, sql.ErrNoRows) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		slog.Error("update link failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/links", http.StatusSeeOther)
}

// LinkDelete removes a link. Links are plain rows with no history to
// preserve, so this is a physical delete.
func (a *Admin) LinkDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	err := a.linkStore.Delete(id)
	if errors.Is(err, sql.ErrNoRows) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		slog.Error("delete link failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/links", http.StatusSeeOther)
}
