// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the blog. Handlers are
// grouped by concern (public, admin, auth) and receive their dependencies
// through the handler struct.
package handlers

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"blogsys/internal/markdown"
	"blogsys/internal/models"
	"blogsys/internal/render"
	"blogsys/internal/store"
	"blogsys/internal/validation"
	"blogsys/internal/view"
)

// CommentForm carries a submitted visitor comment. All fields except the
// target are validated before anything is persisted.
type CommentForm struct {
	Target   string `form:"target"`
	Nickname string `form:"nickname" validate:"required,max=50"`
	Email    string `form:"email" validate:"required,max=50,email"`
	Website  string `form:"website" validate:"required,max=100,url"`
	Content  string `form:"content" validate:"required,min=10"`
}

// Public groups handlers for the visitor-facing site: post listings,
// post detail with comments, search, and the links page.
type Public struct {
	renderer      *render.Renderer
	siteBuilder   *view.Builder
	postStore     *store.PostStore
	categoryStore *store.CategoryStore
	tagStore      *store.TagStore
	userStore     *store.UserStore
	commentStore  *store.CommentStore
	linkStore     *store.LinkStore
	validator     *validation.Validator
	pageSize      int
}

// NewPublic creates a new Public handler group.
func NewPublic(renderer *render.Renderer, siteBuilder *view.Builder, postStore *store.PostStore, categoryStore *store.CategoryStore, tagStore *store.TagStore, userStore *store.UserStore, commentStore *store.CommentStore, linkStore *store.LinkStore, validator *validation.Validator, pageSize int) *Public {
	return &Public{
		renderer:      renderer,
		siteBuilder:   siteBuilder,
		postStore:     postStore,
		categoryStore: categoryStore,
		tagStore:      tagStore,
		userStore:     userStore,
		commentStore:  commentStore,
		linkStore:     linkStore,
		validator:     validator,
		pageSize:      pageSize,
	}
}

// pageParam parses the ?page= query parameter. Anything that is not a
// positive integer falls back to the first page.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// site builds the shared page furniture, logging and failing the request
// on error.
func (p *Public) site(w http.ResponseWriter) (*view.SiteContext, bool) {
	site, err := p.siteBuilder.Build()
	if err != nil {
		slog.Error("build site context failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}
	return site, true
}

// renderList renders a post listing page with pagination.
func (p *Public) renderList(w http.ResponseWriter, r *http.Request, title, heading, pageQuery string, posts []models.Post, total, page int) {
	site, ok := p.site(w)
	if !ok {
		return
	}

	p.renderer.Page(w, r, "list", &render.PageData{
		Title: title,
		Site:  site,
		Data: map[string]any{
			"Heading":   heading,
			"Posts":     posts,
			"Page":      view.NewPagination(page, p.pageSize, total),
			"PageQuery": pageQuery,
		},
	})
}

// Index renders the latest visible posts.
func (p *Public) Index(w http.ResponseWriter, r *http.Request) {
	page := pageParam(r)

	posts, total, err := p.postStore.ListLatest(page, p.pageSize)
	if err != nil {
		slog.Error("list latest posts failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.renderList(w, r, "Home", "", "", posts, total, page)
}

// Category renders visible posts in one category. Unknown or deleted
// categories are a 404.
func (p *Public) Category(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	category, err := p.categoryStore.FindVisible(id)
	if err != nil {
		slog.Error("find category failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if category == nil {
		http.NotFound(w, r)
		return
	}

	page := pageParam(r)
	posts, total, err := p.postStore.ListByCategory(id, page, p.pageSize)
	if err != nil {
		slog.Error("list posts by category failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.renderList(w, r, category.Name, "Category: "+category.Name, "", posts, total, page)
}

// Tag renders visible posts carrying one tag. Unknown or deleted tags are
// a 404.
func (p *Public) Tag(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	tag, err := p.tagStore.FindVisible(id)
	if err != nil {
		slog.Error("find tag failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if tag == nil {
		http.NotFound(w, r)
		return
	}

	page := pageParam(r)
	posts, total, err := p.postStore.ListByTag(id, page, p.pageSize)
	if err != nil {
		slog.Error("list posts by tag failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.renderList(w, r, "Tag: "+tag.Name, "Tag: "+tag.Name, "", posts, total, page)
}

// Author renders visible posts written by one author.
func (p *Public) Author(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	author, err := p.userStore.FindByID(id)
	if err != nil {
		slog.Error("find author failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if author == nil {
		http.NotFound(w, r)
		return
	}

	page := pageParam(r)
	posts, total, err := p.postStore.ListByAuthor(id, page, p.pageSize)
	if err != nil {
		slog.Error("list posts by author failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.renderList(w, r, "Posts by "+author.DisplayName, "Posts by "+author.DisplayName, "", posts, total, page)
}

// Search renders visible posts matching ?keyword= in title or description.
// An empty keyword behaves exactly like the index listing.
func (p *Public) Search(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")
	page := pageParam(r)

	posts, total, err := p.postStore.Search(keyword, page, p.pageSize)
	if err != nil {
		slog.Error("search posts failed", "error", err, "keyword", keyword)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	heading := ""
	pageQuery := ""
	if keyword != "" {
		heading = "Search: " + keyword
		pageQuery = "keyword=" + url.QueryEscape(keyword) + "&"
	}

	p.renderList(w, r, "Search", heading, pageQuery, posts, total, page)
}

// Detail renders a single visible post with its comment thread and the
// comment form. Draft, deleted, and unknown posts are a 404.
func (p *Public) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	post, err := p.postStore.FindVisible(id)
	if err != nil {
		slog.Error("find post failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if post == nil {
		http.NotFound(w, r)
		return
	}

	p.renderDetail(w, r, post, CommentForm{}, nil)
}

// renderDetail renders the detail page for a post, optionally carrying a
// failed comment form and its field errors.
func (p *Public) renderDetail(w http.ResponseWriter, r *http.Request, post *models.Post, form CommentForm, errs map[string]string) {
	site, ok := p.site(w)
	if !ok {
		return
	}

	body, err := markdown.ToHTML(post.Content)
	if err != nil {
		slog.Error("render post body failed", "error", err, "id", post.ID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	target := "/post/" + post.ID.String()
	comments, err := p.commentStore.ListByTarget(target)
	if err != nil {
		slog.Error("list comments failed", "error", err, "target", target)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.renderer.Page(w, r, "detail", &render.PageData{
		Title: post.Title,
		Site:  site,
		Data: map[string]any{
			"Post":     post,
			"Body":     body,
			"Target":   target,
			"Comments": comments,
			"Form":     form,
			"Errors":   errs,
		},
	})
}

// CommentSubmit validates and stores a visitor comment, then redirects
// back to the target page. Validation failures re-render the detail page
// with field errors and the submitted values; nothing is persisted.
func (p *Public) CommentSubmit(w http.ResponseWriter, r *http.Request) {
	form := CommentForm{
		Target:   r.FormValue("target"),
		Nickname: strings.TrimSpace(r.FormValue("nickname")),
		Email:    strings.TrimSpace(r.FormValue("email")),
		Website:  strings.TrimSpace(r.FormValue("website")),
		Content:  r.FormValue("content"),
	}

	// The target must point at a visible post. Comments against unknown
	// or hidden content are rejected outright.
	postID, ok := strings.CutPrefix(form.Target, "/post/")
	if !ok {
		http.NotFound(w, r)
		return
	}
	id, err := uuid.Parse(postID)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	post, err := p.postStore.FindVisible(id)
	if err != nil {
		slog.Error("find post for comment failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if post == nil {
		http.NotFound(w, r)
		return
	}

	if errs := p.validator.Validate(form); errs != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		p.renderDetail(w, r, post, form, errs)
		return
	}

	_, err = p.commentStore.Create(&models.Comment{
		Target:   form.Target,
		Nickname: form.Nickname,
		Email:    form.Email,
		Website:  form.Website,
		Content:  form.Content,
	})
	if err != nil {
		slog.Error("create comment failed", "error", err, "target", form.Target)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, form.Target, http.StatusSeeOther)
}

// Links renders the friend-links page.
func (p *Public) Links(w http.ResponseWriter, r *http.Request) {
	links, err := p.linkStore.List()
	if err != nil {
		slog.Error("list links failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	site, ok := p.site(w)
	if !ok {
		return
	}

	p.renderer.Page(w, r, "links", &render.PageData{
		Title: "Links",
		Site:  site,
		Data:  map[string]any{"Links": links},
	})
}
