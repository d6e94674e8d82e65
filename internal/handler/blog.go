// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/blogicum/internal/forms"
	"github.com/olegiv/blogicum/internal/middleware"
	"github.com/olegiv/blogicum/internal/render"
	"github.com/olegiv/blogicum/internal/service"
	"github.com/olegiv/blogicum/internal/uikit"
	"github.com/olegiv/blogicum/internal/util"
)

// BlogHandler serves the read-only pages: feeds, post detail and profiles.
type BlogHandler struct {
	pages
	posts *service.PostService
}

// NewBlogHandler creates a new BlogHandler.
func NewBlogHandler(renderer *render.Renderer, sm *scs.SessionManager, posts *service.PostService) *BlogHandler {
	return &BlogHandler{
		pages: pages{renderer: renderer, sm: sm},
		posts: posts,
	}
}

// Index handles GET / - the public feed.
func (h *BlogHandler) Index(w http.ResponseWriter, r *http.Request) {
	page, err := h.posts.VisiblePosts(r.Context(), middleware.GetViewer(r), service.PostFilter{}, uikit.ParsePageParam(r))
	if err != nil {
		h.serverError(w, r, "failed to list posts", err)
		return
	}

	h.render(w, r, tmplIndex, "Лента записей", map[string]any{
		"page_obj": page,
	})
}

// Category handles GET /category/{slug}.
func (h *BlogHandler) Category(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if !util.IsValidSlug(slug) {
		h.notFound(w, r)
		return
	}

	category, err := h.posts.PublishedCategory(r.Context(), slug)
	if err != nil {
		h.serviceError(w, r, err, 0)
		return
	}

	filter := service.PostFilter{CategoryID: category.ID}
	page, err := h.posts.VisiblePosts(r.Context(), middleware.GetViewer(r), filter, uikit.ParsePageParam(r))
	if err != nil {
		h.serverError(w, r, "failed to list category posts", err, "category_id", category.ID)
		return
	}

	h.render(w, r, tmplCategory, category.Title, map[string]any{
		"category": category,
		"page_obj": page,
	})
}

// PostDetail handles GET /posts/{id}. Hidden posts are not found.
func (h *BlogHandler) PostDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		h.notFound(w, r)
		return
	}

	post, err := h.posts.VisiblePost(r.Context(), middleware.GetViewer(r), id)
	if err != nil {
		h.serviceError(w, r, err, id)
		return
	}

	comments, err := h.posts.Comments(r.Context(), id)
	if err != nil {
		h.serverError(w, r, "failed to list comments", err, "post_id", id)
		return
	}

	h.render(w, r, tmplDetail, post.Title, map[string]any{
		"post":     post,
		"comments": comments,
		"form":     forms.NewCommentForm(),
	})
}

// Profile handles GET /profile/{username}. The owner also sees their
// unpublished and scheduled posts.
func (h *BlogHandler) Profile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.posts.Profile(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		h.serviceError(w, r, err, 0)
		return
	}

	viewer := middleware.GetViewer(r)
	isOwner := viewer.Is(profile.ID)

	filter := service.PostFilter{AuthorID: profile.ID, AsOwner: isOwner}
	page, err := h.posts.VisiblePosts(r.Context(), viewer, filter, uikit.ParsePageParam(r))
	if err != nil {
		h.serverError(w, r, "failed to list profile posts", err, "user_id", profile.ID)
		return
	}

	h.render(w, r, tmplProfile, profile.Username, map[string]any{
		"profile":  profile,
		"is_owner": isOwner,
		"page_obj": page,
	})
}
