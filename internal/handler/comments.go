// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/blogicum/internal/forms"
	"github.com/olegiv/blogicum/internal/middleware"
	"github.com/olegiv/blogicum/internal/render"
	"github.com/olegiv/blogicum/internal/service"
)

// CommentHandler handles adding, editing and deleting comments.
type CommentHandler struct {
	pages
	posts *service.PostService
	gate  *service.Gate
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(renderer *render.Renderer, sm *scs.SessionManager, posts *service.PostService, gate *service.Gate) *CommentHandler {
	return &CommentHandler{
		pages: pages{renderer: renderer, sm: sm},
		posts: posts,
		gate:  gate,
	}
}

// Add handles POST /posts/{id}/comment.
func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
	postID, ok := idParam(r, "id")
	if !ok {
		h.notFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	viewer := middleware.GetViewer(r)
	form := forms.ParseCommentForm(r.PostForm)
	if !form.Validate() {
		post, err := h.posts.VisiblePost(r.Context(), viewer, postID)
		if err != nil {
			h.serviceError(w, r, err, postID)
			return
		}
		h.render(w, r, tmplComment, "Комментарий", map[string]any{
			"form": form,
			"post": post,
		})
		return
	}

	if _, err := h.gate.CreateComment(r.Context(), viewer, postID, form.Text); err != nil {
		h.serviceError(w, r, err, postID)
		return
	}

	http.Redirect(w, r, postURL(postID), http.StatusSeeOther)
}

// EditForm handles GET /posts/{id}/edit_comment/{comment_id}.
func (h *CommentHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	postID, commentID, ok := commentParams(r)
	if !ok {
		h.notFound(w, r)
		return
	}

	comment, err := h.gate.AuthorizeComment(r.Context(), middleware.GetViewer(r), postID, commentID)
	if err != nil {
		h.serviceError(w, r, err, postID)
		return
	}

	form := forms.NewCommentForm()
	form.Text = comment.Text
	h.render(w, r, tmplComment, "Редактирование комментария", map[string]any{
		"form":    form,
		"comment": comment,
	})
}

// Update handles POST /posts/{id}/edit_comment/{comment_id}.
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	postID, commentID, ok := commentParams(r)
	if !ok {
		h.notFound(w, r)
		return
	}

	viewer := middleware.GetViewer(r)
	comment, err := h.gate.AuthorizeComment(r.Context(), viewer, postID, commentID)
	if err != nil {
		h.serviceError(w, r, err, postID)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	form := forms.ParseCommentForm(r.PostForm)
	if !form.Validate() {
		h.render(w, r, tmplComment, "Редактирование комментария", map[string]any{
			"form":    form,
			"comment": comment,
		})
		return
	}

	if _, err := h.gate.UpdateComment(r.Context(), viewer, postID, commentID, form.Text); err != nil {
		h.serviceError(w, r, err, postID)
		return
	}

	http.Redirect(w, r, postURL(postID), http.StatusSeeOther)
}

// DeleteForm handles GET /posts/{id}/delete_comment/{comment_id}.
func (h *CommentHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	postID, commentID, ok := commentParams(r)
	if !ok {
		h.notFound(w, r)
		return
	}

	comment, err := h.gate.AuthorizeComment(r.Context(), middleware.GetViewer(r), postID, commentID)
	if err != nil {
		h.serviceError(w, r, err, postID)
		return
	}

	h.render(w, r, tmplComment, "Удаление комментария", map[string]any{
		"comment": comment,
	})
}

// Delete handles POST /posts/{id}/delete_comment/{comment_id}.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	postID, commentID, ok := commentParams(r)
	if !ok {
		h.notFound(w, r)
		return
	}

	if err := h.gate.DeleteComment(r.Context(), middleware.GetViewer(r), postID, commentID); err != nil {
		h.serviceError(w, r, err, postID)
		return
	}

	http.Redirect(w, r, postURL(postID), http.StatusSeeOther)
}

func commentParams(r *http.Request) (postID, commentID int64, ok bool) {
	postID, ok = idParam(r, "id")
	if !ok {
		return 0, 0, false
	}
	commentID, ok = idParam(r, "comment_id")
	return postID, commentID, ok
}
