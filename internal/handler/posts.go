// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"maps"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/blogicum/internal/forms"
	"github.com/olegiv/blogicum/internal/imaging"
	"github.com/olegiv/blogicum/internal/middleware"
	"github.com/olegiv/blogicum/internal/model"
	"github.com/olegiv/blogicum/internal/render"
	"github.com/olegiv/blogicum/internal/service"
)

// maxPostRequestSize bounds a post form including its image.
const maxPostRequestSize = imaging.MaxUploadSize + 1<<20

// PostHandler handles creating, editing and deleting posts.
type PostHandler struct {
	pages
	posts  *service.PostService
	gate   *service.Gate
	images *imaging.Processor
	loc    *time.Location
}

// NewPostHandler creates a new PostHandler. Publication dates entered in
// forms are interpreted in the server's local time zone.
func NewPostHandler(renderer *render.Renderer, sm *scs.SessionManager, posts *service.PostService, gate *service.Gate, images *imaging.Processor) *PostHandler {
	return &PostHandler{
		pages:  pages{renderer: renderer, sm: sm},
		posts:  posts,
		gate:   gate,
		images: images,
		loc:    time.Local,
	}
}

// NewForm handles GET /posts/create.
func (h *PostHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, "Новая публикация", forms.NewPostForm(), nil)
}

// Create handles POST /posts/create.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}

	form := forms.ParsePostForm(r.PostForm)
	if !form.Validate(h.loc) {
		h.renderForm(w, r, "Новая публикация", form, nil)
		return
	}

	image, err := h.saveImage(r, &form)
	if err != nil {
		h.serverError(w, r, "failed to save post image", err)
		return
	}
	if form.Errors.Any() {
		h.renderForm(w, r, "Новая публикация", form, nil)
		return
	}

	if _, err := h.gate.CreatePost(r.Context(), middleware.GetViewer(r), form.Input(image)); err != nil {
		h.discardImage(image)
		h.serviceError(w, r, err, 0)
		return
	}

	h.flashAndRedirect(w, r, profileURL(middleware.GetUser(r).Username), flashPostCreated)
}

// EditForm handles GET /posts/{id}/edit.
func (h *PostHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		h.notFound(w, r)
		return
	}

	post, err := h.gate.AuthorizePost(r.Context(), middleware.GetViewer(r), id)
	if err != nil {
		h.serviceError(w, r, err, id)
		return
	}

	h.renderForm(w, r, "Редактирование публикации", forms.PostFormFrom(post), map[string]any{"post": post})
}

// Update handles POST /posts/{id}/edit. A new upload replaces the stored
// image; "image-clear" removes it.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		h.notFound(w, r)
		return
	}

	viewer := middleware.GetViewer(r)
	existing, err := h.gate.AuthorizePost(r.Context(), viewer, id)
	if err != nil {
		h.serviceError(w, r, err, id)
		return
	}

	if !h.parseForm(w, r) {
		return
	}

	form := forms.ParsePostForm(r.PostForm)
	form.Image = existing.Image
	extra := map[string]any{"post": existing}

	if !form.Validate(h.loc) {
		h.renderForm(w, r, "Редактирование публикации", form, extra)
		return
	}

	uploaded, err := h.saveImage(r, &form)
	if err != nil {
		h.serverError(w, r, "failed to save post image", err, "post_id", id)
		return
	}
	if form.Errors.Any() {
		h.renderForm(w, r, "Редактирование публикации", form, extra)
		return
	}

	image := existing.Image
	switch {
	case uploaded != "":
		image = uploaded
	case form.ClearImage:
		image = ""
	}

	if _, err := h.gate.UpdatePost(r.Context(), viewer, id, form.Input(image)); err != nil {
		h.discardImage(uploaded)
		h.serviceError(w, r, err, id)
		return
	}

	if image != existing.Image {
		h.discardImage(existing.Image)
	}

	h.flashAndRedirect(w, r, postURL(id), flashPostUpdated)
}

// DeleteForm handles GET /posts/{id}/delete. The confirmation page is the
// post form, prefilled and read-only.
func (h *PostHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		h.notFound(w, r)
		return
	}

	post, err := h.gate.AuthorizePost(r.Context(), middleware.GetViewer(r), id)
	if err != nil {
		h.serviceError(w, r, err, id)
		return
	}

	h.renderForm(w, r, "Удаление публикации", forms.PostFormFrom(post), map[string]any{
		"post":     post,
		"deleting": true,
	})
}

// Delete handles POST /posts/{id}/delete.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		h.notFound(w, r)
		return
	}

	deleted, err := h.gate.DeletePost(r.Context(), middleware.GetViewer(r), id)
	if err != nil {
		h.serviceError(w, r, err, id)
		return
	}
	h.discardImage(deleted.Image)

	h.flashAndRedirect(w, r, profileURL(middleware.GetUser(r).Username), flashPostDeleted)
}

func (h *PostHandler) renderForm(w http.ResponseWriter, r *http.Request, title string, form forms.PostForm, extra map[string]any) {
	categories, err := h.posts.Categories(r.Context())
	if err != nil {
		h.serverError(w, r, "failed to list categories", err)
		return
	}
	locations, err := h.posts.Locations(r.Context())
	if err != nil {
		h.serverError(w, r, "failed to list locations", err)
		return
	}

	ctx := map[string]any{
		"form":       form,
		"categories": categories,
		"locations":  locations,
	}
	maps.Copy(ctx, extra)
	h.render(w, r, tmplCreate, title, ctx)
}

// parseForm reads a multipart or urlencoded body. On failure the response
// has been written.
func (h *PostHandler) parseForm(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxPostRequestSize)

	err := r.ParseMultipartForm(imaging.MaxUploadSize)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		http.Error(w, "Request Entity Too Large", http.StatusRequestEntityTooLarge)
		return false
	}
	http.Error(w, "Bad Request", http.StatusBadRequest)
	return false
}

// saveImage stores the submitted image, if any. Rejected uploads become
// a form error on the "image" field and return no error.
func (h *PostHandler) saveImage(r *http.Request, form *forms.PostForm) (string, error) {
	if r.MultipartForm == nil {
		return "", nil
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		// No file field or an empty one.
		return "", nil
	}
	defer func() { _ = file.Close() }()

	if header.Size == 0 {
		return "", nil
	}

	rel, err := h.images.SavePostImage(file)
	switch {
	case errors.Is(err, imaging.ErrUnsupportedFormat), errors.Is(err, imaging.ErrTooLarge):
		form.Errors.Add("image", forms.Sentence(err))
		return "", nil
	case err != nil:
		return "", err
	}
	return rel, nil
}

// discardImage removes a stored image. Failures only leave a stray file.
func (h *PostHandler) discardImage(rel string) {
	if err := h.images.Delete(rel); err != nil {
		slog.Warn("failed to delete post image", "category", model.EventCategoryPost, "image", rel, "error", err)
	}
}
