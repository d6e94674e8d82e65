// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/blogicum/internal/forms"
	"github.com/olegiv/blogicum/internal/middleware"
	"github.com/olegiv/blogicum/internal/render"
	"github.com/olegiv/blogicum/internal/service"
)

// ProfileHandler handles editing the logged-in user's own profile.
type ProfileHandler struct {
	pages
	gate *service.Gate
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(renderer *render.Renderer, sm *scs.SessionManager, gate *service.Gate) *ProfileHandler {
	return &ProfileHandler{
		pages: pages{renderer: renderer, sm: sm},
		gate:  gate,
	}
}

// EditForm handles GET /profile/edit.
func (h *ProfileHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		h.serviceError(w, r, service.ErrUnauthenticated, 0)
		return
	}

	h.render(w, r, tmplUser, "Редактирование профиля", map[string]any{
		"form": forms.ProfileFormFrom(*user),
	})
}

// Update handles POST /profile/edit.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	form := forms.ParseProfileForm(r.PostForm)
	if !form.Validate() {
		h.renderForm(w, r, form)
		return
	}

	updated, err := h.gate.UpdateProfile(r.Context(), middleware.GetViewer(r), form.Input())
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			form.Errors.Add("username", msgUsernameTaken)
			h.renderForm(w, r, form)
			return
		}
		h.serviceError(w, r, err, 0)
		return
	}

	h.flashAndRedirect(w, r, profileURL(updated.Username), flashProfileUpdated)
}

func (h *ProfileHandler) renderForm(w http.ResponseWriter, r *http.Request, form forms.ProfileForm) {
	h.render(w, r, tmplUser, "Редактирование профиля", map[string]any{"form": form})
}
