// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/blogicum/internal/render"
)

// PagesHandler serves the static informational pages.
type PagesHandler struct {
	pages
}

// NewPagesHandler creates a new PagesHandler.
func NewPagesHandler(renderer *render.Renderer, sm *scs.SessionManager) *PagesHandler {
	return &PagesHandler{pages: pages{renderer: renderer, sm: sm}}
}

// About handles GET /pages/about.
func (h *PagesHandler) About(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, tmplAbout, "О проекте", nil)
}

// Rules handles GET /pages/rules.
func (h *PagesHandler) Rules(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, tmplRules, "Наши правила", nil)
}
