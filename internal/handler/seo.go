// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/olegiv/blogicum/internal/seo"
	"github.com/olegiv/blogicum/internal/service"
)

// SEOHandler serves sitemap.xml and robots.txt. Both list only what an
// anonymous visitor can see.
type SEOHandler struct {
	posts   *service.PostService
	siteURL string
	isDev   bool
}

// NewSEOHandler creates a new SEOHandler. An empty siteURL is derived
// from each request. Development sites ask crawlers to stay away.
func NewSEOHandler(posts *service.PostService, siteURL string, isDev bool) *SEOHandler {
	return &SEOHandler{posts: posts, siteURL: siteURL, isDev: isDev}
}

// Sitemap handles GET /sitemap.xml.
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	builder := seo.NewSitemapBuilder(h.baseURL(r))
	builder.AddHomepage()
	builder.AddPage(RoutePages + RouteAbout)
	builder.AddPage(RoutePages + RouteRules)

	categories, err := h.posts.Categories(r.Context())
	if err != nil {
		slog.Error("listing categories for sitemap", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	for _, c := range categories {
		builder.AddCategory(c.Slug)
	}

	entries, err := h.posts.PublicEntries(r.Context(), seo.MaxURLs-builder.Len())
	if err != nil {
		slog.Error("listing posts for sitemap", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	for _, e := range entries {
		builder.AddPost(e)
	}

	data, err := builder.Build()
	if err != nil {
		slog.Error("building sitemap", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(data)
}

// Robots handles GET /robots.txt.
func (h *SEOHandler) Robots(w http.ResponseWriter, r *http.Request) {
	content := seo.BuildRobots(seo.RobotsConfig{
		SiteURL:     h.baseURL(r),
		DisallowAll: h.isDev,
	})

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write([]byte(content))
}

// baseURL returns the configured site URL or the scheme and host of r.
func (h *SEOHandler) baseURL(r *http.Request) string {
	if h.siteURL != "" {
		return h.siteURL
	}
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
