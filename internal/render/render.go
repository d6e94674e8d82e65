// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render parses the embedded page templates once and executes them
// with a context mapping prepared by the handlers.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/olegiv/blogicum/internal/session"
	"github.com/olegiv/blogicum/internal/store"
	"github.com/olegiv/blogicum/internal/uikit"
)

// pageDirs are the template directories rendered inside the base layout.
var pageDirs = []string{"blog", "registration", "pages", "errors"}

const baseLayout = "layouts/base.html"

// Renderer handles template rendering with caching.
type Renderer struct {
	templates      map[string]*template.Template
	sessionManager *scs.SessionManager
	markdown       goldmark.Markdown
	policy         *bluemonday.Policy
	mediaURL       string
}

// Config holds renderer configuration.
type Config struct {
	TemplatesFS    fs.FS
	SessionManager *scs.SessionManager
	// MediaURL prefixes post image paths, "/media" by default.
	MediaURL string
}

// New creates a new Renderer with parsed templates.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		templates:      make(map[string]*template.Template),
		sessionManager: cfg.SessionManager,
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.Linkify, extension.Strikethrough),
			goldmark.WithRendererOptions(goldhtml.WithHardWraps()),
		),
		policy:   bluemonday.UGCPolicy(),
		mediaURL: strings.TrimSuffix(cfg.MediaURL, "/"),
	}
	if r.mediaURL == "" {
		r.mediaURL = "/media"
	}

	if err := r.parseTemplates(cfg.TemplatesFS); err != nil {
		return nil, err
	}

	return r, nil
}

// parseTemplates builds one template set per page: the base layout, every
// partial and the page itself. Pages are named "<dir>/<file>" without the
// extension, e.g. "blog/detail".
func (r *Renderer) parseTemplates(templatesFS fs.FS) error {
	partials, err := templateFiles(templatesFS, "partials")
	if err != nil {
		return fmt.Errorf("getting partials: %w", err)
	}

	for _, dir := range pageDirs {
		pages, err := templateFiles(templatesFS, dir)
		if err != nil {
			return fmt.Errorf("getting %s templates: %w", dir, err)
		}

		for _, tmplPath := range pages {
			name := dir + "/" + strings.TrimSuffix(path.Base(tmplPath), ".html")

			files := []string{baseLayout}
			files = append(files, partials...)
			files = append(files, tmplPath)

			tmpl, err := template.New("").Funcs(r.templateFuncs()).ParseFS(templatesFS, files...)
			if err != nil {
				return fmt.Errorf("parsing template %s: %w", name, err)
			}

			r.templates[name] = tmpl
		}
	}

	return nil
}

// templateFiles returns all .html files in a directory. A missing directory
// yields no files.
func templateFiles(templatesFS fs.FS, dir string) ([]string, error) {
	var files []string

	entries, err := fs.ReadDir(templatesFS, dir)
	if err != nil {
		return files, nil
	}

	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".html") {
			// fs.FS paths always use forward slashes.
			files = append(files, path.Join(dir, entry.Name()))
		}
	}

	return files, nil
}

// templateFuncs returns the shared view helpers plus the ones that need
// renderer state.
func (r *Renderer) templateFuncs() template.FuncMap {
	funcs := uikit.TemplateFuncs()
	funcs["markdown"] = r.Markdown
	funcs["mediaURL"] = r.MediaURL
	return funcs
}

// Markdown renders post or comment text to sanitized HTML.
func (r *Renderer) Markdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(r.policy.SanitizeBytes(buf.Bytes())) //nolint:gosec // sanitized by bluemonday
}

// MediaURL maps a stored image path to its public URL.
func (r *Renderer) MediaURL(rel string) string {
	if rel == "" {
		return ""
	}
	return r.mediaURL + "/" + strings.TrimPrefix(rel, "/")
}

// TemplateData holds data passed to templates. Context carries the
// page-specific values under the names the templates use: page_obj, post,
// comments, form, profile, is_owner, category, comment.
type TemplateData struct {
	Title       string
	User        *store.User
	Context     map[string]any
	Flash       string
	CurrentYear int
	Path        string
}

// Has reports whether the context holds a non-nil value for key.
func (d TemplateData) Has(key string) bool {
	v, ok := d.Context[key]
	return ok && v != nil
}

// Render renders a template with status 200.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, name string, data TemplateData) error {
	return r.RenderStatus(w, req, http.StatusOK, name, data)
}

// RenderStatus renders a template with the given status code.
func (r *Renderer) RenderStatus(w http.ResponseWriter, req *http.Request, status int, name string, data TemplateData) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}

	data.CurrentYear = time.Now().Year()
	data.Path = req.URL.Path
	if data.Context == nil {
		data.Context = map[string]any{}
	}

	if r.sessionManager != nil {
		data.Flash = session.PopFlash(req.Context(), r.sessionManager)
	}

	// Render to buffer first to catch errors
	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, "base", data); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Debug("writing response failed", "template", name, "error", err)
	}
	return nil
}

// HasTemplate reports whether a page template was parsed.
func (r *Renderer) HasTemplate(name string) bool {
	_, ok := r.templates[name]
	return ok
}
