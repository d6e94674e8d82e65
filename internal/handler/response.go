// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/blogicum/internal/middleware"
	"github.com/olegiv/blogicum/internal/render"
	"github.com/olegiv/blogicum/internal/service"
	"github.com/olegiv/blogicum/internal/session"
)

// pages is embedded by every HTML handler. It renders templates with the
// current user filled in and translates service errors into responses.
type pages struct {
	renderer *render.Renderer
	sm       *scs.SessionManager
}

// render writes a page with status 200.
func (p pages) render(w http.ResponseWriter, r *http.Request, name, title string, ctx map[string]any) {
	p.renderStatus(w, r, http.StatusOK, name, title, ctx)
}

func (p pages) renderStatus(w http.ResponseWriter, r *http.Request, status int, name, title string, ctx map[string]any) {
	data := render.TemplateData{
		Title:   title,
		User:    middleware.GetUser(r),
		Context: ctx,
	}
	if err := p.renderer.RenderStatus(w, r, status, name, data); err != nil {
		logAndInternalError(w, "render error", "template", name, "error", err)
	}
}

// flashAndRedirect sets a flash message and redirects with 303.
func (p pages) flashAndRedirect(w http.ResponseWriter, r *http.Request, url, message string) {
	session.Flash(r.Context(), p.sm, message)
	http.Redirect(w, r, url, http.StatusSeeOther)
}

func (p pages) notFound(w http.ResponseWriter, r *http.Request) {
	p.renderStatus(w, r, http.StatusNotFound, tmplNotFound, "Страница не найдена", nil)
}

// serverError logs err and renders the 500 page.
func (p pages) serverError(w http.ResponseWriter, r *http.Request, logMsg string, err error, args ...any) {
	slog.ErrorContext(r.Context(), logMsg, append(args, "error", err)...)
	p.renderStatus(w, r, http.StatusInternalServerError, tmplServerError, "Ошибка сервера", nil)
}

// serviceError translates an error from the service layer. A refused
// change of a post's content sends the actor back to that post.
func (p pages) serviceError(w http.ResponseWriter, r *http.Request, err error, postID int64) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		p.notFound(w, r)
	case errors.Is(err, service.ErrNotAuthor):
		http.Redirect(w, r, postURL(postID), http.StatusSeeOther)
	case errors.Is(err, service.ErrUnauthenticated):
		http.Redirect(w, r, middleware.LoginRedirectURL(r.URL.RequestURI()), http.StatusSeeOther)
	default:
		p.serverError(w, r, "request failed", err, "path", r.URL.Path)
	}
}

// logAndInternalError logs an error and writes a plain 500 response. It is
// the fallback when the error page itself cannot be rendered.
func logAndInternalError(w http.ResponseWriter, logMsg string, args ...any) {
	slog.Error(logMsg, args...)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// idParam parses a positive integer URL parameter.
func idParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ErrorPages renders the site-wide error pages outside of a handler, for
// the router, the CSRF check, the login limiter and panic recovery.
type ErrorPages struct {
	pages
}

// NewErrorPages creates the error page handlers.
func NewErrorPages(renderer *render.Renderer, sm *scs.SessionManager) *ErrorPages {
	return &ErrorPages{pages: pages{renderer: renderer, sm: sm}}
}

// NotFound handles unmatched routes.
func (e *ErrorPages) NotFound(w http.ResponseWriter, r *http.Request) {
	e.notFound(w, r)
}

// MethodNotAllowed handles a known route with the wrong method.
func (e *ErrorPages) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	e.renderStatus(w, r, http.StatusMethodNotAllowed, tmplNotFound, "Метод не поддерживается", nil)
}

// Forbidden is the CSRF failure page.
func (e *ErrorPages) Forbidden(w http.ResponseWriter, r *http.Request) {
	e.renderStatus(w, r, http.StatusForbidden, tmplForbidden, "Доступ запрещён", nil)
}

// TooManyRequests is shown when the login rate limit is exceeded.
func (e *ErrorPages) TooManyRequests(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Retry-After", "60")
	e.renderStatus(w, r, http.StatusTooManyRequests, tmplTooMany, "Слишком много запросов", nil)
}

// Recoverer turns a panic in a later handler into the 500 page.
func (e *ErrorPages) Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			slog.ErrorContext(r.Context(), "panic recovered", "panic", rec, "path", r.URL.Path)
			e.renderStatus(w, r, http.StatusInternalServerError, tmplServerError, "Ошибка сервера", nil)
		}()
		next.ServeHTTP(w, r)
	})
}
