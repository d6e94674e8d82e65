// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication, login
// throttling, CSRF protection and response hardening.
package middleware

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/blogicum/internal/model"
	"github.com/olegiv/blogicum/internal/service"
	"github.com/olegiv/blogicum/internal/session"
	"github.com/olegiv/blogicum/internal/store"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ContextKeyUser holds the logged-in store.User.
const ContextKeyUser ContextKey = "user"

// LoginURL is where RequireLogin sends anonymous visitors.
const LoginURL = "/auth/login"

// OptionalLoadUser loads the logged-in user into the request context. A
// session pointing at a deleted user is destroyed and the request continues
// anonymously.
func OptionalLoadUser(sm *scs.SessionManager, db *sql.DB) func(http.Handler) http.Handler {
	queries := store.New(db)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := session.UserID(r.Context(), sm)
			if userID == 0 {
				next.ServeHTTP(w, r)
				return
			}

			user, err := queries.GetUserByID(r.Context(), userID)
			if err != nil {
				if !errors.Is(err, sql.ErrNoRows) {
					slog.Error("loading session user failed", "user_id", userID, "error", err)
				} else {
					slog.Warn("session user no longer exists", "category", model.EventCategoryAuth, "user_id", userID)
					_ = sm.Destroy(r.Context())
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireLogin redirects anonymous requests to the login page, keeping the
// requested path in the "next" parameter. It must run after OptionalLoadUser.
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUser(r) == nil {
			http.Redirect(w, r, LoginRedirectURL(r.URL.RequestURI()), http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// LoginRedirectURL builds the login URL that returns to target afterwards.
func LoginRedirectURL(target string) string {
	target = SafeNext(target, "")
	if target == "" {
		return LoginURL
	}
	return LoginURL + "?next=" + url.QueryEscape(target)
}

// SafeNext returns target if it is a local absolute path, otherwise fallback.
// Scheme-relative ("//host") and backslash tricks are rejected.
func SafeNext(target, fallback string) string {
	if target == "" || !strings.HasPrefix(target, "/") ||
		strings.HasPrefix(target, "//") || strings.Contains(target, `\`) {
		return fallback
	}
	u, err := url.Parse(target)
	if err != nil || u.IsAbs() || u.Host != "" {
		return fallback
	}
	return target
}

// GetUser retrieves the current user from the request context.
// Returns nil if no user is in context.
func GetUser(r *http.Request) *store.User {
	user, ok := r.Context().Value(ContextKeyUser).(store.User)
	if !ok {
		return nil
	}
	return &user
}

// GetUserID returns the current user's ID from context, or 0 if not found.
func GetUserID(r *http.Request) int64 {
	if user := GetUser(r); user != nil {
		return user.ID
	}
	return 0
}

// GetViewer returns the request's viewer for visibility decisions.
func GetViewer(r *http.Request) service.Viewer {
	return service.ViewerOf(GetUser(r))
}

// WithUser returns a copy of r carrying user, for tests and internal
// redirects that skip the session.
func WithUser(r *http.Request, user store.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), ContextKeyUser, user))
}
