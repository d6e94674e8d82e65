// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session configures the SQLite-backed session manager and the
// few values the blog keeps in a session.
package session

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// Session keys.
const (
	KeyUserID = "user_id"
	KeyFlash  = "flash"
)

// Lifetime matches the two-week session age readers expect from the blog.
const Lifetime = 14 * 24 * time.Hour

// New creates a new session manager configured with SQLite store.
func New(db *sql.DB, isDev bool) *scs.SessionManager {
	sm := scs.New()

	// Use SQLite store
	sm.Store = sqlite3store.New(db)

	sm.Lifetime = Lifetime
	sm.Cookie.Name = "session"
	sm.Cookie.Path = "/"
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev // Secure cookies in production only

	// __Host- cookies require Secure and Path=/ and no Domain.
	if !isDev {
		sm.Cookie.Name = "__Host-session"
	}

	return sm
}

// Flash stores a one-shot message shown on the next rendered page.
func Flash(ctx context.Context, sm *scs.SessionManager, msg string) {
	sm.Put(ctx, KeyFlash, msg)
}

// PopFlash returns and removes the pending flash message, if any.
func PopFlash(ctx context.Context, sm *scs.SessionManager) string {
	return sm.PopString(ctx, KeyFlash)
}

// Login binds the session to a user. The token is renewed first so a
// pre-login session id cannot be reused.
func Login(ctx context.Context, sm *scs.SessionManager, userID int64) error {
	if err := sm.RenewToken(ctx); err != nil {
		return err
	}
	sm.Put(ctx, KeyUserID, userID)
	return nil
}

// Logout drops the whole session.
func Logout(ctx context.Context, sm *scs.SessionManager) error {
	return sm.Destroy(ctx)
}

// UserID returns the logged-in user id, or 0.
func UserID(ctx context.Context, sm *scs.SessionManager) int64 {
	return sm.GetInt64(ctx, KeyUserID)
}
