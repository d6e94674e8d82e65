// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/blogicum/internal/testutil"
)

func TestNew_DevMode(t *testing.T) {
	sm := New(testutil.TestDB(t), true)

	assert.False(t, sm.Cookie.Secure)
	assert.Equal(t, "session", sm.Cookie.Name)
}

func TestNew_ProductionMode(t *testing.T) {
	sm := New(testutil.TestDB(t), false)

	assert.True(t, sm.Cookie.Secure)
	assert.Equal(t, "__Host-session", sm.Cookie.Name)
	assert.Equal(t, "/", sm.Cookie.Path)
}

func TestNew_SessionSettings(t *testing.T) {
	sm := New(testutil.TestDB(t), true)

	assert.Equal(t, Lifetime, sm.Lifetime)
	assert.True(t, sm.Cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, sm.Cookie.SameSite)
	assert.NotNil(t, sm.Store)
}

func TestFlashAndLoginRoundTrip(t *testing.T) {
	sm := New(testutil.TestDB(t), true)

	var cookie *http.Cookie

	set := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, Login(r.Context(), sm, 42))
		Flash(r.Context(), sm, "saved")
	}))
	rec := httptest.NewRecorder()
	set.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	for _, c := range rec.Result().Cookies() {
		if c.Name == sm.Cookie.Name {
			cookie = c
		}
	}
	require.NotNil(t, cookie, "session cookie not written")

	var first, second string
	var uid int64
	get := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid = UserID(r.Context(), sm)
		first = PopFlash(r.Context(), sm)
		second = PopFlash(r.Context(), sm)
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	get.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, int64(42), uid)
	assert.Equal(t, "saved", first)
	assert.Empty(t, second, "flash must be shown once")
}

func TestUserIDAnonymous(t *testing.T) {
	sm := New(testutil.TestDB(t), true)

	var uid int64 = -1
	h := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid = UserID(r.Context(), sm)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Zero(t, uid)
}
