// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/blogicum/internal/config"
	"github.com/olegiv/blogicum/internal/middleware"
	"github.com/olegiv/blogicum/internal/session"
	"github.com/olegiv/blogicum/internal/testutil"
	"github.com/olegiv/blogicum/internal/version"
)

func newTestApp(t *testing.T) http.Handler {
	t.Helper()

	db := testutil.TestDB(t)
	sm := session.New(db, true)
	renderer, err := newRenderer(sm)
	require.NoError(t, err)

	lp := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	t.Cleanup(lp.Close)

	app := &application{
		cfg: &config.Config{
			SessionSecret: "test-Secret-key-32-bytes-long!!!",
			Env:           "development",
			UploadsDir:    filepath.Join(t.TempDir(), "uploads"),
			PostsPerPage:  10,
			ImageMaxWidth: 1200,
		},
		db:              db,
		sessionManager:  sm,
		renderer:        renderer,
		loginProtection: lp,
		version:         version.Info{Version: "test"},
	}

	h, err := app.routes()
	require.NoError(t, err)
	return h
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestRoutes_PublicPages(t *testing.T) {
	h := newTestApp(t)

	tests := []struct {
		target string
		status int
		body   string
	}{
		{"/", http.StatusOK, "Блогикум"},
		{"/pages/about", http.StatusOK, "О проекте"},
		{"/pages/rules", http.StatusOK, "Наши правила"},
		{"/auth/login", http.StatusOK, `name="password"`},
		{"/auth/registration", http.StatusOK, `name="password2"`},
		{"/health", http.StatusOK, `"status"`},
		{"/robots.txt", http.StatusOK, "User-agent: *"},
		{"/sitemap.xml", http.StatusOK, "<urlset"},
		{"/category/nope", http.StatusNotFound, "Ошибка 404"},
		{"/posts/42", http.StatusNotFound, "Ошибка 404"},
		{"/no/such/page", http.StatusNotFound, "Ошибка 404"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := get(h, tt.target)
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.body)
		})
	}
}

func TestRoutes_Middleware(t *testing.T) {
	h := newTestApp(t)

	t.Run("security headers", func(t *testing.T) {
		rec := get(h, "/")
		assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	})

	t.Run("trailing slash redirect", func(t *testing.T) {
		rec := get(h, "/pages/about/")
		assert.Equal(t, http.StatusMovedPermanently, rec.Code)
		assert.Equal(t, "/pages/about", rec.Header().Get("Location"))
	})

	t.Run("static files are cached", func(t *testing.T) {
		rec := get(h, "/static/css/blogicum.css")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Cache-Control"), "max-age=31536000")
	})

	t.Run("login required", func(t *testing.T) {
		for _, target := range []string{"/posts/create", "/profile/edit", "/posts/1/edit", "/auth/password_change"} {
			rec := get(h, target)
			assert.Equal(t, http.StatusSeeOther, rec.Code, target)
			assert.Equal(t, "/auth/login?next="+url.QueryEscape(target), rec.Header().Get("Location"), target)
		}
	})

	t.Run("wrong method", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/pages/about", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})

	t.Run("cross-site post is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader("username=a&password=b"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Sec-Fetch-Site", "cross-site")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "Ошибка 403")
	})
}

func TestRoutes_RegisterLoginAndPublish(t *testing.T) {
	srv := httptest.NewServer(newTestApp(t))
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{Jar: jar}

	post := func(path string, form url.Values) (*http.Response, string) {
		t.Helper()
		resp, err := client.PostForm(srv.URL+path, form)
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp, string(body)
	}

	resp, body := post("/auth/registration", url.Values{
		"username":  {"writer"},
		"password1": {"sunny-meadow-42"},
		"password2": {"sunny-meadow-42"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/auth/login", resp.Request.URL.Path)
	assert.Contains(t, body, "Регистрация прошла успешно.")

	resp, _ = post("/auth/login", url.Values{
		"username": {"writer"},
		"password": {"sunny-meadow-42"},
		"next":     {"/posts/create"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/posts/create", resp.Request.URL.Path)

	resp, body = post("/posts/create", url.Values{
		"title":        {"Hello from the integration test"},
		"text":         {"First post."},
		"pub_date":     {"2020-01-02T10:00"},
		"is_published": {"on"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/profile/writer", resp.Request.URL.Path)
	assert.Contains(t, body, "Публикация успешно добавлена!")

	resp, err = client.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	index, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(index), "Hello from the integration test")

	resp, body = post("/auth/logout", url.Values{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Вы вышли из своей учётной записи")

	resp, err = client.Get(srv.URL + "/posts/create")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "/auth/login", resp.Request.URL.Path)
}
