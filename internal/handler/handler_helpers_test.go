// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/blogicum/internal/imaging"
	"github.com/olegiv/blogicum/internal/middleware"
	"github.com/olegiv/blogicum/internal/render"
	"github.com/olegiv/blogicum/internal/service"
	"github.com/olegiv/blogicum/internal/store"
	"github.com/olegiv/blogicum/internal/testutil"
	"github.com/olegiv/blogicum/web"
)

// testEnv wires handlers to a migrated temp database, an in-memory
// session store and the real templates.
type testEnv struct {
	db       *sql.DB
	sm       *scs.SessionManager
	renderer *render.Renderer
	posts    *service.PostService
	gate     *service.Gate
	accounts *service.AccountService
	images   *imaging.Processor
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.TestDB(t)
	sm := scs.New()

	templatesFS, err := fs.Sub(web.Templates, "templates")
	require.NoError(t, err)

	renderer, err := render.New(render.Config{TemplatesFS: templatesFS, SessionManager: sm})
	require.NoError(t, err)

	posts := service.NewPostService(db, 2)
	return &testEnv{
		db:       db,
		sm:       sm,
		renderer: renderer,
		posts:    posts,
		gate:     service.NewGate(db, posts),
		accounts: service.NewAccountService(db),
		images:   imaging.NewProcessor(t.TempDir(), 0),
	}
}

// serve routes a single request to h mounted at pattern. The session is
// loaded and user, when non-nil, is the logged-in user.
func (e *testEnv) serve(method, pattern, target string, h http.HandlerFunc, user *store.User, form url.Values) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Use(e.sm.LoadAndSave)
	if user != nil {
		u := *user
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				next.ServeHTTP(w, middleware.WithUser(req, u))
			})
		})
	}
	r.MethodFunc(method, pattern, h)

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) pages() pages {
	return pages{renderer: e.renderer, sm: e.sm}
}
