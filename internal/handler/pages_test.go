// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStaticPages(t *testing.T) {
	env := newTestEnv(t)
	h := NewPagesHandler(env.renderer, env.sm)

	tests := []struct {
		path    string
		handler http.HandlerFunc
		title   string
	}{
		{RoutePages + RouteAbout, h.About, "О проекте"},
		{RoutePages + RouteRules, h.Rules, "Наши правила"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := env.serve(http.MethodGet, tt.path, tt.path, tt.handler, nil, nil)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.title)
		})
	}
}

func TestErrorPages(t *testing.T) {
	env := newTestEnv(t)
	e := NewErrorPages(env.renderer, env.sm)

	tests := []struct {
		name    string
		handler http.HandlerFunc
		status  int
		body    string
	}{
		{"not found", e.NotFound, http.StatusNotFound, "Ошибка 404"},
		{"method not allowed", e.MethodNotAllowed, http.StatusMethodNotAllowed, "Ошибка 404"},
		{"csrf failure", e.Forbidden, http.StatusForbidden, "Ошибка 403"},
		{"too many requests", e.TooManyRequests, http.StatusTooManyRequests, "Слишком много запросов"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.serve(http.MethodGet, "/x", "/x", tt.handler, nil, nil)
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.body)
		})
	}

	t.Run("retry after", func(t *testing.T) {
		rec := env.serve(http.MethodGet, "/x", "/x", e.TooManyRequests, nil, nil)
		assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	})
}

func TestRecoverer(t *testing.T) {
	env := newTestEnv(t)
	e := NewErrorPages(env.renderer, env.sm)

	t.Run("panic renders 500 page", func(t *testing.T) {
		h := e.Recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("boom")
		}))
		rec := env.serve(http.MethodGet, "/x", "/x", h.ServeHTTP, nil, nil)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "Ошибка 500")
	})

	t.Run("abort handler is re-raised", func(t *testing.T) {
		h := e.Recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic(http.ErrAbortHandler)
		}))
		assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))
		})
	})

	t.Run("no panic passes through", func(t *testing.T) {
		h := e.Recoverer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.Equal(t, http.StatusTeapot, rec.Code)
	})
}
