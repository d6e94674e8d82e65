// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/blogicum/internal/store"
	"github.com/olegiv/blogicum/internal/testutil"
)

func TestEditProfile(t *testing.T) {
	env := newTestEnv(t)
	h := NewProfileHandler(env.renderer, env.sm, env.gate)
	alice := testutil.CreateUser(t, env.db, "alice")
	bob := testutil.CreateUser(t, env.db, "bob")

	pattern := RouteProfile + RouteProfileEdit
	queries := store.New(env.db)

	t.Run("form is prefilled", func(t *testing.T) {
		rec := env.serve(http.MethodGet, pattern, pattern, h.EditForm, &alice, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `value="alice"`)
	})

	t.Run("updates own profile", func(t *testing.T) {
		values := url.Values{
			"username":   {"alice2"},
			"first_name": {"Alice"},
			"last_name":  {"Liddell"},
			"email":      {"alice@example.org"},
		}
		rec := env.serve(http.MethodPost, pattern, pattern, h.Update, &alice, values)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/profile/alice2", rec.Header().Get("Location"))

		got, err := queries.GetUserByID(context.Background(), alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice2", got.Username)
		assert.Equal(t, "Liddell", got.LastName)

		untouched, err := queries.GetUserByID(context.Background(), bob.ID)
		require.NoError(t, err)
		assert.Equal(t, "bob", untouched.Username)
	})

	t.Run("taken username", func(t *testing.T) {
		rec := env.serve(http.MethodPost, pattern, pattern, h.Update, &alice, url.Values{"username": {"bob"}})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), msgUsernameTaken)
	})

	t.Run("invalid email", func(t *testing.T) {
		rec := env.serve(http.MethodPost, pattern, pattern, h.Update, &alice, url.Values{"username": {"alice3"}, "email": {"nope"}})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Введите правильный адрес электронной почты.")
	})

	t.Run("anonymous", func(t *testing.T) {
		rec := env.serve(http.MethodGet, pattern, pattern, h.EditForm, nil, nil)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Contains(t, rec.Header().Get("Location"), "/auth/login?next=")
	})
}
