// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/blogicum/internal/middleware"
	"github.com/olegiv/blogicum/internal/testutil"
)

const testPassword = "sunny-meadow-42"

func newTestAuthHandler(t *testing.T, env *testEnv, maxAttempts int) *AuthHandler {
	t.Helper()
	lp := middleware.NewLoginProtection(middleware.LoginProtectionConfig{
		IPRateLimit:       100,
		IPBurst:           100,
		MaxFailedAttempts: maxAttempts,
		LockoutDuration:   time.Minute,
		AttemptWindow:     time.Hour,
	})
	t.Cleanup(lp.Close)
	return NewAuthHandler(env.renderer, env.sm, env.accounts, lp)
}

func TestRegister(t *testing.T) {
	env := newTestEnv(t)
	h := newTestAuthHandler(t, env, 5)
	pattern := RouteAuth + RouteRegistration

	t.Run("form", func(t *testing.T) {
		rec := env.serve(http.MethodGet, pattern, pattern, h.RegistrationForm, nil, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `name="password2"`)
	})

	t.Run("success", func(t *testing.T) {
		rec := env.serve(http.MethodPost, pattern, pattern, h.Register, nil, url.Values{
			"username":  {"newcomer"},
			"password1": {testPassword},
			"password2": {testPassword},
		})
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, redirectLogin, rec.Header().Get("Location"))

		_, err := env.accounts.Authenticate(context.Background(), "newcomer", testPassword)
		assert.NoError(t, err)
	})

	t.Run("duplicate username", func(t *testing.T) {
		rec := env.serve(http.MethodPost, pattern, pattern, h.Register, nil, url.Values{
			"username":  {"newcomer"},
			"password1": {testPassword},
			"password2": {testPassword},
		})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), msgUsernameTaken)
		assert.NotContains(t, rec.Body.String(), testPassword)
	})

	t.Run("mismatched passwords", func(t *testing.T) {
		rec := env.serve(http.MethodPost, pattern, pattern, h.Register, nil, url.Values{
			"username":  {"another"},
			"password1": {testPassword},
			"password2": {"something-else-7"},
		})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Введённые пароли не совпадают.")
	})

	t.Run("weak password", func(t *testing.T) {
		rec := env.serve(http.MethodPost, pattern, pattern, h.Register, nil, url.Values{
			"username":  {"another"},
			"password1": {"12345678901"},
			"password2": {"12345678901"},
		})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Введённый пароль состоит только из цифр.")
	})
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	h := newTestAuthHandler(t, env, 3)
	pattern := RouteAuth + RouteLogin

	_, err := env.accounts.Register(context.Background(), "alice", testPassword)
	require.NoError(t, err)

	t.Run("form keeps safe next", func(t *testing.T) {
		rec := env.serve(http.MethodGet, pattern, pattern+"?next=/create", h.LoginForm, nil, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `name="next" value="/create"`)
	})

	t.Run("form drops external next", func(t *testing.T) {
		rec := env.serve(http.MethodGet, pattern, pattern+"?next=//evil.example", h.LoginForm, nil, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "evil.example")
	})

	t.Run("logged-in user is redirected", func(t *testing.T) {
		user := testutil.CreateUser(t, env.db, "already")
		rec := env.serve(http.MethodGet, pattern, pattern, h.LoginForm, &user, nil)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, redirectIndex, rec.Header().Get("Location"))
	})

	t.Run("success follows next", func(t *testing.T) {
		rec := env.serve(http.MethodPost, pattern, pattern, h.Login, nil, url.Values{
			"username": {"alice"},
			"password": {testPassword},
			"next":     {"/profile/alice"},
		})
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/profile/alice", rec.Header().Get("Location"))
		assert.NotEmpty(t, rec.Result().Cookies())
	})

	t.Run("success ignores external next", func(t *testing.T) {
		rec := env.serve(http.MethodPost, pattern, pattern, h.Login, nil, url.Values{
			"username": {"alice"},
			"password": {testPassword},
			"next":     {"https://evil.example/"},
		})
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, redirectIndex, rec.Header().Get("Location"))
	})

	t.Run("invalid credentials", func(t *testing.T) {
		rec := env.serve(http.MethodPost, pattern, pattern, h.Login, nil, url.Values{
			"username": {"alice"},
			"password": {"wrong-password-1"},
		})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), msgInvalidCredentials)
		assert.Contains(t, rec.Body.String(), "Осталось попыток: 2.")
	})

	t.Run("lockout", func(t *testing.T) {
		bad := url.Values{"username": {"alice"}, "password": {"wrong-password-1"}}
		env.serve(http.MethodPost, pattern, pattern, h.Login, nil, bad)
		rec := env.serve(http.MethodPost, pattern, pattern, h.Login, nil, bad)
		assert.Contains(t, rec.Body.String(), "Слишком много неудачных попыток входа.")

		// The right password no longer helps while locked.
		rec = env.serve(http.MethodPost, pattern, pattern, h.Login, nil, url.Values{
			"username": {"alice"},
			"password": {testPassword},
		})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Слишком много неудачных попыток входа.")
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := env.serve(http.MethodPost, pattern, pattern, h.Login, nil, url.Values{})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Обязательное поле.")
	})
}

func TestSuccessfulLoginResetsAttempts(t *testing.T) {
	env := newTestEnv(t)
	h := newTestAuthHandler(t, env, 3)
	pattern := RouteAuth + RouteLogin

	_, err := env.accounts.Register(context.Background(), "bob", testPassword)
	require.NoError(t, err)

	bad := url.Values{"username": {"bob"}, "password": {"wrong-password-1"}}
	good := url.Values{"username": {"bob"}, "password": {testPassword}}

	env.serve(http.MethodPost, pattern, pattern, h.Login, nil, bad)
	env.serve(http.MethodPost, pattern, pattern, h.Login, nil, bad)
	rec := env.serve(http.MethodPost, pattern, pattern, h.Login, nil, good)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = env.serve(http.MethodPost, pattern, pattern, h.Login, nil, bad)
	assert.Contains(t, rec.Body.String(), "Осталось попыток: 2.")
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	h := newTestAuthHandler(t, env, 5)
	user := testutil.CreateUser(t, env.db, "alice")

	pattern := RouteAuth + RouteLogout
	rec := env.serve(http.MethodPost, pattern, pattern, h.Logout, &user, url.Values{})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Вы вышли из своей учётной записи")
}

func TestPasswordChange(t *testing.T) {
	env := newTestEnv(t)
	h := newTestAuthHandler(t, env, 5)
	pattern := RouteAuth + RoutePasswordChange

	alice, err := env.accounts.Register(context.Background(), "alice", testPassword)
	require.NoError(t, err)

	t.Run("form", func(t *testing.T) {
		rec := env.serve(http.MethodGet, pattern, pattern, h.PasswordChangeForm, &alice, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `name="old_password"`)
	})

	t.Run("anonymous", func(t *testing.T) {
		rec := env.serve(http.MethodGet, pattern, pattern, h.PasswordChangeForm, nil, nil)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Contains(t, rec.Header().Get("Location"), "/auth/login?next=")
	})

	t.Run("wrong old password", func(t *testing.T) {
		rec := env.serve(http.MethodPost, pattern, pattern, h.PasswordChange, &alice, url.Values{
			"old_password":  {"wrong-password-1"},
			"new_password1": {"quiet-river-17"},
			"new_password2": {"quiet-river-17"},
		})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), msgOldPasswordWrong)
		assert.NotContains(t, rec.Body.String(), "quiet-river-17")

		_, err := env.accounts.Authenticate(context.Background(), "alice", testPassword)
		assert.NoError(t, err)
	})

	t.Run("mismatched passwords", func(t *testing.T) {
		rec := env.serve(http.MethodPost, pattern, pattern, h.PasswordChange, &alice, url.Values{
			"old_password":  {testPassword},
			"new_password1": {"quiet-river-17"},
			"new_password2": {"quiet-river-18"},
		})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Введённые пароли не совпадают.")
	})

	t.Run("weak password", func(t *testing.T) {
		rec := env.serve(http.MethodPost, pattern, pattern, h.PasswordChange, &alice, url.Values{
			"old_password":  {testPassword},
			"new_password1": {"12345678901"},
			"new_password2": {"12345678901"},
		})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Введённый пароль состоит только из цифр.")
	})

	t.Run("success", func(t *testing.T) {
		rec := env.serve(http.MethodPost, pattern, pattern, h.PasswordChange, &alice, url.Values{
			"old_password":  {testPassword},
			"new_password1": {"quiet-river-17"},
			"new_password2": {"quiet-river-17"},
		})
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, RouteAuth+RoutePasswordDone, rec.Header().Get("Location"))

		_, err := env.accounts.Authenticate(context.Background(), "alice", "quiet-river-17")
		assert.NoError(t, err)
		_, err = env.accounts.Authenticate(context.Background(), "alice", testPassword)
		assert.Error(t, err)
	})

	t.Run("done page", func(t *testing.T) {
		done := RouteAuth + RoutePasswordDone
		rec := env.serve(http.MethodGet, done, done, h.PasswordChangeDone, &alice, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Ваш пароль был изменён.")
	})
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "1 сек."},
		{45 * time.Second, "45 сек."},
		{15 * time.Minute, "15 мин."},
		{3 * time.Hour, "3 ч."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.d))
	}
}
