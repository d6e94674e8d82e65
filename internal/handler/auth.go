// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/blogicum/internal/forms"
	"github.com/olegiv/blogicum/internal/middleware"
	"github.com/olegiv/blogicum/internal/model"
	"github.com/olegiv/blogicum/internal/render"
	"github.com/olegiv/blogicum/internal/service"
	"github.com/olegiv/blogicum/internal/session"
)

// AuthHandler handles registration, login, logout and password changes.
type AuthHandler struct {
	pages
	accounts        *service.AccountService
	loginProtection *middleware.LoginProtection
}

// NewAuthHandler creates a new AuthHandler. lp may be nil to disable
// account lockout.
func NewAuthHandler(renderer *render.Renderer, sm *scs.SessionManager, accounts *service.AccountService, lp *middleware.LoginProtection) *AuthHandler {
	return &AuthHandler{
		pages:           pages{renderer: renderer, sm: sm},
		accounts:        accounts,
		loginProtection: lp,
	}
}

// RegistrationForm handles GET /auth/registration.
func (h *AuthHandler) RegistrationForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, tmplRegistration, "Регистрация", map[string]any{
		"form": forms.RegistrationForm{Errors: forms.FieldErrors{}},
	})
}

// Register handles POST /auth/registration.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	form := forms.ParseRegistrationForm(r.PostForm)
	if !form.Validate() {
		h.renderRegistration(w, r, form)
		return
	}

	if _, err := h.accounts.Register(r.Context(), form.Username, form.Password1); err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			form.Errors.Add("username", msgUsernameTaken)
			h.renderRegistration(w, r, form)
			return
		}
		h.serverError(w, r, "registration failed", err)
		return
	}

	h.flashAndRedirect(w, r, redirectLogin, flashRegistered)
}

func (h *AuthHandler) renderRegistration(w http.ResponseWriter, r *http.Request, form forms.RegistrationForm) {
	// Never echo passwords back.
	form.Password1, form.Password2 = "", ""
	h.render(w, r, tmplRegistration, "Регистрация", map[string]any{"form": form})
}

// LoginForm handles GET /auth/login.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	next := middleware.SafeNext(r.URL.Query().Get("next"), "")
	if middleware.GetUser(r) != nil {
		http.Redirect(w, r, middleware.SafeNext(next, redirectIndex), http.StatusSeeOther)
		return
	}

	h.render(w, r, tmplLogin, "Вход", map[string]any{
		"form": forms.LoginForm{Next: next, Errors: forms.FieldErrors{}},
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	form := forms.ParseLoginForm(r.PostForm)
	form.Next = middleware.SafeNext(form.Next, "")
	if !form.Validate() {
		h.renderLogin(w, r, form)
		return
	}

	clientIP := middleware.ClientIP(r)

	// Check if account is locked
	if h.loginProtection != nil {
		if locked, remaining := h.loginProtection.IsAccountLocked(form.Username); locked {
			slog.Warn("login attempt on locked account", "category", model.EventCategoryAuth, "username", form.Username, "ip", clientIP)
			form.Errors.Add(forms.NonField, fmt.Sprintf(msgAccountLocked, formatDuration(remaining)))
			h.renderLogin(w, r, form)
			return
		}
	}

	user, err := h.accounts.Authenticate(r.Context(), form.Username, form.Password)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			h.serverError(w, r, "login failed", err)
			return
		}

		slog.Warn("login failed", "category", model.EventCategoryAuth, "username", form.Username, "ip", clientIP)
		form.Errors.Add(forms.NonField, h.failedLoginMessage(form.Username))
		h.renderLogin(w, r, form)
		return
	}

	// Clear failed attempts on successful login
	if h.loginProtection != nil {
		h.loginProtection.RecordSuccessfulLogin(form.Username)
	}

	if err := session.Login(r.Context(), h.sm, user.ID); err != nil {
		h.serverError(w, r, "session renewal error", err, "user_id", user.ID)
		return
	}

	slog.Info("user logged in", "category", model.EventCategoryAuth, "user_id", user.ID)
	http.Redirect(w, r, middleware.SafeNext(form.Next, redirectIndex), http.StatusSeeOther)
}

// failedLoginMessage records the failure and words the error. Unknown
// users count against the limit too, so both cases read the same.
func (h *AuthHandler) failedLoginMessage(username string) string {
	if h.loginProtection == nil {
		return msgInvalidCredentials
	}
	if locked, lockDuration := h.loginProtection.RecordFailedAttempt(username); locked {
		return fmt.Sprintf(msgAccountLocked, formatDuration(lockDuration))
	}
	if remaining := h.loginProtection.RemainingAttempts(username); remaining > 0 && remaining <= 3 {
		return msgInvalidCredentials + " " + fmt.Sprintf(msgAttemptsLeft, remaining)
	}
	return msgInvalidCredentials
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, form forms.LoginForm) {
	form.Password = ""
	h.render(w, r, tmplLogin, "Вход", map[string]any{"form": form})
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := session.UserID(r.Context(), h.sm)

	if err := session.Logout(r.Context(), h.sm); err != nil {
		slog.Error("session destroy error", "error", err)
	}

	if userID > 0 {
		slog.Info("user logged out", "category", model.EventCategoryAuth, "user_id", userID)
	}

	// Rendered without the user loaded for this request.
	if err := h.renderer.Render(w, r, tmplLoggedOut, render.TemplateData{Title: "Выход"}); err != nil {
		logAndInternalError(w, "render error", "template", tmplLoggedOut, "error", err)
	}
}

// PasswordChangeForm handles GET /auth/password_change.
func (h *AuthHandler) PasswordChangeForm(w http.ResponseWriter, r *http.Request) {
	if middleware.GetUser(r) == nil {
		h.serviceError(w, r, service.ErrUnauthenticated, 0)
		return
	}

	h.renderPasswordChange(w, r, forms.PasswordChangeForm{Errors: forms.FieldErrors{}})
}

// PasswordChange handles POST /auth/password_change. The session token is
// renewed so other copies of the old session cookie stop working.
func (h *AuthHandler) PasswordChange(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		h.serviceError(w, r, service.ErrUnauthenticated, 0)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	form := forms.ParsePasswordChangeForm(r.PostForm)
	if !form.Validate(user.Username) {
		h.renderPasswordChange(w, r, form)
		return
	}

	err := h.accounts.ChangePassword(r.Context(), middleware.GetViewer(r), form.OldPassword, form.NewPassword1)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			form.Errors.Add("old_password", msgOldPasswordWrong)
			h.renderPasswordChange(w, r, form)
			return
		}
		h.serviceError(w, r, err, 0)
		return
	}

	if err := session.Login(r.Context(), h.sm, user.ID); err != nil {
		h.serverError(w, r, "session renewal error", err, "user_id", user.ID)
		return
	}

	http.Redirect(w, r, RouteAuth+RoutePasswordDone, http.StatusSeeOther)
}

// PasswordChangeDone handles GET /auth/password_change/done.
func (h *AuthHandler) PasswordChangeDone(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, tmplPasswordDone, "Пароль изменён", nil)
}

func (h *AuthHandler) renderPasswordChange(w http.ResponseWriter, r *http.Request, form forms.PasswordChangeForm) {
	form.OldPassword, form.NewPassword1, form.NewPassword2 = "", "", ""
	h.render(w, r, tmplPasswordForm, "Изменение пароля", map[string]any{"form": form})
}

// formatDuration formats a lockout duration for display.
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%d сек.", max(int(d.Seconds()), 1))
	case d < time.Hour:
		return fmt.Sprintf("%d мин.", int(d.Minutes()))
	default:
		return fmt.Sprintf("%d ч.", int(d.Hours()))
	}
}
