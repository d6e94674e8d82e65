// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package forms

import (
	"net/url"

	"github.com/olegiv/blogicum/internal/auth"
	"github.com/olegiv/blogicum/internal/service"
	"github.com/olegiv/blogicum/internal/store"
)

// ProfileForm edits the logged-in user's own profile.
type ProfileForm struct {
	Username  string      `form:"username" validate:"required,max=150,username"`
	FirstName string      `form:"first_name" validate:"max=150"`
	LastName  string      `form:"last_name" validate:"max=150"`
	Email     string      `form:"email" validate:"omitempty,max=254,email"`
	Errors    FieldErrors `form:"-"`
}

// ProfileFormFrom prefills the form from a user.
func ProfileFormFrom(u store.User) ProfileForm {
	return ProfileForm{
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Errors:    FieldErrors{},
	}
}

// ParseProfileForm binds submitted values.
func ParseProfileForm(values url.Values) ProfileForm {
	return ProfileForm{
		Username:  field(values, "username"),
		FirstName: field(values, "first_name"),
		LastName:  field(values, "last_name"),
		Email:     field(values, "email"),
		Errors:    FieldErrors{},
	}
}

// Validate checks the form.
func (f *ProfileForm) Validate() bool {
	f.Errors = check(f)
	return !f.Errors.Any()
}

// Input converts the form into a gate input.
func (f ProfileForm) Input() service.ProfileInput {
	return service.ProfileInput{
		Username:  f.Username,
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
	}
}

// RegistrationForm signs up a new user.
type RegistrationForm struct {
	Username  string      `form:"username" validate:"required,max=150,username"`
	Password1 string      `form:"password1" validate:"required"`
	Password2 string      `form:"password2" validate:"required,eqfield=Password1"`
	Errors    FieldErrors `form:"-"`
}

// ParseRegistrationForm binds submitted values. Passwords are not trimmed.
func ParseRegistrationForm(values url.Values) RegistrationForm {
	return RegistrationForm{
		Username:  field(values, "username"),
		Password1: values.Get("password1"),
		Password2: values.Get("password2"),
		Errors:    FieldErrors{},
	}
}

// Validate checks the form and the password rules.
func (f *RegistrationForm) Validate() bool {
	f.Errors = check(f)

	if !f.Errors.Has("password1") && !f.Errors.Has("password2") {
		if errs := auth.ValidatePassword(f.Password1, f.Username); len(errs) > 0 {
			f.Errors.Add("password2", Sentence(errs[0]))
		}
	}

	return !f.Errors.Any()
}

// LoginForm authenticates an existing user.
type LoginForm struct {
	Username string      `form:"username" validate:"required"`
	Password string      `form:"password" validate:"required"`
	Next     string      `form:"next"`
	Errors   FieldErrors `form:"-"`
}

// ParseLoginForm binds submitted values.
func ParseLoginForm(values url.Values) LoginForm {
	return LoginForm{
		Username: field(values, "username"),
		Password: values.Get("password"),
		Next:     field(values, "next"),
		Errors:   FieldErrors{},
	}
}

// Validate checks the form.
func (f *LoginForm) Validate() bool {
	f.Errors = check(f)
	return !f.Errors.Any()
}

// PasswordChangeForm replaces the logged-in user's password.
type PasswordChangeForm struct {
	OldPassword  string      `form:"old_password" validate:"required"`
	NewPassword1 string      `form:"new_password1" validate:"required"`
	NewPassword2 string      `form:"new_password2" validate:"required,eqfield=NewPassword1"`
	Errors       FieldErrors `form:"-"`
}

// ParsePasswordChangeForm binds submitted values. Passwords are not trimmed.
func ParsePasswordChangeForm(values url.Values) PasswordChangeForm {
	return PasswordChangeForm{
		OldPassword:  values.Get("old_password"),
		NewPassword1: values.Get("new_password1"),
		NewPassword2: values.Get("new_password2"),
		Errors:       FieldErrors{},
	}
}

// Validate checks the form and the password rules against username.
func (f *PasswordChangeForm) Validate(username string) bool {
	f.Errors = check(f)

	if !f.Errors.Has("new_password1") && !f.Errors.Has("new_password2") {
		if errs := auth.ValidatePassword(f.NewPassword1, username); len(errs) > 0 {
			f.Errors.Add("new_password2", Sentence(errs[0]))
		}
	}

	return !f.Errors.Any()
}
