// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package forms

import "net/url"

// CommentForm is the add and edit form of a comment.
type CommentForm struct {
	Text   string      `form:"text" validate:"required,max=5000"`
	Errors FieldErrors `form:"-"`
}

// NewCommentForm returns an empty comment form.
func NewCommentForm() CommentForm {
	return CommentForm{Errors: FieldErrors{}}
}

// ParseCommentForm binds submitted values.
func ParseCommentForm(values url.Values) CommentForm {
	return CommentForm{Text: field(values, "text"), Errors: FieldErrors{}}
}

// Validate checks the form.
func (f *CommentForm) Validate() bool {
	f.Errors = check(f)
	return !f.Errors.Any()
}
