// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"database/sql"
	"errors"
	"strings"
)

// Errors returned by the read and write paths. Handlers own their HTTP
// translation.
var (
	// ErrNotFound covers both missing entities and entities the viewer
	// may not see.
	ErrNotFound = errors.New("not found")
	// ErrNotAuthor is returned when the actor does not own the post or
	// comment it tries to change.
	ErrNotAuthor = errors.New("actor is not the author")
	// ErrUnauthenticated is returned for writes without an actor.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrUsernameTaken is returned when a username belongs to another user.
	ErrUsernameTaken = errors.New("username is already taken")
	// ErrInvalidCredentials is returned by Authenticate for unknown users
	// and wrong passwords alike.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// notFound maps sql.ErrNoRows to ErrNotFound and passes other errors through.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// isUniqueViolation reports whether err comes from a UNIQUE constraint.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
