// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"strings"
	"time"

	"github.com/olegiv/blogicum/internal/store"
)

// PostsPerPage is the page size shared by every post list.
const PostsPerPage = 10

// Viewer identifies who is looking at posts. The zero value is anonymous.
type Viewer struct {
	UserID int64
}

// Anonymous returns a viewer without identity.
func Anonymous() Viewer { return Viewer{} }

// ViewerOf returns the viewer for a logged-in user, or Anonymous for nil.
func ViewerOf(u *store.User) Viewer {
	if u == nil {
		return Anonymous()
	}
	return Viewer{UserID: u.ID}
}

// IsAuthenticated reports whether the viewer is logged in.
func (v Viewer) IsAuthenticated() bool { return v.UserID > 0 }

// Is reports whether the viewer is the user with the given id.
func (v Viewer) Is(userID int64) bool { return v.IsAuthenticated() && v.UserID == userID }

// PostFilter narrows a post query. Zero fields do not constrain.
type PostFilter struct {
	CategoryID int64
	AuthorID   int64
	PostID     int64
	// AsOwner asks for the author's own listing. It only takes effect when
	// the viewer is the author named by AuthorID.
	AsOwner bool
}

// predicate is a WHERE clause with its positional arguments. The query
// must join categories as c.
type predicate struct {
	clause string
	args   []any
}

// publicClause is the rule that applies to every viewer: published, in a
// published category or none, and not scheduled for later.
const publicClause = `(p.is_published = 1 AND (p.category_id IS NULL OR c.is_published = 1) AND p.pub_date <= ?)`

// admitsOwner reports whether the scope lets the author see their own
// hidden posts: their own profile listing and single-post fetches.
// Index and category feeds never do.
func (f PostFilter) admitsOwner(v Viewer) bool {
	if !v.IsAuthenticated() {
		return false
	}
	if f.PostID != 0 {
		return true
	}
	return f.AsOwner && f.AuthorID == v.UserID
}

// visibility builds the single predicate every post read goes through:
// public OR (scope admits owner AND author == viewer), AND-composed with
// the filter's equality constraints.
func visibility(v Viewer, f PostFilter, now time.Time) predicate {
	var (
		parts []string
		args  []any
	)

	if f.admitsOwner(v) {
		parts = append(parts, "("+publicClause+" OR p.author_id = ?)")
		args = append(args, now, v.UserID)
	} else {
		parts = append(parts, publicClause)
		args = append(args, now)
	}

	if f.CategoryID != 0 {
		parts = append(parts, "p.category_id = ?")
		args = append(args, f.CategoryID)
	}
	if f.AuthorID != 0 {
		parts = append(parts, "p.author_id = ?")
		args = append(args, f.AuthorID)
	}
	if f.PostID != 0 {
		parts = append(parts, "p.id = ?")
		args = append(args, f.PostID)
	}

	return predicate{clause: strings.Join(parts, " AND "), args: args}
}
