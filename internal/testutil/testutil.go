// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers: migrated temp databases
// and entity fixtures.
package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/olegiv/blogicum/internal/store"
	"github.com/olegiv/blogicum/internal/util"
)

// TestDB creates a migrated database inside t.TempDir. It is closed
// automatically when the test ends.
func TestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := store.NewDB(filepath.Join(t.TempDir(), "blogicum-test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := store.Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	return db
}

// CreateUser inserts a user with a throwaway password hash.
func CreateUser(t *testing.T, db *sql.DB, username string) store.User {
	t.Helper()

	u, err := store.New(db).CreateUser(context.Background(), store.CreateUserParams{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "not-a-real-hash",
		DateJoined:   store.Now(),
	})
	if err != nil {
		t.Fatalf("CreateUser(%s): %v", username, err)
	}
	return u
}

// CreateCategory inserts a category whose title equals its slug.
func CreateCategory(t *testing.T, db *sql.DB, slug string, published bool) store.Category {
	t.Helper()

	c, err := store.New(db).CreateCategory(context.Background(), store.CreateCategoryParams{
		Title:       slug,
		Description: "about " + slug,
		Slug:        slug,
		IsPublished: published,
		CreatedAt:   store.Now(),
	})
	if err != nil {
		t.Fatalf("CreateCategory(%s): %v", slug, err)
	}
	return c
}

// CreateLocation inserts a location.
func CreateLocation(t *testing.T, db *sql.DB, name string, published bool) store.Location {
	t.Helper()

	l, err := store.New(db).CreateLocation(context.Background(), store.CreateLocationParams{
		Name:        name,
		IsPublished: published,
		CreatedAt:   store.Now(),
	})
	if err != nil {
		t.Fatalf("CreateLocation(%s): %v", name, err)
	}
	return l
}

// PostOption adjusts a fixture post before it is inserted.
type PostOption func(*store.CreatePostParams)

// Unpublished marks the post as not published.
func Unpublished() PostOption {
	return func(p *store.CreatePostParams) { p.IsPublished = false }
}

// PublishedAt sets the publication time.
func PublishedAt(t time.Time) PostOption {
	return func(p *store.CreatePostParams) { p.PubDate = store.Timestamp(t) }
}

// InCategory files the post under a category.
func InCategory(c store.Category) PostOption {
	return func(p *store.CreatePostParams) { p.CategoryID = util.NullInt64FromValue(c.ID) }
}

// AtLocation tags the post with a location.
func AtLocation(l store.Location) PostOption {
	return func(p *store.CreatePostParams) { p.LocationID = util.NullInt64FromValue(l.ID) }
}

// Titled sets the post title.
func Titled(title string) PostOption {
	return func(p *store.CreatePostParams) { p.Title = title }
}

// CreatePost inserts a post by author. By default it is published an hour
// ago with no category or location.
func CreatePost(t *testing.T, db *sql.DB, author store.User, opts ...PostOption) store.Post {
	t.Helper()

	params := store.CreatePostParams{
		Title:       "Post by " + author.Username,
		Text:        "Some text",
		PubDate:     store.Now().Add(-time.Hour),
		IsPublished: true,
		AuthorID:    author.ID,
		CreatedAt:   store.Now(),
	}
	for _, opt := range opts {
		opt(&params)
	}

	p, err := store.New(db).CreatePost(context.Background(), params)
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	return p
}

// CreateComment inserts a comment with an explicit creation time.
func CreateComment(t *testing.T, db *sql.DB, post store.Post, author store.User, text string, at time.Time) store.Comment {
	t.Helper()

	c, err := store.New(db).CreateComment(context.Background(), store.CreateCommentParams{
		PostID:    post.ID,
		AuthorID:  author.ID,
		Text:      text,
		CreatedAt: store.Timestamp(at),
	})
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	return c
}
