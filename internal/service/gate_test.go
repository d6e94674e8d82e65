// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/blogicum/internal/store"
	"github.com/olegiv/blogicum/internal/testutil"
)

type gateFixture struct {
	db    *sql.DB
	posts *PostService
	gate  *Gate
	alice store.User
	bob   store.User
}

func newGateFixture(t *testing.T) gateFixture {
	t.Helper()

	db := testutil.TestDB(t)
	posts := NewPostService(db, 0)
	return gateFixture{
		db:    db,
		posts: posts,
		gate:  NewGate(db, posts),
		alice: testutil.CreateUser(t, db, "alice"),
		bob:   testutil.CreateUser(t, db, "bob"),
	}
}

func TestCreatePostRoundTrip(t *testing.T) {
	f := newGateFixture(t)
	ctx := context.Background()
	cat := testutil.CreateCategory(t, f.db, "travel", true)

	post, err := f.gate.CreatePost(ctx, ViewerOf(&f.alice), PostInput{
		Title:       "  Trip  ",
		Text:        "We went places",
		PubDate:     time.Now().Add(-time.Hour),
		IsPublished: true,
		CategoryID:  sql.NullInt64{Int64: cat.ID, Valid: true},
	})
	require.NoError(t, err)

	assert.Equal(t, f.alice.ID, post.AuthorID)
	assert.Equal(t, "Trip", post.Title)

	page, err := f.posts.VisiblePosts(ctx, Anonymous(), PostFilter{}, 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, post.ID, page.Items[0].ID)
}

func TestCreatePostRequiresActor(t *testing.T) {
	f := newGateFixture(t)

	_, err := f.gate.CreatePost(context.Background(), Anonymous(), PostInput{Title: "x", Text: "y", PubDate: time.Now()})

	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestUpdatePost(t *testing.T) {
	f := newGateFixture(t)
	ctx := context.Background()
	post := testutil.CreatePost(t, f.db, f.alice)

	in := PostInput{Title: "Edited", Text: "New text", PubDate: post.PubDate, IsPublished: false}

	t.Run("non-author is refused", func(t *testing.T) {
		_, err := f.gate.UpdatePost(ctx, ViewerOf(&f.bob), post.ID, in)
		assert.ErrorIs(t, err, ErrNotAuthor)

		got, err := store.New(f.db).GetPostByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, post.Title, got.Title)
	})

	t.Run("author updates", func(t *testing.T) {
		got, err := f.gate.UpdatePost(ctx, ViewerOf(&f.alice), post.ID, in)
		require.NoError(t, err)
		assert.Equal(t, "Edited", got.Title)
		assert.False(t, got.IsPublished)
		assert.Equal(t, f.alice.ID, got.AuthorID)
		assert.True(t, got.CreatedAt.Equal(post.CreatedAt))
	})

	t.Run("missing post", func(t *testing.T) {
		_, err := f.gate.UpdatePost(ctx, ViewerOf(&f.alice), post.ID+100, in)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDeletePostByNonAuthorKeepsPost(t *testing.T) {
	f := newGateFixture(t)
	ctx := context.Background()
	post := testutil.CreatePost(t, f.db, f.alice)

	_, err := f.gate.DeletePost(ctx, ViewerOf(&f.bob), post.ID)
	assert.ErrorIs(t, err, ErrNotAuthor)

	_, err = f.posts.VisiblePost(ctx, Anonymous(), post.ID)
	assert.NoError(t, err, "post must still exist")
}

func TestHiddenPostMutationsAreNotFound(t *testing.T) {
	f := newGateFixture(t)
	ctx := context.Background()
	draft := testutil.CreatePost(t, f.db, f.alice, testutil.Unpublished())
	scheduled := testutil.CreatePost(t, f.db, f.alice, testutil.PublishedAt(time.Now().Add(time.Hour)))
	comment := testutil.CreateComment(t, f.db, draft, f.alice, "note", time.Now())

	for _, post := range []store.Post{draft, scheduled} {
		_, err := f.gate.AuthorizePost(ctx, ViewerOf(&f.bob), post.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = f.gate.UpdatePost(ctx, ViewerOf(&f.bob), post.ID, PostInput{Title: "Hijacked", PubDate: time.Now()})
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = f.gate.DeletePost(ctx, ViewerOf(&f.bob), post.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	}

	_, err := f.gate.AuthorizeComment(ctx, ViewerOf(&f.bob), draft.ID, comment.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, f.gate.DeleteComment(ctx, ViewerOf(&f.bob), draft.ID, comment.ID), ErrNotFound)

	// The author still reaches their own hidden post.
	_, err = f.gate.AuthorizePost(ctx, ViewerOf(&f.alice), draft.ID)
	assert.NoError(t, err)

	_, err = f.posts.VisiblePost(ctx, ViewerOf(&f.alice), draft.ID)
	assert.NoError(t, err, "draft must still exist")
}

func TestDeletePostRemovesComments(t *testing.T) {
	f := newGateFixture(t)
	ctx := context.Background()
	post := testutil.CreatePost(t, f.db, f.alice)
	testutil.CreateComment(t, f.db, post, f.bob, "hi", time.Now())

	deleted, err := f.gate.DeletePost(ctx, ViewerOf(&f.alice), post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, deleted.ID)

	_, err = f.posts.VisiblePost(ctx, ViewerOf(&f.alice), post.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	n, err := store.New(f.db).CountCommentsForPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCreateComment(t *testing.T) {
	f := newGateFixture(t)
	ctx := context.Background()
	public := testutil.CreatePost(t, f.db, f.alice)
	draft := testutil.CreatePost(t, f.db, f.alice, testutil.Unpublished())

	t.Run("author forced to actor", func(t *testing.T) {
		c, err := f.gate.CreateComment(ctx, ViewerOf(&f.bob), public.ID, "Nice")
		require.NoError(t, err)
		assert.Equal(t, f.bob.ID, c.AuthorID)
		assert.Equal(t, public.ID, c.PostID)
	})

	t.Run("invisible post is not found", func(t *testing.T) {
		_, err := f.gate.CreateComment(ctx, ViewerOf(&f.bob), draft.ID, "Sneaky")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("author may comment own draft", func(t *testing.T) {
		_, err := f.gate.CreateComment(ctx, ViewerOf(&f.alice), draft.ID, "Note to self")
		assert.NoError(t, err)
	})

	t.Run("anonymous", func(t *testing.T) {
		_, err := f.gate.CreateComment(ctx, Anonymous(), public.ID, "Hi")
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})
}

func TestUpdateAndDeleteComment(t *testing.T) {
	f := newGateFixture(t)
	ctx := context.Background()
	post := testutil.CreatePost(t, f.db, f.alice)
	other := testutil.CreatePost(t, f.db, f.alice)
	comment := testutil.CreateComment(t, f.db, post, f.bob, "original", time.Now())

	t.Run("non-author edit leaves comment untouched", func(t *testing.T) {
		_, err := f.gate.UpdateComment(ctx, ViewerOf(&f.alice), post.ID, comment.ID, "rewritten")
		assert.ErrorIs(t, err, ErrNotAuthor)

		got, err := store.New(f.db).GetCommentForPost(ctx, store.GetCommentForPostParams{ID: comment.ID, PostID: post.ID})
		require.NoError(t, err)
		assert.Equal(t, "original", got.Text)
	})

	t.Run("comment addressed through another post", func(t *testing.T) {
		_, err := f.gate.AuthorizeComment(ctx, ViewerOf(&f.bob), other.ID, comment.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("author edits", func(t *testing.T) {
		got, err := f.gate.UpdateComment(ctx, ViewerOf(&f.bob), post.ID, comment.ID, "edited")
		require.NoError(t, err)
		assert.Equal(t, "edited", got.Text)
		assert.True(t, got.CreatedAt.Equal(comment.CreatedAt))
	})

	t.Run("non-author delete refused", func(t *testing.T) {
		err := f.gate.DeleteComment(ctx, ViewerOf(&f.alice), post.ID, comment.ID)
		assert.ErrorIs(t, err, ErrNotAuthor)
	})

	t.Run("author deletes", func(t *testing.T) {
		require.NoError(t, f.gate.DeleteComment(ctx, ViewerOf(&f.bob), post.ID, comment.ID))

		err := f.gate.DeleteComment(ctx, ViewerOf(&f.bob), post.ID, comment.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUpdateProfile(t *testing.T) {
	f := newGateFixture(t)
	ctx := context.Background()

	t.Run("updates only the actor", func(t *testing.T) {
		u, err := f.gate.UpdateProfile(ctx, ViewerOf(&f.alice), ProfileInput{
			Username: "alice2", FirstName: " Alice ", LastName: "Liddell", Email: "a@example.com",
		})
		require.NoError(t, err)
		assert.Equal(t, f.alice.ID, u.ID)
		assert.Equal(t, "alice2", u.Username)
		assert.Equal(t, "Alice", u.FirstName)

		bob, err := store.New(f.db).GetUserByID(ctx, f.bob.ID)
		require.NoError(t, err)
		assert.Equal(t, "bob", bob.Username)
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := f.gate.UpdateProfile(ctx, ViewerOf(&f.alice), ProfileInput{Username: "bob"})
		assert.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("keeping own username", func(t *testing.T) {
		_, err := f.gate.UpdateProfile(ctx, ViewerOf(&f.bob), ProfileInput{Username: "bob", FirstName: "Bob"})
		assert.NoError(t, err)
	})

	t.Run("anonymous", func(t *testing.T) {
		_, err := f.gate.UpdateProfile(ctx, Anonymous(), ProfileInput{Username: "x"})
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})
}
