// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/blogicum/internal/store"
	"github.com/olegiv/blogicum/internal/testutil"
)

func TestAddComment(t *testing.T) {
	env := newTestEnv(t)
	h := NewCommentHandler(env.renderer, env.sm, env.posts, env.gate)
	author := testutil.CreateUser(t, env.db, "author")
	reader := testutil.CreateUser(t, env.db, "reader")
	post := testutil.CreatePost(t, env.db, author)
	draft := testutil.CreatePost(t, env.db, author, testutil.Unpublished())

	pattern := RoutePosts + RouteParamID + RouteSuffixComment

	t.Run("valid", func(t *testing.T) {
		target := postURL(post.ID) + RouteSuffixComment
		rec := env.serve(http.MethodPost, pattern, target, h.Add, &reader, url.Values{"text": {"Great read"}})
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, postURL(post.ID), rec.Header().Get("Location"))

		comments, err := env.posts.Comments(context.Background(), post.ID)
		require.NoError(t, err)
		require.Len(t, comments, 1)
		assert.Equal(t, "Great read", comments[0].Text)
		assert.Equal(t, reader.ID, comments[0].AuthorID)
	})

	t.Run("empty text re-renders", func(t *testing.T) {
		target := postURL(post.ID) + RouteSuffixComment
		rec := env.serve(http.MethodPost, pattern, target, h.Add, &reader, url.Values{"text": {"   "}})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Обязательное поле.")
	})

	t.Run("hidden post is not found", func(t *testing.T) {
		target := postURL(draft.ID) + RouteSuffixComment
		rec := env.serve(http.MethodPost, pattern, target, h.Add, &reader, url.Values{"text": {"Sneaky"}})
		assert.Equal(t, http.StatusNotFound, rec.Code)

		comments, err := env.posts.Comments(context.Background(), draft.ID)
		require.NoError(t, err)
		assert.Empty(t, comments)
	})

	t.Run("missing post", func(t *testing.T) {
		rec := env.serve(http.MethodPost, pattern, "/posts/9999/comment", h.Add, &reader, url.Values{"text": {"Hello"}})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestEditComment(t *testing.T) {
	env := newTestEnv(t)
	h := NewCommentHandler(env.renderer, env.sm, env.posts, env.gate)
	author := testutil.CreateUser(t, env.db, "author")
	reader := testutil.CreateUser(t, env.db, "reader")
	post := testutil.CreatePost(t, env.db, author)
	otherPost := testutil.CreatePost(t, env.db, author)
	comment := testutil.CreateComment(t, env.db, post, reader, "Original comment", time.Now())

	pattern := RoutePosts + RouteParamID + RouteEditComment
	target := fmt.Sprintf("/posts/%d/edit_comment/%d", post.ID, comment.ID)
	queries := store.New(env.db)

	currentText := func(t *testing.T) string {
		t.Helper()
		c, err := queries.GetCommentForPost(context.Background(), store.GetCommentForPostParams{ID: comment.ID, PostID: post.ID})
		require.NoError(t, err)
		return c.Text
	}

	t.Run("non-author is redirected", func(t *testing.T) {
		rec := env.serve(http.MethodGet, pattern, target, h.EditForm, &author, nil)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, postURL(post.ID), rec.Header().Get("Location"))

		rec = env.serve(http.MethodPost, pattern, target, h.Update, &author, url.Values{"text": {"Overwritten"}})
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "Original comment", currentText(t))
	})

	t.Run("author sees form", func(t *testing.T) {
		rec := env.serve(http.MethodGet, pattern, target, h.EditForm, &reader, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Original comment")
	})

	t.Run("author updates", func(t *testing.T) {
		rec := env.serve(http.MethodPost, pattern, target, h.Update, &reader, url.Values{"text": {"Edited comment"}})
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, postURL(post.ID), rec.Header().Get("Location"))
		assert.Equal(t, "Edited comment", currentText(t))
	})

	t.Run("comment of another post", func(t *testing.T) {
		wrong := fmt.Sprintf("/posts/%d/edit_comment/%d", otherPost.ID, comment.ID)
		rec := env.serve(http.MethodGet, pattern, wrong, h.EditForm, &reader, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDeleteComment(t *testing.T) {
	env := newTestEnv(t)
	h := NewCommentHandler(env.renderer, env.sm, env.posts, env.gate)
	author := testutil.CreateUser(t, env.db, "author")
	reader := testutil.CreateUser(t, env.db, "reader")
	post := testutil.CreatePost(t, env.db, author)
	comment := testutil.CreateComment(t, env.db, post, reader, "Short-lived", time.Now())

	pattern := RoutePosts + RouteParamID + RouteDeleteComment
	target := fmt.Sprintf("/posts/%d/delete_comment/%d", post.ID, comment.ID)

	t.Run("non-author is redirected", func(t *testing.T) {
		rec := env.serve(http.MethodPost, pattern, target, h.Delete, &author, url.Values{})
		assert.Equal(t, http.StatusSeeOther, rec.Code)

		comments, err := env.posts.Comments(context.Background(), post.ID)
		require.NoError(t, err)
		assert.Len(t, comments, 1)
	})

	t.Run("confirmation page", func(t *testing.T) {
		rec := env.serve(http.MethodGet, pattern, target, h.DeleteForm, &reader, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Short-lived")
		assert.Contains(t, rec.Body.String(), `action="`+target+`"`)
	})

	t.Run("author deletes", func(t *testing.T) {
		rec := env.serve(http.MethodPost, pattern, target, h.Delete, &reader, url.Values{})
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, postURL(post.ID), rec.Header().Get("Location"))

		comments, err := env.posts.Comments(context.Background(), post.ID)
		require.NoError(t, err)
		assert.Empty(t, comments)
	})
}
