// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/olegiv/blogicum/internal/model"
	"github.com/olegiv/blogicum/internal/store"
)

// PostInput is the author-editable part of a post. The author itself is
// never part of the input.
type PostInput struct {
	Title       string
	Text        string
	PubDate     time.Time
	IsPublished bool
	LocationID  sql.NullInt64
	CategoryID  sql.NullInt64
	Image       string
}

// ProfileInput is the editable part of a user profile.
type ProfileInput struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
}

// Gate authorizes every write. Reads go through PostService instead.
type Gate struct {
	queries *store.Queries
	posts   *PostService
	now     func() time.Time
}

// NewGate creates a gate that checks comment targets against posts.
func NewGate(db *sql.DB, posts *PostService) *Gate {
	return &Gate{
		queries: store.New(db),
		posts:   posts,
		now:     store.Now,
	}
}

func refuse(ctx context.Context, category, action string, actor Viewer, id int64) error {
	slog.WarnContext(ctx, "mutation refused",
		"category", category,
		"action", action,
		"user_id", actor.UserID,
		"target_id", id,
	)
	return ErrNotAuthor
}

// CreatePost stores a new post authored by the actor.
func (g *Gate) CreatePost(ctx context.Context, actor Viewer, in PostInput) (store.Post, error) {
	if !actor.IsAuthenticated() {
		return store.Post{}, ErrUnauthenticated
	}

	post, err := g.queries.CreatePost(ctx, store.CreatePostParams{
		Title:       strings.TrimSpace(in.Title),
		Text:        in.Text,
		PubDate:     store.Timestamp(in.PubDate),
		IsPublished: in.IsPublished,
		AuthorID:    actor.UserID,
		LocationID:  in.LocationID,
		CategoryID:  in.CategoryID,
		Image:       in.Image,
		CreatedAt:   g.now(),
	})
	if err != nil {
		return store.Post{}, fmt.Errorf("creating post: %w", err)
	}

	slog.InfoContext(ctx, "post created", "category", model.EventCategoryPost, "post_id", post.ID, "user_id", actor.UserID)
	return post, nil
}

// AuthorizePost loads a post the actor is about to change. A missing post
// is ErrNotFound, and so is somebody else's post the actor cannot see.
// Somebody else's visible post is ErrNotAuthor.
func (g *Gate) AuthorizePost(ctx context.Context, actor Viewer, postID int64) (store.Post, error) {
	if !actor.IsAuthenticated() {
		return store.Post{}, ErrUnauthenticated
	}

	post, err := g.queries.GetPostByID(ctx, postID)
	if err != nil {
		return store.Post{}, notFound(err)
	}
	if post.AuthorID != actor.UserID {
		if err := g.requireVisible(ctx, actor, postID); err != nil {
			return store.Post{}, err
		}
		return store.Post{}, refuse(ctx, model.EventCategoryPost, "change", actor, postID)
	}
	return post, nil
}

// requireVisible hides the existence of posts the actor may not read.
func (g *Gate) requireVisible(ctx context.Context, actor Viewer, postID int64) error {
	_, err := g.posts.VisiblePost(ctx, actor, postID)
	return err
}

// UpdatePost replaces the editable fields of the actor's post.
func (g *Gate) UpdatePost(ctx context.Context, actor Viewer, postID int64, in PostInput) (store.Post, error) {
	if _, err := g.AuthorizePost(ctx, actor, postID); err != nil {
		return store.Post{}, err
	}

	rows, err := g.queries.UpdatePost(ctx, store.UpdatePostParams{
		Title:       strings.TrimSpace(in.Title),
		Text:        in.Text,
		PubDate:     store.Timestamp(in.PubDate),
		IsPublished: in.IsPublished,
		LocationID:  in.LocationID,
		CategoryID:  in.CategoryID,
		Image:       in.Image,
		ID:          postID,
		AuthorID:    actor.UserID,
	})
	if err != nil {
		return store.Post{}, fmt.Errorf("updating post %d: %w", postID, err)
	}
	if rows == 0 {
		return store.Post{}, ErrNotFound
	}

	post, err := g.queries.GetPostByID(ctx, postID)
	if err != nil {
		return store.Post{}, notFound(err)
	}
	return post, nil
}

// DeletePost removes the actor's post together with its comments and
// returns what was deleted so the caller can clean up the image.
func (g *Gate) DeletePost(ctx context.Context, actor Viewer, postID int64) (store.Post, error) {
	post, err := g.AuthorizePost(ctx, actor, postID)
	if err != nil {
		return store.Post{}, err
	}

	rows, err := g.queries.DeletePost(ctx, store.DeletePostParams{ID: postID, AuthorID: actor.UserID})
	if err != nil {
		return store.Post{}, fmt.Errorf("deleting post %d: %w", postID, err)
	}
	if rows == 0 {
		return store.Post{}, ErrNotFound
	}

	slog.InfoContext(ctx, "post deleted", "category", model.EventCategoryPost, "post_id", postID, "user_id", actor.UserID)
	return post, nil
}

// CreateComment adds the actor's comment to a post the actor can see.
func (g *Gate) CreateComment(ctx context.Context, actor Viewer, postID int64, text string) (store.Comment, error) {
	if !actor.IsAuthenticated() {
		return store.Comment{}, ErrUnauthenticated
	}
	if _, err := g.posts.VisiblePost(ctx, actor, postID); err != nil {
		return store.Comment{}, err
	}

	comment, err := g.queries.CreateComment(ctx, store.CreateCommentParams{
		PostID:    postID,
		AuthorID:  actor.UserID,
		Text:      text,
		CreatedAt: g.now(),
	})
	if err != nil {
		return store.Comment{}, fmt.Errorf("creating comment: %w", err)
	}
	return comment, nil
}

// AuthorizeComment loads a comment of the given post that the actor is
// about to change. Errors follow AuthorizePost.
func (g *Gate) AuthorizeComment(ctx context.Context, actor Viewer, postID, commentID int64) (store.Comment, error) {
	if !actor.IsAuthenticated() {
		return store.Comment{}, ErrUnauthenticated
	}

	comment, err := g.queries.GetCommentForPost(ctx, store.GetCommentForPostParams{ID: commentID, PostID: postID})
	if err != nil {
		return store.Comment{}, notFound(err)
	}
	if comment.AuthorID != actor.UserID {
		if err := g.requireVisible(ctx, actor, postID); err != nil {
			return store.Comment{}, err
		}
		return store.Comment{}, refuse(ctx, model.EventCategoryComment, "change", actor, commentID)
	}
	return comment, nil
}

// UpdateComment replaces the text of the actor's comment.
func (g *Gate) UpdateComment(ctx context.Context, actor Viewer, postID, commentID int64, text string) (store.Comment, error) {
	comment, err := g.AuthorizeComment(ctx, actor, postID, commentID)
	if err != nil {
		return store.Comment{}, err
	}

	rows, err := g.queries.UpdateComment(ctx, store.UpdateCommentParams{
		Text:     text,
		ID:       commentID,
		AuthorID: actor.UserID,
	})
	if err != nil {
		return store.Comment{}, fmt.Errorf("updating comment %d: %w", commentID, err)
	}
	if rows == 0 {
		return store.Comment{}, ErrNotFound
	}

	comment.Text = text
	return comment, nil
}

// DeleteComment removes the actor's comment.
func (g *Gate) DeleteComment(ctx context.Context, actor Viewer, postID, commentID int64) error {
	if _, err := g.AuthorizeComment(ctx, actor, postID, commentID); err != nil {
		return err
	}

	rows, err := g.queries.DeleteComment(ctx, store.DeleteCommentParams{ID: commentID, AuthorID: actor.UserID})
	if err != nil {
		return fmt.Errorf("deleting comment %d: %w", commentID, err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateProfile changes the actor's own profile. There is no way to name
// another user here: the target is always the actor.
func (g *Gate) UpdateProfile(ctx context.Context, actor Viewer, in ProfileInput) (store.User, error) {
	if !actor.IsAuthenticated() {
		return store.User{}, ErrUnauthenticated
	}

	taken, err := g.queries.UsernameTaken(ctx, store.UsernameTakenParams{Username: in.Username, ID: actor.UserID})
	if err != nil {
		return store.User{}, fmt.Errorf("checking username: %w", err)
	}
	if taken > 0 {
		return store.User{}, ErrUsernameTaken
	}

	user, err := g.queries.UpdateUserProfile(ctx, store.UpdateUserProfileParams{
		Username:  in.Username,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     strings.TrimSpace(in.Email),
		ID:        actor.UserID,
	})
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return store.User{}, ErrNotFound
		case isUniqueViolation(err):
			return store.User{}, ErrUsernameTaken
		}
		return store.User{}, fmt.Errorf("updating profile: %w", err)
	}

	slog.InfoContext(ctx, "profile updated", "category", model.EventCategoryProfile, "user_id", actor.UserID)
	return user, nil
}
