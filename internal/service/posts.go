// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service holds the blog's business rules: which posts a viewer
// may see, how lists are paged and who may change what.
package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/olegiv/blogicum/internal/seo"
	"github.com/olegiv/blogicum/internal/store"
	"github.com/olegiv/blogicum/internal/uikit"
)

// PostView is a post joined with everything a template shows next to it.
type PostView struct {
	store.Post
	AuthorUsername    string
	AuthorFirstName   string
	AuthorLastName    string
	CategoryTitle     sql.NullString
	CategorySlug      sql.NullString
	LocationName      sql.NullString
	LocationPublished sql.NullBool
	CommentCount      int64
	// Public is false for posts only their author can currently see.
	Public bool
}

// AuthorFullName returns "First Last", falling back to the username.
func (p PostView) AuthorFullName() string {
	name := strings.TrimSpace(p.AuthorFirstName + " " + p.AuthorLastName)
	if name == "" {
		return p.AuthorUsername
	}
	return name
}

// ShowLocation reports whether the location is set and published.
func (p PostView) ShowLocation() bool {
	return p.LocationName.Valid && p.LocationPublished.Valid && p.LocationPublished.Bool
}

// PostService answers every read of posts through one visibility predicate.
type PostService struct {
	db      *sql.DB
	queries *store.Queries
	perPage int
	now     func() time.Time
}

// NewPostService creates a post service. perPage <= 0 selects PostsPerPage.
func NewPostService(db *sql.DB, perPage int) *PostService {
	if perPage <= 0 {
		perPage = PostsPerPage
	}
	return &PostService{
		db:      db,
		queries: store.New(db),
		perPage: perPage,
		now:     store.Now,
	}
}

// PerPage returns the configured page size.
func (s *PostService) PerPage() int { return s.perPage }

// postColumns selects a PostView. The public flag repeats publicClause and
// therefore takes one "now" argument ahead of the WHERE arguments.
const postColumns = `
	p.id, p.title, p.text, p.pub_date, p.is_published, p.author_id,
	p.location_id, p.category_id, p.image, p.created_at,
	u.username, u.first_name, u.last_name,
	c.title, c.slug,
	l.name, l.is_published,
	(SELECT COUNT(*) FROM comments cm WHERE cm.post_id = p.id) AS comment_count,
	CASE WHEN ` + publicClause + ` THEN 1 ELSE 0 END AS is_public`

const postJoins = `
	FROM posts p
	INNER JOIN users u ON u.id = p.author_id
	LEFT JOIN categories c ON c.id = p.category_id
	LEFT JOIN locations l ON l.id = p.location_id`

const postOrder = ` ORDER BY p.pub_date DESC, p.id DESC`

// VisiblePosts returns the requested page of posts the viewer may see
// under the filter, newest first. Out-of-range pages clamp.
func (s *PostService) VisiblePosts(ctx context.Context, viewer Viewer, filter PostFilter, page int) (uikit.Page[PostView], error) {
	now := s.now()
	pred := visibility(viewer, filter, now)

	//goland:noinspection SqlResolve
	countQuery := `SELECT COUNT(*) FROM posts p LEFT JOIN categories c ON c.id = p.category_id WHERE ` + pred.clause

	var total int64
	if err := s.db.QueryRowContext(ctx, countQuery, pred.args...).Scan(&total); err != nil {
		return uikit.Page[PostView]{}, fmt.Errorf("counting posts: %w", err)
	}

	_, _, offset := uikit.Window(total, s.perPage, page)
	if total == 0 {
		return uikit.NewPage([]PostView{}, 0, s.perPage, page), nil
	}

	//goland:noinspection SqlResolve
	listQuery := `SELECT` + postColumns + postJoins + ` WHERE ` + pred.clause + postOrder + ` LIMIT ? OFFSET ?`

	args := make([]any, 0, len(pred.args)+3)
	args = append(args, now)
	args = append(args, pred.args...)
	args = append(args, s.perPage, offset)

	posts, err := s.queryPosts(ctx, listQuery, args...)
	if err != nil {
		return uikit.Page[PostView]{}, fmt.Errorf("listing posts: %w", err)
	}

	return uikit.NewPage(posts, total, s.perPage, page), nil
}

// VisiblePost fetches a single post if the viewer may see it. The
// existence and visibility checks are the same query, so a hidden post
// is indistinguishable from a missing one.
func (s *PostService) VisiblePost(ctx context.Context, viewer Viewer, id int64) (PostView, error) {
	if id <= 0 {
		return PostView{}, ErrNotFound
	}

	now := s.now()
	pred := visibility(viewer, PostFilter{PostID: id}, now)

	//goland:noinspection SqlResolve
	query := `SELECT` + postColumns + postJoins + ` WHERE ` + pred.clause

	posts, err := s.queryPosts(ctx, query, append([]any{now}, pred.args...)...)
	if err != nil {
		return PostView{}, fmt.Errorf("fetching post %d: %w", id, err)
	}
	if len(posts) == 0 {
		return PostView{}, ErrNotFound
	}
	return posts[0], nil
}

// PublicEntries lists the ids and publication dates of at most limit
// posts that an anonymous visitor may see, newest first.
func (s *PostService) PublicEntries(ctx context.Context, limit int) ([]seo.SitemapPost, error) {
	pred := visibility(Anonymous(), PostFilter{}, s.now())

	//goland:noinspection SqlResolve
	query := `SELECT p.id, p.pub_date FROM posts p LEFT JOIN categories c ON c.id = p.category_id WHERE ` +
		pred.clause + postOrder + ` LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, append(pred.args, limit)...)
	if err != nil {
		return nil, fmt.Errorf("listing public posts: %w", err)
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var entries []seo.SitemapPost
	for rows.Next() {
		var e seo.SitemapPost
		if err := rows.Scan(&e.ID, &e.PubDate); err != nil {
			return nil, fmt.Errorf("scanning public post: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing public posts: %w", err)
	}
	return entries, nil
}

func (s *PostService) queryPosts(ctx context.Context, query string, args ...any) ([]PostView, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var posts []PostView
	for rows.Next() {
		var p PostView
		if err := rows.Scan(
			&p.ID,
			&p.Title,
			&p.Text,
			&p.PubDate,
			&p.IsPublished,
			&p.AuthorID,
			&p.LocationID,
			&p.CategoryID,
			&p.Image,
			&p.CreatedAt,
			&p.AuthorUsername,
			&p.AuthorFirstName,
			&p.AuthorLastName,
			&p.CategoryTitle,
			&p.CategorySlug,
			&p.LocationName,
			&p.LocationPublished,
			&p.CommentCount,
			&p.Public,
		); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return posts, nil
}

// Comments lists a post's comments oldest first.
func (s *PostService) Comments(ctx context.Context, postID int64) ([]store.ListCommentsForPostRow, error) {
	comments, err := s.queries.ListCommentsForPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("listing comments for post %d: %w", postID, err)
	}
	return comments, nil
}

// PublishedCategory resolves a category feed slug. Unpublished
// categories are not found.
func (s *PostService) PublishedCategory(ctx context.Context, slug string) (store.Category, error) {
	c, err := s.queries.GetPublishedCategoryBySlug(ctx, slug)
	if err != nil {
		return store.Category{}, notFound(err)
	}
	return c, nil
}

// Profile resolves a profile page username.
func (s *PostService) Profile(ctx context.Context, username string) (store.User, error) {
	u, err := s.queries.GetUserByUsername(ctx, username)
	if err != nil {
		return store.User{}, notFound(err)
	}
	return u, nil
}

// Categories lists the categories a post can be filed under.
func (s *PostService) Categories(ctx context.Context) ([]store.Category, error) {
	return s.queries.ListPublishedCategories(ctx)
}

// Locations lists the locations a post can be tagged with.
func (s *PostService) Locations(ctx context.Context) ([]store.Location, error) {
	return s.queries.ListPublishedLocations(ctx)
}
