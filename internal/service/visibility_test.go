// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/olegiv/blogicum/internal/store"
)

func TestViewerOf(t *testing.T) {
	assert.False(t, ViewerOf(nil).IsAuthenticated())
	assert.False(t, Anonymous().Is(0))

	v := ViewerOf(&store.User{ID: 7})
	assert.True(t, v.IsAuthenticated())
	assert.True(t, v.Is(7))
	assert.False(t, v.Is(8))
}

func TestAdmitsOwner(t *testing.T) {
	alice := Viewer{UserID: 1}

	tests := []struct {
		name   string
		viewer Viewer
		filter PostFilter
		want   bool
	}{
		{"index feed", alice, PostFilter{}, false},
		{"category feed", alice, PostFilter{CategoryID: 3}, false},
		{"own profile", alice, PostFilter{AuthorID: 1, AsOwner: true}, true},
		{"own profile without owner scope", alice, PostFilter{AuthorID: 1}, false},
		{"someone else's profile", alice, PostFilter{AuthorID: 2, AsOwner: true}, false},
		{"single post", alice, PostFilter{PostID: 9}, true},
		{"anonymous single post", Anonymous(), PostFilter{PostID: 9}, false},
		{"anonymous owner scope", Anonymous(), PostFilter{AsOwner: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.admitsOwner(tt.viewer))
		})
	}
}

func TestVisibilityPredicate(t *testing.T) {
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("public only", func(t *testing.T) {
		p := visibility(Anonymous(), PostFilter{CategoryID: 4}, now)

		assert.Equal(t, publicClause+" AND p.category_id = ?", p.clause)
		assert.Equal(t, []any{now, int64(4)}, p.args)
	})

	t.Run("owner admitted", func(t *testing.T) {
		p := visibility(Viewer{UserID: 5}, PostFilter{AuthorID: 5, AsOwner: true}, now)

		assert.True(t, strings.HasPrefix(p.clause, "("+publicClause+" OR p.author_id = ?)"))
		assert.Equal(t, []any{now, int64(5), int64(5)}, p.args)
	})

	t.Run("placeholders match arguments", func(t *testing.T) {
		p := visibility(Viewer{UserID: 5}, PostFilter{CategoryID: 1, AuthorID: 2, PostID: 3}, now)

		assert.Equal(t, strings.Count(p.clause, "?"), len(p.args))
	})
}
