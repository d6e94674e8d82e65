// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/olegiv/blogicum/internal/util"
)

// SeedCategory describes a category created by Seed.
type SeedCategory struct {
	Title       string
	Description string
}

// DefaultCategories are created on first start when seeding is enabled.
var DefaultCategories = []SeedCategory{
	{Title: "Travel", Description: "Trips, routes and places worth visiting."},
	{Title: "Cooking", Description: "Recipes and kitchen experiments."},
	{Title: "Путешествия", Description: "Заметки о дорогах и городах."},
	{Title: "Books", Description: "What we read and what we think about it."},
}

// DefaultLocations are created on first start when seeding is enabled.
var DefaultLocations = []string{
	"Moscow",
	"Saint Petersburg",
	"Desert island",
}

// Seed creates the default categories and locations. It is idempotent:
// categories are matched by slug and locations are only inserted into an
// empty table.
func Seed(ctx context.Context, db *sql.DB, enabled bool) error {
	if !enabled {
		slog.Debug("seeding disabled")
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	queries := New(db).WithTx(tx)
	now := Now()

	created := 0
	for _, c := range DefaultCategories {
		slug := util.Slugify(c.Title)
		n, err := queries.CategorySlugExists(ctx, slug)
		if err != nil {
			return fmt.Errorf("checking category %q: %w", slug, err)
		}
		if n > 0 {
			continue
		}
		if _, err := queries.CreateCategory(ctx, CreateCategoryParams{
			Title:       c.Title,
			Description: c.Description,
			Slug:        slug,
			IsPublished: true,
			CreatedAt:   now,
		}); err != nil {
			return fmt.Errorf("creating category %q: %w", slug, err)
		}
		created++
	}

	locations, err := queries.CountLocations(ctx)
	if err != nil {
		return fmt.Errorf("counting locations: %w", err)
	}
	locationsCreated := 0
	if locations == 0 {
		for _, name := range DefaultLocations {
			if _, err := queries.CreateLocation(ctx, CreateLocationParams{
				Name:        name,
				IsPublished: true,
				CreatedAt:   now,
			}); err != nil {
				return fmt.Errorf("creating location %q: %w", name, err)
			}
			locationsCreated++
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed: %w", err)
	}

	slog.Info("seed complete", "categories_created", created, "locations_created", locationsCreated)
	return nil
}
