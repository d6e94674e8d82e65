// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"testing"
)

func TestEventCategoriesUnique(t *testing.T) {
	categories := []string{
		EventCategoryAuth,
		EventCategoryPost,
		EventCategoryComment,
		EventCategoryProfile,
		EventCategorySystem,
	}

	seen := make(map[string]bool)
	for _, cat := range categories {
		if cat == "" {
			t.Error("empty category")
		}
		if seen[cat] {
			t.Errorf("duplicate category: %q", cat)
		}
		seen[cat] = true
	}
}

func TestEventLevelsUnique(t *testing.T) {
	levels := []string{EventLevelInfo, EventLevelWarning, EventLevelError}

	seen := make(map[string]bool)
	for _, l := range levels {
		if seen[l] {
			t.Errorf("duplicate level: %q", l)
		}
		seen[l] = true
	}
}
