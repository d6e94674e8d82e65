// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides general-purpose helpers: slug generation with
// transliteration, upload path safety and nullable SQL values.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxSlugLength matches the width of the categories.slug column in forms.
const MaxSlugLength = 64

var (
	// slugRegex matches everything that is not a slug character
	slugRegex = regexp.MustCompile(`[^a-z0-9_-]+`)
	// multipleHyphens matches multiple consecutive hyphens
	multipleHyphens = regexp.MustCompile(`-{2,}`)
	// validSlug matches latin letters, digits, hyphens and underscores
	validSlug = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// Slugify converts a string to a URL-friendly slug.
// Non-latin scripts are transliterated ("Путешествия" becomes
// "puteshestviia"), accents are stripped and anything that is not a letter,
// digit, hyphen or underscore collapses into a single hyphen.
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)

	result = unidecode.Unidecode(result)
	result = strings.ToLower(result)
	result = strings.ReplaceAll(result, " ", "-")
	result = slugRegex.ReplaceAllString(result, "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")

	if len(result) > MaxSlugLength {
		result = strings.TrimRight(result[:MaxSlugLength], "-")
	}

	return result
}

// IsValidSlug reports whether s consists only of latin letters, digits,
// hyphens and underscores.
func IsValidSlug(s string) bool {
	return validSlug.MatchString(s)
}
