// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"strconv"
)

// Cache lifetimes for file routes, in seconds.
const (
	StaticMaxAge = 31536000 // 1 year, embedded assets
	MediaMaxAge  = 604800   // 1 week, uploaded images
)

// StaticCache sets a public Cache-Control header with the given max-age.
func StaticCache(maxAge int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age="+strconv.Itoa(maxAge))
			next.ServeHTTP(w, r)
		})
	}
}
