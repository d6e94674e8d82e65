// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"net/http"

	"filippo.io/csrf/gorilla"

	"github.com/olegiv/blogicum/internal/model"
)

// CSRFConfig holds configuration for CSRF protection. filippo.io/csrf
// checks Fetch metadata and Origin headers, so forms carry no token.
type CSRFConfig struct {
	// AuthKey is the 32-byte session secret.
	AuthKey []byte

	// ErrorHandler answers rejected requests, typically with the 403 page.
	ErrorHandler http.Handler

	// TrustedOrigins are host[:port] values allowed to post cross-origin.
	TrustedOrigins []string
}

// DefaultCSRFConfig returns a CSRFConfig with sensible defaults.
func DefaultCSRFConfig(authKey []byte, isDev bool) CSRFConfig {
	cfg := CSRFConfig{
		AuthKey: authKey,
	}

	// The csrf package expects host-only values, not full URLs.
	if isDev {
		cfg.TrustedOrigins = []string{
			"localhost:8080",
			"127.0.0.1:8080",
		}
	}

	return cfg
}

// CSRF returns a middleware that rejects cross-origin unsafe requests.
func CSRF(cfg CSRFConfig) func(http.Handler) http.Handler {
	onFailure := cfg.ErrorHandler
	if onFailure == nil {
		onFailure = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Forbidden - CSRF validation failed", http.StatusForbidden)
		})
	}

	opts := []csrf.Option{csrf.ErrorHandler(logCSRFFailure(onFailure))}
	if len(cfg.TrustedOrigins) > 0 {
		opts = append(opts, csrf.TrustedOrigins(cfg.TrustedOrigins))
	}

	return csrf.Protect(cfg.AuthKey, opts...)
}

// logCSRFFailure records the reason before handing over to next.
func logCSRFFailure(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reason := "unknown"
		if err := csrf.FailureReason(r); err != nil {
			reason = err.Error()
		}
		slog.Warn("CSRF validation failed",
			"category", model.EventCategoryAuth,
			"reason", reason,
			"method", r.Method,
			"path", r.URL.Path,
			"origin", r.Header.Get("Origin"),
			"sec_fetch_site", r.Header.Get("Sec-Fetch-Site"),
			"user_id", GetUserID(r),
		)
		next.ServeHTTP(w, r)
	})
}
