// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStripTrailingSlash(t *testing.T) {
	tests := []struct {
		method   string
		target   string
		status   int
		location string
	}{
		{http.MethodGet, "/", http.StatusOK, ""},
		{http.MethodGet, "/posts/1", http.StatusOK, ""},
		{http.MethodGet, "/posts/1/", http.StatusMovedPermanently, "/posts/1"},
		{http.MethodGet, "/?page=2", http.StatusOK, ""},
		{http.MethodGet, "/category/travel/?page=2", http.StatusMovedPermanently, "/category/travel?page=2"},
		{http.MethodPost, "/posts/create/", http.StatusPermanentRedirect, "/posts/create"},
		{http.MethodGet, "//evil.example/", http.StatusMovedPermanently, "/evil.example"},
	}

	handler := StripTrailingSlash(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			if got := rec.Header().Get("Location"); got != tt.location {
				t.Errorf("Location = %q, want %q", got, tt.location)
			}
		})
	}
}
