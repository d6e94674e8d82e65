// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ErrPathEscapesBase is returned when a joined path leaves its base directory.
var ErrPathEscapesBase = fmt.Errorf("path escapes base directory")

// WithinBase reports an error unless target resolves to base itself or to
// a path underneath it. The trailing separator check keeps /uploads-evil
// from passing for base /uploads.
func WithinBase(base, target string) error {
	absBase, err := filepath.Abs(filepath.Clean(base))
	if err != nil {
		return fmt.Errorf("resolving base path: %w", err)
	}
	absTarget, err := filepath.Abs(filepath.Clean(target))
	if err != nil {
		return fmt.Errorf("resolving target path: %w", err)
	}

	if absTarget != absBase && !strings.HasPrefix(absTarget, absBase+string(filepath.Separator)) {
		return ErrPathEscapesBase
	}
	return nil
}

// SafeJoin joins a relative media path such as "posts/abc.jpg" onto the
// uploads directory and refuses anything that would resolve outside it.
func SafeJoin(base string, rel ...string) (string, error) {
	full := filepath.Join(append([]string{base}, rel...)...)
	if err := WithinBase(base, full); err != nil {
		return "", err
	}
	return full, nil
}
