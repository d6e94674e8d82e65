// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package uikit provides template helpers and the pagination adapter shared
// by every list view.
package uikit

import (
	"fmt"
	"html/template"
	"strings"
	"time"
)

// MonthsRu contains Russian month names in genitive case.
var MonthsRu = []string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

// DateTimeInputLayout is the value layout of <input type="datetime-local">.
const DateTimeInputLayout = "2006-01-02T15:04"

// TemplateFuncs returns a template.FuncMap with pure helper functions.
//
// Callers can merge project-specific functions on top:
//
//	funcs := uikit.TemplateFuncs()
//	funcs["markdown"] = renderMarkdown
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"lower":         strings.ToLower,
		"truncateWords": TruncateWords,
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
		"formatDate":     FormatDate,
		"formatDateTime": FormatDateTime,
		"dateInput": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Local().Format(DateTimeInputLayout)
		},
		"dict": func(values ...any) map[string]any {
			if len(values)%2 != 0 {
				return nil
			}
			dict := make(map[string]any, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					continue
				}
				dict[key] = values[i+1]
			}
			return dict
		},
	}
}

// TruncateWords keeps the first n words of s and appends an ellipsis when
// anything was cut.
func TruncateWords(s string, n int) string {
	words := strings.Fields(s)
	if n <= 0 {
		return ""
	}
	if len(words) <= n {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:n], " ") + " …"
}

// FormatDate formats a date as "17 мая 2031".
func FormatDate(t time.Time) string {
	t = t.Local()
	return fmt.Sprintf("%d %s %d", t.Day(), MonthsRu[t.Month()-1], t.Year())
}

// FormatDateTime formats a timestamp as "17 мая 2031, 09:30".
func FormatDateTime(t time.Time) string {
	t = t.Local()
	return fmt.Sprintf("%s, %02d:%02d", FormatDate(t), t.Hour(), t.Minute())
}
