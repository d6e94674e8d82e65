// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a slog handler that also persists WARN and ERROR
// records into the events table, so refused mutations and failed logins
// leave an audit trail.
package logging

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/olegiv/blogicum/internal/model"
	"github.com/olegiv/blogicum/internal/store"
)

// EventLogHandler is a slog.Handler that wraps another handler and also writes
// records at or above its level to the events table.
type EventLogHandler struct {
	inner   slog.Handler
	queries *store.Queries
	level   slog.Level // Minimum level to forward to the events table (default: WARN)
	attrs   []slog.Attr
}

// NewEventLogHandler creates a new EventLogHandler that wraps the given handler.
func NewEventLogHandler(inner slog.Handler, db *sql.DB) *EventLogHandler {
	return NewEventLogHandlerWithLevel(inner, db, slog.LevelWarn)
}

// NewEventLogHandlerWithLevel creates a new EventLogHandler with a custom minimum level.
func NewEventLogHandlerWithLevel(inner slog.Handler, db *sql.DB, level slog.Level) *EventLogHandler {
	return &EventLogHandler{
		inner:   inner,
		queries: store.New(db),
		level:   level,
	}
}

// Enabled implements slog.Handler.
func (h *EventLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level) || level >= h.level
}

// Handle implements slog.Handler.
func (h *EventLogHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.inner.Enabled(ctx, r.Level) {
		if err := h.inner.Handle(ctx, r); err != nil {
			return err
		}
	}

	if r.Level >= h.level {
		h.writeEvent(r)
	}

	return nil
}

// WithAttrs implements slog.Handler.
func (h *EventLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &EventLogHandler{
		inner:   h.inner.WithAttrs(attrs),
		queries: h.queries,
		level:   h.level,
		attrs:   merged,
	}
}

// WithGroup implements slog.Handler. Group names are not reflected in the
// stored metadata.
func (h *EventLogHandler) WithGroup(name string) slog.Handler {
	return &EventLogHandler{
		inner:   h.inner.WithGroup(name),
		queries: h.queries,
		level:   h.level,
		attrs:   h.attrs,
	}
}

// eventRecord is what one log record contributes to the events table.
type eventRecord struct {
	category string
	userID   sql.NullInt64
	metadata map[string]any
}

func (h *EventLogHandler) collect(r slog.Record) eventRecord {
	ev := eventRecord{metadata: map[string]any{}}

	visit := func(a slog.Attr) bool {
		v := a.Value.Resolve()
		switch a.Key {
		case "category":
			ev.category = v.String()
		case "user_id":
			if id, ok := int64Value(v); ok && id > 0 {
				ev.userID = sql.NullInt64{Int64: id, Valid: true}
			}
			ev.metadata[a.Key] = v.Any()
		default:
			ev.metadata[a.Key] = jsonValue(v)
		}
		return true
	}

	for _, a := range h.attrs {
		visit(a)
	}
	r.Attrs(visit)

	if ev.category == "" {
		ev.category = inferCategory(r.Message)
	}
	return ev
}

// writeEvent stores the record. A background context keeps the write alive
// when the request that logged it has already been cancelled. A user id
// that no longer references a user is kept in metadata only. Other
// failures are dropped because logging them would recurse.
func (h *EventLogHandler) writeEvent(r slog.Record) {
	ev := h.collect(r)

	metadata, err := json.Marshal(ev.metadata)
	if err != nil {
		metadata = []byte("{}")
	}

	params := store.CreateEventParams{
		Level:     eventLevel(r.Level),
		Category:  ev.category,
		Message:   r.Message,
		UserID:    ev.userID,
		Metadata:  string(metadata),
		CreatedAt: store.Timestamp(r.Time),
	}

	ctx := context.Background()
	if _, err := h.queries.CreateEvent(ctx, params); err != nil && params.UserID.Valid {
		params.UserID = sql.NullInt64{}
		_, _ = h.queries.CreateEvent(ctx, params)
	}
}

func eventLevel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return model.EventLevelError
	case level >= slog.LevelWarn:
		return model.EventLevelWarning
	default:
		return model.EventLevelInfo
	}
}

// inferCategory guesses a category from the message when none was logged.
func inferCategory(message string) string {
	msg := strings.ToLower(message)
	switch {
	case strings.Contains(msg, "auth") || strings.Contains(msg, "login") ||
		strings.Contains(msg, "logout") || strings.Contains(msg, "csrf"):
		return model.EventCategoryAuth
	case strings.Contains(msg, "comment"):
		return model.EventCategoryComment
	case strings.Contains(msg, "post"):
		return model.EventCategoryPost
	case strings.Contains(msg, "profile"):
		return model.EventCategoryProfile
	default:
		return model.EventCategorySystem
	}
}

func int64Value(v slog.Value) (int64, bool) {
	switch v.Kind() {
	case slog.KindInt64:
		return v.Int64(), true
	case slog.KindUint64:
		return int64(v.Uint64()), true
	default:
		return 0, false
	}
}

// jsonValue keeps numbers and booleans typed and stringifies the rest.
func jsonValue(v slog.Value) any {
	switch v.Kind() {
	case slog.KindInt64, slog.KindUint64, slog.KindFloat64, slog.KindBool:
		return v.Any()
	default:
		return v.String()
	}
}
