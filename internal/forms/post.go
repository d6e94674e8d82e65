// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package forms

import (
	"net/url"
	"time"

	"github.com/olegiv/blogicum/internal/service"
	"github.com/olegiv/blogicum/internal/store"
	"github.com/olegiv/blogicum/internal/uikit"
	"github.com/olegiv/blogicum/internal/util"
)

// Accepted pub_date layouts, datetime-local first.
var dateLayouts = []string{
	uikit.DateTimeInputLayout,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
}

// PostForm is the create and edit form of a post. The author is never a
// form field.
type PostForm struct {
	Title       string `form:"title" validate:"required,max=256"`
	Text        string `form:"text" validate:"required"`
	PubDate     string `form:"pub_date" validate:"required"`
	Location    string `form:"location"`
	Category    string `form:"category"`
	IsPublished bool   `form:"is_published"`
	ClearImage  bool   `form:"image-clear"`
	// Image is the currently attached image, shown on the edit page.
	Image  string      `form:"-"`
	Errors FieldErrors `form:"-"`

	pubDate time.Time
}

// NewPostForm returns an empty form for a new post, due now.
func NewPostForm() PostForm {
	return PostForm{
		PubDate:     time.Now().Format(uikit.DateTimeInputLayout),
		IsPublished: true,
		Errors:      FieldErrors{},
	}
}

// PostFormFrom prefills the form from a stored post.
func PostFormFrom(p store.Post) PostForm {
	return PostForm{
		Title:       p.Title,
		Text:        p.Text,
		PubDate:     p.PubDate.Local().Format(uikit.DateTimeInputLayout),
		Location:    util.FormatNullInt64(p.LocationID),
		Category:    util.FormatNullInt64(p.CategoryID),
		IsPublished: p.IsPublished,
		Image:       p.Image,
		Errors:      FieldErrors{},
	}
}

// ParsePostForm binds submitted values.
func ParsePostForm(values url.Values) PostForm {
	return PostForm{
		Title:       field(values, "title"),
		Text:        field(values, "text"),
		PubDate:     field(values, "pub_date"),
		Location:    field(values, "location"),
		Category:    field(values, "category"),
		IsPublished: checkbox(values, "is_published"),
		ClearImage:  checkbox(values, "image-clear"),
		Errors:      FieldErrors{},
	}
}

// Validate checks the form and parses pub_date in loc.
func (f *PostForm) Validate(loc *time.Location) bool {
	f.Errors = check(f)

	if f.PubDate != "" && !f.Errors.Has("pub_date") {
		t, ok := parseDateTime(f.PubDate, loc)
		if !ok {
			f.Errors.Add("pub_date", "Введите правильную дату и время.")
		}
		f.pubDate = t
	}

	return !f.Errors.Any()
}

// Input converts a validated form into a gate input with the given image.
func (f PostForm) Input(image string) service.PostInput {
	return service.PostInput{
		Title:       f.Title,
		Text:        f.Text,
		PubDate:     f.pubDate,
		IsPublished: f.IsPublished,
		LocationID:  util.ParseNullInt64Positive(f.Location),
		CategoryID:  util.ParseNullInt64Positive(f.Category),
		Image:       image,
	}
}

func parseDateTime(s string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
