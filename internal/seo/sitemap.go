// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo builds the crawler-facing documents of the blog: the XML
// sitemap and robots.txt.
package seo

import (
	"encoding/xml"
	"strconv"
	"strings"
	"time"
)

// XMLNamespace is the sitemap XML namespace.
const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// MaxURLs is the protocol limit of entries in one sitemap file.
const MaxURLs = 50000

// ChangeFreq represents the change frequency of a URL.
type ChangeFreq string

// Change frequencies used by the blog.
const (
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
)

// SitemapURL represents a single URL entry in the sitemap.
type SitemapURL struct {
	Loc        string     `xml:"loc"`
	LastMod    string     `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq `xml:"changefreq,omitempty"`
	Priority   string     `xml:"priority,omitempty"`
}

// Sitemap represents the complete sitemap document.
type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapPost is a publicly visible post.
type SitemapPost struct {
	ID      int64
	PubDate time.Time
}

// SitemapBuilder collects sitemap entries relative to a site URL.
type SitemapBuilder struct {
	siteURL string
	urls    []SitemapURL
}

// NewSitemapBuilder creates a new sitemap builder. A trailing slash on
// siteURL is ignored.
func NewSitemapBuilder(siteURL string) *SitemapBuilder {
	return &SitemapBuilder{
		siteURL: strings.TrimSuffix(siteURL, "/"),
		urls:    make([]SitemapURL, 0),
	}
}

// Len returns the number of collected entries.
func (b *SitemapBuilder) Len() int { return len(b.urls) }

// AddHomepage adds the index feed.
func (b *SitemapBuilder) AddHomepage() {
	b.add(SitemapURL{
		Loc:        b.siteURL + "/",
		ChangeFreq: ChangeFreqDaily,
		Priority:   "1.0",
	})
}

// AddPage adds a static page such as /pages/about.
func (b *SitemapBuilder) AddPage(path string) {
	b.add(SitemapURL{
		Loc:        b.siteURL + path,
		ChangeFreq: ChangeFreqMonthly,
		Priority:   "0.3",
	})
}

// AddCategory adds a category feed.
func (b *SitemapBuilder) AddCategory(slug string) {
	b.add(SitemapURL{
		Loc:        b.siteURL + "/category/" + slug,
		ChangeFreq: ChangeFreqDaily,
		Priority:   "0.6",
	})
}

// AddPost adds a post detail page. The publication date is the last
// modification date.
func (b *SitemapBuilder) AddPost(p SitemapPost) {
	u := SitemapURL{
		Loc:        b.siteURL + "/posts/" + strconv.FormatInt(p.ID, 10),
		ChangeFreq: ChangeFreqWeekly,
		Priority:   "0.8",
	}
	if !p.PubDate.IsZero() {
		u.LastMod = p.PubDate.UTC().Format(time.RFC3339)
	}
	b.add(u)
}

// add drops entries beyond MaxURLs.
func (b *SitemapBuilder) add(u SitemapURL) {
	if len(b.urls) >= MaxURLs {
		return
	}
	b.urls = append(b.urls, u)
}

// Build generates the sitemap XML.
func (b *SitemapBuilder) Build() ([]byte, error) {
	sitemap := Sitemap{
		XMLNS: XMLNamespace,
		URLs:  b.urls,
	}

	output := []byte(xml.Header)
	xmlBytes, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(output, xmlBytes...), nil
}
