// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package listing

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func docFrom(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	return doc
}

func TestLastPage(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		maxPages int
		want     int
	}{
		{
			"pager label",
			`<nav><a href="?page=41">Last page 42</a></nav>`,
			60, 42,
		},
		{
			"pager label case-insensitive",
			`<span>last page 7</span>`,
			60, 7,
		},
		{
			"fallback to page links",
			`<a href="/en/research/publications?page=3">3</a>
			 <a href="/en/research/publications?page=11">11</a>
			 <a href="/en/research/publications?page=5">5</a>`,
			60, 11,
		},
		{
			"no signal defaults to one",
			`<div>No pager here</div>`,
			60, 1,
		},
		{
			"label clamped to cap",
			`<span>Last page 9999</span>`,
			60, 60,
		},
		{
			"links clamped to cap",
			`<a href="/en/research/publications?page=500">500</a>`,
			80, 80,
		},
		{
			"unparseable page param ignored",
			`<a href="/en/research/publications?page=abc">?</a>`,
			60, 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LastPage(docFrom(t, tt.html), tt.maxPages)
			if got != tt.want {
				t.Errorf("LastPage() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLastPageLabelWinsOverLinks(t *testing.T) {
	doc := docFrom(t, `<span>Last page 4</span>
		<a href="/en/research/publications?page=12">12</a>`)
	if got := LastPage(doc, 60); got != 4 {
		t.Errorf("LastPage() = %d, want label value 4", got)
	}
}
