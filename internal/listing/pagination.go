// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package listing discovers how many pages a publication listing spans.
package listing

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// lastPagePattern matches the pager's localized "Last page N" label.
var lastPagePattern = regexp.MustCompile(`(?i)Last page\s+(\d{1,4})`)

// LastPage returns the number of pages the listing reports, clamped to
// maxPages. The pager label is the primary signal; when absent the page-index
// links are scanned for the highest ?page= value. With neither signal the
// listing is treated as a single page. The clamp guarantees termination even
// when the origin misreports an enormous page count.
func LastPage(doc *goquery.Document, maxPages int) int {
	last := 1
	if n, ok := lastPageFromLabel(doc); ok {
		last = n
	} else if n, ok := lastPageFromLinks(doc); ok {
		last = n
	}

	if maxPages > 0 && last > maxPages {
		last = maxPages
	}
	if last < 1 {
		last = 1
	}
	return last
}

func lastPageFromLabel(doc *goquery.Document) (int, bool) {
	m := lastPagePattern.FindStringSubmatch(doc.Text())
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

func lastPageFromLinks(doc *goquery.Document) (int, bool) {
	max, found := 0, false
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if !strings.Contains(href, "publications?page=") {
			return
		}
		u, err := url.Parse(href)
		if err != nil {
			return
		}
		n, err := strconv.Atoi(u.Query().Get("page"))
		if err != nil {
			return
		}
		found = true
		if n > max {
			max = n
		}
	})
	return max, found
}
