// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/pdiddy/pubharvest/pkg/types"
)

// containerSelector lists the generic container shapes that tend to wrap one
// listing entry on Drupal-style publication pages.
const containerSelector = "div.views-row, div.node--type-publication, div.view-content > div"

// minCardText is the flattened-text length below which a container is
// treated as menu or decoration noise and skipped.
const minCardText = 40

// cardStrategy extracts one record per structural container. It is the
// precise strategy: when the markup matches expectations each card carries
// its own title, authors, links and abstract.
type cardStrategy struct{}

func (cardStrategy) Name() string { return "cards" }

func (cardStrategy) Extract(doc *goquery.Document, listURL string, scorer *Scorer) []types.PublicationRecord {
	lang := languageFromPath(pathOf(listURL))
	slug := slugFromURL(listURL)

	var records []types.PublicationRecord
	seen := make(map[types.RecordKey]bool)

	for _, box := range candidateContainers(doc) {
		txt := cleanText(box.Text())
		if utf8.RuneCountInString(txt) < minCardText {
			continue
		}

		title := cardTitle(box)
		if title == "" {
			continue
		}

		doi, pdfURL, codeURL := classifyLinks(containerLinks(box), listURL)
		date, year := extractDate(txt)

		venue := ""
		if date != "" {
			if _, after, found := strings.Cut(txt, date); found {
				venue = extractVenue(after)
			}
		}

		r := types.PublicationRecord{
			Title:         title,
			Authors:       cardAuthors(box),
			Year:          year,
			Date:          date,
			Venue:         venue,
			Type:          classifyType(txt),
			Abstract:      cardAbstract(box, txt),
			DOI:           doi,
			PDFURL:        pdfURL,
			CodeURL:       codeURL,
			Language:      lang,
			URL:           listURL,
			Slug:          slug,
			RawTextLength: utf8.RuneCountInString(txt),
		}

		if seen[r.Key()] {
			continue
		}
		seen[r.Key()] = true

		score(&r, scorer)
		records = append(records, r)
	}
	return records
}

// candidateContainers returns article elements plus conventional listing
// containers, deduplicated by node so overlapping selectors do not produce
// the same card twice.
func candidateContainers(doc *goquery.Document) []*goquery.Selection {
	var out []*goquery.Selection
	seen := make(map[*html.Node]bool)

	collect := func(_ int, s *goquery.Selection) {
		node := s.Get(0)
		if seen[node] {
			return
		}
		seen[node] = true
		out = append(out, s)
	}

	doc.Find("article").Each(collect)
	doc.Find(containerSelector).Each(collect)
	return out
}

// cardTitle prefers the first heading in the container; without one it falls
// back to the first hyperlink's text.
func cardTitle(box *goquery.Selection) string {
	if h := box.Find("h1, h2, h3").First(); h.Length() > 0 {
		if title := cleanText(h.Text()); title != "" {
			return title
		}
	}
	return cleanText(box.Find("a").First().Text())
}

// cardAuthors collects link texts that look like short personal names,
// deduplicated preserving first-seen order, joined with commas.
func cardAuthors(box *goquery.Selection) string {
	var names []string
	seen := make(map[string]bool)
	box.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		t := cleanText(a.Text())
		if t == "" || !looksLikeName(t) || seen[t] {
			return
		}
		seen[t] = true
		names = append(names, t)
	})
	return strings.Join(names, ", ")
}

// cardAbstract prefers the first paragraph of 140–900 characters; otherwise
// the container's whole text truncated to 600 characters.
func cardAbstract(box *goquery.Selection, txt string) string {
	abstract := ""
	box.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		pt := cleanText(p.Text())
		if n := utf8.RuneCountInString(pt); n >= 140 && n <= 900 {
			abstract = pt
			return false
		}
		return true
	})
	if abstract == "" {
		abstract = truncateRunes(txt, 600)
	}
	return abstract
}

// containerLinks returns the hrefs of every hyperlink inside the container.
func containerLinks(box *goquery.Selection) []link {
	var links []link
	box.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		if href, ok := a.Attr("href"); ok {
			links = append(links, link{href: href})
		}
	})
	return links
}
