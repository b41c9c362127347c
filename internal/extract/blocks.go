// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/pdiddy/pubharvest/pkg/types"
)

// minBlockText is the chunk length below which a date-anchored block is
// discarded as noise.
const minBlockText = 60

// titleSeparatorPattern splits the text preceding a date into title
// candidates, at bullets, dashes, and double-space runs.
var titleSeparatorPattern = regexp.MustCompile(`[•\-—–]| {2,}`)

// minTitleCandidate is the shortest pre-date segment accepted as a title.
const minTitleCandidate = 8

// blockStrategy is the fallback parser. It ignores markup structure
// entirely: the page's visible text is split into chunks at each publication
// date, the one signal reliably present whatever the template looks like.
// Links are scanned page-wide since chunks have no sub-container boundary.
type blockStrategy struct{}

func (blockStrategy) Name() string { return "blocks" }

func (blockStrategy) Extract(doc *goquery.Document, listURL string, scorer *Scorer) []types.PublicationRecord {
	lang := languageFromPath(pathOf(listURL))
	slug := slugFromURL(listURL)

	// Page-wide link classification, shared by every chunk.
	doi, pdfURL, codeURL := classifyLinks(containerLinks(doc.Selection), listURL)

	var records []types.PublicationRecord
	for _, chunk := range dateAnchoredChunks(doc) {
		btxt := cleanText(strings.Join(chunk, " "))
		if utf8.RuneCountInString(btxt) < minBlockText {
			continue
		}

		date, year := extractDate(btxt)
		title, venue := blockTitleAndVenue(btxt, date)
		if title == "" {
			continue
		}

		r := types.PublicationRecord{
			Title:         title,
			Year:          year,
			Date:          date,
			Venue:         venue,
			Type:          classifyType(btxt),
			Abstract:      truncateRunes(btxt, 600),
			DOI:           doi,
			PDFURL:        pdfURL,
			CodeURL:       codeURL,
			Language:      lang,
			URL:           listURL,
			Slug:          slug,
			RawTextLength: utf8.RuneCountInString(btxt),
		}
		score(&r, scorer)
		records = append(records, r)
	}
	return records
}

// dateAnchoredChunks gathers the page's stripped text strings and starts a
// new chunk at every string containing a date.
func dateAnchoredChunks(doc *goquery.Document) [][]string {
	var texts []string
	for _, root := range doc.Nodes {
		visitText(root, &texts)
	}

	var chunks [][]string
	var cur []string
	for _, s := range texts {
		if datePattern.MatchString(s) && len(cur) > 0 {
			chunks = append(chunks, cur)
			cur = nil
		}
		cur = append(cur, s)
	}
	if len(cur) > 0 {
		chunks = append(chunks, cur)
	}
	return chunks
}

// visitText appends every non-empty trimmed text node under n, skipping
// script and style subtrees.
func visitText(n *html.Node, out *[]string) {
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return
	}
	if n.Type == html.TextNode {
		if s := strings.TrimSpace(n.Data); s != "" {
			*out = append(*out, s)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		visitText(c, out)
	}
}

// blockTitleAndVenue derives the title from the text before the date and the
// venue from the text after it. Without a date the chunk's first 120
// characters stand in for the title.
func blockTitleAndVenue(btxt, date string) (title, venue string) {
	if date == "" {
		return strings.TrimSpace(firstRunes(btxt, 120)), ""
	}

	head, tail, _ := strings.Cut(btxt, date)
	venue = extractVenue(tail)

	parts := titleSeparatorPattern.Split(head, -1)
	var candidates []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); utf8.RuneCountInString(p) >= minTitleCandidate {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) > 0 {
		return candidates[len(candidates)-1], venue
	}
	return strings.TrimSpace(head), venue
}
