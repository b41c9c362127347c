// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listURL = "https://example.org/en/research/publications"

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err, "parsing fixture")
	return doc
}

// cardHTML renders one publication card in the shape the card strategy
// expects.
func cardHTML(title, date, venue, doi string) string {
	abstract := strings.Repeat("An abstract sentence about the method. ", 5) // ~195 chars
	return fmt.Sprintf(`<article>
		<h3><a href="#">%s</a></h3>
		<a href="/members/a-researcher">Ada Lovelace</a>
		<a href="/members/b-researcher">Charles Babbage</a>
		<span>%s %s (published)</span>
		<a href="%s">DOI</a>
		<p>%s</p>
	</article>`, title, date, venue, doi, abstract)
}

func TestCardStrategyExtraction(t *testing.T) {
	doc := parseDoc(t, cardHTML(
		"Quantum Annealing for Protein Folding",
		"2024-03-15", "Nature Methods", "https://doi.org/10.1000/xyz"))

	records := cardStrategy{}.Extract(doc, listURL, NewScorer())
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "Quantum Annealing for Protein Folding", r.Title)
	assert.Equal(t, "2024-03-15", r.Date)
	assert.Equal(t, "2024", r.Year)
	assert.Equal(t, "published", r.Type)
	assert.Equal(t, "https://doi.org/10.1000/xyz", r.DOI)
	assert.Equal(t, "en", r.Language)
	assert.Equal(t, listURL, r.URL)
	assert.Equal(t, "en/research/publications", r.Slug)
	assert.Contains(t, r.Authors, "Ada Lovelace")
	assert.Contains(t, r.Authors, "Charles Babbage")
	assert.GreaterOrEqual(t, len(r.Abstract), 140)
	assert.Positive(t, r.RawTextLength)
	assert.GreaterOrEqual(t, r.RelevanceScore, 2) // quantum, protein at least
	assert.Equal(t, r.RelevanceScore, len(strings.Split(r.MatchedKeywords, ", ")))
}

func TestCardStrategySkipsShortContainers(t *testing.T) {
	doc := parseDoc(t, `<article><a href="/en">Menu</a></article>`)
	records := cardStrategy{}.Extract(doc, listURL, NewScorer())
	assert.Empty(t, records)
}

func TestCardStrategyRequiresTitle(t *testing.T) {
	doc := parseDoc(t, `<div class="views-row"><span>`+strings.Repeat("x ", 40)+`</span></div>`)
	records := cardStrategy{}.Extract(doc, listURL, NewScorer())
	assert.Empty(t, records, "container without heading or link yields no record")
}

func TestCardStrategyTitleFallsBackToLink(t *testing.T) {
	doc := parseDoc(t, `<article>
		<a href="/pub/1">A Federated Learning Approach to Rare Disease Screening</a>
		<span>2023-11-02 MICCAI and some more descriptive text to pass length checks</span>
	</article>`)
	records := cardStrategy{}.Extract(doc, listURL, NewScorer())
	require.Len(t, records, 1)
	assert.Equal(t, "A Federated Learning Approach to Rare Disease Screening", records[0].Title)
}

func TestCardStrategyDeduplicatesWithinPage(t *testing.T) {
	// Same (title, date, venue, doi), different abstracts: one record, the
	// first encountered survives.
	card := cardHTML("Duplicate Title", "2024-01-01", "ICML", "https://doi.org/10.1/dup")
	other := strings.Replace(card,
		"An abstract sentence about the method.",
		"A different abstract body entirely here.", 1)
	doc := parseDoc(t, card+other)

	records := cardStrategy{}.Extract(doc, listURL, NewScorer())
	require.Len(t, records, 1)
	assert.Contains(t, records[0].Abstract, "An abstract sentence")
}

func TestCardStrategyDeduplicatesOverlappingSelectors(t *testing.T) {
	// An article that also matches the generic container selector must not
	// produce two cards.
	doc := parseDoc(t, `<div class="view-content">`+
		cardHTML("Sole Entry Title Here", "2024-05-05", "TMLR", "https://doi.org/10.1/x")+
		`</div>`)
	records := cardStrategy{}.Extract(doc, listURL, NewScorer())
	assert.Len(t, records, 1)
}

func TestCardStrategyFrenchLanguage(t *testing.T) {
	frURL := "https://example.org/fr/recherche/publications"
	doc := parseDoc(t, cardHTML("Apprentissage profond en clinique", "2024-02-02", "JMLR", "https://doi.org/10.1/fr"))
	records := cardStrategy{}.Extract(doc, frURL, NewScorer())
	require.Len(t, records, 1)
	assert.Equal(t, "fr", records[0].Language)
}
