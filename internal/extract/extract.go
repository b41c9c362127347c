// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns a listing page's parsed HTML into publication
// records. Two strategies cooperate: a card-based parser that exploits the
// expected markup structure for precision, and a block-based fallback that
// treats the page as a text stream segmented at date anchors, guaranteeing
// some output when the markup does not match.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/pubharvest/pkg/types"
)

// fallbackThreshold is the minimum card-strategy yield below which the
// result is discarded and the block strategy re-parses the same page. It is
// an empirical heuristic, not a content guarantee.
const fallbackThreshold = 3

// Strategy parses one listing page into records. Implementations must not
// fail: a markup mismatch yields zero records, never an error.
type Strategy interface {
	Name() string
	Extract(doc *goquery.Document, listURL string, scorer *Scorer) []types.PublicationRecord
}

// Extractor dispatches between the card strategy and the block fallback.
type Extractor struct {
	scorer   *Scorer
	primary  Strategy
	fallback Strategy
}

// New builds an Extractor with the standard strategy pair.
func New(scorer *Scorer) *Extractor {
	return &Extractor{
		scorer:   scorer,
		primary:  cardStrategy{},
		fallback: blockStrategy{},
	}
}

// ExtractPage parses one page and reports which strategy produced the
// result. The card strategy runs first; when it yields fewer than
// fallbackThreshold records its output is discarded and the block strategy's
// output is used instead, whatever its size.
func (e *Extractor) ExtractPage(doc *goquery.Document, listURL string) ([]types.PublicationRecord, string) {
	records := e.primary.Extract(doc, listURL, e.scorer)
	if len(records) >= fallbackThreshold {
		return records, e.primary.Name()
	}
	return e.fallback.Extract(doc, listURL, e.scorer), e.fallback.Name()
}

// score fills the relevance fields from the record's searchable text.
func score(r *types.PublicationRecord, scorer *Scorer) {
	matched := scorer.Score(r.Title + " " + r.Abstract + " " + r.Venue)
	r.RelevanceScore = len(matched)
	r.MatchedKeywords = strings.Join(matched, ", ")
}
