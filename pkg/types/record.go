// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data structures shared across pipeline stages.
package types

// PublicationRecord holds one candidate publication extracted from a listing
// page. Extraction is heuristic and best-effort: every field except Title may
// be empty.
type PublicationRecord struct {
	// Title is the publication title. Records without a title are discarded
	// by the extractor, so an emitted record always has one.
	Title string `json:"title" yaml:"title"`

	// Authors is a comma-joined list of short name-like strings found near
	// the title, deduplicated in first-seen order.
	Authors string `json:"authors" yaml:"authors"`

	// Year is a 4-digit year string, derived from Date when present and
	// otherwise scanned from the surrounding text. Empty when unknown.
	Year string `json:"year" yaml:"year"`

	// Date is an ISO-like YYYY-MM-DD string, or empty.
	Date string `json:"date" yaml:"date"`

	// Venue is a best-effort free-text venue, taken from the text run that
	// follows the date. The source markup has no structured venue field.
	Venue string `json:"venue" yaml:"venue"`

	// Type is "preprint", "published", or empty.
	Type string `json:"type" yaml:"type"`

	// Abstract is a length-bounded excerpt of the record's descriptive text.
	Abstract string `json:"abstract" yaml:"abstract"`

	// DOI, PDFURL and CodeURL are classified links; first match wins per
	// category. Empty when no matching link was found.
	DOI     string `json:"doi" yaml:"doi"`
	PDFURL  string `json:"pdf_url" yaml:"pdf_url"`
	CodeURL string `json:"code_url" yaml:"code_url"`

	// Language is "en", "fr", or empty, derived from the listing path prefix.
	Language string `json:"language" yaml:"language"`

	// URL and Slug identify the listing page the record came from. The source
	// site exposes no stable per-record URL in list mode.
	URL  string `json:"url" yaml:"url"`
	Slug string `json:"slug" yaml:"slug"`

	// RawTextLength is the character count of the source block, kept for
	// diagnostics.
	RawTextLength int `json:"raw_text_length" yaml:"raw_text_length"`

	// RelevanceScore counts the distinct keyword phrases matched in
	// title+abstract+venue. MatchedKeywords is the comma-joined sorted set of
	// those phrases, so the score always equals its length.
	RelevanceScore  int    `json:"relevance_score" yaml:"relevance_score"`
	MatchedKeywords string `json:"matched_keywords" yaml:"matched_keywords"`
}

// RecordKey is the identity key for deduplication. Two records with equal
// keys are the same publication; only the first survives.
type RecordKey struct {
	Title string
	Date  string
	Venue string
	DOI   string
}

// Key returns the record's deduplication key.
func (r PublicationRecord) Key() RecordKey {
	return RecordKey{Title: r.Title, Date: r.Date, Venue: r.Venue, DOI: r.DOI}
}

// JournalEntry records one URL skipped because a robots disallow rule
// matched it. Entries accumulate during the crawl and are flushed once at
// the end; the journal file is written even when empty.
type JournalEntry struct {
	URL          string
	Reason       string
	MatchedRule  string
	CheckedAtUTC string
}
