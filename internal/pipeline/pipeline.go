// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the crawl end to end: robots gate, pagination
// discovery, per-page extraction, aggregation. Execution is strictly
// sequential, with a polite delay between page fetches.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/pubharvest/internal/aggregate"
	"github.com/pdiddy/pubharvest/internal/extract"
	"github.com/pdiddy/pubharvest/internal/fetch"
	"github.com/pdiddy/pubharvest/internal/listing"
	"github.com/pdiddy/pubharvest/internal/robots"
	"github.com/pdiddy/pubharvest/pkg/types"
)

// Result holds everything a run accumulated.
type Result struct {
	// All is the deduplicated record set across every root and page.
	// Filtered is the subset meeting the relevance threshold.
	All      []types.PublicationRecord
	Filtered []types.PublicationRecord

	// Journal lists every URL skipped for compliance reasons, in traversal
	// order.
	Journal []types.JournalEntry

	StartedAt time.Time
}

// Pipeline wires the crawl stages together.
type Pipeline struct {
	cfg       types.CrawlConfig
	client    *fetch.Client
	extractor *extract.Extractor
	out       io.Writer
}

// New builds a Pipeline. Progress and warnings go to w.
func New(cfg types.CrawlConfig, client *fetch.Client, extractor *extract.Extractor, w io.Writer) *Pipeline {
	return &Pipeline{cfg: cfg, client: client, extractor: extractor, out: w}
}

// Run crawls every configured listing root sequentially. Fetch failures and
// parse mismatches skip the affected URL and never abort the run; the only
// errors returned are configuration-level (an unusable base URL).
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	res := Result{StartedAt: time.Now().UTC()}

	if _, err := url.Parse(p.cfg.BaseURL); err != nil {
		return res, fmt.Errorf("invalid base URL %q: %w", p.cfg.BaseURL, err)
	}

	rules := robots.Load(ctx, p.client, p.cfg.BaseURL)
	fmt.Fprintf(p.out, "loaded %d robots rules from %s\n", len(rules.Rules()), p.cfg.BaseURL)

	var collected []types.PublicationRecord
	for _, path := range p.cfg.ListingPaths {
		rootURL, err := url.JoinPath(p.cfg.BaseURL, path)
		if err != nil {
			fmt.Fprintf(p.out, "warning: skipping malformed listing path %q: %v\n", path, err)
			continue
		}
		collected = append(collected, p.crawlRoot(ctx, rootURL, rules, &res)...)
	}

	res.All = aggregate.Dedup(collected)
	res.Filtered = aggregate.Filter(res.All, p.cfg.MinHits)
	fmt.Fprintf(p.out, "aggregated %d records (%d relevant, threshold %d)\n",
		len(res.All), len(res.Filtered), p.cfg.MinHits)
	return res, nil
}

// crawlRoot fetches page 1 of one listing root, discovers the page count,
// and walks the remaining pages.
func (p *Pipeline) crawlRoot(ctx context.Context, rootURL string, rules *robots.RuleSet, res *Result) []types.PublicationRecord {
	doc, ok := p.fetchPage(ctx, rootURL, rules, res)
	if !ok {
		return nil
	}

	lastPage := listing.LastPage(doc, p.cfg.MaxPages)
	fmt.Fprintf(p.out, "%s: %d page(s)\n", rootURL, lastPage)

	records := p.extractPage(doc, rootURL)

	// Page 1 has no query parameter; page N is ?page=N-1.
	for page := 1; page < lastPage; page++ {
		p.client.PoliteDelay()
		pageURL := fmt.Sprintf("%s?page=%d", rootURL, page)
		doc, ok := p.fetchPage(ctx, pageURL, rules, res)
		if !ok {
			continue
		}
		records = append(records, p.extractPage(doc, pageURL)...)
	}
	return records
}

// fetchPage applies the robots gate, fetches one URL, and parses the body.
// Any failure is reported and yields (nil, false): the caller skips the page.
func (p *Pipeline) fetchPage(ctx context.Context, pageURL string, rules *robots.RuleSet, res *Result) (*goquery.Document, bool) {
	if allowed, rule := rules.Allowed(pageURL); !allowed {
		res.Journal = append(res.Journal, types.JournalEntry{
			URL:          pageURL,
			Reason:       "robots.txt disallow",
			MatchedRule:  rule,
			CheckedAtUTC: time.Now().UTC().Format(time.RFC3339),
		})
		fmt.Fprintf(p.out, "skipping %s (disallowed by %s)\n", pageURL, rule)
		return nil, false
	}

	resp, err := p.client.Get(ctx, pageURL)
	if err != nil {
		fmt.Fprintf(p.out, "warning: skipping %s: %v\n", pageURL, err)
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(p.out, "warning: skipping %s: HTTP %d\n", pageURL, resp.StatusCode)
		return nil, false
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		fmt.Fprintf(p.out, "warning: unparseable page %s: %v\n", pageURL, err)
		return nil, false
	}
	return doc, true
}

func (p *Pipeline) extractPage(doc *goquery.Document, pageURL string) []types.PublicationRecord {
	records, strategy := p.extractor.ExtractPage(doc, pageURL)
	fmt.Fprintf(p.out, "%s: %d record(s) via %s\n", pageURL, len(records), strategy)
	return records
}
