// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"path/filepath"
	"time"
)

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with every request.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// CrawlConfig holds the settings for one crawl run. All fields have working
// defaults; see DefaultCrawlConfig.
type CrawlConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the origin against which listing paths and robots.txt
	// resolve.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// ListingPaths are the root paths to crawl, one per locale.
	ListingPaths []string `json:"listing_paths" yaml:"listing_paths"`

	// OutputDir is where artifacts land. OutputXLSX overrides the default
	// spreadsheet path inside it.
	OutputDir  string `json:"output_dir" yaml:"output_dir"`
	OutputXLSX string `json:"output_xlsx" yaml:"output_xlsx"`

	// MaxPages is the hard cap on pagination traversal per listing root. It
	// bounds the crawl even when the origin reports an enormous page count.
	MaxPages int `json:"max_pages" yaml:"max_pages"`

	// MinHits is the relevance threshold for the "filtered" sheet. Records
	// with a lower score still appear in the "all" sheet.
	MinHits int `json:"min_hits" yaml:"min_hits"`

	// ArchiveDB is the path of the optional SQLite run archive. Empty
	// disables archiving.
	ArchiveDB string `json:"archive_db,omitempty" yaml:"archive_db,omitempty"`

	// KeywordsFile is an optional YAML file of extra keyword phrases merged
	// into the built-in relevance list.
	KeywordsFile string `json:"keywords_file,omitempty" yaml:"keywords_file,omitempty"`
}

// DefaultCrawlConfig returns the configuration used when nothing is set.
func DefaultCrawlConfig() CrawlConfig {
	return CrawlConfig{
		HTTPConfig: HTTPConfig{
			Timeout:   30 * time.Second,
			UserAgent: "Mozilla/5.0 (compatible; pubharvest/0.1; +https://github.com/pdiddy/pubharvest)",
		},
		BaseURL:      "https://mila.quebec",
		ListingPaths: []string{"/en/research/publications", "/fr/recherche/publications"},
		OutputDir:    "data",
		MaxPages:     60,
		MinHits:      1,
	}
}

// XLSXPath returns the spreadsheet path, applying the default filename when
// no override is configured.
func (c CrawlConfig) XLSXPath() string {
	if c.OutputXLSX != "" {
		return c.OutputXLSX
	}
	return filepath.Join(c.OutputDir, "publications.xlsx")
}

// JournalPath returns the compliance journal path inside the output directory.
func (c CrawlConfig) JournalPath() string {
	return filepath.Join(c.OutputDir, "ignored_by_robots.csv")
}

// ErrorLogPath returns the diagnostic log path inside the output directory.
func (c CrawlConfig) ErrorLogPath() string {
	return filepath.Join(c.OutputDir, "scrape_error.log")
}
