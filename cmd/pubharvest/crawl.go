// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pubharvest/internal/pipeline"
	"github.com/pdiddy/pubharvest/pkg/types"
)

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Crawl the publication listings and write the artifacts",
	Long: `Crawl walks every configured listing root page by page, extracts
publication records, and writes the spreadsheet and compliance journal.

The command always exits with status 0. When the run fails, the artifacts
are still written (header-only) and the failure is recorded in the
diagnostic log inside the output directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := crawlConfig(cmd)
		pipeline.RunSafe(context.Background(), cfg, os.Stderr)
		return nil
	},
}

func init() {
	def := types.DefaultCrawlConfig()

	crawlCmd.Flags().String("base-url", def.BaseURL, "origin against which listing paths resolve")
	crawlCmd.Flags().String("paths", strings.Join(def.ListingPaths, ","), "comma-separated listing root paths")
	crawlCmd.Flags().String("out-dir", def.OutputDir, "directory where artifacts land")
	crawlCmd.Flags().String("xlsx", "", "spreadsheet path (default <out-dir>/publications.xlsx)")
	crawlCmd.Flags().Int("max-pages", def.MaxPages, "hard cap on pages per listing root")
	crawlCmd.Flags().Int("min-hits", def.MinHits, "relevance threshold for the filtered sheet")
	crawlCmd.Flags().Duration("timeout", def.Timeout, "per-request HTTP timeout")
	crawlCmd.Flags().String("user-agent", def.UserAgent, "User-Agent header")
	crawlCmd.Flags().String("archive-db", "", "SQLite run archive path (empty disables archiving)")
	crawlCmd.Flags().String("keywords-file", "", "YAML file of extra keyword phrases")

	rootCmd.AddCommand(crawlCmd)
}

// crawlConfig resolves the effective configuration: defaults, then config
// file and PUBHARVEST_* environment variables via viper, then flags.
func crawlConfig(cmd *cobra.Command) types.CrawlConfig {
	bindings := map[string]string{
		"base_url":      "base-url",
		"listing_paths": "paths",
		"output_dir":    "out-dir",
		"output_xlsx":   "xlsx",
		"max_pages":     "max-pages",
		"min_hits":      "min-hits",
		"timeout":       "timeout",
		"user_agent":    "user-agent",
		"archive_db":    "archive-db",
		"keywords_file": "keywords-file",
	}
	for key, flag := range bindings {
		viper.BindPFlag(key, cmd.Flags().Lookup(flag))
	}

	cfg := types.DefaultCrawlConfig()
	cfg.BaseURL = viper.GetString("base_url")
	cfg.ListingPaths = splitPaths(viper.GetString("listing_paths"))
	cfg.OutputDir = viper.GetString("output_dir")
	cfg.OutputXLSX = viper.GetString("output_xlsx")
	cfg.MaxPages = viper.GetInt("max_pages")
	cfg.MinHits = viper.GetInt("min_hits")
	if d := viper.GetDuration("timeout"); d > 0 {
		cfg.Timeout = d
	}
	if ua := viper.GetString("user_agent"); ua != "" {
		cfg.UserAgent = ua
	}
	cfg.ArchiveDB = viper.GetString("archive_db")
	cfg.KeywordsFile = viper.GetString("keywords_file")
	return cfg
}

// splitPaths parses the comma-separated listing paths, dropping empties.
func splitPaths(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
