// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/pdiddy/pubharvest/internal/archive"
	"github.com/pdiddy/pubharvest/internal/export"
	"github.com/pdiddy/pubharvest/internal/extract"
	"github.com/pdiddy/pubharvest/internal/fetch"
	"github.com/pdiddy/pubharvest/pkg/types"
)

// runPipeline is the function RunSafe guards. Declared as a var so tests can
// substitute a failing implementation.
var runPipeline = runAndExport

// RunSafe is the fail-soft boundary for unattended scheduled execution. It
// runs the whole pipeline and, on any error or panic, writes the diagnostic
// log and falls back to valid-empty artifacts. It never returns an error: a
// broken run must not block a recurring job, and failure is communicated
// only through the diagnostic log.
func RunSafe(ctx context.Context, cfg types.CrawlConfig, w io.Writer) {
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				// Capture the stack here, before it unwinds.
				err = fmt.Errorf("panic: %v\n%s", r, debug.Stack())
			}
		}()
		return runPipeline(ctx, cfg, w)
	}()
	if err == nil {
		return
	}

	fmt.Fprintf(w, "run failed: %v\n", err)
	writeErrorLog(cfg, err)

	if jerr := export.WriteJournal(cfg.JournalPath(), nil); jerr != nil {
		fmt.Fprintf(w, "warning: fallback journal write failed: %v\n", jerr)
	}
	if xerr := export.WriteXLSX(cfg.XLSXPath(), nil, nil); xerr != nil {
		fmt.Fprintf(w, "warning: fallback spreadsheet write failed: %v\n", xerr)
	}
}

// runAndExport executes the pipeline and writes all artifacts. Tests invoke
// the stages directly; this composition exists so the fail-soft wrapper
// stays free of business logic.
func runAndExport(ctx context.Context, cfg types.CrawlConfig, w io.Writer) error {
	var extra []string
	if cfg.KeywordsFile != "" {
		kws, err := extract.LoadKeywordsFile(cfg.KeywordsFile)
		if err != nil {
			fmt.Fprintf(w, "warning: ignoring keywords file: %v\n", err)
		} else {
			extra = kws
		}
	}

	client := fetch.New(cfg.HTTPConfig)
	p := New(cfg, client, extract.New(extract.NewScorer(extra...)), w)

	res, err := p.Run(ctx)
	if err != nil {
		return err
	}

	if err := export.WriteJournal(cfg.JournalPath(), res.Journal); err != nil {
		return err
	}
	if err := export.WriteXLSX(cfg.XLSXPath(), res.Filtered, res.All); err != nil {
		return err
	}
	fmt.Fprintf(w, "wrote %s and %s\n", cfg.JournalPath(), cfg.XLSXPath())

	if cfg.ArchiveDB != "" {
		store, err := archive.Open(cfg.ArchiveDB)
		if err != nil {
			return err
		}
		defer store.Close()
		if _, err := store.RecordRun(ctx, res.StartedAt, res.All, len(res.Filtered)); err != nil {
			return err
		}
		fmt.Fprintf(w, "archived run to %s\n", cfg.ArchiveDB)
	}
	return nil
}

// writeErrorLog writes the diagnostic log: timestamp, error kind, message,
// and stack trace. Diagnostics never go to the primary outputs. A failure to
// write the log itself is swallowed; there is nowhere left to report it.
func writeErrorLog(cfg types.CrawlConfig, runErr error) {
	path := cfg.ErrorLogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	body := fmt.Sprintf("%s\nkind: %T\nerror: %v\n\n%s\n",
		time.Now().UTC().Format(time.RFC3339), runErr, runErr, debug.Stack())
	os.WriteFile(path, []byte(body), 0o644)
}
