// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes the run artifacts: the compliance journal and the
// two-sheet spreadsheet. Both are always produced, header-only when empty,
// so downstream consumers see a stable shape across runs.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/pubharvest/pkg/types"
)

// journalHeader is the fixed column order of the compliance journal.
var journalHeader = []string{"url", "reason", "matched_rule", "checked_at_utc"}

// WriteJournal writes the compliance journal CSV at path. An empty entry
// list still produces a header-only file.
func WriteJournal(path string, entries []types.JournalEntry) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(journalHeader); err != nil {
		return fmt.Errorf("writing journal header: %w", err)
	}
	for _, e := range entries {
		row := []string{e.URL, e.Reason, e.MatchedRule, e.CheckedAtUTC}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing journal row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("encoding journal: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing journal %s: %w", path, err)
	}
	return nil
}
