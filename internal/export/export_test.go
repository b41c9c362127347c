// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/pubharvest/pkg/types"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteJournalEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "ignored_by_robots.csv")
	require.NoError(t, WriteJournal(path, nil))

	rows := readCSV(t, path)
	require.Len(t, rows, 1, "empty journal is header-only, never absent")
	assert.Equal(t, []string{"url", "reason", "matched_rule", "checked_at_utc"}, rows[0])
}

func TestWriteJournalEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ignored_by_robots.csv")
	entries := []types.JournalEntry{
		{
			URL:          "https://example.org/private/x",
			Reason:       "robots.txt disallow",
			MatchedRule:  "/private",
			CheckedAtUTC: "2026-09-01T10:00:00Z",
		},
	}
	require.NoError(t, WriteJournal(path, entries))

	rows := readCSV(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, "https://example.org/private/x", rows[1][0])
	assert.Equal(t, "/private", rows[1][2])
}

func TestWriteXLSXEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "publications.xlsx")
	require.NoError(t, WriteXLSX(path, nil, nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{SheetFiltered, SheetAll}, f.GetSheetList())
	for _, sheet := range []string{SheetFiltered, SheetAll} {
		rows, err := f.GetRows(sheet)
		require.NoError(t, err)
		require.Len(t, rows, 1, "%s must be header-only when no records exist", sheet)
		assert.Equal(t, Columns, rows[0])
	}
}

func TestWriteXLSXViews(t *testing.T) {
	relevant := types.PublicationRecord{
		Title: "Relevant Paper", Year: "2024", Date: "2024-01-01",
		RelevanceScore: 2, MatchedKeywords: "quantum, qubit",
	}
	noise := types.PublicationRecord{Title: "Noise Paper", RelevanceScore: 0}

	path := filepath.Join(t.TempDir(), "publications.xlsx")
	all := []types.PublicationRecord{relevant, noise}
	filtered := []types.PublicationRecord{relevant}
	require.NoError(t, WriteXLSX(path, filtered, all))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	filteredRows, err := f.GetRows(SheetFiltered)
	require.NoError(t, err)
	require.Len(t, filteredRows, 2)
	assert.Equal(t, "Relevant Paper", filteredRows[1][0])

	allRows, err := f.GetRows(SheetAll)
	require.NoError(t, err)
	require.Len(t, allRows, 3)
	assert.Equal(t, "Noise Paper", allRows[2][0])
}
