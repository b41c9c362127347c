// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/pubharvest/pkg/types"
)

// Sheet names, in workbook order.
const (
	SheetFiltered = "filtered"
	SheetAll      = "all"
)

// Columns is the fixed, ordered schema of both sheets. The shape is stable
// across runs even when zero data rows are present.
var Columns = []string{
	"title", "authors", "year", "date", "venue", "type", "abstract",
	"doi", "pdf_url", "code_url", "language", "url", "slug",
	"raw_text_length", "relevance_score", "matched_keywords",
}

// WriteXLSX writes the spreadsheet at path with the filtered and all record
// views on separate sheets. Both sheets always carry the header row.
func WriteXLSX(path string, filtered, all []types.PublicationRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetFiltered); err != nil {
		return fmt.Errorf("naming filtered sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetAll); err != nil {
		return fmt.Errorf("creating all sheet: %w", err)
	}

	if err := writeSheet(f, SheetFiltered, filtered); err != nil {
		return err
	}
	if err := writeSheet(f, SheetAll, all); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving spreadsheet %s: %w", path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, records []types.PublicationRecord) error {
	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing %s header: %w", sheet, err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("computing cell for row %d: %w", i+2, err)
		}
		row := recordRow(r)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}

// recordRow flattens a record into the Columns order.
func recordRow(r types.PublicationRecord) []interface{} {
	return []interface{}{
		r.Title, r.Authors, r.Year, r.Date, r.Venue, r.Type, r.Abstract,
		r.DOI, r.PDFURL, r.CodeURL, r.Language, r.URL, r.Slug,
		r.RawTextLength, r.RelevanceScore, r.MatchedKeywords,
	}
}
