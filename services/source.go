package services

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Column headers expected in the source spreadsheet.
const (
	ColumnName            = "Name"
	ColumnPosition        = "Position"
	ColumnResearch        = "Research Interest"
	ColumnAffiliation     = "Departmental Affiliation"
	ColumnArticle         = "Article"
	ColumnConferencePaper = "Conference Paper"
)

// SourceRow is one data row of the source spreadsheet. Cells are free text;
// missing or ragged cells arrive as empty strings, never as an error.
type SourceRow struct {
	// Zero-based index among the data rows (header excluded).
	Index int

	Name             string
	Position         string
	ResearchInterest string
	Affiliation      string
	Articles         string
	ConferencePapers string
}

// SheetRow returns the 1-based spreadsheet row number, for diagnostics.
func (r SourceRow) SheetRow() int {
	return r.Index + 2
}

// ReadSourceFile loads the source spreadsheet into rows. The format is picked
// from the file extension: .xlsx (first sheet) or .csv. Any failure here is
// fatal for the run and happens before the destination is touched.
func ReadSourceFile(path string) ([]SourceRow, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return readXLSX(path)
	case ".csv":
		return readCSV(path)
	default:
		return nil, fmt.Errorf("unsupported source format %q (want .xlsx or .csv)", filepath.Ext(path))
	}
}

func readXLSX(path string) ([]SourceRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("spreadsheet %s has no sheets", path)
	}
	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rowsFromRecords(records)
}

func readCSV(path string) ([]SourceRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return rowsFromRecords(records)
}

func rowsFromRecords(records [][]string) ([]SourceRow, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("source has no header row")
	}

	// Map headers to column positions, case-insensitively.
	columns := map[string]int{}
	for i, h := range records[0] {
		columns[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := columns[strings.ToLower(ColumnName)]; !ok {
		return nil, fmt.Errorf("source is missing the %q column", ColumnName)
	}
	cell := func(record []string, header string) string {
		idx, ok := columns[strings.ToLower(header)]
		if !ok || idx >= len(record) {
			return ""
		}
		return record[idx]
	}

	rows := make([]SourceRow, 0, len(records)-1)
	for i, record := range records[1:] {
		rows = append(rows, SourceRow{
			Index:            i,
			Name:             cell(record, ColumnName),
			Position:         cell(record, ColumnPosition),
			ResearchInterest: cell(record, ColumnResearch),
			Affiliation:      cell(record, ColumnAffiliation),
			Articles:         cell(record, ColumnArticle),
			ConferencePapers: cell(record, ColumnConferencePaper),
		})
	}
	return rows, nil
}

// optional turns a trimmed cell into a nullable value: absent and blank cells
// both map to nil so consumers can tell "no value" from real text.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
