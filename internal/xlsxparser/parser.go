// =============================================================================
// Sheet Generator - XLSX Parser Module
// =============================================================================
//
// This module reads one sheet of an XLSX workbook into a table, so that data
// already kept in Excel can be combined with other sources in one document.
//
// SHEET SELECTION:
//   The sheet named in XLSXSettings.Sheet is read. When no sheet is named the
//   first sheet of the workbook is used.
//
// CELL CONVERSION:
//   Raw cell values are read (no number formatting applied) and go through
//   the same inference as CSV fields: numbers become Number cells and
//   everything else becomes Text. Blank cells become Empty cells.
//
// =============================================================================

package xlsxparser

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/sheet-gen/internal/config"
	"github.com/ginjaninja78/sheet-gen/internal/csvparser"
	"github.com/ginjaninja78/sheet-gen/internal/workbook"
)

var (
	// ErrNoSheets is returned for a workbook without any sheets.
	ErrNoSheets = errors.New("workbook has no sheets")

	// ErrSheetNotFound is returned when the configured sheet does not exist.
	ErrSheetNotFound = errors.New("sheet not found")
)

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// ToTable reads a sheet of the XLSX file at path.
//
// PARAMETERS:
//   - path: The path to the XLSX file.
//   - headings: When true the first row becomes the heading labels.
//   - settings: Selects the sheet to read.
//
// RETURNS:
//   - The table.
//   - An error if the file cannot be opened or the sheet does not exist.
func ToTable(path string, headings bool, settings config.XLSXSettings) (*workbook.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}

	sheetName := settings.Sheet
	if sheetName == "" {
		sheetName = sheets[0]
	} else if !slices.Contains(sheets, sheetName) {
		return nil, fmt.Errorf("%w: %q (workbook has %s)", ErrSheetNotFound, sheetName, strings.Join(sheets, ", "))
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}

	table := workbook.NewTable()

	if headings {
		if len(rows) == 0 {
			table.WithHeadings()
			return table, nil
		}
		table.WithHeadings(rows[0]...)
		rows = rows[1:]
	}

	for _, row := range rows {
		cells := make([]workbook.Cell, len(row))
		for i, value := range row {
			if value == "" {
				cells[i] = workbook.Empty()
				continue
			}
			cells[i] = csvparser.InferCell(value)
		}
		table.AppendRow(cells...)
	}

	return table, nil
}
