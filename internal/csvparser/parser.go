// =============================================================================
// Sheet Generator - CSV Parser Module
// =============================================================================
//
// This module turns CSV text into a workbook Table. It handles:
//   - Configurable delimiters (comma, pipe, tab, semicolon or any character)
//   - An optional heading record
//   - Ragged records (rows need not have the same number of fields)
//   - Per-field type inference (number or text)
//
// TYPE INFERENCE:
//   Each field is tried, in order, as:
//     1. A floating-point number   ("3.14", "-2", "1e6", "inf")
//     2. A 64-bit integer          (coerced to float)
//     3. Text                      (anything else, including "")
//   Hexadecimal and digit-separated forms ("0x1F", "1_000") are text.
//
// STRICTNESS:
//   Quoting is strict: a stray quote in an unquoted field or an unterminated
//   quoted field fails the whole conversion with a parse error that carries
//   the line and column.
//
// =============================================================================

package csvparser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ginjaninja78/sheet-gen/internal/config"
	"github.com/ginjaninja78/sheet-gen/internal/workbook"
)

// =============================================================================
// MAIN CONVERSION FUNCTION
// =============================================================================

// ToTable parses CSV text into a table.
//
// PARAMETERS:
//   - text: The complete CSV document.
//   - headings: When true the first record becomes the heading labels and is
//     not emitted as a data row.
//   - settings: Delimiter and comment options.
//
// RETURNS:
//   - The table. With headings set and empty input, the heading list is
//     present but empty.
//   - An error if the settings are unusable or the text is not well-formed.
func ToTable(text string, headings bool, settings config.CSVSettings) (*workbook.Table, error) {
	reader := csv.NewReader(strings.NewReader(text))
	if err := configureReader(reader, settings); err != nil {
		return nil, err
	}

	table := workbook.NewTable()

	if headings {
		record, err := reader.Read()
		switch {
		case errors.Is(err, io.EOF):
			table.WithHeadings()
			return table, nil
		case err != nil:
			return nil, err
		}
		table.WithHeadings(record...)
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		cells := make([]workbook.Cell, len(record))
		for i, field := range record {
			cells[i] = InferCell(field)
		}
		table.AppendRow(cells...)
	}

	return table, nil
}

// =============================================================================
// TYPE INFERENCE
// =============================================================================

// InferCell converts one raw field into a Number cell when it reads as a
// number and a Text cell otherwise. Out-of-range values such as "1e400"
// become infinite numbers.
func InferCell(field string) workbook.Cell {
	if strings.ContainsAny(field, "xX_") {
		return workbook.Text(field)
	}

	if v, err := strconv.ParseFloat(field, 64); err == nil || errors.Is(err, strconv.ErrRange) {
		return workbook.Number(v)
	}

	if n, err := strconv.ParseInt(field, 10, 64); err == nil {
		return workbook.Number(float64(n))
	}

	return workbook.Text(field)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// configureReader applies settings to reader.
//
// Quoting is never lazy and fields are never trimmed unless asked for, so the
// text of a field reaches type inference unchanged.
func configureReader(reader *csv.Reader, settings config.CSVSettings) error {
	comma, err := settings.DelimiterRune()
	if err != nil {
		return err
	}
	comment, err := settings.CommentRune()
	if err != nil {
		return err
	}
	if comment == comma {
		return fmt.Errorf("%w: comment and delimiter are both %q", config.ErrInvalidSettings, comma)
	}

	reader.Comma = comma
	reader.Comment = comment
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = false
	reader.TrimLeadingSpace = settings.TrimLeadingSpace

	return nil
}
