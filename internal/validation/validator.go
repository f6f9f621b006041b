// =============================================================================
// Sheet Generator - Workbook Inspection
// =============================================================================
//
// This module looks over a built workbook for things a reader of the output
// would probably want to know about. Nothing it finds is an error: the
// document model accepts ragged rows and repeated worksheet names, and the
// document is written either way. Findings are returned as warnings for the
// caller to log.
//
// RULES:
//   ragged_rows     data rows whose cell count differs from the heading count
//                   (or from the first row when there are no headings)
//   duplicate_name  a worksheet name already used by an earlier worksheet
//   empty_name      a worksheet with an empty name
//   no_rows         a worksheet with no data rows
//
// Each rule reports at most once per worksheet.
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/sheet-gen/internal/workbook"
)

// =============================================================================
// WARNING TYPES
// =============================================================================

// Rule names.
const (
	RuleRaggedRows    = "ragged_rows"
	RuleDuplicateName = "duplicate_name"
	RuleEmptyName     = "empty_name"
	RuleNoRows        = "no_rows"
)

// Warning is a single inspection finding.
type Warning struct {
	// Rule is the rule that produced the warning.
	Rule string

	// Worksheet is the position of the worksheet, starting at 1.
	Worksheet int

	// Name is the worksheet name.
	Name string

	// Row is the 1-based data row the finding refers to, or 0 when it refers
	// to the whole worksheet.
	Row int

	// Message is a human-readable description.
	Message string
}

func (w *Warning) Error() string {
	if w.Row > 0 {
		return fmt.Sprintf("worksheet %d (%q), row %d: %s", w.Worksheet, w.Name, w.Row, w.Message)
	}
	return fmt.Sprintf("worksheet %d (%q): %s", w.Worksheet, w.Name, w.Message)
}

// =============================================================================
// INSPECTION
// =============================================================================

// Inspect returns the warnings for wb in worksheet order.
func Inspect(wb *workbook.Workbook) []*Warning {
	var warnings []*Warning
	seen := make(map[string]int)

	for i, ws := range wb.Worksheets {
		if ws == nil {
			continue
		}
		pos := i + 1

		if ws.Name == "" {
			warnings = append(warnings, &Warning{
				Rule: RuleEmptyName, Worksheet: pos,
				Message: "worksheet has no name",
			})
		} else if first, ok := seen[ws.Name]; ok {
			warnings = append(warnings, &Warning{
				Rule: RuleDuplicateName, Worksheet: pos, Name: ws.Name,
				Message: fmt.Sprintf("name already used by worksheet %d", first),
			})
		} else {
			seen[ws.Name] = pos
		}

		if ws.Table == nil || len(ws.Table.Rows) == 0 {
			warnings = append(warnings, &Warning{
				Rule: RuleNoRows, Worksheet: pos, Name: ws.Name,
				Message: "worksheet has no data rows",
			})
			continue
		}

		if w := inspectRagged(ws.Table); w != nil {
			w.Worksheet, w.Name = pos, ws.Name
			warnings = append(warnings, w)
		}
	}

	return warnings
}

// inspectRagged reports the first row whose width differs from the expected
// width, with a count of all such rows.
func inspectRagged(t *workbook.Table) *Warning {
	want, basis := len(t.Rows[0].Cells), "the first row"
	if t.HasHeadings() {
		want, basis = len(t.Headings), "the heading row"
	}

	firstRow, count := 0, 0
	for i, r := range t.Rows {
		if len(r.Cells) != want {
			if count == 0 {
				firstRow = i + 1
			}
			count++
		}
	}
	if count == 0 {
		return nil
	}

	got := len(t.Rows[firstRow-1].Cells)
	msg := fmt.Sprintf("has %d cells but %s has %d", got, basis, want)
	if count > 1 {
		msg += fmt.Sprintf(" (%d rows differ)", count)
	}

	return &Warning{Rule: RuleRaggedRows, Row: firstRow, Message: msg}
}

// =============================================================================
// FORMATTING
// =============================================================================

// FormatWarnings formats warnings for display, one per line.
func FormatWarnings(warnings []*Warning) string {
	if len(warnings) == 0 {
		return "No warnings."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Inspection found %d warning(s):\n", len(warnings))
	for i, w := range warnings {
		fmt.Fprintf(&b, "%d. [%s] %s\n", i+1, w.Rule, w.Error())
	}
	return b.String()
}
