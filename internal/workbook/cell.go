// =============================================================================
// Sheet Generator - Document Model: Cells
// =============================================================================
//
// A Cell is the smallest unit of the document model. Every cell is exactly one
// of three variants:
//
//   Text    a string value        -> <Data ss:Type="String">
//   Number  a float64 value       -> <Data ss:Type="Number">
//   Empty   no value              -> <Data ss:Type="">
//
// Cells are immutable values. Escaping happens when a cell is rendered, never
// when it is constructed.
//
// =============================================================================

package workbook

import (
	"math"
	"strconv"

	"github.com/ginjaninja78/sheet-gen/internal/xmlwriter"
)

// Kind identifies the variant held by a Cell.
type Kind int

const (
	// KindEmpty is a cell with no value. It is the zero Kind.
	KindEmpty Kind = iota
	// KindText is a cell holding a string.
	KindText
	// KindNumber is a cell holding a float64.
	KindNumber
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	default:
		return "empty"
	}
}

// Cell is a single spreadsheet value. The zero value is an Empty cell.
type Cell struct {
	kind   Kind
	text   string
	number float64
}

// Text returns a text cell.
func Text(s string) Cell {
	return Cell{kind: KindText, text: s}
}

// Number returns a numeric cell.
func Number(v float64) Cell {
	return Cell{kind: KindNumber, number: v}
}

// Empty returns an empty cell.
func Empty() Cell {
	return Cell{}
}

// Kind reports which variant the cell holds.
func (c Cell) Kind() Kind { return c.kind }

// Float returns the numeric value and whether the cell is a Number.
func (c Cell) Float() (float64, bool) {
	return c.number, c.kind == KindNumber
}

// TypeName returns the ss:Type attribute value for the cell.
func (c Cell) TypeName() string {
	switch c.kind {
	case KindText:
		return "String"
	case KindNumber:
		return "Number"
	default:
		return ""
	}
}

// String returns the display text of the cell, unescaped.
//
// Numbers are written in positional decimal notation using the fewest digits
// that parse back to the same float64, so 1024 renders as "1024" and 0.1 as
// "0.1". Non-finite values render as "NaN", "inf" and "-inf".
func (c Cell) String() string {
	switch c.kind {
	case KindText:
		return c.text
	case KindNumber:
		return formatNumber(c.number)
	default:
		return ""
	}
}

// XML renders the cell without a style attribute.
func (c Cell) XML() string {
	return `<Cell><Data ss:Type="` + c.TypeName() + `">` + xmlwriter.Escape(c.String()) + `</Data></Cell>`
}

// XMLWithStyle renders the cell with the given ss:StyleID. Style identifiers
// come from a fixed set and are written as-is.
func (c Cell) XMLWithStyle(styleID string) string {
	return `<Cell ss:StyleID="` + styleID + `"><Data ss:Type="` + c.TypeName() + `">` +
		xmlwriter.Escape(c.String()) + `</Data></Cell>`
}

func formatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
