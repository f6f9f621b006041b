package workbook

import (
	"strings"

	"github.com/ginjaninja78/sheet-gen/internal/xmlwriter"
)

// =============================================================================
// ROW
// =============================================================================

// Row is an ordered sequence of cells. Rows in the same table may have
// different lengths.
type Row struct {
	Cells []Cell
}

// NewRow returns a row holding the given cells.
func NewRow(cells ...Cell) Row {
	return Row{Cells: cells}
}

// WithCells replaces the row's cells.
func (r Row) WithCells(cells []Cell) Row {
	r.Cells = cells
	return r
}

// XML renders the row with unstyled cells, one cell per line.
func (r Row) XML() string {
	var b strings.Builder
	r.writeXML(&b, "")
	return b.String()
}

// XMLWithStyle renders the row with every cell carrying styleID.
func (r Row) XMLWithStyle(styleID string) string {
	var b strings.Builder
	r.writeXML(&b, styleID)
	return b.String()
}

func (r Row) writeXML(b *strings.Builder, styleID string) {
	b.WriteString("<Row>\n")
	for _, c := range r.Cells {
		if styleID == "" {
			b.WriteString(c.XML())
		} else {
			b.WriteString(c.XMLWithStyle(styleID))
		}
		b.WriteByte('\n')
	}
	b.WriteString("</Row>")
}

// =============================================================================
// TABLE
// =============================================================================

// Table is a grid of rows with optional heading labels.
//
// Headings is nil when the table has no heading row. A non-nil empty slice is
// a heading row with no cells, which still renders as an empty <Row>.
type Table struct {
	Headings []string
	Rows     []Row
}

// NewTable returns an empty table with no headings.
func NewTable() *Table {
	return &Table{}
}

// WithRows replaces the table's rows.
func (t *Table) WithRows(rows []Row) *Table {
	t.Rows = rows
	return t
}

// WithHeadings sets the heading labels. Passing no labels gives a present but
// empty heading row; use ClearHeadings to remove it.
func (t *Table) WithHeadings(labels ...string) *Table {
	t.Headings = append(make([]string, 0, len(labels)), labels...)
	return t
}

// ClearHeadings removes the heading row.
func (t *Table) ClearHeadings() *Table {
	t.Headings = nil
	return t
}

// HasHeadings reports whether a heading row is present.
func (t *Table) HasHeadings() bool {
	return t.Headings != nil
}

// AppendRow adds a row at the end of the table.
func (t *Table) AppendRow(cells ...Cell) {
	t.Rows = append(t.Rows, NewRow(cells...))
}

// XML renders the table. A heading row, when present, is written first with
// the Heading style; data rows follow with the Default style.
func (t *Table) XML() string {
	var b strings.Builder
	t.writeXML(&b)
	return b.String()
}

func (t *Table) writeXML(b *strings.Builder) {
	b.WriteString("<Table>\n")
	if t.Headings != nil {
		cells := make([]Cell, len(t.Headings))
		for i, label := range t.Headings {
			cells[i] = Text(label)
		}
		NewRow(cells...).writeXML(b, xmlwriter.StyleHeading)
		b.WriteByte('\n')
	}
	for _, r := range t.Rows {
		r.writeXML(b, xmlwriter.StyleDefault)
		b.WriteByte('\n')
	}
	b.WriteString("</Table>")
}
