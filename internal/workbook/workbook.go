// =============================================================================
// Sheet Generator - Document Model: Worksheets and Workbooks
// =============================================================================
//
// A Workbook is the complete output document: the fixed SpreadsheetML header,
// one <Worksheet> block per worksheet in order, and the closing tag.
//
// Worksheet names are not required to be unique and are not validated;
// anything a caller supplies is neutralized by escaping.
//
// =============================================================================

package workbook

import (
	"io"
	"strings"

	"github.com/ginjaninja78/sheet-gen/internal/xmlwriter"
)

// =============================================================================
// WORKSHEET
// =============================================================================

// Worksheet is a named table.
type Worksheet struct {
	Name  string
	Table *Table
}

// NewWorksheet returns a worksheet. A nil table is replaced by an empty one.
func NewWorksheet(name string, table *Table) *Worksheet {
	if table == nil {
		table = NewTable()
	}
	return &Worksheet{Name: name, Table: table}
}

// WithName replaces the worksheet name.
func (w *Worksheet) WithName(name string) *Worksheet {
	w.Name = name
	return w
}

// WithTable replaces the worksheet table.
func (w *Worksheet) WithTable(table *Table) *Worksheet {
	w.Table = table
	return w
}

// XML renders the worksheet element with its escaped name.
func (w *Worksheet) XML() string {
	var b strings.Builder
	w.writeXML(&b)
	return b.String()
}

func (w *Worksheet) writeXML(b *strings.Builder) {
	b.WriteString(`<Worksheet ss:Name="`)
	b.WriteString(xmlwriter.Escape(w.Name))
	b.WriteString("\">\n")
	if w.Table != nil {
		w.Table.writeXML(b)
	} else {
		NewTable().writeXML(b)
	}
	b.WriteString("\n</Worksheet>")
}

// =============================================================================
// WORKBOOK
// =============================================================================

// Workbook is an ordered list of worksheets.
type Workbook struct {
	Worksheets []*Worksheet
}

// NewWorkbook returns a workbook holding the given worksheets.
func NewWorkbook(worksheets ...*Worksheet) *Workbook {
	return &Workbook{Worksheets: worksheets}
}

// WithWorksheets replaces the workbook's worksheets.
func (wb *Workbook) WithWorksheets(worksheets []*Worksheet) *Workbook {
	wb.Worksheets = worksheets
	return wb
}

// XML renders the complete document. An empty workbook is still a
// well-formed document: the header followed by the closing tag. Nil
// worksheets are skipped.
func (wb *Workbook) XML() string {
	var b strings.Builder
	b.WriteString(xmlwriter.Header)
	b.WriteByte('\n')
	for _, w := range wb.Worksheets {
		if w == nil {
			continue
		}
		w.writeXML(&b)
		b.WriteByte('\n')
	}
	b.WriteString(xmlwriter.Footer)
	return b.String()
}

// WriteTo writes the same bytes XML returns. It implements io.WriterTo.
func (wb *Workbook) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, wb.XML())
	return int64(n), err
}
