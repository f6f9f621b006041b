package csvparser

import (
	"encoding/csv"
	"errors"
	"math"
	"testing"

	"github.com/ginjaninja78/sheet-gen/internal/config"
	"github.com/ginjaninja78/sheet-gen/internal/workbook"
)

var defaults = config.CSVSettings{Delimiter: ","}

func TestInferCell(t *testing.T) {
	tests := []struct {
		in   string
		kind workbook.Kind
		num  float64
	}{
		{"1024", workbook.KindNumber, 1024},
		{"-3.5", workbook.KindNumber, -3.5},
		{"1e3", workbook.KindNumber, 1000},
		{"+7", workbook.KindNumber, 7},
		{"9223372036854775807", workbook.KindNumber, 9223372036854775807},
		{"1e400", workbook.KindNumber, math.Inf(1)},
		{"hello", workbook.KindText, 0},
		{"", workbook.KindText, 0},
		{" 12", workbook.KindText, 0},
		{"0x1F", workbook.KindText, 0},
		{"1_000", workbook.KindText, 0},
		{"12abc", workbook.KindText, 0},
	}

	for _, tt := range tests {
		c := InferCell(tt.in)
		if c.Kind() != tt.kind {
			t.Errorf("InferCell(%q).Kind() = %s, want %s", tt.in, c.Kind(), tt.kind)
			continue
		}
		if tt.kind == workbook.KindNumber {
			if v, _ := c.Float(); v != tt.num {
				t.Errorf("InferCell(%q) = %v, want %v", tt.in, v, tt.num)
			}
		}
		if tt.kind == workbook.KindText && c.String() != tt.in {
			t.Errorf("InferCell(%q) text = %q", tt.in, c.String())
		}
	}
}

func TestToTableWithHeadings(t *testing.T) {
	tbl, err := ToTable("name,age\nann,31\nbob,x\n", true, defaults)
	if err != nil {
		t.Fatalf("ToTable: %v", err)
	}

	if got := tbl.Headings; len(got) != 2 || got[0] != "name" || got[1] != "age" {
		t.Errorf("Headings = %v", got)
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(tbl.Rows))
	}

	row := tbl.Rows[0].Cells
	if row[0].Kind() != workbook.KindText || row[0].String() != "ann" {
		t.Errorf("row 0 col 0 = %v", row[0])
	}
	if v, ok := row[1].Float(); !ok || v != 31 {
		t.Errorf("row 0 col 1 = %v", row[1])
	}
	if tbl.Rows[1].Cells[1].Kind() != workbook.KindText {
		t.Errorf("row 1 col 1 should be text")
	}
}

func TestToTableWithoutHeadings(t *testing.T) {
	tbl, err := ToTable("name,age\nann,31\nbob,40\n", false, defaults)
	if err != nil {
		t.Fatalf("ToTable: %v", err)
	}
	if tbl.HasHeadings() {
		t.Errorf("unexpected headings %v", tbl.Headings)
	}
	if len(tbl.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(tbl.Rows))
	}
	if tbl.Rows[0].Cells[0].String() != "name" {
		t.Errorf("header line should be the first data row")
	}
}

func TestToTableEmptyInput(t *testing.T) {
	tbl, err := ToTable("", true, defaults)
	if err != nil {
		t.Fatalf("ToTable: %v", err)
	}
	if !tbl.HasHeadings() || len(tbl.Headings) != 0 {
		t.Errorf("Headings = %#v, want empty but present", tbl.Headings)
	}
	if len(tbl.Rows) != 0 {
		t.Errorf("got %d rows", len(tbl.Rows))
	}

	tbl, err = ToTable("", false, defaults)
	if err != nil {
		t.Fatalf("ToTable: %v", err)
	}
	if tbl.HasHeadings() || len(tbl.Rows) != 0 {
		t.Errorf("expected an empty table")
	}
}

func TestToTableRaggedRows(t *testing.T) {
	tbl, err := ToTable("a,b,c\n1\n2,3\n", false, defaults)
	if err != nil {
		t.Fatalf("ToTable: %v", err)
	}
	lens := []int{3, 1, 2}
	for i, want := range lens {
		if got := len(tbl.Rows[i].Cells); got != want {
			t.Errorf("row %d has %d cells, want %d", i, got, want)
		}
	}
}

func TestToTableQuotedFields(t *testing.T) {
	tbl, err := ToTable("\"a, b\",\"say \"\"hi\"\"\"\n", false, defaults)
	if err != nil {
		t.Fatalf("ToTable: %v", err)
	}
	cells := tbl.Rows[0].Cells
	if cells[0].String() != "a, b" || cells[1].String() != `say "hi"` {
		t.Errorf("cells = %q, %q", cells[0].String(), cells[1].String())
	}
}

func TestToTableMalformed(t *testing.T) {
	for _, in := range []string{"a,\"b\n", "a,b\"c\n"} {
		_, err := ToTable(in, false, defaults)
		var perr *csv.ParseError
		if !errors.As(err, &perr) {
			t.Errorf("ToTable(%q) err = %v, want *csv.ParseError", in, err)
		}
	}
}

func TestToTableSettings(t *testing.T) {
	settings := config.CSVSettings{Delimiter: "pipe", Comment: "#", TrimLeadingSpace: true}
	tbl, err := ToTable("# comment\na| 1\n", false, settings)
	if err != nil {
		t.Fatalf("ToTable: %v", err)
	}
	if len(tbl.Rows) != 1 {
		t.Fatalf("got %d rows", len(tbl.Rows))
	}
	if v, ok := tbl.Rows[0].Cells[1].Float(); !ok || v != 1 {
		t.Errorf("trimmed field should be numeric, got %v", tbl.Rows[0].Cells[1])
	}

	_, err = ToTable("a", false, config.CSVSettings{Delimiter: ";", Comment: ";"})
	if !errors.Is(err, config.ErrInvalidSettings) {
		t.Errorf("err = %v, want ErrInvalidSettings", err)
	}
}
