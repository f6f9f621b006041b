package dirscan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ginjaninja78/sheet-gen/internal/workbook"
)

func TestTypeLabel(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"notes.txt", "Text (.txt)"},
		{"a/b/photo.jpeg", "Image (.jpeg)"},
		{"clip.mkv", "Video (.mkv)"},
		{"song.aiff", "Audio (.aiff)"},
		{"paper.fodt", "Document (.fodt)"},
		{"deck.odp", "Slideshow (.odp)"},
		{"book.fods", "Spreadsheet (.fods)"},
		{"main.rs", "Code (.rs)"},
		{"run.bat", "Code (.bat)"},
		{"archive.tar.gz", "File (.gz)"},
		{"PHOTO.PNG", "File (.PNG)"},
		{"Makefile", "File"},
		{".bashrc", "File"},
		{"trailing.", "File (.)"},
	}

	for _, tt := range tests {
		if got := TypeLabel(tt.path); got != tt.want {
			t.Errorf("TypeLabel(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestToTable(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "image.png"), "12345")
	write(t, filepath.Join(root, "sub", "notes.txt"), "hello world")
	write(t, filepath.Join(root, "sub", "README"), "")

	tbl := ToTable(root, true)

	if len(tbl.Headings) != 3 || tbl.Headings[2] != "Size (bytes)" {
		t.Errorf("Headings = %v", tbl.Headings)
	}
	if len(tbl.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(tbl.Rows))
	}

	want := []struct {
		path  string
		label string
		size  float64
	}{
		{filepath.Join(root, "image.png"), "Image (.png)", 5},
		{filepath.Join(root, "sub", "README"), "File", 0},
		{filepath.Join(root, "sub", "notes.txt"), "Text (.txt)", 11},
	}
	for i, w := range want {
		cells := tbl.Rows[i].Cells
		if cells[0].String() != w.path {
			t.Errorf("row %d path = %q, want %q", i, cells[0].String(), w.path)
		}
		if cells[1].String() != w.label {
			t.Errorf("row %d label = %q, want %q", i, cells[1].String(), w.label)
		}
		if v, ok := cells[2].Float(); !ok || v != w.size {
			t.Errorf("row %d size = %v, want %v", i, cells[2], w.size)
		}
	}
}

func TestToTableWithoutHeadings(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "a.md"), "#")

	tbl := ToTable(root, false)
	if tbl.HasHeadings() {
		t.Error("unexpected headings")
	}
	if len(tbl.Rows) != 1 || tbl.Rows[0].Cells[1].Kind() != workbook.KindText {
		t.Errorf("rows = %+v", tbl.Rows)
	}
}

func TestToTableMissingRoot(t *testing.T) {
	tbl := ToTable(filepath.Join(t.TempDir(), "nope"), true)
	if len(tbl.Rows) != 0 {
		t.Errorf("got %d rows", len(tbl.Rows))
	}
	if !tbl.HasHeadings() {
		t.Error("headings should still be present")
	}
}

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}
