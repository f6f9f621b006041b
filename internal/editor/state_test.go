package editor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ginjaninja78/sheet-gen/internal/config"
	"github.com/ginjaninja78/sheet-gen/internal/converter"
)

func titles(s *State) string {
	var out []string
	for _, w := range s.Worksheets {
		out = append(out, w.Title)
	}
	return strings.Join(out, ",")
}

func TestAddDefaults(t *testing.T) {
	s := New("")
	s.Apply(AddWorksheet{})
	s.Apply(AddWorksheet{})

	if got := titles(s); got != "Worksheet 0,Worksheet 1" {
		t.Errorf("titles = %s", got)
	}
	w := s.Worksheets[0]
	if !w.Headings || w.Source == nil || w.Source.Kind != converter.SourceCSV || w.Source.Location != "" {
		t.Errorf("new worksheet = %+v", w)
	}
}

func TestReorderAndDelete(t *testing.T) {
	s := New("")
	for i := 0; i < 3; i++ {
		s.Apply(AddWorksheet{})
	}
	for i, title := range []string{"A", "B", "C"} {
		s.Apply(SetTitle{Index: i, Title: title})
	}

	steps := []struct {
		msg  Msg
		want string
	}{
		{MoveUp{Index: 0}, "A,B,C"},
		{MoveDown{Index: 2}, "A,B,C"},
		{MoveUp{Index: 2}, "A,C,B"},
		{MoveDown{Index: 0}, "C,A,B"},
		{DeleteWorksheet{Index: 1}, "C,B"},
	}
	for _, st := range steps {
		if err := s.Apply(st.msg); err != nil {
			t.Fatalf("Apply(%#v): %v", st.msg, err)
		}
		if got := titles(s); got != st.want {
			t.Errorf("after %#v: %s, want %s", st.msg, got, st.want)
		}
	}
}

func TestOutOfRange(t *testing.T) {
	s := New("")
	s.Apply(AddWorksheet{})

	for _, m := range []Msg{
		DeleteWorksheet{Index: 1},
		MoveUp{Index: -1},
		MoveDown{Index: 5},
		SetTitle{Index: 1, Title: "x"},
		SetHeadings{Index: 2},
		SetSourceKind{Index: 1, Kind: converter.SourceRSS},
		SetSourcePath{Index: 9, Path: "p"},
	} {
		if err := s.Apply(m); err == nil {
			t.Errorf("Apply(%#v) succeeded", m)
		}
	}
	if len(s.Worksheets) != 1 || s.Worksheets[0].Title != "Worksheet 0" {
		t.Errorf("state changed: %+v", s.Worksheets)
	}
}

func TestSourceKindKeepsPath(t *testing.T) {
	s := New("")
	s.Apply(AddWorksheet{})
	s.Apply(SetSourcePath{Index: 0, Path: "feed.xml"})
	s.Apply(SetSourceKind{Index: 0, Kind: converter.SourceRSS})
	s.Apply(SetHeadings{Index: 0, On: false})

	w := s.Worksheets[0]
	if w.Source.Kind != converter.SourceRSS || w.Source.Location != "feed.xml" || w.Headings {
		t.Errorf("worksheet = %+v source = %+v", w, *w.Source)
	}
}

func TestQueueDefersUntilFlush(t *testing.T) {
	s := New("")
	s.Apply(AddWorksheet{})
	s.Apply(AddWorksheet{})

	// Deleting the first row during a pass must not affect the rest of it.
	s.Queue(DeleteWorksheet{Index: 0})
	s.Queue(SetTitle{Index: 0, Title: "renamed"})
	s.Queue(DeleteWorksheet{Index: 7})

	if len(s.Worksheets) != 2 || s.Pending() != 3 {
		t.Fatalf("state changed before flush")
	}

	errs := s.Flush()
	if len(errs) != 1 {
		t.Errorf("errs = %v, want one error", errs)
	}
	if got := titles(s); got != "renamed" {
		t.Errorf("titles = %s", got)
	}
	if s.Pending() != 0 {
		t.Errorf("queue not cleared")
	}
}

func TestExportStatus(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "d.csv")
	if err := os.WriteFile(csvPath, []byte("a\n1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	s := New(filepath.Join(dir, "out.xml"))
	s.Apply(AddWorksheet{})
	s.Apply(SetSourcePath{Index: 0, Path: csvPath})

	settings := config.DefaultSettings("test")
	if err := s.Export(context.Background(), s.Builder(settings), &bytes.Buffer{}); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if s.Failed || !strings.Contains(s.Status, "out.xml") {
		t.Errorf("status = %q failed=%v", s.Status, s.Failed)
	}

	s.Apply(SetSourcePath{Index: 0, Path: filepath.Join(dir, "missing.csv")})
	err := s.Export(context.Background(), s.Builder(settings), &bytes.Buffer{})
	var e *converter.Error
	if !errors.As(err, &e) || e.Tag != converter.TagFile {
		t.Fatalf("err = %v", err)
	}
	if !s.Failed || !strings.HasPrefix(s.Status, "Export failed: file: ") {
		t.Errorf("status = %q", s.Status)
	}

	var out bytes.Buffer
	s.Apply(SetSourcePath{Index: 0, Path: csvPath})
	s.Apply(SetOutput{Path: ""})
	if err := s.Export(context.Background(), s.Builder(settings), &out); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if s.Status != "Exported to standard output." || out.Len() == 0 {
		t.Errorf("status = %q, %d bytes", s.Status, out.Len())
	}
}

func TestBuilderCopiesSources(t *testing.T) {
	s := New("x.xml")
	s.Apply(AddWorksheet{})
	b := s.Builder(nil)
	s.Apply(SetSourcePath{Index: 0, Path: "changed"})

	if b.Worksheets[0].Source.Location != "" || b.Output != "x.xml" {
		t.Errorf("builder shares state with the editor")
	}
}

func TestClearWorksheets(t *testing.T) {
	s := New("out.xml")
	s.Apply(AddWorksheet{})
	s.Apply(AddWorksheet{})

	if err := s.Apply(ClearWorksheets{}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(s.Worksheets) != 0 || s.Output != "out.xml" {
		t.Errorf("after clear: worksheets = %d, output = %q", len(s.Worksheets), s.Output)
	}

	s.Apply(AddWorksheet{})
	if got := titles(s); got != "Worksheet 0" {
		t.Errorf("titles after clear = %s", got)
	}
}
