package utils

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestWalkFiles(t *testing.T) {
	root := t.TempDir()
	mustWrite(t, filepath.Join(root, "b.txt"), "b")
	mustWrite(t, filepath.Join(root, "a", "nested.png"), "png")
	mustWrite(t, filepath.Join(root, "a", "deeper", "x"), "")
	if err := os.MkdirAll(filepath.Join(root, "empty"), 0755); err != nil {
		t.Fatal(err)
	}

	got := WalkFiles(root)
	want := []string{
		filepath.Join(root, "a", "deeper", "x"),
		filepath.Join(root, "a", "nested.png"),
		filepath.Join(root, "b.txt"),
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("WalkFiles =\n%v\nwant\n%v", got, want)
	}
}

func TestWalkFilesMissingOrFileRoot(t *testing.T) {
	if got := WalkFiles(filepath.Join(t.TempDir(), "missing")); len(got) != 0 {
		t.Errorf("missing root gave %v", got)
	}

	file := filepath.Join(t.TempDir(), "f.txt")
	mustWrite(t, file, "x")
	if got := WalkFiles(file); len(got) != 0 {
		t.Errorf("file root gave %v", got)
	}
}

func TestExpandOutputPath(t *testing.T) {
	now := time.Date(2024, 1, 15, 14, 30, 22, 0, time.UTC)

	if got := ExpandOutputPath("out.xml", now); got != "out.xml" {
		t.Errorf("plain path changed to %q", got)
	}
	if got := ExpandOutputPath("r_{date}_{time}.xml", now); got != "r_20240115_143022.xml" {
		t.Errorf("got %q", got)
	}
	if got := ExpandOutputPath("{timestamp}.xml", now); got != "20240115_143022.xml" {
		t.Errorf("got %q", got)
	}

	got := ExpandOutputPath("{uuid}.xml", now)
	if !regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\.xml$`).MatchString(got) {
		t.Errorf("uuid placeholder expanded to %q", got)
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.xml")

	if err := WriteFileAtomic(path, strings.NewReader("first")); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}
	if err := WriteFileAtomic(path, strings.NewReader("second")); err != nil {
		t.Fatalf("WriteFileAtomic overwrite: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "second" {
		t.Errorf("content = %q", data)
	}
	assertOnlyFile(t, dir, "out.xml")
}

type failingWriterTo struct{}

func (failingWriterTo) WriteTo(w io.Writer) (int64, error) {
	w.Write([]byte("partial"))
	return 7, errors.New("boom")
}

func TestWriteFileAtomicFailureLeavesTargetAlone(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.xml")
	mustWrite(t, path, "original")

	if err := WriteFileAtomic(path, failingWriterTo{}); err == nil {
		t.Fatal("expected error")
	}

	data, _ := os.ReadFile(path)
	if string(data) != "original" {
		t.Errorf("target modified: %q", data)
	}
	assertOnlyFile(t, dir, "out.xml")
}

func TestWriteFileAtomicMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no", "such", "dir", "out.xml")
	if err := WriteFileAtomic(path, strings.NewReader("x")); err == nil {
		t.Fatal("expected error")
	}
}

func TestFileHelpers(t *testing.T) {
	dir := t.TempDir()
	if FileExists(dir) {
		t.Error("FileExists on a directory")
	}
	path := filepath.Join(dir, "f")
	if FileExists(path) {
		t.Error("FileExists before create")
	}
	mustWrite(t, path, "12345")
	if !FileExists(path) {
		t.Error("FileExists after create")
	}
	if n, err := GetFileSize(path); err != nil || n != 5 {
		t.Errorf("GetFileSize = %d, %v", n, err)
	}
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func assertOnlyFile(t *testing.T, dir, name string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != name {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory holds %v, want only %s", names, name)
	}
}
