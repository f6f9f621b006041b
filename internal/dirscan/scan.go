// =============================================================================
// Sheet Generator - Directory Listing Converter
// =============================================================================
//
// This module turns a directory tree into a table with one row per regular
// file:
//
//   File                 Type                  Size (bytes)
//   docs/readme.md       Document (.md)        1024
//   docs/logo.png        Image (.png)          20480
//   docs/LICENSE         File                  1071
//
// The conversion never fails. Unreadable subtrees are skipped and a file
// whose size cannot be read gets an empty size cell.
//
// =============================================================================

package dirscan

import (
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/sheet-gen/internal/workbook"
	"github.com/ginjaninja78/sheet-gen/pkg/utils"
)

// Headings are the labels of the heading row.
var Headings = []string{"File", "Type", "Size (bytes)"}

// categories maps a file extension (without the dot) to its category name.
// Matching is case-sensitive.
var categories = map[string]string{}

func init() {
	for category, exts := range map[string][]string{
		"Text":        {"txt"},
		"Image":       {"png", "jpg", "jpeg", "bmp", "gif"},
		"Video":       {"mp4", "mov", "mkv"},
		"Audio":       {"mp3", "wav", "aiff", "ogg"},
		"Document":    {"md", "pdf", "rtf", "doc", "docx", "odt", "fodt"},
		"Slideshow":   {"ppt", "pptx", "fodp", "odp"},
		"Spreadsheet": {"xls", "xlsx", "ods", "fods"},
		"Code":        {"c", "cpp", "rs", "js", "py", "xml", "html", "php", "sh", "cmd", "bat"},
	} {
		for _, ext := range exts {
			categories[ext] = category
		}
	}
}

// ToTable lists every regular file below root.
func ToTable(root string, headings bool) *workbook.Table {
	table := workbook.NewTable()

	for _, path := range utils.WalkFiles(root) {
		size := workbook.Empty()
		if n, err := utils.GetFileSize(path); err == nil {
			size = workbook.Number(float64(n))
		}
		table.AppendRow(workbook.Text(path), workbook.Text(TypeLabel(path)), size)
	}

	if headings {
		table.WithHeadings(Headings...)
	}

	return table
}

// TypeLabel describes a file by its extension, e.g. "Image (.png)". Files
// without an extension are labelled "File" and unknown extensions are
// "File (.ext)".
func TypeLabel(path string) string {
	ext, ok := extension(filepath.Base(path))
	if !ok {
		return "File"
	}

	category, ok := categories[ext]
	if !ok {
		category = "File"
	}

	return category + " (." + ext + ")"
}

// extension returns the text after the last dot of a file name. A name whose
// only dot is its first character (".bashrc") has no extension; a trailing dot
// gives an empty one.
func extension(name string) (string, bool) {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return "", false
	}
	return name[i+1:], true
}
