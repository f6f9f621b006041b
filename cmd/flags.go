package cmd

import (
	"errors"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/ginjaninja78/sheet-gen/internal/converter"
)

// =============================================================================
// ORDERED WORKSHEET FLAGS
// =============================================================================
//
// The worksheet flags form groups whose meaning depends on their order:
//
//   -w Sales -H -c sales.csv   -d ./docs   -w News -r feed.xml
//   └────── worksheet 0 ─────┘ └─ ws 1 ─┘ └──── worksheet 2 ───┘
//
// -w and -H adjust the pending worksheet; -c, -d, -r and -x set its source
// and close it. pflag calls Set in command-line order, so every flag in a
// group writes into one shared specList.

// specList accumulates worksheet specifications in flag order.
type specList struct {
	worksheets []converter.BuilderWorksheet
	pending    converter.BuilderWorksheet
	dirty      bool
}

func newSpecList() *specList {
	l := &specList{}
	l.reset()
	return l
}

func (l *specList) reset() {
	l.pending = converter.NewBuilderWorksheet("")
	l.dirty = false
}

func (l *specList) setTitle(title string) {
	l.pending.Title = title
	l.dirty = true
}

func (l *specList) disableHeadings() {
	l.pending.Headings = false
	l.dirty = true
}

// finish closes the pending worksheet with the given source. A worksheet
// with an empty title, given or not, is named after the number of worksheets
// declared before it.
func (l *specList) finish(kind converter.SourceKind, location string) {
	w := l.pending
	if w.Title == "" {
		w.Title = converter.DefaultTitle(len(l.worksheets))
	}
	w.Source = converter.NewSource(kind, location)
	l.worksheets = append(l.worksheets, w)
	l.reset()
}

// result returns the closed worksheets and whether -w or -H were given after
// the last source.
func (l *specList) result() ([]converter.BuilderWorksheet, bool) {
	return l.worksheets, l.dirty
}

// =============================================================================
// pflag.Value IMPLEMENTATIONS
// =============================================================================

var errFlagAsValue = errors.New("expected a value, got a flag")

type titleValue struct{ l *specList }

func (v titleValue) String() string { return "" }
func (v titleValue) Type() string   { return "title" }

func (v titleValue) Set(s string) error {
	if s == "-h" || s == "--help" {
		return errFlagAsValue
	}
	v.l.setTitle(s)
	return nil
}

type noHeadingsValue struct{ l *specList }

func (v noHeadingsValue) String() string   { return "false" }
func (v noHeadingsValue) Type() string     { return "bool" }
func (v noHeadingsValue) IsBoolFlag() bool { return true }

func (v noHeadingsValue) Set(s string) error {
	off, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	if off {
		v.l.disableHeadings()
	}
	return nil
}

type sourceValue struct {
	l    *specList
	kind converter.SourceKind
}

func (v sourceValue) String() string { return "" }
func (v sourceValue) Type() string   { return "source" }

// Set rejects flag-like values so that "-c -h" is an error rather than a
// worksheet read from a file named "-h". Such paths can be written "./-h".
func (v sourceValue) Set(s string) error {
	if len(s) > 1 && strings.HasPrefix(s, "-") {
		return errFlagAsValue
	}
	v.l.finish(v.kind, s)
	return nil
}

// registerWorksheetFlags adds the worksheet flags of the generate command.
func registerWorksheetFlags(fs *pflag.FlagSet, l *specList) {
	fs.VarP(titleValue{l}, "worksheet", "w", "Title of the next worksheet")

	fs.VarP(noHeadingsValue{l}, "no-headings", "H", "Omit the heading row of the next worksheet")
	fs.Lookup("no-headings").NoOptDefVal = "true"

	fs.VarP(sourceValue{l, converter.SourceCSV}, "csv", "c", "Add a worksheet from a CSV file or URL")
	fs.VarP(sourceValue{l, converter.SourceDirectory}, "dir", "d", "Add a worksheet listing a directory")
	fs.VarP(sourceValue{l, converter.SourceRSS}, "rss", "r", "Add a worksheet from an RSS or Atom feed file or URL")
	fs.VarP(sourceValue{l, converter.SourceXLSX}, "xlsx", "x", "Add a worksheet from the first sheet of an XLSX file")
}
