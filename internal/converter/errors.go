package converter

import "errors"

// Error tags identify the stage and kind of a build failure. They prefix the
// error message, e.g. `csv: parse error on line 2, column 5: bare " in non-quoted-field`.
const (
	TagURL    = "url"
	TagFile   = "file"
	TagCSV    = "csv"
	TagRSS    = "rss"
	TagXLSX   = "xlsx"
	TagSource = "source"
)

var (
	// ErrNoSource is wrapped when a worksheet reaches Build without a source.
	ErrNoSource = errors.New("no source set")

	// ErrNoWorksheets is returned when exporting a builder with no worksheets.
	ErrNoWorksheets = errors.New("no source data given")
)

// Error is a build failure for one worksheet.
type Error struct {
	// Tag is one of the Tag constants.
	Tag string

	// Worksheet is the title of the worksheet being built, if known.
	Worksheet string

	// Err is the underlying failure.
	Err error
}

func (e *Error) Error() string {
	return e.Tag + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}
