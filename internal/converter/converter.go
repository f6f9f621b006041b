// =============================================================================
// Sheet Generator - Converter Module
// =============================================================================
//
// This module contains the build pipeline. It turns an ordered list of
// worksheet specifications into worksheets, and worksheets into a written
// document.
//
// BUILD PIPELINE (per worksheet, in declaration order):
//   1. Check that a source is set
//   2. Resolve the source (fetch the URL or read the file)
//   3. Convert the content to a table
//   4. Name the table as a worksheet
//
// EXPORT PIPELINE:
//   1. Build every worksheet (stop at the first failure)
//   2. Inspect the workbook and log any warnings
//   3. Write the document to the output file or to standard output
//
// The first failing worksheet aborts the build and nothing is written.
//
// =============================================================================

package converter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ginjaninja78/sheet-gen/internal/config"
	"github.com/ginjaninja78/sheet-gen/internal/csvparser"
	"github.com/ginjaninja78/sheet-gen/internal/dirscan"
	"github.com/ginjaninja78/sheet-gen/internal/feedparser"
	"github.com/ginjaninja78/sheet-gen/internal/validation"
	"github.com/ginjaninja78/sheet-gen/internal/workbook"
	"github.com/ginjaninja78/sheet-gen/internal/xlsxparser"
	"github.com/ginjaninja78/sheet-gen/pkg/utils"
)

// =============================================================================
// LOGGER
// =============================================================================

// Logger is the logging surface the pipeline needs. *logrus.Logger and
// *logrus.Entry satisfy it.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

func discardLogger() Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// =============================================================================
// WORKSHEET SPECIFICATION
// =============================================================================

// BuilderWorksheet describes one worksheet before it is built.
type BuilderWorksheet struct {
	// Source is nil until a source has been chosen.
	Source *Source

	// Title becomes the worksheet name.
	Title string

	// Headings asks the converter for a heading row.
	Headings bool
}

// NewBuilderWorksheet returns a specification with headings enabled and no
// source.
func NewBuilderWorksheet(title string) BuilderWorksheet {
	return BuilderWorksheet{Title: title, Headings: true}
}

// DefaultTitle is the title given to the worksheet declared after n others.
func DefaultTitle(n int) string {
	return fmt.Sprintf("Worksheet %d", n)
}

// =============================================================================
// BUILDER
// =============================================================================

// Builder holds the worksheet specifications and output path of one run.
type Builder struct {
	// Worksheets are built in order.
	Worksheets []BuilderWorksheet

	// Output is the output path, which may hold placeholders understood by
	// utils.ExpandOutputPath. Empty means standard output.
	Output string

	settings *config.Settings
	resolver SourceResolver
	logger   Logger
}

// NewBuilder returns an empty builder. A nil settings value selects the
// defaults.
func NewBuilder(settings *config.Settings) *Builder {
	if settings == nil {
		settings = config.DefaultSettings("dev")
	}
	return &Builder{
		settings: settings,
		resolver: NewResolver(settings.FetchTimeout, settings.UserAgent),
		logger:   discardLogger(),
	}
}

// WithLogger sets the logger.
func (b *Builder) WithLogger(l Logger) *Builder {
	b.logger = l
	return b
}

// WithResolver replaces the source resolver.
func (b *Builder) WithResolver(r SourceResolver) *Builder {
	b.resolver = r
	return b
}

// Add appends a worksheet specification.
func (b *Builder) Add(w BuilderWorksheet) *Builder {
	b.Worksheets = append(b.Worksheets, w)
	return b
}

// Build converts every specification, in order, into a worksheet.
//
// RETURNS:
//   - One worksheet per specification, in the same order.
//   - The first failure as an *Error naming the worksheet. No worksheets are
//     returned with an error.
func (b *Builder) Build(ctx context.Context) ([]*workbook.Worksheet, error) {
	worksheets := make([]*workbook.Worksheet, 0, len(b.Worksheets))

	for _, spec := range b.Worksheets {
		table, err := b.buildTable(ctx, spec)
		if err != nil {
			var e *Error
			if !errors.As(err, &e) {
				e = &Error{Tag: TagSource, Err: err}
			}
			e.Worksheet = spec.Title
			return nil, e
		}

		b.logger.Infof("Built worksheet %q: %d rows", spec.Title, len(table.Rows))
		worksheets = append(worksheets, workbook.NewWorksheet(spec.Title, table))
	}

	return worksheets, nil
}

// Workbook builds every worksheet and wraps them in a workbook.
func (b *Builder) Workbook(ctx context.Context) (*workbook.Workbook, error) {
	worksheets, err := b.Build(ctx)
	if err != nil {
		return nil, err
	}
	return workbook.NewWorkbook(worksheets...), nil
}

func (b *Builder) buildTable(ctx context.Context, spec BuilderWorksheet) (*workbook.Table, error) {
	// =========================================================================
	// STEP 1: CHECK SOURCE
	// =========================================================================

	if spec.Source == nil {
		return nil, &Error{Tag: TagSource, Err: fmt.Errorf("worksheet %q: %w", spec.Title, ErrNoSource)}
	}
	src := *spec.Source

	// =========================================================================
	// STEP 2: RESOLVE
	// =========================================================================

	b.logger.Debugf("Resolving %s for worksheet %q", src, spec.Title)

	content, err := b.resolver.Resolve(ctx, src)
	if err != nil {
		return nil, err
	}

	// =========================================================================
	// STEP 3: CONVERT
	// =========================================================================

	switch src.Kind {
	case SourceCSV:
		table, err := csvparser.ToTable(content, spec.Headings, b.settings.CSV)
		if err != nil {
			return nil, &Error{Tag: TagCSV, Err: err}
		}
		return table, nil

	case SourceRSS:
		table, err := feedparser.ToTable(content, spec.Headings)
		if err != nil {
			return nil, &Error{Tag: TagRSS, Err: err}
		}
		return table, nil

	case SourceDirectory:
		return dirscan.ToTable(content, spec.Headings), nil

	case SourceXLSX:
		table, err := xlsxparser.ToTable(content, spec.Headings, b.settings.XLSX)
		if err != nil {
			return nil, &Error{Tag: TagXLSX, Err: err}
		}
		return table, nil
	}

	return nil, &Error{Tag: TagSource, Err: fmt.Errorf("unsupported source kind %s", src.Kind)}
}

// =============================================================================
// EXPORT
// =============================================================================

// Export builds the workbook and writes it.
//
// PARAMETERS:
//   - ctx: Cancels in-flight fetches.
//   - b: The builder. It must hold at least one worksheet.
//   - stdout: Receives the document, followed by a newline, when b.Output
//     is empty.
//
// RETURNS:
//   - The path written, or "" when the document went to stdout.
//   - ErrNoWorksheets, a build *Error, or a write error.
func Export(ctx context.Context, b *Builder, stdout io.Writer) (string, error) {
	if len(b.Worksheets) == 0 {
		return "", ErrNoWorksheets
	}

	wb, err := b.Workbook(ctx)
	if err != nil {
		return "", err
	}

	for _, w := range validation.Inspect(wb) {
		b.logger.Warnf("%s", w.Error())
	}

	if b.Output == "" {
		if _, err := wb.WriteTo(stdout); err != nil {
			return "", fmt.Errorf("failed to write output: %w", err)
		}
		if _, err := io.WriteString(stdout, "\n"); err != nil {
			return "", fmt.Errorf("failed to write output: %w", err)
		}
		return "", nil
	}

	path := utils.ExpandOutputPath(b.Output, time.Now())
	if err := utils.WriteFileAtomic(path, wb); err != nil {
		return "", err
	}

	b.logger.Infof("Wrote %d worksheet(s) to %s", len(wb.Worksheets), path)
	return path, nil
}

// =============================================================================
// PLANS
// =============================================================================

// NewBuilderFromPlan returns a builder holding the worksheets of a plan.
// Worksheets without a title get the default title for their position.
func NewBuilderFromPlan(plan *config.Plan, settings *config.Settings) (*Builder, error) {
	b := NewBuilder(settings)
	b.Output = plan.Output

	for i, pw := range plan.Worksheets {
		kindName, location, err := pw.Source()
		if err != nil {
			return nil, err
		}
		kind, err := ParseSourceKind(kindName)
		if err != nil {
			return nil, err
		}

		title := pw.Title
		if title == "" {
			title = DefaultTitle(i)
		}

		w := NewBuilderWorksheet(title)
		w.Headings = pw.WantHeadings()
		w.Source = NewSource(kind, location)
		b.Add(w)
	}

	return b, nil
}
