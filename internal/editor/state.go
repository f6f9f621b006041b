// =============================================================================
// Sheet Generator - Editor State
// =============================================================================
//
// This module holds the state behind the interactive editor: the list of
// worksheet specifications being assembled, the output path and the status of
// the last export.
//
// MESSAGE FLOW:
//   The state is never changed directly by the front end. Instead, while the
//   front end draws the current state it queues messages (Queue). Once the
//   pass is finished the queued messages are applied in order (Flush). A
//   command issued while drawing row 3 therefore never shifts the rows still
//   being drawn.
//
//     draw pass ──Queue(msg)──▶ pending ──Flush()──▶ Apply(msg) ──▶ state
//
// =============================================================================

package editor

import (
	"context"
	"fmt"
	"io"

	"github.com/ginjaninja78/sheet-gen/internal/config"
	"github.com/ginjaninja78/sheet-gen/internal/converter"
)

// =============================================================================
// MESSAGES
// =============================================================================

// Msg is a state change request.
type Msg interface {
	isMsg()
}

// AddWorksheet appends a new CSV worksheet with an empty path.
type AddWorksheet struct{}

// DeleteWorksheet removes the worksheet at Index.
type DeleteWorksheet struct{ Index int }

// ClearWorksheets removes every worksheet. The output path is kept.
type ClearWorksheets struct{}

// MoveUp swaps the worksheet at Index with the one before it.
type MoveUp struct{ Index int }

// MoveDown swaps the worksheet at Index with the one after it.
type MoveDown struct{ Index int }

// SetTitle renames the worksheet at Index.
type SetTitle struct {
	Index int
	Title string
}

// SetHeadings turns the heading row of the worksheet at Index on or off.
type SetHeadings struct {
	Index int
	On    bool
}

// SetSourceKind changes the source kind of the worksheet at Index. The
// location is kept.
type SetSourceKind struct {
	Index int
	Kind  converter.SourceKind
}

// SetSourcePath changes the source location of the worksheet at Index. The
// kind is kept.
type SetSourcePath struct {
	Index int
	Path  string
}

// SetOutput sets the output path.
type SetOutput struct{ Path string }

// Exported records the outcome of an export.
type Exported struct {
	Path string
	Err  error
}

func (AddWorksheet) isMsg()    {}
func (DeleteWorksheet) isMsg() {}
func (ClearWorksheets) isMsg() {}
func (MoveUp) isMsg()          {}
func (MoveDown) isMsg()        {}
func (SetTitle) isMsg()        {}
func (SetHeadings) isMsg()     {}
func (SetSourceKind) isMsg()   {}
func (SetSourcePath) isMsg()   {}
func (SetOutput) isMsg()       {}
func (Exported) isMsg()        {}

// =============================================================================
// STATE
// =============================================================================

// State is the editor model.
type State struct {
	Worksheets []converter.BuilderWorksheet
	Output     string

	// Status describes the last export, or is empty before the first one.
	Status string

	// Failed is true when the last export failed.
	Failed bool

	pending []Msg
}

// New returns an empty state writing to output.
func New(output string) *State {
	return &State{Output: output}
}

// Queue records msg for the next Flush.
func (s *State) Queue(msg Msg) {
	s.pending = append(s.pending, msg)
}

// Pending reports the number of queued messages.
func (s *State) Pending() int {
	return len(s.pending)
}

// Flush applies queued messages in order and clears the queue. Messages that
// fail do not stop the others; their errors are returned in order.
func (s *State) Flush() []error {
	msgs := s.pending
	s.pending = nil

	var errs []error
	for _, m := range msgs {
		if err := s.Apply(m); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// Apply performs msg immediately. An out-of-range index is an error and
// leaves the state unchanged. Moving the first worksheet up or the last one
// down does nothing.
func (s *State) Apply(msg Msg) error {
	switch m := msg.(type) {
	case AddWorksheet:
		w := converter.NewBuilderWorksheet(converter.DefaultTitle(len(s.Worksheets)))
		w.Source = converter.NewSource(converter.SourceCSV, "")
		s.Worksheets = append(s.Worksheets, w)

	case DeleteWorksheet:
		if err := s.check(m.Index); err != nil {
			return err
		}
		s.Worksheets = append(s.Worksheets[:m.Index], s.Worksheets[m.Index+1:]...)

	case ClearWorksheets:
		s.Worksheets = nil

	case MoveUp:
		if err := s.check(m.Index); err != nil {
			return err
		}
		if m.Index > 0 {
			s.swap(m.Index, m.Index-1)
		}

	case MoveDown:
		if err := s.check(m.Index); err != nil {
			return err
		}
		if m.Index < len(s.Worksheets)-1 {
			s.swap(m.Index, m.Index+1)
		}

	case SetTitle:
		if err := s.check(m.Index); err != nil {
			return err
		}
		s.Worksheets[m.Index].Title = m.Title

	case SetHeadings:
		if err := s.check(m.Index); err != nil {
			return err
		}
		s.Worksheets[m.Index].Headings = m.On

	case SetSourceKind:
		if err := s.check(m.Index); err != nil {
			return err
		}
		src := s.source(m.Index)
		src.Kind = m.Kind

	case SetSourcePath:
		if err := s.check(m.Index); err != nil {
			return err
		}
		src := s.source(m.Index)
		src.Location = m.Path

	case SetOutput:
		s.Output = m.Path

	case Exported:
		s.Failed = m.Err != nil
		switch {
		case m.Err != nil:
			s.Status = "Export failed: " + m.Err.Error()
		case m.Path == "":
			s.Status = "Exported to standard output."
		default:
			s.Status = "Exported to " + m.Path + "."
		}

	default:
		return fmt.Errorf("unknown message %T", msg)
	}

	return nil
}

// Builder returns a builder for the current worksheets and output path.
func (s *State) Builder(settings *config.Settings) *converter.Builder {
	b := converter.NewBuilder(settings)
	b.Output = s.Output
	for _, w := range s.Worksheets {
		if w.Source != nil {
			src := *w.Source
			w.Source = &src
		}
		b.Add(w)
	}
	return b
}

// Export builds and writes the document, then records the outcome in the
// state's status.
func (s *State) Export(ctx context.Context, b *converter.Builder, stdout io.Writer) error {
	path, err := converter.Export(ctx, b, stdout)
	s.Apply(Exported{Path: path, Err: err})
	return err
}

// check validates a 0-based index; messages count from 1.
func (s *State) check(i int) error {
	if i < 0 || i >= len(s.Worksheets) {
		return fmt.Errorf("no worksheet at position %d (have %d)", i+1, len(s.Worksheets))
	}
	return nil
}

func (s *State) swap(i, j int) {
	s.Worksheets[i], s.Worksheets[j] = s.Worksheets[j], s.Worksheets[i]
}

// source returns the source of the worksheet at i, creating an empty CSV
// source if none is set.
func (s *State) source(i int) *converter.Source {
	if s.Worksheets[i].Source == nil {
		s.Worksheets[i].Source = converter.NewSource(converter.SourceCSV, "")
	}
	return s.Worksheets[i].Source
}
