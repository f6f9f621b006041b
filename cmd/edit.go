package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/sheet-gen/internal/converter"
	"github.com/ginjaninja78/sheet-gen/internal/editor"
)

const editHelp = `Commands (N is a worksheet number as listed):
  add                       add a CSV worksheet
  rm N                      remove worksheet N
  clear                     remove every worksheet
  up N | down N             move worksheet N
  title N <text>            rename worksheet N
  kind N csv|dir|rss|xlsx   change the source kind, keeping the path
  src N <path or URL>       change the source path, keeping the kind
  headings N on|off         toggle the heading row
  out [path]                set the output path (none: standard output)
  ls                        list worksheets
  export                    build and write the document
  help                      show this text
  quit                      leave the editor`

// newEditCmd returns the 'edit' command.
func newEditCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit [output]",
		Short: "Assemble worksheets interactively",
		Long: `The edit command starts a line-oriented editor for assembling worksheets,
reordering them and exporting the document, as an alternative to writing out
worksheet flags.

` + editHelp,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := ""
			if len(args) == 1 {
				output = args[0]
			}
			return a.runEditor(cmd.Context(), editor.New(output))
		},
	}
}

// editAction is one parsed input line.
type editAction struct {
	msgs   []editor.Msg
	export bool
	list   bool
	help   bool
	quit   bool
}

// runEditor reads commands until quit or end of input. Each line's messages
// are queued while the list is on screen and applied before the next listing.
func (a *app) runEditor(ctx context.Context, st *editor.State) error {
	scanner := bufio.NewScanner(a.stdin)
	renderState(a.stdout, st)

	for {
		fmt.Fprint(a.stdout, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(a.stdout)
			return scanner.Err()
		}

		act, err := parseEditLine(scanner.Text())
		if err != nil {
			fmt.Fprintf(a.stdout, "error: %v\n", err)
			continue
		}
		if act.quit {
			return nil
		}
		if act.help {
			fmt.Fprintln(a.stdout, editHelp)
			continue
		}

		for _, m := range act.msgs {
			st.Queue(m)
		}
		for _, err := range st.Flush() {
			fmt.Fprintf(a.stdout, "error: %v\n", err)
		}

		if act.export {
			b := st.Builder(a.settings).WithLogger(a.log)
			if err := st.Export(ctx, b, a.stdout); err != nil {
				a.log.Debugf("Export failed: %v", err)
			}
		}

		if act.list || act.export || len(act.msgs) > 0 {
			renderState(a.stdout, st)
		}
	}
}

func parseEditLine(line string) (editAction, error) {
	verb, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(verb) {
	case "":
		return editAction{}, nil
	case "add":
		return editAction{msgs: []editor.Msg{editor.AddWorksheet{}}}, nil
	case "clear":
		return editAction{msgs: []editor.Msg{editor.ClearWorksheets{}}}, nil
	case "ls", "list":
		return editAction{list: true}, nil
	case "export":
		return editAction{export: true}, nil
	case "help", "?":
		return editAction{help: true}, nil
	case "quit", "exit", "q":
		return editAction{quit: true}, nil
	case "out":
		return editAction{msgs: []editor.Msg{editor.SetOutput{Path: rest}}}, nil
	}

	idx, arg, err := parseIndex(rest)
	if err != nil {
		return editAction{}, fmt.Errorf("%s: %w", verb, err)
	}

	var msg editor.Msg
	switch strings.ToLower(verb) {
	case "rm", "del", "delete":
		msg = editor.DeleteWorksheet{Index: idx}
	case "up":
		msg = editor.MoveUp{Index: idx}
	case "down":
		msg = editor.MoveDown{Index: idx}
	case "title":
		msg = editor.SetTitle{Index: idx, Title: arg}
	case "src", "source":
		msg = editor.SetSourcePath{Index: idx, Path: arg}
	case "kind":
		kind, err := converter.ParseSourceKind(arg)
		if err != nil {
			return editAction{}, err
		}
		msg = editor.SetSourceKind{Index: idx, Kind: kind}
	case "headings":
		on, err := parseOnOff(arg)
		if err != nil {
			return editAction{}, err
		}
		msg = editor.SetHeadings{Index: idx, On: on}
	default:
		return editAction{}, fmt.Errorf("unknown command %q (try help)", verb)
	}

	return editAction{msgs: []editor.Msg{msg}}, nil
}

// parseIndex reads a 1-based worksheet number and returns it 0-based along
// with the remaining text.
func parseIndex(s string) (int, string, error) {
	num, rest, _ := strings.Cut(s, " ")
	n, err := strconv.Atoi(num)
	if err != nil || n < 1 {
		return 0, "", fmt.Errorf("expected a worksheet number, got %q", num)
	}
	return n - 1, strings.TrimSpace(rest), nil
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "yes", "true":
		return true, nil
	case "off", "no", "false":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", s)
}

func renderState(w io.Writer, st *editor.State) {
	if len(st.Worksheets) == 0 {
		fmt.Fprintln(w, "No worksheets. Type 'add' to create one or 'help' for commands.")
	}
	for i, ws := range st.Worksheets {
		kind, loc := "-", ""
		if ws.Source != nil {
			kind, loc = ws.Source.Kind.String(), ws.Source.Location
		}
		headings := "on"
		if !ws.Headings {
			headings = "off"
		}
		fmt.Fprintf(w, "%2d. %-20q %-9s headings %-3s %s\n", i+1, ws.Title, kind, headings, loc)
	}

	out := st.Output
	if out == "" {
		out = "(standard output)"
	}
	fmt.Fprintf(w, "Output: %s\n", out)
	if st.Status != "" {
		fmt.Fprintln(w, st.Status)
	}
}
