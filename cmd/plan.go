// =============================================================================
// Sheet Generator - Plan Command
// =============================================================================
//
// This file defines the 'plan' command, which builds a document from a YAML
// plan file instead of command-line flags.
//
// COMMAND USAGE:
//   sheetgen plan <plan.yaml> [flags]
//
// FLAGS:
//   -o, --output  : Output path; overrides the plan's output key
//   --dry-run     : Build and inspect every worksheet without writing output
//
// PROCESSING PIPELINE:
//   1. Load and validate the plan file
//   2. Turn plan worksheets into builder specifications
//   3. Build, inspect and write the document (or, for a dry run, build and
//      print the inspection report)
//
// =============================================================================

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/sheet-gen/internal/config"
	"github.com/ginjaninja78/sheet-gen/internal/converter"
	"github.com/ginjaninja78/sheet-gen/internal/validation"
)

// newPlanCmd returns the 'plan' command.
func newPlanCmd(a *app) *cobra.Command {
	var (
		output string
		dryRun bool
	)

	planCmd := &cobra.Command{
		Use:   "plan <plan.yaml>",
		Short: "Build a document from a YAML plan file",
		Long: `The plan command reads a YAML file listing the worksheets to build and
where to write the result:

  output: report_{date}.xml
  worksheets:
    - title: Sales
      csv: data/sales.csv
    - title: Docs
      directory: ./docs
      headings: false
    - rss: https://example.com/feed.xml
    - xlsx: budget.xlsx

Each worksheet names exactly one of csv, directory, rss or xlsx. Omitted
titles default to "Worksheet N" and omitted headings default to true.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// =================================================================
			// STEP 1: LOAD PLAN
			// =================================================================

			plan, err := config.LoadPlan(args[0])
			if err != nil {
				return err
			}
			a.log.Debugf("Loaded plan %s with %d worksheet(s)", args[0], len(plan.Worksheets))

			// =================================================================
			// STEP 2: PREPARE BUILDER
			// =================================================================

			b, err := converter.NewBuilderFromPlan(plan, a.settings)
			if err != nil {
				return err
			}
			b.WithLogger(a.log)
			if cmd.Flags().Changed("output") {
				b.Output = output
			}

			// =================================================================
			// STEP 3: BUILD AND WRITE
			// =================================================================

			if dryRun {
				wb, err := b.Workbook(cmd.Context())
				if err != nil {
					return err
				}
				report := validation.FormatWarnings(validation.Inspect(wb))
				fmt.Fprintf(a.stdout, "Built %d worksheet(s).\n", len(wb.Worksheets))
				fmt.Fprintln(a.stdout, strings.TrimSuffix(report, "\n"))
				return nil
			}

			_, err = converter.Export(cmd.Context(), b, a.stdout)
			return err
		},
	}

	planCmd.Flags().StringVarP(&output, "output", "o", "", "Output file (overrides the plan)")
	planCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Build and inspect without writing output")

	return planCmd
}
