// =============================================================================
// Sheet Generator - Main Entry Point
// =============================================================================
//
// This is the main entry point for the sheetgen CLI application. It delegates
// command execution to the cmd package.
//
// USAGE:
//   sheetgen -w Title -c data.csv -o out.xml   - Build from worksheet flags
//   sheetgen plan build.yaml                   - Build from a plan file
//   sheetgen edit                              - Interactive editor
//   sheetgen version                           - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Document model, source converters and build pipeline
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/sheet-gen/cmd"
)

func main() {
	cmd.Execute()
}
