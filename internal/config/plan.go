package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// PLAN FILES
// =============================================================================
//
// A plan file describes a whole build in YAML, as an alternative to spelling
// it out with command-line flags:
//
//   output: report_{date}.xml
//   worksheets:
//     - title: Sales
//       csv: data/sales.csv
//     - title: Files
//       directory: ./docs
//       headings: false
//
// Each worksheet names exactly one source key.

// ErrInvalidPlan is wrapped by every plan validation failure.
var ErrInvalidPlan = errors.New("invalid plan")

// Plan is a decoded plan file.
type Plan struct {
	Output     string          `yaml:"output"`
	Worksheets []PlanWorksheet `yaml:"worksheets"`
}

// PlanWorksheet describes one worksheet of a plan.
type PlanWorksheet struct {
	Title string `yaml:"title"`

	// Headings defaults to true when omitted.
	Headings *bool `yaml:"headings"`

	CSV       string `yaml:"csv"`
	Directory string `yaml:"directory"`
	RSS       string `yaml:"rss"`
	XLSX      string `yaml:"xlsx"`
}

// WantHeadings reports whether the worksheet should carry a heading row.
func (w PlanWorksheet) WantHeadings() bool {
	return w.Headings == nil || *w.Headings
}

// Source returns the single source key set on the worksheet and its value.
func (w PlanWorksheet) Source() (kind, location string, err error) {
	set := 0
	for _, s := range []struct{ kind, value string }{
		{"csv", w.CSV},
		{"directory", w.Directory},
		{"rss", w.RSS},
		{"xlsx", w.XLSX},
	} {
		if s.value != "" {
			set++
			kind, location = s.kind, s.value
		}
	}
	switch set {
	case 0:
		return "", "", fmt.Errorf("%w: worksheet %q has no source", ErrInvalidPlan, w.Title)
	case 1:
		return kind, location, nil
	default:
		return "", "", fmt.Errorf("%w: worksheet %q names %d sources", ErrInvalidPlan, w.Title, set)
	}
}

// LoadPlan reads and validates a plan file.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan: %w", err)
	}
	return ParsePlan(data)
}

// ParsePlan decodes and validates plan YAML.
func ParsePlan(data []byte) (*Plan, error) {
	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse plan: %w", err)
	}

	if len(p.Worksheets) == 0 {
		return nil, fmt.Errorf("%w: no worksheets", ErrInvalidPlan)
	}
	for i, w := range p.Worksheets {
		if _, _, err := w.Source(); err != nil {
			return nil, fmt.Errorf("worksheet %d: %w", i+1, err)
		}
	}

	return &p, nil
}
