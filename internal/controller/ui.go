// Package controller renders progress and summaries for the killmap commands.
package controller

import (
	"context"
	"fmt"
	"time"

	m "killmap.dev/pkg/killmap/internal/model"
)

// OutputFormat selects how a summary is rendered.
type OutputFormat string

// Supported output formats.
const (
	FormatTable OutputFormat = "table"
	FormatYAML  OutputFormat = "yaml"
)

// ParseOutputFormat validates a --format value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case FormatTable, FormatYAML:
		return OutputFormat(s), nil
	}

	return "", fmt.Errorf("unknown output format %q (want %q or %q)", s, FormatTable, FormatYAML)
}

// TestPlan describes the mutants about to be run against one test.
type TestPlan struct {
	Mutants   int
	Covered   int
	TimeoutMs int64
	// GraceMs is the slack allowed on top of the timeout before a worker is
	// declared hung.
	GraceMs int64
}

// UI receives progress of a run and renders results. Progress goes to the
// diagnostic stream; listings and summaries go to the primary one.
type UI interface {
	DisplayStartingTest(ctx context.Context, index, total int, test m.TestID)
	DisplayTestPlan(ctx context.Context, plan TestPlan)
	DisplayTestTally(ctx context.Context, elapsed time.Duration, tally m.Tally)
	DisplayCoveredMutants(ctx context.Context, count int)
	DisplayBehaviourChangingMutants(ctx context.Context, count int)
	DisplayInterestingMutants(ctx context.Context, count int)
	DisplayCompleted(ctx context.Context)
	DisplayTestIDs(ctx context.Context, tests []m.TestID) error
	DisplaySummary(ctx context.Context, summary m.Summary, format OutputFormat) error
}
