package controller

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	m "killmap.dev/pkg/killmap/internal/model"
)

var (
	colorProgress = lipgloss.AdaptiveColor{Light: "245", Dark: "244"}
	colorStarting = lipgloss.AdaptiveColor{Light: "27", Dark: "39"}
	colorDone     = lipgloss.AdaptiveColor{Light: "28", Dark: "46"}
)

// SimpleUI writes line-oriented text through a cobra command's streams.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayStartingTest announces the next test.
func (s *SimpleUI) DisplayStartingTest(ctx context.Context, index, total int, test m.TestID) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.progress(colorStarting, "[starting test %d/%d: %s]", index, total, test)
}

// DisplayTestPlan prints the worst-case cost of the mutants about to run.
func (s *SimpleUI) DisplayTestPlan(ctx context.Context, plan TestPlan) {
	if err := ctx.Err(); err != nil {
		return
	}

	perMutant := plan.TimeoutMs + plan.GraceMs
	total := float64(int64(plan.Mutants)*perMutant) / 1000

	s.progress(colorProgress, "[should take at most: %d mutants (originally %d) * %dms/mutant = %ss]",
		plan.Mutants, plan.Covered, perMutant, formatSeconds(total))
}

// DisplayTestTally prints how one test's runs turned out.
func (s *SimpleUI) DisplayTestTally(ctx context.Context, elapsed time.Duration, tally m.Tally) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.progress(colorProgress, "[actually took %ss; %d/%d/%d/%d pass/fail/timeout/crash]",
		formatSeconds(elapsed.Seconds()), tally.Pass, tally.Fail, tally.Timeout, tally.Crash)
}

// DisplayCoveredMutants prints a baseline's coverage.
func (s *SimpleUI) DisplayCoveredMutants(ctx context.Context, count int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.progress(colorProgress, "[covered %d mutants]", count)
}

// DisplayBehaviourChangingMutants prints the result of the triggering phase.
func (s *SimpleUI) DisplayBehaviourChangingMutants(ctx context.Context, count int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.progress(colorProgress, "[%d mutants change behaviour of triggering tests]", count)
}

// DisplayInterestingMutants prints the size of the pruned mutant set.
func (s *SimpleUI) DisplayInterestingMutants(ctx context.Context, count int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.progress(colorProgress, "[%d mutants are interesting to run passing tests on]", count)
}

// DisplayCompleted marks a successful run.
func (s *SimpleUI) DisplayCompleted(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.progress(colorDone, "Completed successfully!")
}

// DisplayTestIDs prints one test id per line.
func (s *SimpleUI) DisplayTestIDs(ctx context.Context, tests []m.TestID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	out := s.cmd.OutOrStdout()
	for _, test := range tests {
		if _, err := fmt.Fprintln(out, test.String()); err != nil {
			return err
		}
	}

	return nil
}

// DisplaySummary renders a result-log summary as a table or YAML document.
func (s *SimpleUI) DisplaySummary(ctx context.Context, summary m.Summary, format OutputFormat) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch format {
	case FormatYAML:
		data, err := yaml.Marshal(summary)
		if err != nil {
			return fmt.Errorf("failed to encode summary: %w", err)
		}

		_, err = s.cmd.OutOrStdout().Write(data)

		return err
	case FormatTable, "":
		_, err := io.WriteString(s.cmd.OutOrStdout(), renderSummaryTable(summary))
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func renderSummaryTable(summary m.Summary) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Test", "Baseline", "Covered", "Mutants", "Changing", "Pass", "Fail", "Timeout", "Crash"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	for _, test := range summary.Tests {
		baseline := string(test.Baseline)
		if baseline == "" {
			baseline = "-"
		}

		table.Append([]string{
			test.Test,
			baseline,
			strconv.Itoa(test.Covered),
			strconv.Itoa(test.Mutants),
			strconv.Itoa(test.BehaviourChanging),
			strconv.Itoa(test.Outcomes.Pass),
			strconv.Itoa(test.Outcomes.Fail),
			strconv.Itoa(test.Outcomes.Timeout),
			strconv.Itoa(test.Outcomes.Crash),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Tests %d", len(summary.Tests)),
		"",
		"",
		strconv.Itoa(summary.Mutants),
		strconv.Itoa(summary.BehaviourChanging),
		strconv.Itoa(summary.Outcomes.Pass),
		strconv.Itoa(summary.Outcomes.Fail),
		strconv.Itoa(summary.Outcomes.Timeout),
		strconv.Itoa(summary.Outcomes.Crash),
	})

	table.Render()

	if summary.MalformedLines > 0 {
		fmt.Fprintf(&tableBuffer, "\n%d malformed line(s) skipped\n", summary.MalformedLines)
	}

	return tableBuffer.String()
}

func (s *SimpleUI) progress(color lipgloss.TerminalColor, format string, args ...interface{}) {
	w := s.cmd.ErrOrStderr()
	style := lipgloss.NewRenderer(w).NewStyle().Foreground(color)

	_, _ = fmt.Fprintln(w, style.Render(fmt.Sprintf(format, args...)))
}

func formatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', -1, 64)
}
