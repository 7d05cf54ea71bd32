package domain

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	m "killmap.dev/pkg/killmap/internal/model"
)

// Summarize aggregates a result log per test, in order of first appearance.
// Malformed lines are counted and skipped.
func Summarize(r io.Reader) (m.Summary, error) {
	var (
		summary  m.Summary
		index    = map[m.TestID]int{}
		baseline = map[m.TestID]m.Outcome{}
		mutants  = map[int]bool{}
		changing = map[int]bool{}
	)

	reader := bufio.NewReader(r)

	for {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return m.Summary{}, fmt.Errorf("failed to read result log: %w", err)
		}

		if text := strings.TrimRight(line, "\r\n"); text != "" {
			record, parseErr := m.ParseRecord(text)
			if parseErr != nil {
				summary.MalformedLines++
			} else {
				test := record.WorkOrder.Test

				i, ok := index[test]
				if !ok {
					i = len(summary.Tests)
					index[test] = i
					summary.Tests = append(summary.Tests, m.TestSummary{Test: test.String()})
				}

				entry := &summary.Tests[i]
				entry.Outcomes.Add(record.Outcome.Type)

				if record.WorkOrder.IsBaseline() {
					entry.Baseline = record.Outcome.Type
					entry.Covered = len(record.Outcome.CoveredMutants)
					baseline[test] = record.Outcome
				} else {
					entry.Mutants++
					mutants[record.WorkOrder.MutantID] = true

					if base, ok := baseline[test]; ok && ChangesBehaviour(base, record.Outcome) {
						entry.BehaviourChanging++
						changing[record.WorkOrder.MutantID] = true
					}
				}
			}
		}

		if err != nil {
			break
		}
	}

	for _, test := range summary.Tests {
		summary.Outcomes.Merge(test.Outcomes)
	}

	summary.Mutants = len(mutants)
	summary.BehaviourChanging = len(changing)

	return summary, nil
}
