package domain

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"killmap.dev/pkg/killmap/internal/controller"
	"killmap.dev/pkg/killmap/internal/metrics"
	m "killmap.dev/pkg/killmap/internal/model"
)

// DefaultBaselineTimeout is allotted to every baseline (mutant 0) run.
const DefaultBaselineTimeout = 60 * time.Second

// MutantTimeout derives the per-mutant timeout from a baseline run time.
// Short tests get a large relative margin, long tests a small one.
func MutantTimeout(baselineMs int64) int64 {
	switch {
	case baselineMs < 25:
		return 200
	case baselineMs < 50:
		return 16 * baselineMs
	case baselineMs < 100:
		return 8 * baselineMs
	case baselineMs < 200:
		return 4 * baselineMs
	default:
		return 2 * baselineMs
	}
}

// ChangesBehaviour reports whether a mutant's outcome differs from the
// baseline's in type or stack trace. Digests and run times are ignored.
func ChangesBehaviour(baseline, mutant m.Outcome) bool {
	return baseline.Type != mutant.Type || baseline.StackTrace != mutant.StackTrace
}

// Plan drives one orchestration.
type Plan struct {
	TriggeringTests []m.TestID
	OtherTests      []m.TestID
	// OnlyTest, when set, skips every other test in both phases.
	OnlyTest *m.TestID
	// MutantsToRun, when non-nil, restricts the mutants run in both phases.
	MutantsToRun []int
	// RunUnchangedMutants runs other tests against every mutant covered by a
	// triggering test, not only those that changed its behaviour.
	RunUnchangedMutants bool
	BaselineTimeout     time.Duration
	// GracePeriod is only used to estimate run time in progress output.
	GracePeriod time.Duration
}

// Report is what the orchestration learnt about the mutants.
type Report struct {
	Covered           []int
	BehaviourChanging []int
	Interesting       []int
}

// Orchestrator schedules the (test, mutant) runs of a Plan.
type Orchestrator interface {
	Execute(ctx context.Context, plan Plan) (Report, error)
}

type orchestrator struct {
	runner  Runner
	cache   *ResultCache
	out     io.Writer
	ui      controller.UI
	metrics *metrics.Metrics
}

// NewOrchestrator constructs an Orchestrator. Every outcome is written to out
// as a record line the moment it is known.
func NewOrchestrator(runner Runner, cache *ResultCache, out io.Writer, ui controller.UI, mx *metrics.Metrics) Orchestrator {
	return &orchestrator{
		runner:  runner,
		cache:   cache,
		out:     out,
		ui:      ui,
		metrics: mx,
	}
}

// testRun is what running one test against its mutants produced.
type testRun struct {
	baseline m.Outcome
	outcomes map[int]m.Outcome
}

func (o *orchestrator) Execute(ctx context.Context, plan Plan) (Report, error) {
	if plan.BaselineTimeout <= 0 {
		plan.BaselineTimeout = DefaultBaselineTimeout
	}

	onlyTest := ""
	if plan.OnlyTest != nil {
		onlyTest = plan.OnlyTest.String()
	}

	slog.Info("Starting orchestration",
		"triggering_tests", len(plan.TriggeringTests),
		"other_tests", len(plan.OtherTests),
		"only_test", onlyTest,
		"mutants_to_run", plan.MutantsToRun)

	total := len(plan.TriggeringTests) + len(plan.OtherTests)
	started := 0

	var allowList map[int]bool
	if plan.MutantsToRun != nil {
		allowList = toSet(plan.MutantsToRun)
	}

	covered := map[int]bool{}
	changing := map[int]bool{}

	for _, test := range plan.TriggeringTests {
		if plan.OnlyTest != nil && test != *plan.OnlyTest {
			continue
		}

		started++
		o.ui.DisplayStartingTest(ctx, started, total, test)

		run, err := o.runTest(ctx, plan, test, allowList)
		if err != nil {
			return Report{}, err
		}

		o.ui.DisplayCoveredMutants(ctx, len(run.baseline.CoveredMutants))

		for _, id := range run.baseline.CoveredMutants {
			covered[id] = true
		}

		for id, outcome := range run.outcomes {
			if ChangesBehaviour(run.baseline, outcome) {
				changing[id] = true
			}
		}
	}

	o.ui.DisplayBehaviourChangingMutants(ctx, len(changing))

	var interesting map[int]bool

	switch {
	case allowList != nil:
		interesting = allowList
	case plan.RunUnchangedMutants:
		interesting = covered
	default:
		interesting = changing
	}

	o.ui.DisplayInterestingMutants(ctx, len(interesting))

	for _, test := range plan.OtherTests {
		if plan.OnlyTest != nil && test != *plan.OnlyTest {
			continue
		}

		started++
		o.ui.DisplayStartingTest(ctx, started, total, test)

		if _, err := o.runTest(ctx, plan, test, interesting); err != nil {
			return Report{}, err
		}
	}

	return Report{
		Covered:           sortedKeys(covered),
		BehaviourChanging: sortedKeys(changing),
		Interesting:       sortedKeys(interesting),
	}, nil
}

// runTest runs the baseline of test, then every covered mutant in allowed
// (every covered mutant when allowed is nil) in ascending order.
func (o *orchestrator) runTest(ctx context.Context, plan Plan, test m.TestID, allowed map[int]bool) (testRun, error) {
	var tally m.Tally

	baseline, err := o.run(ctx, m.NewWorkOrder(test, m.BaselineMutant, plan.BaselineTimeout))
	if err != nil {
		return testRun{}, err
	}

	tally.Add(baseline.Type)

	var mutants []int

	for _, id := range baseline.CoveredMutants {
		if allowed == nil || allowed[id] {
			mutants = append(mutants, id)
		}
	}

	timeoutMs := MutantTimeout(baseline.RunTimeMs)

	o.ui.DisplayTestPlan(ctx, controller.TestPlan{
		Mutants:   len(mutants),
		Covered:   len(baseline.CoveredMutants),
		TimeoutMs: timeoutMs,
		GraceMs:   plan.GracePeriod.Milliseconds(),
	})

	start := time.Now()
	outcomes := make(map[int]m.Outcome, len(mutants))

	for _, id := range mutants {
		outcome, err := o.run(ctx, m.WorkOrder{Test: test, MutantID: id, TimeoutMs: timeoutMs})
		if err != nil {
			return testRun{}, err
		}

		tally.Add(outcome.Type)
		outcomes[id] = outcome
	}

	o.ui.DisplayTestTally(ctx, time.Since(start), tally)

	return testRun{baseline: baseline, outcomes: outcomes}, nil
}

// run answers w from the cache if possible, otherwise from the runner, and
// emits the record immediately.
func (o *orchestrator) run(ctx context.Context, w m.WorkOrder) (m.Outcome, error) {
	source := metrics.SourceCache

	outcome, ok := o.cache.TryGet(w)
	if !ok {
		source = metrics.SourceRun

		var err error

		outcome, err = o.runner.Run(ctx, w)
		if err != nil {
			slog.Error("Failed to run work order", "work_order", w.String(), "error", err)
			return m.Outcome{}, err
		}
	}

	o.metrics.RecordOutcome(outcome.Type, source)

	record := m.Record{WorkOrder: w, Outcome: outcome}
	if _, err := fmt.Fprintln(o.out, record.String()); err != nil {
		return m.Outcome{}, fmt.Errorf("failed to write result: %w", err)
	}

	return outcome, nil
}

func toSet(ids []int) map[int]bool {
	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}

	return set
}

func sortedKeys(set map[int]bool) []int {
	keys := make([]int, 0, len(set))
	for id := range set {
		keys = append(keys, id)
	}

	slices.Sort(keys)

	return keys
}
