package domain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"killmap.dev/pkg/killmap/internal/adapter"
	"killmap.dev/pkg/killmap/internal/controller"
	"killmap.dev/pkg/killmap/internal/metrics"
	m "killmap.dev/pkg/killmap/internal/model"
)

// BuildArgs locates the subject module and where its test binaries go.
type BuildArgs struct {
	SubjectDir  string
	BinariesDir string
	Parallel    int
}

// RunArgs contains the arguments of a full killmap run.
type RunArgs struct {
	BuildArgs

	TriggeringTestsPath string
	TestPackagesPath    string
	PartialRunLogPath   string

	OnlyTest            *m.TestID
	MutantsToRun        []int
	RunUnchangedMutants bool

	BaselineTimeout time.Duration
	GracePeriod     time.Duration
	StartupTimeout  time.Duration
	MetricsFile     string

	// Workers starts the worker processes.
	Workers adapter.WorkerAdapter
	// Output receives one record line per outcome.
	Output io.Writer
}

// ListArgs contains the arguments for listing discoverable tests.
type ListArgs struct {
	BuildArgs

	TestPackagesPath string
}

// ViewArgs contains the arguments for summarizing a result log.
type ViewArgs struct {
	ResultLogPath string
	Format        controller.OutputFormat
}

// ServeArgs contains the arguments of a worker process.
type ServeArgs struct {
	BinariesDir string
	EnvFile     string
	OutputLimit int
	In          io.Reader
	Out         io.Writer
}

// Workflow is the entry point of every killmap command.
type Workflow interface {
	Run(ctx context.Context, args RunArgs) error
	List(ctx context.Context, args ListArgs) error
	View(ctx context.Context, args ViewArgs) error
	Serve(ctx context.Context, args ServeArgs) error
}

type workflow struct {
	adapter.InputAdapter
	adapter.TestBinaryAdapter
	adapter.TestRunnerAdapter
	controller.UI
}

// NewWorkflow creates a Workflow with the provided dependencies.
func NewWorkflow(
	inputs adapter.InputAdapter,
	binaries adapter.TestBinaryAdapter,
	testRunner adapter.TestRunnerAdapter,
	ui controller.UI,
) Workflow {
	return &workflow{
		InputAdapter:      inputs,
		TestBinaryAdapter: binaries,
		TestRunnerAdapter: testRunner,
		UI:                ui,
	}
}

func (w *workflow) Run(ctx context.Context, args RunArgs) (err error) {
	triggering, err := w.ReadTriggeringTests(args.TriggeringTestsPath)
	if err != nil {
		return fmt.Errorf("load triggering tests: %w", err)
	}

	packages, err := w.ReadTestPackages(args.TestPackagesPath)
	if err != nil {
		return fmt.Errorf("load test packages: %w", err)
	}

	buildPackages := slices.Clone(packages)
	for _, test := range triggering {
		buildPackages = append(buildPackages, test.Package)
	}

	manifest, err := w.BuildAll(ctx, args.SubjectDir, buildPackages, args.BinariesDir, args.Parallel)
	if err != nil {
		return fmt.Errorf("build test binaries: %w", err)
	}

	discovered, err := w.discoverTests(ctx, manifest, buildPackages)
	if err != nil {
		return err
	}

	if err := checkKnownTests(discovered, triggering, args.OnlyTest); err != nil {
		return err
	}

	logFile, err := w.OpenResultLog(args.PartialRunLogPath)
	if err != nil {
		return fmt.Errorf("open partial run log: %w", err)
	}
	defer logFile.Close()

	mx := metrics.New()
	runner := NewRemoteRunner(args.Workers, args.GracePeriod, args.StartupTimeout, mx)

	defer func() {
		if closeErr := runner.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close runner: %w", closeErr))
		}
	}()

	orchestrator := NewOrchestrator(runner, NewResultCache(logFile), args.Output, w.UI, mx)

	report, err := orchestrator.Execute(ctx, Plan{
		TriggeringTests:     triggering,
		OtherTests:          NonTriggeringTests(inPackages(discovered, packages), triggering),
		OnlyTest:            args.OnlyTest,
		MutantsToRun:        args.MutantsToRun,
		RunUnchangedMutants: args.RunUnchangedMutants,
		BaselineTimeout:     args.BaselineTimeout,
		GracePeriod:         runner.gracePeriod,
	})
	if err != nil {
		return fmt.Errorf("run tests: %w", err)
	}

	slog.Info("Run finished",
		"covered", len(report.Covered),
		"behaviour_changing", len(report.BehaviourChanging),
		"interesting", len(report.Interesting))

	if err := mx.WriteTextfile(args.MetricsFile); err != nil {
		return err
	}

	if err := runner.Close(); err != nil {
		return fmt.Errorf("close runner: %w", err)
	}

	w.DisplayCompleted(ctx)

	return nil
}

func (w *workflow) List(ctx context.Context, args ListArgs) error {
	packages, err := w.ReadTestPackages(args.TestPackagesPath)
	if err != nil {
		return fmt.Errorf("load test packages: %w", err)
	}

	manifest, err := w.BuildAll(ctx, args.SubjectDir, packages, args.BinariesDir, args.Parallel)
	if err != nil {
		return fmt.Errorf("build test binaries: %w", err)
	}

	tests, err := w.discoverTests(ctx, manifest, packages)
	if err != nil {
		return err
	}

	return w.DisplayTestIDs(ctx, tests)
}

func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	logFile, err := w.OpenResultLog(args.ResultLogPath)
	if err != nil {
		return fmt.Errorf("open result log: %w", err)
	}
	defer logFile.Close()

	summary, err := Summarize(logFile)
	if err != nil {
		return err
	}

	return w.DisplaySummary(ctx, summary, args.Format)
}

func (w *workflow) Serve(ctx context.Context, args ServeArgs) error {
	env, err := adapter.LoadEnvFile(args.EnvFile)
	if err != nil {
		return fmt.Errorf("load subject env: %w", err)
	}

	manifest, err := w.LoadManifest(args.BinariesDir)
	if err != nil {
		return fmt.Errorf("load test binaries: %w", err)
	}

	executor := NewExecutor(w.TestRunnerAdapter, manifest, env, args.OutputLimit)

	return NewWorkerServer(executor).Serve(ctx, args.In, args.Out)
}

// discoverTests lists the tests of every package, sorted by id.
func (w *workflow) discoverTests(ctx context.Context, manifest m.BinaryManifest, packages []string) ([]m.TestID, error) {
	var tests []m.TestID

	seen := map[string]bool{}

	for _, pkg := range packages {
		if seen[pkg] {
			continue
		}

		seen[pkg] = true

		binary, ok := manifest.Lookup(pkg)
		if !ok {
			return nil, fmt.Errorf("no test binary built for %s", pkg)
		}

		names, err := w.TestBinaryAdapter.List(ctx, binary)
		if err != nil {
			return nil, fmt.Errorf("list tests of %s: %w", pkg, err)
		}

		for _, name := range names {
			test, err := m.NewTestID(pkg, name)
			if err != nil {
				slog.Warn("Skipping test with unusable name", "package", pkg, "name", name, "error", err)
				continue
			}

			tests = append(tests, test)
		}
	}

	slices.SortFunc(tests, m.TestID.Compare)

	return tests, nil
}

// checkKnownTests rejects triggering tests and an only-test filter that no
// test binary defines. Subtests are matched by their top-level test.
func checkKnownTests(discovered, triggering []m.TestID, onlyTest *m.TestID) error {
	known := make(map[m.TestID]bool, len(discovered))
	for _, test := range discovered {
		known[test] = true
	}

	wanted := slices.Clone(triggering)
	if onlyTest != nil {
		wanted = append(wanted, *onlyTest)
	}

	for _, test := range wanted {
		top, _, _ := strings.Cut(test.Name, "/")
		if !known[m.TestID{Package: test.Package, Name: top}] {
			slog.Error("Unknown test", "test", test.String())
			return m.UnknownTestError(test)
		}
	}

	return nil
}

// inPackages keeps the tests that belong to one of packages.
func inPackages(tests []m.TestID, packages []string) []m.TestID {
	var kept []m.TestID

	for _, test := range tests {
		if slices.Contains(packages, test.Package) {
			kept = append(kept, test)
		}
	}

	return kept
}

// NonTriggeringTests returns discovered minus triggering, keeping the order of discovered.
func NonTriggeringTests(discovered, triggering []m.TestID) []m.TestID {
	exclude := make(map[m.TestID]bool, len(triggering))
	for _, test := range triggering {
		exclude[test] = true
	}

	var others []m.TestID

	for _, test := range discovered {
		if !exclude[test] {
			others = append(others, test)
		}
	}

	return others
}
