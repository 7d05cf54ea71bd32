package domain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/acarl005/stripansi"

	"killmap.dev/pkg/killmap/internal/adapter"
	m "killmap.dev/pkg/killmap/internal/model"
	"killmap.dev/pkg/killmap/pkg"
)

var (
	// testTiming matches the elapsed time go test appends to result lines.
	testTiming = regexp.MustCompile(`^(\s*--- (?:PASS|FAIL|SKIP): \S+) \(\d+(?:\.\d+)?s\)`)
	// hexAddress matches pointers and pc offsets in panic traces.
	hexAddress = regexp.MustCompile(`0x[0-9a-f]+`)
	// goroutineHeader matches the goroutine id and wait time of a trace header.
	goroutineHeader = regexp.MustCompile(`goroutine \d+ \[([a-zA-Z ]+)(?:, \d+ minutes)?\]`)
)

// Executor runs a single work order in a fresh process and classifies it.
type Executor interface {
	Execute(ctx context.Context, w m.WorkOrder) m.Outcome
}

type executor struct {
	runner      adapter.TestRunnerAdapter
	manifest    m.BinaryManifest
	env         []string
	outputLimit int
}

// NewExecutor constructs an Executor. env is appended to the worker's own
// environment for every test process; outputLimit bounds the failure text kept.
func NewExecutor(runner adapter.TestRunnerAdapter, manifest m.BinaryManifest, env []string, outputLimit int) Executor {
	return &executor{
		runner:      runner,
		manifest:    manifest,
		env:         env,
		outputLimit: outputLimit,
	}
}

// RunPattern builds a -test.run pattern matching exactly one test or subtest.
func RunPattern(name string) string {
	parts := strings.Split(name, "/")
	for i, part := range parts {
		parts[i] = "^" + regexp.QuoteMeta(part) + "$"
	}

	return strings.Join(parts, "/")
}

// Execute never returns an error: anything that keeps the test from running
// is reported as a crash.
func (e *executor) Execute(ctx context.Context, w m.WorkOrder) m.Outcome {
	binary, ok := e.manifest.Lookup(w.Test.Package)
	if !ok {
		slog.Error("No test binary for package", "package", w.Test.Package, "work_order", w.String())
		return m.CrashOutcome()
	}

	env := e.environment(w)

	var coveragePath string

	if w.IsBaseline() {
		path, err := createCoverageFile()
		if err != nil {
			slog.Error("Failed to create coverage file", "work_order", w.String(), "error", err)
			return m.CrashOutcome()
		}
		defer os.Remove(path)

		coveragePath = path
		env = append(env, m.CoverageEnv+"="+coveragePath)
	}

	digest := pkg.NewDigestWriter()
	tail := pkg.NewTailBuffer(e.outputLimit)
	output := pkg.NewLineRewriter(io.MultiWriter(digest, tail), scrubTestTiming)

	runCtx, cancel := context.WithTimeout(ctx, w.Timeout())
	defer cancel()

	result, err := e.runner.RunTest(runCtx, adapter.RunSpec{
		Binary: binary.Binary,
		Args:   []string{"-test.run", RunPattern(w.Test.Name)},
		Dir:    binary.Dir,
		Env:    env,
		Output: output,
	})
	if err != nil {
		slog.Error("Failed to run test", "work_order", w.String(), "error", err)
		return m.CrashOutcome()
	}

	if result.TimedOut {
		return m.TimeoutOutcome(w)
	}

	if err := output.Flush(); err != nil {
		slog.Error("Failed to capture test output", "work_order", w.String(), "error", err)
		return m.CrashOutcome()
	}

	runTimeMs := result.Duration.Milliseconds()

	var outcome m.Outcome
	if result.ExitCode == 0 {
		outcome = m.PassOutcome(runTimeMs, digest.Sum())
	} else {
		outcome = m.FailOutcome(runTimeMs, digest.Sum(), failureText(tail.String()))
	}

	if coveragePath != "" {
		covered, err := readCoverageFile(coveragePath)
		if err != nil {
			slog.Error("Failed to read coverage file", "work_order", w.String(), "error", err)
			return m.CrashOutcome()
		}

		if len(covered) > 0 {
			outcome = outcome.WithCoveredMutants(covered)
		}
	}

	return outcome
}

func (e *executor) environment(w m.WorkOrder) []string {
	env := os.Environ()
	env = append(env, e.env...)

	return append(env, m.MutantEnv+"="+strconv.Itoa(w.MutantID))
}

func scrubTestTiming(line []byte) []byte {
	return testTiming.ReplaceAll(line, []byte("$1"))
}

// failureText turns the tail of a failing test's output into a stack trace
// that stays equal across runs of the same failure.
func failureText(tail string) string {
	text := stripansi.Strip(tail)
	text = goroutineHeader.ReplaceAllString(text, "goroutine [$1]")
	text = hexAddress.ReplaceAllString(text, "0x?")

	return m.NormalizeStackTrace(text)
}

func createCoverageFile() (string, error) {
	f, err := os.CreateTemp("", "killmap-coverage-*")
	if err != nil {
		return "", err
	}

	path := f.Name()

	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", err
	}

	return path, nil
}

func readCoverageFile(path string) ([]int, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	fields := strings.Fields(string(data))
	ids := make([]int, 0, len(fields))

	for _, field := range fields {
		id, err := strconv.Atoi(field)
		if err != nil || id <= m.BaselineMutant {
			return nil, fmt.Errorf("invalid mutant id %q in coverage file", field)
		}

		ids = append(ids, id)
	}

	return ids, nil
}
