package domain

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"killmap.dev/pkg/killmap/internal/adapter"
	adaptermocks "killmap.dev/pkg/killmap/internal/adapter/mocks"
	m "killmap.dev/pkg/killmap/internal/model"
)

const subjectPackage = "example.com/subject"

// subjectState is shared by the helper subject tests to detect leaks between runs.
var subjectState []string

// TestHelperSubjectStateful fails if it is ever run twice in the same process.
func TestHelperSubjectStateful(t *testing.T) {
	if os.Getenv(m.MutantEnv) == "" {
		t.Skip("subject test, only run by the executor tests")
	}

	subjectState = append(subjectState, "ran")
	if len(subjectState) > 1 {
		t.Fatalf("state leaked from a previous run: %v", subjectState)
	}
}

// TestHelperSubjectMutated covers mutants 2, 5 and 8; mutant 5 breaks it.
func TestHelperSubjectMutated(t *testing.T) {
	mutant := os.Getenv(m.MutantEnv)
	if mutant == "" {
		t.Skip("subject test, only run by the executor tests")
	}

	if path := os.Getenv(m.CoverageEnv); path != "" {
		require.NoError(t, os.WriteFile(path, []byte("8 2\n5 2\n"), 0o600))
	}

	fmt.Println("computing 6 / 3")

	if mutant == "5" {
		t.Fatalf("expected 2,\n\tgot \x1b[31m3\x1b[0m")
	}
}

// TestHelperSubjectHangs never finishes on its own.
func TestHelperSubjectHangs(t *testing.T) {
	if os.Getenv(m.MutantEnv) == "" {
		t.Skip("subject test, only run by the executor tests")
	}

	time.Sleep(time.Hour)
}

// TestHelperSubjectEnv prints the value injected from the subject env file.
func TestHelperSubjectEnv(t *testing.T) {
	if os.Getenv(m.MutantEnv) == "" {
		t.Skip("subject test, only run by the executor tests")
	}

	if os.Getenv("SUBJECT_MODE") != "strict" {
		t.Fatal("subject env missing")
	}
}

func subjectExecutor(t *testing.T, env ...string) Executor {
	t.Helper()

	if testing.Short() {
		t.Skip("starts test processes")
	}

	wd, err := os.Getwd()
	require.NoError(t, err)

	manifest := m.BinaryManifest{Binaries: []m.TestBinary{
		{Package: subjectPackage, Binary: os.Args[0], Dir: wd},
	}}

	return NewExecutor(adapter.NewLocalTestRunnerAdapter(), manifest, env, 0)
}

func subjectOrder(name string, mutant int, timeout time.Duration) m.WorkOrder {
	return m.NewWorkOrder(m.TestID{Package: subjectPackage, Name: name}, mutant, timeout)
}

func TestExecutor_IsolatesRuns(t *testing.T) {
	executor := subjectExecutor(t)
	w := subjectOrder("TestHelperSubjectStateful", 1, 30*time.Second)

	first := executor.Execute(context.Background(), w)
	second := executor.Execute(context.Background(), w)

	assert.Equal(t, m.Pass, first.Type)
	assert.Equal(t, m.Pass, second.Type)
	assert.Equal(t, first.Digest, second.Digest)
}

func TestExecutor_BaselineReportsCoverage(t *testing.T) {
	executor := subjectExecutor(t)

	outcome := executor.Execute(context.Background(), subjectOrder("TestHelperSubjectMutated", 0, 30*time.Second))

	assert.Equal(t, m.Pass, outcome.Type)
	assert.Equal(t, []int{2, 5, 8}, outcome.CoveredMutants)
	assert.GreaterOrEqual(t, outcome.RunTimeMs, int64(0))
	assert.Len(t, outcome.Digest, 40)
}

func TestExecutor_MutantRunsHaveNoCoverage(t *testing.T) {
	executor := subjectExecutor(t)

	outcome := executor.Execute(context.Background(), subjectOrder("TestHelperSubjectMutated", 2, 30*time.Second))

	assert.Equal(t, m.Pass, outcome.Type)
	assert.Empty(t, outcome.CoveredMutants)
}

func TestExecutor_FailureIsDeterministic(t *testing.T) {
	executor := subjectExecutor(t)
	w := subjectOrder("TestHelperSubjectMutated", 5, 30*time.Second)

	first := executor.Execute(context.Background(), w)
	second := executor.Execute(context.Background(), w)

	require.Equal(t, m.Fail, first.Type)
	assert.Contains(t, first.StackTrace, "expected 2, got 3")
	assert.NotContains(t, first.StackTrace, "\x1b")
	assert.NotContains(t, first.StackTrace, "\n")
	assert.Equal(t, first.StackTrace, second.StackTrace)
	assert.Equal(t, first.Digest, second.Digest)
	assert.True(t, ChangesBehaviour(executor.Execute(context.Background(), subjectOrder("TestHelperSubjectMutated", 2, 30*time.Second)), first))
}

func TestExecutor_Timeout(t *testing.T) {
	executor := subjectExecutor(t)
	w := subjectOrder("TestHelperSubjectHangs", 1, 300*time.Millisecond)

	start := time.Now()
	outcome := executor.Execute(context.Background(), w)

	assert.Equal(t, m.TimeoutOutcome(w), outcome)
	assert.Less(t, time.Since(start), 20*time.Second)
}

func TestExecutor_SubjectEnv(t *testing.T) {
	w := subjectOrder("TestHelperSubjectEnv", 1, 30*time.Second)

	assert.Equal(t, m.Fail, subjectExecutor(t).Execute(context.Background(), w).Type)
	assert.Equal(t, m.Pass, subjectExecutor(t, "SUBJECT_MODE=strict").Execute(context.Background(), w).Type)
}

func TestExecutor_UnknownPackageCrashes(t *testing.T) {
	executor := NewExecutor(adaptermocks.NewMockTestRunnerAdapter(t), m.BinaryManifest{}, nil, 0)

	outcome := executor.Execute(context.Background(), subjectOrder("TestAnything", 1, time.Second))
	assert.Equal(t, m.CrashOutcome(), outcome)
}

func TestExecutor_RunnerErrorCrashes(t *testing.T) {
	runner := adaptermocks.NewMockTestRunnerAdapter(t)
	manifest := m.BinaryManifest{Binaries: []m.TestBinary{{Package: subjectPackage, Binary: "/bin/subject.test"}}}

	runner.EXPECT().
		RunTest(mock.Anything, mock.MatchedBy(func(spec adapter.RunSpec) bool {
			return spec.Binary == "/bin/subject.test" &&
				len(spec.Args) == 2 && spec.Args[1] == "^TestAdd$/^with_negatives$"
		})).
		Return(adapter.RunResult{}, os.ErrNotExist)

	executor := NewExecutor(runner, manifest, nil, 0)

	outcome := executor.Execute(context.Background(), subjectOrder("TestAdd/with_negatives", 1, time.Second))
	assert.Equal(t, m.CrashOutcome(), outcome)
}

func TestExecutor_ClassifiesExitCode(t *testing.T) {
	runner := adaptermocks.NewMockTestRunnerAdapter(t)
	manifest := m.BinaryManifest{Binaries: []m.TestBinary{{Package: subjectPackage, Binary: "/bin/subject.test"}}}

	runner.EXPECT().
		RunTest(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, spec adapter.RunSpec) (adapter.RunResult, error) {
			_, _ = fmt.Fprint(spec.Output, "--- FAIL: TestAdd (0.02s)\n    add_test.go:9: 1+1 != 3\nFAIL")
			assert.Contains(t, spec.Env, m.MutantEnv+"=7")

			return adapter.RunResult{Duration: 25 * time.Millisecond, ExitCode: 1}, nil
		})

	executor := NewExecutor(runner, manifest, nil, 0)

	outcome := executor.Execute(context.Background(), subjectOrder("TestAdd", 7, time.Second))
	assert.Equal(t, m.Fail, outcome.Type)
	assert.Equal(t, int64(25), outcome.RunTimeMs)
	assert.Equal(t, "--- FAIL: TestAdd add_test.go:9: 1+1 != 3 FAIL", outcome.StackTrace)
}

func TestRunPattern(t *testing.T) {
	assert.Equal(t, "^TestAdd$", RunPattern("TestAdd"))
	assert.Equal(t, "^TestAdd$/^with\\.dots$", RunPattern("TestAdd/with.dots"))
}

func TestFailureText(t *testing.T) {
	trace := "panic: boom [recovered]\n\ngoroutine 7 [running]:\nmain.f(0xc000012345)\n\t/src/f.go:3 +0x1d\n"
	other := "panic: boom [recovered]\n\ngoroutine 19 [running]:\nmain.f(0xc000099999)\n\t/src/f.go:3 +0x1d\n"

	assert.Equal(t, failureText(trace), failureText(other))
	assert.Equal(t, "panic: boom [recovered] goroutine [running]: main.f(0x?) /src/f.go:3 +0x?", failureText(trace))
}

func TestScrubTestTiming(t *testing.T) {
	assert.Equal(t, "--- FAIL: TestAdd\n", string(scrubTestTiming([]byte("--- FAIL: TestAdd (0.01s)\n"))))
	assert.Equal(t, "    --- PASS: TestAdd/sub\n", string(scrubTestTiming([]byte("    --- PASS: TestAdd/sub (12.50s)\n"))))
	assert.Equal(t, "ok (0.01s)\n", string(scrubTestTiming([]byte("ok (0.01s)\n"))))
}
