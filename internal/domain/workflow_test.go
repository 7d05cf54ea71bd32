package domain

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	adaptermocks "killmap.dev/pkg/killmap/internal/adapter/mocks"
	"killmap.dev/pkg/killmap/internal/controller"
	m "killmap.dev/pkg/killmap/internal/model"
)

var calcBinary = m.TestBinary{Package: "example.com/calc", Binary: "/bins/example_com_calc.test", Dir: "/src/calc"}

type workflowFixture struct {
	inputs   *adaptermocks.MockInputAdapter
	binaries *adaptermocks.MockTestBinaryAdapter
	runner   *adaptermocks.MockTestRunnerAdapter
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	workflow Workflow
}

func newWorkflowFixture(t *testing.T) *workflowFixture {
	f := &workflowFixture{
		inputs:   adaptermocks.NewMockInputAdapter(t),
		binaries: adaptermocks.NewMockTestBinaryAdapter(t),
		runner:   adaptermocks.NewMockTestRunnerAdapter(t),
		stdout:   &bytes.Buffer{},
		stderr:   &bytes.Buffer{},
	}

	cmd := &cobra.Command{}
	cmd.SetOut(f.stdout)
	cmd.SetErr(f.stderr)

	f.workflow = NewWorkflow(f.inputs, f.binaries, f.runner, controller.NewSimpleUI(cmd))

	return f
}

func (f *workflowFixture) expectDiscovery(packages []string) {
	f.inputs.EXPECT().ReadTestPackages("packages.txt").Return([]string{"example.com/calc"}, nil)
	f.binaries.EXPECT().
		BuildAll(mock.Anything, "subject", packages, "bins", 2).
		Return(m.BinaryManifest{Binaries: []m.TestBinary{calcBinary}}, nil)
	f.binaries.EXPECT().
		List(mock.Anything, calcBinary).
		Return([]string{"TestSub", "TestDivideByZero", "TestAdd"}, nil)
}

func runArgs(workers *inProcessWorkers, output io.Writer) RunArgs {
	return RunArgs{
		BuildArgs:           BuildArgs{SubjectDir: "subject", BinariesDir: "bins", Parallel: 2},
		TriggeringTestsPath: "trigger.txt",
		TestPackagesPath:    "packages.txt",
		PartialRunLogPath:   "partial.csv",
		GracePeriod:         time.Second,
		StartupTimeout:      5 * time.Second,
		Workers:             workers,
		Output:              output,
	}
}

func TestWorkflow_Run(t *testing.T) {
	f := newWorkflowFixture(t)

	f.inputs.EXPECT().ReadTriggeringTests("trigger.txt").Return([]m.TestID{calcTrigger}, nil)
	f.expectDiscovery([]string{"example.com/calc", "example.com/calc"})
	f.inputs.EXPECT().OpenResultLog("partial.csv").Return(io.NopCloser(strings.NewReader("")), nil)

	workers := &inProcessWorkers{executor: executorFunc(func(_ context.Context, w m.WorkOrder) m.Outcome {
		outcome, _ := calcSubject(w)
		return outcome
	})}

	var records bytes.Buffer

	args := runArgs(workers, &records)
	args.MetricsFile = filepath.Join(t.TempDir(), "killmap.prom")

	require.NoError(t, f.workflow.Run(context.Background(), args))

	assert.Equal(t, "example.com/calc#TestDivideByZero,0,60000,PASS,40,d1,2 5 8,\n"+
		"example.com/calc#TestDivideByZero,2,640,PASS,5,d4,,\n"+
		"example.com/calc#TestDivideByZero,5,640,FAIL,3,d3,,panic: division by zero\n"+
		"example.com/calc#TestDivideByZero,8,640,PASS,5,d4,,\n"+
		"example.com/calc#TestAdd,0,60000,PASS,10,d2,1 2 5 8,\n"+
		"example.com/calc#TestAdd,5,200,PASS,5,d4,,\n"+
		"example.com/calc#TestSub,0,60000,PASS,10,d2,1 2 5 8,\n"+
		"example.com/calc#TestSub,5,200,PASS,5,d4,,\n", records.String())

	assert.Equal(t, 1, workers.spawned)
	assert.Contains(t, f.stderr.String(), "Completed successfully!")
	assert.Empty(t, f.stdout.String())

	metricsText, err := os.ReadFile(args.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(metricsText), `killmap_outcomes_total{source="run",type="PASS"} 7`)
	assert.Contains(t, string(metricsText), "killmap_worker_spawns_total 1")
}

func TestWorkflow_RunFatalErrors(t *testing.T) {
	t.Run("triggering tests unreadable", func(t *testing.T) {
		f := newWorkflowFixture(t)
		f.inputs.EXPECT().ReadTriggeringTests("trigger.txt").Return(nil, os.ErrNotExist)

		err := f.workflow.Run(context.Background(), runArgs(&inProcessWorkers{}, io.Discard))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("build failure", func(t *testing.T) {
		f := newWorkflowFixture(t)
		f.inputs.EXPECT().ReadTriggeringTests("trigger.txt").Return(nil, nil)
		f.inputs.EXPECT().ReadTestPackages("packages.txt").Return([]string{"example.com/calc"}, nil)
		f.binaries.EXPECT().
			BuildAll(mock.Anything, "subject", []string{"example.com/calc"}, "bins", 2).
			Return(m.BinaryManifest{}, errors.New("compile error"))

		err := f.workflow.Run(context.Background(), runArgs(&inProcessWorkers{}, io.Discard))
		require.ErrorContains(t, err, "compile error")
	})

	t.Run("partial run log missing", func(t *testing.T) {
		f := newWorkflowFixture(t)
		f.inputs.EXPECT().ReadTriggeringTests("trigger.txt").Return(nil, nil)
		f.expectDiscovery([]string{"example.com/calc"})
		f.inputs.EXPECT().OpenResultLog("partial.csv").Return(nil, os.ErrNotExist)

		workers := &inProcessWorkers{}

		err := f.workflow.Run(context.Background(), runArgs(workers, io.Discard))
		require.ErrorIs(t, err, os.ErrNotExist)
		assert.Zero(t, workers.spawned)
	})

	t.Run("unknown triggering test", func(t *testing.T) {
		missing := m.TestID{Package: "example.com/calc", Name: "TestMissing"}

		f := newWorkflowFixture(t)
		f.inputs.EXPECT().ReadTriggeringTests("trigger.txt").Return([]m.TestID{calcTrigger, missing}, nil)
		f.expectDiscovery([]string{"example.com/calc", "example.com/calc", "example.com/calc"})

		workers := &inProcessWorkers{}

		err := f.workflow.Run(context.Background(), runArgs(workers, io.Discard))

		var formatErr *m.FormatError
		require.ErrorAs(t, err, &formatErr)
		assert.Equal(t, "example.com/calc#TestMissing", formatErr.Input)
		require.ErrorIs(t, err, m.ErrUnknownTest)
		assert.Zero(t, workers.spawned)
	})

	t.Run("unknown only test", func(t *testing.T) {
		f := newWorkflowFixture(t)
		f.inputs.EXPECT().ReadTriggeringTests("trigger.txt").Return(nil, nil)
		f.expectDiscovery([]string{"example.com/calc"})

		workers := &inProcessWorkers{}
		args := runArgs(workers, io.Discard)
		args.OnlyTest = &m.TestID{Package: "example.com/calc", Name: "TestMul"}

		err := f.workflow.Run(context.Background(), args)

		var formatErr *m.FormatError
		require.ErrorAs(t, err, &formatErr)
		require.ErrorIs(t, err, m.ErrUnknownTest)
		assert.Zero(t, workers.spawned)
	})
}

func TestCheckKnownTests(t *testing.T) {
	discovered := []m.TestID{calcAdd, calcTrigger}

	subtest := m.TestID{Package: calcAdd.Package, Name: calcAdd.Name + "/small"}
	require.NoError(t, checkKnownTests(discovered, []m.TestID{calcTrigger}, &subtest))

	otherPackage := m.TestID{Package: "example.com/other", Name: calcAdd.Name}
	require.ErrorIs(t, checkKnownTests(discovered, []m.TestID{otherPackage}, nil), m.ErrUnknownTest)
}

func TestWorkflow_List(t *testing.T) {
	f := newWorkflowFixture(t)
	f.expectDiscovery([]string{"example.com/calc"})

	err := f.workflow.List(context.Background(), ListArgs{
		BuildArgs:        BuildArgs{SubjectDir: "subject", BinariesDir: "bins", Parallel: 2},
		TestPackagesPath: "packages.txt",
	})
	require.NoError(t, err)

	assert.Equal(t, "example.com/calc#TestAdd\n"+
		"example.com/calc#TestDivideByZero\n"+
		"example.com/calc#TestSub\n", f.stdout.String())
}

func TestWorkflow_View(t *testing.T) {
	f := newWorkflowFixture(t)
	f.inputs.EXPECT().
		OpenResultLog("results.csv").
		Return(io.NopCloser(strings.NewReader("example.com/calc#TestAdd,0,60000,PASS,10,d2,1 5,\n")), nil)

	require.NoError(t, f.workflow.View(context.Background(), ViewArgs{ResultLogPath: "results.csv", Format: controller.FormatYAML}))
	assert.Contains(t, f.stdout.String(), "test: example.com/calc#TestAdd")
	assert.Contains(t, f.stdout.String(), "covered: 2")
}

func TestWorkflow_Serve(t *testing.T) {
	f := newWorkflowFixture(t)
	f.binaries.EXPECT().LoadManifest("bins").Return(m.BinaryManifest{}, nil)

	envFile := filepath.Join(t.TempDir(), "subject.env")
	require.NoError(t, os.WriteFile(envFile, []byte("SUBJECT_MODE=strict\n"), 0o600))

	var out bytes.Buffer

	err := f.workflow.Serve(context.Background(), ServeArgs{
		BinariesDir: "bins",
		EnvFile:     envFile,
		In:          strings.NewReader("example.com/calc#TestAdd,1,200\n"),
		Out:         &out,
	})
	require.NoError(t, err)
	assert.Equal(t, "READY\nCRASH,-1,,,\n", out.String(), "a package without a binary crashes")
}

func TestWorkflow_ServeWithoutManifest(t *testing.T) {
	f := newWorkflowFixture(t)
	f.binaries.EXPECT().LoadManifest("bins").Return(m.BinaryManifest{}, os.ErrNotExist)

	err := f.workflow.Serve(context.Background(), ServeArgs{BinariesDir: "bins", In: strings.NewReader(""), Out: io.Discard})
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestNonTriggeringTests(t *testing.T) {
	others := NonTriggeringTests([]m.TestID{calcAdd, calcTrigger, calcSub}, []m.TestID{calcTrigger})
	assert.Equal(t, []m.TestID{calcAdd, calcSub}, others)
}
