package adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"
)

// DefaultWaitDelay bounds how long RunTest waits for output pipes after the
// test process has been killed.
const DefaultWaitDelay = 2 * time.Second

// RunSpec describes a single test-process execution.
type RunSpec struct {
	Binary string
	Args   []string
	Dir    string
	Env    []string
	// Output receives the combined stdout and stderr of the process.
	Output io.Writer
}

// RunResult is what was observed about a finished test process.
type RunResult struct {
	Duration time.Duration
	ExitCode int
	// TimedOut is set when the context deadline expired and the process was killed.
	TimedOut bool
}

// TestRunnerAdapter abstracts starting one test process.
type TestRunnerAdapter interface {
	// RunTest runs spec to completion or until ctx's deadline. A non-zero exit
	// is not an error; failing to start the process is.
	RunTest(ctx context.Context, spec RunSpec) (RunResult, error)
}

// LocalTestRunnerAdapter provides a concrete implementation using os/exec.
type LocalTestRunnerAdapter struct {
	waitDelay time.Duration
}

// NewLocalTestRunnerAdapter constructs a LocalTestRunnerAdapter.
func NewLocalTestRunnerAdapter() *LocalTestRunnerAdapter {
	return &LocalTestRunnerAdapter{
		waitDelay: DefaultWaitDelay,
	}
}

// RunTest starts the binary in its own process group so a timeout kills every
// process the test spawned.
func (a *LocalTestRunnerAdapter) RunTest(ctx context.Context, spec RunSpec) (RunResult, error) {
	cmd := exec.CommandContext(ctx, spec.Binary, spec.Args...)
	cmd.Dir = spec.Dir
	cmd.Env = spec.Env
	cmd.Stdout = spec.Output
	cmd.Stderr = spec.Output
	cmd.WaitDelay = a.waitDelay

	configureProcessGroup(cmd)

	cmd.Cancel = func() error {
		terminateProcessGroup(cmd)
		return nil
	}

	start := time.Now()
	err := cmd.Run()
	result := RunResult{Duration: time.Since(start)}

	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) && cmd.Process != nil {
			result.TimedOut = true
			return result, nil
		}

		return result, ctxErr
	}

	var exitErr *exec.ExitError

	switch {
	case err == nil:
		return result, nil
	case errors.As(err, &exitErr):
		return result, nil
	case errors.Is(err, exec.ErrWaitDelay):
		// The test exited but left a descendant holding the output pipe.
		return result, nil
	default:
		return result, fmt.Errorf("failed to run test binary %s: %w", spec.Binary, err)
	}
}
