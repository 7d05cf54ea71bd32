package adapter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"time"

	m "killmap.dev/pkg/killmap/internal/model"
)

// maxLineBytes bounds a single protocol line read from a worker.
const maxLineBytes = 4 * 1024 * 1024

// ErrWorkerStillRunning is returned by Close when the worker survives termination.
var ErrWorkerStillRunning = errors.New("worker process did not exit")

// WorkerConn is a line-oriented request/response channel to one worker process.
type WorkerConn interface {
	// ID returns the id the worker was spawned with.
	ID() string
	// Send writes one line (without terminator) to the worker.
	Send(line string) error
	// Lines delivers every line the worker prints; it is closed at EOF.
	Lines() <-chan string
	// Exited is closed once the worker process has exited.
	Exited() <-chan struct{}
	// Close asks the worker to exit by closing its input, then kills it after grace.
	Close(grace time.Duration) error
	// Kill terminates the worker, escalating to a forced kill after grace.
	Kill(grace time.Duration) error
}

// WorkerAdapter creates worker processes.
type WorkerAdapter interface {
	Spawn(id string) (WorkerConn, error)
}

// LocalWorkerAdapter spawns workers as child processes speaking over stdin/stdout.
type LocalWorkerAdapter struct {
	executable string
	args       []string
	env        []string
	stderr     io.Writer
}

// NewLocalWorkerAdapter constructs a LocalWorkerAdapter. The child inherits the
// current environment plus env; its stderr is forwarded to stderr.
func NewLocalWorkerAdapter(executable string, args []string, env []string, stderr io.Writer) *LocalWorkerAdapter {
	return &LocalWorkerAdapter{
		executable: executable,
		args:       args,
		env:        env,
		stderr:     stderr,
	}
}

// Spawn implements WorkerAdapter.
func (a *LocalWorkerAdapter) Spawn(id string) (WorkerConn, error) {
	cmd := exec.Command(a.executable, a.args...)
	cmd.Env = append(append(os.Environ(), a.env...), m.WorkerIDEnv+"="+id)
	cmd.Stderr = a.stderr

	configureProcessGroup(cmd)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create worker stdin pipe: %w", err)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create worker stdout pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		slog.Error("Failed to start worker", "executable", a.executable, "error", err)
		return nil, fmt.Errorf("failed to start worker: %w", err)
	}

	conn := &localWorkerConn{
		id:      id,
		cmd:     cmd,
		stdin:   stdin,
		lines:   make(chan string, 1),
		exited:  make(chan struct{}),
		closing: make(chan struct{}),
	}

	readDone := make(chan struct{})

	go conn.readLines(stdout, readDone)
	go conn.wait(readDone)

	slog.Debug("Spawned worker", "worker", id, "pid", cmd.Process.Pid)

	return conn, nil
}

type localWorkerConn struct {
	id    string
	cmd   *exec.Cmd
	stdin io.WriteCloser

	lines   chan string
	exited  chan struct{}
	closing chan struct{}

	stopOnce sync.Once
	waitErr  error
}

func (c *localWorkerConn) ID() string { return c.id }

func (c *localWorkerConn) Lines() <-chan string { return c.lines }

func (c *localWorkerConn) Exited() <-chan struct{} { return c.exited }

func (c *localWorkerConn) Send(line string) error {
	if _, err := io.WriteString(c.stdin, line+"\n"); err != nil {
		return fmt.Errorf("failed to write to worker %s: %w", c.id, err)
	}

	return nil
}

// readLines must finish before cmd.Wait so no buffered reply is lost.
func (c *localWorkerConn) readLines(stdout io.Reader, done chan<- struct{}) {
	defer close(done)
	defer close(c.lines)

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for scanner.Scan() {
		select {
		case c.lines <- scanner.Text():
		case <-c.closing:
			_, _ = io.Copy(io.Discard, stdout)
			return
		}
	}

	if err := scanner.Err(); err != nil {
		slog.Warn("Worker output unreadable", "worker", c.id, "error", err)
		_, _ = io.Copy(io.Discard, stdout)
	}
}

func (c *localWorkerConn) wait(readDone <-chan struct{}) {
	<-readDone

	c.waitErr = c.cmd.Wait()
	slog.Debug("Worker exited", "worker", c.id, "error", c.waitErr)
	close(c.exited)
}

func (c *localWorkerConn) stopReading() {
	c.stopOnce.Do(func() { close(c.closing) })
}

func (c *localWorkerConn) Close(grace time.Duration) error {
	_ = c.stdin.Close()

	select {
	case <-c.exited:
		c.stopReading()
		return nil
	case <-time.After(grace):
	}

	slog.Warn("Worker ignored shutdown request, killing it", "worker", c.id)

	return c.Kill(grace)
}

func (c *localWorkerConn) Kill(grace time.Duration) error {
	c.stopReading()
	_ = c.stdin.Close()

	// A terminated worker cancels its running test, which takes the test's
	// process group down with it. Killing the worker outright would orphan it.
	interruptProcess(c.cmd)

	select {
	case <-c.exited:
		return nil
	case <-time.After(grace):
	}

	slog.Warn("Worker ignored termination, killing it", "worker", c.id, "pid", c.cmd.Process.Pid)
	terminateProcessGroup(c.cmd)

	select {
	case <-c.exited:
		return nil
	case <-time.After(grace):
		slog.Error("Worker survived kill", "worker", c.id, "pid", c.cmd.Process.Pid)
		return fmt.Errorf("%w: %s", ErrWorkerStillRunning, c.id)
	}
}
