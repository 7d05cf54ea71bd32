package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"killmap.dev/pkg/killmap/internal/adapter"
	"killmap.dev/pkg/killmap/internal/metrics"
	m "killmap.dev/pkg/killmap/internal/model"
)

const (
	// DefaultGracePeriod is the slack added to a work order's timeout before
	// its worker is declared hung.
	DefaultGracePeriod = 2 * time.Second
	// DefaultStartupTimeout bounds the wait for a new worker's ready line.
	DefaultStartupTimeout = 30 * time.Second
)

var (
	// ErrWorkerCreation means no worker could be started. It is fatal.
	ErrWorkerCreation = errors.New("failed to create worker")
	// ErrWorkerCommunication means an established worker cannot be talked to. It is fatal.
	ErrWorkerCommunication = errors.New("failed to communicate with worker")
)

// Runner executes work orders one at a time.
type Runner interface {
	Run(ctx context.Context, w m.WorkOrder) (m.Outcome, error)
	Close() error
}

// RemoteRunner owns at most one live worker process and replaces it whenever
// it dies or stops answering.
type RemoteRunner struct {
	workers        adapter.WorkerAdapter
	gracePeriod    time.Duration
	startupTimeout time.Duration
	metrics        *metrics.Metrics

	conn adapter.WorkerConn
}

// NewRemoteRunner constructs a RemoteRunner. No worker is started until the first Run.
func NewRemoteRunner(workers adapter.WorkerAdapter, gracePeriod, startupTimeout time.Duration, mx *metrics.Metrics) *RemoteRunner {
	if gracePeriod <= 0 {
		gracePeriod = DefaultGracePeriod
	}

	if startupTimeout <= 0 {
		startupTimeout = DefaultStartupTimeout
	}

	return &RemoteRunner{
		workers:        workers,
		gracePeriod:    gracePeriod,
		startupTimeout: startupTimeout,
		metrics:        mx,
	}
}

// Run sends w to the worker and waits for its outcome. A worker that dies or
// stays silent past the timeout plus grace period yields a CRASH outcome and
// is replaced on the next call.
func (r *RemoteRunner) Run(ctx context.Context, w m.WorkOrder) (m.Outcome, error) {
	start := time.Now()

	conn, err := r.send(ctx, w)
	if err != nil {
		return m.Outcome{}, err
	}

	timer := time.NewTimer(w.Timeout() + r.gracePeriod)
	defer timer.Stop()

	select {
	case line, ok := <-conn.Lines():
		if !ok {
			slog.Warn("Worker closed its output", "worker", conn.ID(), "work_order", w.String())
			return r.crash(), nil
		}

		return r.decode(conn, w, line, start)
	case <-conn.Exited():
		select {
		case line, ok := <-conn.Lines():
			if ok {
				return r.decode(conn, w, line, start)
			}
		default:
		}

		slog.Warn("Worker died", "worker", conn.ID(), "work_order", w.String())

		return r.crash(), nil
	case <-timer.C:
		slog.Warn("Worker did not answer in time", "worker", conn.ID(), "work_order", w.String())
		return r.crash(), nil
	case <-ctx.Done():
		r.discard()
		return m.Outcome{}, ctx.Err()
	}
}

// send delivers w to a live worker, replacing a worker that is found dead.
func (r *RemoteRunner) send(ctx context.Context, w m.WorkOrder) (adapter.WorkerConn, error) {
	for attempt := 0; ; attempt++ {
		conn, err := r.ensureWorker(ctx)
		if err != nil {
			return nil, err
		}

		err = conn.Send(w.String())
		if err == nil {
			return conn, nil
		}

		select {
		case <-conn.Exited():
		case <-time.After(r.gracePeriod):
			slog.Error("Failed to send work order", "worker", conn.ID(), "error", err)
			r.discard()

			return nil, fmt.Errorf("%w %s: %w", ErrWorkerCommunication, conn.ID(), err)
		}

		slog.Warn("Worker exited before accepting work", "worker", conn.ID())
		r.conn = nil

		if attempt > 0 {
			return nil, fmt.Errorf("%w %s: %w", ErrWorkerCommunication, conn.ID(), err)
		}
	}
}

func (r *RemoteRunner) ensureWorker(ctx context.Context) (adapter.WorkerConn, error) {
	if r.conn != nil {
		select {
		case <-r.conn.Exited():
			slog.Warn("Replacing exited worker", "worker", r.conn.ID())
			r.conn = nil
		default:
			return r.conn, nil
		}
	}

	id := uuid.NewString()

	conn, err := r.workers.Spawn(id)
	if err != nil {
		slog.Error("Failed to spawn worker", "worker", id, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrWorkerCreation, err)
	}

	r.metrics.RecordWorkerSpawn()

	if err := r.awaitReady(ctx, conn); err != nil {
		_ = conn.Kill(r.gracePeriod)
		return nil, err
	}

	r.conn = conn

	return conn, nil
}

func (r *RemoteRunner) awaitReady(ctx context.Context, conn adapter.WorkerConn) error {
	timer := time.NewTimer(r.startupTimeout)
	defer timer.Stop()

	select {
	case line, ok := <-conn.Lines():
		if !ok {
			return fmt.Errorf("%w %s: exited before becoming ready", ErrWorkerCreation, conn.ID())
		}

		if line != m.WorkerReady {
			return fmt.Errorf("%w %s: unexpected handshake %q", ErrWorkerCreation, conn.ID(), line)
		}

		slog.Debug("Worker ready", "worker", conn.ID())

		return nil
	case <-timer.C:
		return fmt.Errorf("%w %s: not ready after %s", ErrWorkerCreation, conn.ID(), r.startupTimeout)
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *RemoteRunner) decode(conn adapter.WorkerConn, w m.WorkOrder, line string, start time.Time) (m.Outcome, error) {
	outcome, err := m.ParseOutcome(line)
	if err != nil {
		slog.Error("Failed to decode worker reply", "worker", conn.ID(), "work_order", w.String(), "error", err)
		r.discard()

		return m.Outcome{}, fmt.Errorf("%w %s: %w", ErrWorkerCommunication, conn.ID(), err)
	}

	r.metrics.ObserveRun(time.Since(start))

	return outcome, nil
}

func (r *RemoteRunner) crash() m.Outcome {
	r.metrics.RecordWorkerCrash()
	r.discard()

	return m.CrashOutcome()
}

func (r *RemoteRunner) discard() {
	if r.conn == nil {
		return
	}

	if err := r.conn.Kill(r.gracePeriod); err != nil {
		slog.Warn("Failed to kill worker", "worker", r.conn.ID(), "error", err)
	}

	r.conn = nil
}

// Close shuts the current worker down, if any.
func (r *RemoteRunner) Close() error {
	if r.conn == nil {
		return nil
	}

	conn := r.conn
	r.conn = nil

	if err := conn.Close(r.gracePeriod); err != nil {
		slog.Error("Failed to stop worker", "worker", conn.ID(), "error", err)
		return fmt.Errorf("failed to stop worker %s: %w", conn.ID(), err)
	}

	return nil
}
