package domain

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	m "killmap.dev/pkg/killmap/internal/model"
)

// WorkerServer is the worker side of the line protocol: it announces itself
// with a ready line, then answers every work order line with one outcome line.
type WorkerServer struct {
	executor Executor
}

// NewWorkerServer constructs a WorkerServer.
func NewWorkerServer(executor Executor) *WorkerServer {
	return &WorkerServer{executor: executor}
}

// Serve handles work orders from in until it is closed or ctx is done. Orders
// are executed one at a time.
func (s *WorkerServer) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	if err := writeLine(out, m.WorkerReady); err != nil {
		return err
	}

	slog.Info("Worker ready", "worker", os.Getenv(m.WorkerIDEnv))

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		reply := s.handle(ctx, scanner.Text())
		if err := writeLine(out, reply.String()); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read work order: %w", err)
	}

	slog.Info("Worker input closed, exiting")

	return nil
}

func (s *WorkerServer) handle(ctx context.Context, line string) m.Outcome {
	w, err := m.ParseWorkOrder(line)
	if err != nil {
		slog.Error("Failed to decode work order", "line", line, "error", err)
		return m.CrashOutcome()
	}

	slog.Debug("Executing work order", "work_order", w.String())

	outcome := s.executor.Execute(ctx, w)

	slog.Debug("Executed work order", "work_order", w.String(), "outcome", outcome.Type, "run_time_ms", outcome.RunTimeMs)

	return outcome
}

func writeLine(out io.Writer, line string) error {
	if _, err := io.WriteString(out, line+"\n"); err != nil {
		return fmt.Errorf("failed to write reply: %w", err)
	}

	return nil
}
