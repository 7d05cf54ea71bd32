package domain

import (
	"bufio"
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"killmap.dev/pkg/killmap/internal/adapter"
	m "killmap.dev/pkg/killmap/internal/model"
)

var (
	calcTrigger = m.TestID{Package: "example.com/calc", Name: "TestDivideByZero"}
	calcAdd     = m.TestID{Package: "example.com/calc", Name: "TestAdd"}
	calcSub     = m.TestID{Package: "example.com/calc", Name: "TestSub"}
)

// scriptedRunner answers work orders from a function and records every call.
type scriptedRunner struct {
	answer func(w m.WorkOrder) (m.Outcome, error)
	calls  []m.WorkOrder
	closed bool
}

func (r *scriptedRunner) Run(_ context.Context, w m.WorkOrder) (m.Outcome, error) {
	r.calls = append(r.calls, w)
	return r.answer(w)
}

func (r *scriptedRunner) Close() error {
	r.closed = true
	return nil
}

// executorFunc adapts a function to the Executor interface.
type executorFunc func(ctx context.Context, w m.WorkOrder) m.Outcome

func (f executorFunc) Execute(ctx context.Context, w m.WorkOrder) m.Outcome {
	return f(ctx, w)
}

// fakeConn is a scripted worker connection.
type fakeConn struct {
	id       string
	sendErr  error
	closeErr error
	onSend   func(c *fakeConn, line string)

	mu     sync.Mutex
	sent   []string
	killed bool
	closed bool

	lines    chan string
	exited   chan struct{}
	exitOnce sync.Once
}

func newFakeConn(id string, handshake ...string) *fakeConn {
	c := &fakeConn{
		id:     id,
		lines:  make(chan string, 16),
		exited: make(chan struct{}),
	}

	for _, line := range handshake {
		c.lines <- line
	}

	return c
}

func (c *fakeConn) ID() string { return c.id }

func (c *fakeConn) Lines() <-chan string { return c.lines }

func (c *fakeConn) Exited() <-chan struct{} { return c.exited }

func (c *fakeConn) Send(line string) error {
	if c.sendErr != nil {
		return c.sendErr
	}

	c.mu.Lock()
	c.sent = append(c.sent, line)
	c.mu.Unlock()

	if c.onSend != nil {
		c.onSend(c, line)
	}

	return nil
}

func (c *fakeConn) reply(line string) {
	c.lines <- line
}

func (c *fakeConn) exit() {
	c.exitOnce.Do(func() {
		close(c.lines)
		close(c.exited)
	})
}

func (c *fakeConn) Close(time.Duration) error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.exit()

	return c.closeErr
}

func (c *fakeConn) Kill(time.Duration) error {
	c.mu.Lock()
	c.killed = true
	c.mu.Unlock()
	c.exit()

	return nil
}

func (c *fakeConn) wasKilled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.killed
}

// fakeWorkers hands out connections built by next.
type fakeWorkers struct {
	next  func(id string) (adapter.WorkerConn, error)
	ids   []string
	conns []adapter.WorkerConn
}

func (f *fakeWorkers) Spawn(id string) (adapter.WorkerConn, error) {
	f.ids = append(f.ids, id)

	conn, err := f.next(id)
	if err == nil {
		f.conns = append(f.conns, conn)
	}

	return conn, err
}

// answering returns a worker factory whose workers reply with answer.
func answering(answer func(w m.WorkOrder) m.Outcome) *fakeWorkers {
	return &fakeWorkers{next: func(id string) (adapter.WorkerConn, error) {
		conn := newFakeConn(id, m.WorkerReady)
		conn.onSend = func(c *fakeConn, line string) {
			w, err := m.ParseWorkOrder(line)
			if err != nil {
				c.reply("garbage")
				return
			}

			c.reply(answer(w).String())
		}

		return conn, nil
	}}
}

// inProcessWorkers runs a real WorkerServer behind io.Pipes for every spawn.
type inProcessWorkers struct {
	executor Executor
	spawned  int
}

func (p *inProcessWorkers) Spawn(id string) (adapter.WorkerConn, error) {
	p.spawned++

	inR, inW := io.Pipe()
	outR, outW := io.Pipe()

	conn := &pipeConn{
		id:     id,
		in:     inW,
		out:    outR,
		lines:  make(chan string, 1),
		exited: make(chan struct{}),
	}

	go func() {
		err := NewWorkerServer(p.executor).Serve(context.Background(), inR, outW)
		_ = outW.CloseWithError(err)
	}()

	go func() {
		scanner := bufio.NewScanner(outR)
		for scanner.Scan() {
			conn.lines <- scanner.Text()
		}

		close(conn.lines)
		close(conn.exited)
	}()

	return conn, nil
}

type pipeConn struct {
	id     string
	in     *io.PipeWriter
	out    *io.PipeReader
	lines  chan string
	exited chan struct{}
}

func (c *pipeConn) ID() string { return c.id }

func (c *pipeConn) Lines() <-chan string { return c.lines }

func (c *pipeConn) Exited() <-chan struct{} { return c.exited }

func (c *pipeConn) Send(line string) error {
	_, err := io.WriteString(c.in, line+"\n")
	return err
}

func (c *pipeConn) Close(grace time.Duration) error {
	_ = c.in.Close()

	select {
	case <-c.exited:
		return nil
	case <-time.After(grace):
		return errors.New("in-process worker did not stop")
	}
}

func (c *pipeConn) Kill(grace time.Duration) error {
	_ = c.in.Close()
	_ = c.out.Close()

	return c.Close(grace)
}
