package domain

import (
	"bufio"
	"errors"
	"io"
	"log/slog"
	"strings"

	m "killmap.dev/pkg/killmap/internal/model"
)

// ResultCache replays a previously written result log. It only answers
// queries issued in the order the log was written: the first mismatch
// exhausts it for good.
type ResultCache struct {
	reader    *bufio.Reader
	next      *m.Record
	exhausted bool
}

// NewResultCache reads ahead the first well-formed record of r.
func NewResultCache(r io.Reader) *ResultCache {
	cache := &ResultCache{reader: bufio.NewReader(r)}
	cache.advance()

	return cache
}

// TryGet returns the recorded outcome for w if it is the next record in the log.
func (c *ResultCache) TryGet(w m.WorkOrder) (m.Outcome, bool) {
	if c.exhausted || c.next == nil {
		return m.Outcome{}, false
	}

	if c.next.WorkOrder != w {
		slog.Info("Result log diverges from this run, ignoring the rest of it",
			"expected", c.next.WorkOrder.String(), "requested", w.String())
		c.exhaust()

		return m.Outcome{}, false
	}

	outcome := c.next.Outcome
	c.advance()

	return outcome, true
}

// Exhausted reports whether every later query will miss.
func (c *ResultCache) Exhausted() bool {
	return c.exhausted
}

func (c *ResultCache) exhaust() {
	c.exhausted = true
	c.next = nil
}

// advance moves to the next well-formed, newline-terminated record. A final
// line without a terminator may be half written and is never trusted.
func (c *ResultCache) advance() {
	for {
		line, err := c.reader.ReadString('\n')
		if err != nil {
			if line != "" {
				slog.Debug("Ignoring unterminated last line of result log", "line", line)
			}

			if !errors.Is(err, io.EOF) {
				slog.Warn("Failed to read result log", "error", err)
			}

			c.exhaust()

			return
		}

		record, parseErr := m.ParseRecord(strings.TrimRight(line, "\r\n"))
		if parseErr != nil {
			slog.Debug("Skipping malformed result log line", "error", parseErr)
			continue
		}

		c.next = &record

		return
	}
}
