package pkg

import (
	"bytes"
	"io"
)

// maxPendingLine caps how much of an unterminated line is held back.
const maxPendingLine = 64 * 1024

// LineRewriter passes output through a per-line rewrite function before
// writing it to the underlying writer. Call Flush once the producer is done
// to emit a trailing partial line.
type LineRewriter struct {
	out     io.Writer
	rewrite func(line []byte) []byte
	pending []byte
}

// NewLineRewriter wraps out. rewrite receives each line including its "\n".
func NewLineRewriter(out io.Writer, rewrite func(line []byte) []byte) *LineRewriter {
	return &LineRewriter{out: out, rewrite: rewrite}
}

// Write implements io.Writer.
func (w *LineRewriter) Write(p []byte) (int, error) {
	w.pending = append(w.pending, p...)

	for {
		i := bytes.IndexByte(w.pending, '\n')
		if i < 0 {
			break
		}

		if _, err := w.out.Write(w.rewrite(w.pending[:i+1])); err != nil {
			return 0, err
		}

		w.pending = w.pending[i+1:]
	}

	if len(w.pending) > maxPendingLine {
		if err := w.Flush(); err != nil {
			return 0, err
		}
	}

	return len(p), nil
}

// Flush rewrites and writes any buffered partial line.
func (w *LineRewriter) Flush() error {
	if len(w.pending) == 0 {
		return nil
	}

	line := w.rewrite(w.pending)
	w.pending = nil

	_, err := w.out.Write(line)

	return err
}
