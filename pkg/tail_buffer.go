package pkg

import "sync"

// DefaultTailBytes is the amount of output kept when no limit is configured.
const DefaultTailBytes = 64 * 1024

// TailBuffer keeps only the last maxBytes written to it, so failure text can be
// attached to an outcome without retaining a test's entire output.
type TailBuffer struct {
	maxBytes int

	mu       sync.Mutex
	total    int64
	contents []byte
}

// NewTailBuffer creates a TailBuffer; maxBytes <= 0 selects DefaultTailBytes.
func NewTailBuffer(maxBytes int) *TailBuffer {
	if maxBytes <= 0 {
		maxBytes = DefaultTailBytes
	}

	return &TailBuffer{maxBytes: maxBytes}
}

// Write implements io.Writer.
func (b *TailBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.total += int64(len(p))

	if len(p) >= b.maxBytes {
		b.contents = append(b.contents[:0], p[len(p)-b.maxBytes:]...)
		return len(p), nil
	}

	b.contents = append(b.contents, p...)
	if over := len(b.contents) - b.maxBytes; over > 0 {
		b.contents = append(b.contents[:0], b.contents[over:]...)
	}

	return len(p), nil
}

// String returns a copy of the retained tail.
func (b *TailBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return string(b.contents)
}

// Truncated reports whether older output was dropped.
func (b *TailBuffer) Truncated() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return int64(len(b.contents)) < b.total
}
