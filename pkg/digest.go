// Package pkg provides small io utilities shared by killmap's worker and orchestrator.
package pkg

import (
	"crypto/sha1" //nolint:gosec // content fingerprint, not a security boundary
	"encoding/hex"
	"hash"
	"sync"
)

// DigestWriter is a write-only sink that folds everything written to it into
// a single SHA-1 digest instead of storing it.
type DigestWriter struct {
	mu    sync.Mutex
	hash  hash.Hash
	total int64
}

// NewDigestWriter returns an empty DigestWriter.
func NewDigestWriter() *DigestWriter {
	return &DigestWriter{hash: sha1.New()} //nolint:gosec
}

// Write implements io.Writer. It never fails.
func (d *DigestWriter) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.hash.Write(p)
	d.total += int64(len(p))

	return len(p), nil
}

// Sum returns the hex digest of everything written so far. Writing may continue afterwards.
func (d *DigestWriter) Sum() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return hex.EncodeToString(d.hash.Sum(nil))
}

// TotalBytes returns how many bytes were folded into the digest.
func (d *DigestWriter) TotalBytes() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.total
}
