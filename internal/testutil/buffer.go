// Package testutil holds helpers shared by package tests: a log sink that is
// safe to write from several goroutines, and small workbook fixtures.
package testutil

import (
	"bytes"
	"sync"
)

// SafeBuffer collects log or diagnostic output under a mutex.
type SafeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
