// Copyright 2025 The Megaplexer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package bustest provides an in-memory byte transport to drive the update
// receiver in tests and simulations, without a serial port.
package bustest

import (
	"io"
	"sync"
)

// Transport is a megaplexer.Transport backed by an in-memory byte queue.
// Feed appends bytes as if the host had sent them. Safe for concurrent use.
type Transport struct {
	mu  sync.Mutex
	buf []byte
}

// Feed queues bytes for the receiver, in order.
func (t *Transport) Feed(b ...byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf = append(t.buf, b...)
}

// Buffered returns the number of queued bytes.
func (t *Transport) Buffered() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.buf)
}

// ReadByte pops the next queued byte. It returns io.EOF when the queue is
// empty.
func (t *Transport) ReadByte() (byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.buf) == 0 {
		return 0, io.EOF
	}
	b := t.buf[0]
	t.buf = t.buf[1:]
	return b, nil
}

func (t *Transport) String() string {
	return "bustest"
}
