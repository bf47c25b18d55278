// Copyright 2025 The Megaplexer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package megaplexer

import "sync"

// DefaultPattern is the classic power-on pattern: segment G only, a dash
// on every digit until the host writes something else.
const DefaultPattern byte = 0x40

// Store holds the segment pattern for each digit of the bank. It is the
// single piece of state shared between the update receiver and the scan
// loop: the receiver is the writer, the scan loop the reader.
//
// Writes are per-slot. A burst of pairs spanning several digits is not
// applied atomically across digits; a refresh cycle racing with it may show
// some digits updated and others not. That resolves within one refresh
// period and is harmless.
type Store struct {
	mu    sync.Mutex
	slots []byte
	def   byte
}

// NewStore returns a Store with n slots, all holding def.
func NewStore(n int, def byte) *Store {
	s := &Store{slots: make([]byte, n), def: def}
	for i := range s.slots {
		s.slots[i] = def
	}
	return s
}

// Len returns the number of digit slots.
func (s *Store) Len() int {
	return len(s.slots)
}

// Read returns the pattern most recently written to digit, or the default
// pattern if digit is out of range. The scan loop only ever asks for
// in-range digits.
func (s *Store) Read(digit int) byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	if digit < 0 || digit >= len(s.slots) {
		return s.def
	}
	return s.slots[digit]
}

// Write stores pattern for digit. An out-of-range digit is silently
// ignored; a malformed or malicious host must never be able to corrupt
// other digits' state.
func (s *Store) Write(digit int, pattern byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if digit < 0 || digit >= len(s.slots) {
		return
	}
	s.slots[digit] = pattern
}

// Snapshot returns a copy of all slots in digit order.
func (s *Store) Snapshot() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]byte, len(s.slots))
	copy(out, s.slots)
	return out
}

// Reset puts every slot back to the default pattern.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.slots {
		s.slots[i] = s.def
	}
}
