// Copyright 2025 The Megaplexer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package megaplexer

import (
	"bytes"
	"testing"
)

func TestStoreDefaults(t *testing.T) {
	s := NewStore(6, DefaultPattern)
	if s.Len() != 6 {
		t.Fatalf("Len() = %d, want 6", s.Len())
	}
	for i := 0; i < s.Len(); i++ {
		if got := s.Read(i); got != DefaultPattern {
			t.Errorf("Read(%d) = %#02x, want %#02x", i, got, DefaultPattern)
		}
	}
}

func TestStoreWriteRead(t *testing.T) {
	s := NewStore(6, DefaultPattern)
	s.Write(2, 0x66)
	if got := s.Read(2); got != 0x66 {
		t.Errorf("Read(2) = %#02x, want 0x66", got)
	}
	// Every other slot is untouched.
	for _, i := range []int{0, 1, 3, 4, 5} {
		if got := s.Read(i); got != DefaultPattern {
			t.Errorf("Read(%d) = %#02x, want default %#02x", i, got, DefaultPattern)
		}
	}
}

func TestStoreWriteOutOfRange(t *testing.T) {
	s := NewStore(6, DefaultPattern)
	s.Write(1, 0x3F)
	before := s.Snapshot()

	for _, i := range []int{-1, 6, 7, 255} {
		s.Write(i, 0xFF)
	}

	if after := s.Snapshot(); !bytes.Equal(before, after) {
		t.Errorf("out-of-range writes changed the store: before %v, after %v", before, after)
	}
}

func TestStoreWriteIdempotent(t *testing.T) {
	s1 := NewStore(6, DefaultPattern)
	s2 := NewStore(6, DefaultPattern)
	s1.Write(3, 0x5B)
	s2.Write(3, 0x5B)
	s2.Write(3, 0x5B)
	if !bytes.Equal(s1.Snapshot(), s2.Snapshot()) {
		t.Errorf("applying a write twice differs from once: %v vs %v", s1.Snapshot(), s2.Snapshot())
	}
}

func TestStoreSnapshotIsACopy(t *testing.T) {
	s := NewStore(3, 0)
	snap := s.Snapshot()
	snap[0] = 0xFF
	if got := s.Read(0); got != 0 {
		t.Errorf("mutating a snapshot leaked into the store: Read(0) = %#02x", got)
	}
}

func TestStoreReset(t *testing.T) {
	s := NewStore(4, DefaultPattern)
	for i := 0; i < 4; i++ {
		s.Write(i, byte(i))
	}
	s.Reset()
	for i := 0; i < 4; i++ {
		if got := s.Read(i); got != DefaultPattern {
			t.Errorf("Read(%d) after Reset = %#02x, want %#02x", i, got, DefaultPattern)
		}
	}
}
