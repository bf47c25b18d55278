// Copyright 2025 The Megaplexer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package megaplexer

// Transport is the inbound side of the host bus: a source of already
// received bytes. Buffered reports how many bytes can be read without
// blocking; ReadByte must only be called while Buffered() > 0.
//
// Implementations live in the bus package (serial port) and the bustest
// package (in-memory).
type Transport interface {
	Buffered() int
	ReadByte() (byte, error)
}

// RequestByte is sent in reply to a host read request. The request
// direction of the protocol is reserved and carries no defined meaning;
// this is a fixed placeholder value.
const RequestByte byte = 0x2A

// Receiver applies inbound update pairs to a Store. It touches no display
// hardware.
type Receiver struct {
	store *Store
}

// NewReceiver returns a Receiver writing to store.
func NewReceiver(store *Store) *Receiver {
	return &Receiver{store: store}
}

// Receive drains all complete [digitIndex, segmentPattern] pairs currently
// buffered on t and applies each in arrival order. It returns the number of
// pairs applied to the store.
//
// The stream is consumed strictly two bytes at a time: a dangling final
// byte is left on the transport rather than waited for, so Receive never
// blocks. Pairs with an out-of-range digit index are consumed and dropped
// with no state change and no error; the device has no way to report
// failure back to the host and must keep running regardless of input.
func (r *Receiver) Receive(t Transport) int {
	applied := 0
	for t.Buffered() > 1 {
		digit, err := t.ReadByte()
		if err != nil {
			break
		}
		pattern, err := t.ReadByte()
		if err != nil {
			break
		}
		if int(digit) >= r.store.Len() {
			updatesDropped.Inc()
			continue
		}
		r.store.Write(int(digit), pattern)
		updatesApplied.Inc()
		applied++
	}
	return applied
}
