// Copyright 2025 The Megaplexer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package megaplexer drives a bank of multiplexed seven-segment displays
// over raw GPIO, refreshing one digit at a time fast enough that
// persistence of vision makes all digits appear lit simultaneously.
//
// The driver is a peripheral: a host pushes per-digit segment patterns over
// a byte transport as [digitIndex, segmentPattern] pairs and the scan loop
// renders whatever was last written, independent of further host activity.
//
// Segment pattern bit layout, matching the wire protocol:
//
//	bit 0..6: segments A..G, bit 7: decimal point
//
// A bit value of 1 means "segment illuminated". The electrical drive
// polarity (common-anode vs common-cathode) is a wiring concern handled
// internally and never exposed on the wire.
//
// Subpackages:
//
//   - bus: byte transports (serial port) feeding the driver.
//   - bustest: in-memory transport for tests and simulation.
//   - segterm: terminal emulator of the digit bank, for development
//     without hardware.
//   - segimage: renders the digit bank to an image, with an http.Handler
//     serving PNG snapshots.
package megaplexer
