// Copyright 2025 The Megaplexer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package megaplexer

import (
	"errors"
	"time"
)

const (
	// NumSegments is the number of segment lines shared across all digits:
	// A through G plus the decimal point.
	NumSegments = 8

	// MaxDigits is the largest bank the driver will scan. Beyond this the
	// per-cycle dwell total starts flirting with visible flicker anyway.
	MaxDigits = 8

	// DefaultRefreshPeriod is the minimum time between the starts of two
	// full refresh cycles.
	DefaultRefreshPeriod = 2 * time.Millisecond

	// DefaultDwellTime is how long each digit stays lit during a cycle.
	DefaultDwellTime = 2 * time.Microsecond
)

var (
	errCommonPins  = errors.New("megaplexer: need between 1 and 8 common pins")
	errSegmentPins = errors.New("megaplexer: need exactly 8 segment pins")
)

// Opts holds the wiring and timing configuration for a digit bank.
//
// The zero value is usable: common-cathode polarity, 2ms refresh, 2µs
// dwell, a dark bank at power-on, no transport.
type Opts struct {
	// CommonAnode selects the drive polarity. Common-anode displays have
	// active-low segment and common lines; common-cathode displays are
	// active-high. One flag inverts both.
	CommonAnode bool

	// RefreshPeriod is the minimum period of a full refresh cycle.
	// Defaults to DefaultRefreshPeriod.
	RefreshPeriod time.Duration

	// DwellTime is how long each digit is held active per cycle. The dwell
	// multiplied by the digit count must stay well under a few
	// milliseconds, or the bank visibly flickers. Defaults to
	// DefaultDwellTime.
	DwellTime time.Duration

	// DefaultPattern is what every digit shows at power-on. Zero leaves
	// the bank dark; pass the package DefaultPattern constant for the
	// classic dash.
	DefaultPattern byte

	// Transport, if set, is drained for host updates once per Step before
	// the refresh cycle runs. Leave nil when updates are fed to the Store
	// through a Receiver from elsewhere.
	Transport Transport
}

func (o *Opts) refreshPeriod() time.Duration {
	if o.RefreshPeriod <= 0 {
		return DefaultRefreshPeriod
	}
	return o.RefreshPeriod
}

func (o *Opts) dwellTime() time.Duration {
	if o.DwellTime <= 0 {
		return DefaultDwellTime
	}
	return o.DwellTime
}

