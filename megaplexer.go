// Copyright 2025 The Megaplexer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package megaplexer

import (
	"context"
	"fmt"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
)

// Dev scans a bank of multiplexed seven-segment digits. One common pin per
// digit, eight segment pins shared across the bank.
//
// The scan holds exactly one digit's common line active at a time. Driving
// two commons with different segment patterns at once is electrically
// impossible on a multiplexed panel and corrupts both digits, so every
// cycle blanks all commons before moving to the next digit.
type Dev struct {
	commons  []gpio.PinOut
	segments []gpio.PinOut
	store    *Store
	rx       *Receiver
	bus      Transport

	commonAnode bool
	period      time.Duration
	dwell       time.Duration

	// lastCycle is the start of the previous full refresh cycle. Only the
	// scan goroutine touches it.
	lastCycle time.Time
}

// New returns a Dev scanning len(commons) digits. commons are the per-digit
// common connections, segments the eight shared segment lines in A..G, DP
// order. Every pin is driven to its inactive level before New returns, so
// the bank starts blanked.
func New(commons, segments []gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &Opts{DefaultPattern: DefaultPattern}
	}
	if len(commons) < 1 || len(commons) > MaxDigits {
		return nil, errCommonPins
	}
	if len(segments) != NumSegments {
		return nil, errSegmentPins
	}
	d := &Dev{
		commons:     commons,
		segments:    segments,
		store:       NewStore(len(commons), opts.DefaultPattern),
		commonAnode: opts.CommonAnode,
		period:      opts.refreshPeriod(),
		dwell:       opts.dwellTime(),
		bus:         opts.Transport,
	}
	d.rx = NewReceiver(d.store)
	if err := d.blank(); err != nil {
		return nil, fmt.Errorf("megaplexer: blanking bank: %w", err)
	}
	return d, nil
}

// Store returns the digit state store. Renderers read it through Snapshot;
// hosts normally write through the bus, but local writes are fine too.
func (d *Dev) Store() *Store {
	return d.store
}

// active is the level that turns a line on. Common-anode wiring drives
// both commons and segments low to light them; common-cathode drives high.
func (d *Dev) active() gpio.Level {
	return gpio.Level(!d.commonAnode)
}

// inactive is the level that turns a line off.
func (d *Dev) inactive() gpio.Level {
	return gpio.Level(d.commonAnode)
}

// blank drives every common and segment line to its inactive level.
func (d *Dev) blank() error {
	for _, p := range d.commons {
		if err := p.Out(d.inactive()); err != nil {
			return err
		}
	}
	for _, p := range d.segments {
		if err := p.Out(d.inactive()); err != nil {
			return err
		}
	}
	return nil
}

// showDigit lights a single digit: all commons off first so the previous
// digit's segments can't bleed onto this one (ghosting), then this digit's
// common on, then the eight segment lines set from the stored pattern.
func (d *Dev) showDigit(digit int) error {
	for _, p := range d.commons {
		if err := p.Out(d.inactive()); err != nil {
			return err
		}
	}
	if err := d.commons[digit].Out(d.active()); err != nil {
		return err
	}
	pattern := d.store.Read(digit)
	for seg, p := range d.segments {
		lit := pattern&(1<<seg) != 0
		level := d.inactive()
		if lit {
			level = d.active()
		}
		if err := p.Out(level); err != nil {
			return err
		}
	}
	return nil
}

// Refresh runs one full cycle: every digit shown once for the dwell time,
// in index order. It does not wait for the refresh period; use Step or Run
// for paced scanning.
func (d *Dev) Refresh() error {
	start := time.Now()
	for digit := range d.commons {
		if err := d.showDigit(digit); err != nil {
			return err
		}
		time.Sleep(d.dwell)
	}
	refreshCycles.Inc()
	refreshDuration.Observe(time.Since(start).Seconds())
	return nil
}

// Step is one non-blocking turn of the device: drain whatever the host has
// sent, then run a refresh cycle if the refresh period has elapsed since
// the previous one started. It reports whether a cycle ran.
//
// Step is intended to be called from a scheduler tick or a plain loop (see
// Run). Draining before the cycle bounds update latency to one refresh
// period.
func (d *Dev) Step(now time.Time) (bool, error) {
	if d.bus != nil {
		d.rx.Receive(d.bus)
	}
	if now.Sub(d.lastCycle) < d.period {
		return false, nil
	}
	d.lastCycle = now
	if err := d.Refresh(); err != nil {
		return false, err
	}
	return true, nil
}

// Run scans the bank until ctx is cancelled, then blanks it. This is the
// device's operational loop; it only returns on cancellation or a GPIO
// failure.
func (d *Dev) Run(ctx context.Context) error {
	for {
		if _, err := d.Step(time.Now()); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			if err := d.blank(); err != nil {
				return err
			}
			return ctx.Err()
		case <-time.After(time.Until(d.lastCycle.Add(d.period))):
		}
	}
}

// Halt implements conn.Resource. It blanks the bank.
func (d *Dev) Halt() error {
	return d.blank()
}

func (d *Dev) String() string {
	wiring := "cathode"
	if d.commonAnode {
		wiring = "anode"
	}
	return fmt.Sprintf("megaplexer{%d digits, common-%s}", len(d.commons), wiring)
}

var _ conn.Resource = &Dev{}
var _ fmt.Stringer = &Dev{}
