// Copyright 2025 The Megaplexer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package segterm emulates a bank of multiplexed seven-segment digits at
// the terminal (stdout) using ANSI color codes.
//
// Useful while you are waiting for your displays to come by mail: the
// emulator exposes fake common and segment pins, so the real scan driver
// runs against it unchanged. While exactly one common line is at its
// active level, segment line writes latch into that digit's slot, exactly
// like the persistence of vision the physical panel relies on.
package segterm

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"sync"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

const numSegments = 8

var errPWM = errors.New("segterm: PWM not supported")

// Opts represents the options available for this emulator.
type Opts struct {
	// Digits is the number of emulated digits.
	Digits int
	// CommonAnode must match the polarity the scan driver is configured
	// with, or everything shows inverted.
	CommonAnode bool
	// Palette defaults to ansi256.Default.
	Palette *ansi256.Palette
	// Writer defaults to a colorable stdout.
	Writer io.Writer

	_ struct{}
}

// Dev is a digit bank emulator that renders to the console.
type Dev struct {
	w       io.Writer
	palette ansi256.Palette
	anode   bool

	mu           sync.Mutex
	commonLevels []gpio.Level
	segLevels    [numSegments]gpio.Level
	active       int // digit with the sole active common, or -1
	frame        []byte
	buf          bytes.Buffer

	commons  []gpio.PinOut
	segments []gpio.PinOut
}

// New returns a Dev emulating opts.Digits digits at the console.
func New(opts *Opts) *Dev {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.Writer
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	d := &Dev{
		w:            w,
		palette:      *p,
		anode:        opts.CommonAnode,
		commonLevels: make([]gpio.Level, opts.Digits),
		active:       -1,
		frame:        make([]byte, opts.Digits),
	}
	inactive := d.inactiveLevel()
	for i := range d.commonLevels {
		d.commonLevels[i] = inactive
	}
	for i := range d.segLevels {
		d.segLevels[i] = inactive
	}
	for i := 0; i < opts.Digits; i++ {
		d.commons = append(d.commons, &linePin{dev: d, common: true, index: i})
	}
	for i := 0; i < numSegments; i++ {
		d.segments = append(d.segments, &linePin{dev: d, index: i})
	}
	return d
}

func (d *Dev) activeLevel() gpio.Level {
	return gpio.Level(!d.anode)
}

func (d *Dev) inactiveLevel() gpio.Level {
	return gpio.Level(d.anode)
}

// Commons returns the fake per-digit common pins, in digit order.
func (d *Dev) Commons() []gpio.PinOut {
	return d.commons
}

// Segments returns the fake segment pins in A..G, DP order.
func (d *Dev) Segments() []gpio.PinOut {
	return d.segments
}

// Frame returns a copy of the latched segment patterns, one byte per
// digit, in the abstract bit layout (1 = lit).
func (d *Dev) Frame() []byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]byte, len(d.frame))
	copy(out, d.frame)
	return out
}

// drive is called by the fake pins for every level change.
func (d *Dev) drive(common bool, index int, l gpio.Level) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if common {
		d.commonLevels[index] = l
		d.active = -1
		n := 0
		for i, cl := range d.commonLevels {
			if cl == d.activeLevel() {
				n++
				d.active = i
			}
		}
		if n != 1 {
			d.active = -1
		}
		return
	}
	d.segLevels[index] = l
	if d.active < 0 {
		return
	}
	if l == d.activeLevel() {
		d.frame[d.active] |= 1 << index
	} else {
		d.frame[d.active] &^= 1 << index
	}
}

// Refresh redraws the bank on the current console line: a block per
// segment (A..G then the decimal point), a gap between digits. Lit
// segments render bright red, dark ones a dim ember.
func (d *Dev) Refresh() (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	lit := color.NRGBA{0xFF, 0x20, 0x10, 0xFF}
	dark := color.NRGBA{0x1C, 0x08, 0x04, 0xFF}
	// This code is designed to minimize the amount of memory allocated
	// per call.
	d.buf.Reset()
	_, _ = d.buf.WriteString("\r\033[0m")
	for digit, pattern := range d.frame {
		if digit > 0 {
			_, _ = d.buf.WriteString(" ")
		}
		for seg := 0; seg < numSegments; seg++ {
			c := dark
			if pattern&(1<<seg) != 0 {
				c = lit
			}
			_, _ = io.WriteString(&d.buf, d.palette.Block(c))
		}
	}
	_, _ = d.buf.WriteString("\033[0m")
	n := len(d.frame)
	_, err := d.buf.WriteTo(d.w)
	return n, err
}

// Halt implements conn.Resource.
//
// It moves past the emulated bank so the terminal is not corrupted.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

func (d *Dev) String() string {
	return fmt.Sprintf("segterm{%d digits}", len(d.frame))
}

// linePin is one emulated output line, either a digit common or a shared
// segment line.
type linePin struct {
	dev    *Dev
	common bool
	index  int
}

func (p *linePin) Name() string {
	if p.common {
		return fmt.Sprintf("SEGTERM_COM%d", p.index)
	}
	return fmt.Sprintf("SEGTERM_SEG%d", p.index)
}

func (p *linePin) String() string {
	return p.Name()
}

func (p *linePin) Number() int {
	return p.index
}

func (p *linePin) Function() string {
	return "Out"
}

func (p *linePin) Out(l gpio.Level) error {
	p.dev.drive(p.common, p.index, l)
	return nil
}

func (p *linePin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return errPWM
}

func (p *linePin) Halt() error {
	return nil
}

var _ gpio.PinOut = &linePin{}
var _ fmt.Stringer = &Dev{}
