// Copyright 2025 The Megaplexer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			Digits:      6,
			CommonAnode: true,
			CommonPins:  []string{"GPIO3", "GPIO5", "GPIO6", "GPIO9", "GPIO10", "GPIO11"},
			SegmentPins: []string{"GPIO0", "GPIO1", "GPIO2", "GPIO4", "GPIO7", "GPIO8", "GPIO12", "GPIO13"},
		},
		Bus: BusConfig{Port: "/dev/ttyAMA0"},
	}
}

func TestValidateAcceptsValidConfig(t *testing.T) {
	if err := Validate(validConfig()); err != nil {
		t.Fatalf("Validate() failed on a valid config: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	for _, tc := range []struct {
		name    string
		mutate  func(*Config)
		wantSub string
	}{
		{
			name:    "zero digits",
			mutate:  func(c *Config) { c.Display.Digits = 0 },
			wantSub: "display.digits",
		},
		{
			name:    "too many digits",
			mutate:  func(c *Config) { c.Display.Digits = 9 },
			wantSub: "display.digits",
		},
		{
			name:    "common pin count mismatch",
			mutate:  func(c *Config) { c.Display.CommonPins = c.Display.CommonPins[:5] },
			wantSub: "common_pins",
		},
		{
			name:    "wrong segment pin count",
			mutate:  func(c *Config) { c.Display.SegmentPins = append(c.Display.SegmentPins, "GPIO14") },
			wantSub: "segment_pins",
		},
		{
			name:    "duplicate pin",
			mutate:  func(c *Config) { c.Display.SegmentPins[7] = "GPIO3" },
			wantSub: "assigned twice",
		},
		{
			name:    "empty pin name",
			mutate:  func(c *Config) { c.Display.CommonPins[0] = "" },
			wantSub: "empty pin name",
		},
		{
			name:    "negative dwell",
			mutate:  func(c *Config) { c.Display.DwellUs = -1 },
			wantSub: "dwell_us",
		},
		{
			name:    "bad parity",
			mutate:  func(c *Config) { c.Bus.Parity = "X" },
			wantSub: "parity",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			err := Validate(cfg)
			if err == nil {
				t.Fatal("Validate() accepted an invalid config")
			}
			if !strings.Contains(err.Error(), tc.wantSub) {
				t.Errorf("Validate() error %q does not mention %q", err, tc.wantSub)
			}
		})
	}
}

func TestValidateIgnoresBusWhenPortUnset(t *testing.T) {
	cfg := validConfig()
	cfg.Bus = BusConfig{Parity: "X"} // no port, parity never inspected
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := validConfig()
	Normalize(cfg)

	if cfg.Display.RefreshUs != 2000 {
		t.Errorf("refresh_us = %d, want 2000", cfg.Display.RefreshUs)
	}
	if cfg.Display.DwellUs != 2 {
		t.Errorf("dwell_us = %d, want 2", cfg.Display.DwellUs)
	}
	if cfg.Bus.BaudRate != 115200 || cfg.Bus.DataBits != 8 || cfg.Bus.StopBits != 1 || cfg.Bus.Parity != "N" {
		t.Errorf("bus defaults not applied: %+v", cfg.Bus)
	}
	if cfg.Server.Bind != ":8080" {
		t.Errorf("server.bind = %q, want :8080", cfg.Server.Bind)
	}
}

func TestNormalizeKeepsExplicitValues(t *testing.T) {
	cfg := validConfig()
	cfg.Display.RefreshUs = 5000
	cfg.Bus.BaudRate = 9600
	Normalize(cfg)

	if cfg.Display.RefreshUs != 5000 {
		t.Errorf("refresh_us = %d, want 5000", cfg.Display.RefreshUs)
	}
	if cfg.Bus.BaudRate != 9600 {
		t.Errorf("baud_rate = %d, want 9600", cfg.Bus.BaudRate)
	}
}
