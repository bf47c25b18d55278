// Copyright 2025 The Megaplexer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package config

import (
	"fmt"

	megaplexer "github.com/Sidpatchy/Megaplexer"
)

// Validate checks structural correctness. It performs no mutation; call
// Normalize afterwards for defaults.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: empty configuration")
	}
	d := &cfg.Display

	if d.Digits < 1 || d.Digits > megaplexer.MaxDigits {
		return fmt.Errorf("config: display.digits must be 1..%d, got %d", megaplexer.MaxDigits, d.Digits)
	}
	if len(d.CommonPins) != d.Digits {
		return fmt.Errorf("config: display.common_pins has %d entries for %d digits", len(d.CommonPins), d.Digits)
	}
	if len(d.SegmentPins) != megaplexer.NumSegments {
		return fmt.Errorf("config: display.segment_pins needs exactly %d entries, got %d", megaplexer.NumSegments, len(d.SegmentPins))
	}
	seen := map[string]bool{}
	for _, name := range append(append([]string{}, d.CommonPins...), d.SegmentPins...) {
		if name == "" {
			return fmt.Errorf("config: empty pin name")
		}
		if seen[name] {
			return fmt.Errorf("config: pin %q assigned twice", name)
		}
		seen[name] = true
	}
	if d.RefreshUs < 0 || d.DwellUs < 0 {
		return fmt.Errorf("config: refresh_us and dwell_us must not be negative")
	}

	b := &cfg.Bus
	if b.Port != "" {
		switch b.Parity {
		case "", "N", "E", "O":
		default:
			return fmt.Errorf("config: bus.parity must be N, E or O, got %q", b.Parity)
		}
		if b.BaudRate < 0 || b.TimeoutMs < 0 {
			return fmt.Errorf("config: bus.baud_rate and bus.timeout_ms must not be negative")
		}
	}
	return nil
}
