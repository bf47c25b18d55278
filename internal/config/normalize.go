// Copyright 2025 The Megaplexer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package config

// Normalize fills in defaults. It is allowed to mutate configuration and
// MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}
	d := &cfg.Display
	if d.RefreshUs == 0 {
		d.RefreshUs = 2000
	}
	if d.DwellUs == 0 {
		d.DwellUs = 2
	}

	b := &cfg.Bus
	if b.Port != "" {
		if b.BaudRate == 0 {
			b.BaudRate = 115200
		}
		if b.DataBits == 0 {
			b.DataBits = 8
		}
		if b.StopBits == 0 {
			b.StopBits = 1
		}
		if b.Parity == "" {
			b.Parity = "N"
		}
		if b.TimeoutMs == 0 {
			b.TimeoutMs = 500
		}
	}

	if cfg.Server.Bind == "" {
		cfg.Server.Bind = ":8080"
	}
}
