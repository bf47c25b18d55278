// Copyright 2025 The Megaplexer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package config loads and validates the megaplexerd YAML configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Display DisplayConfig `yaml:"display"`
	Bus     BusConfig     `yaml:"bus"`
	Server  ServerConfig  `yaml:"server"`
}

// ---- DISPLAY ----

type DisplayConfig struct {
	Digits      int  `yaml:"digits"`
	CommonAnode bool `yaml:"common_anode"`

	// Pin names resolved through the host GPIO registry, one common per
	// digit and exactly eight segments in A..G, DP order.
	CommonPins  []string `yaml:"common_pins"`
	SegmentPins []string `yaml:"segment_pins"`

	RefreshUs int `yaml:"refresh_us"`
	DwellUs   int `yaml:"dwell_us"`

	// DefaultPattern is the power-on pattern for every digit.
	DefaultPattern byte `yaml:"default_pattern"`
}

// ---- BUS ----

type BusConfig struct {
	Port      string `yaml:"port"`
	BaudRate  int    `yaml:"baud_rate"`
	DataBits  int    `yaml:"data_bits"`
	StopBits  int    `yaml:"stop_bits"`
	Parity    string `yaml:"parity"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// ---- SERVER ----

type ServerConfig struct {
	Bind string `yaml:"bind"`
}

// Load reads, validates and normalizes the configuration at path.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	Normalize(&cfg)
	return &cfg, nil
}
