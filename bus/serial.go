// Copyright 2025 The Megaplexer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package bus provides byte transports carrying host updates to the
// megaplexer driver. The wire format is any number of complete
// [digitIndex, segmentPattern] pairs per transaction.
package bus

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/goburrow/serial"
)

// SerialOpts configures a serial port transport. Only Port is mandatory.
type SerialOpts struct {
	// Port is the device path, e.g. "/dev/ttyAMA0".
	Port string
	// BaudRate defaults to 115200.
	BaudRate int
	// DataBits defaults to 8.
	DataBits int
	// StopBits defaults to 1.
	StopBits int
	// Parity is "N", "E" or "O". Defaults to "N".
	Parity string
	// Timeout bounds each port read so the transport can notice Close.
	// Defaults to 500ms.
	Timeout time.Duration
}

// Serial buffers bytes read from a serial port and hands them to the
// update receiver. A reader goroutine drains the port continuously, so a
// slow scan loop never backpressures the host.
type Serial struct {
	port io.ReadCloser

	mu  sync.Mutex
	buf []byte
	err error

	closed chan struct{}
}

// OpenSerial opens the port described by opts and returns a transport
// draining it.
func OpenSerial(opts *SerialOpts) (*Serial, error) {
	cfg := &serial.Config{
		Address:  opts.Port,
		BaudRate: opts.BaudRate,
		DataBits: opts.DataBits,
		StopBits: opts.StopBits,
		Parity:   opts.Parity,
		Timeout:  opts.Timeout,
	}
	if cfg.BaudRate == 0 {
		cfg.BaudRate = 115200
	}
	if cfg.DataBits == 0 {
		cfg.DataBits = 8
	}
	if cfg.StopBits == 0 {
		cfg.StopBits = 1
	}
	if cfg.Parity == "" {
		cfg.Parity = "N"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 500 * time.Millisecond
	}
	port, err := serial.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("bus: opening %s: %w", opts.Port, err)
	}
	return NewFromPort(port), nil
}

// NewFromPort wraps an already open port. Useful for tests and for ports
// not opened through the serial package.
func NewFromPort(port io.ReadCloser) *Serial {
	s := &Serial{port: port, closed: make(chan struct{})}
	go s.read()
	return s
}

func (s *Serial) read() {
	b := make([]byte, 64)
	for {
		n, err := s.port.Read(b)
		s.mu.Lock()
		if n > 0 {
			s.buf = append(s.buf, b[:n]...)
		}
		if err != nil && err != serial.ErrTimeout {
			s.err = err
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()
		select {
		case <-s.closed:
			return
		default:
		}
	}
}

// Buffered returns the number of received bytes not yet consumed.
func (s *Serial) Buffered() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buf)
}

// ReadByte pops the oldest received byte. When the buffer is empty it
// returns the port error if the reader goroutine died, or io.EOF.
func (s *Serial) ReadByte() (byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.buf) == 0 {
		if s.err != nil {
			return 0, s.err
		}
		return 0, io.EOF
	}
	b := s.buf[0]
	s.buf = s.buf[1:]
	return b, nil
}

// Err returns the sticky port error, if any.
func (s *Serial) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close stops the reader goroutine and closes the port.
func (s *Serial) Close() error {
	close(s.closed)
	return s.port.Close()
}

func (s *Serial) String() string {
	return "bus.Serial"
}

var _ io.Closer = &Serial{}
