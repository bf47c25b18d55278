// Copyright 2025 The Megaplexer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// megaplexerd drives a bank of multiplexed seven-segment displays from a
// YAML-described set of GPIO pins, accepting per-digit updates over a
// serial port and exposing Prometheus metrics and a PNG snapshot of the
// bank over HTTP.
//
// With -sim the bank is emulated at the terminal instead of driving real
// pins, which is handy for bench work before the hardware exists.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	megaplexer "github.com/Sidpatchy/Megaplexer"
	"github.com/Sidpatchy/Megaplexer/bus"
	"github.com/Sidpatchy/Megaplexer/internal/config"
	"github.com/Sidpatchy/Megaplexer/segimage"
	"github.com/Sidpatchy/Megaplexer/segterm"
)

var (
	cfgPath = flag.String("config", "megaplexer.yaml", "path to the YAML configuration")
	sim     = flag.Bool("sim", false, "emulate the bank at the terminal instead of driving GPIO")
)

func realPins(cfg *config.DisplayConfig) (commons, segments []gpio.PinOut, err error) {
	if _, err := host.Init(); err != nil {
		return nil, nil, err
	}
	for _, name := range cfg.CommonPins {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, nil, errors.New("no such pin " + name)
		}
		commons = append(commons, p)
	}
	for _, name := range cfg.SegmentPins {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, nil, errors.New("no such pin " + name)
		}
		segments = append(segments, p)
	}
	return commons, segments, nil
}

func main() {
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Pins: real GPIO, or the terminal emulator under -sim.
	var commons, segments []gpio.PinOut
	var term *segterm.Dev
	if *sim {
		term = segterm.New(&segterm.Opts{
			Digits:      cfg.Display.Digits,
			CommonAnode: cfg.Display.CommonAnode,
		})
		commons, segments = term.Commons(), term.Segments()
	} else {
		commons, segments, err = realPins(&cfg.Display)
		if err != nil {
			log.Fatalf("resolving pins: %v", err)
		}
	}

	// Host updates over the serial bus, when configured.
	var transport megaplexer.Transport
	if cfg.Bus.Port != "" {
		serial, err := bus.OpenSerial(&bus.SerialOpts{
			Port:     cfg.Bus.Port,
			BaudRate: cfg.Bus.BaudRate,
			DataBits: cfg.Bus.DataBits,
			StopBits: cfg.Bus.StopBits,
			Parity:   cfg.Bus.Parity,
			Timeout:  time.Duration(cfg.Bus.TimeoutMs) * time.Millisecond,
		})
		if err != nil {
			log.Fatalf("opening bus: %v", err)
		}
		defer serial.Close()
		transport = serial
	}

	dev, err := megaplexer.New(commons, segments, &megaplexer.Opts{
		CommonAnode:    cfg.Display.CommonAnode,
		RefreshPeriod:  time.Duration(cfg.Display.RefreshUs) * time.Microsecond,
		DwellTime:      time.Duration(cfg.Display.DwellUs) * time.Microsecond,
		DefaultPattern: cfg.Display.DefaultPattern,
		Transport:      transport,
	})
	if err != nil {
		log.Fatalf("init display: %v", err)
	}
	log.Printf("driving %s", dev)

	// Metrics and a PNG snapshot of the bank.
	http.Handle("/metrics", promhttp.Handler())
	http.Handle("/display.png", &segimage.Handler{
		Renderer: segimage.NewRenderer(&segimage.Opts{
			Digits:    cfg.Display.Digits,
			LabelFace: segimage.DefaultLabelFace,
		}),
		Snapshot: dev.Store().Snapshot,
	})
	httpServer := &http.Server{Addr: cfg.Server.Bind}
	go func() {
		log.Printf("http server listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("http server: %v", err)
			cancel()
		}
	}()

	if term != nil {
		go func() {
			tick := time.NewTicker(100 * time.Millisecond)
			defer tick.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-tick.C:
					if _, err := term.Refresh(); err != nil {
						return
					}
				}
			}
		}()
	}

	err = dev.Run(ctx)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer shutdownCancel()
	_ = httpServer.Shutdown(shutdownCtx)
	if term != nil {
		_ = term.Halt()
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("scan loop: %v", err)
	}
	log.Print("bank blanked, exiting")
}
