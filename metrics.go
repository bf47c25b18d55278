// Copyright 2025 The Megaplexer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package megaplexer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	refreshCycles = promauto.NewCounter(prometheus.CounterOpts{
		Name: "megaplexer_refresh_cycles_total",
		Help: "count of full refresh cycles (every digit shown once)",
	})

	refreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "megaplexer_refresh_duration_seconds",
		Help:    "wall time spent driving one full refresh cycle",
		Buckets: prometheus.ExponentialBuckets(1e-6, 10, 8),
	})

	updatesApplied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "megaplexer_updates_applied_total",
		Help: "count of inbound digit updates written to the store",
	})

	updatesDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "megaplexer_updates_dropped_total",
		Help: "count of inbound digit updates dropped for an out-of-range index",
	})
)
