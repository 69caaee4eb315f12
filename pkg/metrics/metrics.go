// pkg/metrics/metrics.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package metrics exposes Prometheus counters and histograms around the
// advisory loop: queries served, bands computed per side, urgent-
// intruder switches, and computation latency — grounded in the pack's
// constellation simulator's use of prometheus/client_golang around its
// propagation loop.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the advisory engine's Prometheus metrics.
type Collector struct {
	QueriesServed      prometheus.Counter
	BandsComputed      *prometheus.CounterVec // labeled "left"/"right"
	UrgentSwitches     prometheus.Counter
	ComputationSeconds prometheus.Histogram
}

// NewCollector registers the engine's metrics against reg, defaulting to
// the global Prometheus registry when reg is nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	queries := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "daaband_queries_served_total",
		Help: "Total number of KinematicBandsCombine queries served.",
	})
	if err := reg.Register(queries); err != nil {
		return nil, err
	}

	bands := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "daaband_bands_computed_total",
		Help: "Total number of per-side kinematic bands computations, labeled by side.",
	}, []string{"side"})
	if err := reg.Register(bands); err != nil {
		return nil, err
	}

	switches := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "daaband_urgent_switches_total",
		Help: "Total number of times the most-urgent intruder changed between queries.",
	})
	if err := reg.Register(switches); err != nil {
		return nil, err
	}

	latency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "daaband_computation_seconds",
		Help:    "Wall-clock time spent inside one KinematicBandsCombine call.",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14),
	})
	if err := reg.Register(latency); err != nil {
		return nil, err
	}

	return &Collector{
		QueriesServed:      queries,
		BandsComputed:      bands,
		UrgentSwitches:     switches,
		ComputationSeconds: latency,
	}, nil
}

// Handler returns the HTTP handler to serve on the metrics listen
// address configured in pkg/config.
func Handler() http.Handler {
	return promhttp.Handler()
}
