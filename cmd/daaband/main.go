// cmd/daaband/main.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// daaband is the thin CLI entry point for the detect-and-avoid advisory
// engine: it loads configuration, wires a CD3D detector, a kinematic
// sampler, and the NATS/Redis ingestion pipeline, picks the most urgent
// intruder, runs one bands computation against the cached traffic
// picture, and prints (and optionally persists) the result.
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"net/http"
	"os"
	"time"

	"github.com/skywatch-systems/daaband/pkg/config"
	"github.com/skywatch-systems/daaband/pkg/criteria"
	"github.com/skywatch-systems/daaband/pkg/daa"
	"github.com/skywatch-systems/daaband/pkg/detect"
	"github.com/skywatch-systems/daaband/pkg/ingest"
	"github.com/skywatch-systems/daaband/pkg/log"
	"github.com/skywatch-systems/daaband/pkg/metrics"
	"github.com/skywatch-systems/daaband/pkg/sampler"
	"github.com/skywatch-systems/daaband/pkg/store"
	"github.com/skywatch-systems/daaband/pkg/traffic"
	"github.com/skywatch-systems/daaband/pkg/util"
)

var (
	configFile  = flag.String("config", "", "path to YAML configuration file")
	logLevel    = flag.String("loglevel", "", "logging level: debug, info, warn, error (overrides config)")
	logDir      = flag.String("logdir", "", "log file directory (overrides config)")
	axis        = flag.String("axis", "heading", "maneuver axis to band: heading, speed, or vertical")
	maxL        = flag.Int("maxl", 30, "max sample index on the left/turn-down/decelerate/descend side")
	maxR        = flag.Int("maxr", 30, "max sample index on the right/turn-up/accelerate/climb side")
	turnRateDeg = flag.Float64("turnrate", 3, "assumed standard-rate turn, degrees/second")
	accelKts    = flag.Float64("accel", 2, "assumed speed-change acceleration, knots/second")
	vsAccelFpm  = flag.Float64("vsaccel", 100, "assumed vertical-rate acceleration, feet/minute/second")
	epsH        = flag.Int("epsh", 1, "horizontal repulsion sign: -1, 0 (disabled), or 1")
	epsV        = flag.Int("epsv", 1, "vertical repulsion sign: -1, 0 (disabled), or 1")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *logDir != "" {
		cfg.LogDir = *logDir
	}
	lg := log.New(cfg.LogLevel, cfg.LogDir)

	if !cfg.Ingest.Enable {
		fmt.Fprintln(os.Stderr, "daaband: ingest must be enabled in config; there is no other source of traffic")
		os.Exit(1)
	}

	det := detect.New(cfg.NMAC.D, cfg.NMAC.H)

	var coll *metrics.Collector
	if cfg.Metrics.Enable {
		coll, err = metrics.NewCollector(nil)
		if err != nil {
			lg.Errorf("metrics: %v", err)
		} else {
			go func() {
				lg.Infof("metrics listening on %s", cfg.Metrics.Listen)
				srv := &http.Server{Addr: cfg.Metrics.Listen, Handler: metrics.Handler()}
				if err := srv.ListenAndServe(); err != nil {
					lg.Errorf("metrics server: %v", err)
				}
			}()
		}
	}

	var st *store.Store
	if cfg.Store.Enable {
		st, err = store.Open(cfg.Store.DSN)
		if err != nil {
			lg.Errorf("store: %v", err)
			os.Exit(1)
		}
		defer st.Close()
	}

	cache, err := ingest.NewCache(cfg.Ingest.RedisAddr, time.Hour)
	if err != nil {
		lg.Errorf("ingest: %v", err)
		os.Exit(1)
	}
	defer cache.Close()

	sub, err := ingest.NewSubscriber(cfg.Ingest.NATSURL, cache, lg)
	if err != nil {
		lg.Errorf("ingest: %v", err)
		os.Exit(1)
	}
	if err := sub.Subscribe(cfg.Ingest.Subject); err != nil {
		lg.Errorf("ingest: %v", err)
		os.Exit(1)
	}
	defer sub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	own, err := cache.Ownship(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if !own.IsValid() {
		fmt.Fprintln(os.Stderr, "daaband: no ownship state cached yet")
		os.Exit(1)
	}
	tfc, err := cache.Traffic(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	tfc = util.FilterSlice(tfc, traffic.TrafficState.IsValid)

	urgent := daa.MostUrgent(det, own, tfc, cfg.NMAC.D, cfg.NMAC.H, cfg.Windows.LookaheadSeconds)

	q := &daa.BandsQuery{
		ConflictDet: det,
		Sampler:     axisSampler(*axis, *turnRateDeg, *accelKts, *vsAccelFpm),
		Criteria:    criteria.Kit{},
		TStep:       cfg.Windows.StepSeconds,
		B:           0,
		T:           cfg.Windows.LookaheadSeconds,
		MaxL:        *maxL,
		MaxR:        *maxR,
		Ownship:     own,
		Traffic:     tfc,
		Repac:       urgent,
		EpsH:        *epsH,
		EpsV:        *epsV,
		Dir:         daa.DirBoth,
	}
	if cfg.Windows.EnableRecovery {
		q.RecoveryDet = det
		q.B2, q.T2 = cfg.Windows.RecoveryBegin, cfg.Windows.RecoveryEnd
	}
	start := time.Now()
	bands := q.KinematicBandsCombine()

	if coll != nil {
		coll.QueriesServed.Inc()
		coll.ComputationSeconds.Observe(time.Since(start).Seconds())
	}

	callsign := util.Select(urgent.IsValid(), string(urgent.Callsign), "")
	fmt.Printf("urgent intruder: %q\n", callsign)
	fmt.Printf("bands (signed %s sample indices, step=%gs): %v\n", *axis, cfg.Windows.StepSeconds, bands)

	if st != nil {
		id, err := st.SaveAdvisory(store.Advisory{Callsign: callsign, Bands: bands, ComputedAt: time.Now()})
		if err != nil {
			lg.Errorf("store: %v", err)
		} else {
			lg.Infof("saved advisory %s", id)
		}
	}
}

// axisSampler picks the single-axis TrajectorySampler the CLI computes
// bands against. A real advisory display would band all three axes and
// union them, but one axis at a time keeps the CLI's output readable and
// exercises each sampler independently.
func axisSampler(axis string, turnRateDeg, accelKts, vsAccelFpm float64) daa.TrajectorySampler {
	switch axis {
	case "speed":
		return sampler.Speed{AccelPerSec: accelKts, MaxDeltaSpeed: math.MaxFloat64}
	case "vertical":
		return sampler.Vertical{AccelPerSec: vsAccelFpm / 60, MaxDeltaRate: math.MaxFloat64}
	default:
		return sampler.Heading{RateRadPerSec: turnRateDeg * math.Pi / 180}
	}
}
