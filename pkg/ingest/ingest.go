// pkg/ingest/ingest.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package ingest subscribes to a NATS subject carrying traffic reports,
// decodes them into traffic.TrafficState values, and caches the latest
// ownship/traffic snapshot in Redis so a cold-started advisory worker
// can recover state without replaying the whole feed — the same
// ingest-then-cache shape the pack's SBS logger uses for ADS-B messages.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"

	"github.com/skywatch-systems/daaband/pkg/geom"
	"github.com/skywatch-systems/daaband/pkg/log"
	"github.com/skywatch-systems/daaband/pkg/traffic"
)

// Report is the wire shape of one traffic position report arriving on
// the NATS subject: a single aircraft's callsign, position, and
// velocity, plus a flag marking it as the ownship rather than an
// intruder.
type Report struct {
	Callsign string     `json:"callsign"`
	Ownship  bool       `json:"ownship"`
	Position geom.Vect3 `json:"position"`
	Velocity geom.Vect3 `json:"velocity"`
}

// Cache is a Redis-backed store of the most recently ingested ownship
// state and per-callsign intruder states, keyed the way the pack's SBS
// logger keys per-aircraft Redis entries, so state survives an advisory
// worker restart without replaying the NATS subject from the start.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCache connects to Redis at addr. ttl bounds how long a traffic
// report is trusted before it's treated as stale and dropped from
// TrafficState() — an intruder whose feed has gone silent eventually
// stops influencing the bands computation instead of lingering forever.
func NewCache(addr string, ttl time.Duration) (*Cache, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ingest: connecting to redis: %w", err)
	}
	return &Cache{rdb: rdb, ttl: ttl}, nil
}

func (c *Cache) Close() error {
	return c.rdb.Close()
}

func ownshipKey() string            { return "daaband:ownship" }
func trafficKey(callsign string) string { return "daaband:traffic:" + callsign }

// Put stores one decoded report, keyed by callsign, with the cache's
// configured TTL.
func (c *Cache) Put(ctx context.Context, r Report) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("ingest: marshaling report: %w", err)
	}
	key := trafficKey(r.Callsign)
	if r.Ownship {
		key = ownshipKey()
	}
	return c.rdb.Set(ctx, key, data, c.ttl).Err()
}

// Ownship returns the most recently cached ownship state, or
// traffic.OwnshipState{} (invalid) if none has been reported yet.
func (c *Cache) Ownship(ctx context.Context) (traffic.OwnshipState, error) {
	data, err := c.rdb.Get(ctx, ownshipKey()).Bytes()
	if err == redis.Nil {
		return traffic.OwnshipState{}, nil
	}
	if err != nil {
		return traffic.OwnshipState{}, fmt.Errorf("ingest: reading ownship: %w", err)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return traffic.OwnshipState{}, fmt.Errorf("ingest: unmarshaling ownship: %w", err)
	}
	return traffic.MakeOwnshipState(traffic.ADSBCallsign(r.Callsign), r.Position, r.Velocity), nil
}

// TrafficState returns the cached state for one callsign, or
// traffic.Invalid if nothing has been reported (or it has expired).
func (c *Cache) TrafficState(ctx context.Context, callsign string) (traffic.TrafficState, error) {
	data, err := c.rdb.Get(ctx, trafficKey(callsign)).Bytes()
	if err == redis.Nil {
		return traffic.Invalid, nil
	}
	if err != nil {
		return traffic.Invalid, fmt.Errorf("ingest: reading traffic %s: %w", callsign, err)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return traffic.Invalid, fmt.Errorf("ingest: unmarshaling traffic %s: %w", callsign, err)
	}
	return traffic.MakeTrafficState(traffic.ADSBCallsign(r.Callsign), r.Position, r.Velocity), nil
}

// Traffic scans the cache for every currently-tracked intruder, the way
// the pack's SBS logger walks its own per-aircraft Redis keyspace to
// rebuild a traffic picture after a restart. Expired entries simply
// don't come back from the scan, so callers never see stale state.
func (c *Cache) Traffic(ctx context.Context) ([]traffic.TrafficState, error) {
	var out []traffic.TrafficState
	iter := c.rdb.Scan(ctx, 0, "daaband:traffic:*", 0).Iterator()
	for iter.Next(ctx) {
		data, err := c.rdb.Get(ctx, iter.Val()).Bytes()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("ingest: scanning traffic: %w", err)
		}
		var r Report
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("ingest: unmarshaling traffic %s: %w", iter.Val(), err)
		}
		out = append(out, traffic.MakeTrafficState(traffic.ADSBCallsign(r.Callsign), r.Position, r.Velocity))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("ingest: scanning traffic: %w", err)
	}
	return out, nil
}

// Subscriber consumes traffic reports from a NATS subject and caches
// each one, logging decode failures rather than aborting the feed.
type Subscriber struct {
	nc    *nats.Conn
	cache *Cache
	lg    *log.Logger
}

// NewSubscriber connects to the NATS server at url.
func NewSubscriber(url string, cache *Cache, lg *log.Logger) (*Subscriber, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("ingest: connecting to nats: %w", err)
	}
	return &Subscriber{nc: nc, cache: cache, lg: lg}, nil
}

// Subscribe begins consuming reports on subject, caching each one as it
// arrives. It returns once the subscription is established; delivery
// happens on NATS's own dispatch goroutine.
func (s *Subscriber) Subscribe(subject string) error {
	_, err := s.nc.Subscribe(subject, func(msg *nats.Msg) {
		var r Report
		if err := json.Unmarshal(msg.Data, &r); err != nil {
			s.lg.Warnf("ingest: malformed report on %s: %v", subject, err)
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.cache.Put(ctx, r); err != nil {
			s.lg.Warnf("ingest: caching report for %s: %v", r.Callsign, err)
		}
	})
	if err != nil {
		return fmt.Errorf("ingest: subscribing to %s: %w", subject, err)
	}
	return nil
}

func (s *Subscriber) Close() {
	s.nc.Close()
}
