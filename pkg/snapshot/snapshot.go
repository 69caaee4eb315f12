// pkg/snapshot/snapshot.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package snapshot records the outcome of one advisory computation (the
// urgent intruder's callsign, the resulting IntervalList, and when it
// ran) for later offline analysis; the BandsQuery inputs themselves are
// not recorded. It compresses the
// recorded form with zstd at the best-compression level and dumps a
// human-readable form with go-spew for debugging.
package snapshot

import (
	"fmt"
	"io"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/skywatch-systems/daaband/pkg/daa"
)

// Record is one recorded advisory computation: which intruder was
// treated as urgent, the bands that resulted, and when it happened.
type Record struct {
	Callsign   string           `msgpack:"callsign"`
	Bands      daa.IntervalList `msgpack:"bands"`
	ComputedAt time.Time        `msgpack:"computed_at"`
}

// WriteCompressed msgpack-encodes rec and writes it to w through a zstd
// encoder at the best-compression level — snapshots are written rarely
// (once per replay checkpoint) and read much less often than they're
// produced, so favoring ratio over encode speed is the right trade, the
// same way cmd/wxingest's StoreObject pairs msgpack with a best-
// compression zstd writer for its own rarely-read cached resources.
func WriteCompressed(w io.Writer, rec Record) error {
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return fmt.Errorf("snapshot: creating zstd writer: %w", err)
	}
	if err := msgpack.NewEncoder(zw).Encode(rec); err != nil {
		zw.Close()
		return fmt.Errorf("snapshot: encoding record: %w", err)
	}
	return zw.Close()
}

// ReadCompressed reads and decodes a Record written by WriteCompressed.
func ReadCompressed(r io.Reader) (Record, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return Record{}, fmt.Errorf("snapshot: creating zstd reader: %w", err)
	}
	defer zr.Close()

	var rec Record
	if err := msgpack.NewDecoder(zr).Decode(&rec); err != nil {
		return Record{}, fmt.Errorf("snapshot: decoding record: %w", err)
	}
	return rec, nil
}

// Dump returns a human-readable rendering of rec, for debugging a
// replayed snapshot that produced an unexpected band.
func Dump(rec Record) string {
	return spew.Sdump(rec)
}
