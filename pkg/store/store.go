// pkg/store/store.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package store persists computed advisories — the urgent intruder, the
// resulting combined bands, and when they were computed — to PostgreSQL,
// mirroring the pack's SBS logger Postgres sink.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/google/uuid"
	"github.com/skywatch-systems/daaband/pkg/daa"
)

// Advisory is one recorded bands computation: which intruder was
// treated as urgent, the combined signed IntervalList that resulted,
// and when the computation ran.
type Advisory struct {
	ID        uuid.UUID
	Callsign  string // urgent intruder's callsign, "" if none was selected
	Bands     daa.IntervalList
	ComputedAt time.Time
}

// Store wraps a *sql.DB opened against a PostgreSQL DSN.
type Store struct {
	db *sql.DB
}

// Open connects to the PostgreSQL database at dsn.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: opening database: %w", err)
	}
	return &Store{db: db}, nil
}

// New wraps an already-open *sql.DB, for tests that inject a sqlmock.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveAdvisory inserts one computed advisory, assigning it a fresh
// random ID.
func (s *Store) SaveAdvisory(a Advisory) (uuid.UUID, error) {
	id := uuid.New()
	encoded := encodeBands(a.Bands)
	const q = `
		INSERT INTO advisories (id, callsign, bands, computed_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := s.db.Exec(q, id, a.Callsign, encoded, a.ComputedAt); err != nil {
		return uuid.Nil, fmt.Errorf("store: inserting advisory: %w", err)
	}
	return id, nil
}

// LoadAdvisory retrieves one previously saved advisory by ID.
func (s *Store) LoadAdvisory(id uuid.UUID) (Advisory, error) {
	const q = `SELECT callsign, bands, computed_at FROM advisories WHERE id = $1`
	var callsign, encoded string
	var computedAt time.Time
	if err := s.db.QueryRow(q, id).Scan(&callsign, &encoded, &computedAt); err != nil {
		return Advisory{}, fmt.Errorf("store: loading advisory %s: %w", id, err)
	}
	bands, err := decodeBands(encoded)
	if err != nil {
		return Advisory{}, fmt.Errorf("store: decoding advisory %s: %w", id, err)
	}
	return Advisory{ID: id, Callsign: callsign, Bands: bands, ComputedAt: computedAt}, nil
}

// encodeBands serializes an IntervalList as a compact "lb:ub,lb:ub,..."
// string; the bands core's own types stay free of any (de)serialization
// concerns, so this lives entirely in the persistence layer.
func encodeBands(l daa.IntervalList) string {
	s := ""
	for i, iv := range l {
		if i > 0 {
			s += ","
		}
		s += fmt.Sprintf("%d:%d", iv.LB, iv.UB)
	}
	return s
}

func decodeBands(s string) (daa.IntervalList, error) {
	if s == "" {
		return nil, nil
	}
	var out daa.IntervalList
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			var lb, ub int
			if _, err := fmt.Sscanf(s[start:i], "%d:%d", &lb, &ub); err != nil {
				return nil, fmt.Errorf("malformed interval %q: %w", s[start:i], err)
			}
			out = append(out, daa.IntegerInterval{LB: lb, UB: ub})
			start = i + 1
		}
	}
	return out, nil
}
