// pkg/store/store_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package store

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/skywatch-systems/daaband/pkg/daa"
)

func TestSaveAdvisory(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)
	bands := daa.IntervalList{{LB: -4, UB: 4}}
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec("INSERT INTO advisories").
		WithArgs(sqlmock.AnyArg(), "INTRUDER1", "-4:4", now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if _, err := s.SaveAdvisory(Advisory{Callsign: "INTRUDER1", Bands: bands, ComputedAt: now}); err != nil {
		t.Fatalf("SaveAdvisory: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestEncodeDecodeBandsRoundTrip(t *testing.T) {
	in := daa.IntervalList{{LB: -7, UB: -3}, {LB: 4, UB: 6}}
	got, err := decodeBands(encodeBands(in))
	if err != nil {
		t.Fatalf("decodeBands: %v", err)
	}
	if len(got) != len(in) {
		t.Fatalf("round-trip length = %d, want %d", len(got), len(in))
	}
	for i := range in {
		if got[i] != in[i] {
			t.Errorf("round-trip[%d] = %v, want %v", i, got[i], in[i])
		}
	}
}

func TestEncodeDecodeEmptyBands(t *testing.T) {
	got, err := decodeBands(encodeBands(nil))
	if err != nil {
		t.Fatalf("decodeBands: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("decodeBands(empty) = %v, want empty", got)
	}
}
