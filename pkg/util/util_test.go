// pkg/util/util_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import "testing"

func TestErrorLoggerAccumulatesWithHierarchy(t *testing.T) {
	var el ErrorLogger
	if el.HaveErrors() {
		t.Fatalf("new ErrorLogger has errors")
	}

	el.Push("windows")
	el.ErrorString("step_seconds must be positive")
	el.Pop()

	if !el.HaveErrors() {
		t.Fatalf("HaveErrors() = false after ErrorString")
	}
	want := "windows: step_seconds must be positive"
	if got := el.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestSelect(t *testing.T) {
	if got := Select(true, 1, 2); got != 1 {
		t.Errorf("Select(true, 1, 2) = %d, want 1", got)
	}
	if got := Select(false, 1, 2); got != 2 {
		t.Errorf("Select(false, 1, 2) = %d, want 2", got)
	}
}

func TestFilterSlice(t *testing.T) {
	in := []int{1, 2, 3, 4, 5}
	got := FilterSlice(in, func(v int) bool { return v%2 == 0 })
	want := []int{2, 4}
	if len(got) != len(want) {
		t.Fatalf("FilterSlice = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("FilterSlice[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}
