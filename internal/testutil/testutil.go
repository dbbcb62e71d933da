// Package testutil provides shared test utilities and fixtures.
//
// This package centralises common numerical test helpers to reduce code
// duplication across test files and improve test maintainability.
package testutil

import (
	"math"
	"testing"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// AssertInDelta checks that got is within delta of want.
func AssertInDelta(t *testing.T, name string, got, want, delta float64) {
	t.Helper()
	if math.IsNaN(got) || math.Abs(got-want) > delta {
		t.Errorf("%s = %v, want %v ± %v", name, got, want, delta)
	}
}

// AssertAllInRange checks that every value lies within [lo, hi].
func AssertAllInRange(t *testing.T, name string, xs []float64, lo, hi float64) {
	t.Helper()
	for i, x := range xs {
		if x < lo || x > hi {
			t.Fatalf("%s[%d] = %v, outside [%v, %v]", name, i, x, lo, hi)
		}
	}
}
