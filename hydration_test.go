package main

import (
	"errors"
	"testing"
)

/* ─── addWater / removeWater tests ───────────────────────────────────── */

// TestAddWater verifies plain accumulation: first drink of the day starts
// from 0, later drinks add on top.
func TestAddWater(t *testing.T) {
	got, err := addWater(0, 500)
	if err != nil || got != 500 {
		t.Errorf("addWater(0, 500) = %d, %v, want 500, nil", got, err)
	}
	got, err = addWater(500, 300)
	if err != nil || got != 800 {
		t.Errorf("addWater(500, 300) = %d, %v, want 800, nil", got, err)
	}
}

// TestAddWater_InvalidDelta verifies that zero and negative deltas fail with
// errInvalidAmount.
func TestAddWater_InvalidDelta(t *testing.T) {
	for _, delta := range []int{0, -1, -500} {
		if _, err := addWater(100, delta); !errors.Is(err, errInvalidAmount) {
			t.Errorf("addWater(100, %d) error = %v, want errInvalidAmount", delta, err)
		}
	}
}

// TestRemoveWater_Partial verifies a decrement that leaves water on the books.
func TestRemoveWater_Partial(t *testing.T) {
	remaining, deleted, err := removeWater(800, 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted {
		t.Error("expected deleted=false for partial removal")
	}
	if remaining != 500 {
		t.Errorf("remaining = %d, want 500", remaining)
	}
}

// TestRemoveWater_DeletesRecord verifies the record-deleted signal when the
// delta reaches or exceeds the current amount — distinct from "amount is 0".
func TestRemoveWater_DeletesRecord(t *testing.T) {
	for _, delta := range []int{800, 900} {
		remaining, deleted, err := removeWater(800, delta)
		if err != nil {
			t.Fatalf("unexpected error for delta %d: %v", delta, err)
		}
		if !deleted {
			t.Errorf("removeWater(800, %d): expected deleted=true", delta)
		}
		if remaining != 0 {
			t.Errorf("removeWater(800, %d): remaining = %d, want 0", delta, remaining)
		}
	}
}

// TestRemoveWater_InvalidDelta verifies the same delta guard as addWater.
func TestRemoveWater_InvalidDelta(t *testing.T) {
	if _, _, err := removeWater(800, 0); !errors.Is(err, errInvalidAmount) {
		t.Errorf("removeWater(800, 0) error = %v, want errInvalidAmount", err)
	}
	if _, _, err := removeWater(800, -100); !errors.Is(err, errInvalidAmount) {
		t.Errorf("removeWater(800, -100) error = %v, want errInvalidAmount", err)
	}
}

/* ─── Norm / progress tests ──────────────────────────────────────────── */

// TestWaterNorm verifies the 30 ml/kg rule and the 2 litre fallback for an
// unknown weight.
func TestWaterNorm(t *testing.T) {
	w := 70.0
	if got := waterNorm(&w); got != 2100 {
		t.Errorf("waterNorm(70) = %d, want 2100", got)
	}
	w = 65.5
	if got := waterNorm(&w); got != 1965 {
		t.Errorf("waterNorm(65.5) = %d, want 1965", got)
	}
	if got := waterNorm(nil); got != defaultWaterNormMl {
		t.Errorf("waterNorm(nil) = %d, want %d", got, defaultWaterNormMl)
	}
}

// TestWaterProgress verifies rounding and the 100% clamp.
func TestWaterProgress(t *testing.T) {
	cases := []struct {
		amount, norm, want int
	}{
		{1000, 2000, 50},
		{2500, 2000, 100}, // clamped
		{0, 2000, 0},
		{333, 2000, 17}, // 16.65 rounds up
		{2000, 2000, 100},
	}
	for _, tc := range cases {
		if got := waterProgress(tc.amount, tc.norm); got != tc.want {
			t.Errorf("waterProgress(%d, %d) = %d, want %d", tc.amount, tc.norm, got, tc.want)
		}
	}
}

// TestWaterProgress_ZeroNorm verifies the division guard: against no target,
// any intake reads as complete and no intake as zero.
func TestWaterProgress_ZeroNorm(t *testing.T) {
	if got := waterProgress(500, 0); got != 100 {
		t.Errorf("waterProgress(500, 0) = %d, want 100", got)
	}
	if got := waterProgress(0, 0); got != 0 {
		t.Errorf("waterProgress(0, 0) = %d, want 0", got)
	}
}
