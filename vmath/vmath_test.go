package vmath

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 1); got != 1 {
		t.Errorf("Expected clamp above range to return 1, got %v", got)
	}
	if got := Clamp(-5, 0, 1); got != 0 {
		t.Errorf("Expected clamp below range to return 0, got %v", got)
	}
	if got := Clamp(0.5, 0, 1); got != 0.5 {
		t.Errorf("Expected in-range value unchanged, got %v", got)
	}
}

func TestLerpInvLerp(t *testing.T) {
	if got := Lerp(10, 20, 0.5); got != 15 {
		t.Errorf("Expected midpoint 15, got %v", got)
	}
	if got := InvLerp(10, 20, 15); got != 0.5 {
		t.Errorf("Expected normalized 0.5, got %v", got)
	}
	// Degenerate range must not divide by zero
	if got := InvLerp(10, 10, 15); got != 0 {
		t.Errorf("Expected 0 for degenerate range, got %v", got)
	}
}

func TestWrapMod(t *testing.T) {
	if got := WrapMod(370, 360); math.Abs(got-10) > 1e-9 {
		t.Errorf("Expected 10, got %v", got)
	}
	// Negative input wraps into positive range
	if got := WrapMod(-10, 360); math.Abs(got-350) > 1e-9 {
		t.Errorf("Expected 350, got %v", got)
	}
	if got := WrapMod(5, 0); got != 0 {
		t.Errorf("Expected 0 for non-positive modulus, got %v", got)
	}
}

func TestHalfLifeDecay(t *testing.T) {
	// One half-life halves the value
	if got := HalfLifeDecay(150, 150); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Expected 0.5 after one half-life, got %v", got)
	}
	// Two half-lives quarter it
	if got := HalfLifeDecay(300, 150); math.Abs(got-0.25) > 1e-9 {
		t.Errorf("Expected 0.25 after two half-lives, got %v", got)
	}
	if got := HalfLifeDecay(0, 150); got != 1 {
		t.Errorf("Expected no decay at zero elapsed, got %v", got)
	}
	if got := HalfLifeDecay(100, 0); got != 0 {
		t.Errorf("Expected instant decay for zero half-life, got %v", got)
	}
}

func TestSmoothStep(t *testing.T) {
	if got := SmoothStep(0, 1, -1); got != 0 {
		t.Errorf("Expected 0 below edge0, got %v", got)
	}
	if got := SmoothStep(0, 1, 2); got != 1 {
		t.Errorf("Expected 1 above edge1, got %v", got)
	}
	if got := SmoothStep(0, 1, 0.5); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Expected 0.5 at midpoint, got %v", got)
	}
}

func TestFastRandDeterminism(t *testing.T) {
	a := NewFastRand(42)
	b := NewFastRand(42)
	for i := 0; i < 100; i++ {
		if a.Next() != b.Next() {
			t.Fatalf("Expected identical sequences for identical seeds at step %d", i)
		}
	}
}

func TestFastRandBounds(t *testing.T) {
	r := NewFastRand(7)
	for i := 0; i < 1000; i++ {
		if v := r.Intn(10); v < 0 || v >= 10 {
			t.Fatalf("Intn out of range: %d", v)
		}
		if f := r.Float64(); f < 0 || f >= 1 {
			t.Fatalf("Float64 out of range: %v", f)
		}
	}
	// Zero seed must still produce a usable generator
	z := NewFastRand(0)
	if z.Next() == 0 {
		t.Error("Expected non-zero output from zero-seeded generator")
	}
	if got := NewFastRand(3).Intn(0); got != 0 {
		t.Errorf("Expected 0 for non-positive bound, got %d", got)
	}
}
