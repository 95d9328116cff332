package systems

import (
	"math"
	"testing"
)

func TestNewBehaviorProfile(t *testing.T) {
	rng := testRNG()
	lo, hi := 1.0, 0.0
	for i := 0; i < 200; i++ {
		b := NewBehavior(rng)

		if math.Abs(distSum(b.Foraging[:])-1.0) > 1e-9 {
			t.Fatalf("foraging sum = %v, want 1.0", distSum(b.Foraging[:]))
		}
		if math.Abs(distSum(b.Combat[:])-1.0) > 1e-9 {
			t.Fatalf("combat sum = %v, want 1.0", distSum(b.Combat[:]))
		}
		if math.Abs(distSum(b.Flee[:])-1.0) > 1e-9 {
			t.Fatalf("flee sum = %v, want 1.0", distSum(b.Flee[:]))
		}

		if b.HungerThreshold < 0.2 || b.HungerThreshold > 0.8 {
			t.Fatalf("hunger threshold = %v, outside [0.2, 0.8]", b.HungerThreshold)
		}
		lo = math.Min(lo, b.HungerThreshold)
		hi = math.Max(hi, b.HungerThreshold)
	}

	// Founding thresholds cover the whole configured range, not a narrower
	// band in the middle of it.
	if lo >= 0.3 || hi <= 0.7 {
		t.Errorf("hunger thresholds span [%v, %v], want draws across all of [0.2, 0.8]", lo, hi)
	}
}
