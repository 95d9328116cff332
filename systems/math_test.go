package systems

import (
	"math"
	"testing"
)

func TestClampFloat(t *testing.T) {
	tests := []struct {
		name             string
		v, min, max, want float64
	}{
		{"below", -1, 0, 10, 0},
		{"above", 11, 0, 10, 10},
		{"inside", 5, 0, 10, 5},
		{"at min", 0, 0, 10, 0},
		{"at max", 10, 0, 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clampFloat(tt.v, tt.min, tt.max); got != tt.want {
				t.Errorf("clampFloat(%v, %v, %v) = %v, want %v", tt.v, tt.min, tt.max, got, tt.want)
			}
		})
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		name           string
		x1, y1, x2, y2 float64
		want           float64
	}{
		{"same point", 5, 5, 5, 5, 0},
		{"horizontal", 0, 0, 3, 0, 3},
		{"diagonal 3-4-5", 0, 0, 3, 4, 5},
		{"negative coords", -1, -1, 2, 3, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := distance(tt.x1, tt.y1, tt.x2, tt.y2); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("distance = %v, want %v", got, tt.want)
			}
			if got := distanceSq(tt.x1, tt.y1, tt.x2, tt.y2); math.Abs(got-tt.want*tt.want) > 1e-9 {
				t.Errorf("distanceSq = %v, want %v", got, tt.want*tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Run("zero vector", func(t *testing.T) {
		x, y := normalize(0, 0)
		if x != 0 || y != 0 {
			t.Errorf("normalize(0, 0) = (%v, %v), want (0, 0)", x, y)
		}
	})

	t.Run("unit length", func(t *testing.T) {
		x, y := normalize(3, 4)
		if math.Abs(x-0.6) > 1e-9 || math.Abs(y-0.8) > 1e-9 {
			t.Errorf("normalize(3, 4) = (%v, %v), want (0.6, 0.8)", x, y)
		}
	})

	t.Run("preserves direction", func(t *testing.T) {
		x, y := normalize(-5, 0)
		if x != -1 || y != 0 {
			t.Errorf("normalize(-5, 0) = (%v, %v), want (-1, 0)", x, y)
		}
	})
}
