package core

import "testing"

func TestBoxIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{"overlapping", NewBox(0, 0, 10, 10), NewBox(5, 5, 10, 10), true},
		{"apart horizontally", NewBox(0, 0, 10, 10), NewBox(15, 0, 10, 10), false},
		{"apart vertically", NewBox(0, 0, 10, 10), NewBox(0, 15, 10, 10), false},
		{"touching right edge", NewBox(0, 0, 10, 10), NewBox(10, 0, 10, 10), false},
		{"touching bottom edge", NewBox(0, 0, 10, 10), NewBox(0, 10, 10, 10), false},
		{"contained", NewBox(0, 0, 20, 20), NewBox(5, 5, 5, 5), true},
		{"fractional overlap", NewBox(0, 0, 10, 10), NewBox(9.5, 9.5, 10, 10), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestBoxOverlapsX(t *testing.T) {
	a := Box{Left: 10, Right: 20, Top: 0, Bottom: 1}
	b := Box{Left: 19, Right: 30, Top: 100, Bottom: 200}

	if !a.OverlapsX(b) {
		t.Error("OverlapsX should ignore the vertical axis")
	}
	if a.Intersects(b) {
		t.Error("Intersects should require vertical overlap")
	}
}

func TestBoxSize(t *testing.T) {
	b := NewBox(5, 10, 20, 15)
	if b.Width() != 20 || b.Height() != 15 {
		t.Errorf("size = %vx%v, expected 20x15", b.Width(), b.Height())
	}
	if b.Right != 25 || b.Bottom != 25 {
		t.Errorf("edges = (%v, %v), expected (25, 25)", b.Right, b.Bottom)
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		if got := ClampF(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}
