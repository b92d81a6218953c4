package scene

import (
	"math"
	"testing"
)

func TestCenterOn(t *testing.T) {

	d := &Drawable{Kind: Ellipse, Width: 8, Height: 8}
	d.CenterOn(Point{X: 100, Y: 50})

	if d.Left != 96 || d.Top != 46 {
		t.Errorf("expected top left (96,46), got (%v,%v)", d.Left, d.Top)
	}

	if c := d.Center(); c.X != 100 || c.Y != 50 {
		t.Errorf("expected center (100,50), got %v", c)
	}
}

func TestSceneClearKeepsCapacity(t *testing.T) {

	s := New(512, 424)
	s.Add(&Drawable{Visible: true}, &Drawable{}, &Drawable{Visible: true})

	if s.Len() != 3 || s.Visible() != 2 {
		t.Fatalf("expected 3 items 2 visible, got %d and %d", s.Len(), s.Visible())
	}

	capBefore := cap(s.items)
	s.Clear()

	if s.Len() != 0 {
		t.Errorf("expected empty scene, got %d items", s.Len())
	}

	if cap(s.items) != capBefore {
		t.Errorf("expected capacity %d kept, got %d", capBefore, cap(s.items))
	}
}

func TestPointIsInf(t *testing.T) {

	tests := []struct {
		p        Point
		expected bool
	}{
		{Point{1, 2}, false},
		{Point{math.Inf(-1), 2}, true},
		{Point{1, math.Inf(1)}, true},
	}

	for _, tc := range tests {
		if got := tc.p.IsInf(); got != tc.expected {
			t.Errorf("%v: expected %v, got %v", tc.p, tc.expected, got)
		}
	}
}
