package axis

import (
	"testing"
)

func TestItemPositionMonotonic(t *testing.T) {
	for _, reversed := range []bool{false, true} {
		a := NewValueAxis(OrientationY)
		a.SetRange(-4, 12)
		a.SetReversed(reversed)
		h := &Helper{Axis: a, Scale: 2, Translate: -1}

		prev := h.ItemPositionAt(-4)
		for v := -3.5; v <= 12; v += 0.5 {
			cur := h.ItemPositionAt(v)
			if !reversed && cur <= prev {
				t.Fatalf("forward axis not increasing at %f: %f <= %f", v, cur, prev)
			}
			if reversed && cur >= prev {
				t.Fatalf("reversed axis not decreasing at %f: %f >= %f", v, cur, prev)
			}
			prev = cur
		}

		lo, hi := h.ItemPositionAt(-4), h.ItemPositionAt(12)
		if reversed {
			lo, hi = hi, lo
		}
		if !approx(lo, -1) || !approx(hi, 1) {
			t.Errorf("reversed=%v: expected extremes -1 and 1, got %f and %f", reversed, lo, hi)
		}
	}
}

func TestZeroSpanAxisCentered(t *testing.T) {
	a := NewValueAxis(OrientationX)
	a.SetRange(3, 3)
	h := &Helper{Axis: a, Scale: 2, Translate: -1}
	for _, v := range []float64{-10, 3, 99} {
		if p := h.ItemPositionAt(v); !approx(p, 0) {
			t.Errorf("value %f: expected center 0, got %f", v, p)
		}
	}
}

func TestCategoryPosition(t *testing.T) {
	a := NewCategoryAxis(OrientationX, "a", "b", "c", "d")
	h := NewHelper(a)
	want := []float64{0.125, 0.375, 0.625, 0.875}
	for i, w := range want {
		if p := h.CategoryPositionAt(i); !approx(p, w) {
			t.Errorf("category %d: expected %f, got %f", i, w, p)
		}
	}
}

func TestHelperGridAccess(t *testing.T) {
	a := NewValueAxis(OrientationZ)
	a.SetRange(0, 1)
	a.SetSegments(4)
	h := NewHelper(a)
	if h.GridCount() != 5 {
		t.Errorf("expected 5 grid lines, got %d", h.GridCount())
	}
	if !approx(h.GridPositionAt(2), 0.5) {
		t.Errorf("expected 0.5, got %f", h.GridPositionAt(2))
	}
	if h.GridPositionAt(42) != 0 {
		t.Error("out of range index should return 0")
	}
}

func TestSceneAtFollowsAxisKind(t *testing.T) {
	c := NewCategoryAxis(OrientationX, "a", "b", "c", "d")
	ch := &Helper{Axis: c, Scale: 2, Translate: -1}
	if p := ch.SceneAt(1); !approx(p, -0.25) {
		t.Errorf("expected slot 1 at -0.25, got %f", p)
	}
	if p := ch.SceneAt(-0.5); !approx(p, -1) {
		t.Errorf("expected the slot edge at -1, got %f", p)
	}
	if !ch.Contains(3.5) || ch.Contains(3.6) || ch.Contains(-0.6) {
		t.Error("expected category bounds [-0.5, 3.5]")
	}
	if !approx(ch.UnitScale(), 0.5) {
		t.Errorf("expected one slot to span 0.5, got %f", ch.UnitScale())
	}

	v := NewValueAxis(OrientationY)
	v.SetRange(0, 4)
	vh := &Helper{Axis: v, Scale: 2, Translate: -1}
	if p := vh.SceneAt(1); !approx(p, -0.5) {
		t.Errorf("expected -0.5, got %f", p)
	}
	if vh.Contains(4.1) || !vh.Contains(0) {
		t.Error("expected value bounds [0, 4]")
	}
	if !approx(vh.UnitScale(), 0.5) {
		t.Errorf("expected one unit to span 0.5, got %f", vh.UnitScale())
	}
}
