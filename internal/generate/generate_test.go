package generate

import (
	"errors"
	"math"
	"testing"
)

func TestGridShape(t *testing.T) {
	rows := Grid(Saddle, 3, 4)
	if len(rows) != 3 || len(rows[0]) != 4 {
		t.Fatalf("expected 3x4 grid, got %dx%d", len(rows), len(rows[0]))
	}
	if rows[0][0].X != 0 || rows[0][3].X != 1 || rows[2][0].Z != 1 {
		t.Errorf("expected unit square corners, got %+v %+v %+v", rows[0][0], rows[0][3], rows[2][0])
	}
	if rows[0][0].Y != 0 {
		t.Errorf("expected saddle corner height 0, got %f", rows[0][0].Y)
	}
	if small := Grid(Sinc, 1, 0); len(small) != 2 || len(small[0]) != 2 {
		t.Errorf("expected degenerate grid widened to 2x2, got %dx%d", len(small), len(small[0]))
	}
}

func TestSincCentre(t *testing.T) {
	if Sinc(0.5, 0.5) != 1 {
		t.Errorf("expected sinc peak 1 at the centre, got %f", Sinc(0.5, 0.5))
	}
}

func TestValues(t *testing.T) {
	v := Values(Ramp, 2, 3)
	if v[0][0] != 1 || v[1][2] != 6 {
		t.Errorf("expected ramp 1..6, got %v", v)
	}
}

func TestTrajectoryStaysBounded(t *testing.T) {
	items := Trajectory(NewLorenz(), 200, 4, 500, 0.005)
	if len(items) != 200 {
		t.Fatalf("expected 200 items, got %d", len(items))
	}
	for i, it := range items {
		for _, v := range it.Position {
			if math.IsNaN(v) || math.Abs(v) > 100 {
				t.Fatalf("item %d escaped the attractor: %v", i, it.Position)
			}
		}
	}
	if items[0].Position == items[1].Position {
		t.Error("expected the trajectory to move")
	}
}

func TestCloudIsReproducible(t *testing.T) {
	a, b := Cloud(10, 7), Cloud(10, 7)
	for i := range a {
		if a[i].Position != b[i].Position {
			t.Fatalf("expected identical clouds for the same seed, item %d differs", i)
		}
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	if names := r.List("surface"); len(names) != 3 || names[0] != "ripple" {
		t.Errorf("unexpected surface generators %v", names)
	}
	rows, err := r.Surface("sinc", Size{Rows: 5, Columns: 6})
	if err != nil || len(rows) != 5 {
		t.Errorf("expected 5 rows, got %d (%v)", len(rows), err)
	}
	items, err := r.Scatter("helix", Size{Items: 12})
	if err != nil || len(items) != 12 {
		t.Errorf("expected 12 items, got %d (%v)", len(items), err)
	}
	if _, err := r.Bars("nope", Size{}); !errors.Is(err, ErrUnknownGenerator) {
		t.Errorf("expected unknown generator, got %v", err)
	}
}
