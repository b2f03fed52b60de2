package force

import (
	"math"
	"testing"
)

func TestCollideSeparatesOverlap(t *testing.T) {
	a := &Entity{ID: 0, X: 5, Y: 5}
	b := &Entity{ID: 1, X: 8, Y: 5}

	sim, err := New(DefaultConfig(), []*Entity{a, b}, NewCollide(10))
	if err != nil {
		t.Fatal(err)
	}
	sim.Run()

	dist := math.Hypot(b.X-a.X, b.Y-a.Y)
	if dist < 20-1e-6 {
		t.Errorf("final distance = %v, want >= 20", dist)
	}
}

func TestCollideCoincidentEntities(t *testing.T) {
	a := &Entity{ID: 0, X: 5, Y: 5}
	b := &Entity{ID: 1, X: 5, Y: 5}

	sim, err := New(DefaultConfig(), []*Entity{a, b}, NewCollide(10))
	if err != nil {
		t.Fatal(err)
	}
	sim.Run()

	dist := math.Hypot(b.X-a.X, b.Y-a.Y)
	if dist < 20-1e-6 {
		t.Errorf("coincident entities ended %v apart, want >= 20", dist)
	}
}

func TestCollideIgnoresSeparatedPairs(t *testing.T) {
	a := &Entity{ID: 0, X: 0, Y: 1}
	b := &Entity{ID: 1, X: 50, Y: 1}

	sim, err := New(DefaultConfig(), []*Entity{a, b}, NewCollide(10))
	if err != nil {
		t.Fatal(err)
	}
	sim.Tick()

	if a.VX != 0 || a.VY != 0 || b.VX != 0 || b.VY != 0 {
		t.Error("non-overlapping pair received velocity")
	}
}

func TestCollidePerEntityRadii(t *testing.T) {
	big := &Entity{ID: 0, X: 5, Y: 5}
	small := &Entity{ID: 1, X: 6, Y: 5}

	sim, err := New(DefaultConfig(), []*Entity{big, small},
		NewCollide(1, WithRadii(map[int64]float64{0: 30})))
	if err != nil {
		t.Fatal(err)
	}
	sim.Tick()

	// Area-proportional split: the large circle barely moves.
	if math.Hypot(big.VX, big.VY) >= math.Hypot(small.VX, small.VY) {
		t.Errorf("large circle moved more than small: %v vs %v",
			math.Hypot(big.VX, big.VY), math.Hypot(small.VX, small.VY))
	}

	sim.Run()
	dist := math.Hypot(small.X-big.X, small.Y-big.Y)
	if dist < 31-0.5 {
		t.Errorf("final distance = %v, want about 31", dist)
	}
}
