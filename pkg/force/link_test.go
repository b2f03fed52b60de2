package force

import (
	"math"
	"testing"
)

func TestLinkConvergesToDistance(t *testing.T) {
	a := &Entity{ID: 0, X: -1, Y: 0}
	b := &Entity{ID: 1, X: 1, Y: 0}
	links := []Link{{Source: 0, Target: 1, Distance: 50, Strength: 1}}

	sim, err := New(DefaultConfig(), []*Entity{a, b}, NewLink(links))
	if err != nil {
		t.Fatal(err)
	}
	sim.Run()

	dist := math.Hypot(b.X-a.X, b.Y-a.Y)
	if !almostEqual(dist, 50, 1e-2) {
		t.Errorf("final distance = %v, want 50 +/- 0.01", dist)
	}
}

func TestLinkDefaultDistance(t *testing.T) {
	a := &Entity{ID: 0, X: -1, Y: 0}
	b := &Entity{ID: 1, X: 1, Y: 0}
	links := []Link{{Source: 0, Target: 1}}

	sim, err := New(DefaultConfig(), []*Entity{a, b}, NewLink(links))
	if err != nil {
		t.Fatal(err)
	}
	sim.Run()

	dist := math.Hypot(b.X-a.X, b.Y-a.Y)
	if !almostEqual(dist, DefaultLinkDistance, 1e-2) {
		t.Errorf("final distance = %v, want %v", dist, float64(DefaultLinkDistance))
	}
}

func TestLinkDegreeBias(t *testing.T) {
	// Hub with three spokes: the hub has degree 3, each spoke degree 1,
	// so corrections land mostly on the spokes and the hub barely drifts.
	hub := &Entity{ID: 0, X: 0, Y: 0.1}
	spokes := []*Entity{
		{ID: 1, X: 10, Y: 0},
		{ID: 2, X: -10, Y: 10},
		{ID: 3, X: 0, Y: -10},
	}
	links := []Link{
		{Source: 0, Target: 1},
		{Source: 0, Target: 2},
		{Source: 0, Target: 3},
	}

	sim, err := New(DefaultConfig(), append([]*Entity{hub}, spokes...), NewLink(links))
	if err != nil {
		t.Fatal(err)
	}
	sim.Tick()

	hubSpeed := math.Hypot(hub.VX, hub.VY)
	for i, s := range spokes {
		if speed := math.Hypot(s.VX, s.VY); speed <= hubSpeed {
			t.Errorf("spoke %d speed %v not above hub speed %v", i, speed, hubSpeed)
		}
	}
}

func TestLinkDropsUnknownEndpoints(t *testing.T) {
	entities := []*Entity{{ID: 0, X: 1, Y: 1}, {ID: 1, X: 2, Y: 2}}
	links := []Link{
		{Source: 0, Target: 1},
		{Source: 0, Target: 99},
		{Source: 98, Target: 1},
	}

	f := NewLink(links)
	sim, err := New(DefaultConfig(), entities, f)
	if err != nil {
		t.Fatal(err)
	}
	if f.Dropped() != 2 {
		t.Errorf("Dropped() = %d, want 2", f.Dropped())
	}
	sim.Run()
}

func TestLinkStrictModeRejectsUnknownEndpoints(t *testing.T) {
	entities := []*Entity{{ID: 0, X: 1, Y: 1}}
	links := []Link{{Source: 0, Target: 42}}

	_, err := New(DefaultConfig(), entities, NewLink(links, WithStrictLinks()))
	if err == nil {
		t.Fatal("expected error for unknown link endpoint")
	}
}

func TestLinkCoincidentEndpoints(t *testing.T) {
	a := &Entity{ID: 0, X: 5, Y: 5}
	b := &Entity{ID: 1, X: 5, Y: 5}
	links := []Link{{Source: 0, Target: 1, Distance: 10}}

	sim, err := New(DefaultConfig(), []*Entity{a, b}, NewLink(links))
	if err != nil {
		t.Fatal(err)
	}
	sim.Run()

	if a.X == b.X && a.Y == b.Y {
		t.Error("coincident endpoints never separated")
	}
}
