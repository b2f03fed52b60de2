package force

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestNewValidatesConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AlphaDecay = 0
	if _, err := New(cfg, nil); err == nil {
		t.Fatal("expected config validation error")
	}
}

func TestNewPlacesEntitiesDeterministically(t *testing.T) {
	a := []*Entity{{ID: 0}, {ID: 1}, {ID: 2}}
	b := []*Entity{{ID: 0}, {ID: 1}, {ID: 2}}

	if _, err := New(DefaultConfig(), a); err != nil {
		t.Fatal(err)
	}
	if _, err := New(DefaultConfig(), b); err != nil {
		t.Fatal(err)
	}

	for i := range a {
		if a[i].X != b[i].X || a[i].Y != b[i].Y {
			t.Fatalf("entity %d placed differently across runs: (%v,%v) vs (%v,%v)",
				i, a[i].X, a[i].Y, b[i].X, b[i].Y)
		}
		if i > 0 && a[i].X == a[0].X && a[i].Y == a[0].Y {
			t.Fatalf("entities %d and 0 placed coincident", i)
		}
	}
}

func TestNewKeepsExplicitPositions(t *testing.T) {
	e := &Entity{ID: 7, X: 123, Y: -45}
	if _, err := New(DefaultConfig(), []*Entity{e}); err != nil {
		t.Fatal(err)
	}
	if e.X != 123 || e.Y != -45 {
		t.Fatalf("explicit position overwritten: (%v,%v)", e.X, e.Y)
	}
}

func TestTickNoForces(t *testing.T) {
	entities := []*Entity{{ID: 0, X: 10, Y: 20}, {ID: 1, X: -5, Y: 3}}
	sim, err := New(DefaultConfig(), entities)
	if err != nil {
		t.Fatal(err)
	}

	alpha := sim.Alpha()
	sim.Tick()

	if sim.Alpha() >= alpha {
		t.Errorf("alpha did not decrease: %v -> %v", alpha, sim.Alpha())
	}
	if entities[0].X != 10 || entities[0].Y != 20 {
		t.Errorf("position changed with no forces: (%v,%v)", entities[0].X, entities[0].Y)
	}
}

func TestAlphaMonotonicallyDecreases(t *testing.T) {
	sim, err := New(DefaultConfig(), []*Entity{{ID: 0, X: 1, Y: 1}})
	if err != nil {
		t.Fatal(err)
	}

	prev := sim.Alpha()
	for i := 0; i < 500; i++ {
		sim.Tick()
		if sim.Alpha() > prev {
			t.Fatalf("alpha increased at tick %d: %v -> %v", i, prev, sim.Alpha())
		}
		prev = sim.Alpha()
	}
}

func TestCompletedLifecycle(t *testing.T) {
	sim, err := New(DefaultConfig(), []*Entity{{ID: 0, X: 1, Y: 1}})
	if err != nil {
		t.Fatal(err)
	}

	if sim.Completed() {
		t.Fatal("fresh simulation should not be complete")
	}

	sim.Run()
	if !sim.Completed() {
		t.Fatal("Run should leave the simulation complete")
	}
	// Default schedule drains alpha in roughly 300 ticks.
	if sim.Ticks() < 250 || sim.Ticks() > 350 {
		t.Errorf("unexpected tick count to completion: %d", sim.Ticks())
	}

	sim.Reheat()
	if sim.Completed() {
		t.Fatal("Reheat should return the simulation to Active")
	}
	if sim.Alpha() != DefaultAlphaInit {
		t.Errorf("Reheat alpha = %v, want %v", sim.Alpha(), DefaultAlphaInit)
	}
}

func TestCompletedTicksAreNoOps(t *testing.T) {
	e := &Entity{ID: 0, X: 3, Y: 4, VX: 9, VY: 9}
	sim, err := New(DefaultConfig(), []*Entity{e})
	if err != nil {
		t.Fatal(err)
	}
	sim.Run()

	x, y := e.X, e.Y
	ticks := sim.Ticks()
	sim.Tick()
	if e.X != x || e.Y != y {
		t.Errorf("complete tick moved entity: (%v,%v) -> (%v,%v)", x, y, e.X, e.Y)
	}
	if sim.Ticks() != ticks {
		t.Errorf("complete tick counted: %d -> %d", ticks, sim.Ticks())
	}
}

func TestZeroEntitiesBornComplete(t *testing.T) {
	sim, err := New(DefaultConfig(), nil, NewManyBody())
	if err != nil {
		t.Fatal(err)
	}
	if !sim.Completed() {
		t.Fatal("empty simulation should be complete immediately")
	}
	if got := sim.Run(); len(got) != 0 {
		t.Fatalf("Run returned %d entities, want 0", len(got))
	}
}

func TestPinnedEntityNeverMoves(t *testing.T) {
	pinned := &Entity{ID: 0, X: 50, Y: 50}
	pinned.Pin(50, 50)
	free := &Entity{ID: 1, X: 51, Y: 50}

	sim, err := New(DefaultConfig(), []*Entity{pinned, free},
		NewManyBody(),
		NewCenter(0, 0),
		NewLink([]Link{{Source: 0, Target: 1, Distance: 10}}),
	)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 400; i++ {
		sim.Tick()
		if pinned.X != 50 || pinned.Y != 50 {
			t.Fatalf("pinned entity moved at tick %d: (%v,%v)", i, pinned.X, pinned.Y)
		}
		if pinned.VX != 0 || pinned.VY != 0 {
			t.Fatalf("pinned entity kept velocity at tick %d: (%v,%v)", i, pinned.VX, pinned.VY)
		}
	}
	if free.X == 51 && free.Y == 50 {
		t.Error("free entity should have moved")
	}

	pinned.Unpin()
	if pinned.Pinned() {
		t.Error("Unpin should clear the fixed position")
	}
}

func TestDeterministicRuns(t *testing.T) {
	build := func() *Simulation {
		entities := []*Entity{{ID: 0}, {ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}}
		sim, err := New(DefaultConfig(), entities,
			NewManyBody(),
			NewCenter(0, 0),
			NewLink([]Link{
				{Source: 0, Target: 1},
				{Source: 1, Target: 2},
				{Source: 2, Target: 3},
				{Source: 3, Target: 4},
			}),
		)
		if err != nil {
			t.Fatal(err)
		}
		return sim
	}

	a := build().Run()
	b := build().Run()

	for i := range a {
		if a[i].X != b[i].X || a[i].Y != b[i].Y {
			t.Fatalf("run diverged at entity %d: (%v,%v) vs (%v,%v)",
				i, a[i].X, a[i].Y, b[i].X, b[i].Y)
		}
	}
}

func TestRunHonorsMaxTicks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxTicks = 10
	sim, err := New(cfg, []*Entity{{ID: 0, X: 1, Y: 1}})
	if err != nil {
		t.Fatal(err)
	}
	sim.Run()
	if sim.Ticks() != 10 {
		t.Errorf("Run ticked %d times, want 10", sim.Ticks())
	}
}

func TestCustomForce(t *testing.T) {
	e := &Entity{ID: 0, X: 1, Y: 1}
	drift := NewFunc(func(entities []*Entity, alpha float64) {
		for _, e := range entities {
			e.VX += 1 * alpha
		}
	})
	sim, err := New(DefaultConfig(), []*Entity{e}, drift)
	if err != nil {
		t.Fatal(err)
	}
	sim.Tick()
	if e.X <= 1 {
		t.Errorf("custom force had no effect: x = %v", e.X)
	}
	if e.Y != 1 {
		t.Errorf("custom force leaked onto y: %v", e.Y)
	}
}
