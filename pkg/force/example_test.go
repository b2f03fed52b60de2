package force_test

import (
	"fmt"
	"math"

	"github.com/lhartmann/forcefield/pkg/force"
)

// A minimal static layout: two linked entities settle at the requested
// link distance.
func ExampleSimulation_Run() {
	entities := []*force.Entity{
		{ID: 0, X: -1},
		{ID: 1, X: 1},
	}
	links := []force.Link{{Source: 0, Target: 1, Distance: 50, Strength: 1}}

	sim, err := force.New(force.DefaultConfig(), entities, force.NewLink(links))
	if err != nil {
		panic(err)
	}
	sim.Run()

	dist := math.Hypot(entities[1].X-entities[0].X, entities[1].Y-entities[0].Y)
	fmt.Printf("complete: %v\n", sim.Completed())
	fmt.Printf("distance: %.0f\n", dist)
	// Output:
	// complete: true
	// distance: 50
}

// Pinning holds an entity at an exact position while the rest of the
// layout moves around it.
func ExampleEntity_Pin() {
	anchor := &force.Entity{ID: 0}
	anchor.Pin(0, 0)
	satellite := &force.Entity{ID: 1, X: 5, Y: 0}

	sim, err := force.New(force.DefaultConfig(),
		[]*force.Entity{anchor, satellite},
		force.NewManyBody(),
	)
	if err != nil {
		panic(err)
	}
	sim.Run()

	fmt.Printf("anchor: (%.0f, %.0f)\n", anchor.X, anchor.Y)
	fmt.Printf("satellite moved: %v\n", satellite.X != 5 || satellite.Y != 0)
	// Output:
	// anchor: (0, 0)
	// satellite moved: true
}
