package graph

import (
	"testing"

	"github.com/lhartmann/forcefield/pkg/force"
)

func TestBindDerivesEntitiesAndLinks(t *testing.T) {
	g := testGraph()
	g.Nodes[0].X, g.Nodes[0].Y = 7, 8
	g.Node("b").Pin(1, 2)
	g.Edges[0].Distance = 45

	b, err := Bind(g)
	if err != nil {
		t.Fatal(err)
	}

	entities := b.Entities()
	if len(entities) != 3 {
		t.Fatalf("entities = %d, want 3", len(entities))
	}
	if entities[0].X != 7 || entities[0].Y != 8 {
		t.Errorf("position not carried: (%v,%v)", entities[0].X, entities[0].Y)
	}
	if !entities[1].Pinned() {
		t.Error("pin not carried onto entity")
	}

	links := b.Links()
	if len(links) != 2 {
		t.Fatalf("links = %d, want 2", len(links))
	}
	if links[0].Source != 0 || links[0].Target != 1 || links[0].Distance != 45 {
		t.Errorf("link 0 = %+v", links[0])
	}

	radii := b.Radii()
	if len(radii) != 1 || radii[2] != 12 {
		t.Errorf("radii = %v, want {2:12}", radii)
	}
}

func TestBindRejectsInvalidGraph(t *testing.T) {
	g := testGraph()
	g.Edges[0].Source = "ghost"
	if _, err := Bind(g); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestBindSyncRoundTrip(t *testing.T) {
	g := testGraph()
	b, err := Bind(g)
	if err != nil {
		t.Fatal(err)
	}

	sim, err := force.New(force.DefaultConfig(), b.Entities(),
		force.NewManyBody(),
		force.NewLink(b.Links()),
		force.NewCenter(0, 0),
	)
	if err != nil {
		t.Fatal(err)
	}
	sim.Run()

	if err := b.Sync(); err != nil {
		t.Fatal(err)
	}
	for i, e := range b.Entities() {
		if g.Nodes[i].X != e.X || g.Nodes[i].Y != e.Y {
			t.Errorf("node %d out of sync: (%v,%v) vs (%v,%v)",
				i, g.Nodes[i].X, g.Nodes[i].Y, e.X, e.Y)
		}
	}
}

func TestBindSyncDetectsShapeChange(t *testing.T) {
	g := testGraph()
	b, err := Bind(g)
	if err != nil {
		t.Fatal(err)
	}
	g.AddNode(Node{ID: "late"})
	if err := b.Sync(); err == nil {
		t.Fatal("expected shape mismatch error")
	}
}

func TestBindPayloads(t *testing.T) {
	g := testGraph()
	got := BindPayloads(g, map[string]int{"a": 10, "c": 30})
	want := []int{10, 0, 30}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("payload[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}
