package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/lhartmann/forcefield/pkg/cache"
	"github.com/lhartmann/forcefield/pkg/graph"
)

func testGraph() *graph.Graph {
	g := graph.New("pair")
	// Fixed id so repeated runs hash identically.
	g.ID = "pair-1"
	g.AddNode(graph.Node{ID: "a"})
	g.AddNode(graph.Node{ID: "b"})
	g.AddEdge("a", "b")
	return g
}

func TestOptionsDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if len(o.Formats) != 1 || o.Formats[0] != "svg" {
		t.Errorf("formats = %v, want [svg]", o.Formats)
	}
	if o.Theme != ThemeLight || o.Width == 0 || o.Charge == 0 {
		t.Errorf("defaults not applied: %+v", o)
	}
}

func TestOptionsRejectsBadInput(t *testing.T) {
	for _, o := range []Options{
		{Formats: []string{"pdf"}},
		{Theme: "sepia"},
		{Jitter: -1},
	} {
		if err := o.ValidateAndSetDefaults(); err == nil {
			t.Errorf("accepted %+v", o)
		}
	}
}

func TestExecuteProducesArtifacts(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	opts := Options{Formats: []string{"svg", "dot", "json"}}

	result, err := r.Execute(context.Background(), testGraph(), opts)
	if err != nil {
		t.Fatal(err)
	}

	if result.Stats.NodeCount != 2 || result.Stats.EdgeCount != 1 {
		t.Errorf("stats = %+v", result.Stats)
	}
	if result.GraphHash == "" {
		t.Error("graph hash missing")
	}
	if !strings.HasPrefix(string(result.Artifacts["svg"]), "<svg") {
		t.Error("svg artifact malformed")
	}
	if !strings.HasPrefix(string(result.Artifacts["dot"]), "graph G {") {
		t.Error("dot artifact malformed")
	}
	if !strings.Contains(string(result.Artifacts["json"]), `"nodes"`) {
		t.Error("json artifact malformed")
	}
	if result.Layout.Stats.Ticks == 0 {
		t.Error("layout did not tick")
	}
}

func TestExecuteCachesLayoutAndArtifacts(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)
	opts := Options{Formats: []string{"svg"}}

	first, err := r.Execute(context.Background(), testGraph(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("cold run hit cache: %+v", first.CacheInfo)
	}

	second, err := r.Execute(context.Background(), testGraph(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("warm run missed cache: %+v", second.CacheInfo)
	}
	if string(first.Artifacts["svg"]) != string(second.Artifacts["svg"]) {
		t.Error("cached artifact differs")
	}
}

func TestExecuteRefreshBypassesCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)

	if _, err := r.Execute(context.Background(), testGraph(), Options{}); err != nil {
		t.Fatal(err)
	}
	result, err := r.Execute(context.Background(), testGraph(), Options{Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if result.CacheInfo.LayoutHit || result.CacheInfo.RenderHit {
		t.Errorf("refresh run hit cache: %+v", result.CacheInfo)
	}
}

func TestExecuteDifferentOptionsMissCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)

	if _, err := r.Execute(context.Background(), testGraph(), Options{}); err != nil {
		t.Fatal(err)
	}
	result, err := r.Execute(context.Background(), testGraph(), Options{Charge: -60})
	if err != nil {
		t.Fatal(err)
	}
	if result.CacheInfo.LayoutHit {
		t.Error("layout cache hit despite different charge")
	}
}

func TestExecuteRejectsInvalidGraph(t *testing.T) {
	g := testGraph()
	g.Edges[0].Target = "ghost"
	r := NewRunner(nil, nil, nil)
	if _, err := r.Execute(context.Background(), g, Options{}); err == nil {
		t.Fatal("expected validation error")
	}
}
