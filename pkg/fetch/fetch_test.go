package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/lhartmann/forcefield/pkg/cache"
	apperrors "github.com/lhartmann/forcefield/pkg/errors"
	"github.com/lhartmann/forcefield/pkg/observability"
)

const pairJSON = `{
	"id": "pair",
	"name": "pair",
	"nodes": [{"id": "a"}, {"id": "b"}],
	"edges": [{"source": "a", "target": "b"}]
}`

func TestIsURL(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"http://example.com/graph.json", true},
		{"https://example.com/graph.json", true},
		{"graph.json", false},
		{"/tmp/graph.json", false},
		{"ftp://example.com/graph.json", false},
	}
	for _, tt := range tests {
		if got := IsURL(tt.in); got != tt.want {
			t.Errorf("IsURL(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestGraphFetchesAndValidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(pairJSON))
	}))
	defer srv.Close()

	g, err := New(nil).Graph(context.Background(), srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Nodes) != 2 || len(g.Edges) != 1 {
		t.Errorf("graph = %d nodes, %d edges", len(g.Nodes), len(g.Edges))
	}
}

type loadHooks struct {
	observability.NoopPipelineHooks
	starts atomic.Int64
	nodes  atomic.Int64
	errs   atomic.Int64
}

func (h *loadHooks) OnLoadStart(ctx context.Context, source string) { h.starts.Add(1) }

func (h *loadHooks) OnLoadComplete(ctx context.Context, source string, nodes, edges int, err error) {
	h.nodes.Add(int64(nodes))
	if err != nil {
		h.errs.Add(1)
	}
}

func TestGraphEmitsLoadEvents(t *testing.T) {
	observability.Reset()
	t.Cleanup(observability.Reset)
	h := &loadHooks{}
	observability.SetPipelineHooks(h)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(pairJSON))
	}))
	defer srv.Close()

	if _, err := New(nil).Graph(context.Background(), srv.URL); err != nil {
		t.Fatal(err)
	}
	if h.starts.Load() != 1 || h.nodes.Load() != 2 || h.errs.Load() != 0 {
		t.Errorf("load events: starts=%d nodes=%d errs=%d, want 1/2/0",
			h.starts.Load(), h.nodes.Load(), h.errs.Load())
	}
}

func TestGraphUsesCache(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(pairJSON))
	}))
	defer srv.Close()

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	client := New(fc)

	for i := 0; i < 3; i++ {
		if _, err := client.Graph(context.Background(), srv.URL); err != nil {
			t.Fatal(err)
		}
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server hit %d times, want 1", got)
	}
}

func TestGraphRetriesServerErrors(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(pairJSON))
	}))
	defer srv.Close()

	if _, err := New(nil).Graph(context.Background(), srv.URL); err != nil {
		t.Fatal(err)
	}
	if got := hits.Load(); got != 2 {
		t.Errorf("server hit %d times, want 2", got)
	}
}

func TestGraphNotFound(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := New(nil).Graph(context.Background(), srv.URL)
	if apperrors.GetCode(err) != apperrors.ErrCodeNotFound {
		t.Errorf("code = %v, want not found", apperrors.GetCode(err))
	}
	// 404 is permanent, no retries.
	if got := hits.Load(); got != 1 {
		t.Errorf("server hit %d times, want 1", got)
	}
}

func TestGraphRejectsMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not a graph"))
	}))
	defer srv.Close()

	_, err := New(nil).Graph(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if apperrors.GetCode(err) != apperrors.ErrCodeInvalidGraph {
		t.Errorf("code = %v, want invalid graph", apperrors.GetCode(err))
	}
}

func TestGraphRejectsInvalidGraph(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "x", "name": "x", "nodes": [{"id": "a"}], "edges": [{"source": "a", "target": "ghost"}]}`))
	}))
	defer srv.Close()

	_, err := New(nil).Graph(context.Background(), srv.URL)
	if apperrors.GetCode(err) != apperrors.ErrCodeUnknownNode {
		t.Errorf("code = %v, want unknown node", apperrors.GetCode(err))
	}
}
