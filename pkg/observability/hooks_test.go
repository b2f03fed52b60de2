package observability

import (
	"context"
	"testing"
	"time"
)

type countingPipelineHooks struct {
	NoopPipelineHooks
	layouts int
}

func (h *countingPipelineHooks) OnLayoutStart(ctx context.Context, nodes, edges int) {
	h.layouts++
}

type countingCacheHooks struct {
	NoopCacheHooks
	hits, misses int
}

func (h *countingCacheHooks) OnCacheHit(ctx context.Context, keyType string)  { h.hits++ }
func (h *countingCacheHooks) OnCacheMiss(ctx context.Context, keyType string) { h.misses++ }

func TestDefaultsAreNoops(t *testing.T) {
	Reset()
	ctx := context.Background()

	// Must not panic.
	Pipeline().OnLayoutStart(ctx, 10, 20)
	Pipeline().OnLayoutComplete(ctx, 300, time.Second, nil)
	Cache().OnCacheHit(ctx, "layout")
	HTTP().OnRequest(ctx, "GET", "/render")
}

func TestSetAndReset(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	ctx := context.Background()

	ph := &countingPipelineHooks{}
	ch := &countingCacheHooks{}
	SetPipelineHooks(ph)
	SetCacheHooks(ch)

	Pipeline().OnLayoutStart(ctx, 1, 1)
	Cache().OnCacheHit(ctx, "layout")
	Cache().OnCacheMiss(ctx, "artifact")

	if ph.layouts != 1 || ch.hits != 1 || ch.misses != 1 {
		t.Errorf("counts = %d/%d/%d", ph.layouts, ch.hits, ch.misses)
	}

	Reset()
	Pipeline().OnLayoutStart(ctx, 1, 1)
	if ph.layouts != 1 {
		t.Error("reset did not restore no-op hooks")
	}
}

func TestSetNilKeepsCurrent(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	ph := &countingPipelineHooks{}
	SetPipelineHooks(ph)
	SetPipelineHooks(nil)

	Pipeline().OnLayoutStart(context.Background(), 1, 1)
	if ph.layouts != 1 {
		t.Error("nil registration replaced hooks")
	}
}
