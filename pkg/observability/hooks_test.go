package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnLoadStart(ctx, "sales.csv")
	p.OnLoadComplete(ctx, "sales.csv", 4, 3, time.Second, nil)
	p.OnDrawStart(ctx, 2, 12)
	p.OnDrawComplete(ctx, 12, time.Millisecond)
	p.OnRenderStart(ctx, []string{"svg"})
	p.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "artifact")
	c.OnCacheMiss(ctx, "dataset")
	c.OnCacheSet(ctx, "artifact", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "example.com", "/sales.json")
	h.OnResponse(ctx, "GET", "example.com", "/sales.json", 200, time.Second)
	h.OnError(ctx, "GET", "example.com", "/sales.json", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	pipeline := &recordingPipeline{}
	SetPipelineHooks(pipeline)
	cache := &testCacheHooks{}
	SetCacheHooks(cache)
	client := &testHTTPHooks{}
	SetHTTPHooks(client)

	if Pipeline() != pipeline || Cache() != cache || HTTP() != client {
		t.Fatal("custom hooks were not registered")
	}

	Pipeline().OnDrawStart(context.Background(), 3, 9)
	Pipeline().OnDrawComplete(context.Background(), 9, time.Millisecond)
	if pipeline.draws != 1 || pipeline.items != 9 {
		t.Errorf("recorded draws=%d items=%d, want 1 and 9", pipeline.draws, pipeline.items)
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	custom := &recordingPipeline{}
	SetPipelineHooks(custom)
	SetPipelineHooks(nil)
	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}
}

type recordingPipeline struct {
	NoopPipelineHooks
	draws int
	items int
}

func (r *recordingPipeline) OnDrawComplete(_ context.Context, items int, _ time.Duration) {
	r.draws++
	r.items += items
}

type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
