package progrock_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vito/progrock"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/setup-cpp/internal/adapters/telemetry"
	rec "go.trai.ch/setup-cpp/internal/adapters/telemetry/progrock"
	"go.trai.ch/setup-cpp/internal/core/domain"
	"go.trai.ch/setup-cpp/internal/core/ports"
)

// statusLog keeps the latest state of every vertex written to it.
type statusLog struct {
	mu       sync.Mutex
	vertices map[string]*progrock.Vertex
	closed   bool
}

func (l *statusLog) WriteStatus(update *progrock.StatusUpdate) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.vertices == nil {
		l.vertices = make(map[string]*progrock.Vertex)
	}
	for _, v := range update.Vertexes {
		l.vertices[v.Name] = v
	}
	return nil
}

func (l *statusLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	return nil
}

func (l *statusLog) vertex(name string) *progrock.Vertex {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.vertices[name]
}

func TestRecorder_MirrorsSpans(t *testing.T) {
	log := &statusLog{}
	recorder := rec.NewRecorder(log)
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tracer := telemetry.NewOTelTracerWithProvider(tp, "test")
	tracer.SetSink(recorder)

	ctx := context.Background()
	_, cached := tracer.Start(ctx, "ninja 1.11.1", ports.WithGroup())
	cached.SetAttribute(domain.SpanAttrCached, true)
	_, _ = cached.Write([]byte("cache hit\n"))
	cached.End()

	_, failed := tracer.Start(ctx, "llvm 17.0.6", ports.WithGroup())
	failed.RecordError(errors.New("boom"))
	failed.End()

	require.NoError(t, tp.Shutdown(ctx))

	ninja := log.vertex("ninja 1.11.1")
	require.NotNil(t, ninja)
	assert.True(t, ninja.Cached)
	assert.NotNil(t, ninja.Completed)
	assert.Nil(t, ninja.Error)

	llvm := log.vertex("llvm 17.0.6")
	require.NotNil(t, llvm)
	assert.False(t, llvm.Cached)
	require.NotNil(t, llvm.Error)
	assert.Equal(t, "boom", *llvm.Error)

	assert.True(t, log.closed)
}

func TestRecorder_IgnoresUnknownSpans(t *testing.T) {
	recorder := rec.NewRecorder(&statusLog{})

	recorder.OnSpanLog("0000000000000000", []byte("stray"))

	assert.NoError(t, recorder.ForceFlush(context.Background()))
	assert.NoError(t, recorder.Close())
}
