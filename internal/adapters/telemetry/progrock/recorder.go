// Package progrock records setup-cpp spans as progrock vertices and journals them to disk.
package progrock

import (
	"context"
	"errors"
	"sync"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/setup-cpp/internal/core/domain"
)

// Recorder implements sdktrace.SpanProcessor and telemetry.LogSink by
// mirroring every span onto a progrock vertex.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder

	mu       sync.Mutex
	vertices map[string]*progrock.VertexRecorder
}

// NewRecorder creates a Recorder writing to w.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:        w,
		rec:      progrock.NewRecorder(w),
		vertices: make(map[string]*progrock.VertexRecorder),
	}
}

// OnStart opens a vertex for the span.
func (r *Recorder) OnStart(_ context.Context, s sdktrace.ReadWriteSpan) {
	sc := s.SpanContext()
	if !sc.IsValid() {
		return
	}
	spanID := sc.SpanID().String()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.vertices[spanID] = r.rec.Vertex(digest.FromString(spanID), s.Name())
}

// OnSpanLog copies span output to the vertex stdout.
func (r *Recorder) OnSpanLog(spanID string, data []byte) {
	r.mu.Lock()
	v, ok := r.vertices[spanID]
	r.mu.Unlock()
	if !ok {
		return
	}
	_, _ = v.Stdout().Write(data)
}

// OnEnd completes the vertex, marking cache hits as cached.
func (r *Recorder) OnEnd(s sdktrace.ReadOnlySpan) {
	spanID := s.SpanContext().SpanID().String()

	r.mu.Lock()
	v, ok := r.vertices[spanID]
	delete(r.vertices, spanID)
	r.mu.Unlock()
	if !ok {
		return
	}

	for _, kv := range s.Attributes() {
		if string(kv.Key) == domain.SpanAttrCached && kv.Value.AsBool() {
			v.Cached()
		}
	}

	var err error
	if s.Status().Code == codes.Error {
		err = errors.New(s.Status().Description)
	}
	v.Done(err)
}

// ForceFlush does nothing; vertices are written as they change.
func (r *Recorder) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown closes the recording session.
func (r *Recorder) Shutdown(_ context.Context) error {
	return r.Close()
}

// Close closes the underlying writer when it supports it.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

var _ sdktrace.SpanProcessor = (*Recorder)(nil)
