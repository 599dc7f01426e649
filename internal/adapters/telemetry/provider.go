package telemetry

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/setup-cpp/internal/core/domain"
	"go.trai.ch/setup-cpp/internal/core/ports"
)

// LogSink receives span output as soon as it is written.
type LogSink interface {
	OnSpanLog(spanID string, data []byte)
}

// OTelTracer is a concrete implementation of ports.Tracer using OpenTelemetry.
type OTelTracer struct {
	name     string
	provider trace.TracerProvider

	mu   sync.RWMutex
	sink LogSink
}

// NewOTelTracer creates a tracer that resolves the global provider on every Start,
// so a provider installed with otel.SetTracerProvider later still applies.
func NewOTelTracer(name string) *OTelTracer {
	return &OTelTracer{name: name}
}

// NewOTelTracerWithProvider creates a tracer bound to a fixed provider.
func NewOTelTracerWithProvider(tp trace.TracerProvider, name string) *OTelTracer {
	return &OTelTracer{name: name, provider: tp}
}

// SetSink routes span output to sink. A nil sink only records span events.
func (t *OTelTracer) SetSink(sink LogSink) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sink = sink
}

func (t *OTelTracer) currentSink() LogSink {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.sink
}

// Start creates a new span.
func (t *OTelTracer) Start(ctx context.Context, name string, opts ...ports.SpanOption) (context.Context, ports.Span) {
	cfg := &ports.SpanConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	var startOpts []trace.SpanStartOption
	if cfg.Group {
		startOpts = append(startOpts, trace.WithAttributes(attribute.Bool(domain.SpanAttrGroup, true)))
	}

	tp := t.provider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	ctx, span := tp.Tracer(t.name).Start(ctx, name, startOpts...)

	s := &OTelSpan{span: span, tracer: t}
	return ports.ContextWithSpan(ctx, s), s
}

// OTelSpan is a concrete implementation of ports.Span using OpenTelemetry.
type OTelSpan struct {
	span   trace.Span
	tracer *OTelTracer
}

// End completes the span.
func (s *OTelSpan) End() {
	s.span.End()
}

// RecordError records err on the span and marks it failed.
func (s *OTelSpan) RecordError(err error) {
	if err == nil {
		return
	}
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// SetAttribute adds a key-value pair to the span.
func (s *OTelSpan) SetAttribute(key string, value any) {
	switch v := value.(type) {
	case string:
		s.span.SetAttributes(attribute.String(key, v))
	case int:
		s.span.SetAttributes(attribute.Int(key, v))
	case int64:
		s.span.SetAttributes(attribute.Int64(key, v))
	case float64:
		s.span.SetAttributes(attribute.Float64(key, v))
	case bool:
		s.span.SetAttributes(attribute.Bool(key, v))
	case []string:
		s.span.SetAttributes(attribute.StringSlice(key, v))
	default:
		s.span.SetAttributes(attribute.String(key, fmt.Sprintf("%v", v)))
	}
}

// Write satisfies io.Writer by adding a log event to the span and
// forwarding the bytes to the tracer's sink.
func (s *OTelSpan) Write(p []byte) (n int, err error) {
	s.span.AddEvent(domain.SpanEventLog, trace.WithAttributes(
		attribute.String(domain.SpanEventLogMessage, string(p)),
	))
	if sink := s.tracer.currentSink(); sink != nil {
		sink.OnSpanLog(s.span.SpanContext().SpanID().String(), p)
	}
	return len(p), nil
}
