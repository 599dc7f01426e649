package telemetry

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/setup-cpp/internal/core/domain"
	"go.trai.ch/setup-cpp/internal/ui/output"
	"go.trai.ch/setup-cpp/internal/ui/style"
)

// GroupBridge implements sdktrace.SpanProcessor and LogSink. It renders group
// spans as foldable sections: "::group::" markers on CI, a header and a
// completion line locally. Groups do not nest; a group span started while
// another one is open renders as plain output.
type GroupBridge struct {
	w   io.Writer
	out *termenv.Output
	ci  bool

	mu        sync.Mutex
	spans     map[string]*spanState
	openGroup string
}

type spanState struct {
	name    string
	group   bool
	started time.Time
	buf     *bytes.Buffer
}

// NewGroupBridge creates a GroupBridge writing to w.
// ci selects GitHub Actions workflow commands.
func NewGroupBridge(w io.Writer, ci bool) *GroupBridge {
	return &GroupBridge{
		w:     w,
		out:   output.New(w, ci),
		ci:    ci,
		spans: make(map[string]*spanState),
	}
}

// OnStart is called when a span starts.
func (b *GroupBridge) OnStart(_ context.Context, s sdktrace.ReadWriteSpan) {
	sc := s.SpanContext()
	if !sc.IsValid() {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	state := &spanState{
		name:    s.Name(),
		started: s.StartTime(),
		buf:     new(bytes.Buffer),
	}
	b.spans[sc.SpanID().String()] = state

	if !isGroup(s) || b.openGroup != "" {
		return
	}
	state.group = true
	b.openGroup = sc.SpanID().String()

	if b.ci {
		_, _ = fmt.Fprintf(b.w, "::group::%s\n", state.name)
		return
	}
	header := b.out.String(style.Dot + " " + state.name).Bold().
		Foreground(termenv.RGBColor(string(style.Iris))).String()
	_, _ = fmt.Fprintln(b.w, header)
}

// OnSpanLog prints every complete line written to a span.
func (b *GroupBridge) OnSpanLog(spanID string, data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	state, ok := b.spans[spanID]
	if !ok {
		return
	}
	state.buf.Write(data)

	for {
		line, err := state.buf.ReadBytes('\n')
		if err != nil {
			if len(line) > 0 {
				rest := new(bytes.Buffer)
				rest.Write(line)
				state.buf = rest
			}
			return
		}
		b.printLineLocked(line)
	}
}

// OnEnd is called when a span ends.
func (b *GroupBridge) OnEnd(s sdktrace.ReadOnlySpan) {
	spanID := s.SpanContext().SpanID().String()

	b.mu.Lock()
	defer b.mu.Unlock()

	state, ok := b.spans[spanID]
	if !ok {
		return
	}
	b.flushLocked(state)
	delete(b.spans, spanID)

	if !state.group {
		return
	}
	b.openGroup = ""

	failed := s.Status().Code == codes.Error
	if b.ci {
		_, _ = fmt.Fprintln(b.w, "::endgroup::")
		if failed {
			_, _ = fmt.Fprintf(b.w, "::error::%s failed: %s\n", state.name, s.Status().Description)
		}
		return
	}

	switch {
	case failed:
		symbol := b.out.String(style.Cross).Foreground(termenv.RGBColor(string(style.Red))).String()
		_, _ = fmt.Fprintf(b.w, "%s %s: %s\n", symbol, state.name, s.Status().Description)
	case isCached(s):
		symbol := b.out.String(style.Check).Foreground(termenv.RGBColor(string(style.Green))).String()
		_, _ = fmt.Fprintf(b.w, "%s %s (cached)\n", symbol, state.name)
	default:
		symbol := b.out.String(style.Check).Foreground(termenv.RGBColor(string(style.Green))).String()
		duration := s.EndTime().Sub(state.started).Round(time.Millisecond)
		_, _ = fmt.Fprintf(b.w, "%s %s (%v)\n", symbol, state.name, duration)
	}
}

// Shutdown flushes partial lines of spans that never ended.
func (b *GroupBridge) Shutdown(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, state := range b.spans {
		b.flushLocked(state)
	}
	return nil
}

// ForceFlush does nothing; output is written synchronously.
func (b *GroupBridge) ForceFlush(_ context.Context) error {
	return nil
}

// flushLocked prints the buffered partial line of a span. Must be called with b.mu held.
func (b *GroupBridge) flushLocked(state *spanState) {
	if state.buf.Len() > 0 {
		b.printLineLocked(state.buf.Bytes())
		state.buf.Reset()
	}
}

// printLineLocked prints one line of span output. Must be called with b.mu held.
func (b *GroupBridge) printLineLocked(line []byte) {
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))
	if len(line) == 0 {
		return
	}

	if b.ci {
		_, _ = fmt.Fprintf(b.w, "%s\n", line)
		return
	}
	_, _ = fmt.Fprintf(b.w, "  %s\n", b.out.String(string(line)).Faint().String())
}

func isGroup(s sdktrace.ReadOnlySpan) bool {
	return boolAttribute(s, domain.SpanAttrGroup)
}

func isCached(s sdktrace.ReadOnlySpan) bool {
	return boolAttribute(s, domain.SpanAttrCached)
}

func boolAttribute(s sdktrace.ReadOnlySpan, key string) bool {
	for _, kv := range s.Attributes() {
		if string(kv.Key) == key {
			return kv.Value.AsBool()
		}
	}
	return false
}

// MultiSink fans span output out to several sinks.
type MultiSink []LogSink

// OnSpanLog forwards data to every sink.
func (m MultiSink) OnSpanLog(spanID string, data []byte) {
	for _, sink := range m {
		sink.OnSpanLog(spanID, data)
	}
}

var (
	_ sdktrace.SpanProcessor = (*GroupBridge)(nil)
	_ LogSink                = (*GroupBridge)(nil)
)
