package progrock_test

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vito/progrock"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/setup-cpp/internal/adapters/telemetry"
	rec "go.trai.ch/setup-cpp/internal/adapters/telemetry/progrock"
	"go.trai.ch/setup-cpp/internal/core/domain"
	"go.trai.ch/setup-cpp/internal/core/ports"
	"google.golang.org/protobuf/encoding/protojson"
)

// readJournal decodes every line of the journal at path.
func readJournal(t *testing.T, path string) []*progrock.StatusUpdate {
	t.Helper()
	//nolint:gosec // test fixture path
	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	var updates []*progrock.StatusUpdate
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		update := &progrock.StatusUpdate{}
		require.NoError(t, protojson.Unmarshal(scanner.Bytes(), update))
		updates = append(updates, update)
	}
	require.NoError(t, scanner.Err())
	return updates
}

func TestJournal_PersistsVertices(t *testing.T) {
	path := filepath.Join(t.TempDir(), "setup-cpp", "progress.jsonl")
	journal, err := rec.OpenJournal(path)
	require.NoError(t, err)

	recorder := rec.NewRecorder(journal)
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tracer := telemetry.NewOTelTracerWithProvider(tp, "test")

	ctx := context.Background()
	_, span := tracer.Start(ctx, "cmake 3.27.7", ports.WithGroup())
	span.SetAttribute(domain.SpanAttrCached, true)
	span.End()
	require.NoError(t, tp.Shutdown(ctx))

	updates := readJournal(t, path)
	require.NotEmpty(t, updates)

	var cached bool
	for _, u := range updates {
		for _, v := range u.Vertexes {
			if v.Name == "cmake 3.27.7" && v.Cached {
				cached = true
			}
		}
	}
	assert.True(t, cached)
}

func TestJournal_AppendsAcrossRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.jsonl")

	for _, name := range []string{"ninja 1.11.1", "meson 1.2.3"} {
		journal, err := rec.OpenJournal(path)
		require.NoError(t, err)
		recorder := rec.NewRecorder(journal)
		tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
		_, span := telemetry.NewOTelTracerWithProvider(tp, "test").Start(context.Background(), name)
		span.End()
		require.NoError(t, tp.Shutdown(context.Background()))
	}

	names := make(map[string]bool)
	for _, u := range readJournal(t, path) {
		for _, v := range u.Vertexes {
			names[v.Name] = true
		}
	}
	assert.True(t, names["ninja 1.11.1"])
	assert.True(t, names["meson 1.2.3"])
}

func TestJournal_WriteAfterCloseIsNoop(t *testing.T) {
	journal, err := rec.OpenJournal(filepath.Join(t.TempDir(), "progress.jsonl"))
	require.NoError(t, err)

	require.NoError(t, journal.Close())
	assert.NoError(t, journal.WriteStatus(&progrock.StatusUpdate{}))
	assert.NoError(t, journal.Close())
}

func TestOpenJournal_UnwritableParent(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	_, err := rec.OpenJournal(filepath.Join(blocker, "progress.jsonl"))
	assert.ErrorContains(t, err, "failed to create journal directory")
}
