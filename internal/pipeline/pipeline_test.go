package pipeline_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/sandre-etl/internal/domain"
	"github.com/couchcryptid/sandre-etl/internal/observability"
	"github.com/couchcryptid/sandre-etl/internal/pipeline"
)

// --- mocks ---

// step is one scripted ExtractBatch result.
type step struct {
	batch []domain.RawBulletin
	err   error
}

// mockExtractor replays its steps in order, then blocks until the context
// is cancelled.
type mockExtractor struct {
	steps     []step
	calls     atomic.Int64
	batchSize atomic.Int64
}

func (m *mockExtractor) ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawBulletin, error) {
	m.batchSize.Store(int64(batchSize))
	i := int(m.calls.Add(1) - 1)
	if i < len(m.steps) {
		return m.steps[i].batch, m.steps[i].err
	}
	<-ctx.Done()
	return nil, ctx.Err()
}

func batch(raws ...domain.RawBulletin) *mockExtractor {
	return &mockExtractor{steps: []step{{batch: raws}}}
}

type mockTransformer struct {
	failKey string
}

func (m *mockTransformer) Transform(_ context.Context, raw domain.RawBulletin) (domain.OutputBulletin, error) {
	if string(raw.Key) == m.failKey {
		return domain.OutputBulletin{}, errors.New("bad bulletin")
	}
	return domain.OutputBulletin{Key: raw.Key, Value: raw.Value}, nil
}

type mockLoader struct {
	mu     sync.Mutex
	loaded []domain.OutputBulletin
	err    error
}

func (m *mockLoader) LoadBatch(_ context.Context, bulletins []domain.OutputBulletin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.loaded = append(m.loaded, bulletins...)
	return nil
}

func (m *mockLoader) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.loaded)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func rawBulletin(key string, commits *atomic.Int64) domain.RawBulletin {
	return domain.RawBulletin{
		Key:   []byte(key),
		Value: []byte("<hydrometrie/>"),
		Topic: "raw-sandre-bulletins",
		Commit: func(context.Context) error {
			commits.Add(1)
			return nil
		},
	}
}

func runFor(t *testing.T, p *pipeline.Pipeline, d time.Duration) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	require.NoError(t, p.Run(ctx))
}

// --- tests ---

func TestPipeline_Run_HappyPath(t *testing.T) {
	var commits atomic.Int64
	ext := batch(rawBulletin("a", &commits), rawBulletin("b", &commits))
	ldr := &mockLoader{}
	p := pipeline.New(ext, &mockTransformer{}, ldr, discardLogger(), observability.NewMetricsForTesting(), 10)

	require.Error(t, p.CheckReadiness(context.Background()))
	runFor(t, p, 300*time.Millisecond)

	assert.Equal(t, 2, ldr.count())
	assert.Equal(t, []byte("a"), ldr.loaded[0].Key)
	assert.Equal(t, int64(2), commits.Load())
	assert.NoError(t, p.CheckReadiness(context.Background()))
}

func TestPipeline_Run_ContextCancellation(t *testing.T) {
	ldr := &mockLoader{}
	p := pipeline.New(&mockExtractor{}, &mockTransformer{}, ldr, discardLogger(), observability.NewMetricsForTesting(), 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, p.Run(ctx))
	assert.Zero(t, ldr.count())
}

func TestPipeline_Run_SkipsFailedConversion(t *testing.T) {
	var commits atomic.Int64
	ext := batch(rawBulletin("poison", &commits), rawBulletin("good", &commits))
	ldr := &mockLoader{}
	p := pipeline.New(ext, &mockTransformer{failKey: "poison"}, ldr, discardLogger(), observability.NewMetricsForTesting(), 10)

	runFor(t, p, 300*time.Millisecond)

	require.Equal(t, 1, ldr.count())
	assert.Equal(t, []byte("good"), ldr.loaded[0].Key)
	assert.Equal(t, int64(2), commits.Load(), "failed bulletins are committed too")
}

func TestPipeline_Run_AllFailedIsNotReady(t *testing.T) {
	var commits atomic.Int64
	ext := batch(rawBulletin("poison", &commits))
	ldr := &mockLoader{}
	p := pipeline.New(ext, &mockTransformer{failKey: "poison"}, ldr, discardLogger(), observability.NewMetricsForTesting(), 10)

	runFor(t, p, 300*time.Millisecond)

	assert.Zero(t, ldr.count())
	assert.Equal(t, int64(1), commits.Load())
	assert.Error(t, p.CheckReadiness(context.Background()))
}

func TestPipeline_Run_LoadFailureDoesNotCommit(t *testing.T) {
	var commits atomic.Int64
	ext := batch(rawBulletin("a", &commits))
	ldr := &mockLoader{err: errors.New("broker unavailable")}
	p := pipeline.New(ext, &mockTransformer{}, ldr, discardLogger(), observability.NewMetricsForTesting(), 10)

	runFor(t, p, 300*time.Millisecond)

	assert.Zero(t, commits.Load())
	assert.Error(t, p.CheckReadiness(context.Background()))
}

func TestPipeline_Run_RetriesAfterExtractError(t *testing.T) {
	var commits atomic.Int64
	ext := &mockExtractor{steps: []step{
		{err: errors.New("fetch failed")},
		{batch: []domain.RawBulletin{rawBulletin("a", &commits)}},
	}}
	ldr := &mockLoader{}
	p := pipeline.New(ext, &mockTransformer{}, ldr, discardLogger(), observability.NewMetricsForTesting(), 10)

	runFor(t, p, time.Second)

	assert.Equal(t, 1, ldr.count(), "batch is loaded after the backoff")
	assert.GreaterOrEqual(t, ext.calls.Load(), int64(3))
}

func TestPipeline_Run_ProcessesConsecutiveBatches(t *testing.T) {
	var commits atomic.Int64
	ext := &mockExtractor{steps: []step{
		{batch: []domain.RawBulletin{rawBulletin("a", &commits), rawBulletin("b", &commits)}},
		{},
		{batch: []domain.RawBulletin{rawBulletin("c", &commits)}},
	}}
	ldr := &mockLoader{}
	p := pipeline.New(ext, &mockTransformer{}, ldr, discardLogger(), observability.NewMetricsForTesting(), 2)

	runFor(t, p, 300*time.Millisecond)

	assert.Equal(t, 3, ldr.count())
	assert.Equal(t, int64(3), commits.Load())
	assert.Equal(t, int64(2), ext.batchSize.Load())
}
