package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "json", "warn")

	logger.Info("dropped")
	logger.Warn("kept", "bulletin", "1537")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "kept", rec["msg"])
	assert.Equal(t, "1537", rec["bulletin"])
}

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "TEXT", "debug")
	logger.Debug("decoded", "version", "2")
	assert.Contains(t, buf.String(), "msg=decoded")
	assert.Contains(t, buf.String(), "version=2")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestNewMetricsForTesting_Independent(t *testing.T) {
	a := NewMetricsForTesting()
	b := NewMetricsForTesting()

	a.CodecErrors.WithLabelValues("malformed_element").Inc()
	a.Documents.WithLabelValues("1.1", "2").Add(2)

	assert.InDelta(t, 1, counterValue(t, a.CodecErrors.WithLabelValues("malformed_element")), 0)
	assert.InDelta(t, 2, counterValue(t, a.Documents.WithLabelValues("1.1", "2")), 0)
	assert.InDelta(t, 0, counterValue(t, b.CodecErrors.WithLabelValues("malformed_element")), 0)
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}
