package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/sandre-etl/internal/domain"
	"github.com/couchcryptid/sandre-etl/internal/observability"
	"github.com/couchcryptid/sandre-etl/internal/sandre"
	"github.com/couchcryptid/sandre-etl/internal/sandre/codec"
)

// Header keys set on every converted bulletin.
const (
	HeaderSourceVersion = "source_version"
	HeaderTargetVersion = "target_version"
	HeaderScenario      = "scenario"
	HeaderEmitter       = "emitter"
	HeaderProcessedAt   = "processed_at"
)

// BulletinTransformer implements Transformer by re-encoding each bulletin to
// a fixed schema version.
type BulletinTransformer struct {
	codec          *codec.Codec
	target         sandre.Version
	stripNamespace bool
	clock          clockwork.Clock
	logger         *slog.Logger
	metrics        *observability.Metrics
}

// TransformerOption configures a BulletinTransformer.
type TransformerOption func(*BulletinTransformer)

// WithStripNamespace removes SANDRE namespace declarations before decoding.
func WithStripNamespace(strip bool) TransformerOption {
	return func(t *BulletinTransformer) { t.stripNamespace = strip }
}

// WithTransformerClock sets the clock used for the processed_at header.
func WithTransformerClock(c clockwork.Clock) TransformerOption {
	return func(t *BulletinTransformer) {
		if c != nil {
			t.clock = c
		}
	}
}

// NewTransformer creates a BulletinTransformer converting to target.
func NewTransformer(c *codec.Codec, target sandre.Version, logger *slog.Logger, metrics *observability.Metrics, opts ...TransformerOption) *BulletinTransformer {
	t := &BulletinTransformer{
		codec:   c,
		target:  target,
		clock:   clockwork.NewRealClock(),
		logger:  logger,
		metrics: metrics,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Transform decodes raw.Value, encodes it to the target version and attaches
// routing headers. The output key is the raw key when set, otherwise the
// document key (emitter and creation date).
func (t *BulletinTransformer) Transform(_ context.Context, raw domain.RawBulletin) (domain.OutputBulletin, error) {
	data := raw.Value
	if t.stripNamespace {
		stripped, err := codec.StripNamespace(data)
		if err != nil {
			return domain.OutputBulletin{}, t.fail(err)
		}
		data = stripped
	}

	out, doc, err := t.codec.Convert(data, t.target)
	if err != nil {
		return domain.OutputBulletin{}, t.fail(err)
	}

	source := doc.Scenario.Version.String()
	t.metrics.Documents.WithLabelValues(source, t.target.String()).Inc()
	t.metrics.ThresholdGroups.Observe(float64(len(doc.Thresholds)))

	key := raw.Key
	if len(key) == 0 {
		key = []byte(doc.Key())
	}
	t.logger.Debug("bulletin converted",
		"key", string(key),
		"source_version", source,
		"target_version", t.target.String(),
		"offset", raw.Offset,
	)

	return domain.OutputBulletin{
		Key:   key,
		Value: out,
		Headers: map[string]string{
			HeaderSourceVersion: source,
			HeaderTargetVersion: t.target.String(),
			HeaderScenario:      doc.Scenario.Code,
			HeaderEmitter:       doc.Scenario.Emitter.IntervenantCode,
			HeaderProcessedAt:   t.clock.Now().UTC().Format(time.RFC3339),
		},
	}, nil
}

func (t *BulletinTransformer) fail(err error) error {
	t.metrics.CodecErrors.WithLabelValues(sandre.Kind(err)).Inc()
	return fmt.Errorf("convert bulletin: %w", err)
}
