package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/sandre-etl/internal/config"
	"github.com/couchcryptid/sandre-etl/internal/domain"
)

// Reader consumes raw bulletins from a Kafka topic within a consumer group.
// It implements pipeline.BatchExtractor. Offsets are committed explicitly
// through RawBulletin.Commit once a bulletin is loaded or skipped.
type Reader struct {
	reader        *kafkago.Reader
	flushInterval time.Duration
	logger        *slog.Logger
}

// NewReader creates a Kafka consumer for the configured source topic.
func NewReader(cfg *config.Config, logger *slog.Logger) *Reader {
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     cfg.KafkaBrokers,
		GroupID:     cfg.KafkaGroupID,
		Topic:       cfg.KafkaSourceTopic,
		StartOffset: kafkago.FirstOffset,
		MinBytes:    1,
		MaxBytes:    10e6,
	})
	return &Reader{reader: r, flushInterval: cfg.BatchFlushInterval, logger: logger}
}

// ExtractBatch fetches up to batchSize messages. It blocks for the first
// message, then returns early once the flush interval elapses so that a
// partial batch is not held back.
func (r *Reader) ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawBulletin, error) {
	first, err := r.reader.FetchMessage(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch message: %w", err)
	}
	batch := make([]domain.RawBulletin, 0, batchSize)
	batch = append(batch, r.toRawBulletin(first))

	fillCtx := ctx
	if r.flushInterval > 0 {
		var cancel context.CancelFunc
		fillCtx, cancel = context.WithTimeout(ctx, r.flushInterval)
		defer cancel()
	}
	for len(batch) < batchSize {
		msg, err := r.reader.FetchMessage(fillCtx)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
				break
			}
			if ctx.Err() != nil {
				return batch, nil
			}
			return batch, fmt.Errorf("fetch message: %w", err)
		}
		batch = append(batch, r.toRawBulletin(msg))
	}

	r.logger.Debug("batch extracted", "size", len(batch))
	return batch, nil
}

func (r *Reader) toRawBulletin(msg kafkago.Message) domain.RawBulletin {
	raw := mapMessageToRawBulletin(msg)
	raw.Commit = func(ctx context.Context) error {
		return r.reader.CommitMessages(ctx, msg)
	}
	return raw
}

// Close leaves the consumer group and releases connections.
func (r *Reader) Close() error {
	return r.reader.Close()
}

func mapMessageToRawBulletin(msg kafkago.Message) domain.RawBulletin {
	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	return domain.RawBulletin{
		Key:       msg.Key,
		Value:     msg.Value,
		Headers:   headers,
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Timestamp: msg.Time,
	}
}
