package kafka

import (
	"context"
	"log/slog"
	"slices"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/sandre-etl/internal/config"
	"github.com/couchcryptid/sandre-etl/internal/domain"
)

// Writer produces converted bulletins to a Kafka topic.
// It implements pipeline.BatchLoader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		BatchTimeout: cfg.BatchFlushInterval,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadBatch publishes the bulletins in a single WriteMessages call. Bulletins
// sharing a key land on the same partition.
func (w *Writer) LoadBatch(ctx context.Context, bulletins []domain.OutputBulletin) error {
	if len(bulletins) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(bulletins))
	for i, b := range bulletins {
		msgs[i] = toMessage(b)
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return err
	}
	w.logger.Debug("batch loaded", "size", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// toMessage maps a converted bulletin to a Kafka message. Headers are sorted
// by key so that the message layout is stable.
func toMessage(b domain.OutputBulletin) kafkago.Message {
	keys := make([]string, 0, len(b.Headers))
	for k := range b.Headers {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	headers := make([]kafkago.Header, 0, len(keys))
	for _, k := range keys {
		headers = append(headers, kafkago.Header{Key: k, Value: []byte(b.Headers[k])})
	}
	return kafkago.Message{Key: b.Key, Value: b.Value, Headers: headers}
}
