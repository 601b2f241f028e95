package kafka

import (
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"

	"github.com/couchcryptid/sandre-etl/internal/domain"
)

func TestMapMessageToRawBulletin(t *testing.T) {
	now := time.Now()
	msg := kafkago.Message{
		Key:       []byte("1537|2016-07-01T08:00:00"),
		Value:     []byte("<hydrometrie/>"),
		Topic:     "raw-sandre-bulletins",
		Partition: 2,
		Offset:    42,
		Time:      now,
		Headers: []kafkago.Header{
			{Key: "source", Value: []byte("schapi")},
		},
	}

	raw := mapMessageToRawBulletin(msg)

	assert.Equal(t, []byte("1537|2016-07-01T08:00:00"), raw.Key)
	assert.Equal(t, "<hydrometrie/>", string(raw.Value))
	assert.Equal(t, "raw-sandre-bulletins", raw.Topic)
	assert.Equal(t, 2, raw.Partition)
	assert.Equal(t, int64(42), raw.Offset)
	assert.Equal(t, now, raw.Timestamp)
	assert.Equal(t, "schapi", raw.Headers["source"])
	assert.Nil(t, raw.Commit)
}

func TestMapMessageToRawBulletin_NoHeaders(t *testing.T) {
	raw := mapMessageToRawBulletin(kafkago.Message{Value: []byte("x")})
	assert.NotNil(t, raw.Headers)
	assert.Empty(t, raw.Headers)
}

func TestToMessage(t *testing.T) {
	b := domain.OutputBulletin{
		Key:   []byte("bulletin-1"),
		Value: []byte("<hydrometrie/>"),
		Headers: map[string]string{
			"target_version": "2",
			"emitter":        "1537",
			"source_version": "1.1",
			"processed_at":   "2024-05-01T10:00:00Z",
		},
	}

	msg := toMessage(b)

	assert.Equal(t, []byte("bulletin-1"), msg.Key)
	assert.Equal(t, []byte("<hydrometrie/>"), msg.Value)
	assert.Equal(t, []kafkago.Header{
		{Key: "emitter", Value: []byte("1537")},
		{Key: "processed_at", Value: []byte("2024-05-01T10:00:00Z")},
		{Key: "source_version", Value: []byte("1.1")},
		{Key: "target_version", Value: []byte("2")},
	}, msg.Headers)
}
