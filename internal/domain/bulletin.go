package domain

import (
	"context"
	"time"
)

// RawBulletin is an unprocessed message from the source topic.
type RawBulletin struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// OutputBulletin is a converted bulletin destined for the sink topic.
type OutputBulletin struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}
