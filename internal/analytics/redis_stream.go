package analytics

import (
	"context"
	"encoding/json"
	"fmt"

	"tour-workers/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisStreamSink appends records to a capped stream. The cap is approximate
// (MAXLEN ~) so redis can trim whole macro nodes.
type RedisStreamSink struct {
	client redis.Cmdable
	stream string
	maxLen int64
}

func NewRedisStreamSink(client redis.Cmdable, stream string, maxLen int64) *RedisStreamSink {
	return &RedisStreamSink{client: client, stream: stream, maxLen: maxLen}
}

func (s *RedisStreamSink) Name() string { return "redis_stream" }

func (s *RedisStreamSink) Record(ctx context.Context, rec models.PreferenceRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal preference record: %w", err)
	}

	err = s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		MaxLen: s.maxLen,
		Approx: s.maxLen > 0,
		Values: []interface{}{"id", rec.ID, "payload", string(payload)},
	}).Err()
	if err != nil {
		return fmt.Errorf("xadd %s: %w", s.stream, err)
	}
	return nil
}
