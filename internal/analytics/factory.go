package analytics

import (
	"database/sql"
	"fmt"

	"tour-workers/internal/common/config"

	"github.com/redis/go-redis/v9"
)

// Backends holds the clients the configured sinks may need.
type Backends struct {
	DB        *sql.DB
	Redis     redis.Cmdable
	Publisher Publisher
}

// New builds the sink for cfg. Disabled analytics, or no sinks at all, yields
// a NopSink; otherwise the sinks are wrapped in a MultiSink in config order.
func New(cfg config.AnalyticsConfig, b Backends) (Sink, error) {
	if !cfg.Enabled || len(cfg.Sinks) == 0 {
		return NopSink{}, nil
	}

	sinks := make([]Sink, 0, len(cfg.Sinks))
	for _, name := range cfg.Sinks {
		switch name {
		case config.SinkPostgres:
			if b.DB == nil {
				return nil, fmt.Errorf("analytics sink %q needs a postgres connection", name)
			}
			s, err := NewPostgresSink(b.DB, cfg.Table)
			if err != nil {
				return nil, err
			}
			sinks = append(sinks, s)
		case config.SinkSNS:
			if b.Publisher == nil {
				return nil, fmt.Errorf("analytics sink %q needs an sns client", name)
			}
			sinks = append(sinks, NewSNSSink(b.Publisher, cfg.SNSTopicARN))
		case config.SinkRedisStream:
			if b.Redis == nil {
				return nil, fmt.Errorf("analytics sink %q needs a redis connection", name)
			}
			sinks = append(sinks, NewRedisStreamSink(b.Redis, cfg.RedisStream, cfg.StreamMaxLen))
		default:
			return nil, fmt.Errorf("unknown analytics sink %q", name)
		}
	}
	return NewMultiSink(sinks...), nil
}
