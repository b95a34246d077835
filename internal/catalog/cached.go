package catalog

import (
	"context"
	"encoding/json"
	"time"

	"tour-workers/internal/common/logger"
	"tour-workers/internal/common/metrics"
	"tour-workers/internal/models"

	"github.com/redis/go-redis/v9"
)

const DefaultCacheKey = "catalog:packages"

// CachedStore is a read-through redis cache in front of another Store.
// Redis failures are logged and fall through to the origin.
type CachedStore struct {
	origin Store
	redis  redis.Cmdable
	key    string
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedStore(origin Store, rdb redis.Cmdable, ttl time.Duration, log logger.Logger) *CachedStore {
	return &CachedStore{
		origin: origin,
		redis:  rdb,
		key:    DefaultCacheKey,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"cacheKey": DefaultCacheKey}),
	}
}

func (s *CachedStore) List(ctx context.Context) ([]models.Package, error) {
	if pkgs, ok := s.lookup(ctx); ok {
		return pkgs, nil
	}

	pkgs, err := s.origin.List(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(pkgs)
	if err != nil {
		s.logger.Warn("catalog snapshot not cacheable", map[string]interface{}{"error": err})
		return pkgs, nil
	}
	if err := s.redis.Set(ctx, s.key, data, s.ttl).Err(); err != nil {
		s.logger.Warn("catalog cache write failed", map[string]interface{}{"error": err})
	}
	return pkgs, nil
}

func (s *CachedStore) lookup(ctx context.Context) ([]models.Package, bool) {
	val, err := s.redis.Get(ctx, s.key).Bytes()
	switch {
	case err == redis.Nil:
		metrics.CatalogCacheRequests.WithLabelValues("miss").Inc()
		return nil, false
	case err != nil:
		metrics.CatalogCacheRequests.WithLabelValues("error").Inc()
		s.logger.Warn("catalog cache read failed", map[string]interface{}{"error": err})
		return nil, false
	}

	var pkgs []models.Package
	if err := json.Unmarshal(val, &pkgs); err != nil {
		metrics.CatalogCacheRequests.WithLabelValues("error").Inc()
		s.logger.Warn("discarding corrupt catalog cache entry", map[string]interface{}{"error": err})
		return nil, false
	}
	if pkgs == nil {
		pkgs = []models.Package{}
	}
	metrics.CatalogCacheRequests.WithLabelValues("hit").Inc()
	return pkgs, true
}

// Invalidate drops the cached snapshot so the next List reads the origin.
func (s *CachedStore) Invalidate(ctx context.Context) error {
	return s.redis.Del(ctx, s.key).Err()
}
