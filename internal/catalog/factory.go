package catalog

import (
	"database/sql"
	"fmt"

	"tour-workers/internal/common/config"
	"tour-workers/internal/common/logger"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
)

// Backends holds the connections a configured store may need. Only the
// fields required by the selected source and cache must be set.
type Backends struct {
	DB            *sql.DB
	Elasticsearch *elasticsearch.Client
	Redis         redis.Cmdable
}

// New builds the store selected by cfg, wrapped in the redis cache when
// cfg.CacheTTL is positive.
func New(cfg config.CatalogConfig, b Backends, log logger.Logger) (Store, error) {
	var (
		origin Store
		err    error
	)

	switch cfg.Source {
	case config.CatalogSourceFile:
		origin, err = NewFileStore(cfg.FilePath, cfg.MaxPackages, log)
	case config.CatalogSourcePostgres:
		if b.DB == nil {
			return nil, fmt.Errorf("catalog source %q needs a postgres connection", cfg.Source)
		}
		origin = NewPostgresStore(b.DB, cfg.MaxPackages, log)
	case config.CatalogSourceElasticsearch:
		if b.Elasticsearch == nil {
			return nil, fmt.Errorf("catalog source %q needs an elasticsearch client", cfg.Source)
		}
		origin, err = NewElasticsearchStore(b.Elasticsearch, cfg.Index, cfg.MaxPackages, log)
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Source)
	}
	if err != nil {
		return nil, err
	}

	if cfg.CacheTTL <= 0 {
		return origin, nil
	}
	if b.Redis == nil {
		return nil, fmt.Errorf("catalog cache needs a redis connection")
	}
	return NewCachedStore(origin, b.Redis, config.GetDuration(cfg.CacheTTL), log), nil
}
