// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig               `mapstructure:"app"`
	Camunda   CamundaConfig           `mapstructure:"camunda"`
	Database  DatabaseConfig          `mapstructure:"database"`
	Catalog   CatalogConfig           `mapstructure:"catalog"`
	Recommend RecommendConfig         `mapstructure:"recommend"`
	Analytics AnalyticsConfig         `mapstructure:"analytics"`
	AWS       AWSConfig               `mapstructure:"aws"`
	Workers   map[string]WorkerConfig `mapstructure:"workers"`
	Logging   LoggingConfig           `mapstructure:"logging"`
	Metrics   MetricsConfig           `mapstructure:"metrics"`
	Registry  RegistryConfig          `mapstructure:"registry"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	URL       string   `mapstructure:"url"`
}

// GetURL returns the URL field or the first address.
func (e ElasticsearchConfig) GetURL() string {
	if e.URL != "" {
		return e.URL
	}
	if len(e.Addresses) > 0 {
		return e.Addresses[0]
	}
	return ""
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Catalog sources.
const (
	CatalogSourceFile          = "file"
	CatalogSourcePostgres      = "postgres"
	CatalogSourceElasticsearch = "elasticsearch"
)

// CatalogConfig selects the package origin. A positive CacheTTL wraps the
// origin in the redis read-through cache.
type CatalogConfig struct {
	Source      string `mapstructure:"source"`
	FilePath    string `mapstructure:"file_path"`
	Index       string `mapstructure:"index"`
	CacheTTL    int    `mapstructure:"cache_ttl"` // milliseconds, 0 disables the cache
	MaxPackages int    `mapstructure:"max_packages"`
}

type RecommendConfig struct {
	AnalyticsTimeout int `mapstructure:"analytics_timeout"` // milliseconds
}

// Analytics sink names.
const (
	SinkPostgres    = "postgres"
	SinkSNS         = "sns"
	SinkRedisStream = "redis_stream"
)

type AnalyticsConfig struct {
	Enabled      bool     `mapstructure:"enabled"`
	Sinks        []string `mapstructure:"sinks"`
	Table        string   `mapstructure:"table"`
	SNSTopicARN  string   `mapstructure:"sns_topic_arn"`
	RedisStream  string   `mapstructure:"redis_stream"`
	StreamMaxLen int64    `mapstructure:"stream_max_len"`
}

// HasSink reports whether analytics is enabled and name is one of its sinks.
func (a AnalyticsConfig) HasSink(name string) bool {
	if !a.Enabled {
		return false
	}
	for _, s := range a.Sinks {
		if s == name {
			return true
		}
	}
	return false
}

type AWSConfig struct {
	Region string `mapstructure:"region"`
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"` // For error handling
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

type MetricsConfig struct {
	Address string `mapstructure:"address"`
}

type RegistryConfig struct {
	Path string `mapstructure:"path"`
}
