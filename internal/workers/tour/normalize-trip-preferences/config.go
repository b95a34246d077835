// internal/workers/tour/normalize-trip-preferences/config.go
package normalizetrippreferences

import (
	"time"

	"tour-workers/internal/common/config"
)

type Config struct {
	Timeout time.Duration
}

// LoadConfig converts the worker section of the application config.
func LoadConfig(wcfg config.WorkerConfig) *Config {
	timeout := config.GetDuration(wcfg.Timeout)
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Config{Timeout: timeout}
}
