package database

import (
	"context"
	"fmt"
	"time"
)

// Backend is a connection the worker manager reports on at /ready.
type Backend interface {
	Name() string
	Ping(ctx context.Context) error
	Close() error
}

// CheckAll pings every backend with a per-backend timeout and returns the
// first failure.
func CheckAll(ctx context.Context, timeout time.Duration, backends ...Backend) error {
	for _, b := range backends {
		pingCtx, cancel := context.WithTimeout(ctx, timeout)
		err := b.Ping(pingCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("%s not ready: %w", b.Name(), err)
		}
	}
	return nil
}
