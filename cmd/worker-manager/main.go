// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"tour-workers/internal/analytics"
	"tour-workers/internal/catalog"
	awsclient "tour-workers/internal/common/aws"
	"tour-workers/internal/common/camunda"
	"tour-workers/internal/common/config"
	"tour-workers/internal/common/database"
	"tour-workers/internal/common/logger"
	"tour-workers/internal/common/observability"
	"tour-workers/internal/recommend"
	"tour-workers/internal/scoring"
	"tour-workers/pkg/registry"

	ftp "tour-workers/internal/workers/tour/filter-tour-packages"
	ntp "tour-workers/internal/workers/tour/normalize-trip-preferences"
	rtp "tour-workers/internal/workers/tour/recommend-tour-packages"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("environment", cfg.App.Environment),
		zap.String("catalogSource", cfg.Catalog.Source),
	)

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		zapLog.Fatal("observability init failed", zap.Error(err))
	}

	ctx := context.Background()

	// --- Zeebe client (retries internally) ---
	zeebe, err := camunda.NewClientWithConfig(ctx, &camunda.ClientConfig{
		GatewayAddress:         cfg.Camunda.BrokerAddress,
		UsePlaintextConnection: true,
		ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
	})
	if err != nil {
		zapLog.Fatal("failed to connect to Zeebe", zap.Error(err))
	}
	zapLog.Info("Connected to Zeebe", zap.String("address", cfg.Camunda.BrokerAddress))

	backends := []database.Backend{zeebe}
	var (
		catalogBackends   catalog.Backends
		analyticsBackends analytics.Backends
	)

	// --- Postgres ---
	if cfg.UsesPostgres() {
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			return err
		}, 5, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			zapLog.Fatal("failed to connect to PostgreSQL", zap.Error(err))
		}
		zapLog.Info("Connected to PostgreSQL")
		backends = append(backends, pg)
		catalogBackends.DB = pg.DB
		analyticsBackends.DB = pg.DB
	}

	// --- Elasticsearch ---
	if cfg.Catalog.Source == config.CatalogSourceElasticsearch {
		var es *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			es, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			return es.Ping(pingCtx)
		}, 5, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Fatal("failed to connect to Elasticsearch", zap.Error(err))
		}
		zapLog.Info("Connected to Elasticsearch")
		backends = append(backends, es)
		catalogBackends.Elasticsearch = es.Client
	}

	// --- Redis ---
	if cfg.UsesRedis() {
		rdb := database.NewRedis(cfg.Database.Redis)
		err = retryWithBackoff(func() error {
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			return rdb.Ping(pingCtx)
		}, 5, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("failed to connect to Redis", zap.Error(err))
		}
		zapLog.Info("Connected to Redis")
		backends = append(backends, rdb)
		catalogBackends.Redis = rdb.Client
		analyticsBackends.Redis = rdb.Client
	}

	// --- SNS ---
	if cfg.Analytics.HasSink(config.SinkSNS) {
		snsClient, err := awsclient.NewSNSClient(ctx, cfg.AWS.Region)
		if err != nil {
			zapLog.Fatal("failed to create SNS client", zap.Error(err))
		}
		analyticsBackends.Publisher = snsClient
	}

	// --- Discovery core ---
	store, err := catalog.New(cfg.Catalog, catalogBackends, log)
	if err != nil {
		zapLog.Fatal("failed to build catalog store", zap.Error(err))
	}
	sink, err := analytics.New(cfg.Analytics, analyticsBackends)
	if err != nil {
		zapLog.Fatal("failed to build analytics sink", zap.Error(err))
	}
	svc := recommend.NewService(store, scoring.NewHeuristicRanker(), sink, log,
		recommend.WithAnalyticsTimeout(config.GetDuration(cfg.Recommend.AnalyticsTimeout)),
	)

	// --- Activity registry ---
	taskTypes := []string{ntp.TaskType, ftp.TaskType, rtp.TaskType}
	reg, err := registry.LoadRegistry(cfg.Registry.Path)
	if err != nil {
		zapLog.Fatal("failed to load activity registry", zap.Error(err))
	}
	if err := reg.Validate(taskTypes...); err != nil {
		zapLog.Fatal("activity registry rejected", zap.Error(err))
	}

	// --- Workers ---
	client := zeebe.GetClient()
	var workers []worker.JobWorker

	start := func(taskType string, wcfg config.WorkerConfig, handler worker.JobHandler) {
		if jw := camunda.StartWorker(client, taskType, wcfg, handler, obs, log); jw != nil {
			workers = append(workers, jw)
		}
	}

	{
		wcfg := resolveWorkerConfig(cfg, reg, ntp.TaskType)
		handler := ntp.NewHandler(ntp.LoadConfig(wcfg), log)
		start(ntp.TaskType, wcfg, handler.Handle)
	}
	{
		wcfg := resolveWorkerConfig(cfg, reg, ftp.TaskType)
		handler := ftp.NewHandler(ftp.LoadConfig(wcfg), store, log)
		start(ftp.TaskType, wcfg, handler.Handle)
	}
	{
		wcfg := resolveWorkerConfig(cfg, reg, rtp.TaskType)
		handler := rtp.NewHandler(rtp.LoadConfig(wcfg), svc, log)
		start(rtp.TaskType, wcfg, handler.Handle)
	}
	zapLog.Info("Workers registered", zap.Int("count", len(workers)))

	// --- Health & Metrics Server ---
	srv := &http.Server{
		Addr:              cfg.Metrics.Address,
		Handler:           newHealthMux(backends),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("address", cfg.Metrics.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, jw := range workers {
		jw.Close()
		jw.AwaitClose()
	}
	svc.Wait()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping Health/Metrics server", zap.Error(err))
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error flushing metrics", zap.Error(err))
	}
	for i := len(backends) - 1; i >= 0; i-- {
		if err := backends[i].Close(); err != nil {
			zapLog.Error("Error closing connection", zap.String("backend", backends[i].Name()), zap.Error(err))
		}
	}

	zapLog.Info("Worker manager stopped")
}

// resolveWorkerConfig returns the settings a worker and its handler share.
// Workers without a config entry take their job timeout from the registry.
func resolveWorkerConfig(cfg *config.Config, reg *registry.ActivityRegistry, taskType string) config.WorkerConfig {
	wcfg := config.GetWorkerConfig(cfg, taskType)
	if _, configured := cfg.Workers[taskType]; configured {
		return wcfg
	}
	if activity, ok := reg.Find(taskType); ok {
		if d, _ := activity.TimeoutDuration(); d > 0 {
			wcfg.Timeout = int(d / time.Millisecond)
		}
	}
	return wcfg
}

// newHealthMux serves liveness, readiness over the given backends, and the
// prometheus registry.
func newHealthMux(backends []database.Backend) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := database.CheckAll(r.Context(), 2*time.Second, backends...); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not_ready",
				"error":  err.Error(),
				"time":   time.Now().Format(time.RFC3339),
			})
			return
		}
		writeStatus(w, http.StatusOK, map[string]string{
			"status": "ready",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func writeStatus(w http.ResponseWriter, code int, body map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}
