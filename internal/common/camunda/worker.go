// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"fmt"
	"time"

	"tour-workers/internal/common/config"
	"tour-workers/internal/common/errors"
	"tour-workers/internal/common/logger"
	"tour-workers/internal/common/metrics"
	"tour-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/commands"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// Job outcomes, taken from the last command a handler created.
const (
	OutcomeCompleted = "completed"
	OutcomeFailed    = "failed"
	OutcomeThrown    = "error_thrown"
	OutcomeNone      = "none"
)

// StartWorker opens a job worker for taskType with the instrumented handler.
// It returns nil when the worker is disabled.
func StartWorker(
	client zbc.Client,
	taskType string,
	wcfg config.WorkerConfig,
	handler worker.JobHandler,
	obs *observability.Observability,
	log logger.Logger,
) worker.JobWorker {
	log = log.WithFields(map[string]interface{}{"taskType": taskType})
	if !wcfg.Enabled {
		log.Info("worker disabled", nil)
		return nil
	}

	jw := client.NewJobWorker().
		JobType(taskType).
		Handler(Instrument(taskType, handler, obs, log)).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Open()

	log.Info("worker started", map[string]interface{}{
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeout_ms":    wcfg.Timeout,
	})
	return jw
}

// Instrument wraps handler with the active-jobs gauge, duration metrics and
// panic recovery. A panicking handler fails the job through ErrorHandler.
func Instrument(taskType string, handler worker.JobHandler, obs *observability.Observability, log logger.Logger) worker.JobHandler {
	errHandler := errors.NewErrorHandler(log)

	return func(client worker.JobClient, job entities.Job) {
		start := time.Now()
		rec := &outcomeRecorder{JobClient: client, outcome: OutcomeNone}

		metrics.WorkerJobsActive.WithLabelValues(taskType).Inc()
		defer func() {
			metrics.WorkerJobsActive.WithLabelValues(taskType).Dec()

			if r := recover(); r != nil {
				log.Error("handler panicked", map[string]interface{}{
					"jobKey": job.Key,
					"panic":  fmt.Sprint(r),
				})
				metrics.WorkerJobsFailed.WithLabelValues(taskType, string(errors.ErrCodeInternal)).Inc()
				errHandler.HandleJobError(context.Background(), rec, job,
					errors.NewInternalError(fmt.Errorf("panic: %v", r)))
			}

			elapsed := time.Since(start)
			metrics.WorkerJobDuration.WithLabelValues(taskType).Observe(elapsed.Seconds())
			obs.RecordJob(context.Background(), taskType, rec.outcome, elapsed)
		}()

		handler(rec, job)
	}
}

// outcomeRecorder notes which terminal command a handler issued for a job.
type outcomeRecorder struct {
	worker.JobClient
	outcome string
}

func (r *outcomeRecorder) NewCompleteJobCommand() commands.CompleteJobCommandStep1 {
	r.outcome = OutcomeCompleted
	return r.JobClient.NewCompleteJobCommand()
}

func (r *outcomeRecorder) NewFailJobCommand() commands.FailJobCommandStep1 {
	r.outcome = OutcomeFailed
	return r.JobClient.NewFailJobCommand()
}

func (r *outcomeRecorder) NewThrowErrorCommand() commands.ThrowErrorCommandStep1 {
	r.outcome = OutcomeThrown
	return r.JobClient.NewThrowErrorCommand()
}
