// Package analytics persists snapshots of submitted trip preferences. Every
// sink is best-effort: callers log failures and move on.
package analytics

import (
	"context"
	stderrors "errors"

	"tour-workers/internal/common/errors"
	"tour-workers/internal/common/metrics"
	"tour-workers/internal/models"
)

// Sink accepts preference records.
type Sink interface {
	Name() string
	Record(ctx context.Context, rec models.PreferenceRecord) error
}

// NopSink discards records. It is used when analytics is disabled.
type NopSink struct{}

func (NopSink) Name() string { return "nop" }

func (NopSink) Record(context.Context, models.PreferenceRecord) error { return nil }

// MultiSink fans a record out to every sink in order. One failing sink does
// not stop the others; their errors are joined.
type MultiSink struct {
	sinks []Sink
}

func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) Name() string { return "multi" }

func (m *MultiSink) Len() int { return len(m.sinks) }

func (m *MultiSink) Record(ctx context.Context, rec models.PreferenceRecord) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Record(ctx, rec); err != nil {
			metrics.AnalyticsEmissions.WithLabelValues(s.Name(), "failed").Inc()
			errs = append(errs, errors.NewAnalyticsPersistenceFailedError(s.Name(), err))
			continue
		}
		metrics.AnalyticsEmissions.WithLabelValues(s.Name(), "succeeded").Inc()
	}
	return stderrors.Join(errs...)
}
