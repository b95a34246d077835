// Package recommend composes normalization, the catalog and a Ranker into the
// recommendation use case, and emits the analytics snapshot on the side.
package recommend

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tour-workers/internal/analytics"
	"tour-workers/internal/catalog"
	"tour-workers/internal/common/errors"
	"tour-workers/internal/common/logger"
	"tour-workers/internal/common/metrics"
	"tour-workers/internal/constraint"
	"tour-workers/internal/models"
	"tour-workers/internal/scoring"

	"github.com/google/uuid"
)

const DefaultAnalyticsTimeout = 5 * time.Second

// Recommender is the boundary callers depend on: raw preferences in, ranked
// and justified packages out.
type Recommender interface {
	Recommend(ctx context.Context, raw constraint.RawPreferences) ([]models.Recommendation, error)
}

// Result carries the normalized constraint alongside the recommendations so
// workers can echo what was actually scored.
type Result struct {
	Constraint      models.Constraint
	Adjustments     []constraint.Adjustment
	Recommendations []models.Recommendation
	SubmissionID    string
}

type Service struct {
	store            catalog.Store
	ranker           scoring.Ranker
	sink             analytics.Sink
	logger           logger.Logger
	now              func() time.Time
	newID            func() string
	analyticsTimeout time.Duration

	inflight sync.WaitGroup
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

func WithAnalyticsTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.analyticsTimeout = d
		}
	}
}

// NewService wires the use case. A nil ranker means the heuristic ranker and
// a nil sink disables analytics.
func NewService(store catalog.Store, ranker scoring.Ranker, sink analytics.Sink, log logger.Logger, opts ...Option) *Service {
	if ranker == nil {
		ranker = scoring.NewHeuristicRanker()
	}
	if sink == nil {
		sink = analytics.NopSink{}
	}
	s := &Service{
		store:            store,
		ranker:           ranker,
		sink:             sink,
		logger:           log.WithFields(map[string]interface{}{"component": "recommend"}),
		now:              time.Now,
		newID:            func() string { return uuid.New().String() },
		analyticsTimeout: DefaultAnalyticsTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Recommend(ctx context.Context, raw constraint.RawPreferences) ([]models.Recommendation, error) {
	res, err := s.Run(ctx, raw)
	if err != nil {
		return nil, err
	}
	return res.Recommendations, nil
}

// Run normalizes raw, dispatches the analytics snapshot and ranks the current
// catalog. Only catalog failures are returned.
func (s *Service) Run(ctx context.Context, raw constraint.RawPreferences) (*Result, error) {
	c, adjustments := constraint.Normalize(raw)
	for _, adj := range adjustments {
		s.logger.Warn("preference input normalized", map[string]interface{}{
			"error": errors.NewInvalidConstraintError(adj.Field, adj.Reason),
		})
	}

	rec := models.NewPreferenceRecord(s.newID(), c, s.now())
	s.emit(ctx, rec)

	packages, err := s.store.List(ctx)
	if err != nil {
		metrics.RecommendationRequests.WithLabelValues("catalog_error").Inc()
		return nil, fmt.Errorf("list catalog: %w", err)
	}

	ranked := s.ranker.Rank(packages, c)
	recs := make([]models.Recommendation, 0, len(ranked))
	for _, cand := range ranked {
		recs = append(recs, models.Recommendation{
			Package: cand.Package,
			Reasons: cand.Reasons,
			Score:   cand.Score,
		})
	}

	outcome := "ok"
	if len(recs) == 0 {
		outcome = "empty"
	}
	metrics.RecommendationRequests.WithLabelValues(outcome).Inc()
	metrics.RecommendationCandidates.Observe(float64(len(recs)))

	s.logger.Info("recommendations ranked", map[string]interface{}{
		"submissionId": rec.ID,
		"catalogSize":  len(packages),
		"returned":     len(recs),
	})

	return &Result{
		Constraint:      c,
		Adjustments:     adjustments,
		Recommendations: recs,
		SubmissionID:    rec.ID,
	}, nil
}

// emit records rec in the background. The request context only contributes
// its values; cancellation of the request does not abort the write.
func (s *Service) emit(ctx context.Context, rec models.PreferenceRecord) {
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		defer func() {
			if r := recover(); r != nil {
				metrics.AnalyticsEmissions.WithLabelValues(s.sink.Name(), "panic").Inc()
				s.logger.Error("analytics sink panicked", map[string]interface{}{
					"submissionId": rec.ID,
					"panic":        fmt.Sprint(r),
				})
			}
		}()

		emitCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.analyticsTimeout)
		defer cancel()

		if err := s.sink.Record(emitCtx, rec); err != nil {
			s.logger.Warn("analytics record dropped", map[string]interface{}{
				"submissionId": rec.ID,
				"error":        errors.NewAnalyticsPersistenceFailedError(s.sink.Name(), err),
			})
		}
	}()
}

// Wait blocks until every in-flight analytics emission has finished.
func (s *Service) Wait() {
	s.inflight.Wait()
}
