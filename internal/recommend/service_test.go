package recommend

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"tour-workers/internal/catalog"
	"tour-workers/internal/common/errors"
	"tour-workers/internal/common/logger"
	"tour-workers/internal/constraint"
	"tour-workers/internal/models"
	"tour-workers/internal/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }
func n(v int) *int { return &v }

func testCatalog() catalog.Store {
	return catalog.NewMemoryStore(
		models.Package{ID: "cultural", Name: "Kyoto Temples", Price: f(899), Duration: "7 Days / 6 Nights",
			Category: models.CategoryCultural, Rating: f(4.9), ReviewCount: n(124)},
		models.Package{ID: "beach", Name: "Bali Escape", Price: f(699), Duration: "5 Days",
			Category: models.CategoryBeach, Rating: f(4.8), ReviewCount: n(89)},
	)
}

var fixedNow = time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, store catalog.Store, sink *chanSink) *Service {
	return NewService(store, scoring.NewHeuristicRanker(), sink, logger.NewTestLogger(t),
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string { return "submission-1" }),
		WithAnalyticsTimeout(time.Second),
	)
}

// chanSink delivers records on a channel and can block, fail or panic.
type chanSink struct {
	records chan models.PreferenceRecord
	release chan struct{}
	err     error
	panics  bool

	mu      sync.Mutex
	ctxErrs []error
}

func newChanSink() *chanSink {
	return &chanSink{records: make(chan models.PreferenceRecord, 8)}
}

func (s *chanSink) Name() string { return "chan" }

func (s *chanSink) Record(ctx context.Context, rec models.PreferenceRecord) error {
	if s.release != nil {
		<-s.release
	}
	s.mu.Lock()
	s.ctxErrs = append(s.ctxErrs, ctx.Err())
	s.mu.Unlock()
	if s.panics {
		panic("sink exploded")
	}
	s.records <- rec
	return s.err
}

type failingStore struct{}

func (failingStore) List(context.Context) ([]models.Package, error) {
	return nil, errors.NewCatalogUnavailableError("postgres", stderrors.New("connection refused"))
}

func TestService_Recommend(t *testing.T) {
	sink := newChanSink()
	svc := newTestService(t, testCatalog(), sink)

	recs, err := svc.Recommend(context.Background(), constraint.RawPreferences{
		BudgetMin: 0,
		BudgetMax: "1000",
		Interests: []interface{}{"cultural"},
	})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "cultural", recs[0].Package.ID)
	assert.Equal(t, "beach", recs[1].Package.ID)
	assert.Equal(t, []string{"Matches your interests", "Within your budget", "Highly rated", "Popular choice"}, recs[0].Reasons)
	assert.Greater(t, recs[0].Score, recs[1].Score)

	svc.Wait()
	rec := <-sink.records
	assert.Equal(t, "submission-1", rec.ID)
	assert.Equal(t, 0, rec.BudgetMin)
	assert.Equal(t, 1000, rec.BudgetMax)
	assert.Equal(t, []models.CategoryTag{models.CategoryCultural}, rec.Interests)
	assert.Empty(t, rec.DurationBucket)
	assert.Equal(t, fixedNow, rec.Timestamp)
}

func TestService_RunReportsNormalization(t *testing.T) {
	svc := newTestService(t, testCatalog(), newChanSink())

	res, err := svc.Run(context.Background(), constraint.RawPreferences{
		BudgetMin:      3000,
		BudgetMax:      1000,
		DurationBucket: "2-5",
	})
	require.NoError(t, err)
	svc.Wait()

	assert.Equal(t, models.BudgetRange{Min: 1000, Max: 3000}, res.Constraint.Budget)
	assert.Equal(t, models.DurationAny, res.Constraint.Duration)
	assert.Len(t, res.Adjustments, 2)
	assert.Equal(t, "submission-1", res.SubmissionID)
	assert.Len(t, res.Recommendations, 2, "no interests keeps every package")
}

func TestService_EmptyCatalog(t *testing.T) {
	svc := newTestService(t, catalog.NewMemoryStore(), newChanSink())

	recs, err := svc.Recommend(context.Background(), constraint.RawPreferences{Interests: "beach"})
	require.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
	svc.Wait()
}

func TestService_CatalogFailure(t *testing.T) {
	svc := newTestService(t, failingStore{}, newChanSink())

	_, err := svc.Recommend(context.Background(), constraint.RawPreferences{})
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrCatalogUnavailable))
	svc.Wait()
}

func TestService_AnalyticsDoesNotBlockOrAlterResult(t *testing.T) {
	baseline := newTestService(t, testCatalog(), newChanSink())
	want, err := baseline.Recommend(context.Background(), constraint.RawPreferences{Interests: "beach"})
	require.NoError(t, err)
	baseline.Wait()

	sink := newChanSink()
	sink.release = make(chan struct{})
	sink.err = stderrors.New("sink down")
	svc := newTestService(t, testCatalog(), sink)

	done := make(chan []models.Recommendation, 1)
	go func() {
		recs, err := svc.Recommend(context.Background(), constraint.RawPreferences{Interests: "beach"})
		assert.NoError(t, err)
		done <- recs
	}()

	select {
	case got := <-done:
		assert.Equal(t, want, got)
	case <-time.After(2 * time.Second):
		t.Fatal("recommendation waited on the analytics sink")
	}

	close(sink.release)
	svc.Wait()
	assert.Len(t, sink.records, 1)
}

func TestService_AnalyticsSurvivesRequestCancellation(t *testing.T) {
	sink := newChanSink()
	sink.release = make(chan struct{})
	svc := newTestService(t, testCatalog(), sink)

	ctx, cancel := context.WithCancel(context.Background())
	_, err := svc.Recommend(ctx, constraint.RawPreferences{})
	require.NoError(t, err)
	cancel()

	close(sink.release)
	svc.Wait()

	require.Len(t, sink.records, 1)
	sink.mu.Lock()
	defer sink.mu.Unlock()
	assert.NoError(t, sink.ctxErrs[0])
}

func TestService_AnalyticsPanicIsContained(t *testing.T) {
	sink := newChanSink()
	sink.panics = true
	svc := newTestService(t, testCatalog(), sink)

	recs, err := svc.Recommend(context.Background(), constraint.RawPreferences{})
	require.NoError(t, err)
	assert.Len(t, recs, 2)
	svc.Wait()
}

func TestService_Deterministic(t *testing.T) {
	svc := newTestService(t, testCatalog(), newChanSink())
	raw := constraint.RawPreferences{BudgetMax: 800, DurationBucket: "4-7", Interests: []interface{}{"beach", "wellness"}}

	first, err := svc.Recommend(context.Background(), raw)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := svc.Recommend(context.Background(), raw)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	svc.Wait()
}

func TestNewService_Defaults(t *testing.T) {
	svc := NewService(testCatalog(), nil, nil, logger.NewNoOpLogger())
	assert.IsType(t, &scoring.HeuristicRanker{}, svc.ranker)
	assert.Equal(t, DefaultAnalyticsTimeout, svc.analyticsTimeout)

	recs, err := svc.Recommend(context.Background(), constraint.RawPreferences{})
	require.NoError(t, err)
	assert.Len(t, recs, 2)
	svc.Wait()

	var _ Recommender = svc
}
