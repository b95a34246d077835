package filtertourpackages

import (
	"context"
	stderrors "errors"
	"testing"

	"tour-workers/internal/catalog"
	"tour-workers/internal/common/config"
	"tour-workers/internal/common/errors"
	"tour-workers/internal/common/logger"
	"tour-workers/internal/constraint"
	"tour-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func testStore() catalog.Store {
	return catalog.NewMemoryStore(
		models.Package{ID: "pkg-1", Name: "Kyoto Temples", Price: f(899), Duration: "7 Days / 6 Nights",
			Category: models.CategoryCultural, Rating: f(4.9), Destinations: []string{"Kyoto"}},
		models.Package{ID: "pkg-2", Name: "Bali Escape", Price: f(699), Duration: "5 Days",
			Category: models.CategoryBeach, Rating: f(4.8), Destinations: []string{"Bali"}, Featured: true},
		models.Package{ID: "pkg-3", Name: "Kenya Safari", Price: f(3200), Duration: "10 Days",
			Category: models.CategoryWildlife, Rating: f(4.7), Destinations: []string{"Nairobi", "Maasai Mara"}},
		models.Package{ID: "pkg-4", Name: "Custom Journey", Duration: "On request"},
	)
}

type failingStore struct{}

func (failingStore) List(context.Context) ([]models.Package, error) {
	return nil, errors.NewCatalogUnavailableError("elasticsearch", stderrors.New("no living connections"))
}

func createTestHandler(t *testing.T, store catalog.Store) *Handler {
	return NewHandler(LoadConfig(config.WorkerConfig{Timeout: 5000}), store, logger.NewTestLogger(t))
}

func packageIDs(pkgs []models.Package) []string {
	out := make([]string, 0, len(pkgs))
	for _, p := range pkgs {
		out = append(out, p.ID)
	}
	return out
}

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name     string
		filter   constraint.RawFilter
		expected []string
	}{
		{"no filters returns catalog order", constraint.RawFilter{}, []string{"pkg-1", "pkg-2", "pkg-3", "pkg-4"}},
		{"search text", constraint.RawFilter{SearchText: "mara"}, []string{"pkg-3"}},
		{"destination all", constraint.RawFilter{Destination: "all", SortBy: "price-asc"}, []string{"pkg-4", "pkg-2", "pkg-1", "pkg-3"}},
		{"price range from strings", constraint.RawFilter{MinPrice: "600", MaxPrice: "$900"}, []string{"pkg-1", "pkg-2"}},
		{"duration excludes unparseable", constraint.RawFilter{DurationBucket: "8-14"}, []string{"pkg-3"}},
		{"category and featured sort", constraint.RawFilter{Category: "beach", SortBy: "featured"}, []string{"pkg-2"}},
		{"bad values fall back", constraint.RawFilter{Category: "cruise", MinPrice: -1.0, SortBy: "cheapest"}, []string{"pkg-1", "pkg-2", "pkg-3", "pkg-4"}},
	}

	handler := createTestHandler(t, testStore())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := handler.Execute(context.Background(), &Input{Filter: tt.filter})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, packageIDs(out.Packages))
			assert.Equal(t, len(tt.expected), out.TotalCount)
		})
	}
}

func TestHandler_Execute_AppliedFilter(t *testing.T) {
	out, err := createTestHandler(t, testStore()).Execute(context.Background(), &Input{
		Filter: constraint.RawFilter{MinPrice: 2000.0, MaxPrice: 500.0, SortBy: "rating"},
	})
	require.NoError(t, err)

	require.NotNil(t, out.AppliedFilter.MinPrice)
	assert.Equal(t, 500.0, *out.AppliedFilter.MinPrice)
	assert.Equal(t, 2000.0, *out.AppliedFilter.MaxPrice)
	assert.Equal(t, models.SortRating, out.AppliedFilter.Sort)
	assert.Equal(t, []string{"pkg-1", "pkg-2"}, packageIDs(out.Packages))
}

func TestHandler_Execute_EmptyResult(t *testing.T) {
	out, err := createTestHandler(t, testStore()).Execute(context.Background(), &Input{
		Filter: constraint.RawFilter{SearchText: "antarctica"},
	})
	require.NoError(t, err)
	assert.NotNil(t, out.Packages)
	assert.Empty(t, out.Packages)
	assert.Equal(t, 0, out.TotalCount)
}

func TestHandler_Execute_CatalogUnavailable(t *testing.T) {
	_, err := createTestHandler(t, failingStore{}).Execute(context.Background(), &Input{})
	require.Error(t, err)

	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeCatalogUnavailable, stdErr.Code)
	assert.Equal(t, "CATALOG_UNAVAILABLE", errors.ConvertToBPMNError(stdErr).Code)
}
