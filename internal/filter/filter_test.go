package filter

import (
	"testing"

	"tour-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

func f(v float64) *float64 { return &v }

func ids(pkgs []models.Package) []string {
	out := make([]string, 0, len(pkgs))
	for _, p := range pkgs {
		out = append(out, p.ID)
	}
	return out
}

func testCatalog() []models.Package {
	return []models.Package{
		{
			ID: "p1", Name: "Kyoto Temple Trail", ShortDescription: "Shrines and tea houses",
			Price: f(899), Duration: "7 Days / 6 Nights", Category: models.CategoryCultural,
			Rating: f(4.9), Destinations: []string{"Kyoto", "Nara"},
		},
		{
			ID: "p2", Name: "Bali Beach Escape", ShortDescription: "Sun and surf",
			Price: f(699), Duration: "5 Days", Category: models.CategoryBeach,
			Rating: f(4.8), Destinations: []string{"Bali"}, Featured: true,
		},
		{
			ID: "p3", Name: "Serengeti Safari", ShortDescription: "Big five game drives",
			Price: nil, Duration: "Flexible", Category: models.CategoryWildlife,
			Destinations: []string{"Tanzania"},
		},
		{
			ID: "p4", Name: "Patagonia Trek", ShortDescription: "Glaciers of the south",
			Price: f(2400), Duration: "16 days", Category: models.CategoryAdventure,
			Rating: f(4.5), Destinations: []string{"El Chalten", "kyoto"}, Featured: true,
		},
	}
}

func TestApply_Predicates(t *testing.T) {
	tests := []struct {
		name     string
		spec     models.FilterSpec
		expected []string
	}{
		{"no filter keeps everything", models.FilterSpec{}, []string{"p1", "p2", "p3", "p4"}},
		{"text on name", models.FilterSpec{SearchText: "SAFARI"}, []string{"p3"}},
		{"text on description", models.FilterSpec{SearchText: "glacier"}, []string{"p4"}},
		{"text on destination", models.FilterSpec{SearchText: "nar"}, []string{"p1"}},
		{"destination is exact and case-insensitive", models.FilterSpec{Destination: "KYOTO"}, []string{"p1", "p4"}},
		{"destination substring does not match", models.FilterSpec{Destination: "Kyo"}, []string{}},
		{"destination all disables predicate", models.FilterSpec{Destination: "all"}, []string{"p1", "p2", "p3", "p4"}},
		{"category", models.FilterSpec{Category: models.CategoryBeach}, []string{"p2"}},
		{"price bounds are inclusive", models.FilterSpec{MinPrice: f(699), MaxPrice: f(899)}, []string{"p1", "p2"}},
		{"null price counts as zero", models.FilterSpec{MaxPrice: f(100)}, []string{"p3"}},
		{"min price only", models.FilterSpec{MinPrice: f(1000)}, []string{"p4"}},
		{"duration bucket", models.FilterSpec{Duration: models.DurationWeek}, []string{"p1", "p2"}},
		{"open-ended bucket", models.FilterSpec{Duration: models.DurationLong}, []string{"p4"}},
		{"any bucket keeps unparseable durations", models.FilterSpec{Duration: models.DurationAny}, []string{"p1", "p2", "p3", "p4"}},
		{
			"predicates combine with AND",
			models.FilterSpec{Destination: "kyoto", MaxPrice: f(1000), Duration: models.DurationWeek},
			[]string{"p1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ids(Apply(testCatalog(), tt.spec)))
		})
	}
}

func TestApply_UnparseableDurationExcludedOnlyWhenFiltering(t *testing.T) {
	for _, bucket := range []models.DurationBucket{models.DurationShort, models.DurationWeek, models.DurationTwoWeeks, models.DurationLong} {
		out := Apply(testCatalog(), models.FilterSpec{Duration: bucket})
		assert.NotContains(t, ids(out), "p3", "bucket %s", bucket)
	}
}

func TestApply_Sort(t *testing.T) {
	tests := []struct {
		key      models.SortKey
		expected []string
	}{
		{models.SortCatalog, []string{"p1", "p2", "p3", "p4"}},
		{models.SortPriceAsc, []string{"p3", "p2", "p1", "p4"}},
		{models.SortPriceDesc, []string{"p4", "p1", "p2", "p3"}},
		{models.SortDurationAsc, []string{"p3", "p2", "p1", "p4"}},
		{models.SortDurationDesc, []string{"p4", "p1", "p2", "p3"}},
		{models.SortRating, []string{"p1", "p2", "p4", "p3"}},
		{models.SortFeatured, []string{"p2", "p4", "p1", "p3"}},
		{models.SortKey("unknown"), []string{"p1", "p2", "p3", "p4"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			assert.Equal(t, tt.expected, ids(Apply(testCatalog(), models.FilterSpec{Sort: tt.key})))
		})
	}
}

func TestSort_IsStable(t *testing.T) {
	pkgs := []models.Package{
		{ID: "a", Price: f(100)},
		{ID: "b", Price: f(50)},
		{ID: "c", Price: f(100)},
		{ID: "d", Price: nil},
		{ID: "e", Price: f(0)},
	}

	Sort(pkgs, models.SortPriceAsc)
	assert.Equal(t, []string{"d", "e", "b", "a", "c"}, ids(pkgs))

	Sort(pkgs, models.SortPriceDesc)
	assert.Equal(t, []string{"a", "c", "b", "d", "e"}, ids(pkgs))
}

func TestApply_DoesNotReorderInput(t *testing.T) {
	catalog := testCatalog()
	_ = Apply(catalog, models.FilterSpec{Sort: models.SortPriceDesc})
	assert.Equal(t, []string{"p1", "p2", "p3", "p4"}, ids(catalog))
}

func TestApply_EmptyInput(t *testing.T) {
	out := Apply(nil, models.FilterSpec{SearchText: "anything"})
	assert.NotNil(t, out)
	assert.Empty(t, out)
}
