package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDurationDays(t *testing.T) {
	tests := []struct {
		text     string
		expected int
	}{
		{"7 Days / 6 Nights", 7},
		{"10 days", 10},
		{"Two weeks (14 days)", 14},
		{"  3D2N", 3},
		{"Flexible", 0},
		{"", 0},
		{"99999999999999999999 days", 0},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseDurationDays(tt.text))
		})
	}
}

func TestDurationBucket_Contains(t *testing.T) {
	days := ParseDurationDays("7 Days / 6 Nights")

	assert.True(t, DurationWeek.Contains(days))
	assert.False(t, DurationTwoWeeks.Contains(days))
	assert.False(t, DurationShort.Contains(days))
	assert.False(t, DurationAny.Contains(days))

	assert.True(t, DurationLong.Contains(15))
	assert.True(t, DurationLong.Contains(120))
	assert.False(t, DurationLong.Contains(0))
	assert.False(t, DurationShort.Contains(0))
}

func TestDurationBucket_Validity(t *testing.T) {
	assert.True(t, DurationAny.IsValid())
	assert.False(t, DurationAny.IsActive())
	assert.True(t, DurationLong.IsValid())
	assert.True(t, DurationLong.IsActive())
	assert.False(t, DurationBucket("2-5").IsValid())
	assert.False(t, DurationBucket("").IsValid())
}

func TestBudgetRange_Contains(t *testing.T) {
	b := BudgetRange{Min: 500, Max: 1000}
	assert.True(t, b.Contains(500))
	assert.True(t, b.Contains(1000))
	assert.False(t, b.Contains(499.99))
	assert.False(t, b.Contains(1000.01))
}

func TestConstraint_HasInterest(t *testing.T) {
	c := Constraint{Interests: []CategoryTag{CategoryBeach, CategoryWellness}}
	assert.True(t, c.HasInterest(CategoryBeach))
	assert.False(t, c.HasInterest(CategoryCultural))
	assert.False(t, c.HasInterest(CategoryUnset))
}

func TestNewPreferenceRecord(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.FixedZone("X", 3600))

	t.Run("full constraint", func(t *testing.T) {
		c := Constraint{
			Dates:     DateRange{Start: &start},
			Budget:    BudgetRange{Min: 100, Max: 900},
			Duration:  DurationWeek,
			Interests: []CategoryTag{CategoryBeach},
		}
		rec := NewPreferenceRecord("rec-1", c, ts)

		assert.Equal(t, "rec-1", rec.ID)
		assert.Equal(t, 100, rec.BudgetMin)
		assert.Equal(t, 900, rec.BudgetMax)
		assert.Equal(t, "2026-03-01", rec.StartDate)
		assert.Empty(t, rec.EndDate)
		assert.Equal(t, "4-7", rec.DurationBucket)
		assert.Equal(t, []CategoryTag{CategoryBeach}, rec.Interests)
		assert.Equal(t, time.UTC, rec.Timestamp.Location())
	})

	t.Run("optional fields omitted", func(t *testing.T) {
		c := Constraint{Budget: BudgetRange{Min: 0, Max: 5000}, Duration: DurationAny}
		rec := NewPreferenceRecord("rec-2", c, ts)

		assert.Empty(t, rec.DurationBucket)
		assert.Nil(t, rec.Interests)
		assert.Empty(t, rec.StartDate)
	})
}

func TestParseCategory(t *testing.T) {
	assert.Equal(t, CategoryBeach, ParseCategory(" Beach "))
	assert.Equal(t, CategoryWellness, ParseCategory("wellness"))
	assert.Equal(t, CategoryUnset, ParseCategory("safari"))
	assert.Equal(t, CategoryUnset, ParseCategory(""))
}
