// internal/models/constraint.go
package models

import (
	"math"
	"time"
)

const (
	BudgetFloor   = 0
	BudgetCeiling = 5000
)

type DurationBucket string

const (
	DurationAny      DurationBucket = "any"
	DurationShort    DurationBucket = "1-3"
	DurationWeek     DurationBucket = "4-7"
	DurationTwoWeeks DurationBucket = "8-14"
	DurationLong     DurationBucket = "15+"
)

var bucketRanges = map[DurationBucket][2]int{
	DurationShort:    {1, 3},
	DurationWeek:     {4, 7},
	DurationTwoWeeks: {8, 14},
	DurationLong:     {15, math.MaxInt},
}

// IsValid reports whether b is one of the fixed enum values.
func (b DurationBucket) IsValid() bool {
	if b == DurationAny {
		return true
	}
	_, ok := bucketRanges[b]
	return ok
}

// IsActive reports whether the bucket constrains duration at all.
func (b DurationBucket) IsActive() bool {
	_, ok := bucketRanges[b]
	return ok
}

// DayRange returns the inclusive day bounds. ok is false for "any" and
// unknown buckets.
func (b DurationBucket) DayRange() (lo, hi int, ok bool) {
	r, ok := bucketRanges[b]
	return r[0], r[1], ok
}

func (b DurationBucket) Contains(days int) bool {
	lo, hi, ok := b.DayRange()
	return ok && days >= lo && days <= hi
}

type DateRange struct {
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

type BudgetRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether price lies in [Min, Max].
func (b BudgetRange) Contains(price float64) bool {
	return price >= float64(b.Min) && price <= float64(b.Max)
}

// Constraint is the normalized form of a user's trip preferences. Values are
// built once per request by the constraint package and never mutated; the
// Interests slice is owned by the Constraint.
type Constraint struct {
	Dates     DateRange      `json:"dateRange"`
	Budget    BudgetRange    `json:"budget"`
	Duration  DurationBucket `json:"durationBucket"`
	Interests []CategoryTag  `json:"interests"`
}

func (c Constraint) HasInterest(tag CategoryTag) bool {
	if tag == CategoryUnset {
		return false
	}
	for _, t := range c.Interests {
		if t == tag {
			return true
		}
	}
	return false
}
