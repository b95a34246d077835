// internal/models/recommendation.go
package models

import "time"

// ScoredCandidate pairs a package with its match score and the reasons that
// produced it. Rank is the position in the ranked slice.
type ScoredCandidate struct {
	Package Package
	Score   int
	Reasons []string
}

type Recommendation struct {
	Package Package  `json:"package"`
	Reasons []string `json:"reasons"`
	Score   int      `json:"score"`
}

// PreferenceRecord is the analytics snapshot of a submitted preference form.
type PreferenceRecord struct {
	ID             string        `json:"id"`
	BudgetMin      int           `json:"budgetMin"`
	BudgetMax      int           `json:"budgetMax"`
	StartDate      string        `json:"startDate,omitempty"`
	EndDate        string        `json:"endDate,omitempty"`
	DurationBucket string        `json:"durationBucket,omitempty"`
	Interests      []CategoryTag `json:"interests,omitempty"`
	Timestamp      time.Time     `json:"timestamp"`
}

const DateLayout = "2006-01-02"

// NewPreferenceRecord snapshots c. Unset dates, an "any" duration and empty
// interests are left out.
func NewPreferenceRecord(id string, c Constraint, ts time.Time) PreferenceRecord {
	rec := PreferenceRecord{
		ID:        id,
		BudgetMin: c.Budget.Min,
		BudgetMax: c.Budget.Max,
		Timestamp: ts.UTC(),
	}
	if c.Dates.Start != nil {
		rec.StartDate = c.Dates.Start.Format(DateLayout)
	}
	if c.Dates.End != nil {
		rec.EndDate = c.Dates.End.Format(DateLayout)
	}
	if c.Duration.IsActive() {
		rec.DurationBucket = string(c.Duration)
	}
	if len(c.Interests) > 0 {
		rec.Interests = append([]CategoryTag(nil), c.Interests...)
	}
	return rec
}
