// Package scoring ranks catalog packages against a normalized constraint.
package scoring

import (
	"sort"

	"tour-workers/internal/models"
)

// MaxRecommendations caps the ranked result.
const MaxRecommendations = 6

// Signal weights.
const (
	WeightInterest     = 30
	WeightWithinBudget = 25
	WeightUnderBudget  = 15
	WeightDuration     = 20
	WeightRating       = 15
	WeightPopularity   = 10

	HighRatingThreshold = 4.5
	PopularReviewCount  = 50
)

// Reason tags, listed in evaluation order.
const (
	ReasonInterest     = "Matches your interests"
	ReasonWithinBudget = "Within your budget"
	ReasonUnderBudget  = "Under budget"
	ReasonDuration     = "Perfect duration"
	ReasonRating       = "Highly rated"
	ReasonPopular      = "Popular choice"
	ReasonDefault      = "Great destination"
)

// Ranker turns a catalog snapshot and a constraint into an ordered candidate
// list. Implementations must be pure: identical inputs give identical output.
type Ranker interface {
	Rank(packages []models.Package, c models.Constraint) []models.ScoredCandidate
}

// HeuristicRanker scores with fixed integer weights.
type HeuristicRanker struct {
	Limit int
}

func NewHeuristicRanker() *HeuristicRanker {
	return &HeuristicRanker{Limit: MaxRecommendations}
}

// Rank scores every package, keeps those with a positive score (or all of
// them when c has no interests), orders by score descending with catalog
// order breaking ties and truncates to the limit.
func (r *HeuristicRanker) Rank(packages []models.Package, c models.Constraint) []models.ScoredCandidate {
	candidates := make([]models.ScoredCandidate, 0, len(packages))
	for _, p := range packages {
		score, reasons := Score(p, c)
		if !Included(score, c) {
			continue
		}
		if len(reasons) == 0 {
			reasons = []string{ReasonDefault}
		}
		candidates = append(candidates, models.ScoredCandidate{Package: p, Score: score, Reasons: reasons})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	limit := r.Limit
	if limit <= 0 {
		limit = MaxRecommendations
	}
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

// Included applies the inclusion rule: a positive score, or no interests
// expressed at all.
func Included(score int, c models.Constraint) bool {
	return score > 0 || len(c.Interests) == 0
}

// Score evaluates one package against c. Reasons follow the order of the
// signals; a missing price counts as 0 and missing rating or review count
// contribute nothing.
func Score(p models.Package, c models.Constraint) (int, []string) {
	score := 0
	var reasons []string

	if len(c.Interests) > 0 && c.HasInterest(p.Category) {
		score += WeightInterest
		reasons = append(reasons, ReasonInterest)
	}

	price := p.PriceOrZero()
	switch {
	case c.Budget.Contains(price):
		score += WeightWithinBudget
		reasons = append(reasons, ReasonWithinBudget)
	case price < float64(c.Budget.Min):
		score += WeightUnderBudget
		reasons = append(reasons, ReasonUnderBudget)
	}

	if c.Duration.IsActive() && c.Duration.Contains(p.DurationDays()) {
		score += WeightDuration
		reasons = append(reasons, ReasonDuration)
	}

	if p.Rating != nil && *p.Rating >= HighRatingThreshold {
		score += WeightRating
		reasons = append(reasons, ReasonRating)
	}

	if p.ReviewCount != nil && *p.ReviewCount > PopularReviewCount {
		score += WeightPopularity
		reasons = append(reasons, ReasonPopular)
	}

	return score, reasons
}
