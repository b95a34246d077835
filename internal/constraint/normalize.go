package constraint

import (
	"fmt"
	"math"
	"strings"
	"time"

	"tour-workers/internal/models"
)

// Normalize builds a valid Constraint from raw preferences:
//   - budget bounds default to [0, 5000], are clamped into that range and
//     swapped when min exceeds max; fractional bounds widen to whole units
//   - an unknown duration bucket becomes "any"
//   - interests are lower-cased, filtered to the vocabulary and de-duplicated
//     in first-seen order
//   - unparseable dates are dropped
func Normalize(raw RawPreferences) (models.Constraint, []Adjustment) {
	var adj []Adjustment
	c := models.Constraint{}

	c.Budget.Min = normalizeBudgetBound("budgetMin", raw.BudgetMin, models.BudgetFloor, math.Floor, &adj)
	c.Budget.Max = normalizeBudgetBound("budgetMax", raw.BudgetMax, models.BudgetCeiling, math.Ceil, &adj)
	if c.Budget.Min > c.Budget.Max {
		c.Budget.Min, c.Budget.Max = c.Budget.Max, c.Budget.Min
		adj = append(adj, Adjustment{Field: "budget", Reason: "min exceeded max, bounds swapped"})
	}

	bucket, ok := parseBucket(raw.DurationBucket)
	if !ok {
		adj = append(adj, Adjustment{Field: "durationBucket", Reason: fmt.Sprintf("unknown bucket %v, using any", raw.DurationBucket)})
	}
	c.Duration = bucket

	c.Interests = normalizeInterests(raw.Interests, &adj)

	c.Dates.Start = normalizeDate("startDate", raw.StartDate, &adj)
	c.Dates.End = normalizeDate("endDate", raw.EndDate, &adj)
	if c.Dates.Start != nil && c.Dates.End != nil && c.Dates.End.Before(*c.Dates.Start) {
		adj = append(adj, Adjustment{Field: "dateRange", Reason: "end date precedes start date, kept as given"})
	}

	return c, adj
}

// normalizeBudgetBound rounds fractional amounts outward so the range never
// excludes a price the caller asked for.
func normalizeBudgetBound(field string, raw interface{}, fallback int, round func(float64) float64, adj *[]Adjustment) int {
	v, present, err := parseAmount(raw)
	if !present {
		return fallback
	}
	if err != nil {
		*adj = append(*adj, Adjustment{Field: field, Reason: fmt.Sprintf("%v, using %d", err, fallback)})
		return fallback
	}

	switch {
	case v < models.BudgetFloor:
		*adj = append(*adj, Adjustment{Field: field, Reason: fmt.Sprintf("%v below %d, clamped", v, models.BudgetFloor)})
		return models.BudgetFloor
	case v > models.BudgetCeiling:
		*adj = append(*adj, Adjustment{Field: field, Reason: fmt.Sprintf("%v above %d, clamped", v, models.BudgetCeiling)})
		return models.BudgetCeiling
	}
	n := int(round(v))
	if v != math.Trunc(v) {
		*adj = append(*adj, Adjustment{Field: field, Reason: fmt.Sprintf("%v rounded to %d", v, n)})
	}
	return n
}

func normalizeInterests(raw interface{}, adj *[]Adjustment) []models.CategoryTag {
	out := make([]models.CategoryTag, 0, len(models.Categories))
	seen := make(map[models.CategoryTag]bool)

	tokens, skipped := splitTokens(raw)
	if raw != nil && tokens == nil {
		*adj = append(*adj, Adjustment{Field: "interests", Reason: fmt.Sprintf("unsupported type %T ignored", raw)})
	}
	for _, item := range skipped {
		*adj = append(*adj, Adjustment{Field: "interests", Reason: fmt.Sprintf("non-text interest %v (%T) dropped", item, item)})
	}
	for _, token := range tokens {
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" {
			continue
		}
		tag := models.ParseCategory(token)
		if tag == models.CategoryUnset {
			*adj = append(*adj, Adjustment{Field: "interests", Reason: fmt.Sprintf("unknown interest %q dropped", token)})
			continue
		}
		if seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

func normalizeDate(field string, raw interface{}, adj *[]Adjustment) *time.Time {
	d, present, err := parseDate(raw)
	if present && err != nil {
		*adj = append(*adj, Adjustment{Field: field, Reason: fmt.Sprintf("%v, treated as unset", err)})
	}
	return d
}
