// Package filter implements the browse-mode catalog view: independent AND
// predicates over a package list followed by a stable sort.
package filter

import (
	"sort"
	"strings"

	"tour-workers/internal/common/metrics"
	"tour-workers/internal/models"
)

// Predicate reports whether a package stays in the view.
type Predicate func(p models.Package) bool

// Apply returns the packages matching every active predicate of spec, sorted
// by spec.Sort. The input slice is left untouched and a nil input yields an
// empty slice.
func Apply(packages []models.Package, spec models.FilterSpec) []models.Package {
	predicates := Predicates(spec)

	out := make([]models.Package, 0, len(packages))
	for _, p := range packages {
		if matchesAll(p, predicates) {
			out = append(out, p)
		}
	}

	Sort(out, spec.Sort)
	metrics.FilterResultSize.Observe(float64(len(out)))
	return out
}

// Predicates builds the active predicates for spec. Unset fields contribute
// nothing.
func Predicates(spec models.FilterSpec) []Predicate {
	var preds []Predicate
	if text := strings.TrimSpace(spec.SearchText); text != "" {
		preds = append(preds, MatchText(text))
	}
	if dest := strings.TrimSpace(spec.Destination); dest != "" && !strings.EqualFold(dest, "all") {
		preds = append(preds, MatchDestination(dest))
	}
	if spec.Category != models.CategoryUnset && spec.Category != "all" {
		preds = append(preds, MatchCategory(spec.Category))
	}
	if spec.MinPrice != nil || spec.MaxPrice != nil {
		preds = append(preds, MatchPrice(spec.MinPrice, spec.MaxPrice))
	}
	if spec.Duration.IsActive() {
		preds = append(preds, MatchDuration(spec.Duration))
	}
	return preds
}

func matchesAll(p models.Package, preds []Predicate) bool {
	for _, pred := range preds {
		if !pred(p) {
			return false
		}
	}
	return true
}

// MatchText is a case-insensitive substring match on the name, the short
// description and every destination.
func MatchText(text string) Predicate {
	needle := strings.ToLower(text)
	return func(p models.Package) bool {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.ShortDescription), needle) {
			return true
		}
		for _, d := range p.Destinations {
			if strings.Contains(strings.ToLower(d), needle) {
				return true
			}
		}
		return false
	}
}

func MatchDestination(dest string) Predicate {
	return func(p models.Package) bool {
		for _, d := range p.Destinations {
			if strings.EqualFold(strings.TrimSpace(d), dest) {
				return true
			}
		}
		return false
	}
}

func MatchCategory(tag models.CategoryTag) Predicate {
	return func(p models.Package) bool {
		return p.Category == tag
	}
}

// MatchPrice applies inclusive bounds; nil bounds are open. A missing price
// counts as 0.
func MatchPrice(min, max *float64) Predicate {
	return func(p models.Package) bool {
		price := p.PriceOrZero()
		if min != nil && price < *min {
			return false
		}
		if max != nil && price > *max {
			return false
		}
		return true
	}
}

// MatchDuration excludes packages whose duration text has no day count.
func MatchDuration(bucket models.DurationBucket) Predicate {
	return func(p models.Package) bool {
		return bucket.Contains(p.DurationDays())
	}
}

// Sort orders packages in place by key. Equal elements keep their relative
// order and an unknown key leaves the slice as is.
func Sort(packages []models.Package, key models.SortKey) {
	var less func(a, b models.Package) bool
	switch key {
	case models.SortPriceAsc:
		less = func(a, b models.Package) bool { return a.PriceOrZero() < b.PriceOrZero() }
	case models.SortPriceDesc:
		less = func(a, b models.Package) bool { return a.PriceOrZero() > b.PriceOrZero() }
	case models.SortDurationAsc:
		less = func(a, b models.Package) bool { return a.DurationDays() < b.DurationDays() }
	case models.SortDurationDesc:
		less = func(a, b models.Package) bool { return a.DurationDays() > b.DurationDays() }
	case models.SortRating:
		less = func(a, b models.Package) bool { return a.RatingOrZero() > b.RatingOrZero() }
	case models.SortFeatured:
		less = func(a, b models.Package) bool { return a.Featured && !b.Featured }
	default:
		return
	}

	sort.SliceStable(packages, func(i, j int) bool {
		return less(packages[i], packages[j])
	})
}
