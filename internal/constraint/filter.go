package constraint

import (
	"fmt"
	"strings"

	"tour-workers/internal/models"
)

// NormalizeFilter builds a FilterSpec from browse parameters with the same
// soft policy as Normalize. "all" disables the destination and category
// predicates, negative or unparseable prices leave that bound open, and an
// unknown sort key falls back to catalog order.
func NormalizeFilter(raw RawFilter) (models.FilterSpec, []Adjustment) {
	var adj []Adjustment
	spec := models.FilterSpec{
		SearchText: parseText(raw.SearchText),
	}

	if dest := parseText(raw.Destination); !strings.EqualFold(dest, "all") {
		spec.Destination = dest
	}

	if cat := strings.ToLower(parseText(raw.Category)); cat != "" && cat != "all" {
		spec.Category = models.ParseCategory(cat)
		if spec.Category == models.CategoryUnset {
			adj = append(adj, Adjustment{Field: "category", Reason: fmt.Sprintf("unknown category %q ignored", cat)})
		}
	}

	spec.MinPrice = normalizePriceBound("minPrice", raw.MinPrice, &adj)
	spec.MaxPrice = normalizePriceBound("maxPrice", raw.MaxPrice, &adj)
	if spec.MinPrice != nil && spec.MaxPrice != nil && *spec.MinPrice > *spec.MaxPrice {
		spec.MinPrice, spec.MaxPrice = spec.MaxPrice, spec.MinPrice
		adj = append(adj, Adjustment{Field: "price", Reason: "min exceeded max, bounds swapped"})
	}

	bucket, ok := parseBucket(raw.DurationBucket)
	if !ok {
		adj = append(adj, Adjustment{Field: "durationBucket", Reason: fmt.Sprintf("unknown bucket %v, using any", raw.DurationBucket)})
	}
	spec.Duration = bucket

	sortKey := models.SortKey(strings.ToLower(parseText(raw.SortBy)))
	if !sortKey.IsValid() {
		adj = append(adj, Adjustment{Field: "sortBy", Reason: fmt.Sprintf("unknown sort key %q, using catalog order", sortKey)})
		sortKey = models.SortCatalog
	}
	spec.Sort = sortKey

	return spec, adj
}

func normalizePriceBound(field string, raw interface{}, adj *[]Adjustment) *float64 {
	v, present, err := parseAmount(raw)
	if !present {
		return nil
	}
	if err != nil {
		*adj = append(*adj, Adjustment{Field: field, Reason: fmt.Sprintf("%v, bound left open", err)})
		return nil
	}
	if v < 0 {
		*adj = append(*adj, Adjustment{Field: field, Reason: "negative price, bound left open"})
		return nil
	}
	return &v
}
