// internal/models/filter.go
package models

type SortKey string

const (
	SortCatalog      SortKey = ""
	SortPriceAsc     SortKey = "price-asc"
	SortPriceDesc    SortKey = "price-desc"
	SortDurationAsc  SortKey = "duration-asc"
	SortDurationDesc SortKey = "duration-desc"
	SortRating       SortKey = "rating"
	SortFeatured     SortKey = "featured"
)

var validSortKeys = map[SortKey]bool{
	SortCatalog: true, SortPriceAsc: true, SortPriceDesc: true,
	SortDurationAsc: true, SortDurationDesc: true, SortRating: true, SortFeatured: true,
}

func (k SortKey) IsValid() bool {
	return validSortKeys[k]
}

// FilterSpec is the browse-mode view state. It mirrors the shareable query
// parameters of the catalog page and is passed by value into the filter
// pipeline.
type FilterSpec struct {
	SearchText  string         `json:"searchText,omitempty"`
	Destination string         `json:"destination,omitempty"`
	Category    CategoryTag    `json:"category,omitempty"`
	MinPrice    *float64       `json:"minPrice,omitempty"`
	MaxPrice    *float64       `json:"maxPrice,omitempty"`
	Duration    DurationBucket `json:"durationBucket"`
	Sort        SortKey        `json:"sortBy,omitempty"`
}
