// Package constraint turns raw preference and browse-filter input into the
// immutable value objects the filter and scoring packages consume. It never
// rejects input: malformed values are replaced with safe defaults and each
// replacement is reported as an Adjustment.
package constraint

// RawPreferences is the preference form as submitted. Fields are left untyped
// because intake sends numbers, numeric strings or nothing at all.
type RawPreferences struct {
	StartDate      interface{} `json:"startDate,omitempty"`
	EndDate        interface{} `json:"endDate,omitempty"`
	BudgetMin      interface{} `json:"budgetMin,omitempty"`
	BudgetMax      interface{} `json:"budgetMax,omitempty"`
	DurationBucket interface{} `json:"durationBucket,omitempty"`
	Interests      interface{} `json:"interests,omitempty"`
}

// RawFilter mirrors the browse page query parameters.
type RawFilter struct {
	SearchText     interface{} `json:"searchText,omitempty"`
	Destination    interface{} `json:"destination,omitempty"`
	Category       interface{} `json:"category,omitempty"`
	MinPrice       interface{} `json:"minPrice,omitempty"`
	MaxPrice       interface{} `json:"maxPrice,omitempty"`
	DurationBucket interface{} `json:"durationBucket,omitempty"`
	SortBy         interface{} `json:"sortBy,omitempty"`
}

// Adjustment records one input value that was replaced during normalization.
type Adjustment struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}
