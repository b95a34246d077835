// internal/workers/tour/filter-tour-packages/models.go
package filtertourpackages

import (
	"tour-workers/internal/constraint"
	"tour-workers/internal/models"
)

type Input struct {
	Filter constraint.RawFilter `json:"filter"`
}

// Output is the full browse view; paging is left to the caller.
type Output struct {
	Packages      []models.Package  `json:"packages"`
	TotalCount    int               `json:"totalCount"`
	AppliedFilter models.FilterSpec `json:"appliedFilter"`
}
