// internal/workers/tour/normalize-trip-preferences/models.go
package normalizetrippreferences

import (
	"tour-workers/internal/constraint"
	"tour-workers/internal/models"
)

type Input struct {
	Preferences constraint.RawPreferences `json:"preferences"`
}

type Output struct {
	Constraint  models.Constraint       `json:"constraint"`
	Adjustments []constraint.Adjustment `json:"adjustments"`
}
