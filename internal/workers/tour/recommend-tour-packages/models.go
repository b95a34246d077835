// internal/workers/tour/recommend-tour-packages/models.go
package recommendtourpackages

import (
	"tour-workers/internal/constraint"
	"tour-workers/internal/models"
)

type Input struct {
	Preferences constraint.RawPreferences `json:"preferences"`
}

type Output struct {
	Recommendations []models.Recommendation `json:"recommendations"`
	Count           int                     `json:"count"`
	Constraint      models.Constraint       `json:"constraint"`
	SubmissionID    string                  `json:"submissionId"`
}
