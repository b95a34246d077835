// Package catalog supplies read-only snapshots of the tour package catalog.
package catalog

import (
	"context"
	"encoding/json"
	"sort"

	"tour-workers/internal/common/logger"
	"tour-workers/internal/common/validation"
	"tour-workers/internal/models"
)

// DefaultMaxPackages caps a snapshot when no limit is configured. Ranking and
// filtering are full in-memory scans, so the catalog must stay bounded.
const DefaultMaxPackages = 500

// Store returns the packages available for one request. Implementations
// return a fresh slice the caller may keep; the packages themselves are
// treated as immutable. Origin failures are reported as CATALOG_UNAVAILABLE.
type Store interface {
	List(ctx context.Context) ([]models.Package, error)
}

// finalize orders a snapshot by id, maps unknown category tags to unset and
// applies the size cap.
func finalize(pkgs []models.Package, maxPackages int) []models.Package {
	for i := range pkgs {
		pkgs[i].Category = models.ParseCategory(string(pkgs[i].Category))
	}
	sort.SliceStable(pkgs, func(i, j int) bool {
		return pkgs[i].ID < pkgs[j].ID
	})
	if maxPackages > 0 && len(pkgs) > maxPackages {
		pkgs = pkgs[:maxPackages]
	}
	if pkgs == nil {
		pkgs = []models.Package{}
	}
	return pkgs
}

// decodeDocuments validates each raw package document and decodes the valid
// ones. Invalid documents are logged and skipped.
func decodeDocuments(docs []json.RawMessage, v *validation.Validator, log logger.Logger) []models.Package {
	pkgs := make([]models.Package, 0, len(docs))
	for i, doc := range docs {
		if v != nil {
			if result := v.ValidateDocument(doc); !result.Valid {
				log.Warn("skipping invalid package document", map[string]interface{}{
					"position": i,
					"errors":   result.GetErrorMessages(),
				})
				continue
			}
		}

		var pkg models.Package
		if err := json.Unmarshal(doc, &pkg); err != nil {
			log.Warn("skipping undecodable package document", map[string]interface{}{
				"position": i,
				"error":    err,
			})
			continue
		}
		pkgs = append(pkgs, pkg)
	}
	return pkgs
}

func capOrDefault(maxPackages int) int {
	if maxPackages <= 0 {
		return DefaultMaxPackages
	}
	return maxPackages
}
