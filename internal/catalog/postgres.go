package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"tour-workers/internal/common/errors"
	"tour-workers/internal/common/logger"
	"tour-workers/internal/common/metrics"
	"tour-workers/internal/models"
)

const sourcePostgres = "postgres"

const listPackagesQuery = `
		SELECT id, slug, name, short_description, price, duration, category,
		       rating, review_count, destinations, highlights, is_featured, group_size_max
		FROM tour_packages
		WHERE is_active = TRUE
		ORDER BY id
		LIMIT $1`

// PostgresStore reads active packages from the tour_packages table.
// destinations and highlights are JSON arrays.
type PostgresStore struct {
	db          *sql.DB
	maxPackages int
	logger      logger.Logger
}

func NewPostgresStore(db *sql.DB, maxPackages int, log logger.Logger) *PostgresStore {
	return &PostgresStore{
		db:          db,
		maxPackages: capOrDefault(maxPackages),
		logger:      log.WithFields(map[string]interface{}{"catalogSource": sourcePostgres}),
	}
}

func (s *PostgresStore) List(ctx context.Context) ([]models.Package, error) {
	start := time.Now()
	defer func() {
		metrics.CatalogLoadDuration.WithLabelValues(sourcePostgres).Observe(time.Since(start).Seconds())
	}()

	rows, err := s.db.QueryContext(ctx, listPackagesQuery, s.maxPackages)
	if err != nil {
		return nil, errors.NewCatalogUnavailableError(sourcePostgres,
			errors.NewQueryExecutionFailedError("list tour_packages", err))
	}
	defer rows.Close()

	var pkgs []models.Package
	for rows.Next() {
		var (
			pkg                       models.Package
			slug, description, tag    sql.NullString
			price, rating             sql.NullFloat64
			reviewCount, groupSizeMax sql.NullInt64
			destinations, highlights  []byte
		)
		if err := rows.Scan(
			&pkg.ID, &slug, &pkg.Name, &description, &price, &pkg.Duration, &tag,
			&rating, &reviewCount, &destinations, &highlights, &pkg.Featured, &groupSizeMax,
		); err != nil {
			return nil, errors.NewCatalogDecodeFailedError(sourcePostgres, err)
		}

		pkg.Slug = slug.String
		pkg.ShortDescription = description.String
		pkg.Category = models.CategoryTag(tag.String)
		if price.Valid {
			p := price.Float64
			pkg.Price = &p
		}
		if rating.Valid {
			r := rating.Float64
			pkg.Rating = &r
		}
		if reviewCount.Valid {
			n := int(reviewCount.Int64)
			pkg.ReviewCount = &n
		}
		pkg.GroupSizeMax = int(groupSizeMax.Int64)
		pkg.Destinations = s.decodeList(pkg.ID, "destinations", destinations)
		pkg.Highlights = s.decodeList(pkg.ID, "highlights", highlights)

		pkgs = append(pkgs, pkg)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewCatalogUnavailableError(sourcePostgres, err)
	}

	return finalize(pkgs, s.maxPackages), nil
}

// decodeList tolerates NULL and malformed JSON columns as empty lists.
func (s *PostgresStore) decodeList(id, column string, raw []byte) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		s.logger.Warn("malformed json column", map[string]interface{}{
			"packageId": id,
			"column":    column,
			"error":     err,
		})
		return []string{}
	}
	if out == nil {
		out = []string{}
	}
	return out
}
