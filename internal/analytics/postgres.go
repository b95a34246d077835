package analytics

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"tour-workers/internal/models"

	"github.com/lib/pq"
)

var identifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// PostgresSink inserts one row per record.
type PostgresSink struct {
	db    *sql.DB
	query string
}

// NewPostgresSink checks table is a plain identifier since it is spliced
// into the statement.
func NewPostgresSink(db *sql.DB, table string) (*PostgresSink, error) {
	if !identifierPattern.MatchString(table) {
		return nil, fmt.Errorf("invalid analytics table name %q", table)
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (
			id, budget_min, budget_max, start_date, end_date,
			duration_bucket, interests, submitted_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`, pq.QuoteIdentifier(table))

	return &PostgresSink{db: db, query: query}, nil
}

func (s *PostgresSink) Name() string { return "postgres" }

func (s *PostgresSink) Record(ctx context.Context, rec models.PreferenceRecord) error {
	interests := make([]string, 0, len(rec.Interests))
	for _, tag := range rec.Interests {
		interests = append(interests, string(tag))
	}

	_, err := s.db.ExecContext(ctx, s.query,
		rec.ID,
		rec.BudgetMin,
		rec.BudgetMax,
		nullString(rec.StartDate),
		nullString(rec.EndDate),
		nullString(rec.DurationBucket),
		pq.Array(interests),
		rec.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert preference record: %w", err)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
