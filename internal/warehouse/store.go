// Package warehouse reads pre-aggregated discount usage facts from the
// analytics store. Rows are appended by the ingestion collaborator
// (at-least-once delivery), so every aggregation runs over a deduplicated
// view of the natural key (discount_id, order_id, product_id, timestamp).
package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	"discount-dashboard/internal/analytics"
)

var identPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_.]*$`)

// Store issues aggregation queries against the usage table.
type Store struct {
	db    *sql.DB
	table string
	loc   *time.Location
}

// NewStore validates the table identifier (it is interpolated into SQL) and
// returns a Store reading usage facts in the given analytics timezone.
func NewStore(db *sql.DB, table string, loc *time.Location) (*Store, error) {
	if !identPattern.MatchString(table) {
		return nil, fmt.Errorf("invalid usage table name %q", table)
	}
	return &Store{db: db, table: table, loc: loc}, nil
}

// dedup is the read-time answer to non-idempotent ingestion retries:
// identical redelivered rows collapse before any SUM or COUNT runs.
func (s *Store) dedup(filter string) string {
	return fmt.Sprintf(`SELECT DISTINCT discount_id, order_id, product_id, timestamp, discount_amount
FROM %s%s`, s.table, filter)
}

func (s *Store) timeFilter(r analytics.Range, now time.Time) (string, []any) {
	start, ok := analytics.WindowStart(now, r, s.loc)
	if !ok {
		return "", nil
	}
	return "\nWHERE timestamp >= $1", []any{start}
}

// UsageTotals returns one row per discount with total spend (currency units)
// and distinct-order count inside the window.
func (s *Store) UsageTotals(ctx context.Context, r analytics.Range, now time.Time) ([]analytics.UsageRow, error) {
	filter, args := s.timeFilter(r, now)
	query := fmt.Sprintf(`SELECT discount_id, SUM(discount_amount) AS total_spent, COUNT(DISTINCT order_id) AS order_count
FROM (%s) AS usage_facts
GROUP BY discount_id`, s.dedup(filter))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query usage totals: %w", err)
	}
	defer rows.Close()

	var out []analytics.UsageRow
	for rows.Next() {
		var row analytics.UsageRow
		if err := rows.Scan(&row.DiscountID, &row.TotalSpent, &row.OrderCount); err != nil {
			return nil, fmt.Errorf("scan usage row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read usage rows: %w", err)
	}
	return out, nil
}

// DistinctOrderCount returns the number of distinct orders that used any
// discount inside the window.
func (s *Store) DistinctOrderCount(ctx context.Context, r analytics.Range, now time.Time) (int, error) {
	filter, args := s.timeFilter(r, now)
	query := fmt.Sprintf(`SELECT COUNT(DISTINCT order_id) FROM %s%s`, s.table, filter)

	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("query distinct order count: %w", err)
	}
	return count, nil
}
