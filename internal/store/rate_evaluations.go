package store

import (
	"context"
	"fmt"
	"time"
)

// UpsertRateEvaluation records the weekly weight-change rate computed for a date
func (db *DB) UpsertRateEvaluation(ctx context.Context, r *RateEvaluation) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO rate_evaluations (athlete_id, date, rate_pct, computed_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(athlete_id, date) DO UPDATE SET
			rate_pct = excluded.rate_pct,
			computed_at = CURRENT_TIMESTAMP
	`, r.AthleteID, r.Date.Format(DateLayout), r.RatePct)
	return err
}

// RecentRateEvaluations returns up to limit evaluations dated on or before ref,
// oldest first
func (db *DB) RecentRateEvaluations(ctx context.Context, athleteID string, ref time.Time, limit int) ([]RateEvaluation, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT athlete_id, date, rate_pct FROM (
			SELECT athlete_id, date, rate_pct
			FROM rate_evaluations
			WHERE athlete_id = ? AND date <= ?
			ORDER BY date DESC
			LIMIT ?
		) ORDER BY date ASC
	`, athleteID, ref.Format(DateLayout), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RateEvaluation
	for rows.Next() {
		var r RateEvaluation
		var date string
		if err := rows.Scan(&r.AthleteID, &date, &r.RatePct); err != nil {
			return nil, err
		}
		if r.Date, err = time.Parse(DateLayout, date); err != nil {
			return nil, fmt.Errorf("parsing evaluation date: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
