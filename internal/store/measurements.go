package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrMeasurementNotFound is returned when no measurement exists for a date
var ErrMeasurementNotFound = errors.New("measurement not found")

// valueColumns lists the nullable numeric columns in the order of valuePtrs
var valueColumns = []string{
	"weight", "body_fat_scale", "body_fat_caliper", "body_fat_final", "fat_mass", "fat_free_mass",
	"total_water", "intracellular_water", "extracellular_water", "resistance", "reactance",
	"phase_angle", "water_ratio",
	"sf_chest", "sf_midaxillary", "sf_triceps", "sf_subscapular", "sf_abdomen", "sf_suprailiac",
	"sf_thigh", "sf_biceps",
	"circ_neck", "circ_shoulders", "circ_chest", "circ_waist", "circ_hips", "circ_arm", "circ_thigh",
	"training_load", "hrv", "sleep_score", "recovery_hours", "resting_hr",
}

func (m *Measurement) valuePtrs() []**float64 {
	sf, c := &m.Skinfolds, &m.Circumferences
	return []**float64{
		&m.Weight, &m.BodyFatScale, &m.BodyFatCaliper, &m.BodyFatFinal, &m.FatMass, &m.FatFreeMass,
		&m.TotalWater, &m.IntracellularWater, &m.ExtracellularWater, &m.Resistance, &m.Reactance,
		&m.PhaseAngle, &m.WaterRatio,
		&sf.Chest, &sf.Midaxillary, &sf.Triceps, &sf.Subscapular, &sf.Abdomen, &sf.Suprailiac,
		&sf.Thigh, &sf.Biceps,
		&c.Neck, &c.Shoulders, &c.Chest, &c.Waist, &c.Hips, &c.Arm, &c.Thigh,
		&m.TrainingLoad, &m.HRV, &m.SleepScore, &m.RecoveryHours, &m.RestingHR,
	}
}

var (
	measurementSelect = "athlete_id, date, body_fat_manual, " + strings.Join(valueColumns, ", ")
	measurementUpsert = buildMeasurementUpsert()
)

func buildMeasurementUpsert() string {
	cols := append([]string{"athlete_id", "date", "body_fat_manual"}, valueColumns...)
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")

	updates := make([]string, 0, len(cols)-1)
	for _, c := range cols[2:] {
		updates = append(updates, fmt.Sprintf("%s = excluded.%s", c, c))
	}
	updates = append(updates, "updated_at = CURRENT_TIMESTAMP")

	return fmt.Sprintf(`INSERT INTO measurements (%s) VALUES (%s)
		ON CONFLICT(athlete_id, date) DO UPDATE SET %s`,
		strings.Join(cols, ", "), placeholders, strings.Join(updates, ", "))
}

// UpsertMeasurement inserts a measurement or overwrites the row for the same date
func (db *DB) UpsertMeasurement(ctx context.Context, m *Measurement) error {
	args := []any{m.AthleteID, m.Date.Format(DateLayout), boolToInt(m.BodyFatManual)}
	for _, p := range m.valuePtrs() {
		args = append(args, *p)
	}
	_, err := db.ExecContext(ctx, measurementUpsert, args...)
	return err
}

// GetMeasurement retrieves the measurement for one athlete and date
func (db *DB) GetMeasurement(ctx context.Context, athleteID string, date time.Time) (*Measurement, error) {
	row := db.QueryRowContext(ctx, `
		SELECT `+measurementSelect+`
		FROM measurements
		WHERE athlete_id = ? AND date = ?
	`, athleteID, date.Format(DateLayout))

	m, err := scanMeasurement(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMeasurementNotFound
	}
	return m, err
}

// ListMeasurements returns measurements with from <= date <= to in ascending date order
func (db *DB) ListMeasurements(ctx context.Context, athleteID string, from, to time.Time) ([]Measurement, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+measurementSelect+`
		FROM measurements
		WHERE athlete_id = ? AND date >= ? AND date <= ?
		ORDER BY date ASC
	`, athleteID, from.Format(DateLayout), to.Format(DateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Measurement
	for rows.Next() {
		m, err := scanMeasurement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

// DeleteMeasurement removes the measurement for one athlete and date
func (db *DB) DeleteMeasurement(ctx context.Context, athleteID string, date time.Time) error {
	result, err := db.ExecContext(ctx, `DELETE FROM measurements WHERE athlete_id = ? AND date = ?`,
		athleteID, date.Format(DateLayout))
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrMeasurementNotFound
	}
	return nil
}

func scanMeasurement(row scanner) (*Measurement, error) {
	var m Measurement
	var date string
	var manual int

	dest := []any{&m.AthleteID, &date, &manual}
	for _, p := range m.valuePtrs() {
		dest = append(dest, p)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("parsing measurement date: %w", err)
	}
	m.Date = d
	m.BodyFatManual = manual != 0
	return &m, nil
}
