package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrProfileNotFound is returned when an athlete profile doesn't exist
var ErrProfileNotFound = errors.New("athlete profile not found")

// UpsertProfile inserts or replaces an athlete profile
func (db *DB) UpsertProfile(ctx context.Context, p *AthleteProfile) error {
	var zones *string
	if len(p.HeartRateZones) > 0 {
		data, err := json.Marshal(p.HeartRateZones)
		if err != nil {
			return fmt.Errorf("encoding hr zones: %w", err)
		}
		s := string(data)
		zones = &s
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO athletes (
			id, name, birth_date, sex, height_cm, training_age_years, category,
			assisted, competition_date, baseline_hrv, target_body_fat, target_weight,
			target_waist, target_shoulders, target_thigh, hr_zones
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			birth_date = excluded.birth_date,
			sex = excluded.sex,
			height_cm = excluded.height_cm,
			training_age_years = excluded.training_age_years,
			category = excluded.category,
			assisted = excluded.assisted,
			competition_date = excluded.competition_date,
			baseline_hrv = excluded.baseline_hrv,
			target_body_fat = excluded.target_body_fat,
			target_weight = excluded.target_weight,
			target_waist = excluded.target_waist,
			target_shoulders = excluded.target_shoulders,
			target_thigh = excluded.target_thigh,
			hr_zones = excluded.hr_zones,
			updated_at = CURRENT_TIMESTAMP
	`,
		p.ID, p.Name, p.BirthDate.Format(DateLayout), string(p.Sex), p.HeightCm,
		p.TrainingAgeYears, string(p.Category), boolToInt(p.Assisted),
		formatDatePtr(p.CompetitionDate), p.BaselineHRV, p.TargetBodyFat, p.TargetWeight,
		p.TargetWaist, p.TargetShoulders, p.TargetThigh, zones,
	)
	return err
}

// GetProfile retrieves an athlete profile by ID
func (db *DB) GetProfile(ctx context.Context, id string) (*AthleteProfile, error) {
	row := db.QueryRowContext(ctx, `
		SELECT `+profileColumns+`
		FROM athletes
		WHERE id = ?
	`, id)

	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	return p, err
}

// ListProfiles returns all athlete profiles ordered by name
func (db *DB) ListProfiles(ctx context.Context) ([]AthleteProfile, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+profileColumns+`
		FROM athletes
		ORDER BY name, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []AthleteProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

const profileColumns = `id, name, birth_date, sex, height_cm, training_age_years, category,
			assisted, competition_date, baseline_hrv, target_body_fat, target_weight,
			target_waist, target_shoulders, target_thigh, hr_zones`

type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(row scanner) (*AthleteProfile, error) {
	var p AthleteProfile
	var birth, sex, category string
	var assisted int
	var competition, zones sql.NullString

	err := row.Scan(
		&p.ID, &p.Name, &birth, &sex, &p.HeightCm, &p.TrainingAgeYears, &category,
		&assisted, &competition, &p.BaselineHRV, &p.TargetBodyFat, &p.TargetWeight,
		&p.TargetWaist, &p.TargetShoulders, &p.TargetThigh, &zones,
	)
	if err != nil {
		return nil, err
	}

	p.Sex = Sex(sex)
	p.Category = Category(category)
	p.Assisted = assisted != 0
	if p.BirthDate, err = time.Parse(DateLayout, birth); err != nil {
		return nil, fmt.Errorf("parsing birth date: %w", err)
	}
	if competition.Valid {
		d, err := time.Parse(DateLayout, competition.String)
		if err != nil {
			return nil, fmt.Errorf("parsing competition date: %w", err)
		}
		p.CompetitionDate = &d
	}
	if zones.Valid && zones.String != "" {
		if err := json.Unmarshal([]byte(zones.String), &p.HeartRateZones); err != nil {
			return nil, fmt.Errorf("decoding hr zones: %w", err)
		}
	}
	return &p, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}
