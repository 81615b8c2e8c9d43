package store

import "database/sql"

// migrate runs all database migrations
func migrate(db *sql.DB) error {
	migrations := []string{
		// Athlete profiles (one row per athlete)
		`CREATE TABLE IF NOT EXISTS athletes (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			birth_date TEXT NOT NULL,
			sex TEXT NOT NULL,
			height_cm REAL NOT NULL,
			training_age_years REAL NOT NULL DEFAULT 0,
			category TEXT NOT NULL,
			assisted INTEGER NOT NULL DEFAULT 0,
			competition_date TEXT,
			baseline_hrv REAL,
			target_body_fat REAL,
			target_weight REAL,
			target_waist REAL,
			target_shoulders REAL,
			target_thigh REAL,
			hr_zones TEXT,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		// Measurements (at most one row per athlete per calendar date)
		`CREATE TABLE IF NOT EXISTS measurements (
			athlete_id TEXT NOT NULL,
			date TEXT NOT NULL,
			weight REAL,
			body_fat_scale REAL,
			body_fat_caliper REAL,
			body_fat_final REAL,
			body_fat_manual INTEGER NOT NULL DEFAULT 0,
			fat_mass REAL,
			fat_free_mass REAL,
			total_water REAL,
			intracellular_water REAL,
			extracellular_water REAL,
			resistance REAL,
			reactance REAL,
			phase_angle REAL,
			water_ratio REAL,
			sf_chest REAL,
			sf_midaxillary REAL,
			sf_triceps REAL,
			sf_subscapular REAL,
			sf_abdomen REAL,
			sf_suprailiac REAL,
			sf_thigh REAL,
			sf_biceps REAL,
			circ_neck REAL,
			circ_shoulders REAL,
			circ_chest REAL,
			circ_waist REAL,
			circ_hips REAL,
			circ_arm REAL,
			circ_thigh REAL,
			training_load REAL,
			hrv REAL,
			sleep_score REAL,
			recovery_hours REAL,
			resting_hr REAL,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (athlete_id, date),
			FOREIGN KEY (athlete_id) REFERENCES athletes(id) ON DELETE CASCADE
		)`,

		`CREATE INDEX IF NOT EXISTS idx_measurements_date ON measurements(date)`,

		// Weekly weight-change evaluations used for plateau detection
		`CREATE TABLE IF NOT EXISTS rate_evaluations (
			athlete_id TEXT NOT NULL,
			date TEXT NOT NULL,
			rate_pct REAL NOT NULL,
			computed_at TEXT DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (athlete_id, date),
			FOREIGN KEY (athlete_id) REFERENCES athletes(id) ON DELETE CASCADE
		)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}

	return nil
}
