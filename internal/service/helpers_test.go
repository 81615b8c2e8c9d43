package service

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"physique-coach/internal/store"
)

func setupService(t *testing.T) (*CoachService, *store.DB) {
	t.Helper()

	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewCoachService(db, logger), db
}

func floatPtr(f float64) *float64 {
	return &f
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testProfile() *store.AthleteProfile {
	comp := day(2025, 6, 1)
	return &store.AthleteProfile{
		ID:               "athlete-1",
		Name:             "Test Athlete",
		BirthDate:        day(1995, 3, 10),
		Sex:              store.SexMale,
		HeightCm:         178,
		TrainingAgeYears: 4,
		Category:         store.CategoryClassicPhysique,
		CompetitionDate:  &comp,
		BaselineHRV:      floatPtr(65),
		TargetWaist:      floatPtr(80),
	}
}
