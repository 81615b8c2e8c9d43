package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"physique-coach/internal/analysis"
	"physique-coach/internal/store"
)

// ErrValidation is returned when submitted data is malformed
var ErrValidation = errors.New("validation failed")

// CoachService loads athlete data, runs the engine and writes back derived values
type CoachService struct {
	store  *store.DB
	logger *slog.Logger
	now    func() time.Time
}

// NewCoachService creates a new coach service
func NewCoachService(db *store.DB, logger *slog.Logger) *CoachService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CoachService{store: db, logger: logger, now: time.Now}
}

// SaveProfile validates and upserts a profile, assigning an ID when empty
func (s *CoachService) SaveProfile(ctx context.Context, p *store.AthleteProfile) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if err := validateProfile(p); err != nil {
		return err
	}
	if err := s.store.UpsertProfile(ctx, p); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	s.logger.Info("profile saved", "athlete", p.ID, "category", p.Category)
	return nil
}

func validateProfile(p *store.AthleteProfile) error {
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: name is required", ErrValidation)
	case p.Sex != store.SexMale && p.Sex != store.SexFemale:
		return fmt.Errorf("%w: sex must be %q or %q", ErrValidation, store.SexMale, store.SexFemale)
	case p.HeightCm <= 0:
		return fmt.Errorf("%w: height_cm must be positive", ErrValidation)
	case p.BirthDate.IsZero():
		return fmt.Errorf("%w: birth_date is required", ErrValidation)
	case p.TrainingAgeYears < 0:
		return fmt.Errorf("%w: training_age_years must not be negative", ErrValidation)
	}
	switch p.Category {
	case store.CategoryMensPhysique, store.CategoryClassicPhysique, store.CategoryOpen,
		store.CategoryBikini, store.CategoryWellness:
	default:
		return fmt.Errorf("%w: unknown category %q", ErrValidation, p.Category)
	}
	return nil
}

// Profile returns an athlete profile
func (s *CoachService) Profile(ctx context.Context, athleteID string) (*store.AthleteProfile, error) {
	return s.store.GetProfile(ctx, athleteID)
}

// Profiles returns every athlete profile
func (s *CoachService) Profiles(ctx context.Context) ([]store.AthleteProfile, error) {
	return s.store.ListProfiles(ctx)
}

// LogMeasurement derives the computed fields of m and stores it, replacing any
// record for the same date.
func (s *CoachService) LogMeasurement(ctx context.Context, m *store.Measurement) error {
	profile, err := s.store.GetProfile(ctx, m.AthleteID)
	if err != nil {
		return err
	}

	m.Date = analysis.CalendarDate(m.Date)
	age := float64(analysis.AgeOn(profile.BirthDate, m.Date))

	derived, err := analysis.DeriveMeasurement(*m, profile.Sex, age)
	if err != nil {
		return fmt.Errorf("deriving measurement: %w", err)
	}
	derived.Apply(m)

	if err := s.store.UpsertMeasurement(ctx, m); err != nil {
		return fmt.Errorf("saving measurement: %w", err)
	}
	s.logger.Debug("measurement logged", "athlete", m.AthleteID, "date", m.Date.Format(store.DateLayout))
	return nil
}

// Measurements returns an athlete's measurements between from and to, oldest first
func (s *CoachService) Measurements(ctx context.Context, athleteID string, from, to time.Time) ([]store.Measurement, error) {
	if _, err := s.store.GetProfile(ctx, athleteID); err != nil {
		return nil, err
	}
	return s.store.ListMeasurements(ctx, athleteID, from, to)
}

// DeleteMeasurement removes one day's record
func (s *CoachService) DeleteMeasurement(ctx context.Context, athleteID string, date time.Time) error {
	return s.store.DeleteMeasurement(ctx, athleteID, date)
}

// Import stores the profile (if any) and then every measurement of doc.
// Measurements go to the imported profile, or to athleteID when the file has none.
func (s *CoachService) Import(ctx context.Context, doc *ImportDoc, athleteID string) (string, int, error) {
	if doc.Profile != nil {
		p, err := doc.Profile.ToProfile()
		if err != nil {
			return "", 0, err
		}
		if err := s.SaveProfile(ctx, &p); err != nil {
			return "", 0, err
		}
		athleteID = p.ID
	}
	if athleteID == "" {
		return "", 0, fmt.Errorf("%w: no athlete for measurements", ErrValidation)
	}

	for i, md := range doc.Measurements {
		m, err := md.ToMeasurement(athleteID)
		if err != nil {
			return athleteID, i, fmt.Errorf("measurement %d: %w", i+1, err)
		}
		if err := s.LogMeasurement(ctx, &m); err != nil {
			return athleteID, i, fmt.Errorf("measurement %s: %w", md.Date, err)
		}
	}
	return athleteID, len(doc.Measurements), nil
}
