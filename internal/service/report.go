package service

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"time"

	"golang.org/x/sync/errgroup"

	"physique-coach/internal/analysis"
	"physique-coach/internal/library"
	"physique-coach/internal/store"
)

// Report panels, used as keys in Report.Issues
const (
	PanelBodyFat     = "body_fat"
	PanelPhase       = "phase"
	PanelTimeline    = "timeline"
	PanelPlateau     = "plateau"
	PanelGoals       = "goals"
	PanelNutrition   = "nutrition"
	PanelTraining    = "training"
	PanelZones       = "hr_zones"
	PanelACWR        = "acwr"
	PanelHRV         = "cv_hrv"
	PanelSupplements = "supplements"
)

// Report is everything the engine says about one athlete on one day.
// Nil sections could not be computed; Issues says why.
type Report struct {
	Athlete ProfileDoc `json:"athlete"`
	Date    string     `json:"date"`
	Age     int        `json:"age"`

	Latest Snapshot                          `json:"latest"`
	Stats  map[string][]analysis.WindowStats `json:"stats"`

	Phase    *analysis.PhaseResult   `json:"phase"`
	Timeline []analysis.TimelineSpan `json:"timeline,omitempty"`

	WeightRate *float64 `json:"weight_rate_pct"`
	Plateau    *bool    `json:"plateau"`

	Goals analysis.Goals `json:"goals"`

	Nutrition   *analysis.MacroPlan  `json:"nutrition"`
	Week        []analysis.MacroPlan `json:"week,omitempty"`
	DeficitWeek int                  `json:"deficit_weeks"`

	Training     *analysis.TrainingPrescription `json:"training"`
	TrainingPlan []analysis.PlannedExercise     `json:"training_plan,omitempty"`
	GainRate     *float64                       `json:"gain_rate_pct"`
	Zones        *analysis.ZoneTable            `json:"hr_zones"`

	ACWR    *analysis.ACWRResult  `json:"acwr"`
	HRV     *analysis.CVResult    `json:"cv_hrv"`
	Fatigue analysis.FatigueScore `json:"fatigue"`

	Supplements []analysis.Supplement `json:"supplements,omitempty"`

	WeightTrend []float64 `json:"weight_trend,omitempty"`
	HRVTrend    []float64 `json:"hrv_trend,omitempty"`

	Issues map[string]string `json:"issues,omitempty"`
}

// Snapshot is the most recent present value of the key body metrics
type Snapshot struct {
	Weight      *float64 `json:"weight"`
	BodyFat     *float64 `json:"body_fat"`
	FatFreeMass *float64 `json:"fat_free_mass"`
	RestingHR   *float64 `json:"resting_hr"`
	PhaseAngle  *float64 `json:"phase_angle"`
	WaterRatio  *float64 `json:"water_ratio"`
}

var reportFields = []analysis.Field{
	analysis.WeightField,
	analysis.BodyFatField,
	analysis.TrainingLoadField,
	analysis.HRVField,
	analysis.SleepScoreField,
	analysis.RestingHRField,
}

// BuildReport loads the athlete's profile, history and rate log, runs every
// engine component for today and, when today is the current date, records
// the weekly weight-change rate.
func (s *CoachService) BuildReport(ctx context.Context, athleteID string, today time.Time) (*Report, error) {
	today = analysis.CalendarDate(today)

	var (
		profile *store.AthleteProfile
		history []store.Measurement
		rateLog []store.RateEvaluation
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profile, err = s.store.GetProfile(gctx, athleteID)
		return err
	})
	g.Go(func() error {
		var err error
		history, err = s.store.ListMeasurements(gctx, athleteID, today.AddDate(0, 0, -HistoryDays), today)
		if err != nil {
			return fmt.Errorf("loading measurements: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		rateLog, err = s.store.RecentRateEvaluations(gctx, athleteID, today, RateLogSize)
		if err != nil {
			return fmt.Errorf("loading rate evaluations: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r := &Report{
		Athlete: NewProfileDoc(*profile),
		Date:    today.Format(store.DateLayout),
		Age:     analysis.AgeOn(profile.BirthDate, today),
		Stats:   make(map[string][]analysis.WindowStats),
		Issues:  make(map[string]string),
	}
	age := float64(r.Age)

	r.Latest = Snapshot{
		Weight:      latest(history, analysis.WeightField),
		BodyFat:     latest(history, analysis.BodyFatField),
		FatFreeMass: latest(history, fatFreeMassField),
		RestingHR:   latest(history, analysis.RestingHRField),
		PhaseAngle:  latest(history, phaseAngleField),
		WaterRatio:  latest(history, waterRatioField),
	}

	for _, f := range reportFields {
		for _, days := range []int{AcuteDays, ChronicDays} {
			ws, err := analysis.Rolling(history, f, today, days)
			if err != nil {
				return nil, err
			}
			r.Stats[f.Name] = append(r.Stats[f.Name], ws)
		}
	}

	s.phasePanels(r, profile, today)
	s.plateauPanel(ctx, r, athleteID, history, rateLog, today)
	s.nutritionPanels(r, profile, history, today)

	goals, err := analysis.ResolveGoals(*profile, r.Latest.FatFreeMass)
	r.Goals = goals
	s.note(r, PanelGoals, err)

	zones, err := analysis.HeartRateZones(profile.HeartRateZones, age, r.Latest.RestingHR)
	if s.note(r, PanelZones, err) {
		r.Zones = &zones
	}

	s.recoveryPanels(r, profile, history, today)

	for i := dayIndex(history, today.AddDate(0, 0, -TrendDays)); i < len(history); i++ {
		if w := history[i].Weight; w != nil {
			r.WeightTrend = append(r.WeightTrend, *w)
		}
		if v := history[i].HRV; v != nil {
			r.HRVTrend = append(r.HRVTrend, *v)
		}
	}

	s.logger.Debug("report built", "athlete", athleteID, "date", r.Date, "issues", len(r.Issues))
	return r, nil
}

// phasePanels fills the phase and everything keyed on it
func (s *CoachService) phasePanels(r *Report, profile *store.AthleteProfile, today time.Time) {
	phase, err := analysis.ClassifyPhase(today, profile.CompetitionDate, r.Latest.BodyFat, profile.Sex)
	if !s.note(r, PanelPhase, err) {
		return
	}
	r.Phase = &phase

	if profile.CompetitionDate != nil && phase.DaysToCompetition != nil && *phase.DaysToCompetition >= 0 {
		spans, err := analysis.ProjectTimeline(today, profile.CompetitionDate)
		if s.note(r, PanelTimeline, err) {
			r.Timeline = spans
		}
	}

	training, err := analysis.PrescribeTraining(phase.Phase)
	if s.note(r, PanelTraining, err) {
		r.Training = &training
		exercises, err := library.Exercises()
		if s.note(r, PanelTraining, err) {
			plan, err := analysis.WeeklyTrainingPlan(training, exercises, weekRand(profile.ID, today))
			if s.note(r, PanelTraining, err) {
				r.TrainingPlan = plan
			}
		}
	}
	gain, err := analysis.WeeklyGainRate(profile.TrainingAgeYears)
	if s.note(r, PanelTraining, err) {
		r.GainRate = &gain
	}

	r.Supplements = analysis.RecommendSupplements(phase.Phase, r.Latest.Weight)
}

// nutritionPanels fills today's macro plan and the week around it
func (s *CoachService) nutritionPanels(r *Report, profile *store.AthleteProfile, history []store.Measurement, today time.Time) {
	if r.Phase == nil {
		return
	}
	phase := r.Phase

	r.DeficitWeek = deficitWeeks(profile, history, today)
	in := analysis.NutritionInput{
		Phase:         phase.Phase,
		Assisted:      profile.Assisted,
		DeficitWeeks:  r.DeficitWeek,
		WeeklyRatePct: r.WeightRate,
		Plateau:       r.Plateau != nil && *r.Plateau,
	}
	if m := latestComposition(history); m != nil {
		in.BodyWeight = *m.Weight
		in.FatFreeMass = *m.FatFreeMass
	}
	if phase.Phase == analysis.PhasePeakWeek {
		in.PeakWeekDay = peakWeekDay(*phase.DaysToCompetition)
	}

	plan, err := analysis.PlanDay(in)
	if !s.note(r, PanelNutrition, err) {
		return
	}
	r.Nutrition = &plan
	week, err := analysis.PlanWeek(in)
	if s.note(r, PanelNutrition, err) {
		r.Week = week
	}
}

// plateauPanel computes today's weight-change rate, records it when today is
// the current date, and checks for a plateau while cutting.
func (s *CoachService) plateauPanel(ctx context.Context, r *Report, athleteID string, history []store.Measurement, rateLog []store.RateEvaluation, today time.Time) {
	rate, err := analysis.WeeklyWeightChangeRate(history, today)
	if !s.note(r, PanelPlateau, err) {
		return
	}
	r.WeightRate = &rate

	eval := store.RateEvaluation{AthleteID: athleteID, Date: today, RatePct: rate}
	if analysis.DaysBetween(s.now(), today) == 0 {
		if err := s.store.UpsertRateEvaluation(ctx, &eval); err != nil {
			s.logger.Warn("recording rate evaluation", "athlete", athleteID, "error", err)
		}
	}
	if len(rateLog) > 0 && analysis.DaysBetween(rateLog[len(rateLog)-1].Date, today) == 0 {
		rateLog = rateLog[:len(rateLog)-1]
	}
	rateLog = append(rateLog, eval)

	if r.Phase == nil || r.Phase.Phase != analysis.PhaseCutting {
		return
	}
	plateau, err := analysis.DetectPlateau(rateLog)
	if s.note(r, PanelPlateau, err) {
		r.Plateau = &plateau
	}
}

// recoveryPanels fills ACWR, CV-HRV and the fatigue score
func (s *CoachService) recoveryPanels(r *Report, profile *store.AthleteProfile, history []store.Measurement, today time.Time) {
	in := analysis.FatigueInput{BaselineHRV: profile.BaselineHRV}

	acwr, err := analysis.ACWR(history, today)
	if s.note(r, PanelACWR, err) {
		r.ACWR = &acwr
		in.ACWR = &acwr.Ratio
	}

	cv, err := analysis.HRVVariation(history, today)
	if s.note(r, PanelHRV, err) {
		r.HRV = &cv
		in.CVHRV = &cv.CV
	}

	if i := dayIndex(history, today); i < len(history) && analysis.DaysBetween(history[i].Date, today) == 0 {
		m := history[i]
		in.HRV = m.HRV
		in.SleepScore = m.SleepScore
		in.RecoveryHours = m.RecoveryHours
	}
	r.Fatigue = analysis.ScoreFatigue(in)
}

// note records err against panel and reports whether the panel succeeded
func (s *CoachService) note(r *Report, panel string, err error) bool {
	if err == nil {
		return true
	}
	if prev, ok := r.Issues[panel]; ok {
		r.Issues[panel] = prev + "; " + err.Error()
	} else {
		r.Issues[panel] = err.Error()
	}
	level := s.logger.Debug
	if !isEngineError(err) {
		level = s.logger.Warn
	}
	level("report panel unavailable", "panel", panel, "error", err)
	return false
}

func isEngineError(err error) bool {
	return errors.Is(err, analysis.ErrMissingInput) ||
		errors.Is(err, analysis.ErrInvalidInput) ||
		errors.Is(err, analysis.ErrInsufficientData) ||
		errors.Is(err, analysis.ErrInfeasibleMacros)
}

var (
	fatFreeMassField = analysis.Field{Name: "fat_free_mass", Get: func(m store.Measurement) *float64 { return m.FatFreeMass }}
	phaseAngleField  = analysis.Field{Name: "phase_angle", Get: func(m store.Measurement) *float64 { return m.PhaseAngle }}
	waterRatioField  = analysis.Field{Name: "water_ratio", Get: func(m store.Measurement) *float64 { return m.WaterRatio }}
)

// latest returns the most recent present value of f in an ascending history
func latest(history []store.Measurement, f analysis.Field) *float64 {
	for i := len(history) - 1; i >= 0; i-- {
		if v := f.Get(history[i]); v != nil {
			return v
		}
	}
	return nil
}

// latestComposition returns the most recent record carrying both bodyweight
// and fat-free mass, so the two always come from the same weigh-in
func latestComposition(history []store.Measurement) *store.Measurement {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Weight != nil && history[i].FatFreeMass != nil {
			return &history[i]
		}
	}
	return nil
}

// dayIndex returns the index of the first record on or after date
func dayIndex(history []store.Measurement, date time.Time) int {
	for i, m := range history {
		if analysis.DaysBetween(date, m.Date) >= 0 {
			return i
		}
	}
	return len(history)
}

// weekRand seeds exercise rotation so an athlete's plan is stable within an
// ISO week and changes from one week to the next.
func weekRand(athleteID string, today time.Time) *rand.Rand {
	year, week := today.ISOWeek()
	h := fnv.New64a()
	h.Write([]byte(athleteID))
	return rand.New(rand.NewPCG(uint64(year*100+week), h.Sum64()))
}

// peakWeekDay maps days-to-competition onto the 1–7 peak week protocol.
// Seven days out is day 1; the day before and competition day are both day 7.
func peakWeekDay(daysToCompetition int) int {
	d := analysis.PeakWeekDays + 1 - daysToCompetition
	if d < 1 {
		return 1
	}
	if d > analysis.PeakWeekDays {
		return analysis.PeakWeekDays
	}
	return d
}

// deficitWeeks counts whole weeks of continuous deficit-phase days ending
// today by re-classifying each past day with the body-fat known on that day.
func deficitWeeks(profile *store.AthleteProfile, history []store.Measurement, today time.Time) int {
	days := 0
	for d := 0; d < HistoryDays; d++ {
		date := today.AddDate(0, 0, -d)
		known := history[:dayIndex(history, date.AddDate(0, 0, 1))]
		phase, err := analysis.ClassifyPhase(date, profile.CompetitionDate, latest(known, analysis.BodyFatField), profile.Sex)
		if err != nil || !phase.Phase.IsDeficit() {
			break
		}
		days++
	}
	return days / 7
}
