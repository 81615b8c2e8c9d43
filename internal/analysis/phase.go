package analysis

import (
	"fmt"
	"time"

	"physique-coach/internal/store"
)

// Phase is a periodization phase
type Phase string

const (
	PhaseOffSeason     Phase = "off_season"
	PhaseBulking       Phase = "bulking"
	PhaseRecomposition Phase = "recomposition"
	PhaseCutting       Phase = "cutting"
	PhasePeakWeek      Phase = "peak_week"
)

// Label returns the display name of the phase
func (p Phase) Label() string {
	switch p {
	case PhaseOffSeason:
		return "Off-Season"
	case PhaseBulking:
		return "Bulking"
	case PhaseRecomposition:
		return "Recomposition"
	case PhaseCutting:
		return "Cutting"
	case PhasePeakWeek:
		return "Peak Week"
	default:
		return string(p)
	}
}

const (
	// PeakWeekDays is the last stretch before competition, inclusive
	PeakWeekDays = 7
	// CuttingDays is how far out (17 weeks) the cut begins
	CuttingDays = 119

	BulkingThresholdMale   = 15.0 // body-fat %
	BulkingThresholdFemale = 22.0
)

// Labels for the upcoming boundary
const (
	NextCutting     = "Cutting"
	NextPeakWeek    = "Peak Week"
	NextCompetition = "Competition"
)

// PhaseResult is the classified phase and the countdown to its end
type PhaseResult struct {
	Phase             Phase  `json:"phase"`
	DaysToCompetition *int   `json:"days_to_competition"`
	NextPhase         string `json:"next_phase,omitempty"`
	DaysUntilNext     *int   `json:"days_until_next"`
}

// BulkingThreshold returns the body-fat % below which bulking is permitted
func BulkingThreshold(sex store.Sex) (float64, error) {
	switch sex {
	case store.SexMale:
		return BulkingThresholdMale, nil
	case store.SexFemale:
		return BulkingThresholdFemale, nil
	default:
		return 0, fmt.Errorf("%w: unknown sex %q", ErrInvalidInput, sex)
	}
}

// ClassifyPhase derives the current phase from the calendar distance to
// competition and, when far out, current body-fat. Nothing is remembered
// between calls. A competition date in the past yields Off-Season.
func ClassifyPhase(today time.Time, competition *time.Time, bodyFat *float64, sex store.Sex) (PhaseResult, error) {
	if competition == nil {
		return PhaseResult{Phase: PhaseOffSeason}, nil
	}

	d := DaysBetween(today, *competition)
	res := PhaseResult{DaysToCompetition: &d}

	switch {
	case d < 0:
		res.Phase = PhaseOffSeason
		return res, nil
	case d <= PeakWeekDays:
		res.Phase = PhasePeakWeek
		res.NextPhase = NextCompetition
		res.DaysUntilNext = intPtr(d)
		return res, nil
	case d <= CuttingDays:
		res.Phase = PhaseCutting
		res.NextPhase = NextPeakWeek
		res.DaysUntilNext = intPtr(d - PeakWeekDays)
		return res, nil
	}

	if bodyFat == nil {
		return PhaseResult{}, fmt.Errorf("%w: body fat required %d days out", ErrMissingInput, d)
	}
	threshold, err := BulkingThreshold(sex)
	if err != nil {
		return PhaseResult{}, err
	}

	if *bodyFat < threshold {
		res.Phase = PhaseBulking
	} else {
		res.Phase = PhaseRecomposition
	}
	res.NextPhase = NextCutting
	res.DaysUntilNext = intPtr(d - CuttingDays)
	return res, nil
}

// IsDeficit reports whether the phase runs a caloric deficit
func (p Phase) IsDeficit() bool {
	return p == PhaseCutting || p == PhaseRecomposition
}

// TimelineSpan is one projected block of the preparation
type TimelineSpan struct {
	Label string    `json:"label"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Days  int       `json:"days"`
}

// ProjectTimeline lays out the remaining preparation blocks from today up to
// and including competition day.
func ProjectTimeline(today time.Time, competition *time.Time) ([]TimelineSpan, error) {
	if competition == nil {
		return nil, fmt.Errorf("%w: competition date", ErrMissingInput)
	}
	comp := CalendarDate(*competition)
	now := CalendarDate(today)
	if comp.Before(now) {
		return nil, fmt.Errorf("%w: competition %s has passed", ErrInvalidInput, comp.Format(store.DateLayout))
	}

	cutStart := comp.AddDate(0, 0, -CuttingDays)
	peakStart := comp.AddDate(0, 0, -PeakWeekDays)

	var spans []TimelineSpan
	add := func(label string, start, end time.Time) {
		if start.Before(now) {
			start = now
		}
		if end.Before(start) {
			return
		}
		spans = append(spans, TimelineSpan{Label: label, Start: start, End: end, Days: DaysBetween(start, end) + 1})
	}

	add("Off-Season Build", now, cutStart.AddDate(0, 0, -1))
	add(PhaseCutting.Label(), cutStart, peakStart.AddDate(0, 0, -1))
	add(PhasePeakWeek.Label(), peakStart, comp)
	return spans, nil
}

func intPtr(i int) *int {
	return &i
}
