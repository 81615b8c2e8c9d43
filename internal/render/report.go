package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"physique-coach/internal/analysis"
	"physique-coach/internal/service"
)

// NoData marks a value that could not be computed
const NoData = "insufficient data"

// Options control chart dimensions
type Options struct {
	ChartWidth  int
	ChartHeight int
}

// Report renders a coaching report as a stack of cards
func Report(r *service.Report, opts Options) string {
	var sections []string

	sections = append(sections, headerStyle.Render(fmt.Sprintf("%s  ·  %s  ·  %d y", r.Athlete.Name, r.Date, r.Age)))

	top := lipgloss.JoinHorizontal(lipgloss.Top, bodyCard(r), "  ", phaseCard(r))
	sections = append(sections, top)

	if r.Nutrition != nil {
		sections = append(sections, nutritionCard(r))
	}
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, trainingCard(r), "  ", recoveryCard(r)))
	if len(r.TrainingPlan) > 0 {
		sections = append(sections, TrainingPlan(r.TrainingPlan))
	}
	sections = append(sections, goalsCard(r.Goals))

	if len(r.Supplements) > 0 {
		sections = append(sections, supplementsCard(r.Supplements))
	}
	if chart := Chart("Weight (kg)", r.WeightTrend, opts); chart != "" {
		sections = append(sections, chart)
	}
	if chart := Chart("Nocturnal HRV (ms)", r.HRVTrend, opts); chart != "" {
		sections = append(sections, chart)
	}
	if len(r.Issues) > 0 {
		sections = append(sections, issuesCard(r.Issues))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Chart plots values with asciigraph, or returns "" when there are too few points
func Chart(title string, values []float64, opts Options) string {
	if len(values) < 3 {
		return ""
	}
	graph := asciigraph.Plot(values,
		asciigraph.Height(opts.ChartHeight),
		asciigraph.Width(opts.ChartWidth),
		asciigraph.Precision(1),
	)
	return RenderCard(title, graph)
}

func bodyCard(r *service.Report) string {
	l := r.Latest
	return RenderCard("Body Composition",
		RenderMetric("Weight", formatFloat(l.Weight, "%.1f kg"), trendNote(r), ToneNeutral),
		RenderMetric("Body fat", formatFloat(l.BodyFat, "%.1f%%"), "", ToneNeutral),
		RenderMetric("Fat-free mass", formatFloat(l.FatFreeMass, "%.1f kg"), "", ToneNeutral),
		RenderMetric("Phase angle", formatFloat(l.PhaseAngle, "%.1f°"), "", ToneNeutral),
		RenderMetric("ICW/ECW", formatFloat(l.WaterRatio, "%.2f"), "", ToneNeutral),
	)
}

// trendNote summarises the weekly weight change and plateau flag
func trendNote(r *service.Report) string {
	if r.WeightRate == nil {
		return ""
	}
	note := fmt.Sprintf("%+.2f%%/wk", -*r.WeightRate)
	if r.Plateau != nil && *r.Plateau {
		note += " plateau"
	}
	return note
}

func phaseCard(r *service.Report) string {
	if r.Phase == nil {
		return RenderCard("Phase", neutralStyle.Render(NoData))
	}
	p := r.Phase
	lines := []string{RenderMetric("Current", p.Phase.Label(), "", ToneNeutral)}
	if p.DaysToCompetition != nil && *p.DaysToCompetition >= 0 {
		lines = append(lines, RenderMetric("Competition in", fmt.Sprintf("%d days", *p.DaysToCompetition), "", ToneNeutral))
	}
	if p.NextPhase != "" && p.DaysUntilNext != nil {
		lines = append(lines, RenderMetric(p.NextPhase+" in", fmt.Sprintf("%d days", *p.DaysUntilNext), "", ToneNeutral))
	}
	for _, span := range r.Timeline {
		lines = append(lines, RenderMetric(span.Label, fmt.Sprintf("%s → %s", span.Start.Format("Jan 02"), span.End.Format("Jan 02")), fmt.Sprintf("%dd", span.Days), ToneNeutral))
	}
	return RenderCard("Phase", lines...)
}

func nutritionCard(r *service.Report) string {
	n := r.Nutrition
	lines := []string{
		RenderMetric("Maintenance", fmt.Sprintf("%.0f kcal", n.Maintenance), thermoNote(n.Thermogenesis, r.DeficitWeek), ToneBad),
		RenderMetric("Today ("+n.Kind+")", fmt.Sprintf("%.0f kcal", n.Calories), "", ToneNeutral),
		RenderMetric("Protein / Fat / Carbs", fmt.Sprintf("%.0f / %.0f / %.0f g", n.ProteinG, n.FatG, n.CarbsG), "", ToneNeutral),
	}
	switch {
	case n.RateAdjustment < 0:
		lines = append(lines, RenderMetric("Loss-rate correction", fmt.Sprintf("%.0f kcal", n.RateAdjustment), "plateau", ToneBad))
	case n.RateAdjustment > 0:
		lines = append(lines, RenderMetric("Loss-rate correction", fmt.Sprintf("+%.0f kcal", n.RateAdjustment), "losing over 1%/wk", ToneGood))
	}

	if len(r.Week) > 0 {
		lines = append(lines, "", tableHeaderStyle.Render(fmt.Sprintf("%-4s %-12s %7s %6s %6s %6s", "Day", "Kind", "kcal", "P", "F", "C")))
		for _, d := range r.Week {
			lines = append(lines, fmt.Sprintf("%-4d %-12s %7.0f %6.0f %6.0f %6.0f", d.Day, d.Kind, d.Calories, d.ProteinG, d.FatG, d.CarbsG))
		}
	}
	return RenderCard("Nutrition", lines...)
}

func thermoNote(thermo float64, weeks int) string {
	if thermo == 0 {
		return ""
	}
	return fmt.Sprintf("-%.0f kcal after %d wk deficit", thermo, weeks)
}

func trainingCard(r *service.Report) string {
	t := r.Training
	if t == nil {
		return RenderCard("Training", neutralStyle.Render(NoData))
	}
	rir := "-"
	if t.RIR != nil {
		rir = fmt.Sprintf("%d–%d", t.RIR.Min, t.RIR.Max)
	}
	lines := []string{
		RenderMetric("Sets/muscle/week", fmt.Sprintf("MEV %d · MAV %d · MRV %d", t.Volume.MEV, t.Volume.MAV, t.Volume.MRV), "", ToneNeutral),
		RenderMetric("Reps", fmt.Sprintf("%d–%d", t.RepsMin, t.RepsMax), "", ToneNeutral),
		RenderMetric("RIR", rir, "", ToneNeutral),
		RenderMetric("Rest", fmt.Sprintf("%ds", t.RestSeconds), "", ToneNeutral),
		RenderMetric("Progression", fmt.Sprintf("%.1f%%/wk", t.ProgressionPct), "", ToneNeutral),
	}
	if len(t.Techniques) > 0 {
		lines = append(lines, RenderMetric("Techniques", strings.Join(t.Techniques, ", "), "", ToneNeutral))
	}
	if r.GainRate != nil {
		lines = append(lines, RenderMetric("Expected gain", fmt.Sprintf("%.2f%%/wk", *r.GainRate), "", ToneNeutral))
	}
	if r.Zones != nil {
		for _, z := range r.Zones.Zones {
			lines = append(lines, RenderMetric(fmt.Sprintf("HR zone %d", z.Zone), fmt.Sprintf("%.0f–%.0f bpm", z.Low, z.High), "", ToneNeutral))
		}
	}
	return RenderCard("Training", lines...)
}

func recoveryCard(r *service.Report) string {
	acwr := RenderMetric("ACWR", NoData, "", ToneNeutral)
	if a := r.ACWR; a != nil {
		tone := ToneGood
		if a.Zone != analysis.ZoneOptimal {
			tone = ToneBad
		}
		note := string(a.Zone)
		if a.LowConfidence {
			note += " (low confidence)"
		}
		acwr = RenderMetric("ACWR", fmt.Sprintf("%.2f", a.Ratio), note, tone)
	}

	cv := RenderMetric("CV-HRV", NoData, "", ToneNeutral)
	if h := r.HRV; h != nil {
		tone := ToneGood
		if h.Stability != analysis.HRVStable {
			tone = ToneBad
		}
		cv = RenderMetric("CV-HRV", fmt.Sprintf("%.1f%%", h.CV), string(h.Stability), tone)
	}

	f := r.Fatigue
	tone := ToneGood
	if f.Score > 1 {
		tone = ToneBad
	}
	lines := []string{
		acwr,
		cv,
		RenderMetric("Fatigue score", fmt.Sprintf("%d/4", f.Score), f.Prescription.Description(), tone),
		RenderProgressBar(float64(f.Score)/4, 24),
	}
	if len(f.Triggered) > 0 {
		lines = append(lines, badStyle.Render("triggered: "+strings.Join(f.Triggered, ", ")))
	}
	if len(f.Unevaluated) > 0 {
		lines = append(lines, neutralStyle.Render("not evaluated: "+strings.Join(f.Unevaluated, ", ")))
	}
	return RenderCard("Recovery", lines...)
}

func goalsCard(g analysis.Goals) string {
	goal := func(label, format string, v *analysis.Goal) string {
		if v == nil {
			return RenderMetric(label, NoData, "", ToneNeutral)
		}
		return RenderMetric(label, fmt.Sprintf(format, v.Value), string(v.Origin), ToneNeutral)
	}
	return RenderCard("Goals",
		goal("Body fat", "%.1f%%", g.BodyFat),
		goal("Weight", "%.1f kg", g.Weight),
		goal("Waist", "%.1f cm", g.Waist),
		goal("Shoulders", "%.1f cm", g.Shoulders),
		goal("Thigh", "%.1f cm", g.Thigh),
	)
}

func supplementsCard(supps []analysis.Supplement) string {
	var lines []string
	for _, s := range supps {
		if !s.Active {
			lines = append(lines, neutralStyle.Render(fmt.Sprintf("%-14s %s", s.Name, s.Note)))
			continue
		}
		lines = append(lines, fmt.Sprintf("%-14s %-22s %s", s.Name, s.Dose, neutralStyle.Render(s.Timing)))
	}
	return RenderCard("Supplements", lines...)
}

func issuesCard(issues map[string]string) string {
	panels := make([]string, 0, len(issues))
	for p := range issues {
		panels = append(panels, p)
	}
	sort.Strings(panels)

	lines := make([]string, 0, len(panels))
	for _, p := range panels {
		lines = append(lines, warningStyle.Render(p+": ")+issues[p])
	}
	return RenderCard("Unavailable", lines...)
}

// Measurements renders a table of measurement records
func Measurements(docs []service.MeasurementDoc) string {
	if len(docs) == 0 {
		return neutralStyle.Render("No measurements")
	}

	rows := []string{tableHeaderStyle.Render(fmt.Sprintf("%-10s  %7s  %6s  %7s  %6s  %5s  %5s", "Date", "Weight", "BF%", "FFM", "HRV", "Sleep", "Load"))}
	for _, d := range docs {
		rows = append(rows, fmt.Sprintf("%-10s  %7s  %6s  %7s  %6s  %5s  %5s",
			d.Date,
			formatFloat(d.Weight, "%.1f"),
			formatFloat(d.BodyFatFinal, "%.1f"),
			formatFloat(d.FatFreeMass, "%.1f"),
			formatFloat(d.HRV, "%.0f"),
			formatFloat(d.SleepScore, "%.0f"),
			formatFloat(d.TrainingLoad, "%.0f"),
		))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// Profiles renders a list of athlete profiles
func Profiles(docs []service.ProfileDoc) string {
	if len(docs) == 0 {
		return neutralStyle.Render("No athletes")
	}

	rows := []string{tableHeaderStyle.Render(fmt.Sprintf("%-36s  %-20s  %-18s  %-10s", "ID", "Name", "Category", "Competition"))}
	for _, p := range docs {
		comp := p.CompetitionDate
		if comp == "" {
			comp = "-"
		}
		rows = append(rows, fmt.Sprintf("%-36s  %-20s  %-18s  %-10s", p.ID, p.Name, p.Category, comp))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func formatFloat(v *float64, format string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf(format, *v)
}
