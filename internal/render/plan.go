package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"physique-coach/internal/analysis"
	"physique-coach/internal/library"
)

// TrainingPlan renders the weekly plan grouped by session
func TrainingPlan(plan []analysis.PlannedExercise) string {
	if len(plan) == 0 {
		return RenderCard("Weekly Plan", neutralStyle.Render(NoData))
	}

	var lines []string
	session := ""
	for _, p := range plan {
		if p.Session != session {
			if session != "" {
				lines = append(lines, "")
			}
			session = p.Session
			lines = append(lines, tableHeaderStyle.Render(session))
		}
		technique := p.Technique
		if technique == "" {
			technique = "-"
		}
		lines = append(lines, fmt.Sprintf("  %-28s %-18s %d × %d–%d  %s",
			p.Exercise, p.Muscle, p.Sets, p.RepsMin, p.RepsMax, neutralStyle.Render(technique)))
	}
	return RenderCard("Weekly Plan", lines...)
}

// TrainingPlanCSV writes the plan as semicolon-separated values
func TrainingPlanCSV(w io.Writer, plan []analysis.PlannedExercise) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	header := []string{"session", "exercise", "muscle", "sets", "reps", "rir", "rest_s", "technique", "progression"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, p := range plan {
		rir := ""
		if p.RIR != nil {
			rir = fmt.Sprintf("%d-%d", p.RIR.Min, p.RIR.Max)
		}
		progression := "hold load"
		if p.ProgressionPct > 0 {
			progression = fmt.Sprintf("+%.1f%%/week", p.ProgressionPct)
		}
		row := []string{
			p.Session,
			p.Exercise,
			p.Muscle,
			strconv.Itoa(p.Sets),
			fmt.Sprintf("%d-%d", p.RepsMin, p.RepsMax),
			rir,
			strconv.Itoa(p.RestSeconds),
			p.Technique,
			progression,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// References renders citations under a heading per module
func References(refs []library.Reference) string {
	var sections []string
	for _, m := range library.Modules {
		var lines []string
		for _, r := range refs {
			if r.Module != m {
				continue
			}
			lines = append(lines, r.APA, neutralStyle.Render("  "+r.Summary), "")
		}
		if len(lines) == 0 {
			continue
		}
		sections = append(sections, headerStyle.Render(m), lipgloss.JoinVertical(lipgloss.Left, lines...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
