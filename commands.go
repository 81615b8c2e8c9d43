package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"physique-coach/internal/analysis"
	"physique-coach/internal/api"
	"physique-coach/internal/config"
	"physique-coach/internal/library"
	"physique-coach/internal/render"
	"physique-coach/internal/service"
	"physique-coach/internal/store"
)

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create an example config file in ~/.coach",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := config.CreateExample(); err != nil {
				return fmt.Errorf("creating example config: %w", err)
			}
			configDir, _ := config.GetConfigDir()
			fmt.Printf("Config file:\n  %s/config.json\n", configDir)
			return nil
		},
	}
}

// importCmd reads a YAML file holding an optional profile and measurements.
// Without a profile in the file the measurements go to the selected athlete.
func importCmd(a *app, short string) *cobra.Command {
	return &cobra.Command{
		Use:   "import [file.yaml]",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			doc, err := service.DecodeImport(f)
			if err != nil {
				return err
			}

			id, n, err := a.svc.Import(cmd.Context(), doc, a.athleteID)
			if err != nil {
				return fmt.Errorf("imported %d measurements before failing: %w", n, err)
			}
			fmt.Printf("Imported %d measurements for athlete %s\n", n, id)
			return nil
		},
	}
}

func profileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Import and show athlete profiles",
	}

	cmd.AddCommand(importCmd(a, "Import a profile, and any measurements, from a YAML file"))

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the selected athlete's profile as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := a.athlete()
			if err != nil {
				return err
			}
			p, err := a.svc.Profile(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(service.NewProfileDoc(*p))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every athlete",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ps, err := a.svc.Profiles(cmd.Context())
			if err != nil {
				return err
			}
			docs := make([]service.ProfileDoc, 0, len(ps))
			for _, p := range ps {
				docs = append(docs, service.NewProfileDoc(p))
			}
			fmt.Println(render.Profiles(docs))
			return nil
		},
	})

	return cmd
}

// measurementFlags binds command-line flags to the optional fields of a measurement
type measurementFlags struct {
	date   string
	values map[string]*float64
	manual bool
}

var measurementFlagFields = []struct {
	name  string
	usage string
	field func(m *store.Measurement) **float64
}{
	{"weight", "bodyweight in kg", func(m *store.Measurement) **float64 { return &m.Weight }},
	{"bf-scale", "body fat % from the bioimpedance scale", func(m *store.Measurement) **float64 { return &m.BodyFatScale }},
	{"bf-caliper", "body fat % from calipers", func(m *store.Measurement) **float64 { return &m.BodyFatCaliper }},
	{"bf-final", "body fat % to use as-is (with --manual)", func(m *store.Measurement) **float64 { return &m.BodyFatFinal }},
	{"resistance", "bioimpedance resistance in ohm", func(m *store.Measurement) **float64 { return &m.Resistance }},
	{"reactance", "bioimpedance reactance in ohm", func(m *store.Measurement) **float64 { return &m.Reactance }},
	{"icw", "intracellular water in litres", func(m *store.Measurement) **float64 { return &m.IntracellularWater }},
	{"ecw", "extracellular water in litres", func(m *store.Measurement) **float64 { return &m.ExtracellularWater }},
	{"waist", "waist circumference in cm", func(m *store.Measurement) **float64 { return &m.Circumferences.Waist }},
	{"load", "session training load", func(m *store.Measurement) **float64 { return &m.TrainingLoad }},
	{"hrv", "nocturnal HRV in ms", func(m *store.Measurement) **float64 { return &m.HRV }},
	{"sleep", "sleep score 0-100", func(m *store.Measurement) **float64 { return &m.SleepScore }},
	{"recovery", "recovery time in hours", func(m *store.Measurement) **float64 { return &m.RecoveryHours }},
	{"rhr", "resting heart rate in bpm", func(m *store.Measurement) **float64 { return &m.RestingHR }},
}

func (f *measurementFlags) register(cmd *cobra.Command) {
	f.values = make(map[string]*float64, len(measurementFlagFields))
	for _, mf := range measurementFlagFields {
		f.values[mf.name] = cmd.Flags().Float64(mf.name, 0, mf.usage)
	}
	cmd.Flags().StringVar(&f.date, "date", "", "measurement date YYYY-MM-DD (defaults to today)")
	cmd.Flags().BoolVar(&f.manual, "manual", false, "keep --bf-final instead of deriving body fat")
}

func (f *measurementFlags) measurement(cmd *cobra.Command, athleteID string) (*store.Measurement, error) {
	date, err := parseDateFlag(f.date)
	if err != nil {
		return nil, err
	}
	m := &store.Measurement{AthleteID: athleteID, Date: date, BodyFatManual: f.manual}
	for _, mf := range measurementFlagFields {
		if cmd.Flags().Changed(mf.name) {
			v := *f.values[mf.name]
			*mf.field(m) = &v
		}
	}
	return m, nil
}

func measureCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "measure",
		Short: "Log, list and delete daily measurements",
	}

	var flags measurementFlags
	add := &cobra.Command{
		Use:   "add",
		Short: "Log one day's measurements, replacing any record for that date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := a.athlete()
			if err != nil {
				return err
			}
			m, err := flags.measurement(cmd, id)
			if err != nil {
				return err
			}
			if err := a.svc.LogMeasurement(cmd.Context(), m); err != nil {
				return err
			}
			fmt.Println(render.Measurements([]service.MeasurementDoc{service.NewMeasurementDoc(*m)}))
			return nil
		},
	}
	flags.register(add)
	cmd.AddCommand(add)
	cmd.AddCommand(importCmd(a, "Import measurements from a YAML file"))

	var days int
	list := &cobra.Command{
		Use:   "list",
		Short: "List recent measurements",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := a.athlete()
			if err != nil {
				return err
			}
			to := analysis.CalendarDate(time.Now())
			ms, err := a.svc.Measurements(cmd.Context(), id, to.AddDate(0, 0, -days), to)
			if err != nil {
				return err
			}
			docs := make([]service.MeasurementDoc, 0, len(ms))
			for _, m := range ms {
				docs = append(docs, service.NewMeasurementDoc(m))
			}
			fmt.Println(render.Measurements(docs))
			return nil
		},
	}
	list.Flags().IntVarP(&days, "days", "d", 30, "how many days back to list")
	cmd.AddCommand(list)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete [YYYY-MM-DD]",
		Short: "Delete one day's measurements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.athlete()
			if err != nil {
				return err
			}
			date, err := time.Parse(store.DateLayout, args[0])
			if err != nil {
				return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", args[0])
			}
			if err := a.svc.DeleteMeasurement(cmd.Context(), id, date); err != nil {
				return err
			}
			fmt.Printf("Deleted measurements for %s\n", args[0])
			return nil
		},
	})

	return cmd
}

func reportCmd(a *app) *cobra.Command {
	var (
		date   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Compute today's coaching report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := a.athlete()
			if err != nil {
				return err
			}
			day, err := parseDateFlag(date)
			if err != nil {
				return err
			}

			r, err := a.svc.BuildReport(cmd.Context(), id, day)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(r)
			}
			fmt.Println(render.Report(r, render.Options{
				ChartWidth:  a.cfg.Display.ChartWidth,
				ChartHeight: a.cfg.Display.ChartHeight,
			}))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "report date YYYY-MM-DD (defaults to today)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}

func planCmd(a *app) *cobra.Command {
	var (
		date  string
		asCSV bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show this week's training plan for the current phase",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := a.athlete()
			if err != nil {
				return err
			}
			day, err := parseDateFlag(date)
			if err != nil {
				return err
			}

			r, err := a.svc.BuildReport(cmd.Context(), id, day)
			if err != nil {
				return err
			}
			if len(r.TrainingPlan) == 0 {
				return errors.New("no training plan for this date; run report to see why")
			}
			if asCSV {
				return render.TrainingPlanCSV(os.Stdout, r.TrainingPlan)
			}
			fmt.Println(render.TrainingPlan(r.TrainingPlan))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "plan week containing YYYY-MM-DD (defaults to today)")
	cmd.Flags().BoolVar(&asCSV, "csv", false, "write the plan as semicolon-separated CSV")
	return cmd
}

func referencesCmd() *cobra.Command {
	var module string

	cmd := &cobra.Command{
		Use:   "references",
		Short: "List the scientific references behind the recommendations",
		RunE: func(_ *cobra.Command, _ []string) error {
			refs, err := library.References(module)
			if err != nil {
				return err
			}
			fmt.Println(render.References(refs))
			return nil
		},
	}

	cmd.Flags().StringVarP(&module, "module", "m", "", "only one module: periodization, nutrition, training, recovery, supplements")
	return cmd
}

func serveCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the coaching API over HTTP",
		RunE: func(_ *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.cfg.Server.Address
			}
			server := api.NewServer(addr, api.NewRouter(a.svc, a.cfg.Server.AllowedOrigins, a.logger))

			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("server starting", "address", addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			select {
			case err := <-errCh:
				return fmt.Errorf("listening on %s: %w", addr, err)
			case <-quit:
			}

			a.logger.Info("shutting down server")
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to server.address)")
	return cmd
}

func parseDateFlag(s string) (time.Time, error) {
	if s == "" {
		return analysis.CalendarDate(time.Now()), nil
	}
	t, err := time.Parse(store.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
