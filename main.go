package main

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"physique-coach/internal/config"
	"physique-coach/internal/service"
	"physique-coach/internal/store"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// .env is optional; COACH_* variables may also come from the shell
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	return execute(&app{}, nil)
}

// execute runs the CLI with args (nil means os.Args) and always releases the
// store, including when a command fails.
func execute(app *app, args []string) error {
	defer app.close()

	rootCmd := &cobra.Command{
		Use:           "coach",
		Short:         "Bodybuilding coaching engine: body composition, periodization, nutrition and recovery",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "init" || cmd.Name() == "references" {
				return nil
			}
			return app.open()
		},
	}
	rootCmd.PersistentFlags().StringVarP(&app.athleteID, "athlete", "a", "", "athlete ID (defaults to athlete.default_id)")

	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(profileCmd(app))
	rootCmd.AddCommand(measureCmd(app))
	rootCmd.AddCommand(reportCmd(app))
	rootCmd.AddCommand(planCmd(app))
	rootCmd.AddCommand(referencesCmd())
	rootCmd.AddCommand(serveCmd(app))

	if args != nil {
		rootCmd.SetArgs(args)
	}
	return rootCmd.Execute()
}

// app holds what every command needs once config and database are open
type app struct {
	cfg       *config.Config
	db        *store.DB
	svc       *service.CoachService
	logger    *slog.Logger
	athleteID string
}

func (a *app) open() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		configDir, _ := config.GetConfigDir()
		return fmt.Errorf("config validation failed: %w (edit %s/config.json)", err, configDir)
	}
	a.cfg = cfg

	a.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(a.logger)

	db, err := store.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.db = db
	a.svc = service.NewCoachService(db, a.logger)

	if a.athleteID == "" {
		a.athleteID = cfg.Athlete.DefaultID
	}
	return nil
}

func (a *app) close() {
	if a.db != nil {
		a.db.Close()
	}
}

// athlete returns the selected athlete ID or an error telling the user how to pick one
func (a *app) athlete() (string, error) {
	if a.athleteID == "" {
		return "", errors.New("no athlete selected: pass --athlete or set athlete.default_id")
	}
	return a.athleteID, nil
}
