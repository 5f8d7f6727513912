package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/sadopc/flexr/internal/catalog"
	"github.com/sadopc/flexr/internal/config"
	"github.com/sadopc/flexr/internal/fitimport"
	"github.com/sadopc/flexr/internal/logging"
	"github.com/sadopc/flexr/internal/muscles"
	"github.com/sadopc/flexr/internal/store"
	"github.com/sadopc/flexr/internal/tui"
)

func main() {
	configPath := flag.String("config", "", "path to config.toml (default: user config dir)")
	seed := flag.Bool("seed", false, "insert demo workouts shifted to the current week and exit")
	importPath := flag.String("import", "", "import workouts from a FIT activity file and exit")
	logJSON := flag.Bool("log-json", false, "write the log file as JSON")
	flag.Parse()

	if err := run(*configPath, *seed, *importPath, *logJSON); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, seed bool, importPath string, logJSON bool) error {
	if configPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		configPath = p
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	closer, err := logging.Setup(logging.SetupParams{
		LogFile:       cfg.LogFile,
		LogLevel:      cfg.LogLevel,
		LogFormatJSON: logJSON,
	})
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	defer closer.Close()

	s, err := store.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()

	log.WithFields(log.Fields{"db": cfg.DBPath, "config": configPath}).Info("flexr starting")

	if err := s.SeedSettings(map[string]string{
		store.SettingWeightUnit:     cfg.WeightUnit,
		store.SettingHighlightColor: cfg.HighlightColor,
	}); err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}

	switch {
	case seed:
		n, err := s.SeedDemo(time.Now())
		if err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
		fmt.Printf("Inserted %d demo workouts\n", n)
		return nil

	case importPath != "":
		return importFIT(s, importPath)
	}

	app := tui.NewApp(s, muscles.Default(), catalog.Default())
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.WithError(err).Error("tui exited")
		return err
	}
	return nil
}

func importFIT(s *store.Store, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	recs, err := fitimport.Import(f, muscles.Default())
	if err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}

	for _, rec := range recs {
		saved, err := s.CreateLog(rec, store.SourceFIT)
		if err != nil {
			return fmt.Errorf("save %q: %w", rec.Name, err)
		}
		fmt.Printf("Imported %s  %s  %d muscles\n",
			saved.PerformedAt.Local().Format("2006-01-02 15:04"), saved.Name, len(saved.Muscles))
	}
	log.WithFields(log.Fields{"file": path, "logs": len(recs)}).Info("imported FIT file")
	return nil
}
