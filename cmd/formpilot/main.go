package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/themobileprof/formpilot/internal/config"
	"github.com/themobileprof/formpilot/internal/fixtures"
	"github.com/themobileprof/formpilot/internal/questionnaire"
	"github.com/themobileprof/formpilot/internal/sessionlog"
	"github.com/themobileprof/formpilot/internal/store"
	"github.com/themobileprof/formpilot/internal/ui"
	"github.com/themobileprof/formpilot/pkg/models"
)

var (
	version     = "1.0.0"
	configPath  string
	dbPath      string
	initDB      bool
	resetDB     bool
	loadPath    string
	runID       string
	lintPath    string
	showVersion bool
)

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	defaultConfigPath := filepath.Join(homeDir, ".formpilot", "config.yaml")

	flag.StringVar(&configPath, "config", defaultConfigPath, "Path to configuration file")
	flag.StringVar(&dbPath, "db", "", "Path to SQLite database (overrides config)")
	flag.BoolVar(&initDB, "init", false, "Initialize database and import the demo questionnaire")
	flag.BoolVar(&resetDB, "reset", false, "Reset database (delete and reinitialize)")
	flag.StringVar(&loadPath, "load", "", "Import questionnaires from a file or directory")
	flag.StringVar(&runID, "run", "", "Run a questionnaire session by id")
	flag.StringVar(&lintPath, "lint", "", "Lint a questionnaire file and exit")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
}

func main() {
	flag.Parse()

	if showVersion {
		fmt.Printf("FormPilot v%s\n", version)
		fmt.Println("Interactive questionnaire runner")
		return
	}

	if lintPath != "" {
		if err := lintFile(lintPath); err != nil {
			log.Fatalf("Lint failed: %v", err)
		}
		return
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if dbPath == "" {
		dbPath = cfg.DBPath
	}

	if resetDB {
		if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
			log.Fatalf("Reset failed: %v", err)
		}
		fmt.Println("Database reset.")
	}

	st, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer st.Close()

	if initDB || resetDB {
		if err := importDemo(st); err != nil {
			log.Fatalf("Initialization failed: %v", err)
		}
		if !resetDB {
			return
		}
	}

	if loadPath != "" {
		if err := importPath(st, loadPath); err != nil {
			log.Fatalf("Failed to import questionnaires: %v", err)
		}
		return
	}

	sessionLog := sessionlog.New(cfg.SessionLogPath)

	if runID != "" {
		if err := runOnce(st, sessionLog, cfg, runID); err != nil {
			log.Fatalf("Session failed: %v", err)
		}
		return
	}

	repl := ui.NewREPL(st, sessionLog, cfg.ColorOutput)
	if err := repl.Start(); err != nil {
		log.Fatalf("REPL error: %v", err)
	}
}

// lintFile checks a definition without touching the database
func lintFile(path string) error {
	q, err := questionnaire.LoadFromFile(path)
	if err != nil {
		return err
	}
	result := questionnaire.Lint(q)
	for _, e := range result.Errors {
		fmt.Printf("error: [%s] %s\n", e.Code, e.Message)
	}
	for _, w := range result.Warnings {
		fmt.Printf("warning: [%s] %s\n", w.Code, w.Message)
	}
	if !result.IsValid {
		return fmt.Errorf("%d error(s) in %s", len(result.Errors), path)
	}
	fmt.Printf("✓ %s is valid\n", path)
	return nil
}

// importDemo imports the built-in demo questionnaire
func importDemo(st *store.Store) error {
	demo, err := fixtures.Demo()
	if err != nil {
		return err
	}
	if err := st.ImportQuestionnaire(demo); err != nil {
		return err
	}
	fmt.Printf("Imported demo questionnaire %q. Start it with: run %s\n", demo.ID, demo.ID)
	return nil
}

// importPath imports a single YAML file or every questionnaire in a directory
func importPath(st *store.Store, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if info.IsDir() {
		qs, err := questionnaire.LoadDir(path)
		if err != nil {
			return err
		}
		for _, q := range qs {
			if err := importOne(st, q); err != nil {
				return err
			}
		}
		return nil
	}

	q, err := questionnaire.LoadFromFile(path)
	if err != nil {
		return err
	}
	return importOne(st, q)
}

// importOne lints then imports a single questionnaire
func importOne(st *store.Store, q *models.Questionnaire) error {
	result := questionnaire.Lint(q)
	for _, w := range result.Warnings {
		fmt.Printf("warning: [%s] %s\n", w.Code, w.Message)
	}
	if !result.IsValid {
		for _, e := range result.Errors {
			fmt.Printf("error: [%s] %s\n", e.Code, e.Message)
		}
		return fmt.Errorf("%q has %d error(s)", q.ID, len(result.Errors))
	}
	if err := st.ImportQuestionnaire(q); err != nil {
		return err
	}
	fmt.Printf("Imported %s (v%s)\n", q.ID, q.Version)
	return nil
}

// runOnce runs a single session outside the REPL
func runOnce(st *store.Store, sessionLog *sessionlog.Logger, cfg *config.Config, id string) error {
	q, err := st.GetQuestionnaire(id)
	if err != nil {
		return err
	}
	prompter := ui.NewPrompter(os.Stdin, os.Stdout, cfg.ColorOutput)
	runner := ui.NewRunner(prompter, st, sessionLog, os.Stdout)
	response, err := runner.Run(q)
	if err != nil {
		return err
	}
	fmt.Printf("Response %s recorded (%s).\n", response.ID, response.Status)
	return nil
}
