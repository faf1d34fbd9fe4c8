// vamonos-tui — an editable live array that steps through an algorithm.
//
// Usage:
//
//	vamonos-tui [flags]
//
// Flags:
//
//	--config  YAML configuration file (default: built-in selection sort)
//	--db      Path to the run archive (default: ~/.vamonos/runs.db)
//	--record  Archive every run
//	--replay  Open a recorded run by ID instead of editing
//	--log     Write the debug log to this file
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Mr-Dark-debug/vamonos/internal/algorithm"
	"github.com/Mr-Dark-debug/vamonos/internal/config"
	"github.com/Mr-Dark-debug/vamonos/internal/database"
	"github.com/Mr-Dark-debug/vamonos/internal/tui"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	dbPath := flag.String("db", "", "Path to SQLite run archive")
	record := flag.Bool("record", false, "Archive every run")
	replay := flag.String("replay", "", "Replay a recorded run by ID")
	logPath := flag.String("log", "", "Debug log file")
	flag.Parse()

	cfg := config.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *logPath != "" {
		cfg.LogPath = *logPath
	}

	// stdout belongs to the TUI.
	if cfg.LogPath != "" {
		f, err := tea.LogToFile(cfg.LogPath, "vamonos")
		if err != nil {
			log.Fatalf("Failed to open log file %s: %v", cfg.LogPath, err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	wc, err := cfg.WidgetConfig()
	if err != nil {
		log.Fatalf("Invalid widget config: %v", err)
	}
	src, err := cfg.AlgorithmSource()
	if err != nil {
		log.Fatalf("Failed to load algorithm: %v", err)
	}

	opts := tui.Options{
		Widget: wc,
		Algorithm: algorithm.Runner{
			Name:     cfg.Algorithm.Name,
			Source:   src,
			MaxSteps: cfg.Algorithm.MaxSteps,
		},
		Styles:      cfg.Styles,
		Flash:       cfg.FlashDuration,
		Record:      *record,
		ReplayRunID: *replay,
	}

	if *record || *replay != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			log.Fatalf("Failed to create data directory: %v", err)
		}
		store, err := database.NewDBService(cfg.DBPath)
		if err != nil {
			log.Fatalf("Failed to open database at %s: %v", cfg.DBPath, err)
		}
		defer store.Close()
		opts.Store = store
	}

	log.Printf("[INFO] starting with %s, %d cells", cfg.Algorithm.Name, len(wc.Default))

	p := tea.NewProgram(tui.NewModel(opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
