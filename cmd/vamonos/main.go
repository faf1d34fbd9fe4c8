// vamonos — headless runs and the run archive.
//
// Usage:
//
//	vamonos <command> [flags]
//
// Commands:
//
//	run       Execute the algorithm and print its frames as JSON lines
//	runs      List recorded runs
//	frames    Print the frames of a recorded run
//	analyze   Report statistics for a recorded run
//	delete    Remove a recorded run and its frames
//	version   Print version information
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/tidwall/sjson"

	"github.com/Mr-Dark-debug/vamonos/internal/algorithm"
	"github.com/Mr-Dark-debug/vamonos/internal/analysis"
	"github.com/Mr-Dark-debug/vamonos/internal/array"
	"github.com/Mr-Dark-debug/vamonos/internal/config"
	"github.com/Mr-Dark-debug/vamonos/internal/database"
	"github.com/Mr-Dark-debug/vamonos/internal/frame"
	"github.com/Mr-Dark-debug/vamonos/internal/widget"
	"github.com/Mr-Dark-debug/vamonos/pkg/jsonutil"
	"github.com/Mr-Dark-debug/vamonos/pkg/timeutil"
)

var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "run":
		cmdRun()
	case "runs":
		cmdRuns()
	case "frames":
		cmdFrames()
	case "analyze":
		cmdAnalyze()
	case "delete":
		cmdDelete()
	case "version":
		fmt.Printf("vamonos v%s (commit: %s, built: %s)\n", Version, GitCommit, BuildTime)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`vamonos — step through algorithms on a live array

Usage:
  vamonos <command> [flags]

Commands:
  run        Execute the algorithm and print its frames as JSON lines
  runs       List recorded runs
  frames     Print the frames of a recorded run
  analyze    Report statistics for a recorded run
  delete     Remove a recorded run and its frames
  version    Print version information

Run 'vamonos <command> --help' for details on each command.`)
}

// loadConfig reads the file at path, or the built-in defaults when path
// is empty, and applies a --db override.
func loadConfig(path, dbPath string) config.Config {
	cfg := config.DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	return cfg
}

func openStore(path string) *database.DBService {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}
	store, err := database.NewDBService(path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	return store
}

// nopRenderer lets the widget register its namespace without a screen.
type nopRenderer struct{}

func (nopRenderer) ResizeColumns(int) {}
func (nopRenderer) SetColumnClasses(int, []string) {}
func (nopRenderer) SetColumnText(int, string) {}
func (nopRenderer) SetAnnotation(int, string) {}
func (nopRenderer) ReplayChangeAnimation(int) {}

// cmdRun executes the configured algorithm once.
func cmdRun() {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	configPath := fs.String("config", "", "YAML configuration file")
	input := fs.String("input", "", "Comma-separated array input, e.g. 6,3,1")
	dbPath := fs.String("db", "", "Path to SQLite run archive")
	record := fs.Bool("record", false, "Archive the run")
	prettyOut := fs.Bool("pretty", false, "Indent and color each frame")
	timeout := fs.Duration("timeout", 10*time.Second, "Maximum run time")
	fs.Parse(os.Args[2:])

	cfg := loadConfig(*configPath, *dbPath)
	wc, err := cfg.WidgetConfig()
	if err != nil {
		log.Fatalf("Invalid widget config: %v", err)
	}
	if *input != "" {
		wc.Default = config.ParseInput(*input)
		if wc.IgnoreIndexZero {
			wc.Default = append([]array.Value{array.Empty}, wc.Default...)
		}
	}
	src, err := cfg.AlgorithmSource()
	if err != nil {
		log.Fatalf("Failed to load algorithm: %v", err)
	}

	w := widget.New(wc, nopRenderer{})
	ns := frame.NewNamespace()
	w.Setup(ns)

	runner := algorithm.Runner{Name: cfg.Algorithm.Name, Source: src, MaxSteps: cfg.Algorithm.MaxSteps}
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	steps, runErr := runner.Run(ctx, ns)

	if *record {
		store := openStore(cfg.DBPath)
		defer store.Close()
		run := database.NewRun(runner.Name, wc.VarName, w.Values())
		if err := database.SaveRun(store, run, steps, runErr); err != nil {
			log.Fatalf("Failed to record run: %v", err)
		}
		fmt.Fprintf(os.Stderr, "recorded run %s\n", run.RunID)
	}
	if runErr != nil {
		log.Fatalf("Run failed: %v", runErr)
	}
	if len(steps) > 0 {
		if err := w.CheckFrame(steps[0].Frame); err != nil {
			log.Fatalf("Invalid run: %v", err)
		}
	}

	for _, st := range steps {
		printStep(st.Seq, st.Line, st.Frame, *prettyOut)
	}
}

// printStep writes one step as {"seq":..,"line":..,"frame":{..}}.
func printStep(seq, line int, f frame.Frame, prettyOut bool) {
	payload, err := frame.Encode(f)
	if err != nil {
		log.Fatalf("Failed to encode frame %d: %v", seq, err)
	}
	printRecord(seq, line, payload, prettyOut)
}

func printRecord(seq, line int, payload []byte, prettyOut bool) {
	out := []byte("{}")
	out, _ = sjson.SetBytes(out, "seq", seq)
	out, _ = sjson.SetBytes(out, "line", line)
	out, err := sjson.SetRawBytes(out, "frame", payload)
	if err != nil {
		log.Fatalf("Failed to encode step %d: %v", seq, err)
	}
	if prettyOut {
		out = jsonutil.Pretty(out, true)
		os.Stdout.Write(out)
		return
	}
	fmt.Println(string(out))
}

// cmdRuns lists recorded runs, most recent first.
func cmdRuns() {
	fs := flag.NewFlagSet("runs", flag.ExitOnError)
	dbPath := fs.String("db", "", "Path to SQLite run archive")
	algo := fs.String("algorithm", "", "Filter by algorithm name")
	status := fs.String("status", "", "Filter by status: completed, failed")
	limit := fs.Int("limit", 20, "Maximum results")
	asJSON := fs.Bool("json", false, "Print JSON instead of a table")
	fs.Parse(os.Args[2:])

	cfg := loadConfig("", *dbPath)
	store := openStore(cfg.DBPath)
	defer store.Close()

	filter := database.RunFilter{Limit: *limit}
	if *algo != "" {
		filter.Algorithm = algo
	}
	if *status != "" {
		filter.Status = status
	}
	runs, err := store.QueryRuns(filter)
	if err != nil {
		log.Fatalf("Query failed: %v", err)
	}

	if *asJSON {
		b, _ := json.MarshalIndent(runs, "", "  ")
		fmt.Println(string(b))
		return
	}

	now := time.Now()
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tALGORITHM\tSTATUS\tFRAMES\tINPUT\tSTARTED")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
			r.RunID, r.Algorithm, r.Status, r.StepCount, r.Input, timeutil.Age(r.StartTime, now))
	}
	tw.Flush()
}

// cmdFrames prints the stored frames of a run, or their diffs.
func cmdFrames() {
	fs := flag.NewFlagSet("frames", flag.ExitOnError)
	runID := fs.String("run", "", "Run ID (required)")
	dbPath := fs.String("db", "", "Path to SQLite run archive")
	prettyOut := fs.Bool("pretty", false, "Indent and color each frame")
	diff := fs.Bool("diff", false, "Print only what changed between frames")
	fs.Parse(os.Args[2:])

	if *runID == "" {
		fmt.Fprintln(os.Stderr, "Error: --run is required")
		fs.Usage()
		os.Exit(1)
	}

	cfg := loadConfig("", *dbPath)
	store := openStore(cfg.DBPath)
	defer store.Close()

	if _, err := store.GetRun(*runID); err != nil {
		log.Fatalf("Failed to load run: %v", err)
	}
	records, err := store.LoadFrames(*runID)
	if err != nil {
		log.Fatalf("Failed to load frames: %v", err)
	}

	var prev []byte
	for _, rec := range records {
		payload := []byte(rec.Payload)
		if !*diff {
			printRecord(rec.Seq, rec.Line, payload, *prettyOut)
			continue
		}
		changes, err := jsonutil.Diff(prev, payload)
		if err != nil {
			log.Fatalf("Failed to diff frame %d: %v", rec.Seq, err)
		}
		prev = payload
		fmt.Printf("#%d line %d\n", rec.Seq, rec.Line)
		for _, c := range changes {
			switch c.Type {
			case "add":
				fmt.Printf("  + %s = %s\n", c.Path, c.NewValue)
			case "delete":
				fmt.Printf("  - %s (was %s)\n", c.Path, c.OldValue)
			default:
				fmt.Printf("  ~ %s: %s -> %s\n", c.Path, c.OldValue, c.NewValue)
			}
		}
	}
}

// cmdAnalyze runs the analysis passes on a recorded run.
func cmdAnalyze() {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	runID := fs.String("run", "", "Run ID to analyze (required)")
	configPath := fs.String("config", "", "YAML configuration file")
	dbPath := fs.String("db", "", "Path to SQLite run archive")
	outputFormat := fs.String("format", "markdown", "Output format: markdown, json")
	fs.Parse(os.Args[2:])

	if *runID == "" {
		fmt.Fprintln(os.Stderr, "Error: --run is required")
		fs.Usage()
		os.Exit(1)
	}

	cfg := loadConfig(*configPath, *dbPath)
	store := openStore(cfg.DBPath)
	defer store.Close()

	first := 0
	if cfg.Widget.IgnoreIndexZero {
		first = 1
	}
	report, err := analysis.NewAnalyzer(store).FullAnalysis(*runID, first)
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	switch *outputFormat {
	case "json":
		b, _ := json.MarshalIndent(report, "", "  ")
		fmt.Println(string(b))
	case "markdown":
		fmt.Print(analysis.FormatReport(report))
	default:
		fmt.Fprintf(os.Stderr, "Unknown format: %s\n", *outputFormat)
		os.Exit(1)
	}
}

// cmdDelete removes one run from the archive.
func cmdDelete() {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	runID := fs.String("run", "", "Run ID to delete (required)")
	dbPath := fs.String("db", "", "Path to SQLite run archive")
	fs.Parse(os.Args[2:])

	if *runID == "" {
		fmt.Fprintln(os.Stderr, "Error: --run is required")
		fs.Usage()
		os.Exit(1)
	}

	cfg := loadConfig("", *dbPath)
	store := openStore(cfg.DBPath)
	defer store.Close()

	if err := store.DeleteRun(*runID); err != nil {
		log.Fatalf("Failed to delete run: %v", err)
	}
	fmt.Printf("Deleted run %s\n", *runID)
}
