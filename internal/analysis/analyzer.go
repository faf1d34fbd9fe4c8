// Package analysis derives deterministic statistics from a recorded run.
//
// Key capabilities:
//   - Cell hotspot detection via Z-score over per-cell write counts
//   - Disorder trend via linear regression of inversions per step
//   - Breakpoint line profile
package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/Mr-Dark-debug/vamonos/internal/array"
	"github.com/Mr-Dark-debug/vamonos/internal/database"
	"github.com/Mr-Dark-debug/vamonos/internal/frame"
	"github.com/Mr-Dark-debug/vamonos/pkg/timeutil"
)

// Analyzer computes run statistics from the archive.
type Analyzer struct {
	store database.Store
}

// NewAnalyzer creates a new analysis engine backed by the given store.
func NewAnalyzer(store database.Store) *Analyzer {
	return &Analyzer{store: store}
}

// ============================================================
// Cell Hotspot Detection
// ============================================================

// CellHotspot is a cell written far more often than the others.
type CellHotspot struct {
	Index    int     `json:"index"`
	Writes   int     `json:"writes"`
	ZScore   float64 `json:"z_score"`
	Severity string  `json:"severity"` // "low", "medium", "high"
}

// cellWrites counts, per array index, the steps at which the cell's
// value differs from the previous step. Cells that appear by growth
// count as written.
func cellWrites(steps []frame.Step, varName string) []int {
	var counts []int
	var prev []array.Value
	for i, st := range steps {
		cur, _ := st.Frame.Array(varName)
		if len(cur) > len(counts) {
			counts = append(counts, make([]int, len(cur)-len(counts))...)
		}
		if i > 0 {
			for j := range cur {
				if j >= len(prev) || cur[j] != prev[j] {
					counts[j]++
				}
			}
		}
		prev = cur
	}
	return counts
}

// DetectCellHotspots returns the cells whose write count has a Z-score
// above 1.5, highest first.
func DetectCellHotspots(steps []frame.Step, varName string) []CellHotspot {
	counts := cellWrites(steps, varName)
	if len(counts) < 2 {
		return nil
	}

	var sum, sumSq float64
	for _, c := range counts {
		sum += float64(c)
		sumSq += float64(c * c)
	}
	n := float64(len(counts))
	mean := sum / n
	stddev := math.Sqrt(sumSq/n - mean*mean)
	if stddev == 0 {
		return nil
	}

	var hotspots []CellHotspot
	for i, c := range counts {
		z := (float64(c) - mean) / stddev
		if z <= 1.5 {
			continue
		}
		severity := "low"
		if z > 3.0 {
			severity = "high"
		} else if z > 2.0 {
			severity = "medium"
		}
		hotspots = append(hotspots, CellHotspot{
			Index:    i,
			Writes:   c,
			ZScore:   math.Round(z*100) / 100,
			Severity: severity,
		})
	}

	sort.Slice(hotspots, func(i, j int) bool {
		return hotspots[i].ZScore > hotspots[j].ZScore
	})
	return hotspots
}

// ============================================================
// Disorder Trend
// ============================================================

// DisorderReport tracks how far the array is from sorted over the run.
type DisorderReport struct {
	Initial   int     `json:"initial_inversions"`
	Final     int     `json:"final_inversions"`
	Slope     float64 `json:"slope"` // inversions per step
	Intercept float64 `json:"intercept"`
	RSquared  float64 `json:"r_squared"`
	Sorted    bool    `json:"sorted"`
}

// dataPoint is one (step, value) observation for regression analysis.
type dataPoint struct {
	x float64
	y float64
}

// inversions counts out-of-order pairs among the non-empty cells from
// first on.
func inversions(cells []array.Value, first int) int {
	var vals []float64
	for i := first; i < len(cells); i++ {
		if f, ok := cells[i].Float(); ok {
			vals = append(vals, f)
		}
	}
	n := 0
	for i := range vals {
		for j := i + 1; j < len(vals); j++ {
			if vals[i] > vals[j] {
				n++
			}
		}
	}
	return n
}

// AnalyzeDisorder fits a line through the inversion count of every step.
func AnalyzeDisorder(steps []frame.Step, varName string, first int) *DisorderReport {
	if len(steps) == 0 {
		return &DisorderReport{}
	}

	points := make([]dataPoint, 0, len(steps))
	for _, st := range steps {
		cells, _ := st.Frame.Array(varName)
		points = append(points, dataPoint{x: float64(st.Seq), y: float64(inversions(cells, first))})
	}

	slope, intercept, rSquared := linearRegression(points)
	final := int(points[len(points)-1].y)
	return &DisorderReport{
		Initial:   int(points[0].y),
		Final:     final,
		Slope:     math.Round(slope*1000) / 1000,
		Intercept: math.Round(intercept*100) / 100,
		RSquared:  math.Round(rSquared*1000) / 1000,
		Sorted:    final == 0,
	}
}

// linearRegression computes ordinary least squares regression.
// Returns slope (m), intercept (b), and R-squared goodness of fit.
func linearRegression(points []dataPoint) (slope, intercept, rSquared float64) {
	n := float64(len(points))
	if n < 2 {
		return 0, 0, 0
	}

	var sumX, sumY, sumXY, sumX2 float64
	for _, p := range points {
		sumX += p.x
		sumY += p.y
		sumXY += p.x * p.y
		sumX2 += p.x * p.x
	}

	denom := n*sumX2 - sumX*sumX
	if denom == 0 {
		return 0, sumY / n, 0
	}

	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n

	meanY := sumY / n
	var ssRes, ssTot float64
	for _, p := range points {
		predicted := slope*p.x + intercept
		ssRes += (p.y - predicted) * (p.y - predicted)
		ssTot += (p.y - meanY) * (p.y - meanY)
	}

	if ssTot == 0 {
		rSquared = 1.0
	} else {
		rSquared = 1 - ssRes/ssTot
	}
	return slope, intercept, rSquared
}

// ============================================================
// Line Profile
// ============================================================

// LineHits is how many frames a breakpoint line produced.
type LineHits struct {
	Line int `json:"line"`
	Hits int `json:"hits"`
}

// ProfileLines counts frames per breakpoint line, skipping the start and
// end frames.
func ProfileLines(steps []frame.Step) []LineHits {
	counts := make(map[int]int)
	for _, st := range steps {
		if st.Line == frame.LineStart || st.Line == frame.LineEnd {
			continue
		}
		counts[st.Line]++
	}
	out := make([]LineHits, 0, len(counts))
	for line, hits := range counts {
		out = append(out, LineHits{Line: line, Hits: hits})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Line < out[j].Line })
	return out
}

// ============================================================
// Full Report
// ============================================================

// AnalysisReport is the complete output of `vamonos analyze`.
type AnalysisReport struct {
	RunID       string          `json:"run_id"`
	Algorithm   string          `json:"algorithm"`
	GeneratedAt string          `json:"generated_at"`
	StartedAt   string          `json:"started_at"`
	Duration    string          `json:"duration"`
	Steps       int             `json:"steps"`
	Hotspots    []CellHotspot   `json:"cell_hotspots"`
	Disorder    *DisorderReport `json:"disorder"`
	Lines       []LineHits      `json:"lines"`
	Warnings    []string        `json:"warnings"`
}

// FullAnalysis loads a run and runs every analysis pass over it. first
// is the first displayed index of the bound array.
func (a *Analyzer) FullAnalysis(runID string, first int) (*AnalysisReport, error) {
	run, err := a.store.GetRun(runID)
	if err != nil {
		return nil, fmt.Errorf("loading run for analysis: %w", err)
	}
	steps, err := database.LoadSteps(a.store, runID)
	if err != nil {
		return nil, fmt.Errorf("loading frames for analysis: %w", err)
	}

	report := &AnalysisReport{
		RunID:       run.RunID,
		Algorithm:   run.Algorithm,
		GeneratedAt: time.Now().Format(time.RFC3339),
		StartedAt:   timeutil.Stamp(run.StartTime),
		Steps:       len(steps),
		Hotspots:    DetectCellHotspots(steps, run.VarName),
		Disorder:    AnalyzeDisorder(steps, run.VarName, first),
		Lines:       ProfileLines(steps),
	}
	report.Duration = timeutil.Elapsed(run.StartTime, run.EndTime)

	if run.Status == database.StatusFailed && run.Error != nil {
		report.Warnings = append(report.Warnings, fmt.Sprintf("Run failed: %s", *run.Error))
	}
	if d := report.Disorder; len(steps) > 0 && !d.Sorted {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("Array ends with %d inversions.", d.Final))
	}
	for _, h := range report.Hotspots {
		if h.Severity == "high" {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("Cell %d written %d times (Z-score: %.2f).", h.Index, h.Writes, h.ZScore))
		}
	}
	return report, nil
}

// FormatReport generates a human-readable markdown report.
func FormatReport(report *AnalysisReport) string {
	var b strings.Builder

	b.WriteString("# Run Analysis Report\n\n")
	fmt.Fprintf(&b, "**Run ID:** `%s`\n", report.RunID)
	fmt.Fprintf(&b, "**Algorithm:** %s\n", report.Algorithm)
	fmt.Fprintf(&b, "**Started:** %s\n", report.StartedAt)
	if report.Duration != "" {
		fmt.Fprintf(&b, "**Duration:** %s\n", report.Duration)
	}
	fmt.Fprintf(&b, "**Frames:** %d\n\n", report.Steps)

	if d := report.Disorder; d != nil {
		b.WriteString("## Disorder\n\n")
		fmt.Fprintf(&b, "- **Initial inversions:** %d\n", d.Initial)
		fmt.Fprintf(&b, "- **Final inversions:** %d\n", d.Final)
		fmt.Fprintf(&b, "- **Trend:** %.3f inversions/frame (R² %.3f)\n\n", d.Slope, d.RSquared)
	}

	if len(report.Hotspots) > 0 {
		b.WriteString("## Cell Hotspots\n\n")
		b.WriteString("| Index | Writes | Z-Score | Severity |\n")
		b.WriteString("|-------|--------|---------|----------|\n")
		for _, h := range report.Hotspots {
			fmt.Fprintf(&b, "| %d | %d | %.2f | %s |\n", h.Index, h.Writes, h.ZScore, h.Severity)
		}
		b.WriteString("\n")
	}

	if len(report.Lines) > 0 {
		b.WriteString("## Breakpoints\n\n")
		b.WriteString("| Line | Frames |\n")
		b.WriteString("|------|--------|\n")
		for _, l := range report.Lines {
			fmt.Fprintf(&b, "| %d | %d |\n", l.Line, l.Hits)
		}
		b.WriteString("\n")
	}

	if len(report.Warnings) > 0 {
		b.WriteString("## Warnings\n\n")
		for _, w := range report.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}
	return b.String()
}
