// Package config loads the YAML configuration shared by the vamonos
// binaries.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Mr-Dark-debug/vamonos/internal/array"
	"github.com/Mr-Dark-debug/vamonos/internal/widget"
)

//go:embed scripts/selection_sort.lua
var selectionSort string

// Config is the top-level configuration.
type Config struct {
	Widget    WidgetSection     `yaml:"widget"`
	Algorithm AlgorithmSection  `yaml:"algorithm"`
	Styles    map[string]string `yaml:"styles"`

	DBPath        string        `yaml:"db_path"`
	LogPath       string        `yaml:"log_path"`
	FlashDuration time.Duration `yaml:"flash_duration"`
}

// WidgetSection configures the live array. Empty cells in Default are
// written as null.
type WidgetSection struct {
	VarName         string     `yaml:"var_name"`
	Default         []*float64 `yaml:"default"`
	IgnoreIndexZero bool       `yaml:"ignore_index_zero"`
	Rules           [][]string `yaml:"rules"`
	ShowIndices     []string   `yaml:"show_indices"`
	ShowChanges     []string   `yaml:"show_changes"`
}

// AlgorithmSection names the script to run. Script is a file path and
// takes precedence over the inline Source.
type AlgorithmSection struct {
	Name     string `yaml:"name"`
	Script   string `yaml:"script"`
	Source   string `yaml:"source"`
	MaxSteps int    `yaml:"max_steps"`
}

// ============================================================
// Defaults
// ============================================================

// DefaultConfig returns the selection sort demo.
func DefaultConfig() Config {
	homeDir, _ := os.UserHomeDir()
	dbPath := filepath.Join(homeDir, ".vamonos", "runs.db")

	return Config{
		Widget: WidgetSection{
			VarName:     "A",
			Default:     floats(6, 3, 1, 4, 1, 5, 9),
			Rules:       [][]string{{"<", "i", "shaded"}},
			ShowIndices: []string{"i", "m", "j"},
		},
		Algorithm: AlgorithmSection{
			Name:     "selection sort",
			Source:   selectionSort,
			MaxSteps: 10000,
		},
		Styles: map[string]string{
			"shaded":  "238",
			"changed": "#F59E0B",
			"editing": "#7C3AED",
		},
		DBPath:        dbPath,
		FlashDuration: 600 * time.Millisecond,
	}
}

func floats(vs ...float64) []*float64 {
	out := make([]*float64, len(vs))
	for i := range vs {
		out[i] = &vs[i]
	}
	return out
}

// ============================================================
// Loading
// ============================================================

// Load reads a YAML file over the defaults. Keys absent from the file
// keep their default values.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Algorithm.Script != "" && !filepath.IsAbs(cfg.Algorithm.Script) {
		cfg.Algorithm.Script = filepath.Join(filepath.Dir(path), cfg.Algorithm.Script)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the fields that cannot be defaulted.
func (c Config) Validate() error {
	if c.Widget.VarName == "" {
		return fmt.Errorf("validating config: widget.var_name is empty")
	}
	if _, err := c.rules(); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}
	for _, rt := range c.Widget.ShowChanges {
		switch widget.RenderType(rt) {
		case widget.RenderNext, widget.RenderPrev, widget.RenderJump:
		default:
			return fmt.Errorf("validating config: unknown render type %q", rt)
		}
	}
	return nil
}

// ============================================================
// Conversion
// ============================================================

// WidgetConfig converts the widget section.
func (c Config) WidgetConfig() (widget.Config, error) {
	rules, err := c.rules()
	if err != nil {
		return widget.Config{}, err
	}
	wc := widget.Config{
		Default:         values(c.Widget.Default),
		VarName:         c.Widget.VarName,
		IgnoreIndexZero: c.Widget.IgnoreIndexZero,
		Rules:           rules,
		ShowIndices:     c.Widget.ShowIndices,
	}
	// An explicit empty list disables change flags; only an absent key
	// falls back to the widget default.
	if c.Widget.ShowChanges != nil {
		wc.ShowChanges = make([]widget.RenderType, 0, len(c.Widget.ShowChanges))
	}
	for _, rt := range c.Widget.ShowChanges {
		wc.ShowChanges = append(wc.ShowChanges, widget.RenderType(rt))
	}
	return wc, nil
}

func (c Config) rules() ([]widget.Rule, error) {
	out := make([]widget.Rule, 0, len(c.Widget.Rules))
	for _, r := range c.Widget.Rules {
		if len(r) != 3 {
			return nil, fmt.Errorf("rule %v: expected [comparator, index, class]", r)
		}
		rule, err := widget.ParseRule(r[0], r[1], r[2])
		if err != nil {
			return nil, fmt.Errorf("rule %v: %w", r, err)
		}
		out = append(out, rule)
	}
	return out, nil
}

func values(ps []*float64) []array.Value {
	out := make([]array.Value, len(ps))
	for i, p := range ps {
		if p != nil {
			out[i] = array.Num(*p)
		}
	}
	return out
}

// AlgorithmSource returns the script text, reading Script if set.
func (c Config) AlgorithmSource() (string, error) {
	if c.Algorithm.Script == "" {
		return c.Algorithm.Source, nil
	}
	data, err := os.ReadFile(c.Algorithm.Script)
	if err != nil {
		return "", fmt.Errorf("reading algorithm script: %w", err)
	}
	return string(data), nil
}

// ParseInput parses a comma-separated array such as "6,,1". Blank and
// invalid entries become empty cells.
func ParseInput(s string) []array.Value {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]array.Value, len(parts))
	for i, p := range parts {
		out[i] = array.ParseText(p)
	}
	return out
}
