// Package config holds runtime configuration: defaults, CLI flag parsing, and
// validation. Defaults match the values the filtering profiles were tuned
// against.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// --- Enum types for validated string fields ---

// RunMode selects what the binary does.
type RunMode string

const (
	ModeResolve RunMode = "resolve" // Resolve and print a parameter bundle (default).
	ModeReport  RunMode = "report"  // Diff two stat streams into the report file.
	ModeCheck   RunMode = "check"   // Validate the profile directory and exit.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig] and
// then mutated by [ParseFlags] before being passed (by pointer) to packages
// that need it. Fields are grouped by concern with inline documentation of
// defaults and fixed values.
type Config struct {
	Mode RunMode

	// Profile resolution.
	ProfileDir string   // Default: ".". Directory holding settings/chapters/maps YAML.
	Block      string   // Block name (positional arg in resolve mode).
	Zone       string   // Default: "main".
	Overrides  []string // Repeated --set key=value entries, highest precedence.

	// Episode/report inputs.
	Episode    string // Episode name used for chapter lookup and report labels.
	StatsFile  string // JSON-lines stat dump consumed by report mode.
	CachePath  string // Optional SQLite stat cache. Empty disables caching.
	TagA       string // Default: "a/plane_avg".
	TagB       string // Default: "b/plane_avg".
	ExcludeMap string // Optional maps key naming ranges excluded from the report.
	ReportFile string // Default: "diff.txt".

	// Engine tuning.
	Radius    int     // Default: 3. Symmetric decision window radius.
	Threshold float64 // Default: 72. Minimum |diff| reported.
	Workers   int     // Default: 4. Frame graph pool size.

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
}

// DefaultConfig returns a Config with all defaults applied. Used as the base
// before [ParseFlags] applies CLI overrides.
func DefaultConfig() Config {
	return Config{
		Mode:       ModeResolve,
		ProfileDir: ".",
		Zone:       "main",
		TagA:       "a/plane_avg",
		TagB:       "b/plane_avg",
		ReportFile: "diff.txt",
		Radius:     3,
		Threshold:  72,
		Workers:    4,
		Verbose:    false,
		ColorMode:  ColorAuto,
	}
}

// Validate checks enum fields and numeric ranges, plus the per-mode
// requirements (resolve needs a block name, report needs a stat dump).
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeResolve, ModeReport, ModeCheck:
		// valid
	default:
		return errors.New("invalid mode (use 'resolve', 'report' or 'check')")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.Radius < 1 {
		return fmt.Errorf("radius must be at least 1 (got %d)", c.Radius)
	}
	if c.Threshold < 0 {
		return fmt.Errorf("threshold must not be negative (got %g)", c.Threshold)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1 (got %d)", c.Workers)
	}

	for _, o := range c.Overrides {
		if !strings.Contains(o, "=") {
			return fmt.Errorf("invalid override %q (use key=value)", o)
		}
	}

	switch c.Mode {
	case ModeResolve:
		if c.Block == "" {
			return errors.New("resolve mode needs a block name")
		}
	case ModeReport:
		if c.StatsFile == "" {
			return errors.New("report mode needs --stats <dump>")
		}
	}
	return nil
}
