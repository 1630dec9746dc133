package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into mode selection, profile resolution, report inputs,
// engine tuning, and display.

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// version is shown in --version and help; override at build time with -ldflags "-X main.version=...".
var version = "1.0.0-dev"

// ParseFlags parses os.Args into cfg. On --help or --version it prints and exits.
// On error it returns non-nil (e.g. unknown flag, missing positional args).
func ParseFlags(cfg *Config) error {
	fs := flag.NewFlagSet("framescript", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs) }

	var util utilityFlags

	defineModeFlags(fs, cfg)
	defineProfileFlags(fs, cfg)
	defineReportFlags(fs, cfg)
	defineEngineFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &util)

	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	if util.noColor {
		cfg.ColorMode = ColorNever
	} else if util.forceColor {
		cfg.ColorMode = ColorAlways
	}

	if util.showHelp {
		printUsage(fs)
		os.Exit(0)
	}
	if util.showVersion {
		fmt.Fprintln(os.Stdout, "framescript v"+version)
		os.Exit(0)
	}

	return parsePositionalArgs(fs, cfg)
}

// utilityFlags holds boolean flags that are applied after Parse.
type utilityFlags struct {
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// defineModeFlags registers the run-mode selector.
func defineModeFlags(fs *flag.FlagSet, cfg *Config) {
	fs.Var(&runModeValue{&cfg.Mode}, "mode", "Run mode: resolve | report | check")
}

// defineProfileFlags registers the profile-resolution flags.
func defineProfileFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.ProfileDir, "profiles", cfg.ProfileDir, "Directory holding settings/chapters/maps YAML")
	fs.StringVar(&cfg.Zone, "zone", cfg.Zone, "Zone profile to apply (default: main)")
	fs.Var(&stringListValue{&cfg.Overrides}, "set", "Override one field, key=value (repeatable)")
	fs.StringVar(&cfg.Episode, "episode", "", "Episode name for chapter lookup and report labels")
}

// defineReportFlags registers the report-mode inputs.
func defineReportFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.StatsFile, "stats", "", "JSON-lines stat dump for report mode")
	fs.StringVar(&cfg.CachePath, "cache", "", "SQLite stat cache path (optional)")
	fs.StringVar(&cfg.TagA, "tag-a", cfg.TagA, "Stat tag of the first stream")
	fs.StringVar(&cfg.TagB, "tag-b", cfg.TagB, "Stat tag of the second stream")
	fs.StringVar(&cfg.ExcludeMap, "exclude", "", "Maps key naming ranges excluded from the report")
	fs.StringVar(&cfg.ReportFile, "out", cfg.ReportFile, "Report file to append to")
}

// defineEngineFlags registers radius, threshold, workers.
func defineEngineFlags(fs *flag.FlagSet, cfg *Config) {
	fs.IntVar(&cfg.Radius, "radius", cfg.Radius, "Decision window radius")
	fs.Float64Var(&cfg.Threshold, "threshold", cfg.Threshold, "Minimum difference reported")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Frame graph worker count")
}

// defineDisplayFlags registers --color, --no-color, verbose, --log, version/help.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, util *utilityFlags) {
	fs.BoolVar(&util.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&util.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.StringVar(&cfg.LogFile, "log", "", "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")
	fs.BoolVar(&util.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&util.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&util.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&util.showHelp, "h", false, "Same as --help")
}

// parsePositionalArgs sets Block from the single positional arg in resolve mode.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	switch cfg.Mode {
	case ModeResolve:
		if len(args) != 1 {
			return fmt.Errorf("resolve mode needs exactly one block name")
		}
		cfg.Block = args[0]
	default:
		if len(args) != 0 {
			return fmt.Errorf("unexpected arguments: %s", strings.Join(args, " "))
		}
	}
	return nil
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(fs *flag.FlagSet) {
	const col1 = 28 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "framescript v" + version + " - zone-scoped filtering pipeline tool"},
		{"", ""},
		{"  framescript [OPTIONS] <block>", ""},
		{"  framescript --mode report --stats <dump> [OPTIONS]", ""},
		{"  framescript --mode check [OPTIONS]", ""},
		{"", ""},
		{"Mode", ""},
		{"  --mode <name>", "resolve | report | check (default: resolve)"},
		{"", ""},
		{"Profiles", ""},
		{"  --profiles <dir>", "Profile directory (default: .)"},
		{"  --zone <name>", "Zone profile to apply (default: main)"},
		{"  --set <key=value>", "Override one field; repeatable"},
		{"  --episode <name>", "Episode for chapter lookup / report label"},
		{"", ""},
		{"Report", ""},
		{"  --stats <path>", "JSON-lines stat dump"},
		{"  --cache <path>", "SQLite stat cache (optional)"},
		{"  --tag-a <tag>", "First stream tag (default: a/plane_avg)"},
		{"  --tag-b <tag>", "Second stream tag (default: b/plane_avg)"},
		{"  --exclude <map>", "Maps key with ranges to exclude"},
		{"  --out <path>", "Report file (default: diff.txt)"},
		{"", ""},
		{"Engine", ""},
		{"  --radius <n>", "Decision window radius (default: 3)"},
		{"  --threshold <x>", "Minimum difference reported (default: 72)"},
		{"  --workers <n>", "Frame graph workers (default: 4)"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// flag.Value adapters so enum types and repeated flags work with flag.Var.

type runModeValue struct{ p *RunMode }

func (r *runModeValue) String() string { return string(*r.p) }
func (r *runModeValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "resolve":
		*r.p = ModeResolve
	case "report":
		*r.p = ModeReport
	case "check":
		*r.p = ModeCheck
	default:
		return fmt.Errorf("invalid mode %q (use 'resolve', 'report' or 'check')", s)
	}
	return nil
}

type stringListValue struct{ p *[]string }

func (s *stringListValue) String() string { return strings.Join(*s.p, ",") }
func (s *stringListValue) Set(v string) error {
	*s.p = append(*s.p, v)
	return nil
}
