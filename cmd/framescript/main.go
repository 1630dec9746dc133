// Command framescript is the CLI entrypoint for the zone-scoped filtering
// toolkit. It parses flags, validates configuration, and runs one of three
// modes: resolve (print a parameter bundle), report (diff two stat streams),
// or check (validate the profile directory).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/backmassage/framescript/internal/check"
	"github.com/backmassage/framescript/internal/config"
	"github.com/backmassage/framescript/internal/display"
	"github.com/backmassage/framescript/internal/frameranges"
	"github.com/backmassage/framescript/internal/logging"
	"github.com/backmassage/framescript/internal/params"
	"github.com/backmassage/framescript/internal/profile"
	"github.com/backmassage/framescript/internal/report"
	"github.com/backmassage/framescript/internal/stats"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap. The logger doesn't exist yet, so errors go
	// directly to stderr via fmt. Once NewLogger succeeds, all output goes
	// through the logger for consistent formatting and log-file capture.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "framescript: %v\n", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "framescript: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "framescript: %v\n", err)
		return 1
	}
	defer log.Close()

	display.PrintBanner()

	if cfg.Mode == config.ModeCheck {
		if check.RunCheck(&cfg, log) > 0 {
			return 1
		}
		return 0
	}

	// Phase 2: Signal handling. Cancel the context on SIGINT/SIGTERM so a
	// running report stops between frames.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, stopping")
		cancel()
	}()

	store, err := profile.Load(profile.FileSource{Dir: cfg.ProfileDir})
	if err != nil {
		log.Error("Profile load failed: %v", err)
		return 1
	}

	switch cfg.Mode {
	case config.ModeResolve:
		return runResolve(&cfg, store, log)
	case config.ModeReport:
		return runReport(ctx, &cfg, store, log)
	}
	return 0
}

// runResolve prints the fully resolved bundle for one block, exercising the
// whole precedence chain: defaults, main profile, zone profile, overrides.
func runResolve(cfg *config.Config, store *profile.Store, log *logging.Logger) int {
	overrides := params.Overrides{}
	for _, arg := range cfg.Overrides {
		key, val, err := params.ParseOverride(arg)
		if err != nil {
			log.Error("%v", err)
			return 1
		}
		overrides[key] = val
	}

	bundle, err := params.ResolveAny(store, cfg.Block, cfg.Zone, overrides)
	if err != nil {
		log.Error("%v", err)
		return 1
	}

	out, err := display.FormatBundle(bundle)
	if err != nil {
		log.Error("%v", err)
		return 1
	}

	log.Info("Block %q zone %q:", cfg.Block, cfg.Zone)
	fmt.Print(out)
	return 0
}

// runReport diffs two stat streams from the dump file and appends the
// differing ranges to the report file.
func runReport(ctx context.Context, cfg *config.Config, store *profile.Store, log *logging.Logger) int {
	fp, err := stats.OpenFile(cfg.StatsFile)
	if err != nil {
		log.Error("%v", err)
		return 1
	}

	var prov stats.Provider = fp
	if cfg.CachePath != "" {
		cache, err := stats.OpenCache(cfg.CachePath, fp)
		if err != nil {
			log.Error("%v", err)
			return 1
		}
		defer cache.Close()
		prov = cache
	}

	tagA, tagB := stats.Tag(cfg.TagA), stats.Tag(cfg.TagB)
	lenA, lenB := fp.Frames(tagA), fp.Frames(tagB)

	// The engine rejects unequal lengths; trim both streams to the shorter
	// one up front, as the comparison is only meaningful where both exist.
	total := lenA
	if lenB < lenA {
		total = lenB
	}
	if lenA != lenB {
		log.Warn("Streams differ in length (%d vs %d frames), comparing first %d", lenA, lenB, total)
	}

	var exclude *frameranges.Set
	if cfg.ExcludeMap != "" {
		specs := store.Map(cfg.ExcludeMap, cfg.Episode)
		if specs == nil {
			log.Error("Exclusion map %q has no entry for episode %q", cfg.ExcludeMap, cfg.Episode)
			return 1
		}
		exclude = frameranges.NewSet(specs)
		log.Debug("Excluding %s", display.FormatSpecs(specs))
	}

	res, err := report.Compare(ctx, prov, tagA, tagB, total, total, report.Options{
		Threshold: cfg.Threshold,
		Exclude:   exclude,
		Name:      cfg.Episode,
	})
	if err != nil {
		log.Error("%v", err)
		return 1
	}

	if err := report.Append(cfg.ReportFile, res); err != nil {
		log.Error("%v", err)
		return 1
	}

	log.Info("Run %s: %s differing", res.RunID, display.FormatPercent(len(res.Frames), res.Total))
	log.Info("Diff stats: mean=%.3f stddev=%.3f max=%.3f", res.Mean, res.StdDev, res.Max)
	if len(res.Specs) > 0 {
		log.Info("Ranges: %s", display.FormatSpecs(res.Specs))
	} else {
		log.Success("No differences above threshold %g", cfg.Threshold)
	}
	log.Success("Appended to %s", cfg.ReportFile)
	return 0
}
