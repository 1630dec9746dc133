// Package check provides profile diagnostics (check mode): it loads the
// profile directory, validates every block and zone against the compiled-in
// schemas, and verifies the report inputs the configuration names. All of
// this reproduces the errors a pipeline run would hit, before any frame work
// starts.
package check

import (
	"os"
	"path/filepath"

	"github.com/backmassage/framescript/internal/config"
	"github.com/backmassage/framescript/internal/params"
	"github.com/backmassage/framescript/internal/profile"
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// RunCheck runs the check flow: load the profile directory, resolve every
// block/zone combination it defines, and verify report inputs. It is
// informational and does not stop on failure; the number of problems found
// is returned so the caller can set the exit status.
func RunCheck(cfg *config.Config, log Logger) int {
	log.Info("=== Profile Check ===")

	problems := 0
	store := checkProfiles(cfg, log, &problems)
	if store != nil {
		checkBlocks(cfg, store, log, &problems)
		checkExcludeMap(cfg, store, log, &problems)
	}
	checkStatsFile(cfg, log, &problems)

	if problems == 0 {
		log.Success("No problems found")
	} else {
		log.Error("%d problem(s) found", problems)
	}
	return problems
}

// checkProfiles loads the profile directory. Missing files are the documented
// soft path and only noted; parse failures are problems.
func checkProfiles(cfg *config.Config, log Logger, problems *int) *profile.Store {
	for _, name := range []string{"settings.yaml", "chapters.yaml", "maps.yaml"} {
		path := filepath.Join(cfg.ProfileDir, name)
		if _, err := os.Stat(path); err != nil {
			log.Warn("%s absent (resolution falls back to defaults)", name)
		}
	}

	store, err := profile.Load(profile.FileSource{Dir: cfg.ProfileDir})
	if err != nil {
		log.Error("Profile load failed: %v", err)
		*problems++
		return nil
	}
	log.Success("Profiles loaded from %s", cfg.ProfileDir)
	return store
}

// checkBlocks resolves every block the store defines, with every zone it
// defines plus the configured zone, so schema violations surface here.
func checkBlocks(cfg *config.Config, store *profile.Store, log Logger, problems *int) {
	blocks := store.Blocks()
	if len(blocks) == 0 {
		log.Info("No blocks defined")
		return
	}

	for _, block := range blocks {
		if !params.KnownBlock(block) {
			log.Error("Block %q: no schema with this name (known: %v)", block, params.KnownBlocks())
			*problems++
			continue
		}

		bp, _ := store.Block(block)
		zones := make([]string, 0, len(bp)+1)
		for zone := range bp {
			zones = append(zones, zone)
		}
		if cfg.Zone != "" {
			zones = append(zones, cfg.Zone)
		}

		ok := true
		for _, zone := range zones {
			if _, err := params.ResolveAny(store, block, zone, nil); err != nil {
				log.Error("Block %q zone %q: %v", block, zone, err)
				*problems++
				ok = false
			}
		}
		if ok {
			log.Success("Block %q: %d profile(s) resolve", block, len(bp))
		}
	}
}

// checkExcludeMap verifies the named exclusion map exists for the episode.
func checkExcludeMap(cfg *config.Config, store *profile.Store, log Logger, problems *int) {
	if cfg.ExcludeMap == "" {
		return
	}
	specs := store.Map(cfg.ExcludeMap, cfg.Episode)
	if specs == nil {
		log.Error("Exclusion map %q has no entry for episode %q", cfg.ExcludeMap, cfg.Episode)
		*problems++
		return
	}
	log.Success("Exclusion map %q: %d range(s)", cfg.ExcludeMap, len(specs))
}

// checkStatsFile verifies the stat dump exists when one is configured.
func checkStatsFile(cfg *config.Config, log Logger, problems *int) {
	if cfg.StatsFile == "" {
		return
	}
	if _, err := os.Stat(cfg.StatsFile); err != nil {
		log.Error("Stat dump missing: %s", cfg.StatsFile)
		*problems++
		return
	}
	log.Success("Stat dump present: %s", cfg.StatsFile)
}
