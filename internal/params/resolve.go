package params

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/backmassage/framescript/internal/profile"
)

// Overrides is an explicit call-site key→value mapping. It has the highest
// precedence in resolution; a key no schema field matches is a
// ConfigurationError.
type Overrides map[string]any

// Resolve builds a parameter bundle for one block through the four-level
// precedence chain, lowest to highest:
//
//  1. compiled-in defaults (the argument),
//  2. the block's "main" profile, when the store has one,
//  3. the named zone profile, when zone is set and not "main",
//  4. call-site overrides.
//
// Each level is a field-wise overwrite: fields the level does not mention
// keep their current value. Absence of the store, the block, or the "main"
// profile is the soft path and is skipped silently. A zone name the block
// does not define fails hard when the block defines any zones at all; a
// block with no zones skips the zone level silently. The returned bundle is
// a fresh value and no I/O happens after Resolve returns.
func Resolve[B any](defaults B, store *profile.Store, block, zone string, overrides Overrides) (B, error) {
	out := defaults
	if err := resolveInto(&out, store, block, zone, overrides); err != nil {
		var zero B
		return zero, err
	}
	return out, nil
}

// resolveInto runs the precedence chain against the bundle struct pointed to
// by dst. Shared by the typed and the by-name resolution paths.
func resolveInto(dst any, store *profile.Store, block, zone string, overrides Overrides) error {
	if store != nil {
		bp, ok := store.Block(block)
		if ok {
			if main, ok := bp["main"]; ok {
				if err := mergeInto(dst, main, block, "main"); err != nil {
					return err
				}
			}
			if zone != "" && zone != "main" {
				zp, ok := bp[zone]
				switch {
				case ok:
					if err := mergeInto(dst, zp, block, zone); err != nil {
						return err
					}
				case hasZones(bp):
					return &ConfigurationError{
						Block:  block,
						Zone:   zone,
						Reason: "zone not defined (block defines other zones; no silent fallback)",
					}
				default:
					// Block has only a "main" profile: zone selection is a
					// no-op, matching the soft-absence side of the contract.
				}
			}
		}
	}

	if len(overrides) > 0 {
		if err := mergeInto(dst, overrides, block, ""); err != nil {
			return err
		}
	}
	return nil
}

func hasZones(bp profile.BlockProfiles) bool {
	for name := range bp {
		if name != "main" {
			return true
		}
	}
	return false
}

// ParseOverride parses one "key=value" CLI argument into an override entry.
// Values are typed by trial: int, then float, then bool, falling back to
// string. Schema validation happens later, in Resolve.
func ParseOverride(arg string) (string, any, error) {
	key, val, ok := strings.Cut(arg, "=")
	if !ok || key == "" {
		return "", nil, fmt.Errorf("override %q: want key=value", arg)
	}
	if n, err := strconv.Atoi(val); err == nil {
		return key, n, nil
	}
	if f, err := strconv.ParseFloat(val, 64); err == nil {
		return key, f, nil
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return key, b, nil
	}
	return key, val, nil
}
