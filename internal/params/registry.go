package params

import (
	"reflect"
	"sort"

	"github.com/backmassage/framescript/internal/profile"
)

// blockDefaults maps each block name to a constructor of its default bundle.
// Returning any lets callers that only print or validate a bundle stay
// generic; typed callers use Resolve with the concrete Default constructor.
var blockDefaults = map[string]func() any{
	"aa":       func() any { return DefaultAA() },
	"filt":     func() any { return DefaultFilter() },
	"dehalo":   func() any { return DefaultDehalo() },
	"repair":   func() any { return DefaultRepair() },
	"linedark": func() any { return DefaultLineDark() },
	"sharp":    func() any { return DefaultSharp() },
	"edgefix":  func() any { return DefaultEdgeFix() },
	"crop":     func() any { return DefaultCrop() },
	"qtgmc":    func() any { return DefaultQTGMC() },
	"temporal": func() any { return DefaultTemporal() },
}

// KnownBlocks returns the block names with compiled-in schemas, sorted.
func KnownBlocks() []string {
	names := make([]string, 0, len(blockDefaults))
	for name := range blockDefaults {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// KnownBlock reports whether a schema exists for the block name.
func KnownBlock(name string) bool {
	_, ok := blockDefaults[name]
	return ok
}

// ResolveAny resolves a block by name through the same precedence chain as
// [Resolve], without the caller naming the concrete bundle type. Used by the
// CLI for printing and by profile validation.
func ResolveAny(store *profile.Store, block, zone string, overrides Overrides) (any, error) {
	mk, ok := blockDefaults[block]
	if !ok {
		return nil, &ConfigurationError{Block: block, Reason: "no schema for this block"}
	}

	// Box the default bundle into an addressable value for the merge.
	def := mk()
	ptr := reflect.New(reflect.TypeOf(def))
	ptr.Elem().Set(reflect.ValueOf(def))

	if err := resolveInto(ptr.Interface(), store, block, zone, overrides); err != nil {
		return nil, err
	}
	return ptr.Elem().Interface(), nil
}
