// Package display provides human-readable formatting for CLI output: range
// lists in maps notation, resolved bundles, and small numeric helpers.
package display

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/backmassage/framescript/internal/frameranges"
)

// FormatSpecs renders a range list in the external maps notation,
// e.g. "[(0,24), 80, (100,120)]".
func FormatSpecs(specs []frameranges.Spec) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, s := range specs {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(s.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

// FormatBundle renders a resolved parameter bundle as YAML, the same notation
// the profile files use, so resolve output can be pasted back into a profile.
func FormatBundle(v interface{}) (string, error) {
	b, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("format bundle: %w", err)
	}
	return string(b), nil
}

// FormatPercent returns "part/total (p%)" guarding against a zero total.
func FormatPercent(part, total int) string {
	if total == 0 {
		return fmt.Sprintf("%d/0", part)
	}
	return fmt.Sprintf("%d/%d (%.1f%%)", part, total, float64(part)*100/float64(total))
}
