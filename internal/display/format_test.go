package display

import (
	"strings"
	"testing"

	"github.com/backmassage/framescript/internal/frameranges"
)

func TestFormatSpecs(t *testing.T) {
	tests := []struct {
		name  string
		specs []frameranges.Spec
		want  string
	}{
		{"empty", nil, "[]"},
		{"single frame", []frameranges.Spec{frameranges.Single(80)}, "[80]"},
		{"interval", []frameranges.Spec{frameranges.Interval(0, 24)}, "[(0,24)]"},
		{
			"mixed",
			[]frameranges.Spec{
				frameranges.Interval(0, 24),
				frameranges.Single(80),
				frameranges.Interval(100, 120),
			},
			"[(0,24), 80, (100,120)]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatSpecs(tt.specs)
			if got != tt.want {
				t.Errorf("FormatSpecs() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatBundle(t *testing.T) {
	type bundle struct {
		Strength float64 `yaml:"aa_str"`
		Zone     string  `yaml:"zone"`
	}
	out, err := FormatBundle(bundle{Strength: 0.3, Zone: "op"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "aa_str: 0.3") || !strings.Contains(out, "zone: op") {
		t.Errorf("FormatBundle() = %q", out)
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		name        string
		part, total int
		want        string
	}{
		{"zero total", 3, 0, "3/0"},
		{"half", 1, 2, "1/2 (50.0%)"},
		{"all", 10, 10, "10/10 (100.0%)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatPercent(tt.part, tt.total)
			if got != tt.want {
				t.Errorf("FormatPercent(%d, %d) = %q, want %q", tt.part, tt.total, got, tt.want)
			}
		})
	}
}
