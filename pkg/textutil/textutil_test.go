package textutil

import (
	"slices"
	"testing"
)

func TestTrimWhitespace(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"both sides", "  a  ", "a"},
		{"only spaces", "   ", ""},
		{"empty", "", ""},
		{"inner spaces kept", " Main St ", "Main St"},
		{"tabs kept", "\ta\t", "\ta\t"},
		{"no padding", "abc", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimWhitespace(tt.input); got != tt.want {
				t.Errorf("TrimWhitespace(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSplitFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"drops empty field", "1, 2,,3", []string{"1", "2", "3"}},
		{"node row", "1, 40.5, -73.2, 3", []string{"1", "40.5", "-73.2", "3"}},
		{"trailing blank field", "1,2,Main St,1.5,30, ", []string{"1", "2", "Main St", "1.5", "30"}},
		{"empty line", "", []string{}},
		{"only commas", " , ,", []string{}},
		{"name with spaces", "5,40.0,-73.0,City Hall", []string{"5", "40.0", "-73.0", "City Hall"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitFields(tt.input)
			if !slices.Equal(got, tt.want) {
				t.Errorf("SplitFields(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
