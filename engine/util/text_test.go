package util

import (
	"testing"
	"unicode/utf8"
)

func TestFitWidth(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"blue", 10, "blue"},
		{"barracks", 5, "barr~"},
		{"rød hær", 4, "rød~"},
		{"ünits", 1, "~"},
		{"anything", 0, ""},
	}
	for _, tt := range tests {
		got := FitWidth(tt.in, tt.width)
		if got != tt.want {
			t.Errorf("FitWidth(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("FitWidth(%q, %d) cut a rune: %q", tt.in, tt.width, got)
		}
	}
}
