package services

import "testing"

func TestFormatDocNumber(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		year     int
		sequence int
		want     string
	}{
		{"first_quote", "COT", 2026, 1, "COT-2026-001"},
		{"double_digits", "COT", 2026, 42, "COT-2026-042"},
		{"corte", "CRT", 2025, 7, "CRT-2025-007"},
		{"beyond_padding", "CRT", 2026, 1234, "CRT-2026-1234"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatDocNumber(tt.prefix, tt.year, tt.sequence)
			if got != tt.want {
				t.Errorf("formatDocNumber(%q, %d, %d) = %q, want %q", tt.prefix, tt.year, tt.sequence, got, tt.want)
			}
		})
	}
}
