package utils

import "testing"

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"The Holdovers", "holdovers"},
		{"Amélie!", "amelie"},
		{"  Birdman   or (The Unexpected Virtue of Ignorance) ", "birdman or the unexpected virtue of ignorance"},
		{"The A Team", "team"},
		{"An American in Paris", "american in paris"},
		{"Theater Camp", "theater camp"},
		{"Le Fabuleux Destin d'Amélie Poulain", "le fabuleux destin damelie poulain"},
		{"!!!", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := NormalizeTitle(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if again := NormalizeTitle(got); again != got {
				t.Errorf("NormalizeTitle is not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestStripDiacritics(t *testing.T) {
	if got := StripDiacritics("Pedro Almodóvar"); got != "Pedro Almodovar" {
		t.Errorf("Expected Pedro Almodovar, got %q", got)
	}
	if got := StripDiacritics("Rustin"); got != "Rustin" {
		t.Errorf("Expected input unchanged, got %q", got)
	}
}
