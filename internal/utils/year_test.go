package utils

import (
	"errors"
	"testing"
)

func TestParseFilmYear(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"2023", 2023, false},
		{" (2009) ", 2009, false},
		{"1927/28", 1928, false},
		{"1927/1928", 1928, false},
		{"1932-33", 1933, false},
		{"1999/00", 2000, false},
		{"2023-05-12", 2023, false},
		{"", 0, true},
		{"unknown", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseFilmYear(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrNoYear) {
					t.Fatalf("Expected ErrNoYear, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseFilmYear(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestCeremonyYearFromFilmYear(t *testing.T) {
	year, err := CeremonyYearFromFilmYear("1927/28")
	if err != nil || year != 1929 {
		t.Errorf("Expected 1929, got %d (%v)", year, err)
	}

	year, err = CeremonyYearFromFilmYear("2023")
	if err != nil || year != 2024 {
		t.Errorf("Expected 2024, got %d (%v)", year, err)
	}

	if _, err := CeremonyYearFromFilmYear("n/a"); err == nil {
		t.Error("Expected an error for an unparseable year")
	}
}

func TestParseCeremonyYear(t *testing.T) {
	year, err := ParseCeremonyYear("2024 (96th)")
	if err != nil || year != 2024 {
		t.Errorf("Expected 2024, got %d (%v)", year, err)
	}
	if _, err := ParseCeremonyYear("96th"); err == nil {
		t.Error("Expected an error without a year")
	}
}

func TestExpectedFilmYear(t *testing.T) {
	if got := ExpectedFilmYear(2024); got != 2023 {
		t.Errorf("Expected 2023, got %d", got)
	}
	if got := ExpectedFilmYear(0); got != 0 {
		t.Errorf("Expected 0 for an unknown ceremony, got %d", got)
	}
}

func TestYearsWithin(t *testing.T) {
	tests := []struct {
		a, b, tolerance int
		want            bool
	}{
		{2023, 2024, 1, true},
		{2024, 2023, 1, true},
		{2020, 2023, 2, false},
		{2019, 2017, 2, true},
		{0, 2023, 5, false},
		{2023, 0, 5, false},
	}

	for _, tt := range tests {
		if got := YearsWithin(tt.a, tt.b, tt.tolerance); got != tt.want {
			t.Errorf("YearsWithin(%d, %d, %d) = %v, want %v", tt.a, tt.b, tt.tolerance, got, tt.want)
		}
	}
}
