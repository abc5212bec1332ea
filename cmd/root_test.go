package cmd

import (
	"testing"

	"github.com/Hummusful/kitzer/internal/genre"
)

func TestResolveLang(t *testing.T) {
	tests := []struct {
		input string
		want  string
		err   bool
	}{
		{"he", "HE", false},
		{"HE-IL", "HE", false},
		{"hebrew", "HE", false},
		{"", "HE", false},
		{"en", "EN", false},
		{"en-GB", "EN", false},
		{"  en  ", "EN", false},
		{"fr", "", true},
		{"heb", "", true},
	}
	for _, tt := range tests {
		got, err := resolveLang(tt.input)
		if tt.err {
			if err == nil {
				t.Errorf("resolveLang(%q): expected error, got %q", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("resolveLang(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("resolveLang(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestBuildFilter(t *testing.T) {
	flagGenre, flagLang, flagDays = "electronic", "en", 14
	defer func() { flagGenre, flagLang, flagDays = "all", "he", 0 }()

	f, err := buildFilter()
	if err != nil {
		t.Fatalf("buildFilter: %v", err)
	}
	if f.Genre != genre.Electronic || f.Lang != "EN" || f.Days != 14 {
		t.Errorf("buildFilter = %+v", f)
	}
}

func TestBuildFilterRejectsBadGenre(t *testing.T) {
	flagGenre = "polka"
	defer func() { flagGenre = "all" }()

	if _, err := buildFilter(); err == nil {
		t.Error("expected error for unknown genre")
	}
}

func TestBuildFilterRejectsNegativeDays(t *testing.T) {
	flagDays = -3
	defer func() { flagDays = 0 }()

	if _, err := buildFilter(); err == nil {
		t.Error("expected error for negative --days")
	}
}
