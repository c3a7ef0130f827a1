package sheets

import (
	"testing"

	"capitals-scraper/models"
)

func TestExtractSpreadsheetID(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{"edit suffix", "https://docs.google.com/spreadsheets/d/1FoGJ6ZzDIfFv3ZZ6/edit", "1FoGJ6ZzDIfFv3ZZ6"},
		{"share query", "https://docs.google.com/spreadsheets/d/1FoGJ6ZzDIfFv3ZZ6/edit?usp=sharing", "1FoGJ6ZzDIfFv3ZZ6"},
		{"bare id path", "https://docs.google.com/spreadsheets/d/1FoGJ6ZzDIfFv3ZZ6", "1FoGJ6ZzDIfFv3ZZ6"},
		{"not a sheets url", "https://example.com/whatever", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractSpreadsheetID(tt.url)
			if got != tt.expected {
				t.Errorf("ExtractSpreadsheetID(%q) = %q, want %q", tt.url, got, tt.expected)
			}
		})
	}
}

func TestSanitizeSheetName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"clean", "Capitals_20260830", "Capitals_20260830"},
		{"invalid characters", "a/b\\c?d*e[f]", "a_b_c_d_e_f_"},
		{"whitespace trimmed", "  name  ", "name"},
		{"empty falls back", "", "Sheet1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeSheetName(tt.input)
			if got != tt.expected {
				t.Errorf("sanitizeSheetName(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestBuildRows(t *testing.T) {
	capitals := []models.Capital{
		{State: "Alabama", Capital: "Montgomery"},
		{State: "Alaska", Capital: "Juneau"},
	}

	rows := buildRows(capitals)
	if len(rows) != 3 {
		t.Fatalf("buildRows() returned %d rows, want 3", len(rows))
	}
	if rows[0][0] != "State" {
		t.Errorf("header[0] = %v, want State", rows[0][0])
	}
	if len(rows[1]) != len(models.Columns) {
		t.Errorf("data row has %d fields, want %d", len(rows[1]), len(models.Columns))
	}
	if rows[2][0] != "Alaska" || rows[2][3] != "Juneau" {
		t.Errorf("row 2 = %v", rows[2])
	}
}
