package parser

import (
	"strings"
	"testing"
)

// fixtureHTML is a reduced copy of the source table's structure: a two-row
// header block followed by three data rows, one with an empty cell and one
// with a newline-only cell.
const fixtureHTML = `<html><body>
<table class="wikitable sortable">
<tr>
  <th>State</th><th>Abbr.</th><th>Statehood</th><th>Capital</th>
  <th>Capital since</th><th>Area (mi&#178;)</th>
  <th colspan="2">Population</th><th colspan="2">Rank</th><th>Notes</th>
</tr>
<tr>
  <th>City</th><th>Metro</th><th>In state</th><th>US</th>
</tr>
<tr>
  <th>Alabama</th><td>AL</td><td>Dec. 14, 1819</td><td>Montgomery</td>
  <td>1846</td><td>159.8</td><td>198,665[3]</td><td>386,047</td>
  <td>3rd</td><td>118th</td><td></td>
</tr>
<tr>
  <th>Alaska</th><td>AK</td><td>Jan. 3, 1959</td><td>Juneau</td>
  <td>1906</td><td>2716.7</td><td>31,275</td><td>
</td>
  <td>3rd</td><td></td><td>Largest capital by land area</td>
</tr>
<tr>
  <th>Arizona</th><td>AZ</td><td>Feb. 14, 1912</td><td>Phoenix</td>
  <td>1889</td><td>517.6</td><td>1,445,632[4]</td><td>4,192,887</td>
  <td>1st</td><td>6th</td><td>Most populous capital city</td>
</tr>
</table>
</body></html>`

func TestParse(t *testing.T) {
	p := NewTableParser("table.wikitable", 2)
	capitals, err := p.Parse(fixtureHTML)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	// Data row count equals table rows minus the two header rows
	if len(capitals) != 3 {
		t.Fatalf("Parse() returned %d capitals, want 3", len(capitals))
	}

	first := capitals[0]
	if first.State != "Alabama" {
		t.Errorf("State = %q, want %q", first.State, "Alabama")
	}
	if first.Abbreviation != "AL" {
		t.Errorf("Abbreviation = %q, want %q", first.Abbreviation, "AL")
	}
	if first.Capital != "Montgomery" {
		t.Errorf("Capital = %q, want %q", first.Capital, "Montgomery")
	}
	if first.CapitalSince != "1846" {
		t.Errorf("CapitalSince = %q, want %q", first.CapitalSince, "1846")
	}

	// Footnote markers are stripped
	if first.CityPopulation != "198,665" {
		t.Errorf("CityPopulation = %q, want %q", first.CityPopulation, "198,665")
	}

	// Empty cell renders as the empty string
	if first.Notes != "" {
		t.Errorf("Notes = %q, want empty", first.Notes)
	}

	// Newline-only cell renders as the empty string, never literal "\n"
	second := capitals[1]
	if second.MetroPopulation != "" {
		t.Errorf("MetroPopulation = %q, want empty", second.MetroPopulation)
	}
	if second.USRank != "" {
		t.Errorf("USRank = %q, want empty", second.USRank)
	}

	third := capitals[2]
	if third.Notes != "Most populous capital city" {
		t.Errorf("Notes = %q, want %q", third.Notes, "Most populous capital city")
	}
}

func TestParseFallsBackToFirstTable(t *testing.T) {
	html := strings.ReplaceAll(fixtureHTML, `class="wikitable sortable"`, "")
	p := NewTableParser("table.wikitable", 2)
	capitals, err := p.Parse(html)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(capitals) != 3 {
		t.Errorf("Parse() returned %d capitals, want 3", len(capitals))
	}
}

func TestParseNoTable(t *testing.T) {
	p := NewTableParser("table.wikitable", 2)
	_, err := p.Parse(`<html><body><p>no tables here</p></body></html>`)
	if err == nil {
		t.Fatal("Parse() expected error for document without table")
	}
}

func TestParseHeaderMismatch(t *testing.T) {
	html := `<table class="wikitable">
<tr><th>Country</th><th>Currency</th><th>Code</th></tr>
<tr><th>Units</th></tr>
<tr><td>a</td><td>b</td><td>c</td><td>d</td><td>e</td><td>f</td><td>g</td><td>h</td><td>i</td><td>j</td><td>k</td></tr>
</table>`
	p := NewTableParser("table.wikitable", 2)
	_, err := p.Parse(html)
	if err == nil {
		t.Fatal("Parse() expected error for mismatched header labels")
	}
	if !strings.Contains(err.Error(), "missing labels") {
		t.Errorf("Parse() error = %v, want header mismatch error", err)
	}
}

func TestParseShortRow(t *testing.T) {
	// Drop a cell from the Alaska row
	html := strings.Replace(fixtureHTML, "<td>AK</td>", "", 1)
	p := NewTableParser("table.wikitable", 2)
	_, err := p.Parse(html)
	if err == nil {
		t.Fatal("Parse() expected error for row with too few cells")
	}
	if !strings.Contains(err.Error(), "cells") {
		t.Errorf("Parse() error = %v, want short row error", err)
	}
}

func TestParseNotEnoughRows(t *testing.T) {
	html := `<table class="wikitable"><tr><th>State</th></tr></table>`
	p := NewTableParser("table.wikitable", 2)
	_, err := p.Parse(html)
	if err == nil {
		t.Fatal("Parse() expected error for header-only table")
	}
}

func TestCleanCell(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain text", "Montgomery", "Montgomery"},
		{"empty", "", ""},
		{"single newline", "\n", ""},
		{"whitespace only", "  \t\n ", ""},
		{"footnote stripped", "198,665[3]", "198,665"},
		{"named footnote stripped", "1846[note 1]", "1846"},
		{"footnote only", "[3]", ""},
		{"non-breaking space", "Santa Fe", "Santa Fe"},
		{"internal newline collapsed", "Salt Lake\nCity", "Salt Lake City"},
		{"surrounding whitespace", "  Boise \n", "Boise"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cleanCell(tt.input)
			if got != tt.expected {
				t.Errorf("cleanCell(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeWhitespace(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"regular spaces", "a  b", "a b"},
		{"non-breaking space", "a b", "a b"},
		{"mixed whitespace", "a\t\nb", "a b"},
		{"already normalized", "a b", "a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeWhitespace(tt.input)
			if got != tt.expected {
				t.Errorf("normalizeWhitespace() = %q, want %q", got, tt.expected)
			}
		})
	}
}
