package filter

import (
	"strconv"
	"strings"

	"capitals-scraper/config"
	"capitals-scraper/models"
)

// Filter applies filter criteria to capital records
type Filter struct {
	cfg    *config.Config
	states map[string]bool
}

// NewFilter creates a new Filter instance
func NewFilter(cfg *config.Config) *Filter {
	states := make(map[string]bool)
	for _, s := range cfg.Filters.States {
		states[strings.ToLower(strings.TrimSpace(s))] = true
	}
	return &Filter{
		cfg:    cfg,
		states: states,
	}
}

// ApplyFilters filters capitals based on the configuration
func (f *Filter) ApplyFilters(capitals []models.Capital) []models.Capital {
	var filtered []models.Capital

	for _, capital := range capitals {
		if f.matchesFilters(capital) {
			filtered = append(filtered, capital)
		}
	}

	return filtered
}

// matchesFilters checks if a capital matches all filter criteria
func (f *Filter) matchesFilters(capital models.Capital) bool {
	// Check state allowlist
	if len(f.states) > 0 && !f.states[strings.ToLower(capital.State)] {
		return false
	}

	// Check minimum city population - only filter if the population could be
	// parsed; an empty or malformed cell is not grounds for dropping the row
	if f.cfg.Filters.MinCityPopulation > 0 {
		if pop, ok := parsePopulation(capital.CityPopulation); ok && pop < f.cfg.Filters.MinCityPopulation {
			return false
		}
	}

	return true
}

// parsePopulation parses a population cell like "733,391" into an int
func parsePopulation(text string) (int, bool) {
	text = strings.TrimSpace(strings.ReplaceAll(text, ",", ""))
	if text == "" {
		return 0, false
	}
	pop, err := strconv.Atoi(text)
	if err != nil {
		return 0, false
	}
	return pop, true
}
