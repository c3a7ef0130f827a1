package models

// Capital represents one state capital row extracted from the source table
type Capital struct {
	State           string
	Abbreviation    string
	Statehood       string
	Capital         string
	CapitalSince    string
	Area            string
	CityPopulation  string
	MetroPopulation string
	StateRank       string
	USRank          string
	Notes           string
}

// Column describes one output field: the name written to the CSV header and
// the label expected somewhere in the source table's header block. An empty
// SourceLabel skips header validation for that column.
type Column struct {
	Name        string
	SourceLabel string
	Value       func(c *Capital) string
}

// Columns is the declared mapping between table positions and output fields.
// Cell N of a data row is assigned to Columns[N]; output order follows this
// slice. Keep it in sync with the source table's layout.
var Columns = []Column{
	{Name: "State", SourceLabel: "State", Value: func(c *Capital) string { return c.State }},
	{Name: "Abbreviation", SourceLabel: "Abbr", Value: func(c *Capital) string { return c.Abbreviation }},
	{Name: "Statehood", SourceLabel: "Statehood", Value: func(c *Capital) string { return c.Statehood }},
	{Name: "Capital", SourceLabel: "Capital", Value: func(c *Capital) string { return c.Capital }},
	{Name: "Capital_Since", SourceLabel: "Capital since", Value: func(c *Capital) string { return c.CapitalSince }},
	{Name: "Area", SourceLabel: "Area", Value: func(c *Capital) string { return c.Area }},
	{Name: "City_population", SourceLabel: "City", Value: func(c *Capital) string { return c.CityPopulation }},
	{Name: "Metro_population", SourceLabel: "Metro", Value: func(c *Capital) string { return c.MetroPopulation }},
	{Name: "State_rank", SourceLabel: "state", Value: func(c *Capital) string { return c.StateRank }},
	{Name: "US_rank", SourceLabel: "US", Value: func(c *Capital) string { return c.USRank }},
	{Name: "Notes", SourceLabel: "Notes", Value: func(c *Capital) string { return c.Notes }},
}

// Header returns the CSV header row in column order
func Header() []string {
	names := make([]string, len(Columns))
	for i, col := range Columns {
		names[i] = col.Name
	}
	return names
}

// Row serializes the capital into a CSV row following the column order
func (c *Capital) Row() []string {
	row := make([]string, len(Columns))
	for i, col := range Columns {
		row[i] = col.Value(c)
	}
	return row
}

// SetField assigns the value for column position i. Positions beyond the
// declared columns are ignored.
func (c *Capital) SetField(i int, value string) {
	switch i {
	case 0:
		c.State = value
	case 1:
		c.Abbreviation = value
	case 2:
		c.Statehood = value
	case 3:
		c.Capital = value
	case 4:
		c.CapitalSince = value
	case 5:
		c.Area = value
	case 6:
		c.CityPopulation = value
	case 7:
		c.MetroPopulation = value
	case 8:
		c.StateRank = value
	case 9:
		c.USRank = value
	case 10:
		c.Notes = value
	}
}
