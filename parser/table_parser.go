package parser

import (
	"fmt"
	"regexp"
	"strings"

	"capitals-scraper/models"

	"github.com/PuerkitoBio/goquery"
)

// TableParser extracts capital records from the source page's table
type TableParser struct {
	selector   string
	headerRows int
}

// NewTableParser creates a new TableParser instance.
// selector locates the table (first match wins); headerRows is the number
// of leading header rows to skip before data rows start.
func NewTableParser(selector string, headerRows int) *TableParser {
	if selector == "" {
		selector = "table"
	}
	if headerRows < 0 {
		headerRows = 0
	}
	return &TableParser{
		selector:   selector,
		headerRows: headerRows,
	}
}

// Parse extracts capital records from HTML content
func (p *TableParser) Parse(htmlContent string) ([]models.Capital, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	table := doc.Find(p.selector).First()
	if table.Length() == 0 {
		// Fall back to the first table on the page
		table = doc.Find("table").First()
	}
	if table.Length() == 0 {
		return nil, fmt.Errorf("no table matching %q found in document", p.selector)
	}

	rows := table.Find("tr")
	if rows.Length() <= p.headerRows {
		return nil, fmt.Errorf("table has %d rows, expected more than %d header rows", rows.Length(), p.headerRows)
	}

	if err := p.validateHeader(rows); err != nil {
		return nil, err
	}

	var capitals []models.Capital
	var rowErr error

	rows.Each(func(i int, tr *goquery.Selection) {
		if i < p.headerRows || rowErr != nil {
			return
		}

		// State name cells come through as th, the rest as td
		cells := tr.Find("th, td")
		if cells.Length() < len(models.Columns) {
			rowErr = fmt.Errorf("row %d has %d cells, expected %d", i+1, cells.Length(), len(models.Columns))
			return
		}

		capital := models.Capital{}
		cells.Each(func(j int, cell *goquery.Selection) {
			if j >= len(models.Columns) {
				return
			}
			capital.SetField(j, cleanCell(cell.Text()))
		})
		capitals = append(capitals, capital)
	})

	if rowErr != nil {
		return nil, rowErr
	}

	return capitals, nil
}

// validateHeader checks the table's header block against the declared column
// mapping so a reordered source table fails loudly instead of silently
// shifting every field.
func (p *TableParser) validateHeader(rows *goquery.Selection) error {
	var sb strings.Builder
	rows.Each(func(i int, tr *goquery.Selection) {
		if i >= p.headerRows {
			return
		}
		tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			sb.WriteString(cell.Text())
			sb.WriteString(" ")
		})
	})

	headerText := strings.ToLower(normalizeWhitespace(sb.String()))

	var missing []string
	for _, col := range models.Columns {
		if col.SourceLabel == "" {
			continue
		}
		if !strings.Contains(headerText, strings.ToLower(col.SourceLabel)) {
			missing = append(missing, col.SourceLabel)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("table header does not match expected columns, missing labels: %s", strings.Join(missing, ", "))
	}

	return nil
}

// footnoteRe matches reference markers like [3] or [note 1] that Wikipedia
// appends to cell text
var footnoteRe = regexp.MustCompile(`\[[^\]]*\]`)

// cleanCell normalizes a cell's text. A cell whose text is empty or only
// whitespace (including a lone newline) becomes the empty string.
func cleanCell(text string) string {
	text = footnoteRe.ReplaceAllString(text, "")
	return normalizeWhitespace(text)
}

// normalizeWhitespace collapses all whitespace runs (including non-breaking
// spaces) into single spaces and trims the result
func normalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return strings.Join(strings.Fields(s), " ")
}
