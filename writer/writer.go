package writer

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"capitals-scraper/models"
)

// WriteOptions contains configuration for CSV writing
type WriteOptions struct {
	Directory  string
	Filename   string
	AppendDate bool
}

// Writer handles writing capital records to a CSV file
type Writer struct {
	opts WriteOptions
}

// NewWriter creates a new CSV writer
func NewWriter(opts WriteOptions) *Writer {
	if opts.Filename == "" {
		opts.Filename = "us_capitals.csv"
	}
	return &Writer{
		opts: opts,
	}
}

// OutputPath returns the path the next write will go to
func (w *Writer) OutputPath() string {
	filename := w.opts.Filename
	if w.opts.AppendDate {
		ext := filepath.Ext(filename)
		base := strings.TrimSuffix(filename, ext)
		filename = fmt.Sprintf("%s_%s%s", base, time.Now().Format("20060102"), ext)
	}
	return filepath.Join(w.opts.Directory, filename)
}

// WriteCapitals writes the header row and one row per capital to the output
// file, overwriting it if it exists. Returns the path written.
func (w *Writer) WriteCapitals(capitals []models.Capital) (string, error) {
	path := w.OutputPath()

	if w.opts.Directory != "" {
		if err := os.MkdirAll(w.opts.Directory, 0755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	cw := csv.NewWriter(file)

	if err := cw.Write(models.Header()); err != nil {
		return "", fmt.Errorf("failed to write header row: %w", err)
	}

	for _, capital := range capitals {
		if err := cw.Write(capital.Row()); err != nil {
			return "", fmt.Errorf("failed to write row for %s: %w", capital.State, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV: %w", err)
	}

	log.Printf("Wrote %d capitals to %s\n", len(capitals), path)

	return path, nil
}
