package db

import (
	"database/sql"
	"fmt"
	"time"

	"capitals-scraper/models"
)

// Run represents one scrape run recorded in the database
type Run struct {
	ID         int
	SourceURL  string
	Status     string
	RowCount   int
	OutputFile string
	LastError  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CreateRun inserts a new scrape run with status 'created'
func (db *DB) CreateRun(sourceURL string) (*Run, error) {
	var run Run
	err := db.conn.QueryRow(`
		INSERT INTO scrape_runs (source_url, status)
		VALUES ($1, 'created')
		RETURNING id, source_url, status, row_count, COALESCE(output_file, ''), COALESCE(last_error, ''), created_at, updated_at
	`, sourceURL).Scan(&run.ID, &run.SourceURL, &run.Status, &run.RowCount, &run.OutputFile, &run.LastError, &run.CreatedAt, &run.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}
	return &run, nil
}

// UpdateRunStatus updates a run's status
func (db *DB) UpdateRunStatus(runID int, status string) error {
	_, err := db.conn.Exec(`
		UPDATE scrape_runs SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2
	`, status, runID)
	if err != nil {
		return fmt.Errorf("failed to update run status: %w", err)
	}
	return nil
}

// FinishRun marks a run as done and records its row count and output file
func (db *DB) FinishRun(runID int, rowCount int, outputFile string) error {
	_, err := db.conn.Exec(`
		UPDATE scrape_runs
		SET status = 'done', row_count = $1, output_file = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $3
	`, rowCount, outputFile, runID)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	return nil
}

// FailRun marks a run as failed and records the error message
func (db *DB) FailRun(runID int, lastError string) error {
	_, err := db.conn.Exec(`
		UPDATE scrape_runs
		SET status = 'failed', last_error = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
	`, lastError, runID)
	if err != nil {
		return fmt.Errorf("failed to mark run failed: %w", err)
	}
	return nil
}

// SaveCapitals inserts all capital rows for a run in one transaction
func (db *DB) SaveCapitals(runID int, capitals []models.Capital) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO capitals (run_id, state, abbreviation, statehood, capital, capital_since,
			area, city_population, metro_population, state_rank, us_rank, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range capitals {
		_, err := stmt.Exec(runID, c.State, c.Abbreviation, c.Statehood, c.Capital, c.CapitalSince,
			c.Area, c.CityPopulation, c.MetroPopulation, c.StateRank, c.USRank, c.Notes)
		if err != nil {
			return fmt.Errorf("failed to insert capital %s: %w", c.State, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetLatestRun returns the most recent scrape run, or nil if none exist
func (db *DB) GetLatestRun() (*Run, error) {
	var run Run
	err := db.conn.QueryRow(`
		SELECT id, source_url, status, row_count, COALESCE(output_file, ''), COALESCE(last_error, ''), created_at, updated_at
		FROM scrape_runs
		ORDER BY created_at DESC
		LIMIT 1
	`).Scan(&run.ID, &run.SourceURL, &run.Status, &run.RowCount, &run.OutputFile, &run.LastError, &run.CreatedAt, &run.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest run: %w", err)
	}
	return &run, nil
}
