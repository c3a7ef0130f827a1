package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"capitals-scraper/config"
	"capitals-scraper/db"
	"capitals-scraper/fetcher"
	"capitals-scraper/filter"
	"capitals-scraper/models"
	"capitals-scraper/notify"
	"capitals-scraper/parser"
	"capitals-scraper/scheduler"
	"capitals-scraper/sheets"
	"capitals-scraper/writer"
)

func main() {
	// Parse command line arguments
	url := flag.String("url", "", "Source page URL (overrides config)")
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	out := flag.String("out", "", "Output CSV filename (overrides config)")
	useBrowser := flag.Bool("browser", false, "Fetch with a headless browser instead of plain HTTP")
	spreadsheetURL := flag.String("spreadsheet", "", "Google Sheets URL to also export to (optional)")
	credentialsPath := flag.String("credentials", "", "Path to Google service account credentials JSON file (or use GOOGLE_SHEETS_CREDENTIALS env var)")
	saveDB := flag.Bool("save-db", false, "Also save scraped rows to Postgres (DATABASE_URL or DB_* env vars)")
	watch := flag.Duration("watch", 0, "Re-run the scrape on this interval (e.g. 6h); 0 runs once and exits")
	flag.Parse()

	cfg := loadConfig(*configPath)
	if *url != "" {
		cfg.Source.URL = *url
	}
	if *out != "" {
		cfg.Output.Filename = *out
	}

	notifier, err := notify.NewNotifierFromEnv()
	if err != nil {
		log.Fatalf("Failed to initialize notifier: %v\n", err)
	}

	job := func() error {
		return runScrape(cfg, *useBrowser, *spreadsheetURL, *credentialsPath, *saveDB, notifier)
	}

	if *watch > 0 {
		sched := scheduler.NewScheduler(*watch, job, notifier)
		sched.Start()
		log.Printf("Watching: re-scraping every %s (Ctrl-C to stop)\n", *watch)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh
		sched.Stop()
		return
	}

	if err := job(); err != nil {
		if notifier != nil {
			notifier.NotifyFailure(err)
		}
		log.Fatalf("Scraping failed: %v\n", err)
	}
}

// runScrape performs one full fetch -> parse -> filter -> export cycle
func runScrape(cfg *config.Config, useBrowser bool, spreadsheetURL, credentialsPath string, saveDB bool, notifier *notify.Notifier) error {
	// Record the run in Postgres when requested
	var database *db.DB
	var run *db.Run
	if saveDB {
		var err error
		database, err = db.NewDB()
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer database.Close()

		run, err = database.CreateRun(cfg.Source.URL)
		if err != nil {
			return fmt.Errorf("failed to create run: %w", err)
		}
		if err := database.UpdateRunStatus(run.ID, "in_progress"); err != nil {
			log.Printf("Warning: Failed to update run status: %v\n", err)
		}
	}

	filteredCapitals, allCapitals, err := scrapeCapitals(cfg, useBrowser)
	if err != nil {
		if database != nil && run != nil {
			if dbErr := database.FailRun(run.ID, err.Error()); dbErr != nil {
				log.Printf("Warning: Failed to record run failure: %v\n", dbErr)
			}
		}
		return err
	}

	fmt.Printf("Found %d capitals before filtering\n", len(allCapitals))
	fmt.Printf("Found %d capitals after filtering\n", len(filteredCapitals))

	// Write CSV output
	csvWriter := writer.NewWriter(writer.WriteOptions{
		Directory:  cfg.Output.Directory,
		Filename:   cfg.Output.Filename,
		AppendDate: cfg.Output.AppendDate,
	})

	outputPath, err := csvWriter.WriteCapitals(filteredCapitals)
	if err != nil {
		if database != nil && run != nil {
			if dbErr := database.FailRun(run.ID, err.Error()); dbErr != nil {
				log.Printf("Warning: Failed to record run failure: %v\n", dbErr)
			}
		}
		return fmt.Errorf("failed to write CSV: %w", err)
	}

	// Save rows to Postgres
	if database != nil && run != nil {
		if err := database.SaveCapitals(run.ID, filteredCapitals); err != nil {
			log.Printf("Warning: Failed to save capitals to database: %v\n", err)
		}
		if err := database.FinishRun(run.ID, len(filteredCapitals), outputPath); err != nil {
			log.Printf("Warning: Failed to finish run: %v\n", err)
		}
	}

	// Write to Google Sheets when a spreadsheet is given
	if spreadsheetURL != "" {
		writeToSheets(spreadsheetURL, credentialsPath, cfg.Source.URL, filteredCapitals)
	}

	if notifier != nil {
		notifier.NotifySuccess(len(filteredCapitals), outputPath)
	}

	return nil
}

// scrapeCapitals performs the fetch, parse and filter steps
func scrapeCapitals(cfg *config.Config, useBrowser bool) ([]models.Capital, []models.Capital, error) {
	var fetcherInstance fetcher.Fetcher

	if useBrowser {
		rodFetcher, err := fetcher.NewRodFetcher()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create browser fetcher: %w", err)
		}
		defer func() {
			if err := rodFetcher.Close(); err != nil {
				log.Printf("Warning: Failed to close browser: %v\n", err)
			}
		}()
		fetcherInstance = rodFetcher
	} else {
		fetcherInstance = fetcher.NewCollyFetcher()
	}

	htmlContent, err := fetcherInstance.Fetch(cfg.Source.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching failed: %w", err)
	}

	parserInstance := parser.NewTableParser(cfg.Source.TableSelector, cfg.Source.HeaderRows)
	allCapitals, err := parserInstance.Parse(htmlContent)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing failed: %w", err)
	}

	if len(allCapitals) == 0 {
		return nil, nil, fmt.Errorf("no capitals found in the fetched HTML")
	}

	filterInstance := filter.NewFilter(cfg)
	filteredCapitals := filterInstance.ApplyFilters(allCapitals)

	return filteredCapitals, allCapitals, nil
}

// writeToSheets exports the capitals to a new sheet in the given spreadsheet
func writeToSheets(spreadsheetURL, credentialsPath, sourceURL string, capitals []models.Capital) {
	spreadsheetID := sheets.ExtractSpreadsheetID(spreadsheetURL)
	if spreadsheetID == "" {
		log.Printf("Warning: Could not extract spreadsheet ID from URL: %s\n", spreadsheetURL)
		return
	}

	sheetsWriter, err := sheets.NewWriter(spreadsheetID, credentialsPath)
	if err != nil {
		log.Printf("Warning: Failed to initialize Google Sheets writer: %v\n", err)
		return
	}

	sheetName := fmt.Sprintf("Capitals_%s", time.Now().Format("20060102_150405"))
	_, _, err = sheetsWriter.CreateSheetAndWriteCapitals(sheetName, capitals, sourceURL)
	if err != nil {
		log.Printf("Warning: Failed to write to Google Sheets: %v\n", err)
	} else {
		fmt.Printf("Successfully wrote %d capitals to Google Sheets\n", len(capitals))
	}
}

// loadConfig loads configuration from file or returns defaults
func loadConfig(configPath string) *config.Config {
	var cfg *config.Config
	if _, err := os.Stat(configPath); err == nil {
		var err error
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			log.Printf("Warning: Failed to load config file: %v. Using defaults.\n", err)
			cfg = config.GetDefaultConfig()
		}
	} else {
		log.Println("Config file not found. Using default configuration.")
		cfg = config.GetDefaultConfig()
	}
	return cfg
}
