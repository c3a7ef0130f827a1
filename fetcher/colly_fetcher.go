package fetcher

import (
	"fmt"
	"log"
	"time"

	"github.com/gocolly/colly/v2"
)

// CollyFetcher implements the Fetcher interface using colly
type CollyFetcher struct {
	collector *colly.Collector
}

// NewCollyFetcher creates a new CollyFetcher instance
func NewCollyFetcher() *CollyFetcher {
	c := colly.NewCollector(
		colly.UserAgent("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)

	// Be polite to the source even though we only fetch one page per run
	c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: 1,
		Delay:       2 * time.Second,
	})

	return &CollyFetcher{
		collector: c,
	}
}

// Fetch implements the Fetcher interface
func (cf *CollyFetcher) Fetch(url string) (string, error) {
	var htmlContent string
	var statusCode int
	var fetchErr error

	cf.collector.OnResponse(func(r *colly.Response) {
		statusCode = r.StatusCode
		htmlContent = string(r.Body)
	})

	cf.collector.OnError(func(r *colly.Response, err error) {
		statusCode = r.StatusCode
		fetchErr = err
		log.Printf("Error fetching %s: %v\n", r.Request.URL, err)
	})

	if err := cf.collector.Visit(url); err != nil {
		return "", fmt.Errorf("failed to visit URL: %w", err)
	}

	// Wait for the request to complete
	cf.collector.Wait()

	if fetchErr != nil {
		return "", fmt.Errorf("request to %s failed with status %d: %w", url, statusCode, fetchErr)
	}

	if htmlContent == "" {
		return "", fmt.Errorf("no response body received from %s", url)
	}

	log.Printf("Fetched %s (status %d, %d bytes)\n", url, statusCode, len(htmlContent))

	return htmlContent, nil
}
