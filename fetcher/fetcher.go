package fetcher

// Fetcher interface defines the contract for fetching implementations
type Fetcher interface {
	// Fetch retrieves the raw HTML content of a single page
	Fetch(url string) (string, error)
}
