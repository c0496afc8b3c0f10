package casebot

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the document title, empty if the page has none.
	Title string

	// Text is the visible text of the page. Whitespace is not yet normalized.
	Text string
}

// Extractor extracts a title and visible text from HTML pages.
type Extractor interface {
	// Extract parses raw HTML and returns its title and text.
	Extract(html string) (*ExtractResult, error)
}
