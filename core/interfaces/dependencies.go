// ABOUTME: Dependencies container provides dependency injection for core services
// ABOUTME: Bundles the collaborators both pipelines need at their I/O boundary

package interfaces

// Dependencies holds all external dependencies required by the core services
type Dependencies struct {
	// Cache stores rendered views; nil disables caching
	Cache Cache

	// HTTPClient fetches raw discussion payloads
	HTTPClient HTTPClient

	// Pages loads parsed documents for the article pipeline
	Pages PageSource

	// Extractor is the readability-style fallback collaborator
	Extractor ContentExtractor

	// Converter turns HTML fragments into Markdown
	Converter MarkdownConverter

	// Logger provides structured logging
	Logger Logger
}
