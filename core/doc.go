// Package core contains the business logic for the Digests reader API.
// It is designed to be framework-agnostic and can be used independently
// of any web framework or infrastructure concerns.
//
// The core package is organized into several sub-packages:
//
// - domain: Views and intermediate models (ArticleView, Discussion, CommentNode)
// - article: Main-content location, sanitizing and Markdown rendering of pages
// - discussion: Parsing, threading and rendering of discussion payloads
// - reader: Article service with caching and bounded batch concurrency
// - reddit: Discussion service that fetches thread payloads
// - workers: Generic bounded worker pool used by the batch operations
// - errors: Custom error types for better error handling
// - interfaces: Contracts for external dependencies (cache, pages, HTTP, logger)
//
// # Usage Example
//
//	import (
//	    "digests-reader-api/core/interfaces"
//	    "digests-reader-api/core/reader"
//	)
//
//	deps := interfaces.Dependencies{
//	    Cache:     myCache,     // implements interfaces.Cache
//	    Pages:     mySource,    // implements interfaces.PageSource
//	    Extractor: myExtractor, // implements interfaces.ContentExtractor
//	    Converter: myConverter, // implements interfaces.MarkdownConverter
//	    Logger:    myLogger,    // implements interfaces.Logger
//	}
//
//	service := reader.NewService(deps, reader.DefaultOptions())
//	view, err := service.ExtractArticle(ctx, "https://example.com/post")
package core
