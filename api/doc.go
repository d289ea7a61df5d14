// Package api provides the HTTP API layer for the Digests Reader service.
// It uses the Huma framework to provide automatic OpenAPI documentation,
// request/response validation, and a clean handler interface.
//
// # Architecture
//
// - server.go: Huma API configuration and setup
// - handlers/: HTTP request handlers
// - dto/: Data Transfer Objects for requests and responses
// - middleware/: request logging, per-IP rate limiting, feature flags
//
// # Endpoints
//
//	POST /markdown/articles     {"urls": [...]} -> [{url, title, markdown, status, error}]
//	POST /markdown/discussions  {"urls": [...]} -> [{url, markdown, status, error}]
//	GET  /healthz
//
// The OpenAPI spec is available at /openapi.json and the docs UI at /docs.
//
// # Usage Example
//
//	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
//	    Logger:    logger,
//	    Flags:     featureflags.NewEnvManager("FEATURE_"),
//	    RateLimit: 5,
//	    RateBurst: 10,
//	})
//	handlers.NewMarkdownHandler(articleService, discussionService).RegisterRoutes(humaAPI)
//	handlers.RegisterHealth(humaAPI)
//	http.ListenAndServe(":8080", router)
//
// # Error Handling
//
// Errors use the RFC 7807 problem format. A batch request only fails as a
// whole for invalid input; per-URL failures are reported in each entry's
// status and error fields.
package api
