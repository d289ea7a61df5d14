// ABOUTME: Markdown handlers for the Huma API
// ABOUTME: Renders web articles and discussion threads as Markdown in request order

package handlers

import (
	"context"
	"net/http"

	"digests-reader-api/api/dto/mappers"
	"digests-reader-api/api/dto/requests"
	"digests-reader-api/api/dto/responses"
	"digests-reader-api/core/interfaces"
	"digests-reader-api/pkg/featureflags"

	"github.com/danielgtaylor/huma/v2"
)

// MarkdownHandler handles the Markdown rendering endpoints
type MarkdownHandler struct {
	articles    interfaces.ArticleService
	discussions interfaces.DiscussionService
}

// NewMarkdownHandler creates a new Markdown handler
func NewMarkdownHandler(articles interfaces.ArticleService, discussions interfaces.DiscussionService) *MarkdownHandler {
	return &MarkdownHandler{
		articles:    articles,
		discussions: discussions,
	}
}

// RegisterRoutes registers all Markdown routes
func (h *MarkdownHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "renderArticles",
		Method:      http.MethodPost,
		Path:        "/markdown/articles",
		Summary:     "Render web pages as Markdown",
		Description: "Loads each page, locates its main content (falling back to readability) and returns the article as Markdown",
		Tags:        []string{"Markdown"},
	}, h.RenderArticles)

	huma.Register(api, huma.Operation{
		OperationID: "renderDiscussions",
		Method:      http.MethodPost,
		Path:        "/markdown/discussions",
		Summary:     "Render discussion threads as Markdown",
		Description: "Fetches each Reddit thread as JSON and returns the post with its nested comments as Markdown",
		Tags:        []string{"Markdown"},
	}, h.RenderDiscussions)
}

// RenderInput defines the input for both rendering operations
type RenderInput struct {
	Body requests.MarkdownRequest
}

// RenderArticlesOutput defines the output for the RenderArticles operation
type RenderArticlesOutput struct {
	Body []responses.ArticleResponse
}

// RenderDiscussionsOutput defines the output for the RenderDiscussions operation
type RenderDiscussionsOutput struct {
	Body []responses.DiscussionResponse
}

// RenderArticles handles POST /markdown/articles
func (h *MarkdownHandler) RenderArticles(ctx context.Context, input *RenderInput) (*RenderArticlesOutput, error) {
	urls, err := input.Body.Normalize()
	if err != nil {
		return nil, toHumaError(err)
	}

	views := h.articles.ExtractArticles(ctx, urls)
	return &RenderArticlesOutput{Body: mappers.ToArticleResponses(views)}, nil
}

// RenderDiscussions handles POST /markdown/discussions
func (h *MarkdownHandler) RenderDiscussions(ctx context.Context, input *RenderInput) (*RenderDiscussionsOutput, error) {
	if h.discussions == nil || !featureflags.IsEnabled(ctx, featureflags.DiscussionsEnabled) {
		return nil, huma.Error404NotFound("Discussion rendering is disabled")
	}

	urls, err := input.Body.Normalize()
	if err != nil {
		return nil, toHumaError(err)
	}

	views := h.discussions.FetchDiscussions(ctx, urls)
	return &RenderDiscussionsOutput{Body: mappers.ToDiscussionResponses(views)}, nil
}
