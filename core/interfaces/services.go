// ABOUTME: Service interfaces for the core business logic
// ABOUTME: Defines the contracts the HTTP handlers and CLI consume

package interfaces

import (
	"context"

	"digests-reader-api/core/domain"
)

// ArticleService renders web pages as Markdown
type ArticleService interface {
	ExtractArticles(ctx context.Context, urls []string) []domain.ArticleView
	ExtractArticle(ctx context.Context, url string) (domain.ArticleView, error)
}

// DiscussionService renders discussion threads as Markdown
type DiscussionService interface {
	FetchDiscussions(ctx context.Context, urls []string) []domain.DiscussionView
	FetchDiscussion(ctx context.Context, url string) (domain.DiscussionView, error)
}
