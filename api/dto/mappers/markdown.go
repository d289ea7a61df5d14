// ABOUTME: Mappers for converting between domain models and API DTOs
// ABOUTME: Keeps the wire shape independent of the core view types

package mappers

import (
	"digests-reader-api/api/dto/responses"
	"digests-reader-api/core/domain"
)

// ToArticleResponse converts a domain ArticleView
func ToArticleResponse(view domain.ArticleView) responses.ArticleResponse {
	return responses.ArticleResponse{
		URL:      view.URL,
		Title:    view.Title,
		Markdown: view.Markdown,
		Status:   view.Status,
		Error:    view.Error,
	}
}

// ToArticleResponses converts views, preserving order
func ToArticleResponses(views []domain.ArticleView) []responses.ArticleResponse {
	out := make([]responses.ArticleResponse, 0, len(views))
	for _, v := range views {
		out = append(out, ToArticleResponse(v))
	}
	return out
}

// ToDiscussionResponse converts a domain DiscussionView
func ToDiscussionResponse(view domain.DiscussionView) responses.DiscussionResponse {
	return responses.DiscussionResponse{
		URL:      view.URL,
		Markdown: view.Markdown,
		Status:   view.Status,
		Error:    view.Error,
	}
}

// ToDiscussionResponses converts views, preserving order
func ToDiscussionResponses(views []domain.DiscussionView) []responses.DiscussionResponse {
	out := make([]responses.DiscussionResponse, 0, len(views))
	for _, v := range views {
		out = append(out, ToDiscussionResponse(v))
	}
	return out
}
