// ABOUTME: Domain models for article extraction from arbitrary web pages
// ABOUTME: Defines the extracted article and the per-URL view returned by the reader service

package domain

// Article view statuses
const (
	StatusOK    = "ok"
	StatusError = "error"
	StatusEmpty = "empty"
)

// ExtractedArticle is the output of the HTML pipeline before final normalization
type ExtractedArticle struct {
	// Title is the resolved article title, empty when none could be found
	Title string

	// BodyMarkdown is the rendered content region
	BodyMarkdown string
}

// HasTitle reports whether a title was resolved
func (a ExtractedArticle) HasTitle() bool {
	return a.Title != ""
}

// ArticleView represents the Markdown rendering of a single web page
type ArticleView struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Markdown string `json:"markdown"`
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
}
