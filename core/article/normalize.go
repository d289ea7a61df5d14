package article

import (
	"regexp"
	"strings"

	"digests-reader-api/core/domain"
	"digests-reader-api/pkg/utils/text"
)

var excessNewlines = regexp.MustCompile(`\n{3,}`)

// NormalizeMarkdown strips invisible characters, collapses runs of three or
// more newlines to a blank line and trims the result. It is idempotent:
// stripping runs first so no new newline runs can appear afterwards.
func NormalizeMarkdown(md string) string {
	md = text.StripInvisible(md)
	md = excessNewlines.ReplaceAllString(md, "\n\n")
	return strings.TrimSpace(md)
}

// AssembleArticle prefixes the body with an H1 title when one was resolved
// and normalizes the whole document.
func AssembleArticle(article domain.ExtractedArticle) string {
	md := article.BodyMarkdown
	if article.HasTitle() {
		md = "# " + article.Title + "\n\n" + md
	}
	return NormalizeMarkdown(md)
}
