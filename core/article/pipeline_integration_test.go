package article_test

import (
	"strings"
	"testing"

	"digests-reader-api/core/article"
	"digests-reader-api/infrastructure/extraction/readability"
	"digests-reader-api/infrastructure/markdown"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func newPipeline() *article.Extractor {
	return article.NewExtractor(readability.NewExtractor(), markdown.NewConverter(""), nil)
}

func parseDoc(t *testing.T, src string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

func TestPipeline_SemanticArticle(t *testing.T) {
	doc := parseDoc(t, `<html><body>
<nav>Home | About</nav>
<article>
  <h1>Shipping Go Services</h1>
  <p>Small binaries are easy to deploy.</p>
  <pre class="highlight"><code class="language-go">fmt.Println("hi")</code></pre>
  <script>track()</script>
</article>
</body></html>`)

	md, err := newPipeline().ExtractArticleMarkdown(doc)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(md, "# Shipping Go Services\n\n"), md)
	assert.Equal(t, 1, strings.Count(md, "Shipping Go Services"))
	assert.Contains(t, md, "Small binaries are easy to deploy.")
	assert.Contains(t, md, "```go\nfmt.Println(\"hi\")")
	assert.NotContains(t, md, "track()")
	assert.NotContains(t, md, "Home | About")
	assert.NotContains(t, md, "\n\n\n")
}

func TestPipeline_ReadabilityFallback(t *testing.T) {
	doc := parseDoc(t, `<html><head><title>Field Notes</title></head><body>
<div class="nav"><a href="/">Home</a></div>
<div class="story">
<p>The migration started on a quiet Monday morning, long before anyone had finished their first coffee, and it went on well into the evening as the team moved each service across.</p>
<p>Every service was moved behind a feature flag, so that traffic could be shifted back within seconds if the error rate on the new cluster climbed above the agreed budget.</p>
<p>By the end of the week the old cluster was drained, the dashboards were quiet, and the team wrote up a short retrospective describing what they would do differently next time.</p>
</div>
</body></html>`)

	md, err := newPipeline().ExtractArticleMarkdown(doc)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(md, "# "), md)
	assert.Contains(t, md, "quiet Monday morning")
	assert.Equal(t, article.NormalizeMarkdown(md), md)
}
