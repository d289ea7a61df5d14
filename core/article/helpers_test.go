package article

import (
	"bytes"
	"errors"
	"net/url"
	"strings"
	"testing"

	"digests-reader-api/core/interfaces"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// mockConverter returns the text content of the fragment it receives
type mockConverter struct {
	inputs      []string
	convertFunc func(inner string) (string, error)
}

func (m *mockConverter) Convert(inner string) (string, error) {
	m.inputs = append(m.inputs, inner)
	if m.convertFunc != nil {
		return m.convertFunc(inner)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(inner))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(doc.Text()), nil
}

// mockExtractor records every call made by the pipeline
type mockExtractor struct {
	calls       int
	extractFunc func(doc *html.Node, pageURL *url.URL) (*interfaces.ExtractedContent, error)
}

func (m *mockExtractor) Extract(doc *html.Node, pageURL *url.URL) (*interfaces.ExtractedContent, error) {
	m.calls++
	if m.extractFunc != nil {
		return m.extractFunc(doc, pageURL)
	}
	return nil, errors.New("unparseable")
}

func parseHTML(t *testing.T, src string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

func renderHTML(t *testing.T, n *html.Node) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, html.Render(&buf, n))
	return buf.String()
}

// findElement returns the first element with the given tag in document order
func findElement(n *html.Node, tag string) *html.Node {
	sel := goquery.NewDocumentFromNode(n).Find(tag)
	if sel.Length() == 0 {
		return nil
	}
	return sel.Nodes[0]
}
