package article

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// headingTitle looks for a level-1 heading inside the region, then next to it
// (anywhere under the region's parent), then anywhere in doc. A heading found
// inside the region is detached from it so the body does not repeat the title.
func headingTitle(doc, region *html.Node) (string, bool) {
	if h, title := firstHeading(region); h != nil {
		if h.Parent != nil {
			h.Parent.RemoveChild(h)
		}
		return title, true
	}

	if region != nil && region.Parent != nil {
		if h, title := firstHeading(region.Parent); h != nil {
			return title, true
		}
	}

	if h, title := firstHeading(doc); h != nil {
		return title, true
	}
	return "", false
}

// firstHeading returns the first <h1> under root with non-blank text
func firstHeading(root *html.Node) (*html.Node, string) {
	if root == nil {
		return nil, ""
	}

	var (
		found *html.Node
		title string
	)
	goquery.NewDocumentFromNode(root).Find("h1").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := collapseWhitespace(s.Text())
		if text == "" {
			return true
		}
		found = s.Nodes[0]
		title = text
		return false
	})
	return found, title
}

// collapseWhitespace joins whitespace-separated words with single spaces.
// Titles become a single Markdown heading line.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
