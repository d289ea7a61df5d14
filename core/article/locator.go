package article

import (
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ContentSelector is one entry of the main-content priority list
type ContentSelector struct {
	Name     string
	Selector string
}

// ContentSelectors is evaluated in order; the first selector with a match wins
// regardless of match count or size.
var ContentSelectors = []ContentSelector{
	{Name: "article element", Selector: "article"},
	{Name: "post class", Selector: ".post"},
	{Name: "article class", Selector: ".article"},
	{Name: "main landmark", Selector: "main"},
}

// LocateMainContent returns the first element (in document order) matched by
// the earliest selector in selectors, and the name of that selector.
func LocateMainContent(doc *html.Node, selectors []ContentSelector) (*html.Node, string, bool) {
	if doc == nil {
		return nil, "", false
	}

	root := goquery.NewDocumentFromNode(doc)
	for _, candidate := range selectors {
		match := root.Find(candidate.Selector)
		if match.Length() > 0 {
			return match.Nodes[0], candidate.Name, true
		}
	}
	return nil, "", false
}
