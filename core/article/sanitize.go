package article

import (
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Sanitize removes every script element from doc in place. Running it on a
// tree without scripts is a no-op.
func Sanitize(doc *html.Node) {
	if doc == nil {
		return
	}
	goquery.NewDocumentFromNode(doc).Find("script").Remove()
}
