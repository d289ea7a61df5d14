// ABOUTME: HTML-to-Markdown converter backed by JohannesKaufmann/html-to-markdown
// ABOUTME: Produces ATX headings and fenced code blocks with GitHub-flavoured tables

package markdown

import (
	"strings"

	"digests-reader-api/core/interfaces"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
)

var _ interfaces.MarkdownConverter = (*Converter)(nil)

// Converter implements interfaces.MarkdownConverter
type Converter struct {
	conv *md.Converter
}

// NewConverter creates a Converter. domain resolves relative links and may be empty.
func NewConverter(domain string) *Converter {
	conv := md.NewConverter(domain, true, &md.Options{
		HeadingStyle:     "atx",
		CodeBlockStyle:   "fenced",
		Fence:            "```",
		BulletListMarker: "-",
		EmDelimiter:      "*",
	})
	conv.Use(plugin.GitHubFlavored())
	return &Converter{conv: conv}
}

// Convert converts an HTML fragment
func (c *Converter) Convert(innerHTML string) (string, error) {
	if strings.TrimSpace(innerHTML) == "" {
		return "", nil
	}
	return c.conv.ConvertString(innerHTML)
}
