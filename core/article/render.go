package article

import (
	"fmt"
	"regexp"
	"strings"

	"digests-reader-api/core/interfaces"
	"digests-reader-api/pkg/utils/text"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/dom"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// LineBreakAttr marks nodes that are dropped before conversion
const LineBreakAttr = "data-br"

var (
	languageClassPattern = regexp.MustCompile(`language-(\w+)`)
	wordClassPattern     = regexp.MustCompile(`(\w+)`)
)

// NodeRenderer converts the direct element children of a content region to
// Markdown, one child at a time.
type NodeRenderer struct {
	converter interfaces.MarkdownConverter
	logger    interfaces.Logger
}

// NewNodeRenderer creates a renderer backed by converter
func NewNodeRenderer(converter interfaces.MarkdownConverter, logger interfaces.Logger) *NodeRenderer {
	return &NodeRenderer{
		converter: converter,
		logger:    interfaces.LoggerOrNop(logger),
	}
}

// Render walks one level of children. Blank results are skipped and a child
// that fails to convert is logged and skipped without affecting its siblings.
func (r *NodeRenderer) Render(region *html.Node) string {
	if region == nil {
		return ""
	}

	var blocks []string
	for child := region.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.ElementNode {
			continue
		}

		md, err := r.renderChild(child)
		if err != nil {
			r.logger.Debug("Skipping child that failed to render", map[string]interface{}{
				"tag":   child.Data,
				"error": err.Error(),
			})
			continue
		}
		if strings.TrimSpace(md) == "" {
			continue
		}
		blocks = append(blocks, md)
	}

	return strings.Join(blocks, "\n\n")
}

func (r *NodeRenderer) renderChild(node *html.Node) (md string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("render <%s>: %v", node.Data, rec)
		}
	}()

	if block, ok := codeBlockFrom(node); ok {
		return block.Markdown(), nil
	}
	return r.convertElement(node)
}

// convertElement converts an isolated clone of node. Scripts and line-break
// markers are stripped again because the clone does not inherit earlier passes.
func (r *NodeRenderer) convertElement(node *html.Node) (string, error) {
	if r.converter == nil {
		return "", fmt.Errorf("no markdown converter configured")
	}

	fragment := &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	}
	fragment.AppendChild(dom.Clone(node, true))

	isolated := goquery.NewDocumentFromNode(fragment)
	isolated.Find("script").Remove()
	isolated.Find("[" + LineBreakAttr + "]").Remove()

	inner, err := isolated.Html()
	if err != nil {
		return "", fmt.Errorf("serialize <%s>: %w", node.Data, err)
	}
	if strings.TrimSpace(inner) == "" {
		return "", nil
	}

	return r.converter.Convert(inner)
}

// CodeBlock is a preformatted block rendered verbatim as a fenced block
type CodeBlock struct {
	Language string
	Code     string
}

// Markdown renders the block with a fence longer than any backtick run in the code
func (c CodeBlock) Markdown() string {
	fenceLen := 3
	if run := text.LongestRun(c.Code, '`'); run >= fenceLen {
		fenceLen = run + 1
	}
	fence := strings.Repeat("`", fenceLen)
	return fence + c.Language + "\n" + c.Code + "\n" + fence
}

// codeBlockFrom recognizes <pre> elements that contain a <code> element
func codeBlockFrom(node *html.Node) (CodeBlock, bool) {
	if node.Type != html.ElementNode || node.DataAtom != atom.Pre {
		return CodeBlock{}, false
	}

	code := goquery.NewDocumentFromNode(node).Find("code").First()
	if code.Length() == 0 {
		return CodeBlock{}, false
	}

	codeClass, _ := code.Attr("class")
	return CodeBlock{
		Language: detectLanguage(codeClass, attr(node, "class")),
		Code:     text.StripInvisible(code.Text()),
	}, true
}

// detectLanguage checks the code class, then the pre class, for language-<x>,
// then falls back to the first word of the code class.
func detectLanguage(codeClass, preClass string) string {
	if m := languageClassPattern.FindStringSubmatch(codeClass); m != nil {
		return m[1]
	}
	if m := languageClassPattern.FindStringSubmatch(preClass); m != nil {
		return m[1]
	}
	if m := wordClassPattern.FindStringSubmatch(codeClass); m != nil {
		return m[1]
	}
	return ""
}

func attr(node *html.Node, key string) string {
	for _, a := range node.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
