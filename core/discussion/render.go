package discussion

import (
	"fmt"
	"strings"
	"time"

	"digests-reader-api/core/domain"
	"digests-reader-api/pkg/utils/text"
	timeutil "digests-reader-api/pkg/utils/time"
)

// indentUnit is prepended once per nesting level
const indentUnit = "  "

// Renderer writes a Discussion as Markdown
type Renderer struct {
	location *time.Location
}

// NewRenderer creates a renderer that formats dates in loc (UTC when nil)
func NewRenderer(loc *time.Location) *Renderer {
	if loc == nil {
		loc = time.UTC
	}
	return &Renderer{location: loc}
}

type renderItem struct {
	node  *domain.CommentNode
	depth int
}

// Render emits the post header followed by the comment forest, depth-first
// and in source order. Deleted comments omit their own block but their
// replies still render one level deeper.
func (r *Renderer) Render(d *domain.Discussion) string {
	if d == nil {
		return ""
	}

	var sb strings.Builder
	r.writePost(&sb, &d.Post)

	stack := make([]renderItem, 0, len(d.Comments))
	for i := len(d.Comments) - 1; i >= 0; i-- {
		stack = append(stack, renderItem{node: &d.Comments[i], depth: 0})
	}

	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !item.node.IsDeleted() {
			writeComment(&sb, item.node, item.depth)
		}

		replies := item.node.Replies
		for i := len(replies) - 1; i >= 0; i-- {
			stack = append(stack, renderItem{node: &replies[i], depth: item.depth + 1})
		}
	}

	return sb.String()
}

func (r *Renderer) writePost(sb *strings.Builder, post *domain.RedditPost) {
	fmt.Fprintf(sb, "# %s\n\n", post.Title)
	fmt.Fprintf(sb, "%s\n\n", post.Content)
	fmt.Fprintf(sb, "*Posted by u/%s on %s*\n\n", post.Author, timeutil.FormatLocalDate(post.CreatedAt, r.location))
	sb.WriteString("---\n\n")
}

func writeComment(sb *strings.Builder, c *domain.CommentNode, depth int) {
	indent := strings.Repeat(indentUnit, depth)
	fmt.Fprintf(sb, "%s**u/%s** *(%d points)*\n", indent, c.Author, c.Score)
	fmt.Fprintf(sb, "%s\n\n", text.IndentLines(c.Content, indent))
}
