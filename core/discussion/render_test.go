package discussion

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"digests-reader-api/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var postedAt = time.Date(2024, time.March, 6, 0, 0, 0, 0, time.UTC)

func testDiscussion(comments ...domain.CommentNode) *domain.Discussion {
	return &domain.Discussion{
		Post: domain.RedditPost{
			Title:     "Title",
			Content:   "Post body",
			Author:    "op",
			CreatedAt: postedAt,
			Score:     5,
		},
		Comments: comments,
	}
}

func TestRenderer_PostHeader(t *testing.T) {
	out := NewRenderer(nil).Render(testDiscussion())

	assert.Equal(t, "# Title\n\nPost body\n\n*Posted by u/op on 3/6/2024*\n\n---\n\n", out)
}

func TestRenderer_DateUsesLocation(t *testing.T) {
	newYork := time.FixedZone("EST", -5*60*60)

	out := NewRenderer(newYork).Render(testDiscussion())

	assert.Contains(t, out, "*Posted by u/op on 3/5/2024*")
}

func TestRenderer_CommentFormat(t *testing.T) {
	out := NewRenderer(nil).Render(testDiscussion(
		domain.CommentNode{Author: "alice", Content: "Hello", Score: 7, Replies: []domain.CommentNode{
			{Author: "bob", Content: "line one\nline two", Score: -2},
		}},
	))

	want := "**u/alice** *(7 points)*\nHello\n\n" +
		"  **u/bob** *(-2 points)*\n  line one\n  line two\n\n"
	assert.True(t, strings.HasSuffix(out, "---\n\n"+want), out)
}

func TestRenderer_IndentationByDepth(t *testing.T) {
	var chain domain.CommentNode
	for depth := 4; depth >= 0; depth-- {
		node := domain.CommentNode{Author: fmt.Sprintf("d%d", depth), Content: "text", Score: depth}
		if depth < 4 {
			node.Replies = []domain.CommentNode{chain}
		}
		chain = node
	}

	out := NewRenderer(nil).Render(testDiscussion(chain))

	for depth := 0; depth <= 4; depth++ {
		prefix := strings.Repeat(" ", 2*depth)
		line := fmt.Sprintf("\n%s**u/d%d** *(%d points)*\n%stext\n", prefix, depth, depth, prefix)
		assert.Contains(t, out, line, "depth %d", depth)
	}
}

func TestRenderer_DeletedAuthorSuppression(t *testing.T) {
	out := NewRenderer(nil).Render(testDiscussion(
		domain.CommentNode{Author: domain.DeletedAuthor, Content: "[removed]", Replies: []domain.CommentNode{
			{Author: "survivor", Content: "still here", Score: 1, Replies: []domain.CommentNode{
				{Author: domain.DeletedAuthor, Content: "gone"},
			}},
		}},
	))

	assert.NotContains(t, out, "[deleted]")
	assert.NotContains(t, out, "[removed]")
	assert.NotContains(t, out, "gone")
	assert.Contains(t, out, "\n  **u/survivor** *(1 points)*\n  still here\n\n")
}

func TestRenderer_OrderPreservation(t *testing.T) {
	out := NewRenderer(nil).Render(testDiscussion(
		domain.CommentNode{Author: "parent", Content: "p", Replies: []domain.CommentNode{
			{Author: "A", Content: "a", Replies: []domain.CommentNode{{Author: "A1", Content: "a1"}}},
			{Author: "B", Content: "b"},
			{Author: "C", Content: "c"},
		}},
		domain.CommentNode{Author: "next", Content: "n"},
	))

	order := []string{"u/parent", "u/A**", "u/A1", "u/B", "u/C", "u/next"}
	last := -1
	for _, marker := range order {
		idx := strings.Index(out, marker)
		require.NotEqual(t, -1, idx, marker)
		assert.Greater(t, idx, last, marker)
		last = idx
	}
}

func TestRenderer_DeepTreeDoesNotExhaustStack(t *testing.T) {
	const depth = 100000

	root := domain.CommentNode{Author: "u0", Content: "c"}
	node := &root
	for i := 1; i < depth; i++ {
		node.Replies = []domain.CommentNode{{Author: fmt.Sprintf("u%d", i), Content: "c"}}
		node = &node.Replies[0]
	}

	var out string
	require.NotPanics(t, func() {
		out = NewRenderer(nil).Render(testDiscussion(root))
	})
	assert.Equal(t, depth, strings.Count(out, "**u/u"))
}

func TestRenderer_NilDiscussion(t *testing.T) {
	assert.Empty(t, NewRenderer(nil).Render(nil))
}
