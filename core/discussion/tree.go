package discussion

import (
	"digests-reader-api/core/domain"
	timeutil "digests-reader-api/pkg/utils/time"
)

type buildItem struct {
	raw  RawComment
	node *domain.CommentNode
}

// BuildCommentTree materializes the comment forest from top-level records.
// It walks an explicit work stack so nesting depth never grows the call
// stack. Each Replies slice is allocated at its final length before any
// pointer into it is taken, so those pointers stay valid.
func BuildCommentTree(records []RawComment) []domain.CommentNode {
	if len(records) == 0 {
		return []domain.CommentNode{}
	}

	roots := make([]domain.CommentNode, len(records))
	stack := make([]buildItem, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		stack = append(stack, buildItem{raw: records[i], node: &roots[i]})
	}

	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		item.node.Author = item.raw.Author
		item.node.Content = item.raw.Body
		item.node.Score = item.raw.Ups
		item.node.CreatedAt = timeutil.FromUnixSeconds(item.raw.CreatedUTC)

		replies := item.raw.Replies
		item.node.Replies = make([]domain.CommentNode, len(replies))
		for i := len(replies) - 1; i >= 0; i-- {
			stack = append(stack, buildItem{raw: replies[i], node: &item.node.Replies[i]})
		}
	}

	return roots
}
