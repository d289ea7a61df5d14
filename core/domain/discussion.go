// ABOUTME: Domain models for threaded discussions (a post plus its comment forest)
// ABOUTME: Comment replies keep source order and are owned exclusively by their parent

package domain

import "time"

// DeletedAuthor is the author value the source uses for removed accounts
const DeletedAuthor = "[deleted]"

// RedditPost is the root post of a discussion
type RedditPost struct {
	Title     string
	Content   string
	Author    string
	CreatedAt time.Time
	Score     int
}

// CommentNode is a single comment and its replies
type CommentNode struct {
	Author    string
	Content   string
	Score     int
	CreatedAt time.Time

	// Replies are in source order and must not be reordered
	Replies []CommentNode
}

// IsDeleted reports whether the comment author was removed at the source
func (c *CommentNode) IsDeleted() bool {
	return c.Author == DeletedAuthor
}

// Discussion combines a root post with its full comment forest.
// It is built once per payload and not modified afterwards.
type Discussion struct {
	Post     RedditPost
	Comments []CommentNode
}

// CountComments returns the total number of comments in the forest
func (d *Discussion) CountComments() int {
	count := 0
	stack := make([]*CommentNode, 0, len(d.Comments))
	for i := range d.Comments {
		stack = append(stack, &d.Comments[i])
	}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count++
		for i := range node.Replies {
			stack = append(stack, &node.Replies[i])
		}
	}
	return count
}

// DiscussionView represents the Markdown rendering of a single discussion URL
type DiscussionView struct {
	URL      string `json:"url"`
	Markdown string `json:"markdown"`
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
}
