package domain

import "testing"

func TestCommentNode_IsDeleted(t *testing.T) {
	tests := []struct {
		name     string
		author   string
		expected bool
	}{
		{"deleted sentinel", "[deleted]", true},
		{"present author", "gopher", false},
		{"empty author", "", false},
		{"sentinel lookalike", "deleted", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := CommentNode{Author: tt.author}
			if got := node.IsDeleted(); got != tt.expected {
				t.Errorf("IsDeleted() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestDiscussion_CountComments(t *testing.T) {
	d := Discussion{
		Comments: []CommentNode{
			{Author: "a", Replies: []CommentNode{
				{Author: "b"},
				{Author: "c", Replies: []CommentNode{{Author: "d"}}},
			}},
			{Author: "e"},
		},
	}

	if got := d.CountComments(); got != 5 {
		t.Errorf("CountComments() = %d, want 5", got)
	}
}

func TestDiscussion_CountComments_Empty(t *testing.T) {
	d := Discussion{}
	if got := d.CountComments(); got != 0 {
		t.Errorf("CountComments() = %d, want 0", got)
	}
}

func TestExtractedArticle_HasTitle(t *testing.T) {
	if (ExtractedArticle{}).HasTitle() {
		t.Error("empty article should not report a title")
	}
	if !(ExtractedArticle{Title: "Hello"}).HasTitle() {
		t.Error("article with title should report a title")
	}
}
