package discussion

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCommentTree_PreservesOrderAndNesting(t *testing.T) {
	thread, err := ParseThread(threadPayload(t, []testComment{
		{author: "root", body: "r", ups: 10, replies: []testComment{
			{author: "A", body: "a"},
			{author: "B", body: "b", replies: []testComment{{author: "B1", body: "b1"}}},
			{more: true},
			{author: "C", body: "c"},
		}},
		{author: "second", body: "s"},
	}))
	require.NoError(t, err)

	tree := BuildCommentTree(thread.Comments)

	require.Len(t, tree, 2)
	root := tree[0]
	assert.Equal(t, "root", root.Author)
	assert.Equal(t, 10, root.Score)
	assert.False(t, root.CreatedAt.IsZero())

	require.Len(t, root.Replies, 3)
	assert.Equal(t, "A", root.Replies[0].Author)
	assert.Equal(t, "B", root.Replies[1].Author)
	assert.Equal(t, "C", root.Replies[2].Author)
	require.Len(t, root.Replies[1].Replies, 1)
	assert.Equal(t, "B1", root.Replies[1].Replies[0].Author)

	assert.Equal(t, "second", tree[1].Author)
	assert.Empty(t, tree[1].Replies)
}

func TestBuildCommentTree_CopiesFields(t *testing.T) {
	records := []RawComment{
		{Author: "x", Body: "x", Ups: 4, CreatedUTC: 1700000000, Replies: []RawComment{{Author: "y", Body: "y"}}},
		{Author: "z", Body: "z"},
	}

	tree := BuildCommentTree(records)

	require.Len(t, tree, 2)
	assert.Equal(t, 4, tree[0].Score)
	assert.Equal(t, int64(1700000000), tree[0].CreatedAt.Unix())
	require.Len(t, tree[0].Replies, 1)
	assert.Equal(t, "y", tree[0].Replies[0].Author)
	assert.NotNil(t, tree[1].Replies)
	assert.Empty(t, tree[1].Replies)
}

func TestBuildCommentTree_Empty(t *testing.T) {
	assert.Empty(t, BuildCommentTree(nil))
}

func TestBuildCommentTree_DeepChain(t *testing.T) {
	const depth = 500

	chain := testComment{author: fmt.Sprintf("user%d", depth-1), body: "leaf"}
	for i := depth - 2; i >= 0; i-- {
		chain = testComment{author: fmt.Sprintf("user%d", i), body: "reply", replies: []testComment{chain}}
	}
	thread, err := ParseThread(threadPayload(t, []testComment{chain}))
	require.NoError(t, err)

	tree := BuildCommentTree(thread.Comments)

	node := &tree[0]
	for i := 0; i < depth-1; i++ {
		require.Len(t, node.Replies, 1)
		node = &node.Replies[0]
	}
	assert.Equal(t, fmt.Sprintf("user%d", depth-1), node.Author)
	assert.Empty(t, node.Replies)
}

// deepChainPayload builds a thread whose only comment has a single reply
// chain depth levels long, without going through encoding/json.
func deepChainPayload(depth int) []byte {
	var sb strings.Builder
	sb.WriteString(`[{"kind":"Listing","data":{"children":[{"kind":"t3","data":{"title":"Deep","selftext":"","author":"op","score":1,"created_utc":1709683200}}]}},`)
	sb.WriteString(`{"kind":"Listing","data":{"children":[`)
	for i := 0; i < depth-1; i++ {
		fmt.Fprintf(&sb, `{"kind":"t1","data":{"author":"user%d","body":"reply","ups":1,"created_utc":1700000000,"replies":{"kind":"Listing","data":{"children":[`, i)
	}
	fmt.Fprintf(&sb, `{"kind":"t1","data":{"author":"user%d","body":"leaf","ups":1,"created_utc":1700000000,"replies":""}}`, depth-1)
	sb.WriteString(strings.Repeat(`]}}}}`, depth-1))
	sb.WriteString(`]}}]`)
	return []byte(sb.String())
}

func TestParseThread_ChainDeeperThanDecoderNestingLimit(t *testing.T) {
	// five JSON levels per reply puts this well past encoding/json's limit
	const depth = 3000
	payload := deepChainPayload(depth)

	d, err := NewPipeline(time.UTC, nil).Parse(payload)
	require.NoError(t, err)
	assert.Equal(t, depth, d.CountComments())

	md := NewPipeline(time.UTC, nil).RenderDiscussionMarkdown(payload)
	require.NotEmpty(t, md)
	assert.Contains(t, md, "**u/user0** *(1 points)*\nreply")
	leaf := fmt.Sprintf("%s**u/user%d** *(1 points)*\n%sleaf", strings.Repeat("  ", depth-1), depth-1, strings.Repeat("  ", depth-1))
	assert.Contains(t, md, leaf)
}
