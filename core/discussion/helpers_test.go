package discussion

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// testComment describes a comment record used to build listing payloads
type testComment struct {
	author  string
	body    string
	ups     int
	replies []testComment
	more    bool
}

func listingJSON(children []interface{}) map[string]interface{} {
	return map[string]interface{}{
		"kind": "Listing",
		"data": map[string]interface{}{"children": children},
	}
}

func commentChildren(comments []testComment) []interface{} {
	children := make([]interface{}, 0, len(comments))
	for _, c := range comments {
		if c.more {
			children = append(children, map[string]interface{}{
				"kind": KindMore,
				"data": map[string]interface{}{"count": 12, "children": []string{"abc"}},
			})
			continue
		}

		var replies interface{} = ""
		if len(c.replies) > 0 {
			replies = listingJSON(commentChildren(c.replies))
		}
		children = append(children, map[string]interface{}{
			"kind": "t1",
			"data": map[string]interface{}{
				"author":      c.author,
				"body":        c.body,
				"ups":         c.ups,
				"created_utc": 1700000000.0,
				"replies":     replies,
			},
		})
	}
	return children
}

func threadPayload(t *testing.T, comments []testComment) []byte {
	t.Helper()
	post := listingJSON([]interface{}{
		map[string]interface{}{
			"kind": "t3",
			"data": map[string]interface{}{
				"title":       "Why is Go fast?",
				"selftext":    "Asking for a friend.",
				"author":      "gopher",
				"score":       42,
				"created_utc": 1709683200.0, // 2024-03-06T00:00:00Z
			},
		},
	})
	payload, err := json.Marshal([]interface{}{post, listingJSON(commentChildren(comments))})
	require.NoError(t, err)
	return payload
}
