package discussion

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"digests-reader-api/core/domain"
	coreerrors "digests-reader-api/core/errors"
	timeutil "digests-reader-api/pkg/utils/time"
)

// KindMore marks a "load more comments" stub in a listing
const KindMore = "more"

// Thread is the positional payload split into its post and top-level comments
type Thread struct {
	Post     domain.RedditPost
	Comments []RawComment
}

// RawComment is a comment record as it appears in a listing, with its
// nested reply listing already decoded
type RawComment struct {
	Author     string
	Body       string
	Ups        int
	CreatedUTC float64
	Replies    []RawComment
}

type listing struct {
	Kind string `json:"kind"`
	Data struct {
		Children []child `json:"children"`
	} `json:"data"`
}

type child struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

type rawPost struct {
	Title      string  `json:"title"`
	Selftext   string  `json:"selftext"`
	Author     string  `json:"author"`
	Score      int     `json:"score"`
	CreatedUTC float64 `json:"created_utc"`
}

// ParseThread splits a [postListing, commentListing] payload. Any deviation
// from that shape is reported as a ParseError. The comment listing is
// streamed, so deep reply chains are not limited by decoder nesting.
func ParseThread(payload []byte) (*Thread, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))

	tok, err := dec.Token()
	if err != nil {
		return nil, &coreerrors.ParseError{Stage: "payload", Err: err}
	}
	if tok != json.Delim('[') {
		return nil, &coreerrors.ParseError{Stage: "payload", Err: errors.New("expected an array of 2 listings")}
	}

	if !dec.More() {
		return nil, listingCountError(0)
	}
	var rawPostListing json.RawMessage
	if err := dec.Decode(&rawPostListing); err != nil {
		return nil, &coreerrors.ParseError{Stage: "payload", Err: err}
	}
	if !dec.More() {
		return nil, listingCountError(1)
	}
	post, err := parsePost(rawPostListing)
	if err != nil {
		return nil, &coreerrors.ParseError{Stage: "post listing", Err: err}
	}

	comments, err := decodeCommentListing(dec)
	if err != nil {
		return nil, &coreerrors.ParseError{Stage: "comment listing", Err: err}
	}

	if dec.More() {
		return nil, listingCountError(3)
	}
	if _, err := dec.Token(); err != nil {
		return nil, &coreerrors.ParseError{Stage: "payload", Err: err}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &coreerrors.ParseError{Stage: "payload", Err: errors.New("unexpected data after payload")}
	}

	return &Thread{Post: post, Comments: comments}, nil
}

func listingCountError(n int) error {
	got := fmt.Sprint(n)
	if n > 2 {
		got = "more"
	}
	return &coreerrors.ParseError{
		Stage: "payload",
		Err:   fmt.Errorf("expected 2 listings, got %s", got),
	}
}

func parsePost(raw json.RawMessage) (domain.RedditPost, error) {
	var l listing
	if err := json.Unmarshal(raw, &l); err != nil {
		return domain.RedditPost{}, err
	}
	if len(l.Data.Children) == 0 {
		return domain.RedditPost{}, fmt.Errorf("post listing has no children")
	}

	var p rawPost
	if err := json.Unmarshal(l.Data.Children[0].Data, &p); err != nil {
		return domain.RedditPost{}, err
	}

	return domain.RedditPost{
		Title:     p.Title,
		Content:   p.Selftext,
		Author:    p.Author,
		CreatedAt: timeutil.FromUnixSeconds(p.CreatedUTC),
		Score:     p.Score,
	}, nil
}
