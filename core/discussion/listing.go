package discussion

import (
	"encoding/json"
	"fmt"
)

// slotRole says what a JSON container means inside a comment listing
type slotRole int

const (
	roleSkip        slotRole = iota
	roleListing              // {"kind": ..., "data": {...}}
	roleListingData          // {"children": [...]}
	roleChildren             // [child, ...]
	roleChild                // {"kind": "t1", "data": {...}}
	roleComment              // comment fields, including "replies"
)

// listingFrame is one open container on the decoder's work stack
type listingFrame struct {
	role      slotRole
	object    bool
	expectKey bool
	key       string

	// strict frames belong to the top-level listing, where a shape mismatch
	// is a ParseError. Reply listings degrade to "no replies" instead.
	strict bool

	out     *[]RawComment
	comment *RawComment
	kind    string
	hasData bool
}

// listingDecoder reads a comment listing token by token. Every open object
// and array lives on an explicit stack, so reply depth is bounded only by
// the payload and each byte is scanned once.
type listingDecoder struct {
	dec   *json.Decoder
	stack []listingFrame
}

// decodeCommentListing reads the next value of dec as a comment listing
func decodeCommentListing(dec *json.Decoder) ([]RawComment, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if tok != json.Delim('{') {
		return nil, fmt.Errorf("comment listing is not an object")
	}

	var comments []RawComment
	d := &listingDecoder{
		dec: dec,
		stack: []listingFrame{{
			role:      roleListing,
			object:    true,
			expectKey: true,
			strict:    true,
			out:       &comments,
		}},
	}
	if err := d.run(); err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []RawComment{}
	}
	return comments, nil
}

func (d *listingDecoder) run() error {
	for len(d.stack) > 0 {
		tok, err := d.dec.Token()
		if err != nil {
			return err
		}

		top := d.top()
		switch {
		case tok == json.Delim('{') || tok == json.Delim('['):
			err = d.open(tok == json.Delim('{'))
		case tok == json.Delim('}') || tok == json.Delim(']'):
			err = d.close()
		case top.object && top.expectKey:
			top.key, _ = tok.(string)
			top.expectKey = false
		default:
			err = d.scalar(tok)
			d.valueDone()
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (d *listingDecoder) top() *listingFrame {
	return &d.stack[len(d.stack)-1]
}

func (d *listingDecoder) open(object bool) error {
	parent := d.top()
	child := listingFrame{object: object, expectKey: object, strict: parent.strict}

	switch {
	case object && parent.role == roleListing && parent.key == "data":
		child.role, child.out = roleListingData, parent.out
	case !object && parent.role == roleListingData && parent.key == "children":
		child.role, child.out = roleChildren, parent.out
	case object && parent.role == roleChildren:
		child.role, child.out, child.comment = roleChild, parent.out, &RawComment{}
	case object && parent.role == roleChild && parent.key == "data":
		child.role, child.comment = roleComment, parent.comment
		parent.hasData = true
	case object && parent.role == roleComment && parent.key == "replies":
		child.role, child.out, child.strict = roleListing, &parent.comment.Replies, false
	default:
		if parent.strict && (parent.containerSlot() || parent.scalarSlot()) {
			return parent.mismatch()
		}
		child.role, child.strict = roleSkip, false
	}

	d.stack = append(d.stack, child)
	return nil
}

func (d *listingDecoder) close() error {
	f := d.stack[len(d.stack)-1]
	d.stack = d.stack[:len(d.stack)-1]

	if f.role == roleChild && f.kind != KindMore {
		switch {
		case f.hasData:
			*f.out = append(*f.out, *f.comment)
		case f.strict:
			return fmt.Errorf("comment child has no data")
		}
	}

	if len(d.stack) > 0 {
		d.valueDone()
	}
	return nil
}

// scalar applies a non-container value to the innermost frame. null fits
// every slot.
func (d *listingDecoder) scalar(tok json.Token) error {
	f := d.top()

	ok := true
	switch {
	case f.role == roleChild && f.key == "kind":
		f.kind, ok = tok.(string)
	case f.role == roleChild && f.key == "data":
		f.hasData = tok == nil
	case f.role == roleComment:
		ok = f.comment.set(f.key, tok)
	}

	if tok == nil || !f.strict {
		return nil
	}
	if !ok || f.containerSlot() {
		return f.mismatch()
	}
	return nil
}

func (d *listingDecoder) valueDone() {
	if top := d.top(); top.object {
		top.expectKey = true
	}
}

// containerSlot reports whether the current slot must hold an object or array
func (f *listingFrame) containerSlot() bool {
	switch f.role {
	case roleListing, roleChild:
		return f.key == "data"
	case roleListingData:
		return f.key == "children"
	case roleChildren:
		return true
	}
	return false
}

// scalarSlot reports whether the current slot must hold a string or number
func (f *listingFrame) scalarSlot() bool {
	switch f.role {
	case roleChild:
		return f.key == "kind"
	case roleComment:
		switch f.key {
		case "author", "body", "ups", "created_utc":
			return true
		}
	}
	return false
}

func (f *listingFrame) mismatch() error {
	if f.role == roleChildren {
		return fmt.Errorf("unexpected value in children")
	}
	return fmt.Errorf("unexpected value for %q", f.key)
}

// set assigns one comment field and reports false on a type mismatch
func (c *RawComment) set(key string, tok json.Token) bool {
	switch key {
	case "author", "body":
		s, ok := tok.(string)
		if !ok {
			return tok == nil
		}
		if key == "author" {
			c.Author = s
		} else {
			c.Body = s
		}
	case "ups", "created_utc":
		n, ok := tok.(float64)
		if !ok {
			return tok == nil
		}
		if key == "ups" {
			c.Ups = int(n)
		} else {
			c.CreatedUTC = n
		}
	}
	return true
}
