package article

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize_RemovesAllScripts(t *testing.T) {
	doc := parseHTML(t, `<html><head><script>var a = 1;</script></head>
<body><article><p>Text</p><div><script src="x.js"></script><span>kept</span></div></article>
<script>alert("bad")</script></body></html>`)

	Sanitize(doc)

	out := renderHTML(t, doc)
	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "alert")
	assert.Contains(t, out, "<span>kept</span>")
	assert.Contains(t, out, "<p>Text</p>")
}

func TestSanitize_IsIdempotent(t *testing.T) {
	doc := parseHTML(t, `<html><body><p>No scripts here</p><script>x()</script></body></html>`)

	Sanitize(doc)
	first := renderHTML(t, doc)
	Sanitize(doc)
	second := renderHTML(t, doc)

	assert.Equal(t, first, second)
}

func TestSanitize_NilDocument(t *testing.T) {
	assert.NotPanics(t, func() { Sanitize(nil) })
}
