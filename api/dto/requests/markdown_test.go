package requests

import (
	"testing"

	coreerrors "digests-reader-api/core/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownRequest_Normalize(t *testing.T) {
	req := MarkdownRequest{URLs: []string{" https://example.com/a ", "http://example.org/b?x=1"}}

	urls, err := req.Normalize()

	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/a", "http://example.org/b?x=1"}, urls)
}

func TestMarkdownRequest_Normalize_Empty(t *testing.T) {
	_, err := (&MarkdownRequest{}).Normalize()

	require.Error(t, err)
	assert.True(t, coreerrors.IsValidation(err))
	assert.Contains(t, err.Error(), "urls")
}

func TestMarkdownRequest_Normalize_RejectsBadURLs(t *testing.T) {
	for _, bad := range []string{"", "example.com", "ftp://example.com/file", "https://", "javascript:alert(1)"} {
		req := MarkdownRequest{URLs: []string{"https://example.com", bad}}

		_, err := req.Normalize()

		require.Error(t, err, bad)
		assert.True(t, coreerrors.IsValidation(err), bad)
		assert.Contains(t, err.Error(), "urls[1]", bad)
	}
}
