package reddit

import (
	"fmt"
	"net/url"
	"strings"

	coreerrors "digests-reader-api/core/errors"
)

const jsonSuffix = ".json"

// JSONURL returns the JSON endpoint for a thread URL: a trailing slash is
// trimmed from the path and ".json" appended unless already present. The
// query string is preserved.
func JSONURL(threadURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(threadURL))
	if err != nil {
		return "", &coreerrors.ValidationError{Field: "url", Message: err.Error()}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", &coreerrors.ValidationError{Field: "url", Message: fmt.Sprintf("unsupported scheme %q", u.Scheme)}
	}
	if u.Host == "" {
		return "", &coreerrors.ValidationError{Field: "url", Message: "missing host"}
	}

	path := strings.TrimRight(u.Path, "/")
	if !strings.HasSuffix(path, jsonSuffix) {
		path += jsonSuffix
	}
	u.Path = path
	u.RawPath = ""
	u.Fragment = ""
	u.RawFragment = ""
	return u.String(), nil
}

// IsDiscussionURL reports whether rawURL points at a reddit.com thread
func IsDiscussionURL(rawURL string) bool {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if host != "reddit.com" && !strings.HasSuffix(host, ".reddit.com") {
		return false
	}
	return strings.Contains(u.Path, "/comments/")
}
