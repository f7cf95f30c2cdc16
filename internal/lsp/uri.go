package lsp

import (
	"net/url"
	"path/filepath"
	"strings"
)

// uriToPath converts a file:// URI to an absolute filesystem path. Plain
// paths pass through; non-file schemes yield "".
func uriToPath(uri string) string {
	switch {
	case uri == "":
		return ""
	case strings.HasPrefix(uri, "file://"):
		parsed, err := url.Parse(uri)
		if err != nil {
			return ""
		}
		uri = parsed.Path
	case strings.Contains(uri, "://"):
		return ""
	}
	if unescaped, err := url.PathUnescape(uri); err == nil {
		uri = unescaped
	}
	path := filepath.FromSlash(uri)
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// pathToURI converts a filesystem path to a file:// URI.
func pathToURI(path string) string {
	if path == "" {
		return ""
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}
