package input

import (
	"net/url"
	"strings"
)

const defaultHost = "localhost"

// ParseURL normalizes a possibly scheme-less URL argument into an absolute
// URL. Inputs starting with ":" or "/" are shorthands for localhost, so
// ":8080/hello" means "http://localhost:8080/hello". A URL that already
// contains "://" is taken as-is; anything else gets defaultScheme prepended.
func ParseURL(s string, defaultScheme string) (*url.URL, error) {
	if defaultScheme == "" {
		defaultScheme = "http"
	}

	// ex) :8080/hello or /hello
	if strings.HasPrefix(s, ":") || strings.HasPrefix(s, "/") {
		s = defaultHost + s
	}

	// ex) example.com/hello
	if !strings.Contains(s, "://") {
		s = defaultScheme + "://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return nil, newURLError("invalid URL: %s", s)
	}
	u.Host = strings.TrimSuffix(u.Host, ":")
	if u.Host == "" {
		return nil, newURLError("URL has no host: %s", s)
	}
	if u.Path == "" {
		u.Path = "/"
	}
	return u, nil
}
