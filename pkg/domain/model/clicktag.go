package model

import (
	"net/url"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// NormalizeClickTag trims raw, forces an https scheme and validates that the result is an
// absolute http(s) URL whose host contains a dot.
func NormalizeClickTag(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", ErrMissingClickTag
	}

	switch {
	case !strings.Contains(s, "://"):
		s = "https://" + s
	case strings.HasPrefix(s, "http://"):
		s = "https://" + strings.TrimPrefix(s, "http://")
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", goerr.Wrap(ErrInvalidClickTag, err.Error(), goerr.V("url", raw))
	}
	if !IsValidClickTag(u) {
		return "", goerr.Wrap(ErrInvalidClickTag, "scheme must be http(s) and host must contain a dot", goerr.V("url", raw))
	}

	return u.String(), nil
}

// IsValidClickTag reports whether u is usable as a click-through destination.
func IsValidClickTag(u *url.URL) bool {
	if u == nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return strings.Contains(u.Hostname(), ".")
}
