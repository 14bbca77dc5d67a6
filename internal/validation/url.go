package validation

import (
	"errors"
	"net/url"
	"strings"
)

var (
	ErrURLRequired = errors.New("URL is required")
	ErrURLInvalid  = errors.New("invalid URL format")
)

// NormalizeURL validates a target URL and returns it with an https scheme
// prepended when the caller omitted one.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrURLRequired
	}

	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", ErrURLInvalid
	}

	return raw, nil
}

// Domain extracts the hostname from a URL already normalized by NormalizeURL.
func Domain(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return "", ErrURLInvalid
	}
	return u.Hostname(), nil
}

// Origin returns the scheme://host[:port] prefix used for well-known path probes.
func Origin(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", ErrURLInvalid
	}
	return u.Scheme + "://" + u.Host, nil
}
