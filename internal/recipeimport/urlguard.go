package recipeimport

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	ErrInvalidURL     = errors.New("invalid URL")
	ErrDisallowedHost = errors.New("host is not allowed")
	// ErrDisallowedScheme also matches ErrDisallowedHost.
	ErrDisallowedScheme = fmt.Errorf("%w: only http and https URLs can be imported", ErrDisallowedHost)
)

// deniedHostPrefixes is matched against the lowercased hostname string only.
// No DNS resolution happens here, so a public name that resolves to a private
// address is not caught, and 172.32.x.x and above are not blocked.
var deniedHostPrefixes = []string{
	"localhost",
	"127.0.0.1",
	"::1",
	"0.0.0.0",
	"169.254.",
	"10.",
	"192.168.",
	"172.16.", "172.17.", "172.18.", "172.19.",
	"172.20.", "172.21.", "172.22.", "172.23.",
	"172.24.", "172.25.", "172.26.", "172.27.",
	"172.28.", "172.29.", "172.30.", "172.31.",
}

// ValidateURL parses rawURL and rejects anything that must not be fetched.
func ValidateURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Scheme == "" {
		return nil, ErrInvalidURL
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return nil, ErrDisallowedScheme
	}

	host := u.Hostname()
	if host == "" {
		return nil, ErrInvalidURL
	}
	if IsDeniedHost(host) {
		return nil, ErrDisallowedHost
	}
	return u, nil
}

// IsDeniedHost reports whether hostname equals or starts with a deny-list entry.
func IsDeniedHost(hostname string) bool {
	h := strings.ToLower(strings.Trim(hostname, "[]"))
	for _, prefix := range deniedHostPrefixes {
		if strings.HasPrefix(h, prefix) {
			return true
		}
	}
	return false
}
