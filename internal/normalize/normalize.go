/*
Package normalize derives canonical hostnames from raw host strings or URLs.

Record identity in the catalog is (name, host), so every host that enters
the system passes through Host first. The function is pure and never fails:
malformed input degrades to the lowercased raw string.
*/
package normalize

import (
	"net/url"
	"strings"
)

// Host returns the lowercase hostname for a host string or URL.
//
// Scheme and path are stripped when a URL is supplied. Empty or
// whitespace-only input yields the empty string.
func Host(hostOrURL string) string {
	s := strings.TrimSpace(hostOrURL)
	if s == "" {
		return ""
	}

	if strings.Contains(s, "://") {
		u, err := url.Parse(s)
		if err != nil || u.Hostname() == "" {
			// Malformed URL: strip the scheme by hand and keep going
			if idx := strings.Index(s, "://"); idx >= 0 {
				s = s[idx+3:]
			}
			if idx := strings.IndexAny(s, "/?#"); idx >= 0 {
				s = s[:idx]
			}
			return strings.ToLower(s)
		}
		return strings.ToLower(u.Hostname())
	}

	// Bare host, possibly with a path fragment
	if idx := strings.IndexAny(s, "/?#"); idx >= 0 {
		s = s[:idx]
	}
	return strings.ToLower(s)
}
