// Package urlnorm canonicalizes URLs so that the same page saved twice maps
// to the same stored string, and checks rely on exact comparison.
package urlnorm

import (
	"net/url"
	"strings"
)

var defaultRegistry = MustNewRegistry()

// IsValid reports whether raw parses as an absolute URL with a host.
// Callers must check this before deciding to store a bookmark; Normalize
// itself passes invalid input through unchanged.
func IsValid(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// Normalize returns the canonical form of raw:
//
//  1. parse as an absolute URL; on failure return raw unchanged
//  2. strip tracking query parameters (registry rules, utm_ prefix included)
//  3. clear the fragment
//  4. force the scheme to https
//  5. strip one trailing slash off non-root paths
//
// The result is idempotent: Normalize(Normalize(u)) == Normalize(u).
func Normalize(raw string) string {
	return defaultRegistry.Normalize(raw)
}

// Normalize canonicalizes raw using the registry's stripping rules
func (r *Registry) Normalize(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return raw
	}

	if u.RawQuery != "" {
		q := u.Query()
		for key := range q {
			if r.IsTrackingParam(key) {
				delete(q, key)
			}
		}
		u.RawQuery = q.Encode()
	}

	u.Fragment = ""
	u.RawFragment = ""
	u.Scheme = "https"

	// net/url does not case-fold the host on its own
	u.Host = strings.ToLower(u.Host)

	if u.Path != "/" && strings.HasSuffix(u.Path, "/") {
		u.Path = strings.TrimSuffix(u.Path, "/")
		u.RawPath = ""
	}

	return u.String()
}

// Domain extracts the lowercase hostname of raw, or "" for invalid input
func Domain(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
