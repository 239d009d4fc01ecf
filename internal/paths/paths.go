// Package paths classifies application locations and request targets for the
// unauthenticated-redirect policy.
package paths

import "strings"

// IsPublic reports whether location matches any entry in publicPaths, either
// exactly or as a child route (entry plus "/"). A trailing slash on the
// location itself does not change the answer.
func IsPublic(location string, publicPaths []string) bool {
	if location == "" {
		return false
	}
	trimmed := location
	if len(trimmed) > 1 {
		trimmed = strings.TrimRight(trimmed, "/")
		if trimmed == "" {
			trimmed = "/"
		}
	}
	for _, p := range publicPaths {
		if p == "" {
			continue
		}
		if trimmed == p {
			return true
		}
		if p != "/" && strings.HasPrefix(trimmed, p+"/") {
			return true
		}
	}
	return false
}

// IsExempt reports whether the request path contains any of the exempt
// fragments. Substring matching mirrors how auth endpoints are recognized
// regardless of query strings or prefixes.
func IsExempt(requestPath string, exempt []string) bool {
	for _, frag := range exempt {
		if frag == "" {
			continue
		}
		if strings.Contains(requestPath, frag) {
			return true
		}
	}
	return false
}
