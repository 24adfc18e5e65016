// Package pkg holds small helpers shared by the collectors.
package pkg

import "strings"

// ContainsAny reports whether s matches any pattern, case-insensitively.
// A pattern ending in "*" must match as a prefix; any other pattern may
// appear anywhere in s.
func ContainsAny(s string, patterns []string) bool {
	s = strings.ToLower(s)

	for _, p := range patterns {
		p = strings.ToLower(p)

		if prefix, ok := strings.CutSuffix(p, "*"); ok {
			if strings.HasPrefix(s, prefix) {
				return true
			}
			continue
		}

		if strings.Contains(s, p) {
			return true
		}
	}

	return false
}
