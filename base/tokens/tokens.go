package tokens

import (
	"strings"
)

// Split splits s at every occurrence of delim. Each segment is trimmed of
// leading and trailing white space and empty segments are dropped.
func Split(s string, delim byte) []string {
	return SplitAny(s, string(delim))
}

// SplitAny is like Split but splits at every occurrence of any byte in
// delims.
func SplitAny(s, delims string) []string {
	var tk []string
	for {
		i := strings.IndexAny(s, delims)
		if i < 0 {
			break
		}
		if t := strings.TrimSpace(s[:i]); t != "" {
			tk = append(tk, t)
		}
		s = s[i+1:]
	}
	if t := strings.TrimSpace(s); t != "" {
		tk = append(tk, t)
	}
	return tk
}
