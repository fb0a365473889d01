package util

import "unicode/utf8"

// Preview returns the first n runes of s followed by "..." when s is longer than n.
func Preview(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "..."
}
