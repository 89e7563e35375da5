package ast

import "strings"

// ownString returns a copy of s that shares no memory with the caller's
// buffer. Token lexemes are often substrings of a whole source file; a
// node holding one would otherwise keep the file alive.
func ownString(s string) string {
	return strings.Clone(s)
}

// stringCost is the ledger charge for the strings a constructor copies.
// Empty strings are not allocated and cost nothing.
func stringCost(strs ...string) (count, bytes int) {
	for _, s := range strs {
		if s == "" {
			continue
		}
		count++
		bytes += len(s)
	}
	return count, bytes
}
