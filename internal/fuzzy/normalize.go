// Package fuzzy implements an in-process fuzzy matching engine: records are
// indexed by the characters their searchable fields contain, and queries are
// ranked by normalized string distance, tolerant of typos, transpositions,
// and partial matches.
package fuzzy

import "strings"

// Key selects one searchable field from a record. Name identifies the field
// in results and configuration; Text extracts its raw text. A selector that
// cannot resolve a field should return "" rather than fail.
type Key[T any] struct {
	Name string
	Text func(T) string
}

// wordDelimiters are the characters that split a field into words for
// fine-grained scoring. Covers natural text, email addresses, and common
// identifier separators.
const wordDelimiters = " @-_."

// normalize lowercases text for indexing and comparison.
func normalize(s string) string {
	return strings.ToLower(s)
}

// splitWords splits a normalized field into words on the delimiter set.
// Empty segments are dropped.
func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return strings.ContainsRune(wordDelimiters, r)
	})
}
