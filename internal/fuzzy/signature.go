package fuzzy

// computeSignature folds every character of text into a 32-bit bitmask:
// bit (code * 31) mod 32 is set for each character code. The signature is a
// compact approximation of the text's character set.
func computeSignature(text string) uint32 {
	var sig uint32
	for _, r := range text {
		sig |= 1 << ((uint32(r) * 31) % 32)
	}
	return sig
}

// signatureCanMatch reports whether a record with signature record could
// possibly contain any character of the query with signature query. It is a
// rejection test only: a true result does not confirm a match, but a false
// result guarantees the record shares no query character bucket.
func signatureCanMatch(query, record uint32) bool {
	return query == 0 || query&record != 0
}
