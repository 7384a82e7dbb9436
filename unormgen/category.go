package unormgen

import "unicode"

// isUnicodeMark reports whether r belongs to one of the Unicode mark
// categories (Mn, Mc, Me). Every curated combining mark (source.go) is
// asserted to actually be a Unicode mark, catching a transcription typo
// before it reaches a built blob.
func isUnicodeMark(r rune) bool {
	return unicode.In(r, unicode.Mn, unicode.Mc, unicode.Me)
}
