// Package unormdata reads the "Nrm2" binary normalization data format: a
// header of 32-bit indexes, a two-stage code-point trie, a composition
// table, and variable-length decomposition mapping records.
package unormdata

// Index slots within the fixed-size indexes array that follows the header.
// Offsets are counted in bytes from the start of the indexes array itself
// (the "post-header payload"), matching the original format: the trie
// follows the indexes array immediately, so indexes[IXNormTrieOffset] also
// gives the indexes array's own byte length.
const (
	IXNormTrieOffset    = iota // byte offset of the trie, from indexes[0]
	IXExtraDataOffset          // byte offset of the compositions+mappings region
	IXMinDecompNoCP            // fast-path threshold: code points below need no decomposition work
	IXMinCompNoMaybeCP         // fast-path threshold: code points below never touch composition
	IXMinYesNo                 // norm16 threshold: below is "yes, zero cc"
	IXMinNoNo                  // norm16 threshold: below is "yes, non-zero cc in low bits"
	IXLimitNoNo                // norm16 threshold: end of the decomposing/algorithmic range
	IXMinMaybeYes               // norm16 threshold: at/above is "maybe-yes" (forward-combining)

	// IXCount is the number of indexes slots this reader understands. The
	// format reserves room for future growth: a producer may write fewer
	// slots (zero-filled) or the reader silently ignores slots beyond
	// IXCount.
	IXCount = 16
)

const (
	headerFixedSize = 8  // dataFormat[4] + formatVersion0 + isBigEndian + charsetFamily + reserved
	minHeaderSize   = 20 // reject anything smaller outright, regardless of indexesLength
)

var dataFormatTag = [4]byte{'N', 'r', 'm', '2'}

const formatVersion0 = 1

// Hangul syllable constants from the Unicode standard's conjoining-jamo
// arithmetic: a syllable's offset from sBase encodes its L, V, and T jamo
// indices.
const (
	hangulLBase  = 0x1100
	hangulVBase  = 0x1161
	hangulTBase  = 0x11A7
	hangulSBase  = 0xAC00
	hangulLCount = 19
	hangulVCount = 21
	hangulTCount = 28
	hangulNCount = hangulVCount * hangulTCount
	hangulSCount = hangulLCount * hangulNCount
)

// HangulSBase etc. are exported for callers that need the raw Hangul syllable
// range without going through a loaded Blob (e.g. the fast-path checks in
// package unorm).
const (
	HangulSBase  = hangulSBase
	HangulSCount = hangulSCount
	HangulLBase  = hangulLBase
	HangulVBase  = hangulVBase
	HangulTBase  = hangulTBase
	HangulTCount = hangulTCount
	HangulNCount = hangulNCount
)
